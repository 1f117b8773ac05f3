package echo

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-echo/dsp/interp"
)

// Option configures New.
type Option func(*options)

type options struct {
	config       ChainConfig
	routing      *Routing
	interpolator *interp.Kind
}

// WithTaps sets the number of taps between head and tail, all at default settings.
func WithTaps(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.config.Taps = make([]Settings, n)
		for i := range o.config.Taps {
			o.config.Taps[i] = DefaultSettings()
		}
	}
}

// WithSettings builds the chain described by cfg.
func WithSettings(cfg ChainConfig) Option {
	return func(o *options) {
		o.config = cfg
		o.config.Taps = slices.Clone(cfg.Taps)
	}
}

// WithRouting overrides the head's routing.
func WithRouting(r Routing) Option {
	return func(o *options) { o.routing = &r }
}

// WithInterpolator overrides the head's interpolator.
func WithInterpolator(k interp.Kind) Option {
	return func(o *options) { o.interpolator = &k }
}

// Status summarises the warnings raised in the last frame.
type Status struct {
	Overflow     bool
	ClockWarning bool
}

// Chain is an ordered head, taps and tail. It is not safe for concurrent
// use: structural edits must happen between calls to Step.
type Chain struct {
	units   []*Unit
	pending []*Unit
	inputs  []Input
	outputs []Output
	status  Status
}

// New builds a chain. Without options it has a head and a tail only.
func New(opts ...Option) (*Chain, error) {
	o := options{config: DefaultChainConfig(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.routing != nil {
		o.config.Head.Routing = *o.routing
	}

	if o.interpolator != nil {
		o.config.Head.Interpolator = *o.interpolator
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	c := &Chain{}
	c.units = append(c.units, newUnit(Head, o.config.Head))
	for _, s := range o.config.Taps {
		c.units = append(c.units, newUnit(Tap, s))
	}
	c.units = append(c.units, newUnit(Tail, o.config.Tail))
	c.relink()

	return c, nil
}

// Len returns the number of units including head and tail.
func (c *Chain) Len() int { return len(c.units) }

// NumLoops returns the number of units that own tape loops.
func (c *Chain) NumLoops() int { return len(c.units) - 1 }

// Unit returns unit i. It panics if i is out of range.
func (c *Chain) Unit(i int) *Unit {
	if i < 0 || i >= len(c.units) {
		panic(fmt.Sprintf("echo: unit index %d out of range [0, %d)", i, len(c.units)))
	}

	return c.units[i]
}

// Head returns the first unit.
func (c *Chain) Head() *Unit { return c.units[0] }

// Tail returns the last unit.
func (c *Chain) Tail() *Unit { return c.units[len(c.units)-1] }

// IndexOf returns the position of u, or -1.
func (c *Chain) IndexOf(u *Unit) int {
	return slices.Index(c.units, u)
}

// Config returns the current settings of every unit.
func (c *Chain) Config() ChainConfig {
	cfg := ChainConfig{Head: c.Head().settings, Tail: c.Tail().settings}
	for _, u := range c.units[1 : len(c.units)-1] {
		cfg.Taps = append(cfg.Taps, u.settings)
	}

	return cfg
}

// Status returns the warnings raised in the last frame.
func (c *Chain) Status() Status { return c.status }

// Pending returns the number of units waiting for removal.
func (c *Chain) Pending() int { return len(c.pending) }

// Clear erases every loop at the next silent point of the head's transition.
func (c *Chain) Clear() {
	c.Head().requestClear()
}

// Step processes one frame. inputs[i] feeds unit i; missing entries are
// treated as disconnected. The returned outputs are indexed like the
// units and stay valid until the next call.
func (c *Chain) Step(sampleRateHz float64, inputs []Input) []Output {
	if len(c.outputs) != len(c.units) {
		c.outputs = make([]Output, len(c.units))
	}

	var none Input
	c.status = Status{}

	for i, u := range c.units {
		in := &none
		if i < len(inputs) {
			in = &inputs[i]
		}

		u.process(sampleRateHz, in, &c.outputs[i])
		c.status.Overflow = c.status.Overflow || u.overflow
		c.status.ClockWarning = c.status.ClockWarning || u.clockWarning
	}

	for _, u := range c.units {
		u.flip()
	}

	if c.Head().takeSilent() {
		c.applyPending()
	}

	return c.outputs
}

// Process feeds audio to the head for one frame and returns the tail's mix.
func (c *Chain) Process(sampleRateHz float64, audio Frame) Frame {
	if len(c.inputs) == 0 {
		c.inputs = make([]Input, 1)
	}

	c.inputs[0].Audio = audio
	out := c.Step(sampleRateHz, c.inputs[:1])

	return out[len(out)-1].Audio
}

func (c *Chain) relink() {
	for i, u := range c.units {
		u.left, u.right = nil, nil
		if i > 0 {
			u.left = c.units[i-1]
		}
		if i+1 < len(c.units) {
			u.right = c.units[i+1]
		}
	}

	c.outputs = nil
}

// insertTap places a new tap at index i (1 <= i <= Len()-1). The tap's
// links start with the messages its neighbours last exchanged, so the
// units around it keep receiving valid messages on the next frame.
func (c *Chain) insertTap(i int, s Settings) *Unit {
	u := newUnit(Tap, s)
	u.forward.prime(*c.units[i-1].forward.Receive())
	u.backward.prime(*c.units[i].backward.Receive())

	c.units = slices.Insert(c.units, i, u)
	c.relink()

	return u
}

// scheduleRemoval marks u for removal at the head's next silent point.
func (c *Chain) scheduleRemoval(u *Unit) {
	if u.removing {
		return
	}

	u.removing = true
	c.pending = append(c.pending, u)
	c.Head().requestTransition()
}

// cancelRemoval reports whether u was still pending and unmarks it.
func (c *Chain) cancelRemoval(u *Unit) bool {
	i := slices.Index(c.pending, u)
	if i < 0 {
		return false
	}

	u.removing = false
	c.pending = slices.Delete(c.pending, i, i+1)

	return true
}

func (c *Chain) applyPending() {
	if len(c.pending) == 0 {
		return
	}

	c.units = slices.DeleteFunc(c.units, func(u *Unit) bool { return u.removing })
	c.pending = c.pending[:0]
	c.relink()
}
