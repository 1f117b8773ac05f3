package echo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-echo/dsp/clock"
	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/fade"
	"github.com/cwbudde/algo-echo/dsp/filter/onepole"
	"github.com/cwbudde/algo-echo/dsp/tape"
)

// Role is a unit's position type in the chain.
type Role int

const (
	Head Role = iota
	Tap
	Tail
)

func (r Role) String() string {
	switch r {
	case Head:
		return "head"
	case Tap:
		return "tap"
	case Tail:
		return "tail"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

var (
	minDelayLog2 = math.Log2(tape.MinDelaySeconds)
	maxDelayLog2 = math.Log2(tape.MaxDelaySeconds)
)

// Unit is one element of a Chain.
type Unit struct {
	role        Role
	settings    Settings
	left, right *Unit

	forward  Link[Message]
	backward Link[BackwardMessage]

	channels    [MaxChannels]ChannelInfo
	numChannels int
	chainIndex  int

	reverseFader fade.Crossfader
	duckFader    fade.Crossfader
	muteFader    fade.Crossfader
	soloFader    fade.Crossfader

	// Head only.
	dcReject            [MaxChannels]onepole.StagedHighPass
	freezeFader         fade.Crossfader
	transition          *fade.Smoother
	activeRouting       Routing
	clearRequested      bool
	clearNow            bool
	transitionRequested bool
	silent              bool

	removing     bool
	overflow     bool
	clockWarning bool
}

func newUnit(role Role, s Settings) *Unit {
	u := &Unit{role: role, settings: s, chainIndex: -1}

	u.muteFader.Snap(s.Mute)
	u.soloFader.Snap(s.Solo)
	u.reverseFader.Snap(s.Reverse)
	u.duckFader.Snap(s.Duck)

	if role == Head {
		u.chainIndex = 1
		u.activeRouting = s.Routing
		u.freezeFader.Snap(s.Freeze)
		u.transition = fade.NewSmoother(fade.WithOnSilent(u.onSilent))
	}

	return u
}

// Role returns the unit's role.
func (u *Unit) Role() Role { return u.role }

// ChainIndex returns the 1-based position reported by the chain protocol,
// or -1 while the unit has no valid message from its left neighbour.
func (u *Unit) ChainIndex() int { return u.chainIndex }

// Settings returns a copy of the unit's controls.
func (u *Unit) Settings() Settings { return u.settings }

// SetSettings replaces the unit's controls. A routing change on the head
// takes effect at the next silent point of its transition.
func (u *Unit) SetSettings(s Settings) { u.settings = s }

// Update edits the unit's controls in place.
func (u *Unit) Update(fn func(*Settings)) { fn(&u.settings) }

// Channels returns the channel count processed in the last frame.
func (u *Unit) Channels() int { return u.numChannels }

// Loop returns the tape loop of channel c, creating it on first use.
// It panics if c is outside [0, MaxChannels).
func (u *Unit) Loop(c int) *tape.Loop {
	return u.channel(c).Loop
}

// Overflow reports whether a loop was recovering from an overload in the last frame.
func (u *Unit) Overflow() bool { return u.overflow }

// ClockWarning reports whether a clocked channel was dead in the last frame.
func (u *Unit) ClockWarning() bool { return u.clockWarning }

// Removing reports whether the unit is scheduled for removal.
func (u *Unit) Removing() bool { return u.removing }

func (u *Unit) channel(c int) *ChannelInfo {
	if c < 0 || c >= MaxChannels {
		panic(fmt.Sprintf("echo: channel %d out of range [0, %d)", c, MaxChannels))
	}

	ci := &u.channels[c]
	if ci.Loop == nil {
		ci.Loop = tape.NewLoop()
	}

	return ci
}

func (u *Unit) isLoop() bool { return u.role != Tail }

// multiTap reports whether the head has at least one tap after it.
func (u *Unit) multiTap() bool {
	return u.right != nil && u.right.role == Tap
}

// lastLoop reports whether no loop unit follows.
func (u *Unit) lastLoop() bool {
	return u.right == nil || u.right.role == Tail
}

func (u *Unit) receiveForward() *Message {
	if u.left == nil {
		return nil
	}

	m := u.left.forward.Receive()
	if !m.Valid {
		return nil
	}

	return m
}

func (u *Unit) receiveBackward() *BackwardMessage {
	if u.right == nil {
		return nil
	}

	m := u.right.backward.Receive()
	if !m.Valid {
		return nil
	}

	return m
}

func (u *Unit) flip() {
	u.forward.Flip()
	u.backward.Flip()
}

func (u *Unit) requestClear()      { u.clearRequested = true }
func (u *Unit) requestTransition() { u.transitionRequested = true }

// onSilent runs inside the head's transition at zero gain.
func (u *Unit) onSilent() {
	u.activeRouting = u.settings.Routing
	if u.clearRequested {
		u.clearRequested = false
		u.clearNow = true
	}
	u.transitionRequested = false
	u.silent = true
}

func (u *Unit) takeSilent() bool {
	s := u.silent
	u.silent = false

	return s
}

func (u *Unit) process(sampleRateHz float64, in *Input, out *Output) {
	switch u.role {
	case Head:
		u.processHead(sampleRateHz, in, out)
	case Tap:
		u.processTap(sampleRateHz, in, out)
	case Tail:
		u.processTail(out)
	}

	out.Overflow = u.overflow
	out.ClockWarning = u.clockWarning
}

func (u *Unit) processHead(sampleRateHz float64, in *Input, out *Output) {
	s := &u.settings

	if !u.multiTap() {
		u.activeRouting = s.Routing
	}

	gain := u.transition.Process(sampleRateHz)
	if u.transition.IsStable() && (s.Routing != u.activeRouting || u.clearRequested || u.transitionRequested) {
		u.transition.Begin()
	}

	routing := u.activeRouting
	if !u.multiTap() {
		routing = Parallel
	}

	msg := Message{
		Valid:                  true,
		ChainIndex:             2,
		Clear:                  u.clearNow,
		ClockConnected:         in.Clock.Channels() > 0,
		ClockFormat:            s.ClockFormat,
		Routing:                routing,
		RoutingGain:            gain,
		Interpolator:           s.Interpolator,
		SnapToMusicalIntervals: s.SnapToMusicalIntervals,
	}
	u.clearNow = false
	u.chainIndex = 1

	u.readInput(sampleRateHz, in, &msg)
	nc := msg.OriginalAudio.NumChannels

	fb := core.Clamp(s.Feedback, 0, 1) * MaxFeedbackRatio
	msg.Feedback.Reset(nc)
	msg.ClockVoltage.Reset(nc)
	for c := range nc {
		msg.Feedback.Sample[c] = fb
		msg.ClockVoltage.Sample[c] = in.Clock.Poly(c)
	}

	u.freezeFader.BeginFade(s.Freeze)
	msg.FreezeMix = u.freezeFader.Advance(sampleRateHz)

	input := msg.OriginalAudio
	u.processLoops(sampleRateHz, &msg, &input, u.receiveBackward(), in, out)
	u.forward.Send(msg)
}

// readInput applies the DC-reject filter and splits mono input into stereo.
func (u *Unit) readInput(sampleRateHz float64, in *Input, msg *Message) {
	audio := in.Audio
	nc := audio.Channels()
	msg.Polyphonic = in.Polyphonic || nc > 2

	switch {
	case nc == 0:
		audio.Reset(2)
		nc = 2
	case nc == 1 && !msg.Polyphonic:
		half := audio.Sample[0] / 2
		audio = NewFrame(half, half)
		nc = 2
	}

	for c := range nc {
		hp := &u.dcReject[c]
		hp.SetCutoff(u.settings.DCRejectHz, sampleRateHz)
		if core.IsFinite(audio.Sample[c]) {
			audio.Sample[c] = hp.Process(audio.Sample[c])
		}
	}

	audio.NumChannels = nc
	msg.OriginalAudio = audio
}

func (u *Unit) processTap(sampleRateHz float64, in *Input, out *Output) {
	var msg Message
	if inbound := u.receiveForward(); inbound != nil {
		msg = *inbound
		u.chainIndex = inbound.ChainIndex
		msg.ChainIndex = u.chainIndex + 1
	} else {
		u.chainIndex = -1
		msg = Message{ChainIndex: -1, Routing: Parallel, RoutingGain: 1}
		nc := u.numChannels
		if nc == 0 {
			nc = 2
		}
		msg.OriginalAudio.Reset(nc)
		msg.ChainAudio.Reset(nc)
	}

	input := msg.OriginalAudio
	if msg.Routing == Serial {
		input = msg.ChainAudio
	}

	bwd := u.receiveBackward()
	u.processLoops(sampleRateHz, &msg, &input, bwd, in, out)

	switch {
	case u.lastLoop():
		u.backward.Send(BackwardMessage{Valid: true, LoopAudio: msg.ChainAudio, SoloCount: msg.SoloCount})
	case bwd != nil:
		u.backward.Send(*bwd)
	default:
		u.backward.Send(BackwardMessage{})
	}

	u.forward.Send(msg)
}

// processLoops runs every channel's tape loop and updates msg in place:
// ChainAudio is replaced and this unit's contributions are added to
// SummedAudio, SoloAudio and SoloCount.
func (u *Unit) processLoops(sampleRateHz float64, msg *Message, input *Frame, bwd *BackwardMessage, in *Input, out *Output) {
	s := &u.settings
	nc := input.Channels()
	if nc == 0 {
		nc = 1
	}

	if nc != u.numChannels {
		for c := range u.channels {
			u.channels[c].Reset()
		}
		u.numChannels = nc
	}

	if msg.Clear {
		for c := range u.channels {
			if l := u.channels[c].Loop; l != nil {
				l.Clear()
			}
		}
	}

	gain := msg.RoutingGain
	level := core.Clamp(s.Level, 0, 2)
	g4 := core.FourthPower(core.Clamp(s.EnvGain, 0, MaxEnvGain))
	clocked := s.TimeMode == ClockSync && msg.ClockConnected

	u.reverseFader.BeginFade(s.Reverse)
	reverseMix := u.reverseFader.Advance(sampleRateHz)
	u.duckFader.BeginFade(s.Duck)
	duckMix := u.duckFader.Advance(sampleRateHz)

	returnConnected := in.Return.Channels() > 0

	var mix, chain Frame
	mix.NumChannels = nc
	chain.NumChannels = nc
	out.Send.Reset(nc)
	out.Envelope.Reset(nc)
	u.overflow = false
	u.clockWarning = false

	for c := range nc {
		ch := u.channel(c)
		ch.Loop.Motor().SetSlew(s.Slew)
		ch.Loop.SetInterpolator(msg.Interpolator)

		x := input.Sample[c]
		t := timeControl(s.Time, s.TimeCV, in.TimeCV.Poly(c))
		delay := t
		if msg.ClockConnected {
			period, ok := ch.Clock.Process(msg.ClockVoltage.Poly(c), sampleRateHz, msg.ClockFormat)
			if clocked {
				if ok {
					delay = clock.SyncedDelay(t, period, msg.SnapToMusicalIntervals)
				}
				if ch.Clock.Warning() {
					u.clockWarning = true
				}
			}
		}
		ch.Loop.SetDelayTime(delay, sampleRateHz)

		fwd := ch.Loop.ReadForward()
		rev := ch.Loop.ReadReverse()
		ch.Loop.UpdateReversePlaybackHead()

		playback := (1-reverseMix)*fwd + reverseMix*rev
		chainOut := fwd
		if s.Flip {
			chainOut = playback
		}

		var fb float64
		switch {
		case msg.Routing == Parallel:
			fb = chainOut
		case u.role == Head && bwd != nil:
			fb = bwd.LoopAudio.Poly(c)
		}

		record := x + msg.Feedback.Poly(c)*fb
		record = core.LinearMix(msg.FreezeMix, record, chainOut)

		if s.Insert == BeforeDelay {
			out.Send.Sample[c] = record
			if returnConnected {
				record = in.Return.Poly(c)
			}
		}

		if !ch.Loop.Write(record, gain) {
			u.overflow = true
		}

		audible := playback
		if s.Insert == AfterDelay {
			out.Send.Sample[c] = playback
			if returnConnected {
				audible = in.Return.Poly(c)
			}
		}

		env := g4 * ch.Env.Process(x, sampleRateHz)
		out.Envelope.Sample[c] = env

		audible *= level * (1 - duckMix*math.Min(1, env))
		mix.Sample[c] = audible * gain
		chain.Sample[c] = chainOut * gain
	}

	if nc == 2 && !msg.Polyphonic {
		pan(&mix, s.Pan)
	}

	u.mixSolo(sampleRateHz, msg, bwd, &mix, out)
	msg.ChainAudio = chain
}

// mixSolo applies mute and solo and adds this unit's output to the
// running sums in msg.
func (u *Unit) mixSolo(sampleRateHz float64, msg *Message, bwd *BackwardMessage, mix *Frame, out *Output) {
	s := &u.settings
	if s.Solo {
		msg.SoloCount++
	}

	total := msg.SoloCount
	if bwd != nil {
		total = bwd.SoloCount
	}

	u.muteFader.BeginFade(s.Mute || (total > 0 && !s.Solo))
	muteMix := u.muteFader.Advance(sampleRateHz)
	u.soloFader.BeginFade(s.Solo)
	soloMix := u.soloFader.Advance(sampleRateHz)

	out.Audio = *mix
	out.Audio.Scale(1 - muteMix)
	msg.SummedAudio.Add(&out.Audio)

	if soloMix > 0 {
		solo := *mix
		solo.Scale(soloMix)
		msg.SoloAudio.Add(&solo)
	}
}

func (u *Unit) processTail(out *Output) {
	inbound := u.receiveForward()
	out.Send.Reset(0)
	out.Envelope.Reset(0)

	if inbound == nil {
		u.chainIndex = -1
		out.Audio.Reset(2)
		out.Solo.Reset(2)

		return
	}

	u.chainIndex = inbound.ChainIndex
	nc := inbound.OriginalAudio.Channels()
	gain := core.Cube(core.Clamp(u.settings.Level, 0, 2))
	mix := core.Clamp(u.settings.Mix, 0, 1)

	out.Audio.Reset(nc)
	out.Solo.Reset(nc)
	for c := range nc {
		out.Audio.Sample[c] = gain * core.LinearMix(mix, inbound.OriginalAudio.Sample[c], inbound.SummedAudio.Sample[c])
		out.Solo.Sample[c] = gain * inbound.SoloAudio.Sample[c]
	}
}

// timeControl combines the time knob with a V/oct control voltage and
// clamps the result to the loop's delay range.
func timeControl(knob, atten, cv float64) float64 {
	if !core.IsFinite(knob) || knob <= 0 {
		knob = tape.DefaultDelaySeconds
	}

	t := core.Clamp(knob, tape.MinDelaySeconds, tape.MaxDelaySeconds)
	octaves := core.Clamp(atten, -1, 1) * cv
	if !core.IsFinite(octaves) || octaves == 0 {
		return t
	}

	return math.Exp2(core.Clamp(math.Log2(t)+octaves, minDelayLog2, maxDelayLog2))
}

// pan applies a constant-power pan law to a stereo frame.
func pan(f *Frame, position float64) {
	theta := math.Pi / 4 * (core.Clamp(position, -1, 1) + 1)
	f.Sample[0] *= math.Sqrt2 * math.Cos(theta)
	f.Sample[1] *= math.Sqrt2 * math.Sin(theta)
}
