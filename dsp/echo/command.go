package echo

import (
	"fmt"
)

// Command is a reversible edit of a chain.
type Command interface {
	Do(c *Chain) error
	Undo(c *Chain) error
	String() string
}

// InsertTap inserts a tap to the right of unit After. The new tap starts
// with a copy of its left neighbour's settings.
type InsertTap struct {
	After int

	unit *Unit
}

func (cmd *InsertTap) String() string { return fmt.Sprintf("insert tap after %d", cmd.After) }

func (cmd *InsertTap) Do(c *Chain) error {
	if cmd.After < 0 || cmd.After >= c.Len()-1 {
		return fmt.Errorf("%w: insert after %d", ErrNoSuchUnit, cmd.After)
	}

	left := c.units[cmd.After]
	cmd.unit = c.insertTap(cmd.After+1, tapSettings(left.settings))

	return nil
}

func (cmd *InsertTap) Undo(c *Chain) error {
	if cmd.unit == nil || c.IndexOf(cmd.unit) < 0 {
		return fmt.Errorf("%w: inserted tap is gone", ErrNoSuchUnit)
	}

	c.scheduleRemoval(cmd.unit)

	return nil
}

// RemoveTap removes tap Index at the head's next silent point.
type RemoveTap struct {
	Index int

	unit     *Unit
	settings Settings
}

func (cmd *RemoveTap) String() string { return fmt.Sprintf("remove unit %d", cmd.Index) }

func (cmd *RemoveTap) Do(c *Chain) error {
	if cmd.Index < 0 || cmd.Index >= c.Len() {
		return fmt.Errorf("%w: %d", ErrNoSuchUnit, cmd.Index)
	}

	u := c.units[cmd.Index]
	if u.role != Tap {
		return fmt.Errorf("%w: %s", ErrNotRemovable, u.role)
	}

	if u.removing {
		return fmt.Errorf("%w: unit %d is already being removed", ErrNoSuchUnit, cmd.Index)
	}

	cmd.unit = u
	cmd.settings = u.settings
	c.scheduleRemoval(u)

	return nil
}

func (cmd *RemoveTap) Undo(c *Chain) error {
	if cmd.unit != nil && c.cancelRemoval(cmd.unit) {
		return nil
	}

	i := min(cmd.Index, c.Len()-1)
	if i < 1 {
		return fmt.Errorf("%w: %d", ErrNoSuchUnit, cmd.Index)
	}

	cmd.unit = c.insertTap(i, cmd.settings)

	return nil
}

// ToggleAllClockSync switches every loop unit to Seconds when more than
// half are clock-synced, and to ClockSync otherwise.
type ToggleAllClockSync struct {
	before []TimeMode
}

func (cmd *ToggleAllClockSync) String() string { return "toggle all clock sync" }

func (cmd *ToggleAllClockSync) Do(c *Chain) error {
	loops := c.units[:c.NumLoops()]

	cmd.before = cmd.before[:0]
	clocked := 0
	for _, u := range loops {
		cmd.before = append(cmd.before, u.settings.TimeMode)
		if u.settings.TimeMode == ClockSync {
			clocked++
		}
	}

	mode := ClockSync
	if 2*clocked > len(loops) {
		mode = Seconds
	}

	for _, u := range loops {
		u.settings.TimeMode = mode
	}

	return nil
}

func (cmd *ToggleAllClockSync) Undo(c *Chain) error {
	for i, mode := range cmd.before {
		if i >= c.NumLoops() {
			break
		}
		c.units[i].settings.TimeMode = mode
	}

	return nil
}

// InitializeChain resets every unit to default settings and clears the loops.
type InitializeChain struct {
	before []Settings
}

func (cmd *InitializeChain) String() string { return "initialize chain" }

func (cmd *InitializeChain) Do(c *Chain) error {
	cmd.before = cmd.before[:0]
	for _, u := range c.units {
		cmd.before = append(cmd.before, u.settings)
		u.settings = DefaultSettings()
	}

	c.Clear()

	return nil
}

func (cmd *InitializeChain) Undo(c *Chain) error {
	for i, s := range cmd.before {
		if i >= c.Len() {
			break
		}
		c.units[i].settings = s
	}

	return nil
}

// Field names a boolean control flipped by Toggle.
type Field int

const (
	FieldReverse Field = iota
	FieldFlip
	FieldDuck
	FieldMute
	FieldSolo
	FieldClockSync
	FieldFreeze
	FieldSnap
	FieldRouting
)

var fieldNames = [...]string{"reverse", "flip", "duck", "mute", "solo", "clock sync", "freeze", "snap", "routing"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}

	return fieldNames[f]
}

// headOnly reports whether f is a global control owned by the head.
func (f Field) headOnly() bool {
	return f == FieldFreeze || f == FieldSnap || f == FieldRouting
}

// Toggle flips one boolean control of unit Index.
type Toggle struct {
	Index int
	Field Field
}

func (cmd *Toggle) String() string { return fmt.Sprintf("toggle %s on unit %d", cmd.Field, cmd.Index) }

func (cmd *Toggle) Do(c *Chain) error {
	if cmd.Index < 0 || cmd.Index >= c.Len() {
		return fmt.Errorf("%w: %d", ErrNoSuchUnit, cmd.Index)
	}

	u := c.units[cmd.Index]
	if !u.isLoop() || (cmd.Field.headOnly() && u.role != Head) {
		return fmt.Errorf("%w: %s on %s", ErrNotApplicable, cmd.Field, u.role)
	}

	s := &u.settings
	switch cmd.Field {
	case FieldReverse:
		s.Reverse = !s.Reverse
	case FieldFlip:
		s.Flip = !s.Flip
	case FieldDuck:
		s.Duck = !s.Duck
	case FieldMute:
		s.Mute = !s.Mute
	case FieldSolo:
		s.Solo = !s.Solo
	case FieldClockSync:
		if s.TimeMode == ClockSync {
			s.TimeMode = Seconds
		} else {
			s.TimeMode = ClockSync
		}
	case FieldFreeze:
		s.Freeze = !s.Freeze
	case FieldSnap:
		s.SnapToMusicalIntervals = !s.SnapToMusicalIntervals
	case FieldRouting:
		if s.Routing == Serial {
			s.Routing = Parallel
		} else {
			s.Routing = Serial
		}
	default:
		return fmt.Errorf("%w: %s", ErrNotApplicable, cmd.Field)
	}

	return nil
}

// Undo flips the field back.
func (cmd *Toggle) Undo(c *Chain) error {
	return cmd.Do(c)
}

// tapSettings derives a new tap's settings from its left neighbour.
// Mute and solo are not inherited.
func tapSettings(left Settings) Settings {
	s := left
	s.Mute = false
	s.Solo = false

	return s
}
