package echo

// Input is the host-provided signal set for one unit and one frame.
// Zero-channel frames mean "not connected".
type Input struct {
	// Audio is read by the head only. A single channel is split into a
	// stereo pair unless Polyphonic is set.
	Audio      Frame
	Polyphonic bool
	// Clock is read by the head only and forwarded to every tap.
	Clock Frame
	// TimeCV adds volts-per-octave to the time control, scaled by the
	// unit's TimeCV attenuverter.
	TimeCV Frame
	// Return replaces the send signal when connected.
	Return Frame
}

// Output is what one unit produced in a frame.
type Output struct {
	// Audio is a loop unit's own audible output after mute, or the tail's
	// final mix.
	Audio Frame
	// Solo is the tail's solo-only mix.
	Solo     Frame
	Send     Frame
	Envelope Frame
	// Overflow is set while any of the unit's loops recovers from an overload.
	Overflow bool
	// ClockWarning is set while a clocked channel has been dead for the
	// debounce period.
	ClockWarning bool
}
