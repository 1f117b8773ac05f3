// Package echo implements a chain of tape-loop delay units that behave as
// one multi-tap echo.
//
// A [Chain] holds a head unit, any number of tap units and a tail unit.
// Once per audio frame every unit reads the message its left neighbour
// published in the previous frame, processes one sample per channel, and
// publishes a new [Message] to the right and a [BackwardMessage] to the
// left. Every link is double-buffered, so a unit never observes a message
// that is still being written and no locking is needed.
//
// The head reads host audio and owns the global controls (feedback,
// freeze, clear, routing, interpolator, clock format). Taps repeat the
// per-channel loop processing on either the original input (Parallel) or
// the previous unit's output (Serial). The tail mixes the dry signal with
// the sum of all taps.
//
// Structural edits and global toggles are expressed as [Command] values so
// a [History] can undo and redo them.
package echo
