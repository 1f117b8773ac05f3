package echo

import "errors"

var (
	// ErrNoSuchUnit reports a unit index outside the chain.
	ErrNoSuchUnit = errors.New("echo: no such unit")
	// ErrNotRemovable reports an attempt to remove the head or the tail.
	ErrNotRemovable = errors.New("echo: unit cannot be removed")
	// ErrNotApplicable reports a toggle the addressed unit does not support.
	ErrNotApplicable = errors.New("echo: toggle not applicable to unit")
	// ErrNothingToUndo is returned by History.Undo on an empty history.
	ErrNothingToUndo = errors.New("echo: nothing to undo")
	// ErrNothingToRedo is returned by History.Redo when no undone command remains.
	ErrNothingToRedo = errors.New("echo: nothing to redo")
)
