package echo

import (
	"fmt"
	"slices"
)

// MaxUndo is the number of commands a History remembers.
const MaxUndo = 64

// History runs commands against a chain and keeps them for undo and redo.
type History struct {
	chain  *Chain
	done   []Command
	undone []Command
}

// NewHistory returns an empty history for c.
func NewHistory(c *Chain) *History {
	return &History{chain: c}
}

// Do runs cmd and records it. A new command discards the redo list.
func (h *History) Do(cmd Command) error {
	if err := cmd.Do(h.chain); err != nil {
		return err
	}

	h.done = append(h.done, cmd)
	if len(h.done) > MaxUndo {
		h.done = slices.Delete(h.done, 0, len(h.done)-MaxUndo)
	}
	h.undone = h.undone[:0]

	return nil
}

// Undo reverts the most recent command.
func (h *History) Undo() error {
	if len(h.done) == 0 {
		return ErrNothingToUndo
	}

	cmd := h.done[len(h.done)-1]
	if err := cmd.Undo(h.chain); err != nil {
		return fmt.Errorf("undo %s: %w", cmd, err)
	}

	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, cmd)

	return nil
}

// Redo re-runs the most recently undone command.
func (h *History) Redo() error {
	if len(h.undone) == 0 {
		return ErrNothingToRedo
	}

	cmd := h.undone[len(h.undone)-1]
	if err := cmd.Do(h.chain); err != nil {
		return fmt.Errorf("redo %s: %w", cmd, err)
	}

	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, cmd)

	return nil
}

// Len returns the number of commands that can be undone.
func (h *History) Len() int { return len(h.done) }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }
