package change

import (
	"github.com/npillmayer/textbase"
)

// Stack is the undo/redo history of a document.
//
// A stack holds a list of changes and a pointer into it. Changes before the
// pointer have been applied, changes from the pointer onwards have been undone
// and may be redone, until the next call to Apply discards them.
//
// A stack may be limited in size, in which case the oldest changes are
// dropped when new ones are pushed.
type Stack struct {
	history []*Change
	pointer int
	limit   int
}

// NewStack creates a stack holding at most limit changes. A limit of 0 means
// the history is unlimited.
func NewStack(limit int) *Stack {
	return &Stack{limit: max(limit, 0)}
}

// NewStackFromConfig creates a stack with the history limit of conf.
func NewStackFromConfig(conf textbase.Config) *Stack {
	return NewStack(conf.HistoryLimit)
}

// Apply performs change c and records it. Any changes available for redo are
// discarded. If c cannot be applied, the stack is left untouched and the error
// is returned.
func (s *Stack) Apply(c *Change) error {
	if err := Apply(c); err != nil {
		tracer().Errorf("change stack: %v", err)
		return err
	}
	s.history = append(s.history[:s.pointer], c)
	s.pointer++
	if s.limit > 0 && len(s.history) > s.limit {
		drop := len(s.history) - s.limit
		s.history = append(s.history[:0:0], s.history[drop:]...)
		s.pointer -= drop
	}
	return nil
}

// Undo reverts the most recently applied change and returns it. If there is
// nothing to undo, Undo returns nil and no error.
func (s *Stack) Undo() (*Change, error) {
	if s.pointer == 0 {
		return nil, nil
	}
	c := s.history[s.pointer-1]
	if err := Undo(c); err != nil {
		tracer().Errorf("change stack: %v", err)
		return nil, err
	}
	s.pointer--
	return c, nil
}

// Redo re-applies the most recently undone change and returns it. If there is
// nothing to redo, Redo returns nil and no error.
func (s *Stack) Redo() (*Change, error) {
	if s.pointer == len(s.history) {
		return nil, nil
	}
	c := s.history[s.pointer]
	if err := Apply(c); err != nil {
		tracer().Errorf("change stack: %v", err)
		return nil, err
	}
	s.pointer++
	return c, nil
}

// Current returns the most recently applied change, or nil.
func (s *Stack) Current() *Change {
	if s.pointer == 0 {
		return nil
	}
	return s.history[s.pointer-1]
}

// CanUndo is true if there is a change to undo.
func (s *Stack) CanUndo() bool {
	return s.pointer > 0
}

// CanRedo is true if there is a change to redo.
func (s *Stack) CanRedo() bool {
	return s.pointer < len(s.history)
}

// Len returns the number of changes in the history.
func (s *Stack) Len() int {
	return len(s.history)
}

// Pointer returns the number of changes currently applied.
func (s *Stack) Pointer() int {
	return s.pointer
}

// Clear drops the complete history. The text is not modified.
func (s *Stack) Clear() {
	s.history = nil
	s.pointer = 0
}
