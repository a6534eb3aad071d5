package editor

import "sitecraft/local-app/src/pkg/model"

// The predicates below are the preconditions of the guarded store operations.
// An operation whose predicate is false leaves the store untouched.

// HasElement reports whether id is in the collection.
func (s *ElementStore) HasElement(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// CanGroup reports whether at least two distinct existing elements are named.
func (s *ElementStore) CanGroup(ids []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canGroup(ids)
}

func (s *ElementStore) canGroup(ids []string) bool {
	return len(s.existing(ids)) >= 2
}

// CanUngroup reports whether id is a group with at least one child.
func (s *ElementStore) CanUngroup(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canUngroup(id)
}

func (s *ElementStore) canUngroup(id string) bool {
	e := s.find(id)
	return e != nil && e.Type == model.TypeGroup && len(e.Children) > 0
}

// CanAlign reports whether at least two existing elements are named and the alignment is known.
func (s *ElementStore) CanAlign(ids []string, alignment Alignment) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canAlign(ids, alignment)
}

func (s *ElementStore) canAlign(ids []string, alignment Alignment) bool {
	return alignment.valid() && len(s.existing(ids)) >= 2
}

// CanDistribute reports whether at least three existing elements are named and the axis is known.
func (s *ElementStore) CanDistribute(ids []string, axis Axis) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canDistribute(ids, axis)
}

func (s *ElementStore) canDistribute(ids []string, axis Axis) bool {
	return axis.valid() && len(s.existing(ids)) >= 3
}

// CanPaste reports whether the clipboard holds anything.
func (s *ElementStore) CanPaste() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.clipboard.IsEmpty()
}

func (s *ElementStore) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

func (s *ElementStore) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}
