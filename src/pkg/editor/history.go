package editor

import (
	"reflect"

	"sitecraft/local-app/src/pkg/model"
)

// HistoryManager keeps a linear log of element collection snapshots with a movable cursor.
type HistoryManager struct {
	snapshots [][]model.Element
	index     int
	limit     int
}

// NewHistoryManager creates a history whose first snapshot is a copy of initial.
// A limit of zero keeps every snapshot.
func NewHistoryManager(initial []model.Element, limit int) *HistoryManager {
	return &HistoryManager{
		snapshots: [][]model.Element{cloneElements(initial)},
		index:     0,
		limit:     limit,
	}
}

// HistoryAdd truncates any redo branch and appends a copy of elements.
func (hm *HistoryManager) HistoryAdd(elements []model.Element) {
	hm.snapshots = append(hm.snapshots[:hm.index+1], cloneElements(elements))
	hm.index = len(hm.snapshots) - 1

	if hm.limit > 0 && len(hm.snapshots) > hm.limit {
		dropped := len(hm.snapshots) - hm.limit
		hm.snapshots = append([][]model.Element(nil), hm.snapshots[dropped:]...)
		hm.index -= dropped
	}
}

// Undo moves the cursor back and returns a copy of the snapshot it lands on.
func (hm *HistoryManager) Undo() ([]model.Element, bool) {
	if !hm.CanUndo() {
		return nil, false
	}
	hm.index--
	return cloneElements(hm.snapshots[hm.index]), true
}

// Redo moves the cursor forward and returns a copy of the snapshot it lands on.
func (hm *HistoryManager) Redo() ([]model.Element, bool) {
	if !hm.CanRedo() {
		return nil, false
	}
	hm.index++
	return cloneElements(hm.snapshots[hm.index]), true
}

func (hm *HistoryManager) CanUndo() bool { return hm.index > 0 }

func (hm *HistoryManager) CanRedo() bool { return hm.index < len(hm.snapshots)-1 }

// Index returns the cursor position.
func (hm *HistoryManager) Index() int { return hm.index }

// Len returns the number of snapshots held.
func (hm *HistoryManager) Len() int { return len(hm.snapshots) }

// Current returns a copy of the snapshot under the cursor.
func (hm *HistoryManager) Current() []model.Element {
	return cloneElements(hm.snapshots[hm.index])
}

// Matches reports whether elements deep-equal the snapshot under the cursor.
func (hm *HistoryManager) Matches(elements []model.Element) bool {
	current := hm.snapshots[hm.index]
	if len(current) == 0 && len(elements) == 0 {
		return true
	}
	return reflect.DeepEqual(current, elements)
}

// HistoryReset discards every snapshot and starts again from initial.
func (hm *HistoryManager) HistoryReset(initial []model.Element) {
	hm.snapshots = [][]model.Element{cloneElements(initial)}
	hm.index = 0
}
