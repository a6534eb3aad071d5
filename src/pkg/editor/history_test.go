package editor

import (
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func TestHistoryLinearity(t *testing.T) {
	s := newTestStore(t, Options{})
	const n = 5
	for i := 0; i < n; i++ {
		add(s, model.TypeText, float64(i*10), 0, 10, 10)
	}
	if s.HistoryIndex() != n {
		t.Fatalf("index = %d, want %d", s.HistoryIndex(), n)
	}

	s.Undo()
	s.Undo()
	if s.HistoryIndex() != n-2 || s.Len() != n-2 {
		t.Fatalf("after undo: index=%d len=%d", s.HistoryIndex(), s.Len())
	}
	if !s.CanRedo() {
		t.Fatal("redo should be available")
	}

	add(s, model.TypeButton, 0, 50, 10, 10)
	if s.CanRedo() {
		t.Error("redo branch not discarded")
	}
	if s.HistoryIndex() != n-1 || s.HistoryLen() != n {
		t.Errorf("index=%d len=%d, want %d/%d", s.HistoryIndex(), s.HistoryLen(), n-1, n)
	}
}

func TestUndoRedoRestoreSnapshots(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 0, 0, 10, 10)
	afterAdd := s.Elements()
	s.DeleteElement(a)

	s.Undo()
	if !reflect.DeepEqual(s.Elements(), afterAdd) {
		t.Errorf("undo did not restore snapshot")
	}
	s.Redo()
	if s.Len() != 0 {
		t.Errorf("redo did not reapply delete")
	}
}

func TestUndoRedoBoundariesAreNoops(t *testing.T) {
	s := newTestStore(t, Options{})
	before := stateOf(s)
	s.Undo()
	s.Redo()
	assertUnchanged(t, before, s)

	add(s, model.TypeButton, 0, 0, 10, 10)
	at := stateOf(s)
	s.Redo()
	assertUnchanged(t, at, s)
}

func TestUndoPrunesSelection(t *testing.T) {
	s := newTestStore(t, Options{})
	add(s, model.TypeButton, 0, 0, 10, 10)
	b := add(s, model.TypeText, 0, 0, 10, 10)
	if s.SelectedElementID() != b {
		t.Fatal("b not selected")
	}
	s.Undo()
	if s.SelectedElementID() != "" || len(s.MultipleSelection()) != 0 {
		t.Errorf("selection still references undone element")
	}
}

func TestHistoryCursorMatchesLiveCollection(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 0, 0, 10, 10)
	b := add(s, model.TypeText, 30, 0, 10, 10)
	s.GroupElements([]string{a, b})
	s.Undo()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.history.Matches(s.elements) {
		t.Error("history[cursor] differs from live collection after undo")
	}
}

func TestHistoryLimitDropsOldest(t *testing.T) {
	hm := NewHistoryManager(nil, 3)
	for i := 0; i < 5; i++ {
		hm.HistoryAdd([]model.Element{{ID: "x", ZIndex: i}})
	}
	if hm.Len() != 3 || hm.Index() != 2 {
		t.Fatalf("len=%d index=%d, want 3/2", hm.Len(), hm.Index())
	}
	prev, ok := hm.Undo()
	if !ok || prev[0].ZIndex != 3 {
		t.Errorf("undo landed on %+v", prev)
	}
	hm.Undo()
	if hm.CanUndo() {
		t.Error("oldest retained snapshot should be the floor")
	}
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	live := []model.Element{{ID: "a", Styles: map[string]string{"color": "red"}}}
	hm := NewHistoryManager(nil, 0)
	hm.HistoryAdd(live)
	live[0].Styles["color"] = "blue"

	if got := hm.Current()[0].Styles["color"]; got != "red" {
		t.Errorf("snapshot shares memory with live collection: %q", got)
	}
}
