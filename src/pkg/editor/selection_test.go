package editor

import (
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func TestSelectionStateMachine(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 0, 0, 10, 10)
	b := add(s, model.TypeText, 0, 0, 10, 10)
	c := add(s, model.TypeText, 0, 0, 10, 10)

	s.SelectElement("")
	if s.SelectionState() != NoSelection {
		t.Fatalf("state = %v, want none", s.SelectionState())
	}

	s.SelectElement(a)
	if s.SelectionState() != SingleSelected || s.SelectedElementID() != a {
		t.Fatalf("state = %v selected %q", s.SelectionState(), s.SelectedElementID())
	}

	s.ToggleElementSelection(b)
	if s.SelectionState() != MultiSelected || !reflect.DeepEqual(s.MultipleSelection(), []string{a, b}) {
		t.Fatalf("after toggle: %v %v", s.SelectionState(), s.MultipleSelection())
	}

	s.ToggleElementSelection(a)
	if s.SelectionState() != SingleSelected || s.SelectedElementID() != b {
		t.Errorf("after untoggle: %v primary %q", s.SelectionState(), s.SelectedElementID())
	}

	s.SelectMultipleElements([]string{c, "ghost", a, c})
	if !reflect.DeepEqual(s.MultipleSelection(), []string{c, a}) || s.SelectedElementID() != c {
		t.Errorf("multi = %v primary %q", s.MultipleSelection(), s.SelectedElementID())
	}

	s.SelectMultipleElements(nil)
	if s.SelectionState() != NoSelection {
		t.Errorf("empty multi-select should clear selection")
	}
}

func TestSelectMissingIsNoop(t *testing.T) {
	s := newTestStore(t, Options{})
	add(s, model.TypeButton, 0, 0, 10, 10)
	before := stateOf(s)
	s.SelectElement("ghost")
	s.ToggleElementSelection("ghost")
	assertUnchanged(t, before, s)
}

func TestSelectionDoesNotSnapshot(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 0, 0, 10, 10)
	b := add(s, model.TypeText, 0, 0, 10, 10)
	index := s.HistoryIndex()
	s.SelectMultipleElements([]string{a, b})
	s.SelectElement(a)
	if s.HistoryIndex() != index {
		t.Error("selection recorded a snapshot")
	}
}
