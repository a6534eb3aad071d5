package editor

import (
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func paintIDs(s *ElementStore) []string {
	elements := s.Elements()
	var ids []string
	for _, i := range PaintOrder(elements) {
		ids = append(ids, elements[i].ID)
	}
	return ids
}

func TestMoveToFrontAndBack(t *testing.T) {
	s := newTestStore(t, Options{})
	for i := 0; i < 4; i++ {
		add(s, model.TypeContainer, 0, 0, 10, 10)
	}

	s.MoveElementToFront("e2")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"e1", "e3", "e4", "e2"}) {
		t.Errorf("after front: %v", got)
	}
	for i, e := range s.Elements() {
		if e.ZIndex != i+1 {
			t.Errorf("zIndex not restamped: %s=%d at %d", e.ID, e.ZIndex, i)
		}
	}

	s.MoveElementToBack("e4")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"e4", "e1", "e3", "e2"}) {
		t.Errorf("after back: %v", got)
	}
}

func TestMoveUpDown(t *testing.T) {
	s := newTestStore(t, Options{})
	for i := 0; i < 3; i++ {
		add(s, model.TypeContainer, 0, 0, 10, 10)
	}

	s.MoveElementUp("e1")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"e2", "e1", "e3"}) {
		t.Errorf("after up: %v", got)
	}
	if mustElement(t, s, "e1").ZIndex != 2 || mustElement(t, s, "e2").ZIndex != 1 {
		t.Error("zIndex values not swapped")
	}

	s.MoveElementDown("e3")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"e2", "e3", "e1"}) {
		t.Errorf("after down: %v", got)
	}
}

func TestMoveUpWithTiedZIndex(t *testing.T) {
	s := newTestStore(t, Options{})
	s.LoadTemplate([]model.Element{
		{ID: "a", Type: model.TypeText, ZIndex: 1},
		{ID: "b", Type: model.TypeText, ZIndex: 1},
		{ID: "c", Type: model.TypeText, ZIndex: 2},
	})

	s.MoveElementUp("a")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("paint order = %v", got)
	}
}

func TestMoveAcrossTiedNeighbour(t *testing.T) {
	s := newTestStore(t, Options{})
	s.LoadTemplate([]model.Element{
		{ID: "b", Type: model.TypeText, ZIndex: 5},
		{ID: "c", Type: model.TypeText, ZIndex: 5},
		{ID: "a", Type: model.TypeText, ZIndex: 2},
	})

	s.MoveElementUp("a")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("after up: %v", got)
	}

	s.MoveElementDown("c")
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("after down: %v", got)
	}
	for i, e := range s.Elements() {
		if e.ZIndex != i+1 {
			t.Errorf("zIndex not restamped: %s=%d at %d", e.ID, e.ZIndex, i)
		}
	}
}

func TestZOrderBoundariesAreNoops(t *testing.T) {
	s := newTestStore(t, Options{})
	add(s, model.TypeContainer, 0, 0, 10, 10)
	add(s, model.TypeContainer, 0, 0, 10, 10)
	before := stateOf(s)

	s.MoveElementUp("e2")
	s.MoveElementToFront("e2")
	s.MoveElementDown("e1")
	s.MoveElementToBack("e1")
	s.MoveElementUp("ghost")
	assertUnchanged(t, before, s)
}

func TestZOrderMovesSnapshot(t *testing.T) {
	s := newTestStore(t, Options{})
	add(s, model.TypeContainer, 0, 0, 10, 10)
	add(s, model.TypeContainer, 0, 0, 10, 10)

	s.MoveElementToBack("e2")
	s.Undo()
	if got := paintIDs(s); !reflect.DeepEqual(got, []string{"e1", "e2"}) {
		t.Errorf("undo of z-order move gave %v", got)
	}
}
