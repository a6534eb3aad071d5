package editor

import (
	"testing"

	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

func TestPasteAtTargetSingle(t *testing.T) {
	s := newTestStore(t, Options{})
	src := add(s, model.TypeButton, 100, 100, 50, 50)
	s.Copy([]string{src})

	pasted := s.Paste(&geometry.Point{X: 300, Y: 300})
	if len(pasted) != 1 || pasted[0] == src {
		t.Fatalf("pasted = %v", pasted)
	}
	e := mustElement(t, s, pasted[0])
	if e.X != 300 || e.Y != 300 || e.Width != 50 || e.Height != 50 {
		t.Errorf("pasted at %v,%v %vx%v", e.X, e.Y, e.Width, e.Height)
	}
	if s.SelectedElementID() != pasted[0] {
		t.Error("pasted element not selected")
	}
}

func TestPasteMultiplePreservesOffsets(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 40, 60, 10, 10)
	b := add(s, model.TypeText, 100, 20, 10, 10)
	s.Copy([]string{a, b})

	pasted := s.Paste(&geometry.Point{X: 0, Y: 0})
	if len(pasted) != 2 {
		t.Fatalf("pasted = %v", pasted)
	}
	pa, pb := mustElement(t, s, pasted[0]), mustElement(t, s, pasted[1])
	if pa.X != 0 || pa.Y != 40 || pb.X != 60 || pb.Y != 0 {
		t.Errorf("positions a=%v,%v b=%v,%v", pa.X, pa.Y, pb.X, pb.Y)
	}
	if s.SelectionState() != MultiSelected {
		t.Errorf("selection state = %v", s.SelectionState())
	}
}

func TestPasteWithoutTargetOffsets(t *testing.T) {
	s := newTestStore(t, Options{})
	src := add(s, model.TypeButton, 10, 10, 50, 50)
	s.Copy([]string{src})

	first := s.Paste(nil)
	second := s.Paste(nil)
	if len(first) != 1 || len(second) != 1 || first[0] == second[0] {
		t.Fatalf("copy-paste should be repeatable: %v %v", first, second)
	}
	e := mustElement(t, s, first[0])
	if e.X != 30 || e.Y != 30 {
		t.Errorf("pasted at %v,%v, want 30,30", e.X, e.Y)
	}
}

func TestCutPasteIsSingleUse(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 0, 0, 10, 10)
	b := add(s, model.TypeText, 30, 0, 10, 10)
	g := s.GroupElements([]string{a, b})
	index := s.HistoryIndex()

	s.Cut([]string{g})
	if s.Len() != 0 {
		t.Fatalf("cut should cascade like delete, %d elements left", s.Len())
	}
	if s.HistoryIndex() != index+1 || s.ClipboardMode() != ClipboardCut {
		t.Errorf("cut: index=%d mode=%q", s.HistoryIndex(), s.ClipboardMode())
	}

	pasted := s.Paste(nil)
	if len(pasted) != 1 || s.CanPaste() {
		t.Errorf("cut clipboard should be emptied after paste, pasted=%v", pasted)
	}
	e := mustElement(t, s, pasted[0])
	if e.Parent != "" || len(e.Children) != 0 {
		t.Errorf("pasted element not detached: %+v", e)
	}
	assertValid(t, s)
}

func TestCopyUsesDrawnPosition(t *testing.T) {
	s := newTestStore(t, Options{})
	a := add(s, model.TypeButton, 10, 10, 10, 10)
	b := add(s, model.TypeText, 50, 70, 10, 10)
	s.GroupElements([]string{a, b})
	s.Copy([]string{b})

	pasted := s.Paste(nil)
	e := mustElement(t, s, pasted[0])
	if e.X != 70 || e.Y != 90 {
		t.Errorf("pasted at %v,%v, want 70,90", e.X, e.Y)
	}
}

func TestPasteEmptyClipboardIsNoop(t *testing.T) {
	s := newTestStore(t, Options{})
	add(s, model.TypeButton, 0, 0, 10, 10)
	if s.CanPaste() {
		t.Fatal("clipboard should start empty")
	}
	before := stateOf(s)
	if got := s.Paste(&geometry.Point{X: 5, Y: 5}); got != nil {
		t.Errorf("pasted %v from empty clipboard", got)
	}
	assertUnchanged(t, before, s)
}
