package editor

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"testing"
	"time"

	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

func newTestStore(t *testing.T, opts Options) *ElementStore {
	t.Helper()
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	em := event.NewEventManager(logger)
	t.Cleanup(func() {
		em.Wait()
		logger.Close()
	})

	n := 0
	if opts.IDGenerator == nil {
		opts.IDGenerator = func() string {
			n++
			return fmt.Sprintf("e%d", n)
		}
	}
	if opts.Clock == nil {
		fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		opts.Clock = func() time.Time { return fixed }
	}

	s, err := NewElementStore(em, logger, opts)
	if err != nil {
		t.Fatalf("NewElementStore: %v", err)
	}
	return s
}

func add(s *ElementStore, typ model.ElementType, x, y, w, h float64) string {
	return s.AddElement(model.ElementInfo{Type: typ, X: x, Y: y, Width: w, Height: h})
}

func mustElement(t *testing.T, s *ElementStore, id string) model.Element {
	t.Helper()
	e, ok := s.Element(id)
	if !ok {
		t.Fatalf("element %q not found", id)
	}
	return e
}

func assertValid(t *testing.T, s *ElementStore) {
	t.Helper()
	if errs := s.Validate(); len(errs) > 0 {
		t.Fatalf("invariants violated: %v", errs)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// storeState captures everything a no-op must leave untouched.
type storeState struct {
	elements []model.Element
	selected string
	multi    []string
	index    int
	length   int
}

func stateOf(s *ElementStore) storeState {
	return storeState{
		elements: s.Elements(),
		selected: s.SelectedElementID(),
		multi:    s.MultipleSelection(),
		index:    s.HistoryIndex(),
		length:   s.HistoryLen(),
	}
}

func assertUnchanged(t *testing.T, before storeState, s *ElementStore) {
	t.Helper()
	after := stateOf(s)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed:\nbefore %+v\nafter  %+v", before, after)
	}
}
