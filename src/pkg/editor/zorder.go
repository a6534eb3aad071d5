package editor

import (
	"sort"

	"sitecraft/local-app/src/pkg/model"
)

// PaintOrder returns collection indices sorted by zIndex. Ties keep collection order.
func PaintOrder(elements []model.Element) []int {
	order := make([]int, len(elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return elements[order[a]].ZIndex < elements[order[b]].ZIndex
	})
	return order
}

// paintPosition returns the position of id in paint order along with the order itself.
func (s *ElementStore) paintPosition(id string) (int, []int) {
	order := PaintOrder(s.elements)
	idx := s.indexOf(id)
	for pos, i := range order {
		if i == idx {
			return pos, order
		}
	}
	return -1, order
}

// swapPaint exchanges two adjacent paint positions and renumbers every zIndex.
func (s *ElementStore) swapPaint(order []int, a, b int) {
	order[a], order[b] = order[b], order[a]
	s.restack(order)
}

// MoveElementUp swaps the element with the one painted directly above it.
func (s *ElementStore) MoveElementUp(id string) {
	s.apply("move-up", func() change {
		pos, order := s.paintPosition(id)
		if pos < 0 || pos == len(order)-1 {
			return 0
		}
		s.swapPaint(order, pos, pos+1)
		return changeElements | s.snapshot()
	})
}

// MoveElementDown swaps the element with the one painted directly below it.
func (s *ElementStore) MoveElementDown(id string) {
	s.apply("move-down", func() change {
		pos, order := s.paintPosition(id)
		if pos <= 0 {
			return 0
		}
		s.swapPaint(order, pos, pos-1)
		return changeElements | s.snapshot()
	})
}

// MoveElementToFront paints the element last and renumbers every zIndex.
func (s *ElementStore) MoveElementToFront(id string) {
	s.apply("front", func() change {
		pos, order := s.paintPosition(id)
		if pos < 0 || pos == len(order)-1 {
			return 0
		}
		moved := order[pos]
		order = append(order[:pos], order[pos+1:]...)
		order = append(order, moved)
		s.restack(order)
		return changeElements | s.snapshot()
	})
}

// MoveElementToBack paints the element first and renumbers every zIndex.
func (s *ElementStore) MoveElementToBack(id string) {
	s.apply("back", func() change {
		pos, order := s.paintPosition(id)
		if pos <= 0 {
			return 0
		}
		moved := order[pos]
		order = append(order[:pos], order[pos+1:]...)
		order = append([]int{moved}, order...)
		s.restack(order)
		return changeElements | s.snapshot()
	})
}

// restack rewrites the collection in the given index order with zIndex 1..n.
func (s *ElementStore) restack(order []int) {
	stacked := make([]model.Element, len(order))
	for z, i := range order {
		e := s.elements[i]
		if e.ZIndex != z+1 {
			e.ZIndex = z + 1
			e.UpdatedAt = s.now()
		}
		stacked[z] = e
	}
	s.elements = stacked
}
