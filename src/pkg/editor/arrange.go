package editor

import (
	"sort"

	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

// Alignment names the edge or axis elements are aligned to.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignTop    Alignment = "top"
	AlignBottom Alignment = "bottom"
	AlignCenter Alignment = "center"
	AlignMiddle Alignment = "middle"
)

func (a Alignment) valid() bool {
	switch a {
	case AlignLeft, AlignRight, AlignTop, AlignBottom, AlignCenter, AlignMiddle:
		return true
	}
	return false
}

// Axis names the direction elements are distributed along.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

func (a Axis) valid() bool {
	return a == AxisHorizontal || a == AxisVertical
}

// existing returns the distinct ids among ids that are present in the collection, in order.
func (s *ElementStore) existing(ids []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range ids {
		if seen[id] || s.indexOf(id) < 0 {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// isDescendant reports whether candidate is id or lies below it in the hierarchy.
func (s *ElementStore) isDescendant(candidate, id string) bool {
	return s.descendants(id)[candidate]
}

// reparent moves child under parentID ("" for the canvas), keeping its drawn position
// and updating the children lists on both sides. It reports whether anything changed.
func (s *ElementStore) reparent(childID, parentID string) bool {
	child := s.find(childID)
	if child == nil || child.Parent == parentID {
		return false
	}
	var parentPos geometry.Point
	if parentID != "" {
		parent := s.find(parentID)
		if parent == nil || s.isDescendant(parentID, childID) {
			return false
		}
		parentPos = s.absolutePosition(parent)
	}

	abs := s.absolutePosition(child)
	if old := s.find(child.Parent); old != nil {
		old.Children = removeString(old.Children, childID)
		s.touch(old)
	}

	child = s.find(childID)
	child.X = abs.X - parentPos.X
	child.Y = abs.Y - parentPos.Y
	child.Parent = parentID
	s.touch(child)

	if parentID != "" {
		parent := s.find(parentID)
		parent.Children = append(parent.Children, childID)
		s.touch(parent)
	}
	return true
}

// Reparent places child under parent, or on the canvas when parentID is "".
// The element keeps its drawn position.
func (s *ElementStore) Reparent(childID, parentID string) {
	s.apply("reparent", func() change {
		if !s.reparent(childID, parentID) {
			return 0
		}
		return changeElements | s.snapshot()
	})
}

// GroupElements wraps the elements in a new group sized to their bounding box.
// Members keep their drawn position and become relative to the group.
func (s *ElementStore) GroupElements(ids []string) string {
	var groupID string
	s.apply("group", func() change {
		if !s.canGroup(ids) {
			return 0
		}

		// Members nested inside another member stay with that member
		members := s.existing(ids)
		var top []string
		for _, id := range members {
			nested := false
			for _, other := range members {
				if other != id && s.isDescendant(id, other) {
					nested = true
					break
				}
			}
			if !nested {
				top = append(top, id)
			}
		}

		rects := make([]geometry.Rect, 0, len(top))
		for _, id := range top {
			rects = append(rects, s.absoluteRect(s.find(id)))
		}
		box, _ := geometry.BoundingBox(rects)

		// Children are listed in paint order
		rank := map[string]int{}
		for pos, i := range PaintOrder(s.elements) {
			rank[s.elements[i].ID] = pos
		}
		sort.SliceStable(top, func(a, b int) bool { return rank[top[a]] < rank[top[b]] })

		now := s.now()
		groupID = s.freshID()
		s.elements = append(s.elements, model.Element{
			ID:         groupID,
			Type:       model.TypeGroup,
			X:          box.X,
			Y:          box.Y,
			Width:      box.Width,
			Height:     box.Height,
			ZIndex:     len(s.elements) + 1,
			Styles:     map[string]string{},
			Children:   []string{},
			Animations: []model.Animation{},
			Actions:    []model.Action{},
			Transform:  model.IdentityTransform(),
			Responsive: map[model.DeviceType]model.ResponsiveOverride{},
			Visible:    true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		for _, id := range top {
			s.reparent(id, groupID)
		}

		s.selectedID = groupID
		s.multi = []string{groupID}
		return changeElements | changeSelection | s.snapshot()
	})
	return groupID
}

// UngroupElements dissolves a group, returning its children to the group's parent at
// their drawn position and selecting them.
func (s *ElementStore) UngroupElements(groupID string) []string {
	var released []string
	s.apply("ungroup", func() change {
		if !s.canUngroup(groupID) {
			return 0
		}
		group := s.find(groupID)
		gx, gy, grandparent := group.X, group.Y, group.Parent

		for _, childID := range group.Children {
			child := s.find(childID)
			if child == nil {
				continue
			}
			child.X += gx
			child.Y += gy
			child.Parent = grandparent
			s.touch(child)
			released = append(released, childID)
		}

		if gp := s.find(grandparent); gp != nil {
			var children []string
			for _, id := range gp.Children {
				if id == groupID {
					children = append(children, released...)
					continue
				}
				children = append(children, id)
			}
			gp.Children = children
			s.touch(gp)
		}

		s.find(groupID).Children = []string{}
		s.removeSet(map[string]bool{groupID: true})

		s.multi = append([]string(nil), released...)
		s.selectedID = ""
		if len(released) > 0 {
			s.selectedID = released[0]
		}
		return changeElements | changeSelection | s.snapshot()
	})
	return released
}

// AlignElements lines the elements up against an edge or centre line of their shared bounding box.
func (s *ElementStore) AlignElements(ids []string, alignment Alignment) {
	s.apply("align", func() change {
		if !s.canAlign(ids, alignment) {
			return 0
		}
		members := s.existing(ids)
		rects := make([]geometry.Rect, len(members))
		for i, id := range members {
			rects[i] = s.absoluteRect(s.find(id))
		}
		box, _ := geometry.BoundingBox(rects)

		moved := false
		for i, id := range members {
			r := rects[i]
			var dx, dy float64
			switch alignment {
			case AlignLeft:
				dx = box.X - r.X
			case AlignRight:
				dx = box.Right() - r.Right()
			case AlignTop:
				dy = box.Y - r.Y
			case AlignBottom:
				dy = box.Bottom() - r.Bottom()
			case AlignCenter:
				dx = box.CenterX() - r.CenterX()
			case AlignMiddle:
				dy = box.CenterY() - r.CenterY()
			}
			if dx == 0 && dy == 0 {
				continue
			}
			e := s.find(id)
			e.X += dx
			e.Y += dy
			s.touch(e)
			moved = true
		}
		if !moved {
			return 0
		}
		return changeElements | s.snapshot()
	})
}

// DistributeElements spaces the elements evenly along axis. The first and last element
// stay put; the gap may be negative when the members do not fit the span.
func (s *ElementStore) DistributeElements(ids []string, axis Axis) {
	s.apply("distribute", func() change {
		if !s.canDistribute(ids, axis) {
			return 0
		}
		members := s.existing(ids)
		type slot struct {
			id     string
			start  float64
			extent float64
		}
		slots := make([]slot, len(members))
		for i, id := range members {
			r := s.absoluteRect(s.find(id))
			if axis == AxisHorizontal {
				slots[i] = slot{id: id, start: r.X, extent: r.Width}
			} else {
				slots[i] = slot{id: id, start: r.Y, extent: r.Height}
			}
		}
		sort.SliceStable(slots, func(a, b int) bool { return slots[a].start < slots[b].start })

		first, last := slots[0], slots[len(slots)-1]
		span := last.start + last.extent - first.start
		var total float64
		for _, sl := range slots {
			total += sl.extent
		}
		spacing := (span - total) / float64(len(slots)-1)

		moved := false
		cursor := first.start + first.extent + spacing
		for _, sl := range slots[1 : len(slots)-1] {
			delta := cursor - sl.start
			cursor += sl.extent + spacing
			if delta == 0 {
				continue
			}
			e := s.find(sl.id)
			if axis == AxisHorizontal {
				e.X += delta
			} else {
				e.Y += delta
			}
			s.touch(e)
			moved = true
		}
		if !moved {
			return 0
		}
		return changeElements | s.snapshot()
	})
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
