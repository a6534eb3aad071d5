package editor

import (
	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

// copyable returns detached copies of the named elements at their drawn positions.
func (s *ElementStore) copyable(ids []string) []model.Element {
	var items []model.Element
	for _, id := range s.existing(ids) {
		e := s.find(id)
		pos := s.absolutePosition(e)
		c := cloneElement(*e)
		c.X, c.Y = pos.X, pos.Y
		c.Parent = ""
		c.Children = []string{}
		items = append(items, c)
	}
	return items
}

// Copy places copies of the elements on the clipboard.
func (s *ElementStore) Copy(ids []string) {
	s.apply("copy", func() change {
		items := s.copyable(ids)
		if len(items) == 0 {
			return 0
		}
		s.clipboard.Set(items, ClipboardCopy)
		return changeClipboard
	})
}

// Cut places copies of the elements on the clipboard and deletes the originals with
// their descendants.
func (s *ElementStore) Cut(ids []string) {
	s.apply("cut", func() change {
		items := s.copyable(ids)
		if len(items) == 0 {
			return 0
		}
		s.clipboard.Set(items, ClipboardCut)

		c := changeClipboard
		for _, item := range items {
			c |= s.deleteCascade(item.ID)
		}
		return c | s.snapshot()
	})
}

// Paste inserts the clipboard contents with fresh ids and selects them. With a nil
// target the copies are offset from where they were copied. A cut clipboard is
// emptied after one paste.
func (s *ElementStore) Paste(at *geometry.Point) []string {
	var pasted []string
	s.apply("paste", func() change {
		if at != nil && !geometry.Finite(at.X, at.Y) {
			return 0
		}
		items := s.clipboard.prepare(at, s.freshID, s.now())
		if len(items) == 0 {
			return 0
		}
		for i := range items {
			items[i].ZIndex = len(s.elements) + 1
			s.elements = append(s.elements, items[i])
			pasted = append(pasted, items[i].ID)
		}

		c := changeElements | changeSelection
		if s.clipboard.Mode() == ClipboardCut {
			s.clipboard.Clear()
			c |= changeClipboard
		}
		s.selectedID = pasted[0]
		s.multi = append([]string(nil), pasted...)
		return c | s.snapshot()
	})
	return pasted
}
