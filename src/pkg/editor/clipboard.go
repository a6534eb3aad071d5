package editor

import (
	"time"

	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

// ClipboardMode records how the clipboard contents were captured.
type ClipboardMode string

const (
	ClipboardEmpty ClipboardMode = ""
	ClipboardCopy  ClipboardMode = "copy"
	ClipboardCut   ClipboardMode = "cut"
)

// pasteOffset is applied when pasting without a target point.
const pasteOffset = 20

// ClipboardManager holds copied elements in absolute canvas coordinates.
type ClipboardManager struct {
	items []model.Element
	mode  ClipboardMode
}

func NewClipboardManager() *ClipboardManager {
	return &ClipboardManager{}
}

// Set replaces the clipboard contents with copies of items.
func (cm *ClipboardManager) Set(items []model.Element, mode ClipboardMode) {
	cm.items = cloneElements(items)
	cm.mode = mode
}

// Clear empties the clipboard.
func (cm *ClipboardManager) Clear() {
	cm.items = nil
	cm.mode = ClipboardEmpty
}

func (cm *ClipboardManager) IsEmpty() bool { return len(cm.items) == 0 }

func (cm *ClipboardManager) Mode() ClipboardMode { return cm.mode }

// Items returns copies of the clipboard contents.
func (cm *ClipboardManager) Items() []model.Element {
	return cloneElements(cm.items)
}

// prepare builds detached copies of the clipboard contents ready for insertion.
// With a target the copies are placed so that the single item, or the bounding box
// minimum of several, lands on it while keeping their relative offsets.
func (cm *ClipboardManager) prepare(at *geometry.Point, newID func() string, now time.Time) []model.Element {
	if cm.IsEmpty() {
		return nil
	}

	dx, dy := float64(pasteOffset), float64(pasteOffset)
	if at != nil {
		origin := geometry.Point{X: cm.items[0].X, Y: cm.items[0].Y}
		if len(cm.items) > 1 {
			box, _ := geometry.BoundingBox(rectsOf(cm.items))
			origin = geometry.Point{X: box.X, Y: box.Y}
		}
		dx, dy = at.X-origin.X, at.Y-origin.Y
	}

	pasted := make([]model.Element, 0, len(cm.items))
	for _, item := range cm.items {
		c := cloneElement(item)
		c.ID = newID()
		c.X += dx
		c.Y += dy
		c.Parent = ""
		c.Children = []string{}
		c.CreatedAt = now
		c.UpdatedAt = now
		pasted = append(pasted, c)
	}
	return pasted
}

func rectsOf(elements []model.Element) []geometry.Rect {
	rects := make([]geometry.Rect, len(elements))
	for i, e := range elements {
		rects[i] = geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	}
	return rects
}
