// Package geometry provides grid snapping and bounding box helpers for canvas rectangles.
package geometry

import "math"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// BoundingBox returns the smallest rectangle enclosing every rect.
// ok is false when rects is empty.
func BoundingBox(rects []Rect) (box Rect, ok bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SnapToGrid rounds v to the nearest multiple of grid. A non-positive grid leaves v unchanged.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapRect snaps every coordinate of r to the grid.
func SnapRect(r Rect, grid float64) Rect {
	return Rect{
		X:      SnapToGrid(r.X, grid),
		Y:      SnapToGrid(r.Y, grid),
		Width:  SnapToGrid(r.Width, grid),
		Height: SnapToGrid(r.Height, grid),
	}
}

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}
