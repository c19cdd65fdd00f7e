package game

import "fmt"

// Rect is an axis-aligned rectangle in integer pixel coordinates. X and Y are the
// top-left corner; y grows downward.
type Rect struct {
	X, Y int32
	W, H int32
}

// RectFromCenter builds a w x h rectangle centered on (cx, cy).
func RectFromCenter(cx, cy, w, h int32) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int32, int32) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Left() int32   { return r.X }
func (r Rect) Top() int32    { return r.Y }
func (r Rect) Right() int32  { return r.X + r.W }
func (r Rect) Bottom() int32 { return r.Y + r.H }

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Recenter returns a rectangle of the same size centered on (cx, cy).
func (r Rect) Recenter(cx, cy int32) Rect {
	return RectFromCenter(cx, cy, r.W, r.H)
}

// Contains reports whether o lies entirely within r. Shared edges count as inside.
func (r Rect) Contains(o Rect) bool {
	return r.Left() <= o.Left() && o.Right() <= r.Right() &&
		r.Top() <= o.Top() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether r and o share a region of positive area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
