// Package core provides the platform-neutral building blocks of flappy:
// input frames, the character screen, collision masks and their geometry.
// It has no Bubble Tea dependency so game logic stays pure and testable.
package core

// Rect is an axis-aligned rectangle in integer pixel or cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).Empty()
}

// Intersect returns the overlapping area of both rectangles. Rectangles
// that do not overlap yield an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x0, x1 := max(r.X, other.X), min(r.Right(), other.Right())
	y0, y1 := max(r.Y, other.Y), min(r.Bottom(), other.Bottom())
	if x0 >= x1 || y0 >= y1 {
		return Rect{}
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return NewRect(r.X+dx, r.Y+dy, r.W, r.H)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
