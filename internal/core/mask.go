package core

import (
	"fmt"
	"math/bits"
)

// Mask is a per-pixel occupancy bitmap used for precise collision tests.
// Rows are bit-packed into 64-bit words; bit x%64 of word x/64 is pixel x.
type Mask struct {
	width  int
	height int
	stride int // words per row
	words  []uint64
}

// NewMask creates an empty (fully transparent) mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + 63) / 64
	return &Mask{
		width:  width,
		height: height,
		stride: stride,
		words:  make([]uint64, stride*height),
	}
}

// NewMaskFromArt builds a mask from rows of ASCII art where '#' marks an
// opaque cell. Each art cell becomes a scale×scale block of pixels.
func NewMaskFromArt(rows []string, scale int) (*Mask, error) {
	if scale < 1 {
		return nil, fmt.Errorf("mask: scale must be positive, got %d", scale)
	}
	if len(rows) == 0 {
		return NewMask(0, 0), nil
	}

	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("mask: art row %d has width %d, want %d", i, len(row), cols)
		}
	}

	m := NewMask(cols*scale, len(rows)*scale)
	for ay, row := range rows {
		for ax := 0; ax < cols; ax++ {
			if row[ax] != '#' {
				continue
			}
			m.FillRect(NewRect(ax*scale, ay*scale, scale, scale))
		}
	}
	return m, nil
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the mask height in pixels.
func (m *Mask) Height() int {
	return m.height
}

// Set marks the pixel at (x, y) opaque. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.words[y*m.stride+x/64] |= 1 << uint(x%64)
}

// Get reports whether the pixel at (x, y) is opaque.
// Out-of-bounds coordinates are transparent.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.words[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// FillRect marks every pixel of r opaque, clipped to the mask.
func (m *Mask) FillRect(r Rect) {
	r = r.Intersect(NewRect(0, 0, m.width, m.height))
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			m.Set(x, y)
		}
	}
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// FlipVertical returns a new mask mirrored top to bottom.
func (m *Mask) FlipVertical() *Mask {
	out := NewMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		src := m.words[y*m.stride : (y+1)*m.stride]
		dst := out.words[(m.height-1-y)*m.stride : (m.height-y)*m.stride]
		copy(dst, src)
	}
	return out
}

// Bounds returns the smallest rectangle containing every opaque pixel.
// An empty mask yields a zero Rect.
func (m *Mask) Bounds() Rect {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.Get(x, y) {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if maxX < 0 {
		return Rect{}
	}
	return NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

// Overlap finds the first pixel, in row-major order, that is opaque in both
// masks when other's top-left corner is placed at (dx, dy) in m's space.
// The returned point is in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) (x, y int, ok bool) {
	if other == nil {
		return 0, 0, false
	}

	// Intersection of both masks, in m's coordinates
	area := NewRect(0, 0, m.width, m.height).Intersect(NewRect(dx, dy, other.width, other.height))
	if area.Empty() {
		return 0, 0, false
	}

	for y = area.Y; y < area.Bottom(); y++ {
		for x = area.X; x < area.Right(); x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Overlaps reports whether any pixel is opaque in both masks with other
// placed at (dx, dy) relative to m.
func (m *Mask) Overlaps(other *Mask, dx, dy int) bool {
	_, _, ok := m.Overlap(other, dx, dy)
	return ok
}
