package core

import "testing"

func TestMaskSetGet(t *testing.T) {
	m := NewMask(130, 3) // spans three words per row

	m.Set(0, 0)
	m.Set(64, 1)
	m.Set(129, 2)
	m.Set(200, 0) // out of bounds, ignored
	m.Set(-1, 0)  // out of bounds, ignored

	if !m.Get(0, 0) || !m.Get(64, 1) || !m.Get(129, 2) {
		t.Error("set pixels should read back as opaque")
	}
	if m.Get(1, 0) || m.Get(63, 1) || m.Get(128, 2) {
		t.Error("neighbouring pixels should stay transparent")
	}
	if m.Get(-1, 0) || m.Get(0, 3) {
		t.Error("out of bounds pixels should be transparent")
	}
	if m.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", m.Count())
	}
}

func TestMaskFromArt(t *testing.T) {
	art := []string{
		"#.",
		".#",
	}
	m, err := NewMaskFromArt(art, 3)
	if err != nil {
		t.Fatalf("NewMaskFromArt() failed: %v", err)
	}

	if m.Width() != 6 || m.Height() != 6 {
		t.Fatalf("mask size = %dx%d, expected 6x6", m.Width(), m.Height())
	}
	if m.Count() != 18 {
		t.Errorf("Count() = %d, expected 18", m.Count())
	}
	if !m.Get(2, 2) || m.Get(3, 2) || !m.Get(3, 3) || !m.Get(5, 5) {
		t.Error("scaled art blocks are misplaced")
	}
}

func TestMaskFromArtErrors(t *testing.T) {
	if _, err := NewMaskFromArt([]string{"##", "#"}, 1); err == nil {
		t.Error("ragged art should be rejected")
	}
	if _, err := NewMaskFromArt([]string{"#"}, 0); err == nil {
		t.Error("zero scale should be rejected")
	}
}

func TestMaskFlipVertical(t *testing.T) {
	m := NewMask(4, 3)
	m.Set(1, 0)
	m.Set(2, 2)

	f := m.FlipVertical()
	if !f.Get(1, 2) || !f.Get(2, 0) {
		t.Error("flipped pixels are misplaced")
	}
	if f.Get(1, 0) {
		t.Error("original position should be cleared after flip")
	}
	if f.Count() != m.Count() {
		t.Errorf("flip changed pixel count: %d vs %d", f.Count(), m.Count())
	}
}

func TestMaskBounds(t *testing.T) {
	m := NewMask(10, 10)
	if m.Bounds() != (Rect{}) {
		t.Errorf("empty mask bounds = %+v, expected zero rect", m.Bounds())
	}

	m.Set(2, 3)
	m.Set(7, 5)
	if b := m.Bounds(); b != NewRect(2, 3, 6, 3) {
		t.Errorf("Bounds() = %+v, expected {2 3 6 3}", b)
	}
}

// ring returns a size×size mask with only the border opaque.
func ring(size int) *Mask {
	m := NewMask(size, size)
	for i := 0; i < size; i++ {
		m.Set(i, 0)
		m.Set(i, size-1)
		m.Set(0, i)
		m.Set(size-1, i)
	}
	return m
}

func TestMaskOverlaps(t *testing.T) {
	dot := NewMask(1, 1)
	dot.Set(0, 0)

	tests := []struct {
		name     string
		dx, dy   int
		expected bool
	}{
		{"on border", 0, 0, true},
		{"inside hollow", 5, 5, false},
		{"right edge", 9, 4, true},
		{"just outside right", 10, 4, false},
		{"negative offset", -1, 0, false},
		{"bottom edge", 3, 9, true},
	}

	r := ring(10)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Overlaps(dot, tc.dx, tc.dy); got != tc.expected {
				t.Errorf("Overlaps(dot, %d, %d) = %v, expected %v", tc.dx, tc.dy, got, tc.expected)
			}
			// Symmetric when the offset is negated
			if got := dot.Overlaps(r, -tc.dx, -tc.dy); got != tc.expected {
				t.Errorf("reverse Overlaps(ring, %d, %d) = %v, expected %v", -tc.dx, -tc.dy, got, tc.expected)
			}
		})
	}
}

func TestMaskOverlapIsNotBoundingBox(t *testing.T) {
	// Two L-shaped corners whose bounding boxes overlap but pixels don't
	a := NewMask(4, 4)
	a.FillRect(NewRect(0, 0, 4, 1))
	a.FillRect(NewRect(0, 0, 1, 4))

	b := NewMask(4, 4)
	b.FillRect(NewRect(0, 3, 4, 1))
	b.FillRect(NewRect(3, 0, 1, 4))

	if a.Overlaps(b, 1, 1) {
		t.Error("transparent regions should never collide")
	}
	if !a.Overlaps(b, -3, 0) {
		t.Error("b's right column over a's left column should collide")
	}

	x, y, ok := a.Overlap(b, -3, 0)
	if !ok || x != 0 || y != 0 {
		t.Errorf("Overlap() = (%d, %d, %v), expected (0, 0, true)", x, y, ok)
	}
}

func TestMaskOverlapNil(t *testing.T) {
	if NewMask(2, 2).Overlaps(nil, 0, 0) {
		t.Error("nil mask should never overlap")
	}
}
