package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 8x3", s.Width(), s.Height())
	}
	want := strings.Repeat(" ", 8)
	for _, row := range strings.Split(s.String(), "\n") {
		if row != want {
			t.Errorf("row = %q, want blanks", row)
		}
	}
}

func TestScreenSetClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.Set(p[0], p[1], '#')
	}
	if strings.Contains(s.String(), "#") {
		t.Errorf("out-of-bounds Set drew on the screen:\n%s", s.String())
	}
	if got := s.Get(10, 10); got != ' ' {
		t.Errorf("Get out of bounds = %q, want space", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, '@', ColorYellow)

	if cell := s.GetCell(2, 1); cell.Rune != '@' || cell.Color != ColorYellow {
		t.Errorf("GetCell(2, 1) = %+v, want '@' in yellow", cell)
	}

	s.DrawTextColored(0, 0, "Hi", ColorGreen)
	if s.GetCell(1, 0).Color != ColorGreen {
		t.Errorf("DrawTextColored should color every rune, got %+v", s.GetCell(1, 0))
	}

	// Plain Set resets color
	s.Set(2, 1, 'x')
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Set should use the default color")
	}

	s.Clear()
	if c := s.GetCell(1, 0); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "héllo")

	if got := s.String(); got != "   hé" {
		t.Errorf("String = %q, want %q", got, "   hé")
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(-2, -2, 100, 100), '.')
	s.DrawBox(NewRect(1, 0, 4, 3))

	want := strings.Join([]string{
		".┌──┐.",
		".│..│.",
		".└──┘.",
		"......",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("screen =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if got, want := s.String(), "ab\nef\n  "; got != want {
		t.Errorf("after shrink = %q, want %q", got, want)
	}

	s.Resize(3, 1)
	if got, want := s.String(), "ab "; got != want {
		t.Errorf("after grow = %q, want %q", got, want)
	}
	if got := s.Row(0); got != "ab " {
		t.Errorf("Row(0) = %q, want %q", got, "ab ")
	}
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, want blanks", got)
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{ColorDefault, ""},
		{ColorGreen, "2"},
		{ColorOrange, "208"},
		{ColorCount, ""},
	}

	for _, tc := range tests {
		if got := tc.color.ANSI(); got != tc.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tc.color, got, tc.want)
		}
	}
}
