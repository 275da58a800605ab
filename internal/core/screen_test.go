package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCyan)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected cyan 'X'", c)
	}
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			s.SetColored(x, y, '#', ColorRed)
		}
	}

	s.Clear()

	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Errorf("Clear() left content behind: %q", s.String())
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear() should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawText(2, 0, "guard", ColorYellow)
	if s.Row(0) != "  guard   " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(2, 0).Color != ColorYellow {
		t.Error("DrawText should color its runes")
	}

	// Clipped at the right edge, multi-byte runes take one cell
	s.DrawText(8, 1, "→→→", ColorDefault)
	if s.Row(1) != "        →→" {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)

	s.DrawTextCentered(0, "lab", ColorDefault)
	if s.Row(0) != "    lab    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)

	s.DrawBox(NewRect(0, 0, 4, 3), ColorBlue)

	expected := "┌──┐\n│  │\n└──┘"
	if s.String() != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorBlue {
		t.Error("Box corners should be colored")
	}

	// Degenerate boxes draw nothing
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorBlue)
	if s.Get(0, 0) != ' ' {
		t.Error("A box narrower than 2 should not be drawn")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(1, 1, 'G', ColorGreen)
	s.Set(2, 0, 'E')

	s.Resize(5, 4)
	if s.Width() != 5 || s.Height() != 4 {
		t.Fatalf("Resize gave %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'G' || c.Color != ColorGreen {
		t.Errorf("Resize lost content, got %+v", c)
	}

	s.Resize(2, 2)
	if s.Get(1, 1) != 'G' {
		t.Error("Shrinking should keep content inside the new bounds")
	}
	if s.Row(0) != "  " {
		t.Errorf("Row(0) = %q, expected clipped content", s.Row(0))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if s.Row(5) != "   " {
		t.Errorf("Row(5) = %q, expected blanks", s.Row(5))
	}
}
