package tui

import "testing"

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "default" || names[1] != "mono" || names[2] != "neon" {
		t.Errorf("Unexpected themes %v", names)
	}
	if _, ok := PaletteByName("neon"); !ok {
		t.Error("neon palette missing")
	}
	if _, ok := PaletteByName("sepia"); ok {
		t.Error("unknown palette should not resolve")
	}
}
