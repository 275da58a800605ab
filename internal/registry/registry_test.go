package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
)

func factory(id, name, m string) Factory {
	return func() (puzzles.Puzzle, error) {
		l, err := patrol.ParseString(m)
		if err != nil {
			return puzzles.Puzzle{}, err
		}
		return puzzles.Puzzle{ID: id, Name: name, Layout: l}, nil
	}
}

func TestRegisterAndList(t *testing.T) {
	Register("zz-wide", factory("zz-wide", "Wide", "....\n.^..\n"))
	Register("aa-tall", factory("aa-tall", "Tall", ".\n^\n.\n"))

	if !Exists("zz-wide") || !Exists("aa-tall") {
		t.Fatal("Expected both puzzles to be registered")
	}

	infos := List()
	var ids []string
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}

	for _, info := range infos {
		if info.ID == "zz-wide" && (info.Title != "Wide" || info.W != 4 || info.H != 2) {
			t.Errorf("Unexpected info %+v", info)
		}
	}

	p, err := Create("aa-tall")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.Layout.Start.At != patrol.C(0, 1) {
		t.Errorf("Expected start (0,1), got %v", p.Layout.Start.At)
	}
}

func TestCreateUnknown(t *testing.T) {
	if Exists("nope") {
		t.Error("Exists(\"nope\") = true")
	}
	if _, err := Create("nope"); err == nil {
		t.Error("Expected error for unknown puzzle")
	}
}

func TestRegisterPanics(t *testing.T) {
	Register("dup", factory("dup", "Dup", "^\n"))

	testCases := []struct {
		name string
		id   string
		f    Factory
	}{
		{"duplicate", "dup", factory("dup", "Dup", "^\n")},
		{"factory error", "broken", func() (puzzles.Puzzle, error) {
			return puzzles.Puzzle{}, errors.New("boom")
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) should panic", tc.id)
				}
			}()
			Register(tc.id, tc.f)
		})
	}

	if Exists("broken") {
		t.Error("A failing factory must not be registered")
	}
}
