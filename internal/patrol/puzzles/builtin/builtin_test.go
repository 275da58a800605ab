package builtin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	_ "github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/builtin"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

func TestBuiltinPuzzlesRegistered(t *testing.T) {
	infos := registry.List()

	want := []string{"carousel", "corridor", "courtyard", "lab"}
	if len(infos) != len(want) {
		t.Fatalf("expected %d puzzles, got %d", len(want), len(infos))
	}
	for i, id := range want {
		if infos[i].ID != id {
			t.Errorf("puzzle %d: expected %q, got %q", i, id, infos[i].ID)
		}
		if !registry.Exists(id) {
			t.Errorf("Exists(%q) = false", id)
		}
	}

	if registry.Exists("missing") {
		t.Error("Exists(\"missing\") = true")
	}
	if _, err := registry.Create("missing"); err == nil {
		t.Error("Create(\"missing\") should fail")
	}
}

func TestBuiltinPuzzlesMatchExpectations(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			p, err := registry.Create(info.ID)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if p.Layout.Grid.W != info.W || p.Layout.Grid.H != info.H {
				t.Errorf("size mismatch: info %dx%d, grid %dx%d",
					info.W, info.H, p.Layout.Grid.W, p.Layout.Grid.H)
			}

			res := patrol.Run(p.Layout.Grid, p.Layout.Start, nil)
			if err := p.CheckVisited(res.VisitedCount()); err != nil {
				t.Error(err)
			}

			hits, err := patrol.FindCycleObstructions(context.Background(),
				p.Layout.Grid, p.Layout.Start, patrol.SearchOptions{})
			if res.Cycled() {
				if !errors.Is(err, patrol.ErrNonTerminatingBaseline) {
					t.Errorf("expected ErrNonTerminatingBaseline, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindCycleObstructions failed: %v", err)
			}
			if err := p.CheckObstructions(len(hits)); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestBuiltinFactoryReturnsFreshLayout(t *testing.T) {
	a, err := registry.Create("lab")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := registry.Create("lab")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.Layout == b.Layout || a.Layout.Grid == b.Layout.Grid {
		t.Error("factories should not share layouts")
	}
}
