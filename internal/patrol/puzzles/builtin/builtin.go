// Package builtin registers the puzzles compiled into the binary.
// Import it for side effects:
//
//	import _ "github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/builtin"
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/formats"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

//go:embed data/*.yaml
var data embed.FS

func init() {
	entries, err := fs.ReadDir(data, "data")
	if err != nil {
		panic(fmt.Sprintf("builtin: reading embedded puzzles: %v", err))
	}

	for _, e := range entries {
		name := path.Join("data", e.Name())
		raw, err := data.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("builtin: reading %s: %v", name, err))
		}
		parsed, err := formats.ParseYAML(raw)
		if err != nil {
			panic(fmt.Sprintf("builtin: parsing %s: %v", name, err))
		}

		registry.Register(parsed.ID, factory(raw))
	}
}

// factory re-parses the puzzle on every call so callers never share a Layout.
func factory(raw []byte) registry.Factory {
	return func() (puzzles.Puzzle, error) {
		p, err := formats.ParseYAML(raw)
		if err != nil {
			return puzzles.Puzzle{}, err
		}
		return puzzles.FromFormat(p, ""), nil
	}
}
