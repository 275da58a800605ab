// Package formats provides pluggable puzzle file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"gopkg.in/yaml.v3"
)

// YAMLPuzzle represents the YAML structure for a puzzle file.
type YAMLPuzzle struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Map      string            `yaml:"map"`
	Expect   *YAMLExpect       `yaml:"expect,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLExpect holds the known answers for a puzzle. Either may be omitted.
type YAMLExpect struct {
	Visited      *int `yaml:"visited,omitempty"`
	Obstructions *int `yaml:"obstructions,omitempty"`
}

// Puzzle represents a parsed puzzle ready for use.
type Puzzle struct {
	ID       string
	Name     string
	Layout   *patrol.Layout
	Expect   Expect
	Metadata map[string]string
}

// Expect holds the known answers for a puzzle; nil means unknown.
type Expect struct {
	Visited      *int
	Obstructions *int
}

// ParseYAML parses a YAML puzzle file.
func ParseYAML(data []byte) (Puzzle, error) {
	var yp YAMLPuzzle
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Puzzle{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yp.ID == "" {
		return Puzzle{}, fmt.Errorf("yaml puzzle: missing id")
	}

	layout, err := patrol.ParseString(yp.Map)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle %s map: %w", yp.ID, err)
	}

	name := yp.Name
	if name == "" {
		name = yp.ID
	}

	p := Puzzle{
		ID:       yp.ID,
		Name:     name,
		Layout:   layout,
		Metadata: yp.Metadata,
	}
	if yp.Expect != nil {
		p.Expect = Expect{
			Visited:      yp.Expect.Visited,
			Obstructions: yp.Expect.Obstructions,
		}
	}

	return p, nil
}

// ParseText parses a raw map file. The ID and name come from the caller,
// usually the file name.
func ParseText(id string, data []byte) (Puzzle, error) {
	layout, err := patrol.ParseString(string(data))
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle %s map: %w", id, err)
	}
	return Puzzle{
		ID:     id,
		Name:   id,
		Layout: layout,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
