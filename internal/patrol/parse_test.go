package patrol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

func TestParseMarkers(t *testing.T) {
	testCases := []struct {
		input  string
		facing patrol.Dir
	}{
		{"..^", patrol.DirUp},
		{"..>", patrol.DirRight},
		{"..v", patrol.DirDown},
		{"..V", patrol.DirDown},
		{"..<", patrol.DirLeft},
	}

	for _, tc := range testCases {
		l, err := patrol.ParseString(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, patrol.Pose{At: patrol.C(2, 0), Facing: tc.facing}, l.Start)

		// The guard's cell is open.
		cell, ok := l.Grid.At(l.Start.At)
		require.True(t, ok)
		assert.Equal(t, patrol.CellEmpty, cell)
	}
}

func TestParseTolerance(t *testing.T) {
	l, err := patrol.ParseString("#.\r\n.^\r\n\r\n\n")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Grid.W)
	assert.Equal(t, 2, l.Grid.H)
	assert.Equal(t, []patrol.Coord{patrol.C(0, 0)}, l.Grid.Walls())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  string
		line  int
	}{
		{"empty", "", patrol.CodeEmptyGrid, 0},
		{"blank lines only", "\n\n", patrol.CodeEmptyGrid, 0},
		{"no guard", "...\n.#.\n", patrol.CodeNoGuard, 0},
		{"two guards", "^..\n..>\n", patrol.CodeMultipleGuards, 2},
		{"ragged rows", "^..\n..\n", patrol.CodeRaggedRows, 2},
		{"unknown character", "^.x\n", patrol.CodeBadCell, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := patrol.ParseString(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, patrol.ErrInvalidInput)

			var inputErr *patrol.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tc.code, inputErr.Code)
			assert.Equal(t, tc.line, inputErr.Line)
		})
	}
}

func TestInputErrorMessage(t *testing.T) {
	err := &patrol.InputError{Code: patrol.CodeBadCell, Line: 3, Col: 7, Message: "unexpected character 'x'"}
	assert.Equal(t, "[BAD_CELL] line 3 col 7: unexpected character 'x'", err.Error())

	err = &patrol.InputError{Code: patrol.CodeNoGuard, Message: "map has no guard marker"}
	assert.Equal(t, "[NO_GUARD] map has no guard marker", err.Error())
}
