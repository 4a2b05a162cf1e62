package board

import (
	"testing"

	"termchess/internal/core"
	"termchess/internal/move"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFEN(t *testing.T) {
	b := New()
	assert.Equal(t, StartingFEN, b.FEN(core.White, 1))

	require.True(t, b.Apply(move.Parse("e2e4")))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1", b.FEN(core.Black, 0))
}

func TestParseFEN(t *testing.T) {
	b, turn, err := ParseFEN(StartingFEN)
	require.NoError(t, err)
	assert.Equal(t, core.White, turn)
	assert.Equal(t, New().Squares(), b.Squares())

	b, turn, err = ParseFEN("4k3/8/8/8/8/8/8/4K2R b K - 3 40")
	require.NoError(t, err)
	assert.Equal(t, core.Black, turn)
	assert.Equal(t, 2, b.Count(core.White))
	assert.Equal(t, 1, b.Count(core.Black))
	assert.Equal(t, core.Piece{Type: core.Rook, Player: core.White}, b.PieceAt("h1"))
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K2R", b.Placement())
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"long rank", "8p/8/8/8/8/8/8/8 w - - 0 1"},
		{"unknown piece", "x7/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad turn", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"long turn", "8/8/8/8/8/8/8/8 white - - 0 1"},
		{"bad halfmove", "8/8/8/8/8/8/8/8 w - - a 1"},
		{"bad fullmove", "8/8/8/8/8/8/8/8 w - - 0 b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFEN(tt.fen)
			assert.Error(t, err)
		})
	}
}
