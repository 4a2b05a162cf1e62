package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer(t *testing.T) {
	assert.Equal(t, "White", White.String())
	assert.Equal(t, "b", Black.Code())
	assert.Equal(t, "-", None.Code())
	assert.Equal(t, Black, Opponent(White))
	assert.Equal(t, White, Opponent(Black))
	assert.Equal(t, None, Opponent(None))

	for code, want := range map[string]Player{"w": White, "white": White, "b": Black, "black": Black} {
		p, ok := ParsePlayer(code)
		assert.True(t, ok, code)
		assert.Equal(t, want, p, code)
	}
	_, ok := ParsePlayer("x")
	assert.False(t, ok)
}

func TestLetterRoundTrip(t *testing.T) {
	for _, typ := range PieceTypes {
		for _, player := range []Player{White, Black} {
			p := Piece{Type: typ, Player: player}
			got, ok := PieceFromLetter(p.Letter())
			assert.True(t, ok)
			assert.Equal(t, p, got)
		}
	}

	assert.Equal(t, byte('n'), Piece{Type: Knight, Player: Black}.Letter())
	assert.Equal(t, byte('K'), Piece{Type: King, Player: White}.Letter())

	_, ok := PieceFromLetter('x')
	assert.False(t, ok)
}

func TestOnBoard(t *testing.T) {
	assert.True(t, OnBoard(0, 0))
	assert.True(t, OnBoard(7, 7))
	assert.False(t, OnBoard(-1, 0))
	assert.False(t, OnBoard(0, 8))
	assert.True(t, EmptyPiece.IsEmpty())
	assert.Equal(t, "empty", Empty.Name())
}
