package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Move
	}{
		{"king pawn", "e2e4", Move{SX: 4, SY: 6, DX: 4, DY: 4}},
		{"corner to corner", "a1h8", Move{SX: 0, SY: 7, DX: 7, DY: 0}},
		{"knight", "g8f6", Move{SX: 6, SY: 0, DX: 5, DY: 2}},
		{"too short", "abc", Invalid},
		{"too long", "e2e4q", Invalid},
		{"empty", "", Invalid},
		{"quit token", "q", Invalid},
		{"out of range letters and digits", "zz99", Move{SX: 25, SY: -1, DX: 25, DY: -1}},
		{"upper case is not folded", "E2E4", Move{SX: 'E' - 'a', SY: 6, DX: 'E' - 'a', DY: 4}},
		{"zero rank", "a0a0", Move{SX: 0, SY: 8, DX: 0, DY: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseMultibyte(t *testing.T) {
	// "é2e" is four bytes, decoding is bytewise
	m := Parse("é2e")
	assert.False(t, m.IsInvalid())
	assert.Equal(t, int(0xC3-'a'), m.SX)
}

func TestString(t *testing.T) {
	assert.Equal(t, "e2e4", Parse("e2e4").String())
	assert.Equal(t, "g1f3", New(6, 7, 5, 5).String())
	assert.Equal(t, "----", Invalid.String())
}

func TestSquare(t *testing.T) {
	assert.Equal(t, "a8", Square(0, 0))
	assert.Equal(t, "h1", Square(7, 7))
	assert.Equal(t, "??", Square(8, 0))
	assert.Equal(t, "??", Square(-1, 3))
}
