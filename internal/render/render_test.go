package render

import (
	"strings"
	"testing"

	"termchess/internal/board"
	"termchess/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startCompact = `  a b c d e f g h
8 r n b q k b n r  8
7 p p p p p p p p  7
6 . . . . . . . .  6
5 . . . . . . . .  5
4 . . . . . . . .  4
3 . . . . . . . .  3
2 P P P P P P P P  2
1 R N B Q K B N R  1
  a b c d e f g h`

func TestRenderCompact(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), r.Options())
	assert.Equal(t, startCompact, r.Render(board.New().Squares()))
}

func TestRenderFlip(t *testing.T) {
	r, err := New(Options{Flip: true})
	require.NoError(t, err)

	lines := strings.Split(r.Render(board.New().Squares()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "  h g f e d c b a", lines[0])
	assert.Equal(t, "1 R N B K Q B N R  1", lines[1])
	assert.Equal(t, "8 r n b k q b n r  8", lines[8])
}

func TestRenderBoxed(t *testing.T) {
	r, err := New(Options{Layout: LayoutBoxed})
	require.NoError(t, err)

	lines := strings.Split(r.Render(board.New().Squares()), "\n")
	require.Len(t, lines, 19)
	assert.Equal(t, "    a   b   c   d   e   f   g   h", lines[0])
	assert.Equal(t, "  +---+---+---+---+---+---+---+---+", lines[1])
	assert.Equal(t, "8 | r | n | b | q | k | b | n | r | 8", lines[2])
	assert.Equal(t, "5 | . | . | . | . | . | . | . | . | 5", lines[8])
	assert.Equal(t, "1 | R | N | B | Q | K | B | N | R | 1", lines[16])
	assert.Equal(t, lines[0], lines[18])
}

func TestRenderUnicode(t *testing.T) {
	r, err := New(Options{Glyphs: GlyphsUnicode})
	require.NoError(t, err)

	lines := strings.Split(r.Render(board.New().Squares()), "\n")
	assert.Equal(t, "8 ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜  8", lines[1])
	assert.Equal(t, "4 · · · · · · · ·  4", lines[5])
	assert.Equal(t, "1 ♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖  1", lines[8])
}

func TestRenderTheme(t *testing.T) {
	plain, err := New(Options{})
	require.NoError(t, err)
	colored, err := New(Options{Theme: ThemeBrown})
	require.NoError(t, err)

	sq := board.New().Squares()
	out := colored.Render(sq)
	assert.NotEqual(t, plain.Render(sq), out)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "K ")
	assert.True(t, strings.HasPrefix(out, "  a b c d e f g h\n"))
}

func TestSetters(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.Error(t, r.SetGlyphs("emoji"))
	assert.Error(t, r.SetLayout("round"))
	assert.Error(t, r.SetTheme("pink"))
	assert.Equal(t, DefaultOptions(), r.Options())

	require.NoError(t, r.SetTheme(ThemeGray))
	require.NoError(t, r.SetGlyphs(GlyphsUnicode))
	require.NoError(t, r.SetLayout(LayoutBoxed))
	r.SetFlip(true)
	assert.Equal(t, Options{Glyphs: GlyphsUnicode, Layout: LayoutBoxed, Theme: ThemeGray, Flip: true}, r.Options())

	_, err = New(Options{Theme: "neon"})
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	r, err := New(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Current player: White", r.Status(core.White))
	assert.Equal(t, "Current player: Black", r.Status(core.Black))
}

func TestGlyphFallback(t *testing.T) {
	assert.Equal(t, "q", asciiGlyphs.Glyph(core.Piece{Type: core.Queen, Player: core.Black}))
	assert.Equal(t, "N", asciiGlyphs.Glyph(core.Piece{Type: core.Knight, Player: core.White}))
	assert.Equal(t, ".", asciiGlyphs.Glyph(core.EmptyPiece))
}
