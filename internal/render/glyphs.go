package render

import "termchess/internal/core"

const (
	GlyphsASCII   = "ascii"
	GlyphsUnicode = "unicode"
)

// GlyphSet maps pieces to the text drawn inside a square
type GlyphSet struct {
	Name   string
	Empty  string
	pieces map[core.Piece]string
}

func (g GlyphSet) Glyph(p core.Piece) string {
	if p.IsEmpty() {
		return g.Empty
	}
	if s, ok := g.pieces[p]; ok {
		return s
	}
	return string(p.Letter())
}

var asciiGlyphs = GlyphSet{
	Name:  GlyphsASCII,
	Empty: ".",
}

var unicodeGlyphs = GlyphSet{
	Name:  GlyphsUnicode,
	Empty: "·",
	pieces: map[core.Piece]string{
		{Type: core.King, Player: core.White}:   "♔",
		{Type: core.Queen, Player: core.White}:  "♕",
		{Type: core.Rook, Player: core.White}:   "♖",
		{Type: core.Bishop, Player: core.White}: "♗",
		{Type: core.Knight, Player: core.White}: "♘",
		{Type: core.Pawn, Player: core.White}:   "♙",
		{Type: core.King, Player: core.Black}:   "♚",
		{Type: core.Queen, Player: core.Black}:  "♛",
		{Type: core.Rook, Player: core.Black}:   "♜",
		{Type: core.Bishop, Player: core.Black}: "♝",
		{Type: core.Knight, Player: core.Black}: "♞",
		{Type: core.Pawn, Player: core.Black}:   "♟",
	},
}

var glyphSets = map[string]GlyphSet{
	GlyphsASCII:   asciiGlyphs,
	GlyphsUnicode: unicodeGlyphs,
}
