package rules

import (
	"testing"

	"termchess/internal/core"
	"termchess/internal/move"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grid [core.BoardSize][core.BoardSize]core.Piece

func (g *grid) At(x, y int) core.Piece {
	if !core.OnBoard(x, y) {
		return core.EmptyPiece
	}
	return g[y][x]
}

func (g *grid) put(square string, p core.Piece) {
	m := move.Parse(square + square)
	g[m.SY][m.SX] = p
}

func emptyGrid() *grid {
	g := &grid{}
	for y := range g {
		for x := range g[y] {
			g[y][x] = core.EmptyPiece
		}
	}
	return g
}

var (
	whitePawn  = core.Piece{Type: core.Pawn, Player: core.White}
	blackPawn  = core.Piece{Type: core.Pawn, Player: core.Black}
	whiteRook  = core.Piece{Type: core.Rook, Player: core.White}
	blackQueen = core.Piece{Type: core.Queen, Player: core.Black}
)

func TestPseudoLegal(t *testing.T) {
	g := emptyGrid()
	g.put("e2", whitePawn)
	g.put("e7", blackPawn)
	g.put("d1", core.Piece{Type: core.Queen, Player: core.White})

	set := PseudoLegal()

	tests := []struct {
		name string
		move string
		want Verdict
	}{
		{"pawn moves like a queen", "e2a6", Allow()},
		{"capture", "e2e7", Allow()},
		{"same side destination", "e2d1", Deny(ReasonOwnPiece)},
		{"same square", "e2e2", Deny(ReasonOwnPiece)},
		{"empty onto empty", "a3a4", Deny(ReasonOwnPiece)},
		{"empty source onto piece", "a3e2", Allow()},
		{"opponent piece on your turn", "e7e2", Allow()},
		{"destination off board", "e2e9", Deny(ReasonOffBoard)},
		{"source off board", "z2e4", Deny(ReasonOffBoard)},
		{"garbage", "zz99", Deny(ReasonOffBoard)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Check(g, move.Parse(tt.move)))
		})
	}

	assert.Equal(t, Deny(ReasonOffBoard), set.Check(g, move.Invalid))
}

func TestGeometry(t *testing.T) {
	g := emptyGrid()
	g.put("e2", whitePawn)
	g.put("d3", blackPawn)
	g.put("a1", whiteRook)
	g.put("a4", blackPawn)
	g.put("g1", core.Piece{Type: core.Knight, Player: core.White})
	g.put("c1", core.Piece{Type: core.Bishop, Player: core.White})
	g.put("b2", whitePawn)
	g.put("e1", core.Piece{Type: core.King, Player: core.White})
	g.put("h5", blackQueen)
	g.put("h7", blackPawn)

	set := Geometry()

	tests := []struct {
		name string
		move string
		want Verdict
	}{
		{"pawn single push", "e2e3", Allow()},
		{"pawn double push", "e2e4", Allow()},
		{"pawn triple push", "e2e5", Deny(ReasonGeometry)},
		{"pawn capture", "e2d3", Allow()},
		{"pawn diagonal without capture", "e2f3", Deny(ReasonGeometry)},
		{"pawn backwards", "e2e1", Deny(ReasonOwnPiece)},
		{"black pawn forward", "h7h6", Allow()},
		{"black pawn double", "h7h5", Deny(ReasonOwnPiece)},
		{"black pawn capture direction", "d3e2", Allow()},
		{"rook up the file", "a1a3", Allow()},
		{"rook capture", "a1a4", Allow()},
		{"rook through piece", "a1a5", Deny(ReasonBlocked)},
		{"rook diagonal", "a1c3", Deny(ReasonGeometry)},
		{"knight jump", "g1f3", Allow()},
		{"knight straight", "g1g3", Deny(ReasonGeometry)},
		{"bishop blocked by own pawn", "c1a3", Deny(ReasonBlocked)},
		{"bishop open diagonal", "c1f4", Allow()},
		{"king step", "e1f2", Allow()},
		{"king leap", "e1e3", Deny(ReasonGeometry)},
		{"queen diagonal", "h5e8", Allow()},
		{"queen file", "h5h1", Allow()},
		{"queen blocked", "h5h8", Deny(ReasonBlocked)},
		{"queen knight shape", "h5g3", Deny(ReasonGeometry)},
		{"empty source", "c4c5", Deny(ReasonOwnPiece)},
		{"empty source onto piece", "c4e2", Deny(ReasonEmptySource)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Check(g, move.Parse(tt.move)))
		})
	}
}

func TestPawnPushBlocked(t *testing.T) {
	g := emptyGrid()
	g.put("e2", whitePawn)
	g.put("e3", blackPawn)

	set := Geometry()
	assert.Equal(t, Deny(ReasonBlocked), set.Check(g, move.Parse("e2e3")))
	assert.Equal(t, Deny(ReasonBlocked), set.Check(g, move.Parse("e2e4")))
}

func TestWith(t *testing.T) {
	never := ValidatorFunc(func(Position, move.Move) Verdict { return Deny(ReasonGeometry) })

	base := PseudoLegal()
	custom := base.With(core.Knight, never)

	g := emptyGrid()
	g.put("g1", core.Piece{Type: core.Knight, Player: core.White})

	assert.True(t, base.Check(g, move.Parse("g1g5")).Legal)
	assert.Equal(t, Deny(ReasonGeometry), custom.Check(g, move.Parse("g1g5")))
	assert.Empty(t, base.Types())
	assert.Equal(t, []core.PieceType{core.Knight}, custom.Types())
}

func TestByName(t *testing.T) {
	set, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, NamePseudoLegal, set.Name())

	set, err = ByName(NameGeometry)
	require.NoError(t, err)
	assert.Equal(t, NameGeometry, set.Name())
	assert.Len(t, set.Types(), 7)

	_, err = ByName("fide")
	assert.Error(t, err)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "ok", ReasonNone.String())
	assert.Equal(t, "off board", ReasonOffBoard.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
