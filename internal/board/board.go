// Package board owns the 8x8 grid and is the only code that mutates it.
//
// Squares are indexed [row][col] with row 0 = rank 8 and col 0 = file 'a',
// so Black's pieces start on rows 0-1 and White's on rows 6-7.
package board

import (
	"termchess/internal/core"
	"termchess/internal/move"
	"termchess/internal/rules"
)

var backRank = [core.BoardSize]core.PieceType{
	core.Rook, core.Knight, core.Bishop, core.Queen,
	core.King, core.Bishop, core.Knight, core.Rook,
}

type Board struct {
	squares [core.BoardSize][core.BoardSize]core.Piece
	rules   *rules.Set
}

type Option func(*Board)

// WithRules selects the rule set used by IsValidMove and MovePiece
func WithRules(set *rules.Set) Option {
	return func(b *Board) {
		if set != nil {
			b.rules = set
		}
	}
}

// New returns a board in the starting position
func New(opts ...Option) *Board {
	b := &Board{rules: rules.PseudoLegal()}
	for _, opt := range opts {
		opt(b)
	}
	b.Init()
	return b
}

// Init resets the board to the standard starting position
func (b *Board) Init() {
	b.Clear()

	// Pawns
	for x := 0; x < core.BoardSize; x++ {
		b.squares[6][x] = core.Piece{Type: core.Pawn, Player: core.White}
		b.squares[1][x] = core.Piece{Type: core.Pawn, Player: core.Black}
	}

	for x, t := range backRank {
		b.squares[7][x] = core.Piece{Type: t, Player: core.White}
		b.squares[0][x] = core.Piece{Type: t, Player: core.Black}
	}
}

func (b *Board) Clear() {
	for y := range b.squares {
		for x := range b.squares[y] {
			b.squares[y][x] = core.EmptyPiece
		}
	}
}

func (b *Board) Rules() *rules.Set {
	return b.rules
}

// At returns the piece at column x, row y, or an empty piece off the board
func (b *Board) At(x, y int) core.Piece {
	if !core.OnBoard(x, y) {
		return core.EmptyPiece
	}
	return b.squares[y][x]
}

// PieceAt looks a square up by its algebraic name ("e4")
func (b *Board) PieceAt(square string) core.Piece {
	if len(square) != 2 {
		return core.EmptyPiece
	}
	m := move.Parse(square + square)
	return b.At(m.SX, m.SY)
}

// Squares returns a copy of the grid for read-only consumers
func (b *Board) Squares() [core.BoardSize][core.BoardSize]core.Piece {
	return b.squares
}

func (b *Board) Count(player core.Player) int {
	n := 0
	for y := range b.squares {
		for x := range b.squares[y] {
			if b.squares[y][x].Player == player {
				n++
			}
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Validate reports whether the move may be applied, and why not
func (b *Board) Validate(sx, sy, dx, dy int) rules.Verdict {
	return b.rules.Check(b, move.New(sx, sy, dx, dy))
}

// IsValidMove accepts a move whose destination lies on the board and is not
// held by the same side as the source square. Under the default rule set the
// source may be empty and the piece's own movement pattern is not checked.
func (b *Board) IsValidMove(sx, sy, dx, dy int) bool {
	return b.Validate(sx, sy, dx, dy).Legal
}

// MovePiece applies a valid move: the source piece overwrites whatever is on
// the destination and the source square is emptied. An invalid move leaves
// the board untouched. Turn handling belongs to the caller.
func (b *Board) MovePiece(sx, sy, dx, dy int) bool {
	if !b.IsValidMove(sx, sy, dx, dy) {
		return false
	}
	b.squares[dy][dx] = b.squares[sy][sx]
	b.squares[sy][sx] = core.EmptyPiece
	return true
}

// Apply is MovePiece for a parsed move
func (b *Board) Apply(m move.Move) bool {
	return b.MovePiece(m.SX, m.SY, m.DX, m.DY)
}
