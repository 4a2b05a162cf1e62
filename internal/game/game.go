// Package game pairs a board with the side to move and keeps the snapshots
// needed for history and undo.
package game

import (
	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/move"
	"termchess/internal/rules"

	"github.com/pkg/errors"
)

var ErrInvalidMove = errors.New("invalid move")

type Snapshot struct {
	Board    *board.Board // Position after Move
	Turn     core.Player  // Side to move at this position
	Move     move.Move    // Move that created this position, Invalid for the initial one
	Captured core.Piece   // Piece overwritten by Move
}

type Game struct {
	board     *board.Board
	turn      core.Player
	snapshots []Snapshot
}

// New starts a game from the standard position with White to move
func New(opts ...board.Option) *Game {
	return start(board.New(opts...), core.White)
}

// FromFEN resumes a game from a FEN position
func FromFEN(fen string, opts ...board.Option) (*Game, error) {
	b, turn, err := board.ParseFEN(fen, opts...)
	if err != nil {
		return nil, err
	}
	return start(b, turn), nil
}

func start(b *board.Board, turn core.Player) *Game {
	return &Game{
		board: b,
		turn:  turn,
		snapshots: []Snapshot{
			{
				Board:    b.Clone(),
				Turn:     turn,
				Move:     move.Invalid,
				Captured: core.EmptyPiece,
			},
		},
	}
}

func (g *Game) Turn() core.Player {
	return g.turn
}

// Board returns a read-only copy of the current grid
func (g *Game) Board() [core.BoardSize][core.BoardSize]core.Piece {
	return g.board.Squares()
}

func (g *Game) PieceAt(square string) core.Piece {
	return g.board.PieceAt(square)
}

func (g *Game) Rules() *rules.Set {
	return g.board.Rules()
}

// Check reports the rule verdict for m without applying it
func (g *Game) Check(m move.Move) rules.Verdict {
	return g.board.Validate(m.SX, m.SY, m.DX, m.DY)
}

// Play applies m and hands the turn to the other side. A rejected move
// changes nothing, the turn included.
func (g *Game) Play(m move.Move) bool {
	captured := g.board.At(m.DX, m.DY)
	if !g.board.Apply(m) {
		return false
	}

	g.turn = core.Opponent(g.turn)
	g.snapshots = append(g.snapshots, Snapshot{
		Board:    g.board.Clone(),
		Turn:     g.turn,
		Move:     m,
		Captured: captured,
	})
	return true
}

// PlayText parses and plays a typed move
func (g *Game) PlayText(input string) (move.Move, rules.Verdict, error) {
	m := move.Parse(input)
	v := g.Check(m)
	if !v.Legal || !g.Play(m) {
		return m, v, errors.Wrapf(ErrInvalidMove, "%s: %s", input, v.Reason)
	}
	return m, v, nil
}

// Undo steps back count plies, restoring board and turn
func (g *Game) Undo(count int) error {
	if count < 1 {
		return errors.Errorf("invalid undo count: %d", count)
	}

	available := len(g.snapshots) - 1
	if available < count {
		return errors.Errorf("cannot undo %d moves: only %d moves available", count, available)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	last := g.snapshots[len(g.snapshots)-1]
	g.board = last.Board.Clone()
	g.turn = last.Turn
	return nil
}

func (g *Game) Moves() []move.Move {
	moves := make([]move.Move, 0, len(g.snapshots)-1)
	for _, s := range g.snapshots[1:] {
		moves = append(moves, s.Move)
	}
	return moves
}

func (g *Game) LastMove() (move.Move, bool) {
	if len(g.snapshots) < 2 {
		return move.Invalid, false
	}
	return g.snapshots[len(g.snapshots)-1].Move, true
}

// Captured lists the non-empty pieces removed by the moves played so far
func (g *Game) Captured() []core.Piece {
	var pieces []core.Piece
	for _, s := range g.snapshots[1:] {
		if !s.Captured.IsEmpty() {
			pieces = append(pieces, s.Captured)
		}
	}
	return pieces
}

func (g *Game) Snapshots() []Snapshot {
	return g.snapshots
}

// FEN encodes the current position. The move number counts full moves
// played in this game.
func (g *Game) FEN() string {
	return g.board.FEN(g.turn, 1+(len(g.snapshots)-1)/2)
}

func (g *Game) InitialFEN() string {
	first := g.snapshots[0]
	return first.Board.FEN(first.Turn, 1)
}
