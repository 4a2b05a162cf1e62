// Package rules decides whether a move may be applied to a position.
//
// A Set runs the checks every move must pass (destination on the board and
// not held by the moving side) and then hands the move to the Validator
// registered for the moving piece's type, or to the fallback when none is
// registered. PseudoLegal registers nothing and accepts whatever passes the
// common checks. Geometry adds movement shapes per piece.
package rules

import (
	"sort"

	"termchess/internal/core"
	"termchess/internal/move"

	"github.com/pkg/errors"
)

type Reason int

const (
	ReasonNone Reason = iota
	ReasonOffBoard
	ReasonOwnPiece
	ReasonEmptySource
	ReasonGeometry
	ReasonBlocked
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonOffBoard:
		return "off board"
	case ReasonOwnPiece:
		return "destination occupied by the same side"
	case ReasonEmptySource:
		return "no piece on source square"
	case ReasonGeometry:
		return "piece cannot move that way"
	case ReasonBlocked:
		return "path is blocked"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of a rule check
type Verdict struct {
	Legal  bool
	Reason Reason
}

func Allow() Verdict {
	return Verdict{Legal: true, Reason: ReasonNone}
}

func Deny(r Reason) Verdict {
	return Verdict{Legal: false, Reason: r}
}

// Position is the read access validators need. Off-board coordinates
// return core.EmptyPiece.
type Position interface {
	At(x, y int) core.Piece
}

// Validator decides on a move whose destination is on the board and not
// held by the moving side.
type Validator interface {
	Check(pos Position, m move.Move) Verdict
}

type ValidatorFunc func(pos Position, m move.Move) Verdict

func (f ValidatorFunc) Check(pos Position, m move.Move) Verdict {
	return f(pos, m)
}

// Any accepts every move handed to it
var Any Validator = ValidatorFunc(func(Position, move.Move) Verdict {
	return Allow()
})

const (
	NamePseudoLegal = "pseudo"
	NameGeometry    = "geometry"
)

// Set is a named rule set: per piece validators plus a fallback
type Set struct {
	name     string
	byType   map[core.PieceType]Validator
	fallback Validator
}

func NewSet(name string, fallback Validator) *Set {
	if fallback == nil {
		fallback = Any
	}
	return &Set{
		name:     name,
		byType:   make(map[core.PieceType]Validator),
		fallback: fallback,
	}
}

// PseudoLegal checks bounds and same-side occupancy only
func PseudoLegal() *Set {
	return NewSet(NamePseudoLegal, Any)
}

func ByName(name string) (*Set, error) {
	switch name {
	case "", NamePseudoLegal:
		return PseudoLegal(), nil
	case NameGeometry:
		return Geometry(), nil
	default:
		return nil, errors.Errorf("unknown rule set %q (use: %s, %s)", name, NamePseudoLegal, NameGeometry)
	}
}

func (s *Set) Name() string {
	return s.name
}

// With returns a copy of the set using v for pieces of type t
func (s *Set) With(t core.PieceType, v Validator) *Set {
	c := NewSet(s.name, s.fallback)
	for k, val := range s.byType {
		c.byType[k] = val
	}
	c.byType[t] = v
	return c
}

// Types lists the piece types with a dedicated validator
func (s *Set) Types() []core.PieceType {
	types := make([]core.PieceType, 0, len(s.byType))
	for t := range s.byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (s *Set) Check(pos Position, m move.Move) Verdict {
	if !core.OnBoard(m.DX, m.DY) {
		return Deny(ReasonOffBoard)
	}
	// A source off the grid holds no piece at all
	if !core.OnBoard(m.SX, m.SY) {
		return Deny(ReasonOffBoard)
	}

	src := pos.At(m.SX, m.SY)
	if src.Player == pos.At(m.DX, m.DY).Player {
		return Deny(ReasonOwnPiece)
	}

	if v, ok := s.byType[src.Type]; ok {
		return v.Check(pos, m)
	}
	return s.fallback.Check(pos, m)
}
