package rules

import (
	"termchess/internal/core"
	"termchess/internal/move"
)

// Geometry is PseudoLegal plus movement shapes: pawns push and capture
// forward, knights jump, sliders need a clear path and kings step once.
// Check, castling, en passant and promotion are not modelled.
func Geometry() *Set {
	return NewSet(NameGeometry, Any).
		With(core.Empty, ValidatorFunc(emptySource)).
		With(core.Pawn, ValidatorFunc(pawn)).
		With(core.Knight, ValidatorFunc(knight)).
		With(core.Bishop, ValidatorFunc(bishop)).
		With(core.Rook, ValidatorFunc(rook)).
		With(core.Queen, ValidatorFunc(queen)).
		With(core.King, ValidatorFunc(king))
}

func emptySource(Position, move.Move) Verdict {
	return Deny(ReasonEmptySource)
}

func pawn(pos Position, m move.Move) Verdict {
	p := pos.At(m.SX, m.SY)

	// White moves toward row 0
	dir, startRow := -1, 6
	if p.Player == core.Black {
		dir, startRow = 1, 1
	}

	fx, fy := m.DX-m.SX, m.DY-m.SY
	target := pos.At(m.DX, m.DY)

	switch {
	case fx == 0 && fy == dir:
		if !target.IsEmpty() {
			return Deny(ReasonBlocked)
		}
		return Allow()
	case fx == 0 && fy == 2*dir && m.SY == startRow:
		if !pos.At(m.SX, m.SY+dir).IsEmpty() || !target.IsEmpty() {
			return Deny(ReasonBlocked)
		}
		return Allow()
	case abs(fx) == 1 && fy == dir:
		if target.Player == core.Opponent(p.Player) {
			return Allow()
		}
		return Deny(ReasonGeometry)
	default:
		return Deny(ReasonGeometry)
	}
}

func knight(_ Position, m move.Move) Verdict {
	fx, fy := abs(m.DX-m.SX), abs(m.DY-m.SY)
	if (fx == 1 && fy == 2) || (fx == 2 && fy == 1) {
		return Allow()
	}
	return Deny(ReasonGeometry)
}

func bishop(pos Position, m move.Move) Verdict {
	fx, fy := abs(m.DX-m.SX), abs(m.DY-m.SY)
	if fx != fy || fx == 0 {
		return Deny(ReasonGeometry)
	}
	return slide(pos, m)
}

func rook(pos Position, m move.Move) Verdict {
	if (m.SX != m.DX) == (m.SY != m.DY) {
		return Deny(ReasonGeometry)
	}
	return slide(pos, m)
}

func queen(pos Position, m move.Move) Verdict {
	if v := rook(pos, m); v.Legal || v.Reason == ReasonBlocked {
		return v
	}
	return bishop(pos, m)
}

func king(_ Position, m move.Move) Verdict {
	fx, fy := abs(m.DX-m.SX), abs(m.DY-m.SY)
	if fx <= 1 && fy <= 1 && fx+fy > 0 {
		return Allow()
	}
	return Deny(ReasonGeometry)
}

// slide checks that every square strictly between source and destination is
// empty. The caller guarantees a straight or diagonal line.
func slide(pos Position, m move.Move) Verdict {
	sx, sy := sign(m.DX-m.SX), sign(m.DY-m.SY)
	for x, y := m.SX+sx, m.SY+sy; x != m.DX || y != m.DY; x, y = x+sx, y+sy {
		if !pos.At(x, y).IsEmpty() {
			return Deny(ReasonBlocked)
		}
	}
	return Allow()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
