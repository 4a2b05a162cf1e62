// Package core holds the value types shared by the board, the game controller
// and every front-end.
//
// Board coordinates are [row][col]: row 0 is rank 8 (Black's home rank),
// row 7 is rank 1 (White's home rank) and col 0 is file 'a'.
package core

const BoardSize = 8

type Player int

const (
	None Player = iota
	White
	Black
)

func (p Player) String() string {
	switch p {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Code is the single-letter form used in FEN and on the wire
func (p Player) Code() string {
	switch p {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

func ParsePlayer(code string) (Player, bool) {
	switch code {
	case "w", "white":
		return White, true
	case "b", "black":
		return Black, true
	default:
		return None, false
	}
}

func Opponent(p Player) Player {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

// PieceType is the piece letter, with a blank for an empty square
type PieceType byte

const (
	Empty  PieceType = ' '
	Pawn   PieceType = 'P'
	Rook   PieceType = 'R'
	Knight PieceType = 'N'
	Bishop PieceType = 'B'
	Queen  PieceType = 'Q'
	King   PieceType = 'K'
)

var PieceTypes = []PieceType{Pawn, Rook, Knight, Bishop, Queen, King}

func (t PieceType) Name() string {
	switch t {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "empty"
	}
}

// Piece is a square's content. Type is Empty exactly when Player is None.
type Piece struct {
	Type   PieceType
	Player Player
}

var EmptyPiece = Piece{Type: Empty, Player: None}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Letter returns the FEN letter: upper case for White, lower case for Black
func (p Piece) Letter() byte {
	if p.Player == Black {
		return byte(p.Type) | 0x20
	}
	return byte(p.Type)
}

// PieceFromLetter is the inverse of Letter
func PieceFromLetter(ch byte) (Piece, bool) {
	player := White
	if ch >= 'a' && ch <= 'z' {
		player = Black
		ch &^= 0x20
	}
	for _, t := range PieceTypes {
		if PieceType(ch) == t {
			return Piece{Type: t, Player: player}, true
		}
	}
	return EmptyPiece, false
}

func OnBoard(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}
