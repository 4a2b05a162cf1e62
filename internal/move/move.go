// Package move turns the four-character coordinate text typed by a player
// ("e2e4") into grid coordinates.
package move

import "fmt"

// Move holds source and destination grid coordinates (x = column, y = row)
type Move struct {
	SX, SY int
	DX, DY int
}

// Invalid is returned for input that cannot be decoded
var Invalid = Move{SX: -1, SY: -1, DX: -1, DY: -1}

// Parse decodes "e2e4" style input. Anything that is not exactly four bytes
// long yields Invalid. The characters are decoded as-is without range
// checks, so "zz99" gives out-of-board coordinates that the board rejects.
func Parse(input string) Move {
	if len(input) != 4 {
		return Invalid
	}

	return Move{
		SX: int(input[0]) - 'a',
		SY: '8' - int(input[1]),
		DX: int(input[2]) - 'a',
		DY: '8' - int(input[3]),
	}
}

func New(sx, sy, dx, dy int) Move {
	return Move{SX: sx, SY: sy, DX: dx, DY: dy}
}

func (m Move) IsInvalid() bool {
	return m == Invalid
}

func (m Move) String() string {
	if m.IsInvalid() {
		return "----"
	}
	return fmt.Sprintf("%c%c%c%c", 'a'+m.SX, '8'-m.SY, 'a'+m.DX, '8'-m.DY)
}

// Square returns the algebraic name of a grid coordinate, "??" when off-board
func Square(x, y int) string {
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return "??"
	}
	return fmt.Sprintf("%c%c", 'a'+x, '8'-y)
}
