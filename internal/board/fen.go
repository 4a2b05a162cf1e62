package board

import (
	"fmt"
	"strconv"
	"strings"

	"termchess/internal/core"

	"github.com/pkg/errors"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

// Placement returns the piece placement field of a FEN string
func (b *Board) Placement() string {
	var sb strings.Builder
	for y := 0; y < core.BoardSize; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		gap := 0
		for x := 0; x < core.BoardSize; x++ {
			p := b.squares[y][x]
			if p.IsEmpty() {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteString(strconv.Itoa(gap))
				gap = 0
			}
			sb.WriteByte(p.Letter())
		}
		if gap > 0 {
			sb.WriteString(strconv.Itoa(gap))
		}
	}
	return sb.String()
}

// FEN encodes the board with the side to move. Castling and en passant are
// not tracked and always written as "-".
func (b *Board) FEN(turn core.Player, fullmove int) string {
	if fullmove < 1 {
		fullmove = 1
	}
	return fmt.Sprintf("%s %s - - 0 %d", b.Placement(), turn.Code(), fullmove)
}

// ParseFEN builds a board from a FEN string and returns the side to move
func ParseFEN(fen string, opts ...Option) (*Board, core.Player, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, core.None, errors.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	b := New(opts...)
	b.Clear()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != core.BoardSize {
		return nil, core.None, errors.New("invalid FEN: expected 8 ranks")
	}

	for r := 0; r < core.BoardSize; r++ {
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= core.BoardSize {
				return nil, core.None, errors.Errorf("invalid FEN: too many pieces in rank %d", 8-r)
			}
			p, ok := core.PieceFromLetter(ch)
			if !ok {
				return nil, core.None, errors.Errorf("invalid FEN: unknown piece %q", ch)
			}
			b.squares[r][file] = p
			file++
		}
		if file != core.BoardSize {
			return nil, core.None, errors.Errorf("invalid FEN: rank %d has %d files", 8-r, file)
		}
	}

	turn, ok := core.ParsePlayer(parts[1])
	if !ok || len(parts[1]) != 1 {
		return nil, core.None, errors.New("invalid FEN: turn must be 'w' or 'b'")
	}

	if _, err := strconv.Atoi(parts[4]); err != nil {
		return nil, core.None, errors.Wrap(err, "invalid FEN: halfmove counter")
	}
	if _, err := strconv.Atoi(parts[5]); err != nil {
		return nil, core.None, errors.Wrap(err, "invalid FEN: fullmove counter")
	}

	return b, turn, nil
}
