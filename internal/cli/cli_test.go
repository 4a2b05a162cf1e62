package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"termchess/internal/core"
	"termchess/internal/render"
	"termchess/internal/rules"
	"termchess/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	r, err := render.New(render.DefaultOptions())
	require.NoError(t, err)
	var out bytes.Buffer
	return New(NewScannerReader(strings.NewReader(input)), &out, r), &out
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  []string
	}{
		{"q", CmdQuit, nil},
		{"quit", CmdQuit, nil},
		{"exit", CmdQuit, nil},
		{"new geometry", CmdNew, []string{"geometry"}},
		{"resume 8/8/8/8/8/8/8/8 w - - 0 1", CmdResume, []string{"8/8/8/8/8/8/8/8", "w", "-", "-", "0", "1"}},
		{"undo 2", CmdUndo, []string{"2"}},
		{"glyphs unicode", CmdGlyphs, []string{"unicode"}},
		{"layout boxed", CmdLayout, []string{"boxed"}},
		{"color green", CmdColor, []string{"green"}},
		{"flip", CmdFlip, nil},
		{"verbose", CmdVerbose, nil},
		{"history", CmdHistory, nil},
		{"?", CmdHelp, nil},
		{"e2e4", CmdMove, []string{"e2e4"}},
		{"e2 e4", CmdMove, []string{"e2 e4"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.want, cmd.Type)
			if tt.args != nil {
				assert.Equal(t, tt.args, cmd.Args)
			} else {
				assert.Empty(t, cmd.Args)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	c, _ := newTestCLI(t, "  e2e4  \n\n")

	cmd, err := c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, CmdMove, cmd.Type)
	assert.Equal(t, []string{"e2e4"}, cmd.Args)

	cmd, err = c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, CmdNone, cmd.Type)

	// End of input quits
	cmd, err = c.GetCommand()
	require.NoError(t, err)
	assert.Equal(t, CmdQuit, cmd.Type)
}

func TestScannerReaderEOF(t *testing.T) {
	r := NewScannerReader(strings.NewReader("one"))
	line, err := r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	_, err = r.Readline()
	assert.Equal(t, io.EOF, err)
}

type promptRecorder struct {
	*ScannerReader
	prompt string
}

func (p *promptRecorder) SetPrompt(prompt string) {
	p.prompt = prompt
}

func TestShowPrompt(t *testing.T) {
	c, out := newTestCLI(t, "")
	c.ShowPrompt("[w]> ")
	assert.Equal(t, "[w]> ", out.String())

	rec := &promptRecorder{ScannerReader: NewScannerReader(strings.NewReader(""))}
	r, err := render.New(render.Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	New(rec, &buf, r).ShowPrompt("[b]> ")
	assert.Equal(t, "[b]> ", rec.prompt)
	assert.Empty(t, buf.String())
}

func TestShowInvalidMove(t *testing.T) {
	c, out := newTestCLI(t, "")

	c.ShowInvalidMove("a1a2", rules.Deny(rules.ReasonOwnPiece))
	assert.Equal(t, "Invalid move!\n", out.String())

	out.Reset()
	c.ToggleVerbose()
	c.ShowInvalidMove("a1a2", rules.Deny(rules.ReasonOwnPiece))
	assert.Equal(t, "Invalid move! (a1a2: destination occupied by the same side)\n", out.String())
}

func TestVerboseOnlyMessages(t *testing.T) {
	c, out := newTestCLI(t, "")
	pawn := core.Piece{Type: core.Pawn, Player: core.Black}

	c.ShowMove(core.White, "e2e4")
	c.ShowCapture(pawn)
	assert.Empty(t, out.String())

	assert.True(t, c.ToggleVerbose())
	c.ShowMove(core.White, "e2e4")
	c.ShowCapture(pawn)
	assert.Equal(t, "White: e2e4\nCaptured: Black pawn\n", out.String())
}

func TestDisplayAndHistory(t *testing.T) {
	c, out := newTestCLI(t, "")
	svc := service.New(nil)
	defer svc.Close()

	id, err := svc.CreateGame("", "")
	require.NoError(t, err)
	for _, mv := range []string{"e2e4", "d7d5", "e4d5"} {
		_, _, err = svc.MakeMove(id, mv)
		require.NoError(t, err)
	}
	v, err := svc.GetGame(id)
	require.NoError(t, err)

	c.DisplayBoard(v)
	assert.Contains(t, out.String(), "4 . . . . . . . .  4")
	assert.Contains(t, out.String(), "Current player: Black")

	out.Reset()
	c.ShowGameHistory(v)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Starting FEN: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", lines[0])
	assert.Equal(t, "1. e2e4 | d7d5", lines[1])
	assert.Equal(t, "2. e4d5 | ...", lines[2])
	assert.Equal(t, "Captured: p", lines[3])
	assert.Equal(t, "Current FEN: "+v.FEN, lines[4])
}
