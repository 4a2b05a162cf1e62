// Package cli is the terminal view: it reads commands line by line and
// prints boards, history and messages.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"termchess/internal/core"
	"termchess/internal/render"
	"termchess/internal/rules"
	"termchess/internal/service"

	"github.com/pkg/errors"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdUndo
	CmdGlyphs
	CmdLayout
	CmdColor
	CmdFlip
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader yields one line per call and io.EOF at the end of input
type LineReader interface {
	Readline() (string, error)
}

// prompter is implemented by line editors that draw their own prompt
type prompter interface {
	SetPrompt(prompt string)
}

// ScannerReader adapts any io.Reader to LineReader
type ScannerReader struct {
	scanner *bufio.Scanner
}

func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

func (s *ScannerReader) Readline() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type CLI struct {
	input    LineReader
	output   io.Writer
	renderer *render.Renderer
	verbose  bool
}

func New(input LineReader, output io.Writer, renderer *render.Renderer) *CLI {
	return &CLI{
		input:    input,
		output:   output,
		renderer: renderer,
	}
}

// GetCommand reads a command synchronously. End of input reads as quit.
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err != nil {
		if err == io.EOF {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, errors.Wrap(err, "read input")
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

// ParseCommand maps a non-empty input line to a command. Anything that is
// not a keyword is a move attempt carrying the whole line.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "glyphs":
		return &Command{Type: CmdGlyphs, Args: args}
	case "layout":
		return &Command{Type: CmdLayout, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "flip":
		return &Command{Type: CmdFlip}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "q", "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		return &Command{Type: CmdMove, Args: []string{input}, Raw: input}
	}
}

func (c *CLI) Renderer() *render.Renderer {
	return c.renderer
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// ShowPrompt hands the prompt to the line editor when it draws its own
func (c *CLI) ShowPrompt(prompt string) {
	if p, ok := c.input.(prompter); ok {
		p.SetPrompt(prompt)
		return
	}
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard prints the board followed by the side to move
func (c *CLI) DisplayBoard(v service.View) {
	c.ShowMessage("\n" + c.renderer.Render(v.Squares) + "\n")
	c.ShowMessage(c.renderer.Status(v.Turn))
}

func (c *CLI) ShowMove(player core.Player, mv string) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("%s: %s", player, mv))
	}
}

func (c *CLI) ShowCapture(p core.Piece) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Captured: %s %s", p.Player, p.Type.Name()))
	}
}

// ShowInvalidMove reports a rejected move, with the rule that failed in
// verbose mode
func (c *CLI) ShowInvalidMove(input string, verdict rules.Verdict) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Invalid move! (%s: %s)", input, verdict.Reason))
		return
	}
	c.ShowMessage("Invalid move!")
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <move>           - Make a move in coordinate notation (e.g., e2e4, g1f3)
  new [rules]      - Start a new game (rules: pseudo|geometry)
  resume <FEN>     - Resume from a specific board position
  undo [count]     - Undo last move(s), default 1
  history          - Show game move history and captured pieces
  glyphs <set>     - Set piece glyphs (ascii|unicode)
  layout <name>    - Set board layout (compact|boxed)
  color <theme>    - Set board color theme (off|brown|green|gray)
  flip             - Draw the board from the other side
  verbose          - Toggle detailed move information
  q/quit/exit      - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Enter your move as chess notation (e.g., e2e4). ('q' to quit)")
	c.ShowMessage("Type 'help' for more commands.")
}

func (c *CLI) ShowGameHistory(v service.View) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", v.InitialFEN))

	for i := 0; i < len(v.Moves); i += 2 {
		moveNum := i/2 + 1
		white := v.Moves[i]
		if i+1 < len(v.Moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, v.Moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}

	if len(v.Captured) > 0 {
		letters := make([]string, 0, len(v.Captured))
		for _, p := range v.Captured {
			letters = append(letters, c.renderer.Glyph(p))
		}
		c.ShowMessage("Captured: " + strings.Join(letters, " "))
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", v.FEN))
}
