// Package cli drives a single terminal game through the service.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"termchess/internal/cli"
	"termchess/internal/game"
	"termchess/internal/service"

	"github.com/pkg/errors"
)

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	rules  string
	gameID string
}

// New creates a handler whose games use the named rule set
func New(svc *service.Service, view *cli.CLI, ruleset string) *CLIHandler {
	return &CLIHandler{
		svc:   svc,
		view:  view,
		rules: ruleset,
	}
}

func (h *CLIHandler) GameID() string {
	return h.gameID
}

// Start opens the first game, from fen when given, and draws it
func (h *CLIHandler) Start(fen string) error {
	if err := h.startGame(h.rules, fen); err != nil {
		return err
	}
	h.showBoard()
	return nil
}

// Run is the main loop; it returns on quit or end of input
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			h.view.ShowError(err)
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if v, err := h.svc.GetGame(h.gameID); err == nil {
		return fmt.Sprintf("[%s]> ", v.Turn.Code())
	}
	return "> "
}

// ProcessCommand handles one command, returning false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		ruleset := h.rules
		if len(cmd.Args) > 0 {
			ruleset = cmd.Args[0]
		}
		if err := h.startGame(ruleset, ""); err != nil {
			h.view.ShowError(errors.Wrap(err, "could not start the game"))
			return true
		}
		h.rules = ruleset
		h.view.ShowMessage("Game started.")
		h.showBoard()

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		if err := h.startGame(h.rules, strings.Join(cmd.Args, " ")); err != nil {
			h.view.ShowError(errors.Wrap(err, "could not resume"))
			return true
		}
		h.view.ShowMessage("Game resumed.")
		h.showBoard()

	case cli.CmdMove:
		h.handleMove(cmd.Args[0])

	case cli.CmdUndo:
		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 1 {
				h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return true
			}
			count = n
		}

		if _, err := h.svc.Undo(h.gameID, count); err != nil {
			h.view.ShowError(err)
			return true
		}
		if count == 1 {
			h.view.ShowMessage("Move undone")
		} else {
			h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
		}
		h.showBoard()

	case cli.CmdGlyphs:
		h.setDisplay(cmd.Args, "glyphs <ascii|unicode>", "Glyphs", h.view.Renderer().SetGlyphs)

	case cli.CmdLayout:
		h.setDisplay(cmd.Args, "layout <compact|boxed>", "Layout", h.view.Renderer().SetLayout)

	case cli.CmdColor:
		h.setDisplay(cmd.Args, "color <off|brown|green|gray>", "Color theme", h.view.Renderer().SetTheme)

	case cli.CmdFlip:
		r := h.view.Renderer()
		r.SetFlip(!r.Options().Flip)
		h.showBoard()

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		v, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameHistory(v)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) handleMove(input string) {
	before, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	v, verdict, err := h.svc.MakeMove(h.gameID, input)
	if err != nil {
		if errors.Cause(err) == game.ErrInvalidMove {
			h.view.ShowInvalidMove(input, verdict)
			return
		}
		h.view.ShowError(err)
		return
	}

	h.view.ShowMove(before.Turn, v.LastMove)
	if len(v.Captured) > len(before.Captured) {
		h.view.ShowCapture(v.Captured[len(v.Captured)-1])
	}
	h.showBoard()
}

// setDisplay applies one renderer setting and redraws
func (h *CLIHandler) setDisplay(args []string, usage, label string, set func(string) error) {
	if len(args) < 1 {
		h.view.ShowMessage("Usage: " + usage)
		return
	}
	if err := set(args[0]); err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.ShowMessage(fmt.Sprintf("%s set to: %s", label, args[0]))
	h.showBoard()
}

// startGame replaces the current game
func (h *CLIHandler) startGame(ruleset, fen string) error {
	id, err := h.svc.CreateGame(ruleset, fen)
	if err != nil {
		return err
	}
	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id
	return nil
}

func (h *CLIHandler) showBoard() {
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(v)
}
