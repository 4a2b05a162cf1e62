// Package main runs the full-screen chess board.
package main

import (
	"flag"
	"log"
	"os"

	"termchess/internal/board"
	"termchess/internal/config"
	"termchess/internal/game"
	"termchess/internal/render"
	"termchess/internal/rules"
	"termchess/internal/tui"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

func main() {
	var (
		configPath = flag.String("config", "chess.yaml", "YAML config file (optional unless set)")
		ruleset    = flag.String("rules", "", "Move rules: pseudo|geometry")
		fen        = flag.String("fen", "", "Start from a FEN position")
	)
	flag.Parse()

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := config.Load(*configPath, !explicit)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *ruleset != "" {
		cfg.Rules = *ruleset
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("chess-tui needs a terminal; use chess for piped input")
	}

	set, err := rules.ByName(cfg.Rules)
	if err != nil {
		log.Fatalf("Invalid rules: %v", err)
	}

	g := game.New(board.WithRules(set))
	if *fen != "" {
		g, err = game.FromFEN(*fen, board.WithRules(set))
		if err != nil {
			log.Fatalf("Failed to resume: %v", err)
		}
	}

	renderer, err := render.New(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to set up display: %v", err)
	}

	p := tea.NewProgram(tui.NewModel(g, renderer))
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
