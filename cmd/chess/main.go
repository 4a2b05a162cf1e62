// Package main runs the interactive terminal chess board.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"termchess/internal/cli"
	"termchess/internal/config"
	"termchess/internal/render"
	"termchess/internal/service"
	"termchess/internal/storage"
	clitransport "termchess/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const defaultConfig = "chess.yaml"

func main() {
	var (
		configPath  = flag.String("config", defaultConfig, "YAML config file (optional unless set)")
		glyphs      = flag.String("glyphs", "", "Piece glyphs: ascii|unicode")
		layout      = flag.String("layout", "", "Board layout: compact|boxed")
		theme       = flag.String("theme", "", "Color theme: off|brown|green|gray")
		flip        = flag.Bool("flip", false, "Draw the board from Black's side")
		ruleset     = flag.String("rules", "", "Move rules: pseudo|geometry")
		fen         = flag.String("fen", "", "Start from a FEN position")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		writeConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	)
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	cfg, err := config.Load(*configPath, !setFlags["config"])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if setFlags["glyphs"] {
		cfg.Display.Glyphs = *glyphs
	}
	if setFlags["layout"] {
		cfg.Display.Layout = *layout
	}
	if setFlags["theme"] {
		cfg.Display.Theme = *theme
	}
	if setFlags["flip"] {
		cfg.Display.Flip = *flip
	}
	if setFlags["rules"] {
		cfg.Rules = *ruleset
	}
	if setFlags["storage-path"] {
		cfg.Storage.Path = *storagePath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	if *writeConfig != "" {
		if err := config.Write(cfg, *writeConfig, 0644); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Config written to: %s\n", *writeConfig)
		return
	}

	// No colors when piped
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		cfg.Display.Theme = render.ThemeOff
	}

	renderer, err := render.New(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to set up display: %v", err)
	}

	var store *storage.Store
	if cfg.Storage.Path != "" {
		store, err = storage.NewStore(cfg.Storage.Path, cfg.Storage.Dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}

	svc := service.New(store)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("Warning: failed to close cleanly: %v", err)
		}
	}()

	input, closeInput, err := newLineReader(cfg.HistoryFile)
	if err != nil {
		log.Fatalf("Failed to set up input: %v", err)
	}
	defer closeInput()

	view := cli.New(input, os.Stdout, renderer)
	handler := clitransport.New(svc, view, cfg.Rules)

	view.ShowWelcome()
	if err := handler.Start(*fen); err != nil {
		log.Printf("Failed to start game: %v", err)
		return
	}
	handler.Run()
}

// lineEditor treats ^C as an empty line
type lineEditor struct {
	*readline.Instance
}

func (l lineEditor) Readline() (string, error) {
	line, err := l.Instance.Readline()
	if err == readline.ErrInterrupt {
		return "", nil
	}
	return line, err
}

// newLineReader uses readline with history on a terminal and a plain
// scanner otherwise
func newLineReader(historyFile string) (cli.LineReader, func(), error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cli.NewScannerReader(os.Stdin), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, nil, err
	}
	return lineEditor{Instance: rl}, func() { rl.Close() }, nil
}
