// Package main plays or watches a game hosted by chess-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"termchess/internal/cli"
	"termchess/internal/client"
	api "termchess/internal/transport/http"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

func main() {
	var (
		server = flag.String("server", "http://localhost:8080", "chess-server base URL")
		gameID = flag.String("game", "", "Join an existing game instead of creating one")
		rules  = flag.String("rules", "", "Rules for a new game: pseudo|geometry")
		fen    = flag.String("fen", "", "Start a new game from a FEN position")
		glyphs = flag.String("glyphs", "", "Piece glyphs: ascii|unicode")
		watch  = flag.Bool("watch", false, "Only print the board after every change (requires -game)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(*server)
	s := &session{client: c, glyphs: *glyphs, out: os.Stdout}

	if *watch {
		if *gameID == "" {
			log.Fatal("Error: -watch requires -game")
		}
		if err := s.watch(ctx, *gameID); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
		return
	}

	var (
		g   *api.GameResponse
		err error
	)
	if *gameID != "" {
		g, err = c.GetGame(ctx, *gameID)
	} else {
		g, err = c.CreateGame(ctx, *rules, *fen)
	}
	if err != nil {
		log.Fatalf("Failed to open game: %v", err)
	}
	s.gameID = g.GameID
	fmt.Fprintf(s.out, "Game: %s (rules: %s)\n", g.GameID, g.Rules)
	s.showBoard(ctx)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".chess_client_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("Failed to set up input: %v", err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(fmt.Sprintf("[%s]> ", s.turn))
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if !s.handle(ctx, cli.ParseCommand(strings.TrimSpace(line))) {
			break
		}
	}
}

type session struct {
	client *client.Client
	gameID string
	glyphs string
	turn   string
	out    io.Writer
}

// handle runs one command against the server, returning false to exit
func (s *session) handle(ctx context.Context, cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdMove:
		if _, err := s.client.MakeMove(ctx, s.gameID, cmd.Args[0]); err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Code == api.ErrInvalidMove {
				fmt.Fprintf(s.out, "Invalid move! (%s)\n", apiErr.Details)
				return true
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return true
		}
		s.showBoard(ctx)

	case cli.CmdUndo:
		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil {
				fmt.Fprintln(s.out, "Usage: undo [count]")
				return true
			}
			count = n
		}
		if _, err := s.client.Undo(ctx, s.gameID, count); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return true
		}
		s.showBoard(ctx)

	case cli.CmdHistory:
		g, err := s.client.GetGame(ctx, s.gameID)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(s.out, "Moves: %s\nCaptured: %s\nFEN: %s\n",
			strings.Join(g.Moves, " "), strings.Join(g.Captured, " "), g.FEN)

	case cli.CmdGlyphs:
		if len(cmd.Args) > 0 {
			s.glyphs = cmd.Args[0]
		}
		s.showBoard(ctx)

	case cli.CmdNone:

	default:
		fmt.Fprintln(s.out, "Commands: <move>, undo [n], history, glyphs <set>, q")
	}
	return true
}

func (s *session) showBoard(ctx context.Context) {
	b, err := s.client.GetBoard(ctx, s.gameID, s.glyphs, "")
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.turn = b.Turn
	fmt.Fprintf(s.out, "\n%s\n\nTurn: %s\n", b.Board, b.Turn)
}

func (s *session) watch(ctx context.Context, gameID string) error {
	s.gameID = gameID
	return s.client.Watch(ctx, gameID, func(state api.GameResponse) {
		if state.LastMove != nil {
			fmt.Fprintf(s.out, "\n%s played %s\n", state.LastMove.Player, state.LastMove.Move)
		}
		s.showBoard(ctx)
	})
}
