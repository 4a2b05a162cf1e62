// Package cli implements the "db" maintenance subcommands of chess-server.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"termchess/internal/storage"

	"github.com/pkg/errors"
)

// Run is the entry point for the CLI mini-app
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("subcommand required: init, delete, or query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	default:
		return errors.Errorf("unknown subcommand: %s", args[0])
	}
}

func parsePath(name string, args []string, extra func(fs *flag.FlagSet)) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	if extra != nil {
		extra(fs)
	}

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *path == "" {
		return "", errors.New("database path required")
	}
	return *path, nil
}

func runInit(args []string, out io.Writer) error {
	path, err := parsePath("init", args, nil)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return errors.Wrap(err, "failed to create store")
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return errors.Wrap(err, "failed to initialize database")
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	path, err := parsePath("delete", args, nil)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}

	if err := store.DeleteDB(); err != nil {
		return errors.Wrap(err, "failed to delete database")
	}

	fmt.Fprintf(out, "Database deleted: %s\n", path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	var gameID *string
	var moves *bool
	path, err := parsePath("query", args, func(fs *flag.FlagSet) {
		gameID = fs.String("gameId", "", "Game ID to filter (optional, * for all)")
		moves = fs.Bool("moves", false, "List the moves of each game")
	})
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID)
	if err != nil {
		return errors.Wrap(err, "query failed")
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tRules\tStart Time\tInitial FEN")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(g.GameID),
			g.Rules,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
			g.InitialFEN,
		)

		if !*moves {
			continue
		}
		records, err := store.QueryMoves(g.GameID)
		if err != nil {
			return errors.Wrapf(err, "query moves of %s", g.GameID)
		}
		for _, m := range records {
			fmt.Fprintf(w, "\t%d. %s (%s)\t%s\t%s\n",
				m.MoveNumber, m.Move, m.PlayerColor,
				m.MoveTimeUTC.Format("15:04:05"),
				m.FENAfterMove,
			)
		}
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
