// Package service hosts any number of games behind a lock, records them
// in the optional store and notifies watchers after every change.
package service

import (
	"sync"
	"time"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/rules"
	"termchess/internal/storage"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var ErrGameNotFound = errors.New("game not found")

// View is a consistent copy of one game's state
type View struct {
	ID         string
	Rules      string
	Squares    [core.BoardSize][core.BoardSize]core.Piece
	Turn       core.Player
	Moves      []string
	FEN        string
	InitialFEN string
	LastMove   string
	Captured   []core.Piece
}

// Service is a state manager for chess games with optional persistence
type Service struct {
	games   map[string]*game.Game
	mu      sync.RWMutex
	store   *storage.Store // nil if persistence disabled
	watches *WatchRegistry
}

// New creates a service, store may be nil
func New(store *storage.Store) *Service {
	return &Service{
		games:   make(map[string]*game.Game),
		store:   store,
		watches: NewWatchRegistry(),
	}
}

// CreateGame starts a game under a fresh ID. An empty fen means the
// standard starting position.
func (s *Service) CreateGame(ruleset, fen string) (string, error) {
	set, err := rules.ByName(ruleset)
	if err != nil {
		return "", err
	}

	var g *game.Game
	if fen == "" {
		g = game.New(board.WithRules(set))
	} else {
		g, err = game.FromFEN(fen, board.WithRules(set))
		if err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateID()
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   g.InitialFEN(),
			Rules:        set.Name(),
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return id, nil
}

// generateID must be called with the lock held
func (s *Service) generateID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

func (s *Service) GetGame(gameID string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return View{}, errors.Wrap(ErrGameNotFound, gameID)
	}
	return viewOf(gameID, g), nil
}

// MakeMove parses and plays a typed move. A rejected move returns the
// verdict together with an error wrapping game.ErrInvalidMove.
func (s *Service) MakeMove(gameID, text string) (View, rules.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return View{}, rules.Verdict{}, errors.Wrap(ErrGameNotFound, gameID)
	}

	mover := g.Turn()
	m, verdict, err := g.PlayText(text)
	if err != nil {
		return viewOf(gameID, g), verdict, err
	}

	if s.store != nil {
		s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   len(g.Moves()),
			Move:         m.String(),
			FENAfterMove: g.FEN(),
			PlayerColor:  mover.Code(),
			MoveTimeUTC:  time.Now().UTC(),
		})
	}
	s.watches.Notify(gameID)

	return viewOf(gameID, g), verdict, nil
}

// Undo removes the last count moves
func (s *Service) Undo(gameID string, count int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return View{}, errors.Wrap(ErrGameNotFound, gameID)
	}

	if err := g.Undo(count); err != nil {
		return viewOf(gameID, g), err
	}

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, len(g.Moves()))
	}
	s.watches.Notify(gameID)

	return viewOf(gameID, g), nil
}

// DeleteGame removes a game from memory and ends its watches
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return errors.Wrap(ErrGameNotFound, gameID)
	}

	s.watches.RemoveGame(gameID)
	delete(s.games, gameID)
	return nil
}

// Watch subscribes to changes of a game. The channel receives after every
// move or undo and is closed when the game is deleted or the service shuts
// down. The returned func unsubscribes.
func (s *Service) Watch(gameID string) (<-chan struct{}, func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.games[gameID]; !ok {
		return nil, nil, errors.Wrap(ErrGameNotFound, gameID)
	}
	ch, cancel := s.watches.Subscribe(gameID)
	return ch, cancel, nil
}

// StorageHealth returns the storage component status
func (s *Service) StorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Close ends all watches, drops the games and closes the store
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *multierror.Error

	s.watches.Close()
	s.games = make(map[string]*game.Game)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "storage close"))
		}
	}

	return result.ErrorOrNil()
}

func viewOf(id string, g *game.Game) View {
	v := View{
		ID:         id,
		Rules:      g.Rules().Name(),
		Squares:    g.Board(),
		Turn:       g.Turn(),
		FEN:        g.FEN(),
		InitialFEN: g.InitialFEN(),
		Captured:   g.Captured(),
		Moves:      []string{},
	}
	for _, m := range g.Moves() {
		v.Moves = append(v.Moves, m.String())
	}
	if last, ok := g.LastMove(); ok {
		v.LastMove = last.String()
	}
	return v
}
