package http

import (
	"termchess/internal/core"
	"termchess/internal/service"
)

// Request types

type CreateGameRequest struct {
	Rules string `json:"rules,omitempty" validate:"omitempty,oneof=pseudo geometry"`
	FEN   string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,max=16"` // coordinate form: "e2e4"
}

type UndoRequest struct {
	Count int `json:"count,omitempty" validate:"omitempty,min=1,max=500"` // default: 1
}

// Response types

type GameResponse struct {
	GameID   string    `json:"gameId"`
	FEN      string    `json:"fen"`
	Turn     string    `json:"turn"` // "w" or "b"
	Rules    string    `json:"rules"`
	Moves    []string  `json:"moves"`
	Captured []string  `json:"captured"` // FEN letters
	LastMove *MoveInfo `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Move   string `json:"move"`
	Player string `json:"player"` // "w" or "b"
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Turn  string `json:"turn"`
	Board string `json:"board"` // text rendering
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func buildGameResponse(v service.View) GameResponse {
	response := GameResponse{
		GameID:   v.ID,
		FEN:      v.FEN,
		Turn:     v.Turn.Code(),
		Rules:    v.Rules,
		Moves:    v.Moves,
		Captured: make([]string, 0, len(v.Captured)),
	}
	for _, p := range v.Captured {
		response.Captured = append(response.Captured, string(p.Letter()))
	}
	if v.LastMove != "" {
		// Every accepted move hands the turn over
		response.LastMove = &MoveInfo{
			Move:   v.LastMove,
			Player: core.Opponent(v.Turn).Code(),
		}
	}
	return response
}

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
