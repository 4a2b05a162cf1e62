package http

import (
	"termchess/internal/game"
	"termchess/internal/render"
	"termchess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// CreateGame starts a game from the standard setup or a FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validated[CreateGameRequest](c)
	if err != nil {
		return err
	}

	ruleset := req.Rules
	if ruleset == "" {
		ruleset = h.defaultRules
	}

	gameID, err := h.svc.CreateGame(ruleset, req.FEN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "failed to create game",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(v))
}

func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	v, err := h.svc.GetGame(c.Params("gameId"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// MakeMove submits a move in coordinate notation for the side to move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	req, err := validated[MoveRequest](c)
	if err != nil {
		return err
	}

	v, verdict, err := h.svc.MakeMove(c.Params("gameId"), req.Move)
	if err != nil {
		if errors.Cause(err) == game.ErrInvalidMove {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid move",
				Code:    ErrInvalidMove,
				Details: verdict.Reason.String(),
			})
		}
		return sendServiceError(c, err)
	}

	return c.JSON(buildGameResponse(v))
}

// UndoMove undoes one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	req, err := validated[UndoRequest](c)
	if err != nil {
		return err
	}
	if req.Count < 1 {
		req.Count = 1
	}

	v, err := h.svc.Undo(c.Params("gameId"), req.Count)
	if err != nil {
		if errors.Cause(err) == service.ErrGameNotFound {
			return sendServiceError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "cannot undo moves",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	return c.JSON(buildGameResponse(v))
}

func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	if err := h.svc.DeleteGame(c.Params("gameId")); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the text rendering of the board. Query parameters glyphs
// and layout pick the strategies; color themes are never sent.
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	v, err := h.svc.GetGame(c.Params("gameId"))
	if err != nil {
		return sendServiceError(c, err)
	}

	opts := render.DefaultOptions()
	opts.Glyphs = c.Query("glyphs", opts.Glyphs)
	opts.Layout = c.Query("layout", opts.Layout)
	opts.Flip = c.QueryBool("flip", false)

	r, err := render.New(opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid board options",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	return c.JSON(BoardResponse{
		FEN:   v.FEN,
		Turn:  v.Turn.Code(),
		Board: r.Render(v.Squares),
	})
}

// sendServiceError maps service failures to status codes
func sendServiceError(c *fiber.Ctx, err error) error {
	if errors.Cause(err) == service.ErrGameNotFound {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal server error",
		Code:    ErrInternalError,
		Details: err.Error(),
	})
}
