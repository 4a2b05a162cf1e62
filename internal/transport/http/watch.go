package http

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WatchUpgrade admits websocket upgrades for existing games only
func (h *HTTPHandler) WatchUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := h.svc.GetGame(c.Params("gameId")); err != nil {
		return sendServiceError(c, err)
	}
	return c.Next()
}

// Watch streams a GameResponse on connect and after every move or undo.
// The stream ends with a normal close frame when the game is deleted.
func (h *HTTPHandler) Watch(conn *websocket.Conn) {
	gameID := conn.Params("gameId")

	changes, cancel, err := h.svc.Watch(gameID)
	if err != nil {
		conn.WriteJSON(ErrorResponse{Error: "game not found", Code: ErrGameNotFound})
		return
	}
	defer cancel()

	// Reads only serve to notice the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() bool {
		v, err := h.svc.GetGame(gameID)
		if err != nil {
			return false
		}
		if err := conn.WriteJSON(buildGameResponse(v)); err != nil {
			log.Printf("watch %s: write failed: %v", gameID, err)
			return false
		}
		return true
	}

	if !send() {
		return
	}

	for {
		select {
		case <-gone:
			return
		case _, ok := <-changes:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"))
				return
			}
			if !send() {
				return
			}
		}
	}
}
