package http

import (
	"fmt"
	"strings"
	"time"

	"termchess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

type AppConfig struct {
	Dev          bool   // startup banner, CORS open to any origin
	RateLimit    int    // requests per second per client, 0 disables
	DefaultRules string // rule set for games created without one
}

type HTTPHandler struct {
	svc          *service.Service
	defaultRules string
}

func NewHTTPHandler(svc *service.Service, defaultRules string) *HTTPHandler {
	return &HTTPHandler{svc: svc, defaultRules: defaultRules}
}

func NewFiberApp(svc *service.Service, cfg AppConfig) *fiber.App {
	h := NewHTTPHandler(svc, cfg.DefaultRules)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
		DisableStartupMessage: !cfg.Dev,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	allowOrigins := "http://localhost"
	if cfg.Dev {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	if cfg.RateLimit > 0 {
		maxReq := cfg.RateLimit
		api.Use(limiter.New(limiter.Config{
			Max:          maxReq,
			Expiration:   1 * time.Second,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
					Error:   "rate limit exceeded",
					Code:    ErrRateLimitExceeded,
					Details: fmt.Sprintf("%d requests per second allowed", maxReq),
				})
			},
		}))
	}

	api.Use(contentTypeValidator)

	api.Post("/games", validateBody[CreateGameRequest], h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", validateBody[MoveRequest], h.MakeMove)
	api.Post("/games/:gameId/undo", validateBody[UndoRequest], h.UndoMove)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Get("/games/:gameId/watch", h.WatchUpgrade, websocket.New(h.Watch))

	return app
}

// clientKey prefers the first X-Forwarded-For hop over the remote IP
func clientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	return c.IP()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := ErrorResponse{
		Error: "internal server error",
		Code:  ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = ErrGameNotFound
		case fiber.StatusBadRequest, fiber.StatusUpgradeRequired:
			response.Code = ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// Health reports liveness and the storage component state
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.StorageHealth(),
		"games":   h.svc.GameCount(),
	})
}
