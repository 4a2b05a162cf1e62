// Package client talks to chess-server's JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	api "termchess/internal/transport/http"

	"github.com/fasthttp/websocket"
	"github.com/pkg/errors"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a reply with a 4xx or 5xx status
type APIError struct {
	Status int
	api.ErrorResponse
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.ErrorResponse.Error)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.ErrorResponse); err != nil {
			apiErr.ErrorResponse.Error = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

func (c *Client) CreateGame(ctx context.Context, rules, fen string) (*api.GameResponse, error) {
	var resp api.GameResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/games", &api.CreateGameRequest{Rules: rules, FEN: fen}, &resp)
	return &resp, err
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*api.GameResponse, error) {
	var resp api.GameResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) MakeMove(ctx context.Context, gameID, move string) (*api.GameResponse, error) {
	var resp api.GameResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/games/"+gameID+"/moves", &api.MoveRequest{Move: move}, &resp)
	return &resp, err
}

func (c *Client) Undo(ctx context.Context, gameID string, count int) (*api.GameResponse, error) {
	var resp api.GameResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/games/"+gameID+"/undo", &api.UndoRequest{Count: count}, &resp)
	return &resp, err
}

// GetBoard fetches the text board; empty glyphs or layout use the server
// defaults
func (c *Client) GetBoard(ctx context.Context, gameID, glyphs, layout string) (*api.BoardResponse, error) {
	query := url.Values{}
	if glyphs != "" {
		query.Set("glyphs", glyphs)
	}
	if layout != "" {
		query.Set("layout", layout)
	}
	path := "/api/v1/games/" + gameID + "/board"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp api.BoardResponse
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	return &resp, err
}

// Watch calls fn with the game state on connect and after every change. It
// returns nil when the server closes the stream or ctx ends.
func (c *Client) Watch(ctx context.Context, gameID string, fn func(api.GameResponse)) error {
	wsURL := strings.Replace(c.BaseURL, "http", "ws", 1) + "/api/v1/games/" + gameID + "/watch"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return &APIError{Status: resp.StatusCode, ErrorResponse: api.ErrorResponse{Error: "watch refused", Code: resp.Status}}
		}
		return errors.Wrap(err, "watch dial")
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var state api.GameResponse
		if err := conn.ReadJSON(&state); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "watch read")
		}
		fn(state)
	}
}
