package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const bestMovePath = "/api/engine/best-move"

var ErrUnexpectedStatus = errors.New("remote engine returned unexpected status")

// Client asks a remote engine for the best move over HTTP.
type Client struct {
	logger *slog.Logger

	baseURL    string
	httpClient *http.Client
}

func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:     logger.With("component", "remoteEngine"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FindBestMove posts the position and returns the index the remote engine picked.
func (that *Client) FindBestMove(ctx context.Context, dimension int, board string, mover entity.Square, ply int) (int, error) {
	log := that.logger.With("method", "FindBestMove")

	body, err := json.Marshal(entity.BestMoveRequest{
		BoardDimension: dimension,
		Board:          board,
		PlayerIsX:      mover == entity.X,
		Ply:            ply,
	})
	if err != nil {
		return -1, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+bestMovePath, bytes.NewReader(body))
	if err != nil {
		return -1, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return -1, fmt.Errorf("remote engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return -1, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var reply entity.BestMoveResponse
	if err = json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return -1, fmt.Errorf("failed to decode reply: %w", err)
	}

	log.Debug("remote engine replied", "index", reply.Index)

	return reply.Index, nil
}
