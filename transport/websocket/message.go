package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// client actions.
const (
	actionNewGame  = "game:new"
	actionGetGame  = "game:get"
	actionGameTurn = "game:turn"
)

// server pushes.
const (
	actionGameState = "game:state"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type newGamePayload struct {
	Dimension int             `json:"dimension"`
	Board     string          `json:"board"`
	Players   *entity.Players `json:"players,omitempty"`
}

type getGamePayload struct {
	ID string `json:"id"`
}

// turnPayload plays on the session's current game when ID is empty.
type turnPayload struct {
	ID     string `json:"id,omitempty"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

type statePayload struct {
	Game    *entity.Game `json:"game"`
	Message string       `json:"message"`
}

type errorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}
