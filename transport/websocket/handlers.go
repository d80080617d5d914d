package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errNoGame = errors.New("no game in this session")

func (that *Server) handleNewGame(ctx context.Context, msg *Message, session *session) error {
	var payload newGamePayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}

	outcome, err := that.games.NewGame(ctx, payload.Dimension, payload.Board, payload.Players)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	session.setGameID(outcome.Game.ID)

	return session.sendOutcome(outcome)
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, session *session) error {
	var payload getGamePayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}

	if payload.ID == "" {
		payload.ID = session.currentGameID()
	}

	if payload.ID == "" {
		return errNoGame
	}

	outcome, err := that.games.GetGame(ctx, payload.ID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	session.setGameID(outcome.Game.ID)

	return session.sendOutcome(outcome)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, session *session) error {
	var payload turnPayload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return err
	}

	if payload.ID == "" {
		payload.ID = session.currentGameID()
	}

	if payload.ID == "" {
		return errNoGame
	}

	outcome, err := that.games.MakeMove(ctx, payload.ID, payload.Row, payload.Column)
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return session.sendOutcome(outcome)
}

// unmarshalPayload accepts a missing payload as an empty one.
func unmarshalPayload(msg *Message, dst any) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
