package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errBadPayload = errors.New("invalid payload")

type newGameRequest struct {
	Dimension int             `json:"dimension"`
	Board     string          `json:"board"`
	Players   *entity.Players `json:"players,omitempty"`
}

type moveRequest struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req entity.BestMoveRequest
	if !that.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	if that.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.searchTimeout)
		defer cancel()
	}

	index, err := that.engine.FindBestMove(ctx, req.BoardDimension, req.Board, req.Mover(), req.Ply)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entity.BestMoveResponse{Index: index})
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if !that.decode(w, r, &req) {
		return
	}

	outcome, err := that.games.NewGame(r.Context(), req.Dimension, req.Board, req.Players)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, outcome)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	outcome, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decode(w, r, &req) {
		return
	}

	outcome, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), req.Row, req.Column)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Server) handleUpdatePlayers(w http.ResponseWriter, r *http.Request) {
	var req entity.Players
	if !that.decode(w, r, &req) {
		return
	}

	outcome, err := that.games.UpdatePlayers(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", errBadPayload, err))
		return false
	}

	return true
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	log := that.logger.With("path", r.URL.Path, "status", status, "error", err)
	if status == http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusOf maps an application error to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInternalConsistency):
		return http.StatusInternalServerError
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict
	case errors.Is(err, errBadPayload),
		errors.Is(err, apperror.ErrInvalidDimension),
		errors.Is(err, apperror.ErrMalformedSerialization),
		errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrInvalidPlayer),
		errors.Is(err, apperror.ErrInvalidPly),
		errors.Is(err, apperror.ErrNoEmptySquares):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSearchCancelled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
