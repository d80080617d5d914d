package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// EngineService answers move requests from a serialized board. Every request gets its own
// Board and Engine, so concurrent requests never share search state.
type EngineService struct {
	logger       *slog.Logger
	useHeuristic bool
}

func NewEngineService(logger *slog.Logger, useHeuristic bool) *EngineService {
	return &EngineService{
		logger:       logger.With("component", "engineService"),
		useHeuristic: useHeuristic,
	}
}

// BestMove searches the position for mover and returns the chosen move with its score.
func (that *EngineService) BestMove(ctx context.Context, dimension int, board string, mover entity.Square, ply int) (entity.BestMove, error) {
	position, err := entity.ParseBoard(dimension, board, nil)
	if err != nil {
		return entity.NoMove, fmt.Errorf("failed to parse board: %w", err)
	}

	engine := tictactoe.NewEngine(position,
		tictactoe.WithHeuristic(that.useHeuristic),
		tictactoe.WithLogger(that.logger),
	)

	move, err := engine.SelectMove(ctx, mover, ply)
	if err != nil {
		return entity.NoMove, fmt.Errorf("failed to select move: %w", err)
	}

	return move, nil
}

// FindBestMove is the remote-delegation contract: the linear index of the recommended square.
func (that *EngineService) FindBestMove(ctx context.Context, dimension int, board string, mover entity.Square, ply int) (int, error) {
	move, err := that.BestMove(ctx, dimension, board, mover, ply)
	if err != nil {
		return -1, err
	}

	return move.Index(dimension), nil
}
