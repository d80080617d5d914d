package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrBadEngineReply = errors.New("engine replied with an unusable square")

type BotService interface {
	// MakeTurns plays automated moves until a human is to move or the game ends.
	MakeTurns(ctx context.Context, game *entity.Game, board *entity.Board) error
}

type moveFinder interface {
	FindBestMove(ctx context.Context, dimension int, board string, mover entity.Square, ply int) (int, error)
}

type botService struct {
	logger *slog.Logger

	finder        moveFinder
	searchTimeout time.Duration
}

func NewBotService(logger *slog.Logger, finder moveFinder, searchTimeout time.Duration) BotService {
	return &botService{
		logger:        logger.With("component", "botService"),
		finder:        finder,
		searchTimeout: searchTimeout,
	}
}

// MakeTurns asks the move finder for every automated turn. When the finder fails or replies with
// a square that cannot be played, automation is switched off for that player and the host is
// told why; the game itself goes on. Only internal consistency failures and a cancelled caller
// are returned as errors.
func (that *botService) MakeTurns(ctx context.Context, game *entity.Game, board *entity.Board) error {
	log := that.logger.With("method", "MakeTurns", "gameID", game.ID)

	for game.IsAutomatedTurn() {
		player := game.Turn
		settings := game.Players.Get(player)

		index, err := that.findMove(ctx, game, settings.Ply)

		switch {
		case errors.Is(err, apperror.ErrInternalConsistency):
			log.Error("engine internal consistency failure", "player", player.String(), "error", err)
			return fmt.Errorf("bot failed to make turn: %w", err)
		case err != nil && ctx.Err() != nil:
			return fmt.Errorf("bot turn interrupted: %w", ctx.Err())
		case err != nil:
			that.disableAutomation(log, game, board, player, err)
			return nil
		}

		if err = that.playIndex(game, board, index); err != nil {
			that.disableAutomation(log, game, board, player, err)
			return nil
		}

		log.Debug("bot made turn", "player", player.String(), "index", index)
	}

	return nil
}

func (that *botService) findMove(ctx context.Context, game *entity.Game, ply int) (int, error) {
	if that.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.searchTimeout)
		defer cancel()
	}

	return that.finder.FindBestMove(ctx, game.Dimension, game.Board, game.Turn, ply)
}

func (that *botService) playIndex(game *entity.Game, board *entity.Board, index int) error {
	if index < 0 || index >= board.Area() {
		return fmt.Errorf("%w: index %d", ErrBadEngineReply, index)
	}

	if err := game.MakeTurn(board, index/board.Dimension(), index%board.Dimension()); err != nil {
		return fmt.Errorf("%w: %w", ErrBadEngineReply, err)
	}

	return nil
}

func (that *botService) disableAutomation(log *slog.Logger, game *entity.Game, board *entity.Board, player entity.Square, reason error) {
	settings := game.Players.Get(player)
	settings.Automated = false
	game.Players.Set(player, settings)

	log.Error("automated play disabled", "player", player.String(), "error", reason)
	board.Notifier().DisplayMessage(fmt.Sprintf("Automated play for %s disabled: %v", settings.Name, reason))
}
