package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context, board *entity.Board, players entity.Players) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	MakeTurns(ctx context.Context, game *entity.Game, board *entity.Board) error
}

// Outcome is the state of a game after a request, with the notifications produced on the way.
type Outcome struct {
	Game    *entity.Game   `json:"game"`
	Events  []entity.Event `json:"events"`
	Message string         `json:"message"`
}

// GameManager runs the host loop: a human move is displayed, the turn passes, and automated
// players answer until a human is to move again.
type GameManager struct {
	logger *slog.Logger

	gameService gameService
	botService  botService

	dimension int
	players   entity.Players
}

func NewGameManager(logger *slog.Logger, gameService gameService, botService botService, dimension int, players entity.Players) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		gameService: gameService,
		botService:  botService,

		dimension: dimension,
		players:   players.WithDefaults(),
	}
}

// NewGame starts a session. Zero dimension and nil players fall back to the configured defaults;
// contents optionally seeds the board.
func (that *GameManager) NewGame(ctx context.Context, dimension int, contents string, players *entity.Players) (*Outcome, error) {
	if dimension == 0 {
		dimension = that.dimension
	}

	settings := that.players
	if players != nil {
		settings = players.WithDefaults()
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid players: %w", err)
	}

	recorder := &entity.Recorder{}

	board, err := entity.NewBoard(dimension, recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if err = board.Reset(contents); err != nil {
		return nil, fmt.Errorf("failed to seed board: %w", err)
	}

	game, err := that.gameService.CreateGame(ctx, board, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "dimension", dimension)

	return that.advance(ctx, game, board, recorder)
}

// MakeMove plays a human move for the player to move, then lets automated players answer.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, row, column int) (*Outcome, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.IsAutomatedTurn() {
		return nil, fmt.Errorf("%w: %s is played by the engine", apperror.ErrNotYourTurn, game.Turn)
	}

	recorder := &entity.Recorder{}

	board, err := game.RestoreBoard(recorder)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(board, row, column); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return that.advance(ctx, game, board, recorder)
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*Outcome, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &Outcome{Game: game, Events: []entity.Event{}, Message: game.StatusMessage()}, nil
}

// UpdatePlayers replaces the player settings of a session. Switching the side to move to
// automated makes the engine play right away.
func (that *GameManager) UpdatePlayers(ctx context.Context, gameID string, players entity.Players) (*Outcome, error) {
	players = players.WithDefaults()
	if err := players.Validate(); err != nil {
		return nil, fmt.Errorf("invalid players: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game.Players = players

	recorder := &entity.Recorder{}

	board, err := game.RestoreBoard(recorder)
	if err != nil {
		return nil, err
	}

	return that.advance(ctx, game, board, recorder)
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// advance lets automated players move and stores the result. Moves made before an interrupted
// bot turn are kept.
func (that *GameManager) advance(ctx context.Context, game *entity.Game, board *entity.Board, recorder *entity.Recorder) (*Outcome, error) {
	log := that.logger.With("method", "advance", "gameID", game.ID)

	botErr := that.botService.MakeTurns(ctx, game, board)

	if err := that.gameService.UpdateGame(context.WithoutCancel(ctx), game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if botErr != nil {
		log.Warn("automated turns stopped", "error", botErr)
		return nil, botErr
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	events := recorder.Events()
	if events == nil {
		events = []entity.Event{}
	}

	return &Outcome{Game: game, Events: events, Message: game.StatusMessage()}, nil
}
