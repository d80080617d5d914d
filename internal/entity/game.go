package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a stored game session. The board lives in its serialized form between requests.
type Game struct {
	ID        string  `json:"id"`
	Dimension int     `json:"dimension"`
	Board     string  `json:"board"`
	Turn      Square  `json:"player_turn"`
	Winner    string  `json:"winner"`
	Status    string  `json:"status"`
	Players   Players `json:"players"`
}

// NewGame captures a freshly reset board. The board may be pre-seeded; the game still starts
// with X to move.
func NewGame(id string, board *Board, players Players) *Game {
	return &Game{
		ID:        id,
		Dimension: board.Dimension(),
		Board:     board.Serialize(),
		Turn:      board.CurrentPlayer(),
		Status:    StatusOngoing,
		Players:   players,
	}
}

// RestoreBoard rebuilds the board of this session with notifier attached.
func (that *Game) RestoreBoard(notifier Notifier) (*Board, error) {
	board, err := ParseBoard(that.Dimension, that.Board, notifier)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	if that.Turn.IsPlayer() {
		board.SetCurrentPlayer(that.Turn)
	}

	return board, nil
}

// MakeTurn places a displayed piece for the player to move and advances the session.
func (that *Game) MakeTurn(board *Board, row, column int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	square, err := board.At(row, column)
	if err != nil {
		return err
	}

	if square != Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, column)
	}

	player := that.Turn

	victory, err := board.Place(player, row, column, true)
	if err != nil {
		return fmt.Errorf("failed to place piece: %w", err)
	}

	that.Board = board.Serialize()

	switch {
	// one player wins
	case victory:
		that.Winner = player.String()
		that.Status = StatusFinished
		that.Turn = Empty
	// tie
	case board.IsFull():
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = Empty
	// game continue
	default:
		that.Turn = player.Opponent()
		board.SetCurrentPlayer(that.Turn)
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// IsAutomatedTurn reports whether the engine should play the next move.
func (that *Game) IsAutomatedTurn() bool {
	return that.IsOngoing() && that.Players.Get(that.Turn).Automated
}

// StatusMessage is the line a host shows under the board.
func (that *Game) StatusMessage() string {
	switch {
	case that.IsFinished() && that.Winner == PlayerTie:
		return "Tie game."
	case that.IsFinished():
		winner, err := ParseSquare(that.Winner)
		if err != nil {
			return fmt.Sprintf("%s wins!", that.Winner)
		}

		return fmt.Sprintf("%s wins!", that.Players.Get(winner).Name)
	default:
		return fmt.Sprintf("%s's turn.", that.Players.Get(that.Turn).Name)
	}
}
