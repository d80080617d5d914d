package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func newTestGame(t *testing.T, contents string) (*Game, *Board, *Recorder) {
	t.Helper()

	recorder := &Recorder{}

	board, err := ParseBoard(3, contents, recorder)
	require.NoError(t, err)

	return NewGame("123", board, DefaultPlayers()), board, recorder
}

func TestNewGame(t *testing.T) {
	// When: a game is created from an empty board
	game, _, _ := newTestGame(t, "         ")

	// Then: the session matches the expected initial state
	expectedGame := &Game{
		ID:        "123",
		Dimension: 3,
		Board:     "         ",
		Turn:      X,
		Status:    StatusOngoing,
		Players:   DefaultPlayers(),
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, "X's turn.", game.StatusMessage())
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: a new game
		game, board, recorder := newTestGame(t, "         ")

		// When: X plays the center
		err := game.MakeTurn(board, 1, 1)

		// Then: the move is captured and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, "    X    ", game.Board)
		assert.Equal(t, O, game.Turn)
		assert.Equal(t, O, board.CurrentPlayer())
		assert.True(t, game.IsOngoing())
		assert.Equal(t, []Event{{Type: EventPiecePlaced, Piece: X, Row: 1, Column: 1}}, recorder.Events())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds the corner
		game, board, _ := newTestGame(t, "X        ")
		game.Turn = O

		// When: O tries the same square
		err := game.MakeTurn(board, 0, 0)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, "X        ", game.Board)
		assert.Equal(t, O, game.Turn)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		game, board, _ := newTestGame(t, "         ")

		// When: a coordinate outside the board is passed
		err := game.MakeTurn(board, 3, 0)

		// Then: ErrOutOfRange is returned
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)
	})

	t.Run("Winning move", func(t *testing.T) {
		// Given: X can complete the top row
		game, board, _ := newTestGame(t, "XX    OO ")

		// When: X plays the last square of the row
		err := game.MakeTurn(board, 0, 2)

		// Then: X wins
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
		assert.Equal(t, Empty, game.Turn)
		assert.True(t, board.IsOver())
		assert.Equal(t, "X wins!", game.StatusMessage())
	})

	t.Run("Tie", func(t *testing.T) {
		// Given: one square left and no win possible
		// O X O
		// O X X
		// X O .
		game, board, _ := newTestGame(t, "OXOOXXXO ")
		game.Turn = O

		// When: O fills the last square
		err := game.MakeTurn(board, 2, 2)

		// Then: the game is a tie
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerTie, game.Winner)
		assert.Equal(t, "Tie game.", game.StatusMessage())
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a finished game
		game, board, _ := newTestGame(t, "XXX OO   ")
		game.Status = StatusFinished
		game.Winner = "X"

		// When: O tries to move
		err := game.MakeTurn(board, 1, 0)

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_RestoreBoard(t *testing.T) {
	// Given: a stored session with O to move
	game, _, _ := newTestGame(t, "X        ")
	game.Turn = O

	payload, err := json.Marshal(game)
	require.NoError(t, err)

	var stored Game
	require.NoError(t, json.Unmarshal(payload, &stored))

	// When: the board is restored from the decoded session
	board, err := stored.RestoreBoard(nil)

	// Then: the board and the player to move are back
	require.NoError(t, err)
	assert.Equal(t, *game, stored)
	assert.Equal(t, "X        ", board.Serialize())
	assert.Equal(t, O, board.CurrentPlayer())
}

func TestGame_IsAutomatedTurn(t *testing.T) {
	game, _, _ := newTestGame(t, "         ")

	// Then: X is automated by default, O is not
	assert.True(t, game.IsAutomatedTurn())

	game.Turn = O
	assert.False(t, game.IsAutomatedTurn())

	game.Turn = X
	game.Status = StatusFinished
	assert.False(t, game.IsAutomatedTurn())
}
