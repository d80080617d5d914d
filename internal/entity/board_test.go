package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func TestNewBoard(t *testing.T) {
	t.Run("Supported dimensions", func(t *testing.T) {
		for _, dimension := range []int{3, 4} {
			// When: a board is created
			board, err := NewBoard(dimension, nil)

			// Then: it is empty with X to move
			require.NoError(t, err)
			assert.Equal(t, dimension*dimension, board.Area())
			assert.Equal(t, dimension, board.Dimension())
			assert.Equal(t, 0, board.Population())
			assert.Equal(t, X, board.CurrentPlayer())
			assert.False(t, board.IsOver())
			assert.Equal(t, strings.Repeat(" ", dimension*dimension), board.Serialize())

			for _, square := range board.Cells() {
				assert.Equal(t, Empty, square)
			}
		}
	})

	t.Run("Unsupported dimensions", func(t *testing.T) {
		for _, dimension := range []int{-1, 0, 2, 5} {
			// When: a board of an unsupported size is created
			board, err := NewBoard(dimension, nil)

			// Then: ErrInvalidDimension is returned
			require.ErrorIs(t, err, apperror.ErrInvalidDimension)
			assert.Nil(t, board)
		}
	})

	t.Run("Seeded board", func(t *testing.T) {
		// When: a board is parsed from a serialized string
		board, err := ParseBoard(3, "XX    OO ", nil)

		// Then: the pieces are in place and the population matches
		require.NoError(t, err)
		assert.Equal(t, 4, board.Population())
		assert.Equal(t, []Square{X, X, Empty, Empty, Empty, Empty, O, O, Empty}, board.Cells())
	})

	t.Run("Seed with wrong length", func(t *testing.T) {
		// When: the serialized string is too short
		_, err := ParseBoard(3, "XX", nil)

		// Then: ErrMalformedSerialization is returned
		require.ErrorIs(t, err, apperror.ErrMalformedSerialization)
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Population follows placements and erasures", func(t *testing.T) {
		// Given: an empty board
		board, err := NewBoard(3, nil)
		require.NoError(t, err)

		// When: two pieces are placed and one is erased
		_, err = board.Place(X, 0, 0, false)
		require.NoError(t, err)
		_, err = board.Place(O, 1, 1, false)
		require.NoError(t, err)
		_, err = board.Place(Empty, 0, 0, false)
		require.NoError(t, err)

		// Then: only O remains
		assert.Equal(t, 1, board.Population())
		assert.Equal(t, "    O    ", board.Serialize())
	})

	t.Run("Out of range", func(t *testing.T) {
		board, err := NewBoard(3, nil)
		require.NoError(t, err)

		for _, rc := range [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 3}} {
			// When: a coordinate outside the board is used
			_, err = board.Place(X, rc[0], rc[1], false)

			// Then: ErrOutOfRange is returned and nothing changes
			require.ErrorIs(t, err, apperror.ErrOutOfRange)
			assert.Equal(t, 0, board.Population())
		}
	})

	t.Run("Illegal moves", func(t *testing.T) {
		// Given: a board with X in the corner
		recorder := &Recorder{}
		board, err := NewBoard(3, recorder)
		require.NoError(t, err)
		_, err = board.Place(X, 0, 0, false)
		require.NoError(t, err)

		// When: the occupied square is overwritten
		_, err = board.Place(O, 0, 0, false)

		// Then: ErrIllegalMove is returned
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Contains(t, err.Error(), "overwrite")

		// When: an empty square is erased
		_, err = board.Place(Empty, 1, 1, false)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Contains(t, err.Error(), "double-erase")

		// When: an erasure is displayed
		_, err = board.Place(Empty, 0, 0, true)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Contains(t, err.Error(), "erase-display")

		// Then: the board is unchanged and the host heard nothing
		assert.Equal(t, "X        ", board.Serialize())
		assert.Equal(t, 1, board.Population())
		assert.Empty(t, recorder.Events())
	})

	t.Run("Only displayed moves notify and end the game", func(t *testing.T) {
		// Given: X needs one square to complete the top row
		recorder := &Recorder{}
		board, err := ParseBoard(3, "XX    OO ", recorder)
		require.NoError(t, err)

		// When: the winning square is tried speculatively
		victory, err := board.Place(X, 0, 2, false)

		// Then: the win is reported but the game is not over
		require.NoError(t, err)
		assert.True(t, victory)
		assert.False(t, board.IsOver())
		assert.Empty(t, recorder.Events())

		_, err = board.Place(Empty, 0, 2, false)
		require.NoError(t, err)

		// When: the same square is played for real
		victory, err = board.Place(X, 0, 2, true)

		// Then: the host is notified and the game is over
		require.NoError(t, err)
		assert.True(t, victory)
		assert.True(t, board.IsOver())
		assert.Equal(t, []Event{{Type: EventPiecePlaced, Piece: X, Row: 0, Column: 2}}, recorder.Events())
	})
}

func TestBoard_Reset(t *testing.T) {
	t.Run("Clears and reseeds", func(t *testing.T) {
		// Given: a finished game
		board, err := ParseBoard(3, "XX    OO ", nil)
		require.NoError(t, err)
		_, err = board.Place(X, 0, 2, true)
		require.NoError(t, err)
		board.SetCurrentPlayer(O)

		// When: the board is reset with a new seed
		err = board.Reset("    X    ")

		// Then: only the seed remains and the game restarts with X
		require.NoError(t, err)
		assert.Equal(t, "    X    ", board.Serialize())
		assert.Equal(t, 1, board.Population())
		assert.Equal(t, X, board.CurrentPlayer())
		assert.False(t, board.IsOver())
	})

	t.Run("Malformed seed leaves the board untouched", func(t *testing.T) {
		// Given: a board with two pieces
		board, err := ParseBoard(3, "X   O    ", nil)
		require.NoError(t, err)

		// When: a seed of the wrong length is applied
		err = board.Reset("XO")

		// Then: the call fails and the board is as before
		require.ErrorIs(t, err, apperror.ErrMalformedSerialization)
		assert.Equal(t, "X   O    ", board.Serialize())
		assert.Equal(t, 2, board.Population())
	})
}

func TestBoard_Serialization(t *testing.T) {
	t.Run("Round trip of random boards", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))

		for _, dimension := range []int{3, 4} {
			for i := 0; i < 200; i++ {
				// Given: a random serialized board
				var sb strings.Builder
				population := 0

				for j := 0; j < dimension*dimension; j++ {
					switch r.Intn(3) {
					case 1:
						sb.WriteByte('X')
						population++
					case 2:
						sb.WriteByte('O')
						population++
					default:
						sb.WriteByte(' ')
					}
				}

				input := sb.String()

				// When: it is deserialized and serialized again
				board, err := ParseBoard(dimension, input, nil)
				require.NoError(t, err)

				// Then: the output equals the input
				assert.Equal(t, input, board.Serialize())
				assert.Equal(t, population, board.Population())

				again, err := ParseBoard(dimension, board.Serialize(), nil)
				require.NoError(t, err)
				assert.Equal(t, board.Cells(), again.Cells())
			}
		}
	})

	t.Run("Unknown characters are empty", func(t *testing.T) {
		// When: a board uses dots and lowercase letters
		board, err := ParseBoard(3, "X.o-O_x? ", nil)

		// Then: only X and O are pieces
		require.NoError(t, err)
		assert.Equal(t, "X   O    ", board.Serialize())
		assert.Equal(t, 2, board.Population())
	})
}
