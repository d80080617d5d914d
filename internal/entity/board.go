package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MinDimension     = 3
	MaxDimension     = 4
	DefaultDimension = 3
)

// Board is a square grid stored row-major: index = row*dimension + column.
//
// The search engine mutates one Board in place and undoes each placement before returning,
// so a Board must not be shared between concurrent searches.
type Board struct {
	dimension  int
	area       int
	cells      []Square
	lines      []line
	population int

	currentPlayer Square
	isOver        bool

	notifier Notifier
}

// ValidateDimension reports whether a board of the given size is supported.
func ValidateDimension(dimension int) error {
	if dimension < MinDimension || dimension > MaxDimension {
		return fmt.Errorf("%w: %d is not in [%d..%d]", apperror.ErrInvalidDimension, dimension, MinDimension, MaxDimension)
	}

	return nil
}

// NewBoard creates an empty board with X to move. A nil notifier discards notifications.
func NewBoard(dimension int, notifier Notifier) (*Board, error) {
	if err := ValidateDimension(dimension); err != nil {
		return nil, err
	}

	if notifier == nil {
		notifier = NopNotifier
	}

	area := dimension * dimension

	return &Board{
		dimension:     dimension,
		area:          area,
		cells:         make([]Square, area),
		lines:         buildLines(dimension),
		currentPlayer: X,
		notifier:      notifier,
	}, nil
}

// ParseBoard creates a board pre-seeded from its serialized form.
func ParseBoard(dimension int, contents string, notifier Notifier) (*Board, error) {
	board, err := NewBoard(dimension, notifier)
	if err != nil {
		return nil, err
	}

	if err = board.Deserialize(contents); err != nil {
		return nil, err
	}

	return board, nil
}

// Reset clears the board for a new game. A non-empty contents string is applied as a seed and
// must have exactly Area characters; on a length mismatch the board is left untouched.
func (that *Board) Reset(contents string) error {
	if contents != "" && len(contents) != that.area {
		return fmt.Errorf("%w: length is %d instead of the expected %d",
			apperror.ErrMalformedSerialization, len(contents), that.area)
	}

	clear(that.cells)
	that.population = 0

	for index := 0; index < len(contents); index++ {
		square := squareFromChar(contents[index])
		if square == Empty {
			continue
		}

		if _, err := that.Place(square, index/that.dimension, index%that.dimension, false); err != nil {
			return fmt.Errorf("failed to seed board: %w", err)
		}
	}

	that.currentPlayer = X
	that.isOver = false

	return nil
}

// Place writes player into (row, column) and reports whether that completes a line for player.
// Placing Empty erases a piece and is only allowed speculatively. Only displayed moves notify
// the host and update IsOver.
func (that *Board) Place(player Square, row, column int, displayed bool) (bool, error) {
	if row < 0 || row >= that.dimension {
		return false, fmt.Errorf("%w: row %d", apperror.ErrOutOfRange, row)
	}

	if column < 0 || column >= that.dimension {
		return false, fmt.Errorf("%w: column %d", apperror.ErrOutOfRange, column)
	}

	index := row*that.dimension + column
	current := that.cells[index]

	switch player {
	case X, O:
		if current != Empty {
			return false, fmt.Errorf("%w: overwrite at (%d, %d)", apperror.ErrIllegalMove, row, column)
		}
	case Empty:
		if current == Empty {
			return false, fmt.Errorf("%w: double-erase at (%d, %d)", apperror.ErrIllegalMove, row, column)
		}

		if displayed {
			return false, fmt.Errorf("%w: erase-display at (%d, %d)", apperror.ErrIllegalMove, row, column)
		}
	default:
		return false, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, player)
	}

	that.cells[index] = player

	if player == Empty {
		that.population--
	} else {
		that.population++
	}

	victory := player != Empty && that.IsWinningLine(player, row, column)

	if displayed {
		that.notifier.PlacePiece(player, row, column)
		that.isOver = victory
	}

	return victory, nil
}

// Serialize returns Area characters, row-major, using 'X', 'O' and ' '.
func (that *Board) Serialize() string {
	var sb strings.Builder
	sb.Grow(that.area)

	for _, square := range that.cells {
		sb.WriteByte(square.char())
	}

	return sb.String()
}

// Deserialize replaces the contents with a serialized board. Characters other than 'X' and 'O'
// are read as empty squares.
func (that *Board) Deserialize(contents string) error {
	if len(contents) != that.area {
		return fmt.Errorf("%w: length is %d instead of the expected %d",
			apperror.ErrMalformedSerialization, len(contents), that.area)
	}

	return that.Reset(contents)
}

func (that *Board) Dimension() int {
	return that.dimension
}

func (that *Board) Area() int {
	return that.area
}

func (that *Board) Population() int {
	return that.population
}

func (that *Board) IsFull() bool {
	return that.population == that.area
}

func (that *Board) IsOver() bool {
	return that.isOver
}

func (that *Board) CurrentPlayer() Square {
	return that.currentPlayer
}

func (that *Board) SetCurrentPlayer(player Square) {
	that.currentPlayer = player
}

// At returns the content of (row, column).
func (that *Board) At(row, column int) (Square, error) {
	if row < 0 || row >= that.dimension || column < 0 || column >= that.dimension {
		return Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, column)
	}

	return that.cells[row*that.dimension+column], nil
}

// Cells returns a copy of the grid.
func (that *Board) Cells() []Square {
	cells := make([]Square, that.area)
	copy(cells, that.cells)

	return cells
}

// Notifier returns the host notifier the board reports displayed moves to.
func (that *Board) Notifier() Notifier {
	return that.notifier
}

// AtIndex returns the content of a linear, row-major index. It panics outside [0, Area).
func (that *Board) AtIndex(index int) Square {
	return that.cells[index]
}
