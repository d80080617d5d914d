package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Square is the content of one board cell. The zero value is an empty cell.
type Square int8

const (
	Empty Square = iota
	X
	O
)

const (
	charX     = 'X'
	charO     = 'O'
	charEmpty = ' '
)

// Opponent returns the other player. Empty has no opponent and maps to itself.
func (that Square) Opponent() Square {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Square) IsPlayer() bool {
	return that == X || that == O
}

func (that Square) char() byte {
	switch that {
	case X:
		return charX
	case O:
		return charO
	default:
		return charEmpty
	}
}

func (that Square) String() string {
	return string(that.char())
}

func (that Square) MarshalText() ([]byte, error) {
	return []byte{that.char()}, nil
}

func (that *Square) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = Empty
		return nil
	}

	square, err := ParseSquare(string(text))
	if err != nil {
		return err
	}

	*that = square

	return nil
}

// ParseSquare accepts "X", "O" and " " (empty). Unlike board deserialization it is strict.
func ParseSquare(value string) (Square, error) {
	switch value {
	case "X":
		return X, nil
	case "O":
		return O, nil
	case " ":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, value)
	}
}

// squareFromChar maps any character other than 'X' and 'O' to Empty.
func squareFromChar(c byte) Square {
	switch c {
	case charX:
		return X
	case charO:
		return O
	default:
		return Empty
	}
}
