package apperror

import "errors"

// board and search errors.
var (
	ErrInvalidDimension       = errors.New("board dimension is out of range")
	ErrMalformedSerialization = errors.New("malformed board serialization")
	ErrOutOfRange             = errors.New("coordinate is out of range")
	ErrIllegalMove            = errors.New("illegal move")
	ErrInternalConsistency    = errors.New("search internal consistency failure")
	ErrSearchCancelled        = errors.New("search cancelled")
	ErrInvalidPlayer          = errors.New("player must be X or O")
	ErrInvalidPly             = errors.New("ply is out of range")
	ErrNoEmptySquares         = errors.New("board has no empty squares")
)

// game session errors.
var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameNotFound = errors.New("game not found")
)
