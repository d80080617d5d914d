package entity

// Notifier is implemented by the host that displays the game. It only hears about displayed moves.
type Notifier interface {
	PlacePiece(piece Square, row, column int)
	DisplayMessage(message string)
}

type nopNotifier struct{}

func (nopNotifier) PlacePiece(Square, int, int) {}

func (nopNotifier) DisplayMessage(string) {}

// NopNotifier discards every notification.
var NopNotifier Notifier = nopNotifier{}
