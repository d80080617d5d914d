package entity

const (
	EventPiecePlaced = "piece:placed"
	EventMessage     = "message"
)

// Event is one host notification produced while a game advances.
type Event struct {
	Type    string `json:"type"`
	Piece   Square `json:"piece,omitempty"`
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	Message string `json:"message,omitempty"`
}

// Recorder is a Notifier that keeps every notification in order.
type Recorder struct {
	events []Event
}

func (that *Recorder) PlacePiece(piece Square, row, column int) {
	that.events = append(that.events, Event{Type: EventPiecePlaced, Piece: piece, Row: row, Column: column})
}

func (that *Recorder) DisplayMessage(message string) {
	that.events = append(that.events, Event{Type: EventMessage, Row: -1, Column: -1, Message: message})
}

func (that *Recorder) Events() []Event {
	return that.events
}
