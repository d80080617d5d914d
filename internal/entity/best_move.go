package entity

const (
	VictoryValue = 100
	DefeatValue  = -VictoryValue
)

// BestMove is the outcome of one top-level search.
type BestMove struct {
	Score  int `json:"score"`
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NoMove is reported by a cancelled search and must not be applied.
var NoMove = BestMove{Row: -1, Column: -1}

func (that BestMove) IsMove() bool {
	return that.Row >= 0 && that.Column >= 0
}

// Index returns the linear, row-major cell index used on the wire.
func (that BestMove) Index(dimension int) int {
	if !that.IsMove() {
		return -1
	}

	return that.Row*dimension + that.Column
}

// BestMoveRequest is the remote-delegation request body.
type BestMoveRequest struct {
	BoardDimension int    `json:"boardDimension"`
	Board          string `json:"board"`
	PlayerIsX      bool   `json:"playerIsX"`
	Ply            int    `json:"ply"`
}

func (that BestMoveRequest) Mover() Square {
	if that.PlayerIsX {
		return X
	}

	return O
}

type BestMoveResponse struct {
	Index int `json:"index"`
}
