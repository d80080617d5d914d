package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

type lineCounter interface {
	CountOpenLines(blocking entity.Square) int
}

// HeuristicValue is the "open lines" score of a position: lines still winnable by player minus
// lines still winnable by opponent. It is bounded by ±(2*dimension+2) and so never reaches the
// win or loss values.
func HeuristicValue(board lineCounter, player, opponent entity.Square) int {
	return board.CountOpenLines(opponent) - board.CountOpenLines(player)
}
