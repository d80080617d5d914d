package entity

// line is a row, column or diagonal described as a walk of dimension cells from start by stride.
type line struct {
	start  int
	stride int
}

// buildLines lists rows, then columns, then the primary and secondary diagonals.
func buildLines(dimension int) []line {
	lines := make([]line, 0, 2*dimension+2)

	for row := 0; row < dimension; row++ {
		lines = append(lines, line{start: row * dimension, stride: 1})
	}

	for column := 0; column < dimension; column++ {
		lines = append(lines, line{start: column, stride: dimension})
	}

	lines = append(lines,
		line{start: 0, stride: dimension + 1},
		line{start: dimension - 1, stride: dimension - 1},
	)

	return lines
}

// IsWinningLine reports whether player owns a whole line through (row, column).
// Only lines through that cell are checked, so the answer is only meaningful right after
// a piece was placed there; it is not a general "is the board won" query.
func (that *Board) IsWinningLine(player Square, row, column int) bool {
	n := that.dimension

	if that.isFilledBy(line{start: row * n, stride: 1}, player) {
		return true
	}

	if that.isFilledBy(line{start: column, stride: n}, player) {
		return true
	}

	if row == column && that.isFilledBy(line{start: 0, stride: n + 1}, player) {
		return true
	}

	return row+column == n-1 && that.isFilledBy(line{start: n - 1, stride: n - 1}, player)
}

// CountOpenLines returns how many lines hold no piece of blocking, i.e. how many lines the
// opponent of blocking could still complete.
func (that *Board) CountOpenLines(blocking Square) int {
	open := len(that.lines)

	for _, l := range that.lines {
		if that.contains(l, blocking) {
			open--
		}
	}

	return open
}

func (that *Board) isFilledBy(l line, player Square) bool {
	for i, index := 0, l.start; i < that.dimension; i, index = i+1, index+l.stride {
		if that.cells[index] != player {
			return false
		}
	}

	return true
}

func (that *Board) contains(l line, player Square) bool {
	for i, index := 0, l.start; i < that.dimension; i, index = i+1, index+l.stride {
		if that.cells[index] == player {
			return true
		}
	}

	return false
}
