package domain

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// CheckWin reports whether the disc at (row, column) completes a line of
// ToWin for player. Only lines passing through that cell are checked.
func CheckWin(b *Board, row, column int, player PlayerID) bool {
	if b.Get(row, column) != player {
		return false
	}

	for _, dir := range directions {
		count := 1 + CountDiskInDirection(b, row, column, dir[0], dir[1], player) +
			CountDiskInDirection(b, row, column, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}

	return false
}

// HasConnectFour scans the whole board for a completed line of player.
func HasConnectFour(b *Board, player PlayerID) bool {
	for r := 0; r < b.NumRows(); r++ {
		for c := 0; c < b.NumCols(); c++ {
			if CheckWin(b, r, c, player) {
				return true
			}
		}
	}
	return false
}

// this counts the number of disks in a specific direction, excluding the start
func CountDiskInDirection(b *Board, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < b.NumRows() && c >= 0 && c < b.NumCols() && b.Get(r, c) == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
