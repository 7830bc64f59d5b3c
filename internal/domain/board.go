package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is a gravity-drop grid. Row 0 is the bottom row, so a disc dropped
// into an empty column lands at row 0. Mutation goes through Move and Unmove
// only, and Unmove must always undo the most recent Move in that column.
type Board struct {
	rows    int
	cols    int
	cells   []PlayerID // row-major, row 0 first
	heights []int      // number of discs in each column
	empty   int
}

// NewBoard returns an empty rows x cols board. It panics if either dimension
// is below one; FromGrid is the checked path for untrusted sizes.
func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("domain: %s, got %dx%d", ErrBoardSize, rows, cols))
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]PlayerID, rows*cols),
		heights: make([]int, cols),
		empty:   rows * cols,
	}
}

// FromGrid builds a board from rows listed top row first, the layout the
// frontends send. Every cell must be 0, 1 or 2 and no disc may float above
// an empty cell.
func FromGrid(grid [][]int) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrBoardSize
	}

	rows, cols := len(grid), len(grid[0])
	b := NewBoard(rows, cols)

	for top, line := range grid {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidGrid, top, len(line), cols)
		}
		for c, v := range line {
			p := PlayerID(v)
			if p != Empty && !p.IsValid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidGrid, top, c, v)
			}
			b.cells[(rows-1-top)*cols+c] = p
		}
	}

	for c := 0; c < cols; c++ {
		h := 0
		for h < rows && b.cells[h*cols+c] != Empty {
			h++
		}
		for r := h; r < rows; r++ {
			if b.cells[r*cols+c] != Empty {
				return nil, fmt.Errorf("%w: floating disc in column %d", ErrInvalidGrid, c)
			}
		}
		b.heights[c] = h
		b.empty -= h
	}

	return b, nil
}

func (b *Board) NumRows() int       { return b.rows }
func (b *Board) NumCols() int       { return b.cols }
func (b *Board) NumEmptyCells() int { return b.empty }
func (b *Board) IsFull() bool       { return b.empty == 0 }

// Get returns the occupant of (row, col), or Empty when out of range.
func (b *Board) Get(row, col int) PlayerID {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

func (b *Board) IsValidMove(col int) bool {
	if col < 0 || col >= b.cols {
		return false
	}
	return b.heights[col] < b.rows
}

// Height returns how many discs column col holds.
func (b *Board) Height(col int) int {
	return b.heights[col]
}

// Move drops a disc for player into col and returns the row it landed on.
func (b *Board) Move(col int, player PlayerID) (int, error) {
	if !player.IsValid() {
		return -1, ErrInvalidPlayer
	}
	if col < 0 || col >= b.cols {
		return -1, ErrInvalidMove
	}
	if b.heights[col] >= b.rows {
		return -1, ErrColumnFull
	}

	row := b.heights[col]
	b.cells[row*b.cols+col] = player
	b.heights[col]++
	b.empty--
	return row, nil
}

// Unmove lifts the top disc of col. The disc must belong to player.
func (b *Board) Unmove(col int, player PlayerID) error {
	if col < 0 || col >= b.cols || b.heights[col] == 0 {
		return fmt.Errorf("%w: column %d is empty", ErrUnmoveMismatch, col)
	}

	row := b.heights[col] - 1
	idx := row*b.cols + col
	if b.cells[idx] != player {
		return fmt.Errorf("%w: column %d top is %d, not %d", ErrUnmoveMismatch, col, b.cells[idx], player)
	}

	b.cells[idx] = Empty
	b.heights[col]--
	b.empty++
	return nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	nb := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   make([]PlayerID, len(b.cells)),
		heights: make([]int, len(b.heights)),
		empty:   b.empty,
	}
	copy(nb.cells, b.cells)
	copy(nb.heights, b.heights)
	return nb
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols || b.empty != o.empty {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Grid returns the cells as ints, top row first.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.rows)
	for top := range grid {
		r := b.rows - 1 - top
		grid[top] = make([]int, b.cols)
		for c := 0; c < b.cols; c++ {
			grid[top][c] = int(b.cells[r*b.cols+c])
		}
	}
	return grid
}

// Key is a compact encoding of the position, e.g. "6x7:0000000...".
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + 8)
	sb.WriteString(strconv.Itoa(b.rows))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(b.cols))
	sb.WriteByte(':')
	for _, p := range b.cells {
		sb.WriteByte(byte('0' + p))
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		for c := 0; c < b.cols; c++ {
			switch b.cells[r*b.cols+c] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < b.cols; c++ {
		sb.WriteString(strconv.Itoa(c % 10))
	}
	sb.WriteByte('\n')
	return sb.String()
}
