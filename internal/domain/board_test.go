package domain

import (
	"errors"
	"testing"
)

func TestMoveAndUnmoveRestoreBoard(t *testing.T) {
	b := NewBoard(Rows, Columns)
	before := b.Key()

	row, err := b.Move(3, Player1)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if row != 0 || b.Get(0, 3) != Player1 {
		t.Fatalf("expected disc at (0,3), got row %d cell %d", row, b.Get(0, 3))
	}
	if row, _ = b.Move(3, Player2); row != 1 {
		t.Fatalf("expected second disc on row 1, got %d", row)
	}
	if b.NumEmptyCells() != Rows*Columns-2 {
		t.Fatalf("expected %d empty cells, got %d", Rows*Columns-2, b.NumEmptyCells())
	}

	if err := b.Unmove(3, Player2); err != nil {
		t.Fatalf("unmove: %v", err)
	}
	if err := b.Unmove(3, Player1); err != nil {
		t.Fatalf("unmove: %v", err)
	}
	if b.Key() != before {
		t.Fatalf("board not restored:\n%s", b)
	}
}

func TestMoveRejections(t *testing.T) {
	b := NewBoard(2, 2)

	if _, err := b.Move(0, Empty); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
	if _, err := b.Move(2, Player1); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	b.Move(0, Player1)
	b.Move(0, Player2)
	if b.IsValidMove(0) {
		t.Fatalf("column 0 should be full")
	}
	if _, err := b.Move(0, Player1); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
}

func TestUnmoveMustMatchTopDisc(t *testing.T) {
	b := NewBoard(Rows, Columns)

	if err := b.Unmove(0, Player1); !errors.Is(err, ErrUnmoveMismatch) {
		t.Fatalf("expected mismatch on empty column, got %v", err)
	}
	b.Move(0, Player1)
	if err := b.Unmove(0, Player2); !errors.Is(err, ErrUnmoveMismatch) {
		t.Fatalf("expected mismatch on wrong owner, got %v", err)
	}
	if b.Get(0, 0) != Player1 {
		t.Fatalf("failed unmove must not touch the board")
	}
}

func TestFromGridReadsTopRowFirst(t *testing.T) {
	grid := [][]int{
		{0, 0, 0},
		{2, 0, 0},
		{1, 1, 0},
	}
	b, err := FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	if b.NumRows() != 3 || b.NumCols() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", b.NumRows(), b.NumCols())
	}
	if b.Get(0, 0) != Player1 || b.Get(1, 0) != Player2 || b.Get(0, 1) != Player1 {
		t.Fatalf("unexpected layout:\n%s", b)
	}
	if b.Height(0) != 2 || b.Height(1) != 1 || b.Height(2) != 0 {
		t.Fatalf("unexpected heights %d %d %d", b.Height(0), b.Height(1), b.Height(2))
	}
	if b.NumEmptyCells() != 6 {
		t.Fatalf("expected 6 empty cells, got %d", b.NumEmptyCells())
	}

	back := b.Grid()
	for r := range grid {
		for c := range grid[r] {
			if back[r][c] != grid[r][c] {
				t.Fatalf("Grid() differs at (%d,%d): %d vs %d", r, c, back[r][c], grid[r][c])
			}
		}
	}
}

func TestFromGridRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		want error
	}{
		{"empty", nil, ErrBoardSize},
		{"ragged", [][]int{{0, 0}, {0}}, ErrInvalidGrid},
		{"bad value", [][]int{{0, 0}, {3, 0}}, ErrInvalidGrid},
		{"floating disc", [][]int{{1, 0}, {0, 0}}, ErrInvalidGrid},
	}
	for _, tc := range cases {
		if _, err := FromGrid(tc.grid); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(Rows, Columns)
	b.Move(2, Player1)

	c := b.Clone()
	if !c.Equal(b) {
		t.Fatalf("clone differs from source")
	}
	c.Move(2, Player2)
	if c.Equal(b) || b.Height(2) != 1 {
		t.Fatalf("moving on the clone changed the source")
	}
}

func TestNewBoardPanicsOnEmptySize(t *testing.T) {
	for _, size := range [][2]int{{0, 7}, {6, 0}, {-1, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewBoard(%d, %d) should panic", size[0], size[1])
				}
			}()
			NewBoard(size[0], size[1])
		}()
	}
}
