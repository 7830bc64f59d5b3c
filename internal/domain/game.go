package domain

type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	LastColumn    int
}

func NewGame(rows, cols int) *Game {
	return &Game{
		Board:         NewBoard(rows, cols),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		LastColumn:    -1,
	}
}

func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	if !g.Board.IsValidMove(column) {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Move(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.LastColumn = column

	if CheckWin(g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
