package domain

var BotNames = map[string]string{
	"minimax": "Minnie",
	"greedy":  "Greedy",
	"random":  "Rando",
}

func GetBotName(strategy string) string {
	if name, ok := BotNames[strategy]; ok {
		return name
	}
	return "BOT"
}

// PlayerID identifies the occupant of a cell. Sides are exactly 1 and 2 so
// the opponent of p is always 3-p.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other side. Only meaningful for Player1 and Player2.
func (p PlayerID) Opponent() PlayerID {
	return 3 - p
}

func (p PlayerID) IsValid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove    Error = "invalid move"
	ErrColumnFull     Error = "column is full"
	ErrBoardFull      Error = "board is full"
	ErrInvalidPlayer  Error = "invalid player id"
	ErrNotYourTurn    Error = "not your turn"
	ErrGameFinished   Error = "game is already finished"
	ErrUnmoveMismatch Error = "unmove does not match the top disc of the column"
	ErrInvalidGrid    Error = "invalid board grid"
	ErrBoardSize      Error = "board dimensions must be at least 1x1"
)
