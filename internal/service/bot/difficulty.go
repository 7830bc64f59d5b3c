package bot

const (
	StrategyMinimax = "minimax"
	StrategyGreedy  = "greedy"
	StrategyRandom  = "random"
)

type BotDifficulty string

const (
	DifficultyEasy   BotDifficulty = "easy"
	DifficultyMedium BotDifficulty = "medium"
	DifficultyHard   BotDifficulty = "hard"
)

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Medium if invalid or empty
func ParseDifficulty(difficulty string) BotDifficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Strategy maps a difficulty onto the registered strategy that plays it.
func (d BotDifficulty) Strategy() string {
	switch d {
	case DifficultyEasy:
		return StrategyRandom
	case DifficultyHard:
		return StrategyMinimax
	default:
		return StrategyGreedy
	}
}
