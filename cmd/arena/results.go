package main

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

const (
	gameResultDraw = iota
	gameResultAWins
	gameResultBWins
)

func showResults(ctx context.Context, cfg Config, gameResults <-chan gameResult) error {
	games := 0
	var wins, losses, draws int
	reasons := map[string]int{}

	for gameResult := range gameResults {
		games++
		outcome := scoreForA(gameResult)
		switch outcome {
		case gameResultAWins:
			wins++
		case gameResultBWins:
			losses++
		default:
			draws++
		}
		reasons[gameResult.match.Reason]++

		log.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Ints("opening", gameResult.gameInfo.opening).
			Str("player1", gameResult.match.Names[0]).
			Str("player2", gameResult.match.Names[1]).
			Str("result", gameResultString(outcome)).
			Str("reason", gameResult.match.Reason).
			Int("moves", len(gameResult.match.Moves)).
			Msg("game finished")

		stat := computeStat(wins, losses, draws)
		event := log.Info().
			Str("a", cfg.EngineA).
			Str("b", cfg.EngineB).
			Int("wins", wins).
			Int("losses", losses).
			Int("draws", draws).
			Float64("score", stat.winningFraction).
			Float64("los", stat.los*100).
			Int("games", games)
		if elo, ok := stat.elo(); ok {
			event = event.Float64("elo_diff", elo)
		}
		event.Msg("score")
	}

	for reason, n := range reasons {
		log.Info().Str("reason", reason).Int("games", n).Msg("endings")
	}
	return ctx.Err()
}

func scoreForA(r gameResult) int {
	winner := r.match.Winner
	if winner == domain.Empty {
		return gameResultDraw
	}
	aWon := (winner == domain.Player1) == r.gameInfo.engineAFirst
	if aWon {
		return gameResultAWins
	}
	return gameResultBWins
}

type GameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

// elo returns the Elo difference unless a clean sweep made it infinite.
func (s GameStatistics) elo() (float64, bool) {
	if math.IsInf(s.eloDifference, 0) || math.IsNaN(s.eloDifference) {
		return 0, false
	}
	return s.eloDifference, true
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	games := wins + losses + draws
	if games == 0 {
		return GameStatistics{winningFraction: 0.5, los: 0.5}
	}
	winningFraction := (float64(wins) + 0.5*float64(draws)) / float64(games)
	eloDifference := -math.Log(1/winningFraction-1) * 400 / math.Ln10
	los := 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}

func gameResultString(v int) string {
	switch v {
	case gameResultAWins:
		return "1-0"
	case gameResultBWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}
