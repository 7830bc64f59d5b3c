package bot

// SelectBest returns the lowest-index column holding the strictly greatest
// score. Columns scored ScoreInvalid are never returned; ok is false when
// every column is invalid.
func SelectBest(scores []int) (col int, ok bool) {
	best, bestScore := -1, ScoreInvalid
	for c, s := range scores {
		if s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, best >= 0
}

// invalidScores returns a score vector with every column marked unplayable.
func invalidScores(cols int) []int {
	scores := make([]int, cols)
	for c := range scores {
		scores[c] = ScoreInvalid
	}
	return scores
}
