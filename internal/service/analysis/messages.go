package analysis

import (
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
)

// RequestFromMessage converts the wire request. An explicit strategy wins
// over a difficulty; with neither the service default applies.
func RequestFromMessage(msg domain.AnalyzeRequest) Request {
	strategy := msg.Strategy
	if strategy == "" && msg.Difficulty != "" {
		strategy = bot.ParseDifficulty(msg.Difficulty).Strategy()
	}

	lastColumn := -1
	if msg.LastColumn != nil {
		lastColumn = *msg.LastColumn
	}

	return Request{
		Board:      msg.Board,
		Player:     domain.PlayerID(msg.Player),
		Strategy:   strategy,
		MoveTime:   time.Duration(msg.TimeMs) * time.Millisecond,
		LastColumn: lastColumn,
	}
}

func SummarizeDepth(r bot.DepthReport) domain.DepthSummary {
	return domain.DepthSummary{
		Depth:     r.Depth,
		Column:    r.Column,
		Scores:    r.Scores,
		Nodes:     r.Nodes,
		ElapsedMs: r.Elapsed.Milliseconds(),
		Complete:  r.Complete,
		Committed: r.Committed,
	}
}

func (r *Result) Response() domain.MoveResponse {
	resp := domain.MoveResponse{
		RequestID: r.RequestID,
		Strategy:  r.Strategy,
		Column:    r.Column,
		Depth:     r.Depth,
		Nodes:     r.Nodes,
		ElapsedMs: r.Elapsed.Milliseconds(),
		Cached:    r.Cached,
	}
	for _, d := range r.Depths {
		resp.Depths = append(resp.Depths, SummarizeDepth(d))
	}
	return resp
}
