package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/analysis"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
)

type AnalysisHandler struct {
	Service *analysis.Service
}

func NewAnalysisHandler(svc *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{Service: svc}
}

// Move computes one move for the posted position.
func (h *AnalysisHandler) Move(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	res, err := h.Service.Analyze(c.Request.Context(), analysis.RequestFromMessage(req), nil)
	if err != nil {
		c.JSON(StatusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res.Response())
}

type strategyResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

func (h *AnalysisHandler) Strategies(c *gin.Context) {
	names := h.Service.Strategies()
	strategies := make([]strategyResponse, 0, len(names))
	for _, name := range names {
		strategies = append(strategies, strategyResponse{Name: name, DisplayName: domain.GetBotName(name)})
	}

	c.JSON(http.StatusOK, gin.H{
		"strategies": strategies,
		"difficulties": gin.H{
			string(bot.DifficultyEasy):   bot.DifficultyEasy.Strategy(),
			string(bot.DifficultyMedium): bot.DifficultyMedium.Strategy(),
			string(bot.DifficultyHard):   bot.DifficultyHard.Strategy(),
		},
	})
}

// StatusForError maps analysis failures onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidGrid),
		errors.Is(err, domain.ErrBoardSize),
		errors.Is(err, domain.ErrInvalidPlayer),
		errors.Is(err, bot.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBoardFull):
		return http.StatusConflict
	case errors.Is(err, analysis.ErrNoMove):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
