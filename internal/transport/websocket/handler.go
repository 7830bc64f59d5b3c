package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/analysis"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/minimax/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxFrameSize = 64 << 10
)

const (
	MessageAnalyze = "analyze"
	MessageDepth   = "depth"
	MessageResult  = "result"
	MessageError   = "error"
)

// Handler streams analyses over a socket: one "depth" frame per finished
// search depth, then a "result" or an "error".
type Handler struct {
	Service  *analysis.Service
	Upgrader websocket.Upgrader
}

func NewHandler(svc *analysis.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		Service: svc,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the request and serves it until the peer leaves.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("upgrade failed")
		return
	}

	client := NewClient(uid.GenerateMatchID(), conn)
	h.serve(context.Background(), client, conn)
}

func (h *Handler) serve(parent context.Context, client *Client, conn *websocket.Conn) {
	logger := log.With().Str("component", "ws").Str("client", client.ID).Logger()
	logger.Info().Msg("connection opened")

	ctx, cancel := context.WithCancel(parent)
	defer func() {
		cancel()
		client.Close()
		logger.Info().Msg("connection closed")
	}()

	conn.SetReadLimit(maxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	// Reading happens off the analysis goroutine so a disconnect cancels the
	// running search through ctx.
	requests := make(chan domain.AnalyzeRequest)
	go func() {
		defer cancel()
		defer close(requests)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Warn().Err(err).Msg("client disconnected unexpectedly")
				}
				return
			}

			var msg domain.AnalyzeRequest
			if err := json.Unmarshal(data, &msg); err != nil {
				client.WriteJSON(domain.ErrorMessage{Type: MessageError, Message: "Invalid message format"})
				continue
			}
			if msg.Type != MessageAnalyze {
				client.WriteJSON(domain.ErrorMessage{Type: MessageError, Message: "Unknown message type: " + msg.Type})
				continue
			}

			select {
			case requests <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for msg := range requests {
		h.analyze(ctx, client, msg, logger)
	}
}

func (h *Handler) analyze(ctx context.Context, client *Client, msg domain.AnalyzeRequest, logger zerolog.Logger) {
	observe := func(report bot.DepthReport) {
		summary := analysis.SummarizeDepth(report)
		if err := client.WriteJSON(domain.ServerMessage{Type: MessageDepth, Depth: &summary}); err != nil {
			logger.Debug().Err(err).Int("depth", report.Depth).Msg("dropping depth report")
		}
	}

	res, err := h.Service.Analyze(ctx, analysis.RequestFromMessage(msg), observe)
	if err != nil {
		logger.Debug().Err(err).Msg("analysis failed")
		client.WriteJSON(domain.ServerMessage{Type: MessageError, Message: err.Error()})
		return
	}

	response := res.Response()
	if err := client.WriteJSON(domain.ServerMessage{Type: MessageResult, Result: &response}); err != nil {
		logger.Warn().Err(err).Msg("failed to send result")
	}
}
