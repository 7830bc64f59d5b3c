package domain

// AnalyzeRequest is the body of POST /api/move and the "analyze" message on
// the WebSocket. Board rows are listed top row first.
type AnalyzeRequest struct {
	Type       string  `json:"type,omitempty"`
	Board      [][]int `json:"board"`
	Player     int     `json:"player"`
	Strategy   string  `json:"strategy,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
	TimeMs     int     `json:"timeMs,omitempty"`
	LastColumn *int    `json:"lastColumn,omitempty"`
}

type DepthSummary struct {
	Depth     int   `json:"depth"`
	Column    int   `json:"column"`
	Scores    []int `json:"scores"`
	Nodes     int64 `json:"nodes"`
	ElapsedMs int64 `json:"elapsedMs"`
	Complete  bool  `json:"complete"`
	Committed bool  `json:"committed"`
}

type MoveResponse struct {
	RequestID string         `json:"requestId"`
	Strategy  string         `json:"strategy"`
	Column    int            `json:"column"`
	Depth     int            `json:"depth"`
	Nodes     int64          `json:"nodes"`
	ElapsedMs int64          `json:"elapsedMs"`
	Cached    bool           `json:"cached"`
	Depths    []DepthSummary `json:"depths,omitempty"`
}

// ServerMessage is what the analysis stream writes: one "depth" message per
// finished depth, then a "result" or an "error".
type ServerMessage struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	Depth   *DepthSummary `json:"depth,omitempty"`
	Result  *MoveResponse `json:"result,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
