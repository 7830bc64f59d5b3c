package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client wraps one socket. conn.WriteJSON is not safe for concurrent use, so
// the progress callback, the pinger and the result writer share writeMu.
type Client struct {
	ID   string
	conn *websocket.Conn

	writeMu sync.Mutex
	closed  bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{ID: id, conn: conn}
}

func (c *Client) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *Client) Ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Close sends a close frame once and releases the socket.
func (c *Client) Close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.conn.Close()
}
