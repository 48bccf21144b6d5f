// Package transport delivers encoded frames to a remote renderer over a
// websocket and feeds the renderer's key events back into the engine's
// input snapshot. Reconnection is deliberately not attempted here; the
// engine treats a lost connection as the end of the run.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/input"
	"github.com/avoronov/gridframe/internal/wire"
)

const (
	defaultWriteTimeout = 2 * time.Second
	closeGracePeriod    = time.Second
)

// Client is a websocket connection to a remote renderer. It implements
// engine.Renderer: one JSON frame per Render call.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger

	writeTimeout time.Duration

	// websocket connections allow one concurrent writer; Render and Close
	// can race when the engine shuts down.
	mu sync.Mutex
}

// Option tweaks client construction.
type Option func(*Client)

// WithLogger replaces the client's default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithWriteTimeout bounds how long a single frame write may block.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) { c.writeTimeout = d }
}

// Dial connects to a remote renderer at the given websocket URL.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c := &Client{
		conn:         conn,
		logger:       log.NewWithOptions(os.Stderr, log.Options{Prefix: "transport"}),
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Render transmits one encoded frame. Write timeouts come back as transient
// errors (the engine drops the frame and carries on); any other write
// failure means the peer is gone and is classified as connection lost.
func (c *Client) Render(f *wire.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return classify(err)
	}
	if err := c.conn.WriteJSON(f); err != nil {
		return classify(err)
	}
	return nil
}

// Close sends a close frame and tears the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(closeGracePeriod)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil &&
		err != websocket.ErrCloseSent {
		c.logger.Warn("close handshake failed", "error", err)
	}
	return c.conn.Close()
}

// classify maps a write error onto the engine's failure taxonomy.
func classify(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("transport: write timed out: %w", err)
	}
	return fmt.Errorf("transport: %w: %v", engine.ErrConnectionLost, err)
}

// inputMessage is the wire form of one remote key event, e.g.
// {"type":"key","key":"up","down":true}.
type inputMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// ForwardInputs reads key events from the renderer and applies them to the
// snapshot until the connection drops or the context is cancelled. Run it
// on its own goroutine; it releases every key on exit so nothing sticks
// down after a disconnect.
func (c *Client) ForwardInputs(ctx context.Context, snap *input.Snapshot) {
	defer snap.ReleaseAll()

	for {
		if ctx.Err() != nil {
			return
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("input stream closed", "error", err)
			}
			return
		}

		var msg inputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("dropping malformed input event", "error", err)
			continue
		}
		if msg.Type != "key" {
			continue
		}
		key, ok := input.ParseKey(msg.Key)
		if !ok {
			c.logger.Warn("dropping unknown key", "key", msg.Key)
			continue
		}
		snap.Apply(input.Event{Key: key, Down: msg.Down})
	}
}
