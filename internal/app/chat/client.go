package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"papochat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// the page never sends data frames, so anything beyond a close frame is oversized.
	maxMessageSize = 512

	sendBufferSize = 64

	// bound on the session lookup done on every ping tick.
	sessionCheckTimeout = 5 * time.Second
)

// SessionCheck reports whether the session a client was opened with is still logged in.
type SessionCheck func(ctx context.Context, sessionID string) bool

// Client is a chat page connected over websocket. It only receives events;
// posting still goes through the chat form.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// username and id of the logged-in session that opened the page.
	username  string
	sessionID string

	// active is consulted on every ping tick; the connection is closed once it reports false.
	active     SessionCheck
	pingPeriod time.Duration

	// send queues encoded events. The hub closes it to end the write pump.
	send chan []byte

	logger zerolog.Logger
}

// NewClient constructs a Client for a connection upgraded on behalf of the session
// sessionID. active may be nil, in which case the session is never re-checked.
func NewClient(hub *Hub, conn *websocket.Conn, username, sessionID string, active SessionCheck) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		username:   username,
		sessionID:  sessionID,
		active:     active,
		pingPeriod: pingPeriod,
		send:       make(chan []byte, sendBufferSize),
		logger:     logx.Component("chat.client").With().Str("username", username).Logger(),
	}
}

// ReadPump consumes control frames and keeps the read deadline alive through pongs.
// It returns when the connection fails or the browser closes it, unregistering the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Unexpected websocket close")
			}
			return
		}
	}
}

// WritePump writes queued events and periodic pings until the send channel is closed,
// a write fails or the session is no longer active.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if !c.sessionActive() {
				c.logger.Info().Msg("Session ended, closing chat connection.")
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session ended"))
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

func (c *Client) sessionActive() bool {
	if c.active == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionCheckTimeout)
	defer cancel()
	return c.active(ctx, c.sessionID)
}
