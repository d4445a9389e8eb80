package websocket

import (
	"time"

	gws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client is one websocket connection as seen by the hub.
type Client struct {
	id     string
	conn   *gws.Conn
	hub    *Hub
	logger *zap.Logger

	send chan []byte

	// rooms is owned by the hub goroutine.
	rooms map[string]struct{}
}

func newClient(id string, conn *gws.Conn, hub *Hub, logger *zap.Logger, sendBuffer int) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		logger: logger.With(zap.String("connectionID", id)),

		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
	}
}

// enqueue never blocks the hub. It reports false when the buffer is full.
func (that *Client) enqueue(data []byte) bool {
	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

// readPump decodes frames and hands them to the hub until the connection fails.
func (that *Client) readPump(maxMessageSize int64) {
	log := that.logger.With(zap.String("method", "readPump"))

	defer func() {
		that.hub.detach(that)
		_ = that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseGoingAway, gws.CloseNormalClosure, gws.CloseNoStatusReceived) {
				log.Warn("connection closed unexpectedly", zap.Error(err))
			}
			return
		}

		cmd, err := protocol.Decode(data)
		if err != nil {
			log.Warn("dropping message", zap.Error(err))
			continue
		}

		if !that.hub.submit(that, cmd) {
			return
		}
	}
}

// writePump drains send into the connection and keeps it alive with pings.
func (that *Client) writePump() {
	log := that.logger.With(zap.String("method", "writePump"))

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(gws.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(gws.TextMessage, data); err != nil {
				log.Warn("failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(gws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
