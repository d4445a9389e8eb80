package websocket

import (
	"net/http"
	"slices"

	gws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const anyOrigin = "*"

type connectionIDGenerator interface {
	NewConnectionID() string
}

type Options struct {
	// AllowedOrigins lists the browser origins allowed to open a connection. "*" allows any.
	AllowedOrigins []string
	SendBuffer     int
	MaxMessageSize int64
}

// Server upgrades HTTP requests and attaches the resulting connections to the hub.
type Server struct {
	logger   *zap.Logger
	hub      *Hub
	ids      connectionIDGenerator
	options  Options
	upgrader gws.Upgrader
}

func NewServer(logger *zap.Logger, hub *Hub, ids connectionIDGenerator, options Options) *Server {
	server := &Server{
		logger:  logger.With(zap.String("component", "websocket")),
		hub:     hub,
		ids:     ids,
		options: options,
	}

	server.upgrader = gws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	return server
}

// checkOrigin accepts requests without an Origin header, those are not sent by browsers.
func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return slices.Contains(that.options.AllowedOrigins, anyOrigin) || slices.Contains(that.options.AllowedOrigins, origin)
}

// ServeHTTP - upgrades the connection to WebSocket.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With(zap.String("method", "ServeHTTP"))

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", zap.String("origin", req.Header.Get("Origin")), zap.Error(err))
		return
	}

	client := newClient(that.ids.NewConnectionID(), conn, that.hub, that.logger, that.options.SendBuffer)

	if !that.hub.attach(client) {
		_ = conn.Close()
		return
	}

	log.Info("WebSocket connection established", zap.String("connectionID", client.id))

	go client.writePump()
	go client.readPump(that.options.MaxMessageSize)
}
