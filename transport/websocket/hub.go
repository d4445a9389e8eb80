package websocket

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

// Handler is the game logic driven by the hub. Calls never overlap.
type Handler interface {
	Handle(ctx context.Context, connectionID string, cmd protocol.Command) error
	Disconnect(ctx context.Context, connectionID string) error
}

type inbound struct {
	client *Client
	cmd    protocol.Command
}

// Hub owns every live connection and room. Only the goroutine running Run touches
// clients and rooms, so Emit, Broadcast, Join and Leave must be called from Handler methods.
type Hub struct {
	logger *zap.Logger

	clients map[string]*Client
	rooms   map[string]map[string]*Client

	register   chan *Client
	unregister chan *Client
	incoming   chan inbound

	// overflowed holds clients whose send buffer filled up. They are disconnected
	// once the handler call that overflowed them returns.
	overflowed map[string]*Client

	// done is closed when Run returns, it releases pumps blocked on the channels above.
	done chan struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger.With(zap.String("component", "hub")),

		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan inbound),

		overflowed: make(map[string]*Client),

		done: make(chan struct{}),
	}
}

// Run serializes connects, commands and disconnects into handler until ctx is canceled.
func (that *Hub) Run(ctx context.Context, handler Handler) {
	log := that.logger.With(zap.String("method", "Run"))

	defer func() {
		close(that.done)
		for id, client := range that.clients {
			delete(that.clients, id)
			close(client.send)
		}
		log.Info("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-that.register:
			that.clients[client.id] = client
			log.Debug("client registered", zap.String("connectionID", client.id))

		case client := <-that.unregister:
			if _, ok := that.clients[client.id]; !ok {
				continue
			}

			that.disconnect(ctx, handler, client)
			that.dropOverflowed(ctx, handler)

			log.Debug("client unregistered", zap.String("connectionID", client.id))

		case message := <-that.incoming:
			if _, ok := that.clients[message.client.id]; !ok {
				continue
			}

			err := handler.Handle(ctx, message.client.id, message.cmd)
			if err != nil {
				that.logHandlerError(message, err)
			}

			that.dropOverflowed(ctx, handler)
		}
	}
}

func (that *Hub) logHandlerError(message inbound, err error) {
	fields := []zap.Field{
		zap.String("connectionID", message.client.id),
		zap.String("action", message.cmd.Action()),
		zap.Error(err),
	}

	if errors.Is(err, apperror.ErrPlayerNotInGame) {
		that.logger.Warn("command from a connection outside the game", fields...)
		return
	}

	that.logger.Error("failed to handle command", fields...)
}

// disconnect drops the client and lets handler tear down its games.
func (that *Hub) disconnect(ctx context.Context, handler Handler, client *Client) {
	if _, ok := that.clients[client.id]; !ok {
		return
	}

	that.drop(client)

	if err := handler.Disconnect(ctx, client.id); err != nil {
		that.logger.Error("failed to handle disconnect", zap.String("connectionID", client.id), zap.Error(err))
	}
}

// dropOverflowed disconnects every client that missed an event. Teardown events may
// overflow further clients, so it runs until none is left.
func (that *Hub) dropOverflowed(ctx context.Context, handler Handler) {
	for len(that.overflowed) > 0 {
		for id, client := range that.overflowed {
			delete(that.overflowed, id)
			that.logger.Warn("send buffer full, disconnecting client", zap.String("connectionID", id))
			that.disconnect(ctx, handler, client)
		}
	}
}

// deliver queues data for the client, or marks it for disconnection when its buffer is full.
func (that *Hub) deliver(client *Client, data []byte) {
	if _, ok := that.overflowed[client.id]; ok {
		return
	}

	if !client.enqueue(data) {
		that.overflowed[client.id] = client
	}
}

// drop removes the client from the hub and all of its rooms, then stops its write pump,
// which closes the connection.
func (that *Hub) drop(client *Client) {
	for room := range client.rooms {
		that.removeFromRoom(client, room)
	}

	delete(that.clients, client.id)
	delete(that.overflowed, client.id)
	close(client.send)
}

// Emit sends one event to one connection. Unknown connections are ignored.
func (that *Hub) Emit(connectionID, action string, payload any) {
	client, ok := that.clients[connectionID]
	if !ok {
		that.logger.Debug("emit to unknown connection", zap.String("connectionID", connectionID), zap.String("action", action))
		return
	}

	data, err := protocol.Encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode event", zap.String("action", action), zap.Error(err))
		return
	}

	that.deliver(client, data)
}

// Broadcast sends one event to every member of room.
func (that *Hub) Broadcast(room, action string, payload any) {
	members := that.rooms[room]
	if len(members) == 0 {
		return
	}

	data, err := protocol.Encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode event", zap.String("action", action), zap.Error(err))
		return
	}

	for _, client := range members {
		that.deliver(client, data)
	}
}

func (that *Hub) Join(connectionID, room string) {
	client, ok := that.clients[connectionID]
	if !ok {
		return
	}

	if that.rooms[room] == nil {
		that.rooms[room] = make(map[string]*Client)
	}

	that.rooms[room][connectionID] = client
	client.rooms[room] = struct{}{}
}

func (that *Hub) Leave(connectionID, room string) {
	client, ok := that.clients[connectionID]
	if !ok {
		return
	}

	that.removeFromRoom(client, room)
}

func (that *Hub) removeFromRoom(client *Client, room string) {
	delete(client.rooms, room)

	members := that.rooms[room]
	delete(members, client.id)

	if len(members) == 0 {
		delete(that.rooms, room)
	}
}

// submit hands a decoded command to the hub. It reports false once the hub stopped.
func (that *Hub) submit(client *Client, cmd protocol.Command) bool {
	select {
	case that.incoming <- inbound{client: client, cmd: cmd}:
		return true
	case <-that.done:
		return false
	}
}

func (that *Hub) attach(client *Client) bool {
	select {
	case that.register <- client:
		return true
	case <-that.done:
		return false
	}
}

func (that *Hub) detach(client *Client) {
	select {
	case that.unregister <- client:
	case <-that.done:
	}
}
