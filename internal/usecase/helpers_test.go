package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
	"github.com/rocketscienceinc/connectfour-relay/internal/repository"
)

// sentEvent is one event captured by fakeTransport together with who received it.
type sentEvent struct {
	Room       string
	Action     string
	Payload    any
	Recipients []string
}

type fakeTransport struct {
	events []sentEvent
	rooms  map[string]map[string]bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{rooms: make(map[string]map[string]bool)}
}

func (that *fakeTransport) Emit(connectionID, action string, payload any) {
	that.events = append(that.events, sentEvent{Action: action, Payload: payload, Recipients: []string{connectionID}})
}

func (that *fakeTransport) Broadcast(room, action string, payload any) {
	recipients := make([]string, 0, len(that.rooms[room]))
	for id := range that.rooms[room] {
		recipients = append(recipients, id)
	}
	sort.Strings(recipients)

	that.events = append(that.events, sentEvent{Room: room, Action: action, Payload: payload, Recipients: recipients})
}

func (that *fakeTransport) Join(connectionID, room string) {
	if that.rooms[room] == nil {
		that.rooms[room] = make(map[string]bool)
	}
	that.rooms[room][connectionID] = true
}

func (that *fakeTransport) Leave(connectionID, room string) {
	delete(that.rooms[room], connectionID)
}

// drop mimics the hub removing a closed connection from all of its rooms.
func (that *fakeTransport) drop(connectionID string) {
	for _, members := range that.rooms {
		delete(members, connectionID)
	}
}

func (that *fakeTransport) received(connectionID string) []sentEvent {
	var result []sentEvent
	for _, event := range that.events {
		for _, id := range event.Recipients {
			if id == connectionID {
				result = append(result, event)
			}
		}
	}
	return result
}

func (that *fakeTransport) actions(connectionID string) []string {
	var result []string
	for _, event := range that.received(connectionID) {
		result = append(result, event.Action)
	}
	return result
}

func (that *fakeTransport) last(connectionID string) sentEvent {
	events := that.received(connectionID)
	if len(events) == 0 {
		return sentEvent{}
	}
	return events[len(events)-1]
}

func (that *fakeTransport) count(action string) int {
	n := 0
	for _, event := range that.events {
		if event.Action == action {
			n++
		}
	}
	return n
}

func (that *fakeTransport) reset() {
	that.events = nil
}

type fakeIDs struct {
	sessions int
	games    []string
}

func (that *fakeIDs) NewSessionID() string {
	that.sessions++
	return fmt.Sprintf("session-%d", that.sessions)
}

func (that *fakeIDs) NewGameID() string {
	if len(that.games) == 0 {
		return "game0000"
	}
	id := that.games[0]
	that.games = that.games[1:]
	return id
}

type testEnv struct {
	ctx       context.Context
	manager   *GameManager
	transport *fakeTransport
	ids       *fakeIDs
	sessions  repository.SessionRepository
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()

	transport := newFakeTransport()
	ids := &fakeIDs{}
	sessions := repository.NewMemorySessionRepository()

	return &testEnv{
		ctx:       context.Background(),
		manager:   NewGameManager(zaptest.NewLogger(t), transport, ids, sessions),
		transport: transport,
		ids:       ids,
		sessions:  sessions,
	}
}

func (that *testEnv) handle(t testing.TB, connectionID string, cmd protocol.Command) {
	t.Helper()
	require.NoError(t, that.manager.Handle(that.ctx, connectionID, cmd))
}

// createGame has conn host a game called gameID.
func (that *testEnv) createGame(t testing.TB, connectionID, name, gameID string) {
	t.Helper()
	that.ids.games = append(that.ids.games, gameID)
	that.handle(t, connectionID, protocol.CreateGame{PlayerName: name})
	require.Equal(t, protocol.EventGameCreated, that.transport.last(connectionID).Action)
}

// startGame creates and joins a game and completes the rendezvous with the given starter.
func (that *testEnv) startGame(t testing.TB, starter int) {
	t.Helper()
	that.manager.pickStarter = func() int { return starter }

	that.createGame(t, "host", "Alice", "G")
	that.handle(t, "guest", protocol.JoinGame{GameID: "G", PlayerName: "Bob"})
	that.handle(t, "host", protocol.PrepareGameAck{GameID: "G"})
	that.handle(t, "guest", protocol.PrepareGameAck{GameID: "G"})
	require.Equal(t, 1, that.transport.count(protocol.EventGameStarted))
}
