package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

// transport delivers events to connections and rooms. Rooms are named after game ids.
type transport interface {
	Emit(connectionID, action string, payload any)
	Broadcast(room, action string, payload any)
	Join(connectionID, room string)
	Leave(connectionID, room string)
}

type idGenerator interface {
	NewSessionID() string
	NewGameID() string
}

type sessionRepo interface {
	Bind(ctx context.Context, connectionID, sessionID string) error
	GetByConnection(ctx context.Context, connectionID string) (string, error)
	DeleteByConnection(ctx context.Context, connectionID string) error
}

// GameManager coordinates sessions, games, turns and resets for every connection.
//
// All methods must be called from a single goroutine, the transport hub guarantees it.
type GameManager struct {
	logger    *zap.Logger
	transport transport
	ids       idGenerator

	sessions *SessionRegistry
	games    *Directory

	pickStarter func() int
}

func NewGameManager(logger *zap.Logger, transport transport, ids idGenerator, sessions sessionRepo) *GameManager {
	return &GameManager{
		logger:    logger.With(zap.String("component", "game_manager")),
		transport: transport,
		ids:       ids,

		sessions: NewSessionRegistry(sessions, ids),
		games:    NewDirectory(),

		pickStarter: randomStarter,
	}
}

func randomStarter() int {
	return entity.HostPlayer + rand.IntN(entity.MaxPlayers) //nolint: gosec // fairness, not secrecy
}

// Handle dispatches one inbound command to its handler.
func (that *GameManager) Handle(ctx context.Context, connectionID string, cmd protocol.Command) error {
	switch c := cmd.(type) {
	case protocol.InitSession:
		return that.InitSession(ctx, connectionID, c)
	case protocol.CreateGame:
		return that.CreateGame(ctx, connectionID, c)
	case protocol.JoinGame:
		return that.JoinGame(ctx, connectionID, c)
	case protocol.PrepareGameAck:
		return that.AckPrepareGame(ctx, connectionID, c)
	case protocol.MovePlayed:
		return that.MovePlayed(ctx, connectionID, c)
	case protocol.RequestResetBoard:
		return that.RequestResetBoard(ctx, connectionID, c)
	case protocol.RequestResetScores:
		return that.RequestResetScores(ctx, connectionID, c)
	case protocol.ConfirmResetBoard:
		return that.ConfirmResetBoard(ctx, connectionID, c)
	case protocol.ConfirmResetScores:
		return that.ConfirmResetScores(ctx, connectionID, c)
	case protocol.ResetBoard:
		return that.ResetBoard(ctx, connectionID, c)
	case protocol.ResetScores:
		return that.ResetScores(ctx, connectionID, c)
	case protocol.RejectReset:
		return that.RejectReset(ctx, connectionID, c)
	default:
		return fmt.Errorf("%w: %T", protocol.ErrUnknownAction, cmd)
	}
}

// InitSession binds the client's session id, generating and announcing one when the client has none yet.
func (that *GameManager) InitSession(ctx context.Context, connectionID string, cmd protocol.InitSession) error {
	log := that.logger.With(zap.String("method", "InitSession"), zap.String("connectionID", connectionID))

	sessionID, created, err := that.sessions.Init(ctx, connectionID, cmd.SessionID)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	if created {
		that.transport.Emit(connectionID, protocol.EventSessionCreated, protocol.SessionCreated{SessionID: sessionID})
		log.Info("new session created", zap.String("sessionID", sessionID))
		return nil
	}

	log.Debug("session restored", zap.String("sessionID", sessionID))

	return nil
}
