package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

const (
	minNameLength = 3
	maxNameLength = 20

	maxGameIDAttempts = 5
)

// rejections are the outcomes reported back to the player as gameError.
// Anything else is a server fault and goes to the dispatcher instead.
var rejections = []error{
	apperror.ErrGameNotFound,
	apperror.ErrGameFull,
	apperror.ErrNotEnoughPlayer,
	apperror.ErrInvalidUsername,
	apperror.ErrEmptyUsername,
	apperror.ErrUsernameAlreadyUsed,
	apperror.ErrPlayerAlreadyInGame,
}

func isRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// validateName returns the trimmed name or the first rule it breaks.
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperror.ErrEmptyUsername
	}

	if length := utf8.RuneCountInString(trimmed); length < minNameLength || length > maxNameLength {
		return "", apperror.ErrInvalidUsername
	}

	return trimmed, nil
}

// CreateGame opens a waiting game hosted by the connection.
// Validation failures are reported to the caller only, as gameError. Storage failures are returned.
func (that *GameManager) CreateGame(ctx context.Context, connectionID string, cmd protocol.CreateGame) error {
	log := that.logger.With(zap.String("method", "CreateGame"), zap.String("connectionID", connectionID))

	game, err := that.createGame(ctx, connectionID, cmd.PlayerName)
	if err != nil {
		if !isRejection(err) {
			return fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("game creation rejected", zap.Error(err))
		that.sendGameError(connectionID, err)
		return nil
	}

	that.transport.Join(connectionID, game.ID)
	that.transport.Emit(connectionID, protocol.EventGameCreated, protocol.GameCreated{
		GameID:     game.ID,
		PlayerID:   entity.HostPlayer,
		PlayerName: game.Host().Name,
	})

	log.Info("game created", zap.String("gameID", game.ID))

	return nil
}

func (that *GameManager) createGame(ctx context.Context, connectionID, playerName string) (*entity.Game, error) {
	name, err := validateName(playerName)
	if err != nil {
		return nil, err
	}

	sessionID, err := that.sessions.Lookup(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	host := &entity.Player{
		SessionID:    sessionID,
		ConnectionID: connectionID,
		Name:         name,
	}

	for range maxGameIDAttempts {
		game, err := that.games.Create(that.ids.NewGameID(), host)
		if errors.Is(err, apperror.ErrGameAlreadyExists) {
			continue
		}

		return game, err
	}

	return nil, fmt.Errorf("%w after %d attempts", apperror.ErrGameAlreadyExists, maxGameIDAttempts)
}

// JoinGame seats the connection as guest and opens the prepareGame rendezvous.
// gameStarted is only broadcast once both players acknowledged, see AckPrepareGame.
func (that *GameManager) JoinGame(ctx context.Context, connectionID string, cmd protocol.JoinGame) error {
	log := that.logger.With(
		zap.String("method", "JoinGame"),
		zap.String("connectionID", connectionID),
		zap.String("gameID", cmd.GameID),
	)

	game, err := that.joinGame(ctx, connectionID, cmd.GameID, cmd.PlayerName)
	if err != nil {
		if !isRejection(err) {
			return fmt.Errorf("failed to join game %q: %w", cmd.GameID, err)
		}

		log.Info("join rejected", zap.Error(err))
		that.sendGameError(connectionID, err)
		return nil
	}

	that.transport.Join(connectionID, game.ID)

	game.Rendezvous = entity.NewRendezvous(game.ConnectionIDs()...)

	host, guest := game.Host(), game.Guest()
	for i, player := range game.Players {
		opponent := guest
		if player == guest {
			opponent = host
		}

		that.transport.Emit(player.ConnectionID, protocol.EventPrepareGame, protocol.PrepareGame{
			GameID:       game.ID,
			PlayerID:     i + 1,
			PlayerName:   player.Name,
			OpponentName: opponent.Name,
		})
	}

	log.Info("player joined, waiting for both players to get ready")

	return nil
}

func (that *GameManager) joinGame(ctx context.Context, connectionID, gameID, playerName string) (*entity.Game, error) {
	game, ok := that.games.Get(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperror.ErrGameNotFound, gameID)
	}

	if game.IsFull() {
		return nil, apperror.ErrGameFull
	}

	if len(game.Players) < 1 {
		return nil, apperror.ErrNotEnoughPlayer
	}

	name, err := validateName(playerName)
	if err != nil {
		return nil, err
	}

	if game.HasPlayerNamed(name) {
		return nil, apperror.ErrUsernameAlreadyUsed
	}

	if game.PlayerNumber(connectionID) != entity.NoPlayer {
		return nil, apperror.ErrPlayerAlreadyInGame
	}

	sessionID, err := that.sessions.Lookup(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	game.AddPlayer(&entity.Player{
		SessionID:    sessionID,
		ConnectionID: connectionID,
		Name:         name,
	})

	return game, nil
}

// AckPrepareGame records that a player is ready. The last acknowledgement starts the game.
func (that *GameManager) AckPrepareGame(_ context.Context, connectionID string, cmd protocol.PrepareGameAck) error {
	log := that.logger.With(
		zap.String("method", "AckPrepareGame"),
		zap.String("connectionID", connectionID),
		zap.String("gameID", cmd.GameID),
	)

	game, ok := that.games.Get(cmd.GameID)
	if !ok || game.Rendezvous == nil {
		log.Debug("no rendezvous pending for this game")
		return nil
	}

	if !game.Rendezvous.Acknowledge(connectionID) {
		log.Debug("unexpected acknowledgement")
		return nil
	}

	if !game.Rendezvous.Complete() {
		log.Debug("waiting for the other player", zap.Int("pending", game.Rendezvous.Pending()))
		return nil
	}

	participants := game.Rendezvous.Participants()
	game.Rendezvous = nil

	if err := that.revalidateRendezvous(game, participants); err != nil {
		log.Warn("rendezvous abandoned", zap.Error(err))
		return nil
	}

	game.Start(that.pickStarter())

	that.transport.Broadcast(game.ID, protocol.EventGameStarted, protocol.GameStarted{
		StartingPlayer: game.CurrentPlayer,
		Players: map[int]string{
			entity.HostPlayer:  game.Host().Name,
			entity.GuestPlayer: game.Guest().Name,
		},
	})

	log.Info("game started", zap.Int("startingPlayer", game.CurrentPlayer))

	return nil
}

// revalidateRendezvous checks that nothing tore the game down while acknowledgements were in flight.
func (that *GameManager) revalidateRendezvous(game *entity.Game, participants []string) error {
	current, ok := that.games.Get(game.ID)
	if !ok || current != game {
		return fmt.Errorf("%w: %q", apperror.ErrGameNotFound, game.ID)
	}

	if len(game.Players) != entity.MaxPlayers {
		return apperror.ErrNotEnoughPlayer
	}

	for _, connectionID := range participants {
		if game.PlayerNumber(connectionID) == entity.NoPlayer {
			return fmt.Errorf("%w: %s", apperror.ErrPlayerNotInGame, connectionID)
		}
	}

	return nil
}

func (that *GameManager) sendGameError(connectionID string, err error) {
	that.transport.Emit(connectionID, protocol.EventGameError, protocol.GameError{Message: err.Error()})
}
