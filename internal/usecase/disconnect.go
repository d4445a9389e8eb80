package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

// Disconnect tears down every game the connection was seated in.
// The transport has already removed the connection from its rooms.
func (that *GameManager) Disconnect(ctx context.Context, connectionID string) error {
	log := that.logger.With(zap.String("method", "Disconnect"), zap.String("connectionID", connectionID))

	for _, game := range that.games.FindByConnection(connectionID) {
		number := game.PlayerNumber(connectionID)

		if number == entity.HostPlayer {
			that.transport.Broadcast(game.ID, protocol.EventHostLeft, nil)
		} else {
			that.transport.Emit(game.Host().ConnectionID, protocol.EventPlayerLeft, protocol.PlayerLeft{
				PlayerName: game.Players[number-1].Name,
			})
		}

		that.games.Delete(game.ID)

		for _, player := range game.Players {
			if player.ConnectionID != connectionID {
				that.transport.Leave(player.ConnectionID, game.ID)
			}
		}

		log.Info("game closed", zap.String("gameID", game.ID), zap.Int("leaver", number))
	}

	if err := that.sessions.Forget(ctx, connectionID); err != nil {
		return fmt.Errorf("failed to forget session: %w", err)
	}

	return nil
}
