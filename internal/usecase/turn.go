package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

// MovePlayed relays a move from the player whose turn it is and passes the turn on.
// Moves from the other player are dropped without telling anyone. The column is not checked here.
func (that *GameManager) MovePlayed(_ context.Context, connectionID string, cmd protocol.MovePlayed) error {
	log := that.logger.With(
		zap.String("method", "MovePlayed"),
		zap.String("connectionID", connectionID),
		zap.String("gameID", cmd.GameID),
	)

	game, ok := that.games.Get(cmd.GameID)
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrGameNotFound, cmd.GameID)
	}

	playedBy := game.PlayerNumber(connectionID)
	if playedBy == entity.NoPlayer {
		log.Info("player not found in game")
		return nil
	}

	if game.CurrentPlayer != playedBy {
		log.Info("not your turn", zap.Int("player", playedBy), zap.Int("currentPlayer", game.CurrentPlayer))
		return nil
	}

	nextPlayer := game.AdvanceTurn()

	that.transport.Broadcast(game.ID, protocol.EventOpponentPlayed, protocol.OpponentPlayed{
		ColumnIndex: cmd.ColumnIndex,
		PlayedBy:    playedBy,
		NextPlayer:  nextPlayer,
	})

	return nil
}
