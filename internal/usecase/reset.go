package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/protocol"
)

// Resets come in two flavours that coexist: a negotiated one (request, then confirm or reject
// by the opponent) and an unconditional one any participant may fire. Neither is guarded
// against a move in flight, and a confirm is honoured even without a prior request.

func (that *GameManager) RequestResetBoard(_ context.Context, connectionID string, cmd protocol.RequestResetBoard) error {
	return that.requestReset(connectionID, cmd.GameID, protocol.EventResetBoardRequested)
}

func (that *GameManager) RequestResetScores(_ context.Context, connectionID string, cmd protocol.RequestResetScores) error {
	return that.requestReset(connectionID, cmd.GameID, protocol.EventResetScoresRequested)
}

// requestReset asks the opponent of connectionID to agree to a reset.
func (that *GameManager) requestReset(connectionID, gameID, event string) error {
	log := that.logger.With(
		zap.String("method", "requestReset"),
		zap.String("event", event),
		zap.String("connectionID", connectionID),
		zap.String("gameID", gameID),
	)

	game, ok := that.games.Get(gameID)
	if !ok {
		log.Debug("game not found")
		return nil
	}

	requester := game.PlayerByConnection(connectionID)
	if requester == nil {
		return fmt.Errorf("%w: %s requested a reset of %s", apperror.ErrPlayerNotInGame, connectionID, gameID)
	}

	opponent := game.Opponent(connectionID)
	if opponent == nil {
		log.Debug("nobody to ask for a reset")
		return nil
	}

	that.transport.Emit(opponent.ConnectionID, event, protocol.ResetRequested{RequestedBy: requester.Name})

	return nil
}

// ConfirmResetBoard clears the board and draws a new starting player.
func (that *GameManager) ConfirmResetBoard(_ context.Context, connectionID string, cmd protocol.ConfirmResetBoard) error {
	game, ok := that.games.Get(cmd.GameID)
	if !ok {
		that.logger.Debug("game not found", zap.String("method", "ConfirmResetBoard"), zap.String("gameID", cmd.GameID))
		return nil
	}

	game.ResetBoard(that.pickStarter())

	that.transport.Broadcast(game.ID, protocol.EventBoardReset, protocol.BoardReset{
		StartingPlayer: game.CurrentPlayer,
		Grid:           game.Grid,
	})

	that.logger.Info("board reset confirmed",
		zap.String("gameID", game.ID),
		zap.String("connectionID", connectionID),
		zap.Int("startingPlayer", game.CurrentPlayer),
	)

	return nil
}

func (that *GameManager) ConfirmResetScores(_ context.Context, _ string, cmd protocol.ConfirmResetScores) error {
	if _, ok := that.games.Get(cmd.GameID); !ok {
		return nil
	}

	that.transport.Broadcast(cmd.GameID, protocol.EventResetScores, nil)

	return nil
}

// RejectReset tells both players who turned the reset down.
func (that *GameManager) RejectReset(_ context.Context, connectionID string, cmd protocol.RejectReset) error {
	game, ok := that.games.Get(cmd.GameID)
	if !ok {
		return nil
	}

	rejecter := game.PlayerByConnection(connectionID)
	if rejecter == nil {
		return fmt.Errorf("%w: %s rejected a reset of %s", apperror.ErrPlayerNotInGame, connectionID, cmd.GameID)
	}

	that.transport.Broadcast(game.ID, protocol.EventResetRejected, protocol.ResetRejected{RejectedBy: rejecter.Name})

	return nil
}

// ResetBoard restarts the board without asking the opponent. Player 1 always starts.
func (that *GameManager) ResetBoard(_ context.Context, _ string, cmd protocol.ResetBoard) error {
	game, ok := that.games.Get(cmd.GameID)
	if !ok {
		return nil
	}

	if game.IsFull() {
		game.Start(entity.HostPlayer)
	}

	that.transport.Broadcast(game.ID, protocol.EventBoardReset, nil)

	return nil
}

// ResetScores clears the scores without asking the opponent. Scores themselves live on the clients.
func (that *GameManager) ResetScores(_ context.Context, _ string, cmd protocol.ResetScores) error {
	if _, ok := that.games.Get(cmd.GameID); !ok {
		return nil
	}

	that.transport.Broadcast(cmd.GameID, protocol.EventScoresReset, nil)

	return nil
}
