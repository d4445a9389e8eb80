package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-relay/internal/repository"
)

// SessionRegistry maps a live connection to the session identity the client keeps across reconnects.
type SessionRegistry struct {
	repo sessionRepo
	ids  idGenerator
}

func NewSessionRegistry(repo sessionRepo, ids idGenerator) *SessionRegistry {
	return &SessionRegistry{
		repo: repo,
		ids:  ids,
	}
}

// Init binds suppliedID to the connection, or a freshly generated id when none is given.
// created reports whether the id was generated here and still has to be handed to the client.
func (that *SessionRegistry) Init(ctx context.Context, connectionID, suppliedID string) (string, bool, error) {
	sessionID := suppliedID
	created := false

	if sessionID == "" {
		sessionID = that.ids.NewSessionID()
		created = true
	}

	if err := that.repo.Bind(ctx, connectionID, sessionID); err != nil {
		return "", false, fmt.Errorf("failed to bind session: %w", err)
	}

	return sessionID, created, nil
}

// Lookup returns the session bound to the connection, or an empty string when the client never sent initSession.
func (that *SessionRegistry) Lookup(ctx context.Context, connectionID string) (string, error) {
	sessionID, err := that.repo.GetByConnection(ctx, connectionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	return sessionID, nil
}

func (that *SessionRegistry) Forget(ctx context.Context, connectionID string) error {
	err := that.repo.DeleteByConnection(ctx, connectionID)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
