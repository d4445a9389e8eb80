package repository

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository binds live connections to their long-lived session identity.
type SessionRepository interface {
	Bind(ctx context.Context, connectionID, sessionID string) error
	GetByConnection(ctx context.Context, connectionID string) (string, error)
	DeleteByConnection(ctx context.Context, connectionID string) error
}
