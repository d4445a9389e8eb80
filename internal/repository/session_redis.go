package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long a binding outlives a server that died without cleaning up.
const sessionTTL = 24 * time.Hour

type dbSession struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Bind(ctx context.Context, connectionID, sessionID string) error {
	if err := that.client.Set(ctx, sessionKey(connectionID), sessionID, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByConnection(ctx context.Context, connectionID string) (string, error) {
	sessionID, err := that.client.Get(ctx, sessionKey(connectionID)).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get session by connection: %w", err)
	}

	return sessionID, nil
}

func (that *dbSession) DeleteByConnection(ctx context.Context, connectionID string) error {
	deleted, err := that.client.Del(ctx, sessionKey(connectionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by connection: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func sessionKey(connectionID string) string {
	return "session:" + connectionID
}
