package repository

import (
	"context"
	"sync"
)

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemorySessionRepository returns a process-local repository, entries vanish with the process.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]string),
	}
}

func (that *memorySession) Bind(_ context.Context, connectionID, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[connectionID] = sessionID

	return nil
}

func (that *memorySession) GetByConnection(_ context.Context, connectionID string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sessionID, ok := that.sessions[connectionID]
	if !ok {
		return "", ErrSessionNotFound
	}

	return sessionID, nil
}

func (that *memorySession) DeleteByConnection(_ context.Context, connectionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[connectionID]; !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, connectionID)

	return nil
}
