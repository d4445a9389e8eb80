package pkg

import "github.com/google/uuid"

// gameIDLength keeps game ids short enough to be shared by hand.
const gameIDLength = 8

// Generator produces opaque identifiers backed by random UUIDs.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// NewConnectionID - generates the id of a live transport connection.
func (that *Generator) NewConnectionID() string {
	return uuid.NewString()
}

// NewSessionID - generates a new unique sessionID.
func (that *Generator) NewSessionID() string {
	return uuid.NewString()
}

// NewGameID - generates the short identifier of a game.
func (that *Generator) NewGameID() string {
	return uuid.NewString()[:gameIDLength]
}
