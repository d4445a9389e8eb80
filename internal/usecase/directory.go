package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
)

// Directory owns every live game. It is the only place games are created or deleted.
//
// Directory is not safe for concurrent use, callers serialize access through the transport hub.
type Directory struct {
	games map[string]*entity.Game
}

func NewDirectory() *Directory {
	return &Directory{
		games: make(map[string]*entity.Game),
	}
}

// Create registers a new waiting game seated with host.
func (that *Directory) Create(id string, host *entity.Player) (*entity.Game, error) {
	if _, exists := that.games[id]; exists {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, id)
	}

	game := entity.NewGame(id, host)
	that.games[id] = game

	return game, nil
}

func (that *Directory) Get(id string) (*entity.Game, bool) {
	game, ok := that.games[id]
	return game, ok
}

func (that *Directory) Delete(id string) {
	delete(that.games, id)
}

// FindByConnection returns every game the connection is seated in.
func (that *Directory) FindByConnection(connectionID string) []*entity.Game {
	var found []*entity.Game

	for _, game := range that.games {
		if game.PlayerNumber(connectionID) != entity.NoPlayer {
			found = append(found, game)
		}
	}

	return found
}

func (that *Directory) Len() int {
	return len(that.games)
}
