package entity

// Rendezvous is a barrier over a fixed set of connections that must acknowledge prepareGame.
type Rendezvous struct {
	participants []string
	pending      map[string]struct{}
}

func NewRendezvous(connectionIDs ...string) *Rendezvous {
	pending := make(map[string]struct{}, len(connectionIDs))
	for _, id := range connectionIDs {
		pending[id] = struct{}{}
	}

	return &Rendezvous{
		participants: connectionIDs,
		pending:      pending,
	}
}

// Acknowledge marks connectionID as ready. It returns false when the connection was not pending.
func (that *Rendezvous) Acknowledge(connectionID string) bool {
	if _, ok := that.pending[connectionID]; !ok {
		return false
	}

	delete(that.pending, connectionID)

	return true
}

func (that *Rendezvous) Complete() bool {
	return len(that.pending) == 0
}

func (that *Rendezvous) Pending() int {
	return len(that.pending)
}

// Participants returns the connections the barrier was opened for.
func (that *Rendezvous) Participants() []string {
	return that.participants
}
