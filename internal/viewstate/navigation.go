package viewstate

import (
	"context"
	"sync"
)

// Ticket identifies one navigation started with Navigator.Begin.
type Ticket uint64

// Navigator tracks the latest navigation of a session. Beginning a navigation
// cancels the one before it, so only the most recent load is rendered.
type Navigator struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin starts a navigation derived from ctx and supersedes any in flight.
// The caller must call Done with the returned ticket.
func (n *Navigator) Begin(ctx context.Context) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
	n.seq++
	n.cancel = cancel
	return ctx, Ticket(n.seq)
}

// Current reports whether t is still the latest navigation.
func (n *Navigator) Current(t Ticket) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return uint64(t) == n.seq
}

// Done releases the navigation's context if it is still the latest one.
func (n *Navigator) Done(t Ticket) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if uint64(t) == n.seq && n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
}
