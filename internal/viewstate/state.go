// Package viewstate holds the per-session UI state of the viewer: display modes
// of content units, the last submitted search query, the anchor scroller and the
// navigation tracker that discards superseded loads.
package viewstate

import "sync"

// State is everything one browsing session remembers. It is created when the
// session starts and dropped with it; there is no teardown.
type State struct {
	DisplayModes *DisplayModes
	Query        *QueryStore
	Scroller     *Scroller
	Navigation   *Navigator

	mu      sync.Mutex
	pending string
}

// New returns an empty session state.
func New() *State {
	return &State{
		DisplayModes: NewDisplayModes(),
		Query:        &QueryStore{},
		Scroller:     &Scroller{},
		Navigation:   &Navigator{},
	}
}

// SetPendingFragment records the fragment the next rendered page should scroll to.
func (s *State) SetPendingFragment(fragment string) {
	s.mu.Lock()
	s.pending = fragment
	s.mu.Unlock()
}

// RestoreTo makes the next rendered page scroll to fragment, even when it was
// the last fragment scrolled to. Used when a full reload must keep the reader's
// place, such as a display toggle.
func (s *State) RestoreTo(fragment string) {
	s.Scroller.Forget()
	s.SetPendingFragment(fragment)
}

// TakePendingFragment returns and clears the pending fragment.
func (s *State) TakePendingFragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.pending
	s.pending = ""
	return f
}
