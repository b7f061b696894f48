package viewstate

import "sync"

// Locator reports whether the rendered page has an element with the given id.
type Locator interface {
	Has(id string) bool
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(id string) bool

// Has calls f(id).
func (f LocatorFunc) Has(id string) bool { return f(id) }

// Scroller decides when to smooth-scroll to a fragment. It scrolls at most once
// per fragment value in a row, so repeated renders of the same navigation do
// not jitter, while a different fragment always scrolls.
type Scroller struct {
	mu   sync.Mutex
	last string
}

// Resolve returns the element id to scroll to and true, or false when the
// fragment is empty, missing from the page, or was the last one scrolled to.
func (s *Scroller) Resolve(fragment string, loc Locator) (string, bool) {
	if fragment == "" || loc == nil || !loc.Has(fragment) {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if fragment == s.last {
		return "", false
	}
	s.last = fragment
	return fragment, true
}

// Forget clears the last fragment so the next Resolve of any fragment scrolls.
func (s *Scroller) Forget() {
	s.mu.Lock()
	s.last = ""
	s.mu.Unlock()
}

// Last returns the fragment most recently scrolled to.
func (s *Scroller) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
