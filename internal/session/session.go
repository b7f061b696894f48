// Package session binds a browser to its viewstate.State with a cookie. State
// lives in memory only and is bounded by an LRU table.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/metrics"
	"github.com/hyperjump/legisview/internal/viewstate"
)

type contextKey struct{}

// Options configures a Manager.
type Options struct {
	CookieName string
	Capacity   int
	MaxAge     time.Duration
	Secure     bool
}

// Manager creates, finds and evicts sessions.
type Manager struct {
	opts     Options
	sessions *lru.Cache[string, *viewstate.State]
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewManager returns a manager holding at most opts.Capacity sessions.
func NewManager(opts Options, m *metrics.Metrics, logger *zap.Logger) (*Manager, error) {
	if opts.CookieName == "" {
		opts.CookieName = "legisview_session"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	mgr := &Manager{opts: opts, metrics: m, logger: logger}
	cache, err := lru.NewWithEvict(opts.Capacity, func(id string, _ *viewstate.State) {
		if mgr.metrics != nil {
			mgr.metrics.SessionsEvicted.Inc()
		}
		mgr.logger.Debug("session evicted", zap.String("session", id))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	mgr.sessions = cache
	return mgr, nil
}

// Middleware attaches the caller's session to the request context, starting a
// new one when the cookie is missing, malformed or refers to an evicted session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := m.lookup(r)
		if state == nil {
			id := uuid.NewString()
			state = viewstate.New()
			m.sessions.Add(id, state)
			m.setCookie(w, id)
			m.logger.Debug("session started", zap.String("session", id))
		}
		if m.metrics != nil {
			m.metrics.SessionsActive.Set(float64(m.sessions.Len()))
		}
		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), state)))
	})
}

func (m *Manager) lookup(r *http.Request) *viewstate.State {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return nil
	}
	state, ok := m.sessions.Get(c.Value)
	if !ok {
		return nil
	}
	return state
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.opts.MaxAge > 0 {
		cookie.MaxAge = int(m.opts.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// WithState returns ctx carrying state.
func WithState(ctx context.Context, state *viewstate.State) context.Context {
	return context.WithValue(ctx, contextKey{}, state)
}

// FromContext returns the session state on ctx. Requests that did not pass
// through the middleware get a fresh state that is not retained.
func FromContext(ctx context.Context) *viewstate.State {
	if s, ok := ctx.Value(contextKey{}).(*viewstate.State); ok && s != nil {
		return s
	}
	return viewstate.New()
}
