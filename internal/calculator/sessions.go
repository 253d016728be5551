package calculator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrSessionNotFound = errors.New("session not found")

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "calculator_sessions_active",
	Help: "Number of calculator sessions currently held in memory",
})

type session struct {
	mu      sync.Mutex
	machine *Machine
}

// SessionStore keeps one Machine per client. Sessions idle for longer than
// the store TTL are evicted.
type SessionStore struct {
	items *cache.Cache

	// deleteMu makes the lookup and removal in Delete one step.
	deleteMu sync.Mutex
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity. A ttl <= 0 keeps sessions until deleted.
func NewSessionStore(ttl time.Duration) *SessionStore {
	cleanup := ttl / 2
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}

	items := cache.New(ttl, cleanup)
	items.OnEvicted(func(string, interface{}) {
		activeSessions.Dec()
	})

	return &SessionStore{items: items}
}

// Create registers a fresh session and returns its id.
func (s *SessionStore) Create() (string, State) {
	id := uuid.New().String()
	m := NewMachine()

	s.items.Set(id, &session{machine: m}, cache.DefaultExpiration)
	activeSessions.Inc()

	return id, m.State()
}

func (s *SessionStore) Get(id string) (State, error) {
	return s.Apply(id)
}

// Apply runs actions against the session in order and returns the
// resulting state. Access refreshes the session TTL.
func (s *SessionStore) Apply(id string, actions ...Action) (State, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, a := range actions {
		sess.machine.Dispatch(a)
	}

	// Replace fails if the session was deleted while we held it.
	if err := s.items.Replace(id, sess, cache.DefaultExpiration); err != nil {
		return State{}, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}

	return sess.machine.State(), nil
}

// Delete removes the session. Of several concurrent deletes of one id,
// exactly one succeeds.
func (s *SessionStore) Delete(id string) error {
	s.deleteMu.Lock()
	defer s.deleteMu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	s.items.Delete(id)
	return nil
}

// Len returns the number of live sessions, including expired ones not yet
// cleaned up.
func (s *SessionStore) Len() int {
	return s.items.ItemCount()
}

func (s *SessionStore) lookup(id string) (*session, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return v.(*session), nil
}
