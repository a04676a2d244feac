// Package session keeps the per-login state that drives access control and
// back navigation.
package session

import (
	"context" // Context for store operations
	"errors"  // Sentinel errors
	"sync"    // Guarding the in-memory store
	"time"    // Session TTL

	"event_marketplace/internal/domain" // Importing roles
	"event_marketplace/internal/utils"  // Cache helpers and TTL

	"github.com/google/uuid"       // Session ids
	"github.com/redis/go-redis/v9" // Redis client
)

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Session is the state of one authenticated login
type Session struct {
	ID       string      `json:"id"`       // Random session id
	Username string      `json:"username"` // Logged in account
	Role     domain.Role `json:"role"`     // Role of that account
	Name     string      `json:"name"`     // Display name
	AtHome   bool        `json:"at_home"`  // On the role dashboard rather than a sub-page
}

// New creates a session with a fresh random id
func New(username string, role domain.Role, name string) *Session {
	return &Session{ID: uuid.NewString(), Username: username, Role: role, Name: name}
}

// BackTarget applies one step of back navigation and returns where to go:
// a sub-page goes to the role dashboard, the dashboard goes to the landing page
func (s *Session) BackTarget() string {
	if s == nil || s.Role == domain.RoleNone {
		return domain.RoleNone.Home() // Anonymous always lands on the index
	}
	if s.AtHome {
		s.AtHome = false
		return domain.RoleNone.Home() // Dashboard steps back to the index
	}
	s.AtHome = true
	return s.Role.Home() // Sub-page steps back to the dashboard
}

// Store persists sessions by id
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis under session:<id>
type RedisStore struct {
	rdb redis.Cmdable // Client or cluster
	ttl time.Duration // Lifetime of a stored session
}

// NewRedisStore wraps a Redis client
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: utils.SessionTTL}
}

func key(id string) string {
	return "session:" + id // Redis key of a session
}

// Get loads a session, ErrNotFound when the key is missing or expired
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	found, err := utils.GetCache(ctx, r.rdb, key(id), &s) // Read JSON from Redis
	if err != nil {
		return nil, err // Redis or decode error
	}
	if !found {
		return nil, ErrNotFound // Unknown or expired
	}
	return &s, nil
}

// Save writes a session and refreshes its TTL
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	return utils.SetCache(ctx, r.rdb, key(s.ID), s, r.ttl) // Store JSON with TTL
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return utils.DeleteCache(ctx, r.rdb, key(id)) // Logout
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.RWMutex       // Guards sessions
	sessions map[string]Session // Stored by value so callers get copies
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]Session{}}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id] // Copy out of the map
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s // Copy into the map
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
