// Package store keeps completed backtest results in memory so API clients
// can fetch ledgers and snapshots after a run without re-running it.
package store

import (
	"sync"
	"time"

	"trade-backtest/internal/backtest"

	"github.com/google/uuid"
)

// DefaultTTL bounds how long a finished run stays retrievable.
const DefaultTTL = time.Hour

type entry struct {
	result    *backtest.Result
	strategy  string
	expiresAt time.Time
}

// Memory is an in-memory result store keyed by run ID. Safe for concurrent
// use by API handlers.
type Memory struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Memory{
		m:   make(map[string]entry),
		ttl: ttl,
	}
	go s.cleanup()
	return s
}

// Put stores a result under a fresh run ID and returns the ID.
func (s *Memory) Put(strategy string, result *backtest.Result) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = entry{
		result:    result,
		strategy:  strategy,
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// Get returns the stored result and its strategy name, if present and not
// expired.
func (s *Memory) Get(id string) (*backtest.Result, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.result, e.strategy, true
}

func (s *Memory) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, e := range s.m {
			if now.After(e.expiresAt) {
				delete(s.m, id)
			}
		}
		s.mu.Unlock()
	}
}
