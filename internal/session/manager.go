package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"weather-forecasting/config"
)

const (
	defaultIdleTTL       = 30 * time.Minute
	defaultSweepSchedule = "@every 5m"
)

// Manager keeps one Session per client id and evicts idle ones on a schedule.
type Manager struct {
	deps    Deps
	idleTTL time.Duration
	cron    *cron.Cron

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(deps Deps, cfg config.SessionConfig) (*Manager, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = defaultSweepSchedule
	}

	m := &Manager{
		deps:     deps,
		idleTTL:  cfg.IdleTTL,
		cron:     cron.New(),
		sessions: make(map[string]*Session),
	}

	if _, err := m.cron.AddFunc(cfg.SweepSchedule, func() { m.Sweep() }); err != nil {
		return nil, fmt.Errorf("session sweep schedule %q: %w", cfg.SweepSchedule, err)
	}

	return m, nil
}

// Get returns the session for clientID, creating it on first use.
func (m *Manager) Get(ctx context.Context, clientID string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[clientID]
	m.mu.RUnlock()
	if ok {
		s.touch()
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[clientID]; ok {
		s.touch()
		return s
	}

	s = New(ctx, clientID, m.deps)
	m.sessions[clientID] = s

	return s
}

// Sweep drops sessions idle for longer than the configured TTL.
func (m *Manager) Sweep() int {
	now := m.deps.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			delete(m.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		m.deps.Logger.Info("evicted idle sessions", map[string]any{
			"evicted":   evicted,
			"remaining": len(m.sessions),
		})
	}

	return evicted
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *Manager) Start() {
	m.cron.Start()
}

// Stop halts the janitor and waits for a running sweep to finish.
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
}
