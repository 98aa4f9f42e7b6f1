package strategy

import (
	"fmt"
	"log/slog"
	"sync"

	"jansel.dev/shop-picker-go/internal/game"
)

// PickStrategy chooses at most one card from a recognized shop row.
// Select must not mutate its input and must be safe to call repeatedly
// with the same slice. The state argument gives variants access to the
// wider game context and may be nil.
type PickStrategy interface {
	Name() string
	Description() string
	Select(cards []game.Card, state *game.State) (game.Card, bool)
}

// Manager owns the registered strategies and tracks which one is active.
type Manager struct {
	mu         sync.RWMutex
	strategies map[string]PickStrategy
	active     PickStrategy
	log        *slog.Logger
}

// NewManager creates a manager with the built-in strategies registered and
// the priority strategy active.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		strategies: make(map[string]PickStrategy),
		log:        logger,
	}

	priority := NewPriorityStrategy(nil)
	m.Register(priority)
	m.Register(NewCostWeightStrategy(nil))
	m.Register(NewTargetCompStrategy(nil))
	m.active = priority

	return m
}

// Register adds or replaces a strategy under its own name.
func (m *Manager) Register(s PickStrategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strategies[s.Name()] = s
}

// SetActive switches the active strategy by name.
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.strategies[name]
	if !ok {
		return fmt.Errorf("unknown strategy: %s", name)
	}

	m.active = s
	m.log.Info("strategy changed", "strategy", name)
	return nil
}

// Active returns the currently selected strategy.
func (m *Manager) Active() PickStrategy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// ActiveName returns the name of the active strategy.
func (m *Manager) ActiveName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active.Name()
}

// Get returns a registered strategy by name.
func (m *Manager) Get(name string) (PickStrategy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.strategies[name]
	return s, ok
}

// Names lists every registered strategy name.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.strategies))
	for name := range m.strategies {
		names = append(names, name)
	}
	return names
}

// Select runs the active strategy against the given cards.
func (m *Manager) Select(cards []game.Card, state *game.State) (game.Card, bool) {
	m.mu.RLock()
	active := m.active
	m.mu.RUnlock()

	return active.Select(cards, state)
}
