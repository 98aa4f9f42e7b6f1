package strategy

import (
	"sync"

	"jansel.dev/shop-picker-go/internal/game"
)

// TargetCompStrategy picks the first shop card, in slot order, that belongs
// to a target composition. Slot order is the tiebreak; no scoring applies.
type TargetCompStrategy struct {
	mu      sync.RWMutex
	targets map[string]struct{}
}

// NewTargetCompStrategy creates a target-composition strategy.
func NewTargetCompStrategy(targets []string) *TargetCompStrategy {
	s := &TargetCompStrategy{targets: make(map[string]struct{})}
	for _, name := range targets {
		s.targets[name] = struct{}{}
	}
	return s
}

func (s *TargetCompStrategy) Name() string { return "target_comp" }

func (s *TargetCompStrategy) Description() string {
	return "picks any card belonging to the target composition"
}

// SetTargets replaces the composition membership set.
func (s *TargetCompStrategy) SetTargets(targets []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = make(map[string]struct{})
	for _, name := range targets {
		s.targets[name] = struct{}{}
	}
}

// Targets returns the composition members in no particular order.
func (s *TargetCompStrategy) Targets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.targets))
	for name := range s.targets {
		names = append(names, name)
	}
	return names
}

// Select returns the first card whose name is in the target set.
func (s *TargetCompStrategy) Select(cards []game.Card, _ *game.State) (game.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, card := range cards {
		if _, ok := s.targets[card.Name]; ok {
			return card, true
		}
	}

	return game.Card{}, false
}
