package strategy

import (
	"sync"

	"jansel.dev/shop-picker-go/internal/game"
)

// PriorityStrategy picks the affordable card ranked highest in a configured
// priority list. Earlier list positions outrank later ones; when
// preferHigherCost is set a higher shop cost outweighs list rank entirely.
type PriorityStrategy struct {
	mu               sync.RWMutex
	priorities       []string
	maxCost          int
	preferHigherCost bool
}

// NewPriorityStrategy creates a priority strategy over the given list.
func NewPriorityStrategy(priorities []string) *PriorityStrategy {
	return &PriorityStrategy{
		priorities:       append([]string(nil), priorities...),
		maxCost:          5,
		preferHigherCost: true,
	}
}

func (s *PriorityStrategy) Name() string { return "priority" }

func (s *PriorityStrategy) Description() string {
	return "picks the highest-ranked card from a configured priority list"
}

// SetPriorities replaces the ranked list.
func (s *PriorityStrategy) SetPriorities(priorities []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priorities = append([]string(nil), priorities...)
}

// Priorities returns a copy of the ranked list.
func (s *PriorityStrategy) Priorities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.priorities...)
}

// SetMaxCost caps how expensive a pick may be.
func (s *PriorityStrategy) SetMaxCost(maxCost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxCost = maxCost
}

// SetPreferHigherCost toggles the cost bonus.
func (s *PriorityStrategy) SetPreferHigherCost(prefer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferHigherCost = prefer
}

// Select scores every listed, affordable card and returns the first card
// reaching the highest score in slot order.
func (s *PriorityStrategy) Select(cards []game.Card, _ *game.State) (game.Card, bool) {
	s.mu.RLock()
	priorities := s.priorities
	maxCost := s.maxCost
	preferHigherCost := s.preferHigherCost
	s.mu.RUnlock()

	var best game.Card
	bestScore := -1
	found := false

	for _, card := range cards {
		if card.Cost > maxCost {
			continue
		}

		rank, listed := card.MatchesPriority(priorities)
		if !listed {
			continue
		}

		score := len(priorities) - rank
		if preferHigherCost {
			score += card.Cost * 10
		}

		if score > bestScore {
			best = card
			bestScore = score
			found = true
		}
	}

	return best, found
}
