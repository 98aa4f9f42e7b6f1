package strategy

import (
	"sync"

	"jansel.dev/shop-picker-go/internal/game"
)

// CostWeightStrategy scores each card by a per-cost weight plus a small
// recognition-confidence bonus, so ties between equally weighted costs fall
// to the more confidently recognized card.
type CostWeightStrategy struct {
	mu      sync.RWMutex
	weights map[int]float64
}

// NewCostWeightStrategy creates a cost-weight strategy. Costs missing from
// the table weigh 1.0.
func NewCostWeightStrategy(weights map[int]float64) *CostWeightStrategy {
	s := &CostWeightStrategy{weights: make(map[int]float64)}
	for cost, w := range weights {
		s.weights[cost] = w
	}
	return s
}

func (s *CostWeightStrategy) Name() string { return "cost_weight" }

func (s *CostWeightStrategy) Description() string {
	return "picks the card with the highest configured cost weight"
}

// SetWeight sets the weight for one cost tier.
func (s *CostWeightStrategy) SetWeight(cost int, weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[cost] = weight
}

// SetWeights replaces the whole weight table.
func (s *CostWeightStrategy) SetWeights(weights map[int]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = make(map[int]float64)
	for cost, w := range weights {
		s.weights[cost] = w
	}
}

// Weight returns the effective weight for one cost tier.
func (s *CostWeightStrategy) Weight(cost int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weightLocked(cost)
}

func (s *CostWeightStrategy) weightLocked(cost int) float64 {
	if w, ok := s.weights[cost]; ok {
		return w
	}
	return 1.0
}

// Select returns the first card reaching the highest score in slot order.
func (s *CostWeightStrategy) Select(cards []game.Card, _ *game.State) (game.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best game.Card
	bestScore := -1.0
	found := false

	for _, card := range cards {
		score := s.weightLocked(card.Cost) + card.Confidence*0.1
		if score > bestScore {
			best = card
			bestScore = score
			found = true
		}
	}

	return best, found
}
