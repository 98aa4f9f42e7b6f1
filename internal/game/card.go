package game

import "image"

// Rarity buckets a card by its shop cost.
type Rarity int

const (
	RarityUnknown Rarity = iota
	RarityOneCost
	RarityTwoCost
	RarityThreeCost
	RarityFourCost
	RarityFiveCost
	RaritySpatula
)

var rarityNames = map[Rarity]string{
	RarityUnknown:   "unknown",
	RarityOneCost:   "one-cost",
	RarityTwoCost:   "two-cost",
	RarityThreeCost: "three-cost",
	RarityFourCost:  "four-cost",
	RarityFiveCost:  "five-cost",
	RaritySpatula:   "spatula",
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "unknown"
}

// Cost returns the shop cost this rarity corresponds to. Spatula items do
// not occupy a priced shop slot and report 0, as does unknown.
func (r Rarity) Cost() int {
	switch r {
	case RarityOneCost, RarityTwoCost, RarityThreeCost, RarityFourCost, RarityFiveCost:
		return int(r)
	default:
		return 0
	}
}

// RarityFromCost maps a recognized shop cost back to a rarity bucket.
func RarityFromCost(cost int) Rarity {
	if cost >= 1 && cost <= 5 {
		return Rarity(cost)
	}
	return RarityUnknown
}

// Card is one recognized shop offering. Identity is the Name alone; two
// cards with the same name are the same card regardless of where or how
// confidently they were seen. Selected is set only by the automation
// controller after a successful pick.
type Card struct {
	Name       string
	Cost       int
	Rarity     Rarity
	Classes    []string
	Confidence float64
	ShopIndex  int
	Position   image.Point
	Selected   bool
}

// NewCard builds a card with rarity derived from cost and no slot assigned.
func NewCard(name string, cost int, confidence float64) Card {
	return Card{
		Name:       name,
		Cost:       cost,
		Rarity:     RarityFromCost(cost),
		Confidence: confidence,
		ShopIndex:  -1,
	}
}

// Equal reports whether two cards refer to the same offering.
func (c Card) Equal(other Card) bool {
	return c.Name == other.Name
}

// HasClass reports whether the card carries the named class tag.
func (c Card) HasClass(class string) bool {
	for _, tag := range c.Classes {
		if tag == class {
			return true
		}
	}
	return false
}

// MatchesPriority reports whether the card appears in a priority list and at
// which rank.
func (c Card) MatchesPriority(priorities []string) (int, bool) {
	for rank, name := range priorities {
		if c.Name == name {
			return rank, true
		}
	}
	return 0, false
}
