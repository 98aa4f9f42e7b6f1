package game

import "testing"

func TestRarityFromCost(t *testing.T) {
	tests := []struct {
		cost int
		want Rarity
	}{
		{1, RarityOneCost},
		{2, RarityTwoCost},
		{3, RarityThreeCost},
		{4, RarityFourCost},
		{5, RarityFiveCost},
		{0, RarityUnknown},
		{6, RarityUnknown},
		{-1, RarityUnknown},
	}

	for _, tt := range tests {
		if got := RarityFromCost(tt.cost); got != tt.want {
			t.Errorf("RarityFromCost(%d) = %v, want %v", tt.cost, got, tt.want)
		}
	}
}

func TestRarityCostRoundTrip(t *testing.T) {
	for cost := 1; cost <= 5; cost++ {
		if got := RarityFromCost(cost).Cost(); got != cost {
			t.Errorf("RarityFromCost(%d).Cost() = %d", cost, got)
		}
	}

	if got := RaritySpatula.Cost(); got != 0 {
		t.Errorf("spatula cost = %d, want 0", got)
	}
}

func TestNewCard(t *testing.T) {
	card := NewCard("Ahri", 3, 0.92)

	if card.Rarity != RarityThreeCost {
		t.Errorf("rarity = %v, want %v", card.Rarity, RarityThreeCost)
	}
	if card.ShopIndex != -1 {
		t.Errorf("shop index = %d, want -1", card.ShopIndex)
	}
}

func TestCardEqualByNameOnly(t *testing.T) {
	a := NewCard("Ahri", 3, 0.92)
	b := NewCard("Ahri", 5, 0.41)
	b.ShopIndex = 4

	if !a.Equal(b) {
		t.Error("cards with the same name should be equal")
	}

	c := NewCard("Garen", 3, 0.92)
	if a.Equal(c) {
		t.Error("cards with different names should not be equal")
	}
}

func TestMatchesPriority(t *testing.T) {
	priorities := []string{"Ahri", "Garen", "Lux"}

	card := NewCard("Garen", 1, 0.9)
	rank, ok := card.MatchesPriority(priorities)
	if !ok {
		t.Fatal("expected card to be listed")
	}
	if rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}

	unlisted := NewCard("Teemo", 1, 0.9)
	if _, ok := unlisted.MatchesPriority(priorities); ok {
		t.Error("unlisted card should not match")
	}
}
