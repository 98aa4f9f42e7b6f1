package game

import (
	"testing"
	"time"
)

func TestPhaseTransition(t *testing.T) {
	state := NewState(nil)

	if state.Phase() != PhaseUnknown {
		t.Fatalf("initial phase = %v, want unknown", state.Phase())
	}

	state.SetPhase(PhaseShopping)
	if state.Phase() != PhaseShopping {
		t.Errorf("phase = %v, want shopping", state.Phase())
	}
	if !state.InShopPhase() {
		t.Error("shopping phase should report InShopPhase")
	}

	state.SetPhase(PhaseBattling)
	if state.InShopPhase() {
		t.Error("battling phase should not report InShopPhase")
	}
}

func TestSetPhaseSameIsNoOp(t *testing.T) {
	state := NewState(nil)
	state.SetPhase(PhaseShopping)
	since := state.PhaseSince()

	time.Sleep(5 * time.Millisecond)
	state.SetPhase(PhaseShopping)

	if !state.PhaseSince().Equal(since) {
		t.Error("re-setting the current phase should not reset the timestamp")
	}
}

func TestSetCardsReplacesWholesale(t *testing.T) {
	state := NewState(nil)

	state.SetCards([]Card{NewCard("Ahri", 3, 0.9), NewCard("Garen", 1, 0.8)})
	state.SetCards([]Card{NewCard("Lux", 2, 0.85)})

	cards := state.Cards()
	if len(cards) != 1 {
		t.Fatalf("card count = %d, want 1", len(cards))
	}
	if cards[0].Name != "Lux" {
		t.Errorf("card = %s, want Lux", cards[0].Name)
	}
}

func TestCardsReturnsCopy(t *testing.T) {
	state := NewState(nil)
	state.SetCards([]Card{NewCard("Ahri", 3, 0.9)})

	cards := state.Cards()
	cards[0].Name = "mutated"

	if state.Cards()[0].Name != "Ahri" {
		t.Error("mutating the returned slice should not affect state")
	}
}

func TestReset(t *testing.T) {
	state := NewState(nil)
	state.SetPhase(PhaseShopping)
	state.SetCards([]Card{NewCard("Ahri", 3, 0.9)})

	state.Reset()

	if state.Phase() != PhaseUnknown {
		t.Errorf("phase after reset = %v, want unknown", state.Phase())
	}
	if len(state.Cards()) != 0 {
		t.Error("cards should be cleared on reset")
	}
}

func TestMarkSelected(t *testing.T) {
	state := NewState(nil)
	state.SetCards([]Card{NewCard("Ahri", 3, 0.9), NewCard("Garen", 1, 0.8)})

	state.MarkSelected("Garen")

	cards := state.Cards()
	if cards[0].Selected {
		t.Error("Ahri should not be selected")
	}
	if !cards[1].Selected {
		t.Error("Garen should be selected")
	}

	// The flag does not survive a wholesale replacement.
	state.SetCards([]Card{NewCard("Garen", 1, 0.8)})
	if state.Cards()[0].Selected {
		t.Error("selected flag should not persist across cycles")
	}
}

func TestActiveFlag(t *testing.T) {
	state := NewState(nil)

	if state.Active() {
		t.Error("state should start inactive")
	}
	state.SetActive(true)
	if !state.Active() {
		t.Error("state should be active after SetActive")
	}
}

func TestSnapshot(t *testing.T) {
	state := NewState(nil)
	state.SetPhase(PhaseShopping)
	state.SetCards([]Card{NewCard("Ahri", 3, 0.9)})

	snap := state.Snapshot()
	if snap.Phase != PhaseShopping {
		t.Errorf("snapshot phase = %v, want shopping", snap.Phase)
	}
	if len(snap.Cards) != 1 || snap.Cards[0].Name != "Ahri" {
		t.Errorf("snapshot cards = %+v", snap.Cards)
	}
}
