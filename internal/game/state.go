package game

import (
	"log/slog"
	"sync"
	"time"
)

// Phase is the coarse game phase inferred from the screen.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseLobby
	PhaseShopping
	PhasePicking
	PhaseBattling
	PhaseGameOver
	PhasePaused
)

var phaseNames = map[Phase]string{
	PhaseUnknown:  "unknown",
	PhaseLobby:    "lobby",
	PhaseShopping: "shopping",
	PhasePicking:  "picking",
	PhaseBattling: "battling",
	PhaseGameOver: "game-over",
	PhasePaused:   "paused",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// State holds the mutable view of the running game shared between the
// recognition and automation layers. All access is mutex-guarded; card
// lists are replaced wholesale on each recognition pass, never patched.
type State struct {
	mu           sync.RWMutex
	phase        Phase
	phaseSince   time.Time
	cards        []Card
	recognizedAt time.Time
	active       bool
	log          *slog.Logger
}

// NewState creates a state in the unknown phase
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		phase:      PhaseUnknown,
		phaseSince: time.Now(),
		log:        logger,
	}
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// SetPhase records a phase transition. Setting the current phase again is a
// no-op and does not reset the transition timestamp.
func (s *State) SetPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phase == s.phase {
		return
	}

	s.log.Info("phase transition", "from", s.phase.String(), "to", phase.String())
	s.phase = phase
	s.phaseSince = time.Now()
}

// SetShopPhase records entry into the shopping phase.
func (s *State) SetShopPhase() { s.SetPhase(PhaseShopping) }

// SetLobbyPhase records a return to the lobby.
func (s *State) SetLobbyPhase() { s.SetPhase(PhaseLobby) }

// SetBattlePhase records entry into a battle round.
func (s *State) SetBattlePhase() { s.SetPhase(PhaseBattling) }

// InShopPhase reports whether cards are currently purchasable.
func (s *State) InShopPhase() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase == PhaseShopping || s.phase == PhasePicking
}

// PhaseSince returns when the current phase was entered.
func (s *State) PhaseSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phaseSince
}

// SetCards replaces the recognized card list.
func (s *State) SetCards(cards []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = make([]Card, len(cards))
	copy(s.cards, cards)
	s.recognizedAt = time.Now()
}

// Cards returns a copy of the recognized card list.
func (s *State) Cards() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	return cards
}

// RecognizedAt returns when the card list was last replaced.
func (s *State) RecognizedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recognizedAt
}

// SetActive flags whether automation currently drives this state.
func (s *State) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Active reports whether automation currently drives this state.
func (s *State) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// MarkSelected flags the named card in the current list as selected. The
// flag lives only until the next wholesale card replacement.
func (s *State) MarkSelected(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].Name == name {
			s.cards[i].Selected = true
			return
		}
	}
}

// Reset clears the card list and returns to the unknown phase.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseUnknown
	s.phaseSince = time.Now()
	s.cards = nil
	s.recognizedAt = time.Time{}
}

// Snapshot is a point-in-time copy of the game state.
type Snapshot struct {
	Phase        Phase
	PhaseSince   time.Time
	Cards        []Card
	RecognizedAt time.Time
}

// Snapshot returns a consistent copy of phase and cards.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)

	return Snapshot{
		Phase:        s.phase,
		PhaseSince:   s.phaseSince,
		Cards:        cards,
		RecognizedAt: s.recognizedAt,
	}
}
