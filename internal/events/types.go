package events

import (
	"time"

	"jansel.dev/shop-picker-go/internal/game"
)

// EventType represents different types of events in the system
type EventType string

const (
	// Recognition events
	EventTypeCardsRecognized EventType = "recognition.cards"
	EventTypePhaseChanged    EventType = "recognition.phase_changed"

	// Automation events
	EventTypeCardPicked   EventType = "automation.card_picked"
	EventTypePickFailed   EventType = "automation.pick_failed"
	EventTypeStateChanged EventType = "automation.state_changed"

	// Error events
	EventTypeError EventType = "error"
)

// Event represents a system event with metadata
type Event struct {
	Type      EventType
	Source    string
	Timestamp time.Time
	Data      map[string]interface{}
}

// EventHandler is a function that processes an event
type EventHandler func(Event)

// SubscriptionID uniquely identifies a subscription
type SubscriptionID int64

// EventBus defines the interface for event pub/sub
type EventBus interface {
	Subscribe(eventType EventType, handler EventHandler) SubscriptionID
	Unsubscribe(id SubscriptionID)
	Publish(event Event)
	PublishAsync(event Event)
	Stop()
}

// Helper functions to create common events

// NewCardsRecognizedEvent creates a recognition result event
func NewCardsRecognizedEvent(cards []game.Card) Event {
	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = card.Name
	}

	return Event{
		Type:      EventTypeCardsRecognized,
		Source:    "recognizer",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"count": len(cards),
			"names": names,
		},
	}
}

// NewPhaseChangedEvent creates a phase transition event
func NewPhaseChangedEvent(from, to game.Phase) Event {
	return Event{
		Type:      EventTypePhaseChanged,
		Source:    "recognizer",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"from": from.String(),
			"to":   to.String(),
		},
	}
}

// NewCardPickedEvent creates a card picked event
func NewCardPickedEvent(card game.Card, strategy string) Event {
	return Event{
		Type:      EventTypeCardPicked,
		Source:    "controller",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"card":       card.Name,
			"cost":       card.Cost,
			"shop_index": card.ShopIndex,
			"confidence": card.Confidence,
			"strategy":   strategy,
		},
	}
}

// NewPickFailedEvent creates a pick failure event
func NewPickFailedEvent(card game.Card, reason string) Event {
	return Event{
		Type:      EventTypePickFailed,
		Source:    "controller",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"card":   card.Name,
			"reason": reason,
		},
	}
}

// NewStateChangedEvent creates a controller state transition event
func NewStateChangedEvent(from, to string) Event {
	return Event{
		Type:      EventTypeStateChanged,
		Source:    "controller",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"from": from,
			"to":   to,
		},
	}
}

// NewErrorEvent creates an error event
func NewErrorEvent(source string, err error) Event {
	return Event{
		Type:      EventTypeError,
		Source:    source,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"error": err.Error(),
		},
	}
}
