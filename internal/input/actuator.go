package input

import (
	"image"

	"jansel.dev/shop-picker-go/internal/game"
)

// Actuator delivers pick gestures to the game. Implementations report
// success as a bool so the automation loop can count failed picks without
// unwinding; transport-level details stay behind this interface.
type Actuator interface {
	Click(p image.Point) bool
	ClickCard(card game.Card) bool
}
