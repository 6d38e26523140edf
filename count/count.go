// Package count implements a Hi-Lo running count and the derived true
// count used as the bet-sizing signal.
package count

import (
	"github.com/domino14/countsim/deck"
)

// Tracker accumulates the Hi-Lo running count for one shoe.
type Tracker struct {
	running int
}

// Update adds the drawn card's Hi-Lo value to the running count.
func (t *Tracker) Update(card deck.Rank) {
	t.running += card.CountValue()
}

// Running returns the current running count.
func (t *Tracker) Running() int {
	return t.running
}

// TrueCount normalizes the running count by the remaining cards
// expressed as a fraction of one deck (cardsRemaining/52). Near the
// bottom of the shoe the divisor drops below 1 and the true count
// magnitude grows beyond per-deck intuition; that is intentional and
// matches the bet sizing this count feeds.
func (t *Tracker) TrueCount(cardsRemaining int) float64 {
	if cardsRemaining <= 0 {
		return 0
	}
	return float64(t.running) / (float64(cardsRemaining) / float64(deck.CardsPerDeck))
}

// Reset zeroes the running count. Must be called whenever the shoe
// reshuffles.
func (t *Tracker) Reset() {
	t.running = 0
}
