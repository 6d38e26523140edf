// Package betting sizes wagers from the true count with a linear
// spread multiplier.
package betting

import "math"

// BetSize returns the wager for the current round. The base bet is
// minBet; a true count above 1 multiplies it by the truncated count,
// capped at spread. The result never exceeds the current bankroll.
func BetSize(trueCount, bankroll, minBet float64, spread int) float64 {
	bet := minBet
	if trueCount > 1 {
		bet *= float64(min(spread, int(trueCount)))
	}
	return math.Min(bankroll, bet)
}
