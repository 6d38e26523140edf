// Package outcome models the result of a single round as a three-way
// draw over win/lose/push, conditioned (or not) on the true count.
package outcome

import (
	"fmt"
	"math"

	"lukechampine.com/frand"
)

// Outcome is the result of one round.
type Outcome int

const (
	Win Outcome = iota
	Lose
	Push
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	}
	return "unknown"
}

// Model selects how round probabilities and payouts are derived.
type Model int

const (
	// ModelCounting gives the player a small edge bonus above true
	// count 1, and pays wins at 1.5x to approximate blackjack bonuses.
	ModelCounting Model = iota
	// ModelFlat uses fixed house-favored probabilities and even-money
	// payouts, ignoring the count entirely.
	ModelFlat
)

const (
	baseWinProb  = 0.48
	pushProb     = 0.08
	maxEdgeBoost = 0.05

	flatWinProb  = 0.42
	flatPushProb = 0.10
)

func (m Model) String() string {
	switch m {
	case ModelCounting:
		return "counting"
	case ModelFlat:
		return "flat"
	}
	return "unknown"
}

// ModelFromName parses a model name as used in config files and shell
// commands.
func ModelFromName(name string) (Model, error) {
	switch name {
	case "counting":
		return ModelCounting, nil
	case "flat":
		return ModelFlat, nil
	}
	return 0, fmt.Errorf("unknown outcome model %q", name)
}

// Probabilities returns the win, lose and push probabilities for the
// given true count. Any floating-point residual keeping the three from
// summing to exactly 1.0 is folded into the lose probability.
func (m Model) Probabilities(trueCount float64) (win, lose, push float64) {
	switch m {
	case ModelFlat:
		win = flatWinProb
		push = flatPushProb
	default:
		win = baseWinProb + math.Min(0.01*math.Max(0, trueCount-1), maxEdgeBoost)
		push = pushProb
	}
	lose = 1 - win - push
	// A single fold can land one ulp short once re-summed, so repeat
	// until the three genuinely sum to 1.0. Converges in a pass or two.
	for s := win + lose + push; s != 1.0; s = win + lose + push {
		lose += 1.0 - s
	}
	return win, lose, push
}

// Sample draws one outcome from rng using the model's probabilities at
// the given true count. Rounds are independent.
func (m Model) Sample(rng *frand.RNG, trueCount float64) Outcome {
	win, lose, _ := m.Probabilities(trueCount)
	r := rng.Float64()
	switch {
	case r < win:
		return Win
	case r < win+lose:
		return Lose
	default:
		return Push
	}
}

// Payout returns the multiple of the bet credited on a win.
func (m Model) Payout() float64 {
	if m == ModelFlat {
		return 1.0
	}
	return 1.5
}

// Apply applies a sampled outcome to the bankroll and returns the new
// bankroll. Pushes leave it unchanged.
func (m Model) Apply(o Outcome, bet, bankroll float64) float64 {
	switch o {
	case Win:
		return bankroll + bet*m.Payout()
	case Lose:
		return bankroll - bet
	}
	return bankroll
}
