// Package deck implements a multi-deck blackjack shoe. The shoe only
// cares about ranks; suits are irrelevant to counting.
package deck

import (
	"lukechampine.com/frand"
)

// Rank is a card rank. Ten, jack, queen and king are distinct ranks
// even though they score identically, so that rank frequencies in the
// shoe match a real deck.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	NumRanks = 13
)

const (
	// CardsPerDeck is the number of cards in a single deck.
	CardsPerDeck = 52
	// ReshuffleThreshold is the cut point; the shoe reshuffles before
	// any draw that would come from fewer than this many cards.
	ReshuffleThreshold = 52
)

var rankNames = [NumRanks]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A",
}

func (r Rank) String() string {
	return rankNames[r]
}

// CountValue returns the Hi-Lo value of the rank: +1 for 2-6, 0 for
// 7-9, -1 for tens and aces.
func (r Rank) CountValue() int {
	switch {
	case r <= Six:
		return 1
	case r <= Nine:
		return 0
	default:
		return -1
	}
}

// Shoe is a shuffled multi-deck pile of cards. It is not safe for
// concurrent use; each simulation trajectory owns its own shoe.
type Shoe struct {
	cards    []Rank
	numDecks int
	rng      *frand.RNG
}

// NewShoe creates a full shoe of 52*numDecks cards, shuffled with rng.
// The rng is retained for reshuffles.
func NewShoe(numDecks int, rng *frand.RNG) *Shoe {
	s := &Shoe{
		cards:    make([]Rank, 0, CardsPerDeck*numDecks),
		numDecks: numDecks,
		rng:      rng,
	}
	s.Reshuffle()
	return s
}

// Reshuffle resets the shoe to a full 52*numDecks-card multiset and
// performs a fresh uniform permutation. Any count-tracking state must
// be reset by the caller in lockstep.
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for d := 0; d < s.numDecks; d++ {
		for r := Rank(0); r < NumRanks; r++ {
			s.cards = append(s.cards, r, r, r, r)
		}
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// NeedsReshuffle returns true when the cut card has been reached,
// i.e. fewer than ReshuffleThreshold cards remain.
func (s *Shoe) NeedsReshuffle() bool {
	return len(s.cards) < ReshuffleThreshold
}

// Draw removes and returns the top card. Callers must check
// NeedsReshuffle first; drawing from an empty shoe is a contract
// violation and panics.
func (s *Shoe) Draw() Rank {
	if len(s.cards) == 0 {
		panic("draw from empty shoe; caller must check NeedsReshuffle")
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c
}

// CardsRemaining returns the number of undealt cards.
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// NumDecks returns the number of decks the shoe was built from.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}
