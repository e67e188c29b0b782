package blackjack

import (
	rand "math/rand/v2"
)

// SuitsPerRank is how many cards of each rank a refill adds.
const SuitsPerRank = 4

// DeckSize is the number of cards added by one refill.
const DeckSize = NumRanks * SuitsPerRank

// CardSource supplies cards to a round. Generation reports how many full
// decks have been fed into the source so far, which the hint estimator uses
// as its population baseline.
type CardSource interface {
	Deal() Rank
	Generation() int
}

// Shoe is the shared pool of undealt cards. It tracks remaining counts per
// rank and refills itself with a fresh deck whenever it runs dry, so it never
// fails to deal.
type Shoe struct {
	counts     [NumRanks]int
	remaining  int
	generation int
	rng        *rand.Rand
}

// NewShoe creates an empty shoe. The first Deal triggers the first refill.
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	return &Shoe{rng: rng}
}

// Refill sets every rank back to a full suit complement and starts a new
// generation.
func (s *Shoe) Refill() {
	for i := range s.counts {
		s.counts[i] = SuitsPerRank
	}
	s.remaining = DeckSize
	s.generation++
}

// Deal removes a random card from the shoe. Each remaining card is equally
// likely, so rank r is drawn with probability Count(r)/Remaining().
func (s *Shoe) Deal() Rank {
	if s.remaining == 0 {
		s.Refill()
	}

	n := s.rng.IntN(s.remaining)
	for i, c := range s.counts {
		if n < c {
			s.counts[i]--
			s.remaining--
			return Rank(i + 1)
		}
		n -= c
	}

	// Unreachable while remaining == sum(counts)
	panic("shoe counts out of sync with remaining total")
}

// Count returns the number of cards of rank r left in the shoe
func (s *Shoe) Count(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return s.counts[r-1]
}

// Remaining returns the number of cards left before the next refill
func (s *Shoe) Remaining() int {
	return s.remaining
}

// Generation returns how many refills have happened
func (s *Shoe) Generation() int {
	return s.generation
}
