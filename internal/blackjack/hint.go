package blackjack

// EstimateBust approximates the percentage chance that the next card pushes
// total over 21, from the point of view of a player who can see every
// participant's face-up card plus their own hand.
//
// The population is every card fed into the shoe so far (one full deck per
// generation) minus the cards the player can see. Cards that were dealt face
// down to other participants stay in the population even though they are no
// longer in the shoe, so the estimate is biased towards the composition of a
// fresh deck.
func EstimateBust(generation int, faceUp []Rank, hand []Rank, total int) float64 {
	var counts [NumRanks]int
	for i := range counts {
		counts[i] = SuitsPerRank * generation
	}
	population := DeckSize * generation

	for _, r := range faceUp {
		if r.Valid() {
			counts[r-1]--
			population--
		}
	}

	// The first card of the hand is already counted with the face-up cards.
	for i := 1; i < len(hand); i++ {
		if hand[i].Valid() {
			counts[hand[i]-1]--
			population--
		}
	}

	if population <= 0 {
		return 0
	}

	// Rank r busts when its points exceed 21-total. Ranks ten and above all
	// count 10, so once the threshold rank is past Ten nothing can bust.
	threshold := Rank(BustLimit + 1 - total)
	if threshold < Ace {
		threshold = Ace
	}
	if threshold > Ten {
		return 0
	}

	toBust := 0
	for r := threshold; r <= King; r++ {
		toBust += max(counts[r-1], 0)
	}

	pct := 100 * float64(toBust) / float64(population)
	return min(max(pct, 0), 100)
}

// EstimateBust returns the bust hint for the participant at index i using the
// round's visible state.
func (r *Round) EstimateBust(i int) float64 {
	p := r.participant(i)
	return EstimateBust(r.source.Generation(), r.faceUp, p.hand.cards, p.value.Total)
}
