package blackjack

// Outcome is a player's result against the dealer
type Outcome int

const (
	Lose Outcome = iota
	Tie
	Win
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Net returns the unit swing of the outcome: +1 for a win, -1 for a loss,
// 0 for a push.
func (o Outcome) Net() int {
	switch o {
	case Win:
		return 1
	case Lose:
		return -1
	default:
		return 0
	}
}

// Decide compares a player's hand against the dealer's. A busted player
// loses even if the dealer also busts.
func Decide(player, dealer Valuation) Outcome {
	switch {
	case player.Busted():
		return Lose
	case dealer.Busted():
		return Win
	case player.Total > dealer.Total:
		return Win
	case player.Total == dealer.Total:
		return Tie
	default:
		return Lose
	}
}

// PlayerResult is the final standing of one player
type PlayerResult struct {
	Index        int
	Hand         []Rank
	Value        Valuation
	DealerBusted bool
	Outcome      Outcome
}

// Busted returns true if the player went over 21
func (pr PlayerResult) Busted() bool {
	return pr.Value.Busted()
}

// Reason describes the outcome in a short phrase such as
// "wins due to the dealer busting".
func (pr PlayerResult) Reason() string {
	switch {
	case pr.Outcome == Lose && pr.Busted():
		return "loses due to busting"
	case pr.Outcome == Lose:
		return "loses"
	case pr.Outcome == Win && pr.DealerBusted:
		return "wins due to the dealer busting"
	case pr.Outcome == Win:
		return "wins"
	default:
		return "ties with the dealer"
	}
}

// Result is the terminal value of a round, returned to the caller instead of
// ending the process.
type Result struct {
	DealerHand  []Rank
	DealerValue Valuation
	Players     []PlayerResult
	Generation  int
}

// Player returns the result for player index i (1-based). ok is false if
// there is no such player.
func (r *Result) Player(i int) (PlayerResult, bool) {
	if i < 1 || i > len(r.Players) {
		return PlayerResult{}, false
	}
	return r.Players[i-1], true
}
