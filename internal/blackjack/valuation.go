package blackjack

import "fmt"

// BustLimit is the highest total a hand can hold without busting.
const BustLimit = 21

// Valuation is the running score of a hand. Soft counts aces currently
// valued at 11, Hard counts aces that have been demoted to 1.
type Valuation struct {
	Total int
	Soft  int
	Hard  int
}

// Add scores one more card and demotes soft aces until the total is back to
// 21 or below, or no soft aces remain. It returns the number of demotions.
func (v *Valuation) Add(r Rank) int {
	if r == Ace {
		v.Total += 11
		v.Soft++
	} else {
		v.Total += r.Points()
	}

	demoted := 0
	for v.Total > BustLimit && v.Soft > 0 {
		v.Soft--
		v.Hard++
		v.Total -= 10
		demoted++
	}
	return demoted
}

// Busted returns true once the total exceeds 21 with no soft ace left to demote
func (v Valuation) Busted() bool {
	return v.Total > BustLimit
}

// Aces returns the total number of aces in the hand
func (v Valuation) Aces() int {
	return v.Soft + v.Hard
}

// IsSoft returns true when at least one ace is still counted as 11
func (v Valuation) IsSoft() bool {
	return v.Soft > 0
}

// String renders the valuation, e.g. "21 (1 ace as 11, 1 ace as 1)"
func (v Valuation) String() string {
	switch {
	case v.Soft > 0 && v.Hard > 0:
		return fmt.Sprintf("%d (%d ace(s) as 11, %d ace(s) as 1)", v.Total, v.Soft, v.Hard)
	case v.Soft > 0:
		return fmt.Sprintf("%d (%d ace(s) as 11)", v.Total, v.Soft)
	case v.Hard > 0:
		return fmt.Sprintf("%d (%d ace(s) as 1)", v.Total, v.Hard)
	default:
		return fmt.Sprintf("%d", v.Total)
	}
}

// Evaluate scores a complete hand from scratch. It always agrees with a
// Valuation built by calling Add for each card in order.
func Evaluate(ranks []Rank) Valuation {
	var v Valuation
	raw := 0
	for _, r := range ranks {
		if r == Ace {
			raw += 11
			v.Soft++
		} else {
			raw += r.Points()
		}
	}

	// Each demotion removes 10, so this is the smallest number that brings
	// raw back under the limit, capped at the aces available.
	if over := raw - BustLimit; over > 0 {
		need := (over + 9) / 10
		v.Hard = min(need, v.Soft)
		v.Soft -= v.Hard
	}
	v.Total = raw - 10*v.Hard
	return v
}
