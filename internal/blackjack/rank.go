package blackjack

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank represents a card rank. Suits play no part in Blackjack so a card is
// fully described by its rank.
type Rank int

const (
	Ace Rank = iota + 1
	Two
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
)

// NumRanks is the number of distinct ranks in a suit.
const NumRanks = 13

// Valid returns true if the rank is within Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Points returns the hard point value of the rank: aces count 1 and
// ten/face cards count 10.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 1
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// ParseRank parses a rank from its display form. Accepts A, 2-10, T, J, Q, K
// in any case.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return Ace, nil
	case "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	return Rank(n), nil
}

// ParseRanks parses a comma or space separated list of ranks, e.g. "A, K, 5".
func ParseRanks(s string) ([]Rank, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	ranks := make([]Rank, 0, len(fields))
	for _, f := range fields {
		r, err := ParseRank(f)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// FormatRanks joins ranks for display, e.g. "A, 9, K".
func FormatRanks(ranks []Rank) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
