package blackjack

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a move a player can make on their turn
type Action int

const (
	Hit Action = iota + 1
	Stay
	Hint
)

// ErrUnknownAction is returned by ParseAction for unrecognised input
var ErrUnknownAction = errors.New("unknown action")

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stay:
		return "stay"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseAction converts player input into an Action. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseAction(input string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "hit":
		return Hit, nil
	case "stay":
		return Stay, nil
	case "hint":
		return Hint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, input)
}

// ActionResult describes what happened when the active player acted
type ActionResult struct {
	Player int
	Action Action

	// Set for Hit
	Card   Rank
	Value  Valuation
	Busted bool

	// Set for Hint, as a percentage in [0, 100]
	BustChance float64

	// TurnOver is true when the action ended the player's turn. Next is the
	// phase the round moved to as a result.
	TurnOver bool
	Next     Phase
}
