package blackjack

import "fmt"

// Role distinguishes the dealer from the players seated at the table
type Role int

const (
	Dealer Role = iota
	Player
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case Dealer:
		return "dealer"
	case Player:
		return "player"
	default:
		return "unknown"
	}
}

// Hand is the ordered sequence of cards dealt to one participant. Cards are
// only ever appended; the first card is the face-up card.
type Hand struct {
	cards []Rank
}

// Cards returns a copy of the cards in deal order
func (h Hand) Cards() []Rank {
	out := make([]Rank, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// FaceUp returns the first card dealt. ok is false for an empty hand.
func (h Hand) FaceUp() (Rank, bool) {
	if len(h.cards) == 0 {
		return 0, false
	}
	return h.cards[0], true
}

// Participant is a seat at the table: the dealer at index 0 or a player at
// 1..N. It owns a hand and the valuation tracked alongside it.
type Participant struct {
	Index int
	Role  Role

	hand  Hand
	value Valuation
}

// NewParticipant creates an empty participant
func NewParticipant(index int, role Role) *Participant {
	return &Participant{Index: index, Role: role}
}

// Name returns a display name such as "Dealer" or "Player 2"
func (p *Participant) Name() string {
	if p.Role == Dealer {
		return "Dealer"
	}
	return fmt.Sprintf("Player %d", p.Index)
}

// Hit appends a card to the hand and updates the valuation. It returns the
// number of aces demoted by the new card.
func (p *Participant) Hit(r Rank) int {
	if !r.Valid() {
		panic(fmt.Sprintf("invalid rank %d dealt to %s", int(r), p.Name()))
	}
	p.hand.cards = append(p.hand.cards, r)
	return p.value.Add(r)
}

// Hand returns the participant's hand
func (p *Participant) Hand() Hand {
	return p.hand
}

// Value returns the current valuation
func (p *Participant) Value() Valuation {
	return p.value
}

// Busted returns true if the hand total exceeds 21
func (p *Participant) Busted() bool {
	return p.value.Busted()
}
