package blackjack

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

// stackedSource deals a fixed sequence of cards, for scripted scenarios
type stackedSource struct {
	t          testing.TB
	cards      []Rank
	next       int
	generation int
}

func stack(t testing.TB, cards ...Rank) *stackedSource {
	return &stackedSource{t: t, cards: cards, generation: 1}
}

func (s *stackedSource) Deal() Rank {
	if s.next >= len(s.cards) {
		s.t.Fatalf("stacked source exhausted after %d cards", len(s.cards))
	}
	card := s.cards[s.next]
	s.next++
	return card
}

func (s *stackedSource) Generation() int {
	return s.generation
}

func (s *stackedSource) dealt() int {
	return s.next
}

// recorder collects every published event
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

// newStackedRound creates a round with the given players dealt from cards
func newStackedRound(t *testing.T, players int, cards ...Rank) (*Round, *stackedSource) {
	t.Helper()
	src := stack(t, cards...)
	r, err := NewRound(players,
		WithCardSource(src),
		WithLogger(log.New(io.Discard)),
		WithClock(quartz.NewMock(t)),
	)
	require.NoError(t, err)
	return r, src
}
