package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource deals a scripted sequence of cards
type fixedSource struct {
	cards []blackjack.Rank
	next  int
}

func (s *fixedSource) Deal() blackjack.Rank {
	card := s.cards[s.next]
	s.next++
	return card
}

func (s *fixedSource) Generation() int { return 1 }

func newModel(t *testing.T, players int, cards ...blackjack.Rank) (*Model, *blackjack.Round) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	m := New(logger)

	bus := blackjack.NewEventBus()
	bus.Subscribe(m)

	round, err := blackjack.NewRound(players,
		blackjack.WithCardSource(&fixedSource{cards: cards}),
		blackjack.WithEventBus(bus),
		blackjack.WithLogger(logger),
	)
	require.NoError(t, err)
	m.Attach(round)
	return m, round
}

// submit types text into the input and presses enter
func submit(m *Model, text string) tea.Cmd {
	m.actionInput.SetValue(text)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModelPlaysRound(t *testing.T) {
	// Dealer 7/9 draws 6 and busts; player 5/6 hits a 10 and stays
	m, round := newModel(t, 1,
		blackjack.Seven, blackjack.Nine,
		blackjack.Five, blackjack.Six,
		blackjack.Ten, blackjack.Six)

	assert.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), "It is now Player 1's turn.")
	assert.NotContains(t, m.View(), "Total:", "hand stays hidden until confirmed")

	submit(m, "")
	assert.Equal(t, screenTurn, m.screen)
	assert.Contains(t, m.View(), "Total: 11")

	submit(m, "dance")
	assert.Contains(t, m.feedback, `"dance" is not accepted.`)
	assert.Equal(t, blackjack.PhasePlayerTurn, round.Phase())

	submit(m, "hint")
	assert.Contains(t, m.feedback, "0.00% chance of busting")

	submit(m, "hit")
	assert.Contains(t, m.feedback, "You got a 10!")
	assert.Contains(t, m.View(), "Total: 21")

	submit(m, "stay")
	require.Equal(t, screenResults, m.screen)
	require.NotNil(t, m.Result())
	assert.Equal(t, blackjack.Win, m.Result().Players[0].Outcome)

	view := m.View()
	assert.Contains(t, view, "Dealer has 7, 9, 6 for a total of 22.")
	assert.Contains(t, view, "wins due to the dealer busting")

	cmd := submit(m, "")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NoError(t, m.Err())
}

func TestModelBustPassesKeyboard(t *testing.T) {
	// Dealer 10/8, player 1 K/Q busts on a 5, player 2 stays on 19
	m, _ := newModel(t, 2,
		blackjack.Ten, blackjack.Eight,
		blackjack.King, blackjack.Queen,
		blackjack.Ten, blackjack.Nine,
		blackjack.Five)

	submit(m, "")
	submit(m, "hit")
	assert.Equal(t, screenTurnOver, m.screen)
	assert.Contains(t, m.View(), "You busted.")
	assert.Contains(t, m.View(), "Player 1 hand:")

	submit(m, "")
	assert.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), "It is now Player 2's turn.")

	submit(m, "")
	submit(m, "stay")
	require.NotNil(t, m.Result())
	assert.Equal(t, blackjack.Lose, m.Result().Players[0].Outcome)
	assert.Equal(t, blackjack.Win, m.Result().Players[1].Outcome)
}

func TestModelLogOnlyShowsPublicEvents(t *testing.T) {
	m, _ := newModel(t, 1,
		blackjack.Ten, blackjack.Eight,
		blackjack.Two, blackjack.Three)

	submit(m, "")
	submit(m, "stay")

	entries := m.GameLog()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Dealt 1 player(s) and the dealer.", entries[0])
	assert.Contains(t, entries, "Player 1 to act.")
	assert.Contains(t, entries, "Dealer reveals 10, 8: 18.")
	assert.Contains(t, entries, "Player 1 loses.")
	for _, e := range entries {
		assert.NotContains(t, e, "2, 3", "hidden cards must not reach the shared log")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newModel(t, 1, blackjack.Ten, blackjack.Eight, blackjack.Two, blackjack.Three)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.Result())
	assert.Empty(t, m.View())
}

func TestModelWindowSize(t *testing.T) {
	m, _ := newModel(t, 1, blackjack.Ten, blackjack.Eight, blackjack.Two, blackjack.Three)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
	assert.Contains(t, m.View(), "Player 1 to act.")
}
