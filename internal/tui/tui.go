// Package tui is the Bubble Tea front-end: one shared terminal passed between
// players, with the active hand hidden until the player confirms they are at
// the keyboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
)

// ErrAborted is returned by Play when the user quits before the round ends
var ErrAborted = errors.New("round aborted")

type screen int

const (
	screenConfirm screen = iota // waiting for the next player to sit down
	screenTurn                  // active player choosing an action
	screenTurnOver              // player busted, waiting to pass the keyboard
	screenResults
)

// Model is the Bubble Tea model for a single round
type Model struct {
	round  *blackjack.Round
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model
	focusedPane int // 0 = log, 1 = input

	gameLog  []string
	feedback string
	screen   screen
	result   *blackjack.Result
	err      error
	quitting bool

	width  int
	height int
}

// New creates a model. Subscribe it to the round's event bus before the
// round is created so the log includes the deal, then Attach the round.
func New(logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "hit, stay or hint"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
	}
}

// Attach sets the round the model drives
func (m *Model) Attach(round *blackjack.Round) {
	m.round = round
	m.screen = screenConfirm
	if round.Phase() != blackjack.PhasePlayerTurn {
		m.finish()
	}
}

// Result returns the round result once the dealer has been resolved
func (m *Model) Result() *blackjack.Result {
	return m.result
}

// Err returns any engine error that stopped the model
func (m *Model) Err() error {
	return m.err
}

// OnEvent records public round events in the log. Hidden cards are never
// written here since the screen is shared.
func (m *Model) OnEvent(event blackjack.Event) {
	switch e := event.(type) {
	case blackjack.RoundStartEvent:
		m.addLogEntry(fmt.Sprintf("Dealt %d player(s) and the dealer.", e.Players))
	case blackjack.TurnStartEvent:
		m.addLogEntry(fmt.Sprintf("Player %d to act.", e.Player))
	case blackjack.TurnEndEvent:
		m.addLogEntry(fmt.Sprintf("Player %d is done.", e.Player))
	case blackjack.DealerResolvedEvent:
		m.addLogEntry(fmt.Sprintf("Dealer reveals %s: %d.", blackjack.FormatRanks(e.Hand), e.Value.Total))
	case blackjack.RoundEndEvent:
		for _, p := range e.Result.Players {
			m.addLogEntry(fmt.Sprintf("Player %d %s.", p.Index, p.Reason()))
		}
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if cmd := m.handleEnter(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleEnter advances the screen state machine
func (m *Model) handleEnter(input string) tea.Cmd {
	switch m.screen {
	case screenConfirm:
		m.feedback = ""
		m.screen = screenTurn

	case screenTurn:
		action, err := blackjack.ParseAction(input)
		if err != nil {
			m.feedback = ErrorStyle.Render(fmt.Sprintf("%q is not accepted. Please enter hit, stay, or hint.", input))
			return nil
		}
		res, err := m.round.Apply(action)
		if err != nil {
			m.err = err
			m.logger.Error("Failed to apply action", "action", action, "error", err)
			return tea.Quit
		}
		m.applyResult(res)

	case screenTurnOver:
		m.nextTurn()

	case screenResults:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) applyResult(res blackjack.ActionResult) {
	switch res.Action {
	case blackjack.Hit:
		m.feedback = fmt.Sprintf("You got a %s!", res.Card)
		if res.Busted {
			m.feedback += " " + ErrorStyle.Render("You busted.")
			m.screen = screenTurnOver
		}
	case blackjack.Hint:
		m.feedback = WarningStyle.Render(fmt.Sprintf(
			"You have a %.2f%% chance of busting on your next hit based on what you know.", res.BustChance))
	case blackjack.Stay:
		m.nextTurn()
	}
}

func (m *Model) nextTurn() {
	m.feedback = ""
	if m.round.Phase() == blackjack.PhasePlayerTurn {
		m.screen = screenConfirm
		return
	}
	m.finish()
}

func (m *Model) finish() {
	result, err := m.round.Finish()
	if err != nil {
		m.err = err
		m.logger.Error("Failed to finish round", "error", err)
		return
	}
	m.result = result
	m.screen = screenResults
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.round == nil {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")

	logPane := m.renderLogPane()
	if logPane != "" {
		b.WriteString(logPane)
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(m.helpText()))
	return b.String()
}

func (m *Model) renderBoard() string {
	var b strings.Builder
	for i, card := range m.round.FaceUpCards() {
		name := m.round.Participant(i).Name()
		line := fmt.Sprintf("%-10s %s", name, CardStyle.Render(card.String()))
		if i == m.round.Active() {
			line = ActionsStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderBody() string {
	var b strings.Builder
	switch m.screen {
	case screenConfirm:
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("It is now Player %d's turn.", m.round.Active())))
		b.WriteString("\n")
		b.WriteString("Press enter to confirm the player.\n")

	case screenTurn, screenTurnOver:
		player := m.round.Active()
		if m.screen == screenTurnOver {
			player = m.lastPlayer()
		}
		b.WriteString(m.renderHand(player))
		if m.feedback != "" {
			b.WriteString(m.feedback)
			b.WriteString("\n")
		}
		if m.screen == screenTurn {
			b.WriteString(ActionsStyle.Render("Actions: [hit] [stay] [hint]"))
			b.WriteString("\n")
			b.WriteString(m.actionInput.View())
			b.WriteString("\n")
		} else {
			b.WriteString("Press enter to switch to the next player.\n")
		}

	case screenResults:
		b.WriteString(m.renderResults())
	}
	return b.String()
}

// lastPlayer is the player whose turn just ended on a bust
func (m *Model) lastPlayer() int {
	if active := m.round.Active(); active > 1 {
		return active - 1
	}
	return m.round.Players()
}

func (m *Model) renderHand(player int) string {
	cards := m.round.Hand(player)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = CardStyle.Render(c.String())
	}
	return HandInfoStyle.Render(fmt.Sprintf("Player %d hand: ", player)) +
		strings.Join(rendered, " ") + "\n" +
		fmt.Sprintf("Total: %s\n", m.round.Value(player))
}

func (m *Model) renderResults() string {
	if m.result == nil {
		return ErrorStyle.Render("Round did not finish.") + "\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Dealer has %s for a total of %d.\n\n",
		blackjack.FormatRanks(m.result.DealerHand), m.result.DealerValue.Total))
	for _, p := range m.result.Players {
		line := fmt.Sprintf("Player %d has a total of %d, so they %s.", p.Index, p.Value.Total, p.Reason())
		switch p.Outcome {
		case blackjack.Win:
			line = SuccessStyle.Render(line)
		case blackjack.Lose:
			line = ErrorStyle.Render(line)
		default:
			line = WarningStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderLogPane() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(min(len(m.gameLog), m.height/3), 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.focusedPane == 1 {
		m.logViewport.GotoBottom()
		return PaneStyle.Render(m.logViewport.View())
	}
	return FocusedPaneStyle.Render(m.logViewport.View())
}

func (m *Model) helpText() string {
	switch {
	case m.screen == screenResults:
		return "Enter to exit"
	case m.focusedPane == 0:
		return "Log focused: ↑↓ scroll, Tab to input"
	default:
		return "Enter to submit • Tab to scroll log • Ctrl+C to quit"
	}
}

func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
}

// GameLog returns a copy of the public log lines
func (m *Model) GameLog() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Play runs the model against round until the round ends or the user quits
func Play(ctx context.Context, m *Model, round *blackjack.Round) (*blackjack.Result, error) {
	m.Attach(round)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, ErrAborted
	}
	return m.result, nil
}
