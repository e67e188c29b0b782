package blackjack

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DealerStandsOn is the total at which the dealer stops drawing. Soft and
// hard totals are treated alike, so the dealer hits a soft 16 and stands on
// a soft 17.
const DealerStandsOn = 17

// Phase is the stage a round is in
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlayerTurn
	PhaseDealer
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealer:
		return "dealer"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrNoPlayers is returned when a round is created without any players
	ErrNoPlayers = errors.New("at least one player is required")

	// ErrNotPlayerTurn is returned when a player action arrives outside the
	// player phase
	ErrNotPlayerTurn = errors.New("no player is due to act")

	// ErrWrongPhase is returned when a dealer or outcome operation is called
	// before the round has reached it
	ErrWrongPhase = errors.New("operation not valid in current phase")
)

// Round coordinates a single game: setup, each player's turn in seat order,
// the dealer's fixed drawing policy and the final comparison. A Round is not
// safe for concurrent use; turns are strictly sequential.
type Round struct {
	participants []*Participant
	faceUp       []Rank
	active       int
	phase        Phase

	source CardSource
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock

	result *Result
}

// NewRound seats a dealer and numPlayers players, deals two cards to each in
// seat order starting with the dealer, and hands the turn to player 1.
//
//	// Production - time-seeded shoe
//	r, err := blackjack.NewRound(2, blackjack.WithRNG(randutil.New(seed)))
//
//	// Testing - stacked cards
//	r, err := blackjack.NewRound(1, blackjack.WithCardSource(src))
func NewRound(numPlayers int, opts ...RoundOption) (*Round, error) {
	if numPlayers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoPlayers, numPlayers)
	}
	cfg := newRoundConfig(opts)

	r := &Round{
		participants: make([]*Participant, numPlayers+1),
		faceUp:       make([]Rank, numPlayers+1),
		active:       -1,
		phase:        PhaseSetup,
		source:       cfg.source,
		logger:       cfg.logger.WithPrefix("round"),
		bus:          cfg.bus,
		clock:        cfg.clock,
	}

	r.participants[0] = NewParticipant(0, Dealer)
	for i := 1; i <= numPlayers; i++ {
		r.participants[i] = NewParticipant(i, Player)
	}

	r.setup()
	return r, nil
}

func (r *Round) setup() {
	r.logger.Debug("Dealing opening hands", "players", r.Players())

	for _, p := range r.participants {
		card := r.deal(p)
		r.faceUp[p.Index] = card
		r.deal(p)
	}

	faceUp := make([]Rank, len(r.faceUp))
	copy(faceUp, r.faceUp)
	r.bus.Publish(RoundStartEvent{Players: r.Players(), FaceUp: faceUp, At: r.clock.Now()})

	r.phase = PhasePlayerTurn
	r.startTurn(1)
}

// deal moves one card from the source into a participant's hand
func (r *Round) deal(p *Participant) Rank {
	card := r.source.Deal()
	demoted := p.Hit(card)

	r.logger.Debug("Dealt card",
		"to", p.Name(),
		"card", card,
		"total", p.value.Total,
		"soft", p.value.Soft,
		"demoted", demoted)

	r.bus.Publish(CardDealtEvent{
		Participant: p.Index,
		Card:        card,
		FaceUp:      p.hand.Len() == 1,
		Value:       p.value,
		Generation:  r.source.Generation(),
		At:          r.clock.Now(),
	})
	return card
}

func (r *Round) startTurn(i int) {
	r.active = i
	r.logger.Debug("Turn started", "player", i)
	r.bus.Publish(TurnStartEvent{Player: i, At: r.clock.Now()})
}

// endTurn advances to the next player, or to the dealer once every player
// has acted.
func (r *Round) endTurn() Phase {
	p := r.participants[r.active]
	r.bus.Publish(TurnEndEvent{Player: p.Index, Value: p.value, Busted: p.Busted(), At: r.clock.Now()})

	next := r.active + 1
	if next >= len(r.participants) {
		r.active = -1
		r.phase = PhaseDealer
		r.logger.Debug("All players done, dealer to act")
		return r.phase
	}
	r.startTurn(next)
	return r.phase
}

// participant returns the participant at index i, panicking on an invalid
// index since that is a caller bug rather than a game condition.
func (r *Round) participant(i int) *Participant {
	if i < 0 || i >= len(r.participants) {
		panic(fmt.Sprintf("participant index %d out of range [0,%d]", i, len(r.participants)-1))
	}
	return r.participants[i]
}

// Players returns the number of players, excluding the dealer
func (r *Round) Players() int {
	return len(r.participants) - 1
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	return r.phase
}

// Active returns the index of the player whose turn it is, or -1 outside the
// player phase.
func (r *Round) Active() int {
	return r.active
}

// Participant returns the participant at index i; 0 is the dealer.
func (r *Round) Participant(i int) *Participant {
	return r.participant(i)
}

// Hand returns a snapshot of the cards held by participant i
func (r *Round) Hand(i int) []Rank {
	return r.participant(i).hand.Cards()
}

// FaceUp returns the face-up card recorded for participant i during setup
func (r *Round) FaceUp(i int) Rank {
	r.participant(i)
	return r.faceUp[i]
}

// FaceUpCards returns every participant's face-up card, dealer first
func (r *Round) FaceUpCards() []Rank {
	out := make([]Rank, len(r.faceUp))
	copy(out, r.faceUp)
	return out
}

// Value returns the current valuation of participant i
func (r *Round) Value(i int) Valuation {
	return r.participant(i).value
}

// Generation returns how many decks the card source has gone through
func (r *Round) Generation() int {
	return r.source.Generation()
}

// Apply performs an action for the active player.
func (r *Round) Apply(action Action) (ActionResult, error) {
	switch action {
	case Hit:
		return r.Hit()
	case Stay:
		return r.Stay()
	case Hint:
		return r.Hint()
	default:
		return ActionResult{}, fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
}

// Hit deals one card to the active player. A bust ends the turn.
func (r *Round) Hit() (ActionResult, error) {
	if r.phase != PhasePlayerTurn {
		return ActionResult{}, fmt.Errorf("hit: %w (phase %s)", ErrNotPlayerTurn, r.phase)
	}
	p := r.participants[r.active]
	card := r.deal(p)

	res := ActionResult{
		Player: p.Index,
		Action: Hit,
		Card:   card,
		Value:  p.value,
		Busted: p.Busted(),
		Next:   r.phase,
	}
	if res.Busted {
		r.logger.Debug("Player busted", "player", p.Index, "total", p.value.Total)
		res.TurnOver = true
		res.Next = r.endTurn()
	}
	return res, nil
}

// Stay ends the active player's turn without changing their hand.
func (r *Round) Stay() (ActionResult, error) {
	if r.phase != PhasePlayerTurn {
		return ActionResult{}, fmt.Errorf("stay: %w (phase %s)", ErrNotPlayerTurn, r.phase)
	}
	p := r.participants[r.active]
	r.logger.Debug("Player stays", "player", p.Index, "total", p.value.Total)

	return ActionResult{
		Player:   p.Index,
		Action:   Stay,
		Value:    p.value,
		TurnOver: true,
		Next:     r.endTurn(),
	}, nil
}

// Hint estimates the active player's chance of busting on the next card.
// The turn continues.
func (r *Round) Hint() (ActionResult, error) {
	if r.phase != PhasePlayerTurn {
		return ActionResult{}, fmt.Errorf("hint: %w (phase %s)", ErrNotPlayerTurn, r.phase)
	}
	p := r.participants[r.active]
	chance := r.EstimateBust(p.Index)
	r.logger.Debug("Hint requested", "player", p.Index, "total", p.value.Total, "bust_chance", chance)
	r.bus.Publish(HintEvent{Player: p.Index, BustChance: chance, At: r.clock.Now()})

	return ActionResult{
		Player:     p.Index,
		Action:     Hint,
		Value:      p.value,
		BustChance: chance,
		Next:       r.phase,
	}, nil
}

// ResolveDealer plays the dealer's hand: draw while the total is below 17,
// regardless of soft aces. It returns the dealer's final valuation.
func (r *Round) ResolveDealer() (Valuation, error) {
	if r.phase != PhaseDealer {
		return Valuation{}, fmt.Errorf("resolve dealer: %w (phase %s)", ErrWrongPhase, r.phase)
	}
	dealer := r.participants[0]
	for dealer.value.Total < DealerStandsOn {
		r.deal(dealer)
	}

	r.logger.Debug("Dealer stands", "total", dealer.value.Total, "busted", dealer.Busted())
	r.bus.Publish(DealerResolvedEvent{Hand: dealer.hand.Cards(), Value: dealer.value, At: r.clock.Now()})
	r.phase = PhaseComplete
	return dealer.value, nil
}

// Outcomes compares every player against the dealer. It is only valid once
// the dealer has been resolved.
func (r *Round) Outcomes() ([]PlayerResult, error) {
	if r.phase != PhaseComplete {
		return nil, fmt.Errorf("outcomes: %w (phase %s)", ErrWrongPhase, r.phase)
	}
	dealer := r.participants[0]
	results := make([]PlayerResult, 0, r.Players())
	for _, p := range r.participants[1:] {
		results = append(results, PlayerResult{
			Index:        p.Index,
			Hand:         p.hand.Cards(),
			Value:        p.value,
			DealerBusted: dealer.Busted(),
			Outcome:      Decide(p.value, dealer.value),
		})
	}
	return results, nil
}

// Finish resolves the dealer if needed and returns the terminal result of the
// round. Calling it again returns the same result.
func (r *Round) Finish() (*Result, error) {
	if r.result != nil {
		return r.result, nil
	}
	if r.phase == PhaseDealer {
		if _, err := r.ResolveDealer(); err != nil {
			return nil, err
		}
	}
	players, err := r.Outcomes()
	if err != nil {
		return nil, fmt.Errorf("finish: %w", err)
	}

	dealer := r.participants[0]
	r.result = &Result{
		DealerHand:  dealer.hand.Cards(),
		DealerValue: dealer.value,
		Players:     players,
		Generation:  r.source.Generation(),
	}
	r.bus.Publish(RoundEndEvent{Result: r.result, At: r.clock.Now()})
	return r.result, nil
}
