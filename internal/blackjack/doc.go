// Package blackjack implements the rules and probability engine for a
// single-shoe game of Blackjack with one dealer and any number of players.
//
// The main type is Round, which deals the opening hands, runs each player's
// turn in seat order, plays the dealer's fixed policy and compares the final
// totals.
//
// # Basic Usage
//
//	r, err := blackjack.NewRound(2, blackjack.WithRNG(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	for r.Phase() == blackjack.PhasePlayerTurn {
//	    res, err := r.Apply(blackjack.Hit)
//	    ...
//	}
//	result, err := r.Finish()
//
// # Deterministic Testing
//
// Pass a seeded RNG with WithRNG, or replace the shoe altogether with
// WithCardSource to stack the exact sequence of cards. Cards are always drawn
// in the same order: two per participant during setup (dealer first), then
// each player's hits in seat order, then the dealer's draws.
//
// # Architecture
//
//   - Shoe: per-rank card counts, refilled with a fresh deck when empty
//   - Valuation: incremental total with soft/hard ace bookkeeping
//   - EstimateBust: the hint offered to players
//   - Round: the turn state machine and outcome comparison
//   - EventBus: synchronous notifications for front-ends
package blackjack
