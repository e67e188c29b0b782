// Package console plays a round over a plain line-oriented terminal: one
// shared screen that is cleared between players so nobody sees another
// player's hidden cards.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/muesli/termenv"
)

// Options configures a Console
type Options struct {
	Color  bool
	Logger *log.Logger
}

// Console drives a round from line input
type Console struct {
	in     *bufio.Scanner
	out    *termenv.Output
	logger *log.Logger
}

// New creates a console reading commands from in and writing to out
func New(in io.Reader, out io.Writer, opts Options) *Console {
	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.TrueColor
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:     bufio.NewScanner(in),
		out:    termenv.NewOutput(out, termenv.WithProfile(profile)),
		logger: logger.WithPrefix("console"),
	}
}

// Play runs every player's turn, resolves the dealer and prints the results.
// It returns the round's result for the caller to act on.
func (c *Console) Play(ctx context.Context, round *blackjack.Round) (*blackjack.Result, error) {
	for round.Phase() == blackjack.PhasePlayerTurn {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.playTurn(ctx, round); err != nil {
			return nil, err
		}
	}

	result, err := round.Finish()
	if err != nil {
		return nil, fmt.Errorf("failed to finish round: %w", err)
	}

	c.out.ClearScreen()
	c.printResult(result)
	return result, nil
}

func (c *Console) playTurn(ctx context.Context, round *blackjack.Round) error {
	player := round.Active()
	c.logger.Debug("Starting turn", "player", player)

	c.out.ClearScreen()
	c.printBoard(round)
	c.printf("It is now Player %d's turn.\n", player)
	c.println("Please press enter to confirm the player.")
	if _, err := c.readLine(); err != nil {
		return err
	}

	c.printHand(round, player)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println(c.styled("Would you like to `hit`, `stay`, or receive a `hint`?", "#FFD700"))
		line, err := c.readLine()
		if err != nil {
			return err
		}

		action, err := blackjack.ParseAction(line)
		if err != nil {
			c.logger.Debug("Rejected input", "input", line)
			c.printf("%q is not accepted.\nPlease enter hit, stay, or hint.\n", line)
			continue
		}

		res, err := round.Apply(action)
		if err != nil {
			return fmt.Errorf("player %d %s: %w", player, action, err)
		}

		switch action {
		case blackjack.Hit:
			c.printf("\nYou got a %s!\n", res.Card)
			c.printHand(round, player)
			if res.Busted {
				c.println(c.styled("You busted.", "#FF6B6B"))
				c.println("\nPlease press enter to switch to next player.")
				_, err := c.readLine()
				return err
			}
		case blackjack.Hint:
			c.printf("\nYou have a %.2f%% chance of busting on your next hit based on what you know.\n\n", res.BustChance)
		case blackjack.Stay:
			return nil
		}
	}
}

func (c *Console) printBoard(round *blackjack.Round) {
	for i, card := range round.FaceUpCards() {
		name := round.Participant(i).Name()
		c.printf("%s is showing a %s.\n", name, c.styled(card.String(), "#96CEB4"))
	}
	c.println("")
}

func (c *Console) printHand(round *blackjack.Round, player int) {
	c.printf("Your hand contains %s.\n", blackjack.FormatRanks(round.Hand(player)))
	c.printf("This sums up to %s.\n", round.Value(player))
}

func (c *Console) printResult(result *blackjack.Result) {
	c.printf("Dealer has %s for a total of %d.\n\n", blackjack.FormatRanks(result.DealerHand), result.DealerValue.Total)
	for _, p := range result.Players {
		reason := p.Reason()
		switch p.Outcome {
		case blackjack.Win:
			reason = c.styled(reason+"!", "#96CEB4")
		case blackjack.Lose:
			reason = c.styled(reason+".", "#FF6B6B")
		default:
			reason += "."
		}
		c.printf("Player %d has a total of %d, so they %s\n", p.Index, p.Value.Total, reason)
	}
	c.println("")
}

// readLine returns the next input line, or an error when input is exhausted
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return c.in.Text(), nil
}

// ErrInputClosed is returned when input ends before the round is over
var ErrInputClosed = errors.New("input closed before the round finished")

func (c *Console) styled(s, hex string) string {
	return c.out.String(s).Foreground(c.out.Color(hex)).Bold().String()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
