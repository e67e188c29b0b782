package statistics

import (
	"fmt"
	"math"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult is one player's outcome in one simulated round
type RoundResult struct {
	Seed         int64 // Seed of the round's shoe (for replay)
	Player       int   // Seat, 1-based
	Outcome      blackjack.Outcome
	Total        int  // Player's final total
	PlayerBusted bool // Player went over 21
	DealerBusted bool // Dealer went over 21
	Cards        int  // Cards in the player's final hand
}

// SeatStats tracks results for a specific seat at the table
type SeatStats struct {
	Rounds int
	Sum    float64
	Wins   int
}

// Statistics aggregates simulated player outcomes. Net is in betting units:
// +1 for a win, -1 for a loss and 0 for a tie.
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64 // Sum of squares for variance calculation

	Wins   int
	Losses int
	Ties   int

	PlayerBusts int // Losses caused by the player busting
	DealerBusts int // Wins caused by the dealer busting
	Hits        int // Cards drawn beyond the initial two

	Seats map[int]*SeatStats
}

// Add incorporates a new result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Outcome.Net())
	s.Rounds++
	s.Sum += net
	s.Sum2 += net * net

	switch result.Outcome {
	case blackjack.Win:
		s.Wins++
		if result.DealerBusted {
			s.DealerBusts++
		}
	case blackjack.Lose:
		s.Losses++
		if result.PlayerBusted {
			s.PlayerBusts++
		}
	default:
		s.Ties++
	}
	if result.Cards > 2 {
		s.Hits += result.Cards - 2
	}

	if s.Seats == nil {
		s.Seats = make(map[int]*SeatStats)
	}
	seat := s.Seats[result.Player]
	if seat == nil {
		seat = &SeatStats{}
		s.Seats[result.Player] = seat
	}
	seat.Rounds++
	seat.Sum += net
	if result.Outcome == blackjack.Win {
		seat.Wins++
	}
}

// Merge folds other into s, used to combine per-worker partials
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.Hits += other.Hits

	for seat, o := range other.Seats {
		if s.Seats == nil {
			s.Seats = make(map[int]*SeatStats)
		}
		mine := s.Seats[seat]
		if mine == nil {
			mine = &SeatStats{}
			s.Seats[seat] = mine
		}
		mine.Rounds += o.Rounds
		mine.Sum += o.Sum
		mine.Wins += o.Wins
	}
}

// Mean returns the average net units per player-round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of player-rounds won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of player-rounds lost
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// TieRate returns the fraction of player-rounds tied
func (s *Statistics) TieRate() float64 {
	return s.rate(s.Ties)
}

// BustRate returns the fraction of player-rounds lost to a player bust
func (s *Statistics) BustRate() float64 {
	return s.rate(s.PlayerBusts)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// SeatMean returns the mean result for a seat (1-based)
func (s *Statistics) SeatMean(seat int) float64 {
	ss, ok := s.Seats[seat]
	if !ok || ss.Rounds == 0 {
		return 0
	}
	return ss.Sum / float64(ss.Rounds)
}

// Validate checks that the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if s.Wins+s.Losses+s.Ties != s.Rounds {
		return fmt.Errorf("outcomes (%d wins, %d losses, %d ties) do not add up to %d rounds",
			s.Wins, s.Losses, s.Ties, s.Rounds)
	}
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}
	if s.DealerBusts > s.Wins {
		return fmt.Errorf("dealer busts (%d) exceed wins (%d)", s.DealerBusts, s.Wins)
	}
	if net := float64(s.Wins - s.Losses); math.Abs(net-s.Sum) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum=%.6f, wins-losses=%.0f", s.Sum, net)
	}

	seatRounds := 0
	for _, ss := range s.Seats {
		seatRounds += ss.Rounds
	}
	if seatRounds != s.Rounds {
		return fmt.Errorf("seat rounds total (%d) does not match total rounds (%d)", seatRounds, s.Rounds)
	}
	return nil
}
