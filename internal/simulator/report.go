package simulator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// Render formats the report as plain-text tables
func (r *Report) Render() (string, error) {
	s := r.Stats
	low, high := s.ConfidenceInterval95()

	summary := pterm.TableData{
		{"Metric", "Value"},
		{"Rounds", fmt.Sprintf("%d", r.Config.Rounds)},
		{"Players", fmt.Sprintf("%d", r.Config.Players)},
		{"Policy", fmt.Sprintf("hit below %d, max risk %.1f%%", r.Config.StandOn, r.Config.MaxRisk)},
		{"Seed", fmt.Sprintf("%d", r.Seed)},
		{"Player-rounds", fmt.Sprintf("%d", s.Rounds)},
		{"Wins", fmt.Sprintf("%d (%.2f%%)", s.Wins, s.WinRate()*100)},
		{"Losses", fmt.Sprintf("%d (%.2f%%)", s.Losses, s.LossRate()*100)},
		{"Ties", fmt.Sprintf("%d (%.2f%%)", s.Ties, s.TieRate()*100)},
		{"Player busts", fmt.Sprintf("%d (%.2f%%)", s.PlayerBusts, s.BustRate()*100)},
		{"Dealer busts", fmt.Sprintf("%d", s.DealerBusts)},
		{"Mean", fmt.Sprintf("%+.4f units/round", s.Mean())},
		{"Std dev", fmt.Sprintf("%.4f", s.StdDev())},
		{"Std error", fmt.Sprintf("%.4f", s.StdError())},
		{"95% CI", fmt.Sprintf("[%+.4f, %+.4f]", low, high)},
		{"Elapsed", r.Elapsed.String()},
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(summary).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}

	if len(s.Seats) < 2 {
		return out, nil
	}

	seats := make([]int, 0, len(s.Seats))
	for seat := range s.Seats {
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	bySeat := pterm.TableData{{"Seat", "Rounds", "Wins", "Mean"}}
	for _, seat := range seats {
		ss := s.Seats[seat]
		bySeat = append(bySeat, []string{
			fmt.Sprintf("Player %d", seat),
			fmt.Sprintf("%d", ss.Rounds),
			fmt.Sprintf("%d", ss.Wins),
			fmt.Sprintf("%+.4f", s.SeatMean(seat)),
		})
	}
	seatTable, err := pterm.DefaultTable.WithHasHeader().WithData(bySeat).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render seats: %w", err)
	}

	return strings.Join([]string{out, seatTable}, "\n\n"), nil
}

// Save writes the rendered report to path. The file is written to a
// temporary sibling and renamed so readers never see a partial report.
func (r *Report) Save(path string) error {
	out, err := r.Render()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.WriteString(out + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename report: %w", err)
	}
	return nil
}
