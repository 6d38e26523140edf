package montecarlo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/countsim/stats"
)

// Batch is a set of independent trajectories from one Simulate call.
type Batch struct {
	Initial      float64
	Trajectories [][]float64
}

// BatchStats are the cross-run summary numbers for a batch.
type BatchStats struct {
	// MeanTrajectory has one entry per hand index: the mean bankroll
	// across all (padded) trajectories at that hand.
	MeanTrajectory []float64

	FinalMean   float64
	FinalStdev  float64
	FinalStderr float64
	FinalMin    float64
	FinalMax    float64
	// ROI is the mean return on the initial bankroll, in percent.
	ROI float64
	// RiskOfRuin is the fraction of runs ending at or below zero, in
	// percent.
	RiskOfRuin float64

	Runs   int
	Hands  int
	Ruined int
}

// Padded returns the trajectories as a rectangular matrix. Shorter
// (ruined) trajectories are flat-extended with their final value.
func (b *Batch) Padded() [][]float64 {
	maxLen := lo.Max(lo.Map(b.Trajectories, func(t []float64, _ int) int {
		return len(t)
	}))
	padded := make([][]float64, len(b.Trajectories))
	for i, t := range b.Trajectories {
		row := make([]float64, maxLen)
		copy(row, t)
		for j := len(t); j < maxLen; j++ {
			row[j] = t[len(t)-1]
		}
		padded[i] = row
	}
	return padded
}

// FinalBankrolls returns each trajectory's last bankroll value.
func (b *Batch) FinalBankrolls() []float64 {
	return lo.Map(b.Trajectories, func(t []float64, _ int) float64 {
		return t[len(t)-1]
	})
}

// Stats computes the batch summary.
func (b *Batch) Stats() *BatchStats {
	padded := b.Padded()
	hands := len(padded[0])

	mean := make([]float64, hands)
	for j := 0; j < hands; j++ {
		col := &stats.Statistic{}
		for i := range padded {
			col.Push(padded[i][j])
		}
		mean[j] = col.Mean()
	}

	final := &stats.Statistic{}
	for _, f := range b.FinalBankrolls() {
		final.Push(f)
	}
	ruined := lo.CountBy(b.FinalBankrolls(), func(f float64) bool {
		return f <= 0
	})

	return &BatchStats{
		MeanTrajectory: mean,
		FinalMean:      final.Mean(),
		FinalStdev:     final.Stdev(),
		FinalStderr:    final.StandardError(),
		FinalMin:       final.Min(),
		FinalMax:       final.Max(),
		ROI:            (final.Mean() - b.Initial) / b.Initial * 100,
		RiskOfRuin:     float64(ruined) / float64(len(b.Trajectories)) * 100,
		Runs:           len(b.Trajectories),
		Hands:          hands,
		Ruined:         ruined,
	}
}

// Summary renders the batch statistics as a table.
func (bs *BatchStats) Summary() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-28s%s\n", "Statistic", "Value")
	fmt.Fprintf(&ss, "%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(&ss, "%-28s%.2f±%.2f\n", "Mean final bankroll",
		bs.FinalMean, stats.Z99*bs.FinalStderr)
	fmt.Fprintf(&ss, "%-28s%.2f\n", "Stdev of final bankroll", bs.FinalStdev)
	fmt.Fprintf(&ss, "%-28s%.2f / %.2f\n", "Min / max final", bs.FinalMin, bs.FinalMax)
	fmt.Fprintf(&ss, "%-28s%.2f%%\n", "ROI", bs.ROI)
	fmt.Fprintf(&ss, "%-28s%.2f%% (%d of %d runs)\n", "Risk of ruin",
		bs.RiskOfRuin, bs.Ruined, bs.Runs)
	fmt.Fprintf(&ss, "%-28s%d\n", "Hands (padded length)", bs.Hands)
	fmt.Fprintf(&ss, "Intervals are 99%% confidence\n")
	return ss.String()
}

// WriteCSV writes the padded matrix with a leading mean-trajectory
// column, one row per hand, for downstream charting.
func (b *Batch) WriteCSV(w io.Writer) error {
	padded := b.Padded()
	st := b.Stats()

	cw := csv.NewWriter(w)
	header := []string{"hand", "mean"}
	for i := range padded {
		header = append(header, "run"+strconv.Itoa(i+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, 0, len(header))
	for j := 0; j < st.Hands; j++ {
		row = row[:0]
		row = append(row, strconv.Itoa(j+1),
			strconv.FormatFloat(st.MeanTrajectory[j], 'f', 2, 64))
		for i := range padded {
			row = append(row, strconv.FormatFloat(padded[i][j], 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
