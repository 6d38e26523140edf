package montecarlo

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/domino14/countsim/outcome"
	"github.com/domino14/countsim/stats"
)

func TestPadded(t *testing.T) {
	is := is.New(t)
	b := &Batch{
		Initial: 1000,
		Trajectories: [][]float64{
			{1100, 1200, 1300},
			{900, 0},
			{1000},
		},
	}
	padded := b.Padded()
	is.Equal(len(padded), 3)
	for _, row := range padded {
		is.Equal(len(row), 3)
	}
	// ruined/short runs flat-extend at their final value
	is.Equal(padded[1], []float64{900, 0, 0})
	is.Equal(padded[2], []float64{1000, 1000, 1000})
}

func TestBatchStats(t *testing.T) {
	is := is.New(t)
	b := &Batch{
		Initial: 1000,
		Trajectories: [][]float64{
			{1100, 1200},
			{900, 0},
		},
	}
	st := b.Stats()
	is.Equal(st.Runs, 2)
	is.Equal(st.Hands, 2)
	is.Equal(st.Ruined, 1)
	is.True(stats.FuzzyEqual(st.MeanTrajectory[0], 1000))
	is.True(stats.FuzzyEqual(st.MeanTrajectory[1], 600))
	is.True(stats.FuzzyEqual(st.FinalMean, 600))
	is.True(stats.FuzzyEqual(st.FinalStdev, 848.5281374238571))
	is.True(stats.FuzzyEqual(st.ROI, -40))
	is.True(stats.FuzzyEqual(st.RiskOfRuin, 50))
	is.Equal(st.FinalMin, 0.0)
	is.Equal(st.FinalMax, 1200.0)
	is.True(len(st.Summary()) > 0)
}

func TestWriteCSV(t *testing.T) {
	is := is.New(t)
	b := &Batch{
		Initial: 1000,
		Trajectories: [][]float64{
			{1100, 1200},
			{900, 0},
			{1000, 1050},
		},
	}
	var buf bytes.Buffer
	is.NoErr(b.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	is.NoErr(err)
	// header plus one row per hand
	is.Equal(len(records), 3)
	// hand, mean, then one column per run
	is.Equal(len(records[0]), 5)
	is.Equal(records[0][0], "hand")
	is.Equal(records[1][1], "1000.00")
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	cfg := SimConfig{
		InitialBankroll: 1000,
		MinBet:          10,
		Spread:          5,
		NumDecks:        1,
		HandsPerRun:     20,
		NumRuns:         2,
		Model:           outcome.ModelCounting,
	}
	s := &Simmer{}
	is.NoErr(s.Init(cfg))
	s.SetThreads(1)
	s.SetSeeds(fixedSeeds(2))
	var buf bytes.Buffer
	s.SetLogStream(&buf)

	_, err := s.Simulate(context.Background())
	is.NoErr(err)

	// Each trajectory marshals as a one-element list; concatenated
	// they parse as one list.
	var logged []LogTrajectory
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &logged))
	is.Equal(len(logged), 2)
	for _, lt := range logged {
		is.True(len(lt.Hands) > 0)
		is.True(lt.State == "completed" || lt.State == "ruined")
	}
}
