package montecarlo

import (
	"context"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/domino14/countsim/outcome"
)

func testConfig() SimConfig {
	return SimConfig{
		InitialBankroll: 1000000,
		MinBet:          100,
		Spread:          10,
		NumDecks:        8,
		HandsPerRun:     10000,
		NumRuns:         1,
		Model:           outcome.ModelCounting,
	}
}

func fixedSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		seeds[i][0] = byte(i + 1)
	}
	return seeds
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.NoErr(testConfig().Validate())

	bad := func(mut func(*SimConfig)) SimConfig {
		cfg := testConfig()
		mut(&cfg)
		return cfg
	}
	cases := []SimConfig{
		bad(func(c *SimConfig) { c.InitialBankroll = 0 }),
		bad(func(c *SimConfig) { c.InitialBankroll = -5 }),
		bad(func(c *SimConfig) { c.MinBet = 0 }),
		bad(func(c *SimConfig) { c.Spread = 0 }),
		bad(func(c *SimConfig) { c.NumRuns = 0 }),
		bad(func(c *SimConfig) { c.HandsPerRun = 0 }),
		bad(func(c *SimConfig) { c.NumDecks = 0 }),
		bad(func(c *SimConfig) { c.NumDecks = 9 }),
	}
	for _, c := range cases {
		is.True(c.Validate() != nil)
	}
}

func TestSimulateSingleRun(t *testing.T) {
	is := is.New(t)
	s := &Simmer{}
	is.NoErr(s.Init(testConfig()))
	s.SetSeeds(fixedSeeds(1))

	batch, err := s.Simulate(context.Background())
	is.NoErr(err)
	is.Equal(len(batch.Trajectories), 1)

	traj := batch.Trajectories[0]
	is.True(len(traj) > 0)
	is.True(len(traj) <= 10000)
	for _, v := range traj {
		is.True(!math.IsNaN(v) && !math.IsInf(v, 0))
	}
	// The first hand bets the minimum (the true count cannot exceed 1
	// after one card from a fresh 8-deck shoe), so exactly one round's
	// outcome separates the first element from the initial bankroll.
	first := traj[0]
	is.True(first == 1000000+150 || first == 1000000-100 || first == 1000000)
}

func TestRuinIsTerminal(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	// Tiny bankroll so many runs go bust quickly.
	cfg.InitialBankroll = 200
	cfg.NumRuns = 50
	cfg.HandsPerRun = 500
	s := &Simmer{}
	is.NoErr(s.Init(cfg))
	s.SetSeeds(fixedSeeds(50))

	batch, err := s.Simulate(context.Background())
	is.NoErr(err)
	sawRuin := false
	for _, traj := range batch.Trajectories {
		// Only the last element may be at or below zero.
		for _, v := range traj[:len(traj)-1] {
			is.True(v > 0)
		}
		if traj[len(traj)-1] <= 0 {
			sawRuin = true
			is.True(len(traj) <= cfg.HandsPerRun)
		}
	}
	is.True(sawRuin)
}

func TestSimulateReproducible(t *testing.T) {
	cfg := testConfig()
	cfg.NumRuns = 10
	cfg.HandsPerRun = 2000

	run := func(threads int) *Batch {
		s := &Simmer{}
		require.NoError(t, s.Init(cfg))
		s.SetThreads(threads)
		s.SetSeeds(fixedSeeds(10))
		batch, err := s.Simulate(context.Background())
		require.NoError(t, err)
		return batch
	}

	a := run(1)
	b := run(4)
	// Same seeds means identical trajectories, regardless of how they
	// were scheduled across threads.
	require.Equal(t, a.Trajectories, b.Trajectories)
}

func TestUnseededBatchesAreIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.NumRuns = 3
	cfg.HandsPerRun = 200
	s := &Simmer{}
	require.NoError(t, s.Init(cfg))

	a, err := s.Simulate(context.Background())
	require.NoError(t, err)
	b, err := s.Simulate(context.Background())
	require.NoError(t, err)
	// Without explicit seeds, every batch draws fresh randomness.
	require.NotEqual(t, a.Trajectories, b.Trajectories)

	// Growing the batch after an unseeded run must not hit a stale
	// seed count.
	cfg.NumRuns = 8
	require.NoError(t, s.Init(cfg))
	c, err := s.Simulate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8, len(c.Trajectories))
}

func TestSimulateNeedsEnoughSeeds(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.NumRuns = 5
	s := &Simmer{}
	is.NoErr(s.Init(cfg))
	s.SetSeeds(fixedSeeds(3))
	_, err := s.Simulate(context.Background())
	is.True(err != nil)
}
