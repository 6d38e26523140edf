// Package montecarlo runs batches of independent bankroll
// trajectories for a card-counting betting strategy. In other words,
// "simming".
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/countsim/outcome"
)

/*
	How to simulate:

	For trajectory in trajectories:
		build a fresh shoe from that trajectory's seed
		for hand in hands:
			- reshuffle at the cut card, resetting the count
			- draw, update the running count, derive the true count
			- size the bet from the true count and spread
			- sample win/lose/push and apply it to the bankroll
			- stop early if the bankroll hits zero

	pad all trajectories to a rectangle, compute stats
*/

// SimConfig holds every parameter one batch needs. It is passed in
// explicitly; the simmer reads no globals.
type SimConfig struct {
	InitialBankroll float64
	MinBet          float64
	Spread          int
	NumDecks        int
	HandsPerRun     int
	NumRuns         int
	Model           outcome.Model
}

// Validate rejects configurations the simulation cannot run with.
func (c SimConfig) Validate() error {
	if c.InitialBankroll <= 0 {
		return fmt.Errorf("initial bankroll must be positive, got %v", c.InitialBankroll)
	}
	if c.MinBet <= 0 {
		return fmt.Errorf("minimum bet must be positive, got %v", c.MinBet)
	}
	if c.Spread < 1 {
		return fmt.Errorf("spread must be at least 1, got %d", c.Spread)
	}
	if c.NumRuns < 1 {
		return fmt.Errorf("number of runs must be at least 1, got %d", c.NumRuns)
	}
	if c.HandsPerRun < 1 {
		return fmt.Errorf("hands per run must be at least 1, got %d", c.HandsPerRun)
	}
	if c.NumDecks < 1 || c.NumDecks > 8 {
		return fmt.Errorf("number of decks must be between 1 and 8, got %d", c.NumDecks)
	}
	return nil
}

// Simmer drives a batch of independent trajectories across worker
// threads and collects them into a Batch.
type Simmer struct {
	cfg     SimConfig
	threads int

	iterationCount atomic.Uint64
	handCount      atomic.Uint64
	simming        bool

	seeds     [][32]byte
	logStream io.Writer
}

// Init prepares the simmer for a batch. It validates the config and
// picks a default thread count.
func (s *Simmer) Init(cfg SimConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	if s.threads == 0 {
		s.threads = max(1, runtime.NumCPU())
	}
	return nil
}

func (s *Simmer) SetThreads(threads int) {
	s.threads = threads
}

func (s *Simmer) Threads() int {
	return s.threads
}

// SetLogStream directs per-hand YAML rows for every trajectory to l.
// Meant for debugging single runs; it slows large batches down.
func (s *Simmer) SetLogStream(l io.Writer) {
	s.logStream = l
}

// SetSeeds fixes the per-trajectory RNG seeds so a batch can be
// replayed exactly. There must be at least NumRuns seeds.
func (s *Simmer) SetSeeds(seeds [][32]byte) {
	s.seeds = seeds
}

func (s *Simmer) IsSimming() bool {
	return s.simming
}

// Iterations returns the number of trajectories finished so far.
func (s *Simmer) Iterations() int {
	return int(s.iterationCount.Load())
}

// Simulate runs the whole batch. It is a blocking function; cancel the
// context to stop early (the batch is then incomplete and discarded).
func (s *Simmer) Simulate(ctx context.Context) (*Batch, error) {
	logger := zerolog.Ctx(ctx)

	if s.cfg.NumRuns == 0 {
		return nil, errors.New("please initialize the simmer first")
	}
	// Explicitly set seeds replay exactly; otherwise every batch gets
	// fresh randomness.
	seeds := s.seeds
	if seeds == nil {
		var err error
		seeds, err = GenerateSeeds(s.cfg.NumRuns)
		if err != nil {
			return nil, err
		}
	}
	if len(seeds) < s.cfg.NumRuns {
		return nil, fmt.Errorf("have %d seeds but need %d", len(seeds), s.cfg.NumRuns)
	}

	s.simming = true
	s.iterationCount.Store(0)
	s.handCount.Store(0)
	defer func() {
		s.simming = false
		logger.Info().Int("runs", s.cfg.NumRuns).
			Uint64("iterationCt", s.iterationCount.Load()).Msg("sim-ended")
	}()

	logChan := make(chan []byte)
	done := make(chan bool)
	writer := errgroup.Group{}
	if s.logStream != nil {
		writer.Go(func() error {
			for {
				select {
				case bytes := <-logChan:
					s.logStream.Write(bytes)
				case <-done:
					return nil
				}
			}
		})
	}

	trajectories := make([][]float64, s.cfg.NumRuns)
	jobs := make(chan int, s.cfg.NumRuns)
	for i := 0; i < s.cfg.NumRuns; i++ {
		jobs <- i
	}
	close(jobs)

	tstart := time.Now()
	logger.Debug().Msgf("Simulating with %v threads", s.threads)
	g := errgroup.Group{}
	for t := 0; t < s.threads; t++ {
		g.Go(func() error {
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					// keep going
				}
				traj, err := s.simTrajectory(idx, seeds[idx], logChan)
				if err != nil {
					return err
				}
				trajectories[idx] = traj
				s.iterationCount.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	if s.logStream != nil {
		close(done)
		writer.Wait()
	}

	elapsed := time.Since(tstart)
	hands := s.handCount.Load()
	logger.Info().Msgf("time taken: %v, hands/sec: %f, hands: %d",
		elapsed.Seconds(), float64(hands)/elapsed.Seconds(), hands)

	if err != nil {
		return nil, err
	}
	return &Batch{Initial: s.cfg.InitialBankroll, Trajectories: trajectories}, nil
}
