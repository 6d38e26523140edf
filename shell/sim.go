package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/countsim/montecarlo"
	"github.com/domino14/countsim/outcome"
)

// simConfig assembles a montecarlo.SimConfig from the current
// configuration. Validation happens in Simmer.Init.
func (sc *ShellController) simConfig() (montecarlo.SimConfig, error) {
	model, err := outcome.ModelFromName(sc.cfg.GetString("model"))
	if err != nil {
		return montecarlo.SimConfig{}, err
	}
	return montecarlo.SimConfig{
		InitialBankroll: sc.cfg.GetFloat64("initial-bankroll"),
		MinBet:          sc.cfg.GetFloat64("min-bet"),
		Spread:          sc.cfg.GetInt("spread"),
		NumDecks:        sc.cfg.GetInt("decks"),
		HandsPerRun:     sc.cfg.GetInt("hands"),
		NumRuns:         sc.cfg.GetInt("sims"),
		Model:           model,
	}, nil
}

func (sc *ShellController) handleSim(args []string) error {
	if sc.simmer.IsSimming() {
		return errors.New("simming already, please wait for the batch to finish")
	}
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	for opt, val := range opts {
		switch opt {
		case "sims", "hands", "decks", "spread", "threads":
			if _, err := strconv.Atoi(val); err != nil {
				return fmt.Errorf("option %q wants an integer: %w", opt, err)
			}
			sc.cfg.Set(opt, val)
		case "bankroll":
			sc.cfg.Set("initial-bankroll", val)
		case "minbet":
			sc.cfg.Set("min-bet", val)
		case "model":
			if _, err := outcome.ModelFromName(val); err != nil {
				return err
			}
			sc.cfg.Set("model", val)
		default:
			return errors.New("option " + opt + " not recognized")
		}
	}

	cfg, err := sc.simConfig()
	if err != nil {
		return err
	}
	if err := sc.simmer.Init(cfg); err != nil {
		return err
	}
	if threads := sc.cfg.GetInt("threads"); threads != 0 {
		sc.simmer.SetThreads(threads)
	}
	if len(sc.seeds) > 0 {
		sc.simmer.SetSeeds(sc.seeds)
	}
	if logfile := sc.cfg.GetString("sim-log"); logfile != "" && sc.simLogFile == nil {
		f, err := os.Create(logfile)
		if err != nil {
			return err
		}
		sc.simLogFile = f
		sc.simmer.SetLogStream(f)
	}

	log.Debug().Int("sims", cfg.NumRuns).Int("hands", cfg.HandsPerRun).
		Int("threads", sc.simmer.Threads()).Msg("will start sim")

	tstart := time.Now()
	batch, err := sc.simmer.Simulate(context.Background())
	if err != nil {
		return err
	}
	sc.lastBatch = batch
	sc.showMessage(fmt.Sprintf("Batch of %d runs finished in %v\n", cfg.NumRuns,
		time.Since(tstart)))
	sc.showMessage(batch.Stats().Summary())
	return nil
}

func (sc *ShellController) handleHist() error {
	if sc.lastBatch == nil {
		return errors.New("please run a sim first")
	}
	var ss strings.Builder
	ss.WriteString("Final bankroll distribution:\n")
	if err := sc.lastBatch.Histogram(&ss); err != nil {
		return err
	}
	sc.showMessage(ss.String())
	return nil
}

func (sc *ShellController) handleExport(args []string) error {
	if sc.lastBatch == nil {
		return errors.New("please run a sim first")
	}
	if len(args) != 1 {
		return errors.New("usage: export <file.csv>")
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sc.lastBatch.WriteCSV(f); err != nil {
		return err
	}
	sc.showMessage("wrote " + args[0])
	return nil
}

func (sc *ShellController) handleSeeds(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: seeds generate <n> | save <file> | load <file> | clear")
	}
	switch args[0] {
	case "generate":
		if len(args) != 2 {
			return errors.New("usage: seeds generate <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		seeds, err := montecarlo.GenerateSeeds(n)
		if err != nil {
			return err
		}
		sc.seeds = seeds
		sc.showMessage(fmt.Sprintf("generated %d seeds", n))
	case "save":
		if len(args) != 2 {
			return errors.New("usage: seeds save <file>")
		}
		if len(sc.seeds) == 0 {
			return errors.New("no seeds to save; `seeds generate` first")
		}
		if err := montecarlo.SaveSeeds(sc.seeds, args[1]); err != nil {
			return err
		}
		sc.showMessage("wrote " + args[1])
	case "load":
		if len(args) != 2 {
			return errors.New("usage: seeds load <file>")
		}
		seeds, err := montecarlo.LoadSeeds(args[1])
		if err != nil {
			return err
		}
		sc.seeds = seeds
		sc.showMessage(fmt.Sprintf("loaded %d seeds", len(seeds)))
	case "clear":
		sc.seeds = nil
		sc.showMessage("cleared seeds; batches will use fresh randomness")
	default:
		return errors.New("seeds subcommand " + args[0] + " not recognized")
	}
	return nil
}
