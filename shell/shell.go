// Package shell implements the interactive countsim console.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/countsim/config"
	"github.com/domino14/countsim/montecarlo"
	"github.com/domino14/countsim/outcome"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	simmer    *montecarlo.Simmer
	lastBatch *montecarlo.Batch
	seeds     [][32]byte

	simLogFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcountsim>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, cfg: cfg, simmer: &montecarlo.Simmer{}}
	if seedFile := cfg.GetString("seed-file"); seedFile != "" {
		seeds, err := montecarlo.LoadSeeds(seedFile)
		if err != nil {
			sc.showError(err)
		} else {
			sc.seeds = seeds
			log.Info().Int("seeds", len(seeds)).Str("file", seedFile).Msg("loaded-seeds")
		}
	}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stderr(), msg)
	io.WriteString(sc.l.Stderr(), "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Loop runs the read-eval-print loop until exit or EOF, then signals
// the main goroutine to shut down.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := sc.handle(line); err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("Exiting readline loop...")
	sig <- syscall.SIGINT
}

// Execute runs a single command line non-interactively, then signals
// shutdown. Used for one-shot invocations like `countsim sim`.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.l.Close()
	if err := sc.handle(line); err != nil {
		sc.showError(err)
	}
	sig <- syscall.SIGINT
}

func (sc *ShellController) Cleanup() {
	if sc.simLogFile != nil {
		sc.simLogFile.Close()
	}
}

func (sc *ShellController) handle(line string) error {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]
	switch cmd {
	case "set":
		return sc.handleSet(args)
	case "show":
		return sc.handleShow()
	case "sim":
		return sc.handleSim(args)
	case "hist":
		return sc.handleHist()
	case "export":
		return sc.handleExport(args)
	case "seeds":
		return sc.handleSeeds(args)
	case "help":
		sc.showMessage(helpText)
		return nil
	}
	return fmt.Errorf("command %q not recognized; try `help`", cmd)
}

// CmdOptions are `-key value` pairs trailing a command.
type CmdOptions map[string]string

func parseOptions(args []string) (CmdOptions, error) {
	opts := CmdOptions{}
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return nil, fmt.Errorf("unexpected argument %q", args[i])
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("option %q needs a value", args[i])
		}
		opts[strings.TrimPrefix(args[i], "-")] = args[i+1]
		i++
	}
	return opts, nil
}

// settable are the config keys the `set` command accepts.
var settable = []string{
	"initial-bankroll", "min-bet", "spread", "sims", "hands", "decks",
	"model", "threads",
}

func (sc *ShellController) handleSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <param> <value>")
	}
	key, val := args[0], args[1]
	for _, s := range settable {
		if s == key {
			if key == "model" {
				if _, err := outcome.ModelFromName(val); err != nil {
					return err
				}
			}
			sc.cfg.Set(key, val)
			sc.showMessage(fmt.Sprintf("%s = %s", key, val))
			return nil
		}
	}
	return fmt.Errorf("unknown parameter %q; settable: %s", key,
		strings.Join(settable, ", "))
}

func (sc *ShellController) handleShow() error {
	var ss strings.Builder
	for _, key := range settable {
		fmt.Fprintf(&ss, "%-18s%v\n", key, sc.cfg.GetString(key))
	}
	fmt.Fprintf(&ss, "%-18s%d\n", "seeds loaded", len(sc.seeds))
	sc.showMessage(ss.String())
	return nil
}
