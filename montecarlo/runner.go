package montecarlo

import (
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/countsim/betting"
	"github.com/domino14/countsim/count"
	"github.com/domino14/countsim/deck"
)

// RunState is the lifecycle of a single trajectory.
type RunState int

const (
	StatePlaying RunState = iota
	// StateRuined means the bankroll hit zero before the hand limit;
	// the trajectory is shorter than the limit.
	StateRuined
	StateCompleted
)

// LogHand is a single hand's row in the debug log stream.
type LogHand struct {
	Hand     int     `json:"hand" yaml:"hand"`
	Card     string  `json:"card" yaml:"card"`
	Running  int     `json:"running" yaml:"running"`
	True     float64 `json:"true" yaml:"true"`
	Bet      float64 `json:"bet" yaml:"bet"`
	Outcome  string  `json:"outcome" yaml:"outcome"`
	Bankroll float64 `json:"bankroll" yaml:"bankroll"`
}

// LogTrajectory is a struct meant for serializing to a log-file, for
// debug and other purposes.
type LogTrajectory struct {
	Trajectory int       `json:"trajectory" yaml:"trajectory"`
	State      string    `json:"state" yaml:"state"`
	Hands      []LogHand `json:"hands" yaml:"hands,flow"`
}

func (rs RunState) String() string {
	switch rs {
	case StatePlaying:
		return "playing"
	case StateRuined:
		return "ruined"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// simTrajectory plays one full trajectory: a fresh shoe and count
// tracker, the configured number of hands, early stop on ruin. The
// returned slice holds the post-hand bankroll for every hand played.
func (s *Simmer) simTrajectory(idx int, seed [32]byte, logChan chan []byte) ([]float64, error) {
	rng := frand.NewCustom(seed[:], 1024, 12)
	shoe := deck.NewShoe(s.cfg.NumDecks, rng)
	tracker := &count.Tracker{}

	bankroll := s.cfg.InitialBankroll
	bankrolls := make([]float64, 0, s.cfg.HandsPerRun)
	state := StatePlaying

	var logTraj LogTrajectory
	if s.logStream != nil {
		logTraj = LogTrajectory{Trajectory: idx}
	}

	for hand := 0; hand < s.cfg.HandsPerRun && state == StatePlaying; hand++ {
		if shoe.NeedsReshuffle() {
			shoe.Reshuffle()
			tracker.Reset()
		}
		card := shoe.Draw()
		tracker.Update(card)
		trueCount := tracker.TrueCount(shoe.CardsRemaining())

		bet := betting.BetSize(trueCount, bankroll, s.cfg.MinBet, s.cfg.Spread)
		oc := s.cfg.Model.Sample(rng, trueCount)
		bankroll = s.cfg.Model.Apply(oc, bet, bankroll)
		bankrolls = append(bankrolls, bankroll)
		s.handCount.Add(1)

		if s.logStream != nil {
			logTraj.Hands = append(logTraj.Hands, LogHand{
				Hand:     hand,
				Card:     card.String(),
				Running:  tracker.Running(),
				True:     trueCount,
				Bet:      bet,
				Outcome:  oc.String(),
				Bankroll: bankroll,
			})
		}

		if bankroll <= 0 {
			state = StateRuined
		}
	}
	if state == StatePlaying {
		state = StateCompleted
	}

	if s.logStream != nil {
		logTraj.State = state.String()
		out, err := yaml.Marshal([]LogTrajectory{logTraj})
		if err != nil {
			return nil, err
		}
		logChan <- out
	}
	return bankrolls, nil
}
