package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tcgcore/agent"
	"tcgcore/catalogue"
	"tcgcore/engine"
	"tcgcore/engine/metrics"
)

type config struct {
	matches int
	seed    uint64
	deckA   string
	deckB   string
	outDir  string
	debug   bool
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.matches, "matches", 10, "number of self-play matches")
	flag.Uint64Var(&cfg.seed, "seed", 1, "base RNG seed")
	flag.StringVar(&cfg.deckA, "deck-a", "", "YAML deck list for player A (built-in if empty)")
	flag.StringVar(&cfg.deckB, "deck-b", "", "YAML deck list for player B (built-in if empty)")
	flag.StringVar(&cfg.outDir, "out", "runs", "directory for run metrics")
	flag.BoolVar(&cfg.debug, "debug", false, "enable per-action debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("self-play run failed")
	}
}

func run(cfg config) error {
	deckA, deckB := catalogue.StandardDecks()
	var err error
	if cfg.deckA != "" {
		if deckA, err = catalogue.LoadDeck(cfg.deckA); err != nil {
			return err
		}
	}
	if cfg.deckB != "" {
		if deckB, err = catalogue.LoadDeck(cfg.deckB); err != nil {
			return err
		}
	}

	collector := metrics.NewCollector()
	records := make([]metrics.MatchRecord, 0, cfg.matches)

	for i := 0; i < cfg.matches; i++ {
		seed := cfg.seed + uint64(i)
		e := engine.New(engine.WithSeed(seed), engine.WithCollector(collector))
		sources := [2]engine.ActionSource{
			agent.NewRandom(seed * 2),
			agent.NewRandom(seed*2 + 1),
		}
		result, err := e.Run(deckA, deckB, sources)
		if err != nil {
			log.Error().Err(err).Str("match", result.MatchID).Msg("match aborted")
			continue
		}
		records = append(records, metrics.MatchRecord{
			MatchID:  result.MatchID,
			Outcome:  result.Outcome.String(),
			Turns:    result.Turns,
			Actions:  result.Actions,
			Retries:  result.Retries,
			Duration: result.Duration,
		})
	}

	writer, err := metrics.NewWriter(cfg.outDir)
	if err != nil {
		return err
	}
	if err := writer.WriteMatches(records); err != nil {
		return err
	}
	if err := writer.WriteSummary(collector.Snapshot()); err != nil {
		return err
	}

	s := collector.Snapshot()
	log.Info().
		Int64("matches", s.Matches).
		Int64("winsA", s.Wins[0]).
		Int64("winsB", s.Wins[1]).
		Int64("ties", s.Ties).
		Str("dir", writer.BaseDir()).
		Msg("self-play run complete")
	return nil
}
