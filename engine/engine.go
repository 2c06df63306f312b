// Package engine runs matches between two action sources on top of
// the forecast and resolve layers.
package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tcgcore/engine/metrics"
	"tcgcore/game"
	"tcgcore/resolve"
)

// ActionSource chooses among legal actions for one seat. It sees the
// same public view the forecast layer does, never the concealed zones.
type ActionSource interface {
	Name() string
	ChooseAction(view *game.PublicView, legal []game.Action) game.Action
}

// maxRetries bounds how many alternative actions a seat may try after
// illegal picks before the engine gives up on the match.
const maxRetries = 8

type Engine struct {
	rng       *rand.Rand
	collector *metrics.Collector
}

type Option func(*Engine)

// WithSeed fixes the engine's randomness for reproducible matches.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithCollector records match statistics into a shared collector.
func WithCollector(c *metrics.Collector) Option {
	return func(e *Engine) { e.collector = c }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		collector: metrics.NewCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MatchResult summarizes one finished match.
type MatchResult struct {
	MatchID  string
	Outcome  game.GameOutcome
	Turns    int
	Actions  int
	Retries  int
	Duration time.Duration
}

// Run plays one match between two sources until an outcome is
// reached. Illegal action picks are retried with a different action;
// a conservation breach aborts the match with the invariant error.
func (e *Engine) Run(deckA, deckB game.Deck, sources [2]ActionSource) (MatchResult, error) {
	matchID := uuid.New().String()
	start := time.Now()

	g := game.Initialize(deckA, deckB, e.rng)
	defer g.Release()
	if err := g.GenerateEnergy(e.rng); err != nil {
		return MatchResult{MatchID: matchID}, err
	}

	log.Info().
		Str("match", matchID).
		Str("playerA", sources[0].Name()).
		Str("playerB", sources[1].Name()).
		Int("starting", g.CurrentPlayer).
		Msg("match started")

	result := MatchResult{MatchID: matchID}
	for !g.GameOver() {
		legal := game.LegalActions(g)
		if len(legal) == 0 {
			return result, game.NoLegalMoves(g.CurrentPlayer)
		}
		actor := legal[0].Actor
		if err := e.step(g, sources[actor], legal, &result); err != nil {
			e.collector.RecordAbort()
			return result, err
		}
	}

	result.Outcome = g.Outcome
	result.Turns = g.Turn
	result.Duration = time.Since(start)
	e.collector.RecordMatch(result.Outcome, result.Turns, result.Actions)

	log.Info().
		Str("match", matchID).
		Str("outcome", result.Outcome.String()).
		Int("turns", result.Turns).
		Int("actions", result.Actions).
		Dur("duration", result.Duration).
		Msg("match finished")
	return result, nil
}

func (e *Engine) step(g *game.GameState, source ActionSource, legal []game.Action, result *MatchResult) error {
	view := g.Public()
	for attempt := 0; attempt <= maxRetries; attempt++ {
		act := source.ChooseAction(view, legal)
		err := resolve.Step(e.rng, g, act)
		if err == nil {
			result.Actions++
			return nil
		}

		var inv *game.InvariantError
		if errors.As(err, &inv) {
			log.Error().Err(err).Str("action", act.String()).Msg("state invariant violated")
			return err
		}

		// Illegal pick: drop the action and let the source try again.
		result.Retries++
		e.collector.RecordRetry()
		log.Debug().Err(err).Str("action", act.String()).Msg("illegal action, retrying")
		legal = withoutAction(legal, act)
		if len(legal) == 0 {
			return game.NoLegalMoves(act.Actor)
		}
	}
	return game.NoLegalMoves(g.CurrentPlayer)
}

func withoutAction(legal []game.Action, act game.Action) []game.Action {
	kept := legal[:0:0]
	for _, a := range legal {
		if a.Type == act.Type && a.Card == act.Card &&
			a.Position == act.Position && a.AttackIndex == act.AttackIndex {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// Collector exposes the engine's metrics collector.
func (e *Engine) Collector() *metrics.Collector { return e.collector }
