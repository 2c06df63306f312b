// Package metrics aggregates match statistics across self-play runs.
package metrics

import (
	"sync/atomic"

	"tcgcore/game"
)

// Collector accumulates counters across matches. Safe for concurrent
// use when matches run in parallel goroutines.
type Collector struct {
	matches atomic.Int64
	aborted atomic.Int64
	wins    [2]atomic.Int64
	ties    atomic.Int64
	turns   atomic.Int64
	actions atomic.Int64
	retries atomic.Int64
}

func NewCollector() *Collector {
	return &Collector{}
}

// RecordMatch folds one finished match into the counters. Retries are
// counted as they happen via RecordRetry.
func (c *Collector) RecordMatch(outcome game.GameOutcome, turns, actions int) {
	c.matches.Add(1)
	c.turns.Add(int64(turns))
	c.actions.Add(int64(actions))
	switch outcome {
	case game.Win(0):
		c.wins[0].Add(1)
	case game.Win(1):
		c.wins[1].Add(1)
	case game.OutcomeTie:
		c.ties.Add(1)
	}
}

// RecordRetry counts one illegal action pick.
func (c *Collector) RecordRetry() { c.retries.Add(1) }

// RecordAbort counts one match abandoned to an invariant breach.
func (c *Collector) RecordAbort() { c.aborted.Add(1) }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Matches int64
	Aborted int64
	Wins    [2]int64
	Ties    int64
	Turns   int64
	Actions int64
	Retries int64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Matches: c.matches.Load(),
		Aborted: c.aborted.Load(),
		Wins:    [2]int64{c.wins[0].Load(), c.wins[1].Load()},
		Ties:    c.ties.Load(),
		Turns:   c.turns.Load(),
		Actions: c.actions.Load(),
		Retries: c.retries.Load(),
	}
}
