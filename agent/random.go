// Package agent provides action sources that drive matches.
package agent

import (
	"golang.org/x/exp/rand"

	"tcgcore/game"
)

// Random picks uniformly among legal actions. It is the baseline
// opponent and the workhorse of self-play soak tests.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a seeded random action source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Name() string { return "random" }

// ChooseAction picks one of the legal actions uniformly.
func (a *Random) ChooseAction(_ *game.PublicView, legal []game.Action) game.Action {
	return legal[a.rng.Intn(len(legal))]
}
