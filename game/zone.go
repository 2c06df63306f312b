package game

import (
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// zoneStore is the backing block a Zone points at. Blocks are shared
// across clones with an atomic owner count; the first mutation through
// a Zone whose block is still shared copies the block before writing.
type zoneStore struct {
	owners atomic.Int32
	cards  []*Card
}

func newZoneStore(cards []*Card) *zoneStore {
	s := &zoneStore{cards: cards}
	s.owners.Store(1)
	return s
}

// Zone is an ordered container of cards tagged concealed or public.
// Reads never copy; writes privatize a shared block first, so sibling
// clones on other goroutines are unaffected.
type Zone struct {
	store     *zoneStore
	concealed bool
}

// NewZone builds a zone owning the given cards.
func NewZone(cards []*Card, concealed bool) Zone {
	owned := make([]*Card, len(cards))
	copy(owned, cards)
	return Zone{store: newZoneStore(owned), concealed: concealed}
}

// Concealed reports whether the zone's contents are hidden from the
// opponent and from forecasting code.
func (z *Zone) Concealed() bool { return z.concealed }

// clone shares the backing block with the new zone.
func (z *Zone) clone() Zone {
	z.store.owners.Add(1)
	return Zone{store: z.store, concealed: z.concealed}
}

// release gives up this zone's share of the backing block. The zone
// must not be used afterwards.
func (z *Zone) release() {
	z.store.owners.Add(-1)
}

// privatize copies the backing block if any sibling still shares it.
// Only the goroutine owning this clone may call it, so a count of 1 is
// stable: nobody else can clone through our pointer concurrently.
func (z *Zone) privatize() {
	if z.store.owners.Load() == 1 {
		return
	}
	cards := make([]*Card, len(z.store.cards))
	copy(cards, z.store.cards)
	z.store.owners.Add(-1)
	z.store = newZoneStore(cards)
}

// Shared reports whether the backing block is currently shared with a
// sibling clone.
func (z *Zone) Shared() bool { return z.store.owners.Load() > 1 }

func (z *Zone) Count() int  { return len(z.store.cards) }
func (z *Zone) Empty() bool { return len(z.store.cards) == 0 }

// At returns the card at index i, or nil if out of range.
func (z *Zone) At(i int) *Card {
	if i < 0 || i >= len(z.store.cards) {
		return nil
	}
	return z.store.cards[i]
}

// Cards returns the zone's contents. The slice is read-only: mutating
// it would corrupt sibling clones.
func (z *Zone) Cards() []*Card { return z.store.cards }

// IndexOf returns the first index holding card, or -1. Identity is by
// pointer: duplicate copies of a card share one *Card from the
// catalogue.
func (z *Zone) IndexOf(card *Card) int {
	for i, c := range z.store.cards {
		if c == card {
			return i
		}
	}
	return -1
}

// Contains reports whether card is present in the zone.
func (z *Zone) Contains(card *Card) bool { return z.IndexOf(card) >= 0 }

// Has reports whether any card satisfies the predicate.
func (z *Zone) Has(p Predicate) bool {
	for _, c := range z.store.cards {
		if p.Matches(c) {
			return true
		}
	}
	return false
}

// CountIf counts cards satisfying the predicate.
func (z *Zone) CountIf(p Predicate) int {
	n := 0
	for _, c := range z.store.cards {
		if p.Matches(c) {
			n++
		}
	}
	return n
}

// Append adds a card to the bottom of the zone.
func (z *Zone) Append(card *Card) {
	z.privatize()
	z.store.cards = append(z.store.cards, card)
}

// RemoveAt removes and returns the card at index i, preserving order.
func (z *Zone) RemoveAt(i int) *Card {
	if i < 0 || i >= len(z.store.cards) {
		return nil
	}
	z.privatize()
	card := z.store.cards[i]
	z.store.cards = append(z.store.cards[:i], z.store.cards[i+1:]...)
	return card
}

// Remove removes the first occurrence of card, reporting success.
func (z *Zone) Remove(card *Card) bool {
	i := z.IndexOf(card)
	if i < 0 {
		return false
	}
	z.RemoveAt(i)
	return true
}

// TakeTop removes and returns the top card, or nil if empty.
func (z *Zone) TakeTop() *Card {
	if z.Empty() {
		return nil
	}
	return z.RemoveAt(0)
}

// PutBottom places a card at the bottom of the zone.
func (z *Zone) PutBottom(card *Card) { z.Append(card) }

// DrainInto moves every card into dst, emptying this zone.
func (z *Zone) DrainInto(dst *Zone) {
	if z.Empty() {
		return
	}
	z.privatize()
	dst.privatize()
	dst.store.cards = append(dst.store.cards, z.store.cards...)
	z.store.cards = z.store.cards[:0]
}

// Shuffle permutes the zone with caller-supplied randomness.
func (z *Zone) Shuffle(rng *rand.Rand) {
	z.privatize()
	cards := z.store.cards
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
