package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPublicViewObservations(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	g := Initialize(testDeck(20), testDeck(20), rng)
	v := g.Public()

	t.Run("aggregates over concealed zones", func(t *testing.T) {
		require.Equal(t, StartingHand, v.HandCount(0), "Hand size is public")
		require.Equal(t, 15, v.DeckCount(1), "Deck size is public")
		require.False(t, v.DeckEmpty(0), "Deck emptiness is public")

		basics := Predicate{Name: "basic", Fn: func(c *Card) bool { return c.IsBasic() }}
		require.True(t, v.DeckHas(0, basics), "Category existence is public")
	})

	t.Run("aggregate answers survive concealed permutation", func(t *testing.T) {
		basics := Predicate{Name: "basic", Fn: func(c *Card) bool { return c.IsBasic() }}
		before := v.DeckHas(0, basics)
		count := v.DeckCount(0)
		for i := 0; i < 5; i++ {
			g.Players[0].DeckZone.Shuffle(rng)
			require.Equal(t, before, v.DeckHas(0, basics), "Existence must not depend on order")
			require.Equal(t, count, v.DeckCount(0), "Count must not depend on order")
		}
	})

	t.Run("discard pile contents are open", func(t *testing.T) {
		card := g.Players[0].Hand.At(0)
		require.NoError(t, g.DiscardFromHand(0, card), "Discard should succeed")
		require.Contains(t, v.DiscardCards(0), card, "Discarded cards are visible")
	})

	t.Run("board observations are nil safe", func(t *testing.T) {
		require.Nil(t, v.Board(0, 2), "Empty slots read as nil")
		require.Nil(t, v.Board(0, 99), "Out of range reads as nil")
		require.False(t, v.BenchOccupied(0), "An empty bench reads as unoccupied")
	})
}
