package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testCards(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = &Card{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Kind: KindBasic}
	}
	return cards
}

func TestZoneCopyOnWrite(t *testing.T) {
	t.Run("clone shares backing until first write", func(t *testing.T) {
		original := NewZone(testCards(5), true)
		copied := original.clone()

		require.True(t, original.Shared(), "Original should report a shared backing after clone")
		require.True(t, copied.Shared(), "Clone should report a shared backing")
		require.Equal(t, 5, copied.Count(), "Clone should see the same cards")
	})

	t.Run("write privatizes only the writer", func(t *testing.T) {
		original := NewZone(testCards(5), true)
		copied := original.clone()

		removed := copied.RemoveAt(0)
		require.NotNil(t, removed, "RemoveAt should return the removed card")
		require.Equal(t, 4, copied.Count(), "Writer should see the mutation")
		require.Equal(t, 5, original.Count(), "Original should be untouched")
		require.False(t, copied.Shared(), "Writer should own a private backing after the write")
	})

	t.Run("writes after privatization stay private", func(t *testing.T) {
		original := NewZone(testCards(3), true)
		copied := original.clone()

		extra := &Card{ID: "x", Name: "Extra", Kind: KindTrainer}
		copied.Append(extra)
		copied.Append(extra)
		require.Equal(t, 5, copied.Count(), "Writer should accumulate both appends")
		require.Equal(t, 3, original.Count(), "Original should never see the writer's cards")
	})

	t.Run("release returns ownership to the survivor", func(t *testing.T) {
		original := NewZone(testCards(3), true)
		copied := original.clone()
		copied.release()

		require.False(t, original.Shared(), "Sole survivor should own the backing again")
		original.Append(&Card{ID: "y", Name: "Y", Kind: KindEnergy})
		require.Equal(t, 4, original.Count(), "Survivor should mutate in place")
	})

	t.Run("concurrent clone and release keep counters consistent", func(t *testing.T) {
		base := NewZone(testCards(8), true)
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				z := base.clone()
				z.privatize()
				z.Append(&Card{ID: "w", Kind: KindTrainer})
				z.release()
			}()
		}
		wg.Wait()

		require.False(t, base.Shared(), "All sibling owners should have released")
		require.Equal(t, 8, base.Count(), "Base zone contents should be unchanged")
	})
}

func TestZoneQueries(t *testing.T) {
	cards := testCards(4)
	z := NewZone(cards, true)

	t.Run("pointer identity membership", func(t *testing.T) {
		require.True(t, z.Contains(cards[2]), "Zone should contain its own card instance")
		other := &Card{ID: cards[2].ID, Name: cards[2].Name, Kind: KindBasic}
		require.False(t, z.Contains(other), "A distinct instance with equal fields is a different card")
	})

	t.Run("predicate counting", func(t *testing.T) {
		basics := Predicate{Name: "basic", Fn: func(c *Card) bool { return c.Kind == KindBasic }}
		require.Equal(t, 4, z.CountIf(basics), "All test cards are basics")
		require.True(t, z.Has(basics), "Has should report a match")

		nothing := Predicate{Name: "none", Fn: func(c *Card) bool { return false }}
		require.False(t, z.Has(nothing), "Has should report no match")
	})

	t.Run("nil predicate matches everything", func(t *testing.T) {
		require.Equal(t, 4, z.CountIf(Predicate{Name: "all"}), "Empty predicate matches all cards")
	})
}

func TestZoneShuffleAndDrain(t *testing.T) {
	t.Run("shuffle is a permutation", func(t *testing.T) {
		cards := testCards(10)
		z := NewZone(cards, true)
		z.Shuffle(rand.New(rand.NewSource(7)))

		require.Equal(t, 10, z.Count(), "Shuffle should not change the count")
		for _, c := range cards {
			require.True(t, z.Contains(c), "Shuffle should keep every card")
		}
	})

	t.Run("drain moves everything", func(t *testing.T) {
		src := NewZone(testCards(3), true)
		dst := NewZone(nil, true)
		src.DrainInto(&dst)

		require.Equal(t, 0, src.Count(), "Source should be empty after drain")
		require.Equal(t, 3, dst.Count(), "Destination should receive all cards")
	})

	t.Run("take top from empty zone", func(t *testing.T) {
		z := NewZone(nil, true)
		require.Nil(t, z.TakeTop(), "Empty zone should yield nil")
	})
}
