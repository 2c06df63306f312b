package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameErrorMatching(t *testing.T) {
	t.Run("errors.Is matches by kind", func(t *testing.T) {
		err := CardNotInHand("Potion", 0)
		require.True(t, errors.Is(err, CardNotInHand("", 1)), "Same kind should match regardless of detail")
		require.False(t, errors.Is(err, EmptyZone(0, "deck")), "Different kinds should not match")
	})

	t.Run("IsKind inspects wrapped errors", func(t *testing.T) {
		wrapped := errWrap{inner: NoActivePokemon(1)}
		require.True(t, IsKind(wrapped, ErrorNoActivePokemon), "Kind should match through wrapping")
		require.False(t, IsKind(wrapped, ErrorEmptyZone), "Wrong kind should not match")
	})

	t.Run("messages carry the violation details", func(t *testing.T) {
		err := CardNotInHand("Misty", 1)
		require.Contains(t, err.Error(), "Misty", "Message should name the card")
		require.Contains(t, err.Error(), "player 2", "Message should name the player one-based")

		err = MissingEnergy([]EnergyType{EnergyWater, EnergyWater}, []EnergyType{EnergyWater})
		require.Contains(t, err.Error(), "energy", "Message should describe the shortfall")
	})
}

func TestInvariantErrorIsNotAGameError(t *testing.T) {
	inv := Invariantf("conservation", "card count changed from %d to %d", 40, 39)
	var ge *GameError
	require.False(t, errors.As(inv, &ge), "Invariant breaches are not rule violations")
	require.Contains(t, inv.Error(), "conservation", "Message should name the broken invariant")
	require.Contains(t, inv.Error(), "40", "Message should carry the details")
}

type errWrap struct{ inner error }

func (w errWrap) Error() string { return "wrapped: " + w.inner.Error() }
func (w errWrap) Unwrap() error { return w.inner }
