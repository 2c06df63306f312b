package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tcgcore/game"
)

func basicCard(id string) *game.Card {
	return &game.Card{ID: id, Name: id, Kind: game.KindBasic, HP: 50,
		Attacks: []game.Attack{{Name: "Hit", Cost: []game.EnergyType{game.EnergyWater}, Damage: 20}}}
}

func trainerCard(id string, effect game.Effect, supporter bool) *game.Card {
	return &game.Card{ID: id, Name: id, Kind: game.KindTrainer, Supporter: supporter, Effect: effect}
}

var anyBasic = game.Predicate{Name: "basic", Fn: func(c *game.Card) bool { return c.IsBasic() }}

func newDuel(deckSize int) *game.GameState {
	cards := make([]*game.Card, deckSize)
	for i := range cards {
		cards[i] = &game.Card{ID: "filler", Name: "Filler", Kind: game.KindTrainer,
			Effect: game.Effect{Kind: game.EffectHeal, Amount: 10}}
	}
	deck := game.Deck{Cards: cards, EnergyTypes: []game.EnergyType{game.EnergyWater}}
	g := game.NewGameState(deck, deck)
	g.Players[0].Board[0] = game.NewBoardCard(basicCard("active-a"), false)
	g.Players[1].Board[0] = game.NewBoardCard(basicCard("active-b"), false)
	return g
}

func TestForecastProbabilitiesSumToOne(t *testing.T) {
	g := newDuel(10)
	g.Players[0].Board[0].AttachedEnergy = []game.EnergyType{game.EnergyWater}

	cases := []game.Action{
		{Actor: 0, Type: game.ActionDraw},
		{Actor: 0, Type: game.ActionEndTurn},
		{Actor: 0, Type: game.ActionAttack, Card: g.Players[0].Board[0].Card},
	}
	for _, act := range cases {
		slots, err := Forecast(g.Public(), act)
		require.NoError(t, err, "Legal action should forecast: %s", act)
		require.True(t, SumsToOne(slots), "Probabilities should sum to 1 for %s", act)
	}
}

func TestDeterministicActionsForecastOneSlot(t *testing.T) {
	g := newDuel(10)
	slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionEndTurn})
	require.NoError(t, err, "Ending the turn should forecast")
	require.Len(t, slots, 1, "Deterministic actions have a single branch")
	require.Equal(t, 1.0, slots[0].Probability, "The single branch is certain")
	require.Equal(t, ResolverDeterministic, slots[0].Resolver.Kind, "The branch commits directly")
}

func TestCoinAttackForecast(t *testing.T) {
	g := newDuel(10)
	coin := &game.Card{ID: "coin", Name: "Coin", Kind: game.KindBasic, HP: 50,
		Attacks: []game.Attack{{Name: "Flip", Cost: []game.EnergyType{game.EnergyWater},
			Damage: 30, Coin: true}}}
	g.Players[0].Board[0] = game.NewBoardCard(coin, false)
	g.Players[0].Board[0].AttachedEnergy = []game.EnergyType{game.EnergyWater}

	slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionAttack, Card: coin})
	require.NoError(t, err, "Covered coin attack should forecast")
	require.Len(t, slots, 2, "A fair coin has two branches")
	require.Equal(t, 0.5, slots[0].Probability, "Heads is an even chance")
	require.Equal(t, 0.5, slots[1].Probability, "Tails is an even chance")
	require.True(t, slots[0].Resolver.Heads, "First branch commits heads")
	require.False(t, slots[1].Resolver.Heads, "Second branch commits tails")
}

func TestConcealedEffectsCollapseToOneSlot(t *testing.T) {
	t.Run("deck search with a known match", func(t *testing.T) {
		g := newDuel(17)
		g.Players[0].DeckZone.Append(basicCard("target"))
		ball := trainerCard("ball", game.Effect{Kind: game.EffectDeckSearch, Amount: 1, Filter: anyBasic}, false)
		g.Players[0].Hand.Append(ball)

		slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: ball})
		require.NoError(t, err, "Search with a known match should forecast")
		require.Len(t, slots, 1, "Concealed alternatives collapse into one slot")
		require.Equal(t, 1.0, slots[0].Probability, "The collapsed slot is certain")
		require.Equal(t, ResolverDeckSearch, slots[0].Resolver.Kind, "Resolution picks the concrete card")
	})

	t.Run("deck search with no match shuffles only", func(t *testing.T) {
		g := newDuel(10)
		ball := trainerCard("ball", game.Effect{Kind: game.EffectDeckSearch, Amount: 1, Filter: anyBasic}, false)
		g.Players[0].Hand.Append(ball)

		slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: ball})
		require.NoError(t, err, "Search with no match is still playable")
		require.Len(t, slots, 1, "The whiff is a single certain branch")
		require.Equal(t, ResolverShuffleOnly, slots[0].Resolver.Kind, "Only the shuffle happens")
	})

	t.Run("draw collapses to one slot", func(t *testing.T) {
		g := newDuel(10)
		research := trainerCard("research", game.Effect{Kind: game.EffectDraw, Amount: 2}, true)
		g.Players[0].Hand.Append(research)

		slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: research})
		require.NoError(t, err, "Draw trainer should forecast")
		require.Len(t, slots, 1, "Which cards come up stays concealed")
		require.Equal(t, ResolverDrawConcealed, slots[0].Resolver.Kind, "Resolution draws the concrete cards")
		require.Equal(t, 2, slots[0].Resolver.Count, "Slot carries the draw count")
	})
}

func TestForecastInvariantUnderConcealedPermutation(t *testing.T) {
	// Shuffling the deck changes concealed contents but no public
	// observation, so every forecast must be identical.
	g := newDuel(15)
	g.Players[0].DeckZone.Append(basicCard("somewhere"))
	ball := trainerCard("ball", game.Effect{Kind: game.EffectDeckSearch, Amount: 1, Filter: anyBasic}, false)
	g.Players[0].Hand.Append(ball)
	act := game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: ball}

	reference, err := Forecast(g.Public(), act)
	require.NoError(t, err, "Baseline forecast should succeed")

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 10; i++ {
		g.Players[0].DeckZone.Shuffle(rng)
		slots, err := Forecast(g.Public(), act)
		require.NoError(t, err, "Forecast should succeed after permutation %d", i)
		require.Equal(t, len(reference), len(slots), "Slot count must not depend on deck order")
		for j := range slots {
			require.Equal(t, reference[j].Probability, slots[j].Probability,
				"Probabilities must not depend on deck order")
			require.Equal(t, reference[j].Resolver.Kind, slots[j].Resolver.Kind,
				"Resolver kinds must not depend on deck order")
		}
	}
}

func TestCoinEnergyForecast(t *testing.T) {
	g := newDuel(10)
	misty := trainerCard("misty", game.Effect{Kind: game.EffectCoinEnergy, Energy: game.EnergyWater}, true)
	g.Players[0].Hand.Append(misty)

	slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: misty, Position: 0})
	require.NoError(t, err, "Coin energy trainer should forecast")
	require.Len(t, slots, coinEnergySlots, "Geometric series is expanded to a fixed depth")
	require.True(t, SumsToOne(slots), "Tail absorption keeps the sum at exactly 1")
	require.Equal(t, 0.5, slots[0].Probability, "Zero heads is the immediate tails branch")
	require.Equal(t, 0, slots[0].Resolver.Count, "Zero heads attaches nothing")
	require.Equal(t, 0.25, slots[1].Probability, "One head halves again")
	require.Equal(t, 1, slots[1].Resolver.Count, "One head attaches one energy")
	require.Equal(t, game.EnergyWater, slots[1].Resolver.Energy, "Slots carry the energy color")
}

func TestForecastRejections(t *testing.T) {
	t.Run("card not in hand", func(t *testing.T) {
		g := newDuel(10)
		stray := trainerCard("stray", game.Effect{Kind: game.EffectDraw, Amount: 1}, false)

		slots, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: stray})
		require.Nil(t, slots, "Illegal actions yield no slots")
		require.True(t, game.IsKind(err, game.ErrorCardNotInHand), "Kind should identify the violation")
	})

	t.Run("second supporter in a turn", func(t *testing.T) {
		g := newDuel(10)
		research := trainerCard("research", game.Effect{Kind: game.EffectDraw, Amount: 2}, true)
		g.Players[0].Hand.Append(research)
		g.HasPlayedSupporter = true

		_, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: research})
		require.True(t, game.IsKind(err, game.ErrorIllegalMove), "Supporter limit should be enforced")
	})

	t.Run("attack without energy", func(t *testing.T) {
		g := newDuel(10)
		_, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionAttack,
			Card: g.Players[0].Board[0].Card})
		require.True(t, game.IsKind(err, game.ErrorMissingEnergy), "Uncovered cost should be rejected")
	})

	t.Run("finished game", func(t *testing.T) {
		g := newDuel(10)
		g.Outcome = game.Win(1)
		_, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionEndTurn})
		require.True(t, game.IsKind(err, game.ErrorGameAlreadyOver), "No forecasting after the match ends")
	})

	t.Run("draw trainer on an empty deck", func(t *testing.T) {
		g := newDuel(0)
		research := trainerCard("research", game.Effect{Kind: game.EffectDraw, Amount: 2}, true)
		g.Players[0].Hand.Append(research)

		_, err := Forecast(g.Public(), game.Action{Actor: 0, Type: game.ActionPlayTrainer, Card: research})
		require.True(t, game.IsKind(err, game.ErrorEmptyZone), "Deck emptiness is publicly checkable")
	})
}
