package catalogue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tcgcore/game"
)

func TestCataloguePool(t *testing.T) {
	t.Run("lookup returns shared instances", func(t *testing.T) {
		a, ok := ByID("pikachu")
		require.True(t, ok, "Built-in card should resolve")
		b, _ := ByID("pikachu")
		require.Same(t, a, b, "Every lookup shares one instance")
		require.Same(t, Pikachu, a, "The exported variable is the same instance")
	})

	t.Run("unknown card misses", func(t *testing.T) {
		_, ok := ByID("missingno")
		require.False(t, ok, "Unknown identifiers should miss")
	})

	t.Run("evolution lines are linked by name", func(t *testing.T) {
		require.Equal(t, Pikachu.Name, Raichu.EvolvesFrom, "Raichu evolves from Pikachu")
		require.Equal(t, Mankey.Name, Primeape.EvolvesFrom, "Primeape evolves from Mankey")
	})

	t.Run("filters match their intended targets", func(t *testing.T) {
		require.True(t, BasicCreature.Matches(Pikachu), "Pikachu is a basic creature")
		require.False(t, BasicCreature.Matches(Raichu), "Raichu is not basic")
		require.False(t, BasicCreature.Matches(Potion), "Trainers are not creatures")
		require.True(t, PsychicCreature.Matches(Abra), "Abra is psychic")
		require.False(t, PsychicCreature.Matches(Staryu), "Staryu is not psychic")
	})
}

func TestDeckListParsing(t *testing.T) {
	t.Run("yaml deck list builds with duplicates shared", func(t *testing.T) {
		deck, err := ParseDeck([]byte(`
name: test
energy: [water]
cards:
  - id: staryu
    count: 2
  - id: misty
    count: 1
`))
		require.NoError(t, err, "Well-formed deck list should parse")
		require.Len(t, deck.Cards, 3, "Counts expand into copies")
		require.Same(t, deck.Cards[0], deck.Cards[1], "Copies share the catalogue instance")
		require.Equal(t, []game.EnergyType{game.EnergyWater}, deck.EnergyTypes,
			"The energy generator colors come from the list")
	})

	t.Run("unknown card is rejected", func(t *testing.T) {
		_, err := ParseDeck([]byte("name: bad\nenergy: [fire]\ncards:\n  - id: missingno\n"))
		require.Error(t, err, "Unknown cards should fail the build")
		require.Contains(t, err.Error(), "missingno", "The error should name the card")
	})

	t.Run("missing energy is rejected", func(t *testing.T) {
		_, err := ParseDeck([]byte("name: bad\ncards:\n  - id: pikachu\n"))
		require.Error(t, err, "A deck needs generator colors")
	})

	t.Run("malformed yaml is rejected", func(t *testing.T) {
		_, err := ParseDeck([]byte("cards: [unclosed"))
		require.Error(t, err, "Broken YAML should not build")
	})
}

func TestStandardDecks(t *testing.T) {
	a, b := StandardDecks()
	require.Len(t, a.Cards, 20, "Built-in deck A is 20 cards")
	require.Len(t, b.Cards, 20, "Built-in deck B is 20 cards")
	require.NotEmpty(t, a.EnergyTypes, "Deck A has generator colors")
	require.NotEmpty(t, b.EnergyTypes, "Deck B has generator colors")

	for _, c := range a.Cards {
		registered, ok := ByID(c.ID)
		require.True(t, ok, "Every deck card comes from the catalogue")
		require.Same(t, registered, c, "Deck cards share the catalogue instance")
	}
}
