package catalogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tcgcore/game"
)

// DeckList is the YAML deck file shape:
//
//	name: electric-rush
//	energy: [electric]
//	cards:
//	  - id: pikachu
//	    count: 2
type DeckList struct {
	Name   string      `yaml:"name"`
	Energy []string    `yaml:"energy"`
	Cards  []DeckEntry `yaml:"cards"`
}

type DeckEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

var energyNames = map[string]game.EnergyType{
	"grass":    game.EnergyGrass,
	"fire":     game.EnergyFire,
	"water":    game.EnergyWater,
	"electric": game.EnergyElectric,
	"psychic":  game.EnergyPsychic,
	"fighting": game.EnergyFighting,
}

// Build resolves a deck list against the catalogue.
func (dl DeckList) Build() (game.Deck, error) {
	deck := game.Deck{}
	for _, name := range dl.Energy {
		e, ok := energyNames[name]
		if !ok {
			return game.Deck{}, fmt.Errorf("deck %q: unknown energy type %q", dl.Name, name)
		}
		deck.EnergyTypes = append(deck.EnergyTypes, e)
	}
	if len(deck.EnergyTypes) == 0 {
		return game.Deck{}, fmt.Errorf("deck %q: no energy types", dl.Name)
	}
	for _, entry := range dl.Cards {
		card, ok := ByID(entry.ID)
		if !ok {
			return game.Deck{}, fmt.Errorf("deck %q: unknown card %q", dl.Name, entry.ID)
		}
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			deck.Cards = append(deck.Cards, card)
		}
	}
	if len(deck.Cards) == 0 {
		return game.Deck{}, fmt.Errorf("deck %q: no cards", dl.Name)
	}
	return deck, nil
}

// ParseDeck builds a deck from YAML deck list bytes.
func ParseDeck(data []byte) (game.Deck, error) {
	var dl DeckList
	if err := yaml.Unmarshal(data, &dl); err != nil {
		return game.Deck{}, fmt.Errorf("parsing deck list: %w", err)
	}
	return dl.Build()
}

// LoadDeck reads and builds a deck list file.
func LoadDeck(path string) (game.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Deck{}, fmt.Errorf("reading deck list: %w", err)
	}
	return ParseDeck(data)
}

// StandardDecks returns the two built-in demo decks, 20 cards each.
func StandardDecks() (game.Deck, game.Deck) {
	electric := DeckList{
		Name:   "electric-rush",
		Energy: []string{"electric"},
		Cards: []DeckEntry{
			{ID: "pikachu", Count: 4},
			{ID: "raichu", Count: 3},
			{ID: "mankey", Count: 3},
			{ID: "primeape", Count: 2},
			{ID: "potion", Count: 2},
			{ID: "professors-research", Count: 2},
			{ID: "poke-ball", Count: 2},
			{ID: "red-card", Count: 2},
		},
	}
	water := DeckList{
		Name:   "tidal-psy",
		Energy: []string{"water", "psychic"},
		Cards: []DeckEntry{
			{ID: "staryu", Count: 4},
			{ID: "starmie", Count: 3},
			{ID: "abra", Count: 3},
			{ID: "kadabra", Count: 2},
			{ID: "misty", Count: 2},
			{ID: "mythical-slab", Count: 2},
			{ID: "professors-research", Count: 2},
			{ID: "poke-ball", Count: 2},
		},
	}
	a, err := electric.Build()
	if err != nil {
		panic(err)
	}
	b, err := water.Build()
	if err != nil {
		panic(err)
	}
	return a, b
}
