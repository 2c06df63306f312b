// Package catalogue holds the built-in card pool and deck list
// loading. Every card has exactly one *game.Card instance shared by
// all decks, so zone membership checks can rely on pointer identity.
package catalogue

import (
	"sort"

	"tcgcore/game"
)

// BasicCreature matches basic creatures, the Poke Ball search filter.
var BasicCreature = game.Predicate{
	Name: "basic creature",
	Fn:   func(c *game.Card) bool { return c.IsBasic() && c.IsCreature() },
}

// PsychicCreature matches psychic creatures, the Mythical Slab filter.
var PsychicCreature = game.Predicate{
	Name: "psychic creature",
	Fn:   func(c *game.Card) bool { return c.IsCreature() && c.Energy == game.EnergyPsychic },
}

var pool = map[string]*game.Card{}

func register(c *game.Card) *game.Card {
	pool[c.ID] = c
	return c
}

// ByID looks up the shared card instance for an identifier.
func ByID(id string) (*game.Card, bool) {
	c, ok := pool[id]
	return c, ok
}

// IDs lists every registered card identifier, sorted.
func IDs() []string {
	ids := make([]string, 0, len(pool))
	for id := range pool {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	Pikachu = register(&game.Card{
		ID:     "pikachu",
		Name:   "Pikachu",
		Kind:   game.KindBasic,
		HP:     60,
		Energy: game.EnergyElectric,
		Attacks: []game.Attack{
			{Name: "Gnaw", Cost: []game.EnergyType{game.EnergyElectric}, Damage: 20},
		},
		RetreatCost: 1,
	})

	Raichu = register(&game.Card{
		ID:          "raichu",
		Name:        "Raichu",
		Kind:        game.KindStage1,
		HP:          100,
		Energy:      game.EnergyElectric,
		EvolvesFrom: "Pikachu",
		Attacks: []game.Attack{
			{Name: "Thunderbolt", Cost: []game.EnergyType{
				game.EnergyElectric, game.EnergyElectric, game.EnergyColorless}, Damage: 100},
		},
		RetreatCost: 1,
	})

	Mankey = register(&game.Card{
		ID:     "mankey",
		Name:   "Mankey",
		Kind:   game.KindBasic,
		HP:     50,
		Energy: game.EnergyFighting,
		Attacks: []game.Attack{
			{Name: "Reckless Charge", Cost: []game.EnergyType{game.EnergyFighting},
				Damage: 30, Coin: true},
		},
		RetreatCost: 1,
	})

	Primeape = register(&game.Card{
		ID:          "primeape",
		Name:        "Primeape",
		Kind:        game.KindStage1,
		HP:          90,
		Energy:      game.EnergyFighting,
		EvolvesFrom: "Mankey",
		Attacks: []game.Attack{
			{Name: "Fight", Cost: []game.EnergyType{
				game.EnergyFighting, game.EnergyFighting}, Damage: 50},
		},
		RetreatCost: 2,
	})

	Staryu = register(&game.Card{
		ID:     "staryu",
		Name:   "Staryu",
		Kind:   game.KindBasic,
		HP:     50,
		Energy: game.EnergyWater,
		Attacks: []game.Attack{
			{Name: "Slap", Cost: []game.EnergyType{game.EnergyWater}, Damage: 20},
		},
		RetreatCost: 1,
	})

	Starmie = register(&game.Card{
		ID:          "starmie",
		Name:        "Starmie",
		Kind:        game.KindStage1,
		HP:          90,
		Energy:      game.EnergyWater,
		EvolvesFrom: "Staryu",
		Attacks: []game.Attack{
			{Name: "Hydro Splash", Cost: []game.EnergyType{
				game.EnergyWater, game.EnergyWater}, Damage: 60},
		},
		RetreatCost: 0,
	})

	Abra = register(&game.Card{
		ID:     "abra",
		Name:   "Abra",
		Kind:   game.KindBasic,
		HP:     40,
		Energy: game.EnergyPsychic,
		Attacks: []game.Attack{
			{Name: "Psyshot", Cost: []game.EnergyType{game.EnergyPsychic}, Damage: 10},
		},
		RetreatCost: 1,
	})

	Kadabra = register(&game.Card{
		ID:          "kadabra",
		Name:        "Kadabra",
		Kind:        game.KindStage1,
		HP:          80,
		Energy:      game.EnergyPsychic,
		EvolvesFrom: "Abra",
		Attacks: []game.Attack{
			{Name: "Super Psy Bolt", Cost: []game.EnergyType{
				game.EnergyPsychic, game.EnergyColorless}, Damage: 60},
		},
		RetreatCost: 1,
	})

	Potion = register(&game.Card{
		ID:     "potion",
		Name:   "Potion",
		Kind:   game.KindTrainer,
		Effect: game.Effect{Kind: game.EffectHeal, Amount: 20},
	})

	ProfessorsResearch = register(&game.Card{
		ID:        "professors-research",
		Name:      "Professor's Research",
		Kind:      game.KindTrainer,
		Supporter: true,
		Effect:    game.Effect{Kind: game.EffectDraw, Amount: 2},
	})

	PokeBall = register(&game.Card{
		ID:     "poke-ball",
		Name:   "Poke Ball",
		Kind:   game.KindTrainer,
		Effect: game.Effect{Kind: game.EffectDeckSearch, Amount: 1, Filter: BasicCreature},
	})

	RedCard = register(&game.Card{
		ID:     "red-card",
		Name:   "Red Card",
		Kind:   game.KindTrainer,
		Effect: game.Effect{Kind: game.EffectShuffleDraw, Amount: 3},
	})

	MythicalSlab = register(&game.Card{
		ID:     "mythical-slab",
		Name:   "Mythical Slab",
		Kind:   game.KindTrainer,
		Effect: game.Effect{Kind: game.EffectRevealTop, Filter: PsychicCreature},
	})

	Misty = register(&game.Card{
		ID:        "misty",
		Name:      "Misty",
		Kind:      game.KindTrainer,
		Supporter: true,
		Effect:    game.Effect{Kind: game.EffectCoinEnergy, Energy: game.EnergyWater},
	})
)
