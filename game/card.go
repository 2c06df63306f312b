package game

// CardKind classifies a card within a deck list.
type CardKind int

const (
	KindBasic CardKind = iota
	KindStage1
	KindStage2
	KindTrainer
	KindEnergy
	KindSpecial
)

func (k CardKind) String() string {
	switch k {
	case KindBasic:
		return "Basic"
	case KindStage1:
		return "Stage1"
	case KindStage2:
		return "Stage2"
	case KindTrainer:
		return "Trainer"
	case KindEnergy:
		return "Energy"
	case KindSpecial:
		return "Special"
	}
	return "Unknown"
}

// EnergyType is the color of an energy or of a creature card.
type EnergyType int

const (
	EnergyNone EnergyType = iota
	EnergyGrass
	EnergyFire
	EnergyWater
	EnergyElectric
	EnergyPsychic
	EnergyFighting
	EnergyColorless
)

func (e EnergyType) String() string {
	switch e {
	case EnergyGrass:
		return "Grass"
	case EnergyFire:
		return "Fire"
	case EnergyWater:
		return "Water"
	case EnergyElectric:
		return "Electric"
	case EnergyPsychic:
		return "Psychic"
	case EnergyFighting:
		return "Fighting"
	case EnergyColorless:
		return "Colorless"
	}
	return "None"
}

// Attack describes one attack printed on a creature card.
type Attack struct {
	Name   string
	Cost   []EnergyType // Colorless entries are wildcards
	Damage int
	Coin   bool // damage lands only on heads
}

// EffectKind enumerates the built-in trainer behaviors the forecast and
// resolution engines understand. The catalogue assigns one per trainer
// card.
type EffectKind int

const (
	EffectNone        EffectKind = iota
	EffectHeal                   // heal Amount at a slot of the actor's choice
	EffectDraw                   // draw Amount cards from the concealed deck
	EffectDeckSearch             // move one deck card matching Filter into hand
	EffectShuffleDraw            // opponent shuffles hand into deck, draws Amount
	EffectRevealTop              // reveal top deck card; Filter routes hand/bottom
	EffectCoinEnergy             // flip until tails, attach that many Energy
)

// Effect is the per-card effect descriptor supplied by the catalogue.
type Effect struct {
	Kind   EffectKind
	Amount int
	Energy EnergyType
	Filter Predicate
}

// Predicate is a named category test over cards, supplied by the
// catalogue. Forecasting code may only apply it in aggregate (via
// PublicView queries); resolution applies it to concrete cards.
type Predicate struct {
	Name string
	Fn   func(*Card) bool
}

// Matches reports whether the predicate holds for the card. A zero
// predicate matches everything.
func (p Predicate) Matches(c *Card) bool {
	if p.Fn == nil {
		return true
	}
	return p.Fn(c)
}

// Card is an immutable card definition. Cards are shared by pointer
// across zones, states and clones, and are never mutated in place.
type Card struct {
	ID          string
	Name        string
	Kind        CardKind
	HP          int
	Energy      EnergyType
	EvolvesFrom string // name of the pre-evolution, creatures only
	Attacks     []Attack
	RetreatCost int
	Supporter   bool // trainer subtype: one supporter per turn
	Effect      Effect
}

// IsCreature reports whether the card can be placed on the board.
func (c *Card) IsCreature() bool {
	switch c.Kind {
	case KindBasic, KindStage1, KindStage2, KindSpecial:
		return true
	}
	return false
}

// IsBasic reports whether the card can be placed without evolving.
func (c *Card) IsBasic() bool {
	return c.Kind == KindBasic || c.Kind == KindSpecial
}

// Deck is a deck list plus the energy colors its generator produces.
type Deck struct {
	Cards       []*Card
	EnergyTypes []EnergyType
}
