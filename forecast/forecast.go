// Package forecast maps candidate actions to probability-weighted
// outcome slots without inspecting concealed zone contents. Everything
// it observes comes through game.PublicView, so the slot set and the
// probabilities can only depend on public predicates: a forecast is
// invariant under any permutation of concealed contents that preserves
// them. The concrete choice among concealed alternatives is deferred to
// the slot's resolver, committed later by the resolve package.
package forecast

import (
	"math"

	"tcgcore/game"
)

// ResolverKind tags the fixed set of resolver behaviors. Keeping
// resolvers as data rather than captured closures makes forecasts
// inspectable and testable.
type ResolverKind int

const (
	// ResolverDeterministic applies the action's single public outcome.
	ResolverDeterministic ResolverKind = iota
	// ResolverDrawConcealed draws Count cards from the concealed deck.
	ResolverDrawConcealed
	// ResolverDeckSearch picks one deck card matching Predicate,
	// uniformly at random, into the actor's hand, then shuffles.
	ResolverDeckSearch
	// ResolverCoinFlip commits the Heads branch of a fair coin attack.
	ResolverCoinFlip
	// ResolverShuffleHandDraw shuffles the opponent's hand into their
	// deck and draws Count replacements.
	ResolverShuffleHandDraw
	// ResolverRevealTop reveals the top deck card; Predicate routes it
	// to hand, otherwise it goes to the bottom.
	ResolverRevealTop
	// ResolverCoinEnergy attaches Count energies of Energy color,
	// the committed outcome of a flip-until-tails sequence.
	ResolverCoinEnergy
	// ResolverShuffleOnly reshuffles the actor's deck (a search whose
	// enabling predicate publicly fails).
	ResolverShuffleOnly
)

func (k ResolverKind) String() string {
	switch k {
	case ResolverDeterministic:
		return "Deterministic"
	case ResolverDrawConcealed:
		return "DrawConcealed"
	case ResolverDeckSearch:
		return "DeckSearch"
	case ResolverCoinFlip:
		return "CoinFlip"
	case ResolverShuffleHandDraw:
		return "ShuffleHandDraw"
	case ResolverRevealTop:
		return "RevealTop"
	case ResolverCoinEnergy:
		return "CoinEnergy"
	case ResolverShuffleOnly:
		return "ShuffleOnly"
	}
	return "Unknown"
}

// Resolver is one tagged variant of the resolver enumeration.
type Resolver struct {
	Kind      ResolverKind
	Count     int
	Heads     bool
	Energy    game.EnergyType
	Predicate game.Predicate
}

// OutcomeSlot pairs a probability with the resolver that commits the
// outcome. Probabilities of one forecast sum to 1 within Epsilon.
type OutcomeSlot struct {
	Probability float64
	Resolver    Resolver
}

// Epsilon bounds the allowed drift of a forecast's probability sum.
const Epsilon = 1e-9

// SumsToOne reports whether the slot probabilities total 1 ± Epsilon.
func SumsToOne(slots []OutcomeSlot) bool {
	sum := 0.0
	for _, s := range slots {
		sum += s.Probability
	}
	return math.Abs(sum-1.0) <= Epsilon
}

// coinEnergySlots is how far the flip-until-tails series is expanded
// before the tail is absorbed into the final slot.
const coinEnergySlots = 6

// Forecast maps a candidate action to its outcome slots. It validates
// legality against public state only: conditions that would require
// looking inside a concealed zone's concrete contents are deliberately
// not checked here, since checking them would itself leak. Illegal
// actions return a typed *game.GameError and no slots.
func Forecast(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	if v.GameOver() {
		return nil, game.GameAlreadyOver()
	}

	switch act.Type {
	case game.ActionDraw:
		// Drawing from an empty deck is a public no-op, still one slot.
		return single(Resolver{Kind: ResolverDrawConcealed, Count: 1}), nil

	case game.ActionPlace:
		return forecastPlace(v, act)

	case game.ActionEvolve:
		return forecastEvolve(v, act)

	case game.ActionAttachEnergy:
		return forecastAttach(v, act)

	case game.ActionPlayTrainer:
		return forecastTrainer(v, act)

	case game.ActionAttack:
		return forecastAttack(v, act)

	case game.ActionRetreat:
		return forecastRetreat(v, act)

	case game.ActionActivate:
		if v.Board(act.Actor, act.Position) == nil {
			return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
		}
		return single(Resolver{Kind: ResolverDeterministic}), nil

	case game.ActionHeal:
		if v.Board(act.Actor, act.Position) == nil {
			return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
		}
		return single(Resolver{Kind: ResolverDeterministic}), nil

	case game.ActionApplyDamage:
		target := game.Opponent(act.Actor)
		if v.Board(target, act.Position) == nil {
			return nil, game.NoPokemonAtPosition(target, act.Position)
		}
		return single(Resolver{Kind: ResolverDeterministic}), nil

	case game.ActionEndTurn:
		return single(Resolver{Kind: ResolverDeterministic}), nil
	}

	return nil, game.InvalidAction(act.String(), "unknown action type")
}

func single(r Resolver) []OutcomeSlot {
	return []OutcomeSlot{{Probability: 1.0, Resolver: r}}
}

func forecastPlace(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	if act.Card == nil || !act.Card.IsBasic() {
		return nil, game.InvalidAction(act.String(), "only basics can be placed")
	}
	if !v.HandContains(act.Actor, act.Card) {
		return nil, game.CardNotInHand(act.Card.Name, act.Actor)
	}
	if act.Position < 0 || act.Position >= game.BoardSize {
		return nil, game.InvalidCardPosition(act.Position, game.BoardSize-1)
	}
	if v.Board(act.Actor, act.Position) != nil {
		return nil, game.InvalidAction(act.String(), "slot is occupied")
	}
	return single(Resolver{Kind: ResolverDeterministic}), nil
}

func forecastEvolve(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	if act.Card == nil || (act.Card.Kind != game.KindStage1 && act.Card.Kind != game.KindStage2) {
		return nil, game.InvalidEvolution("only stage 1 or 2 cards can evolve a creature")
	}
	if !v.HandContains(act.Actor, act.Card) {
		return nil, game.CardNotInHand(act.Card.Name, act.Actor)
	}
	target := v.Board(act.Actor, act.Position)
	if target == nil {
		return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
	}
	if target.PlayedThisTurn {
		return nil, game.InvalidEvolution("creature entered play this turn")
	}
	if act.Card.EvolvesFrom != target.Card.Name {
		return nil, game.InvalidEvolution(
			act.Card.Name + " does not evolve from " + target.Card.Name)
	}
	return single(Resolver{Kind: ResolverDeterministic}), nil
}

func forecastAttach(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	if v.CurrentEnergy() == game.EnergyNone {
		return nil, game.InvalidAttachment("no turn energy available")
	}
	if act.Energy != v.CurrentEnergy() {
		return nil, game.InvalidAttachment("energy does not match the turn energy")
	}
	if v.Board(act.Actor, act.Position) == nil {
		return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
	}
	return single(Resolver{Kind: ResolverDeterministic}), nil
}

func forecastRetreat(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	active := v.Board(act.Actor, 0)
	if active == nil {
		return nil, game.NoActivePokemon(act.Actor)
	}
	if v.HasRetreated() {
		return nil, game.IllegalMove("already retreated this turn")
	}
	if act.Position <= 0 || act.Position >= game.BoardSize {
		return nil, game.InvalidAction(act.String(), "can only retreat to bench positions 1-3")
	}
	if v.Board(act.Actor, act.Position) == nil {
		return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
	}
	if len(active.AttachedEnergy) < active.Card.RetreatCost {
		required := make([]game.EnergyType, active.Card.RetreatCost)
		for i := range required {
			required[i] = game.EnergyColorless
		}
		return nil, game.MissingEnergy(required, active.AttachedEnergy)
	}
	return single(Resolver{Kind: ResolverDeterministic}), nil
}

func forecastAttack(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	active := v.Board(act.Actor, 0)
	if active == nil {
		return nil, game.NoActivePokemon(act.Actor)
	}
	if act.AttackIndex < 0 || act.AttackIndex >= len(active.Card.Attacks) {
		return nil, game.InvalidAction(act.String(), "no such attack")
	}
	if active.Paralyzed || active.Asleep {
		return nil, game.IllegalMove("active creature cannot attack")
	}
	attack := active.Card.Attacks[act.AttackIndex]
	if !game.EnergyCovers(active.AttachedEnergy, attack.Cost) {
		return nil, game.MissingEnergy(attack.Cost, active.AttachedEnergy)
	}
	if v.Board(game.Opponent(act.Actor), 0) == nil {
		return nil, game.NoActivePokemon(game.Opponent(act.Actor))
	}

	if attack.Coin {
		// Two genuinely public branches of a fair coin.
		return []OutcomeSlot{
			{Probability: 0.5, Resolver: Resolver{Kind: ResolverCoinFlip, Heads: true}},
			{Probability: 0.5, Resolver: Resolver{Kind: ResolverCoinFlip, Heads: false}},
		}, nil
	}
	return single(Resolver{Kind: ResolverDeterministic}), nil
}

func forecastTrainer(v *game.PublicView, act game.Action) ([]OutcomeSlot, error) {
	card := act.Card
	if card == nil || card.Kind != game.KindTrainer {
		return nil, game.InvalidAction(act.String(), "not a trainer card")
	}
	if !v.HandContains(act.Actor, card) {
		return nil, game.CardNotInHand(card.Name, act.Actor)
	}
	if card.Supporter && v.HasPlayedSupporter() {
		return nil, game.IllegalMove("already played a supporter this turn")
	}

	switch card.Effect.Kind {
	case game.EffectHeal:
		if v.Board(act.Actor, act.Position) == nil {
			return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
		}
		return single(Resolver{Kind: ResolverDeterministic}), nil

	case game.EffectDraw:
		if v.DeckEmpty(act.Actor) {
			return nil, game.EmptyZone(act.Actor, "deck")
		}
		return single(Resolver{Kind: ResolverDrawConcealed, Count: card.Effect.Amount}), nil

	case game.EffectDeckSearch:
		// The enabling predicate is an aggregate query; which card
		// satisfies it stays concealed until resolution. All internal
		// possibilities collapse into a single slot.
		if !v.DeckHas(act.Actor, card.Effect.Filter) {
			return single(Resolver{Kind: ResolverShuffleOnly}), nil
		}
		return single(Resolver{
			Kind:      ResolverDeckSearch,
			Count:     max(card.Effect.Amount, 1),
			Predicate: card.Effect.Filter,
		}), nil

	case game.EffectShuffleDraw:
		return single(Resolver{Kind: ResolverShuffleHandDraw, Count: card.Effect.Amount}), nil

	case game.EffectRevealTop:
		if v.DeckEmpty(act.Actor) {
			return nil, game.EmptyZone(act.Actor, "deck")
		}
		return single(Resolver{Kind: ResolverRevealTop, Predicate: card.Effect.Filter}), nil

	case game.EffectCoinEnergy:
		if v.Board(act.Actor, act.Position) == nil {
			return nil, game.NoPokemonAtPosition(act.Actor, act.Position)
		}
		return coinEnergyForecast(card.Effect.Energy), nil
	}

	return nil, game.InvalidAction(act.String(), "trainer has no effect descriptor")
}

// coinEnergyForecast expands flip-until-tails into geometric slots:
// P(k heads) = 2^-(k+1), with the final slot absorbing the remaining
// tail so the distribution sums to exactly 1.
func coinEnergyForecast(energy game.EnergyType) []OutcomeSlot {
	slots := make([]OutcomeSlot, 0, coinEnergySlots)
	remaining := 1.0
	for k := 0; k < coinEnergySlots-1; k++ {
		p := math.Pow(0.5, float64(k+1))
		remaining -= p
		slots = append(slots, OutcomeSlot{
			Probability: p,
			Resolver:    Resolver{Kind: ResolverCoinEnergy, Count: k, Energy: energy},
		})
	}
	slots = append(slots, OutcomeSlot{
		Probability: remaining,
		Resolver:    Resolver{Kind: ResolverCoinEnergy, Count: coinEnergySlots - 1, Energy: energy},
	})
	return slots
}
