// Package resolve commits forecast outcome slots against a GameState.
// This is the only layer with full visibility: resolvers enumerate
// concealed zone contents, consume randomness, and mutate state.
// Card conservation is recounted around every resolution; a breach is
// reported as *game.InvariantError and the state must be discarded.
package resolve

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tcgcore/forecast"
	"tcgcore/game"
)

type resolverFunc func(rng *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error

var resolvers = map[forecast.ResolverKind]resolverFunc{
	forecast.ResolverDeterministic:   resolveDeterministic,
	forecast.ResolverDrawConcealed:   resolveDrawConcealed,
	forecast.ResolverDeckSearch:      resolveDeckSearch,
	forecast.ResolverCoinFlip:        resolveCoinFlip,
	forecast.ResolverShuffleHandDraw: resolveShuffleHandDraw,
	forecast.ResolverRevealTop:       resolveRevealTop,
	forecast.ResolverCoinEnergy:      resolveCoinEnergy,
	forecast.ResolverShuffleOnly:     resolveShuffleOnly,
}

// Apply commits one outcome slot. The action must be the same action
// the slot was forecast for. GameError means the action turned out
// illegal and the state is untouched; InvariantError means the state
// is corrupt and must be thrown away.
func Apply(rng *rand.Rand, g *game.GameState, act game.Action, slot forecast.OutcomeSlot) error {
	fn, ok := resolvers[slot.Resolver.Kind]
	if !ok {
		return game.Invariantf("resolve", "no resolver registered for kind %s", slot.Resolver.Kind)
	}

	before := g.TotalCards()

	if err := fn(rng, g, act, slot.Resolver); err != nil {
		return err
	}
	// Frontier actions never queue new entries themselves, so the
	// entry they answered is still on top here.
	if act.FromFrontier {
		g.PopFrontier()
	}

	if after := g.TotalCards(); after != before {
		return game.Invariantf("conservation",
			"card count changed from %d to %d resolving %s", before, after, act.String())
	}

	log.Debug().
		Int("player", act.Actor).
		Str("action", act.String()).
		Str("resolver", slot.Resolver.Kind.String()).
		Msgf("resolved action on turn %d", g.Turn)
	return nil
}

// Sample draws one slot from a forecast, weighted by probability.
func Sample(rng *rand.Rand, slots []forecast.OutcomeSlot) forecast.OutcomeSlot {
	roll := rng.Float64()
	cumulative := 0.0
	for _, s := range slots {
		cumulative += s.Probability
		if roll < cumulative {
			return s
		}
	}
	// Floating point drift lands on the final slot.
	return slots[len(slots)-1]
}

// Step forecasts an action, samples one outcome, and applies it.
func Step(rng *rand.Rand, g *game.GameState, act game.Action) error {
	slots, err := forecast.Forecast(g.Public(), act)
	if err != nil {
		return err
	}
	return Apply(rng, g, act, Sample(rng, slots))
}

// spendTrainer moves a played trainer from hand to discard and marks
// the supporter flag. Shared by every trainer resolver.
func spendTrainer(g *game.GameState, act game.Action) error {
	if err := g.DiscardFromHand(act.Actor, act.Card); err != nil {
		return err
	}
	if act.Card.Supporter {
		g.HasPlayedSupporter = true
	}
	return nil
}

func resolveDeterministic(rng *rand.Rand, g *game.GameState, act game.Action, _ forecast.Resolver) error {
	switch act.Type {
	case game.ActionPlace:
		if err := g.RemoveFromHand(act.Actor, act.Card); err != nil {
			return err
		}
		g.Players[act.Actor].Board[act.Position] = game.NewBoardCard(act.Card, true)
		return nil

	case game.ActionEvolve:
		return resolveEvolve(g, act)

	case game.ActionAttachEnergy:
		bc, err := g.BoardAt(act.Actor, act.Position)
		if err != nil {
			return err
		}
		bc.AttachedEnergy = append(bc.AttachedEnergy, act.Energy)
		g.CurrentEnergy = game.EnergyNone
		return nil

	case game.ActionPlayTrainer:
		// Deterministic trainers are the heal effects.
		bc, err := g.BoardAt(act.Actor, act.Position)
		if err != nil {
			return err
		}
		bc.Heal(act.Card.Effect.Amount)
		return spendTrainer(g, act)

	case game.ActionAttack:
		return resolveAttack(rng, g, act, false, false)

	case game.ActionRetreat:
		return resolveRetreat(g, act)

	case game.ActionActivate:
		player := &g.Players[act.Actor]
		if player.Board[act.Position] == nil {
			return game.NoPokemonAtPosition(act.Actor, act.Position)
		}
		player.Board[0], player.Board[act.Position] = player.Board[act.Position], player.Board[0]
		return nil

	case game.ActionHeal:
		bc, err := g.BoardAt(act.Actor, act.Position)
		if err != nil {
			return err
		}
		bc.Heal(act.Amount)
		return nil

	case game.ActionApplyDamage:
		return resolveApplyDamage(g, act)

	case game.ActionEndTurn:
		return g.AdvanceTurn(rng)
	}
	return game.InvalidAction(act.String(), "no deterministic resolution")
}

func resolveEvolve(g *game.GameState, act game.Action) error {
	if err := g.RemoveFromHand(act.Actor, act.Card); err != nil {
		return err
	}
	target := g.Players[act.Actor].Board[act.Position]
	if target == nil {
		return game.NoPokemonAtPosition(act.Actor, act.Position)
	}
	evolved := game.NewBoardCard(act.Card, true)
	// Damage carries across evolution; status conditions clear.
	evolved.RemainingHP = evolved.TotalHP - (target.TotalHP - target.RemainingHP)
	evolved.AttachedEnergy = target.AttachedEnergy
	evolved.CardsBehind = append(target.CardsBehind, target.Card)
	g.Players[act.Actor].Board[act.Position] = evolved
	return nil
}

// resolveApplyDamage is effect-driven damage outside an attack: no
// turn handover, but knockouts score and queue promotions as usual.
func resolveApplyDamage(g *game.GameState, act game.Action) error {
	target := game.Opponent(act.Actor)
	bc, err := g.BoardAt(target, act.Position)
	if err != nil {
		return err
	}
	bc.RemainingHP -= act.Amount
	if bc.RemainingHP <= 0 {
		if promotions := knockOut(g, target, act.Position); len(promotions) > 0 {
			g.PushFrontier(target, promotions)
		}
	}
	return nil
}

func resolveRetreat(g *game.GameState, act game.Action) error {
	player := &g.Players[act.Actor]
	active := player.Board[0]
	if active == nil {
		return game.NoActivePokemon(act.Actor)
	}
	// Retreat cost is paid by discarding attached energy.
	cost := active.Card.RetreatCost
	if len(active.AttachedEnergy) < cost {
		return game.IllegalMove("not enough energy to retreat")
	}
	active.AttachedEnergy = active.AttachedEnergy[cost:]
	active.CureStatus()
	player.Board[0], player.Board[act.Position] = player.Board[act.Position], player.Board[0]
	g.HasRetreated = true
	return nil
}

func resolveAttack(rng *rand.Rand, g *game.GameState, act game.Action, coin, heads bool) error {
	attacker, err := g.Active(act.Actor)
	if err != nil {
		return err
	}
	defenderPlayer := game.Opponent(act.Actor)
	defender, err := g.Active(defenderPlayer)
	if err != nil {
		return err
	}
	attack := attacker.Card.Attacks[act.AttackIndex]

	damage := attack.Damage
	if coin && !heads {
		damage = 0
	}
	defender.RemainingHP -= damage
	var promotions []game.Action
	if defender.RemainingHP <= 0 {
		promotions = knockOut(g, defenderPlayer, 0)
	}
	if g.GameOver() {
		return nil
	}

	// Attacking ends the turn. The promotion choice goes on top of the
	// handover's queued draw: the defender promotes before drawing.
	if err := g.AdvanceTurn(rng); err != nil {
		return err
	}
	if len(promotions) > 0 && !g.GameOver() {
		g.PushFrontier(defenderPlayer, promotions)
	}
	return nil
}

// knockOut discards the knocked-out stack at position and awards a
// point. If the active slot emptied it returns the defending player's
// promotion choices; an empty board decides the game instead.
func knockOut(g *game.GameState, player, position int) []game.Action {
	stack := g.Players[player].Board[position]
	g.Players[player].Board[position] = nil
	for _, c := range stack.CardsBehind {
		g.Players[player].DiscardPile.Append(c)
	}
	g.Players[player].DiscardPile.Append(stack.Card)

	scorer := game.Opponent(player)
	g.Points[scorer]++
	if g.Points[scorer] >= game.PointsToWin {
		g.Outcome = game.Win(scorer)
		log.Info().Msgf("player %d reached %d points on turn %d", scorer, g.Points[scorer], g.Turn)
		return nil
	}
	if position != 0 {
		return nil
	}

	promotions := []game.Action{}
	for pos := 1; pos < game.BoardSize; pos++ {
		if g.Players[player].Board[pos] != nil {
			promotions = append(promotions, game.Action{
				Actor:        player,
				Type:         game.ActionActivate,
				Position:     pos,
				FromFrontier: true,
			})
		}
	}
	if len(promotions) == 0 {
		g.Outcome = game.Win(scorer)
	}
	return promotions
}

func resolveDrawConcealed(_ *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	if act.Type == game.ActionPlayTrainer {
		if g.Players[act.Actor].DeckZone.Empty() {
			return game.EmptyZone(act.Actor, "deck")
		}
		if err := spendTrainer(g, act); err != nil {
			return err
		}
	}
	for i := 0; i < r.Count; i++ {
		g.DrawCard(act.Actor)
	}
	return nil
}

func resolveDeckSearch(rng *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	if err := spendTrainer(g, act); err != nil {
		return err
	}
	player := &g.Players[act.Actor]
	for i := 0; i < r.Count; i++ {
		matches := []int{}
		for j, c := range player.DeckZone.Cards() {
			if r.Predicate.Matches(c) {
				matches = append(matches, j)
			}
		}
		if len(matches) == 0 {
			// The forecast promised a match via the aggregate query.
			return game.Invariantf("deck search",
				"no card matching %q in player %d's deck", r.Predicate.Name, act.Actor)
		}
		pick := matches[rng.Intn(len(matches))]
		card := player.DeckZone.At(pick)
		player.DeckZone.RemoveAt(pick)
		player.Hand.Append(card)
	}
	player.DeckZone.Shuffle(rng)
	return nil
}

func resolveShuffleOnly(rng *rand.Rand, g *game.GameState, act game.Action, _ forecast.Resolver) error {
	if err := spendTrainer(g, act); err != nil {
		return err
	}
	g.Players[act.Actor].DeckZone.Shuffle(rng)
	return nil
}

func resolveCoinFlip(rng *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	return resolveAttack(rng, g, act, true, r.Heads)
}

func resolveShuffleHandDraw(rng *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	if err := spendTrainer(g, act); err != nil {
		return err
	}
	target := game.Opponent(act.Actor)
	opponent := &g.Players[target]
	opponent.Hand.DrainInto(&opponent.DeckZone)
	opponent.DeckZone.Shuffle(rng)
	for i := 0; i < r.Count; i++ {
		g.DrawCard(target)
	}
	return nil
}

func resolveRevealTop(_ *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	player := &g.Players[act.Actor]
	if player.DeckZone.Empty() {
		// The forecast saw a non-empty deck when this slot was built.
		return game.Invariantf("reveal top",
			"player %d's deck emptied before the reveal resolved", act.Actor)
	}
	if err := spendTrainer(g, act); err != nil {
		return err
	}
	card := player.DeckZone.TakeTop()
	if r.Predicate.Matches(card) {
		player.Hand.Append(card)
	} else {
		player.DeckZone.PutBottom(card)
	}
	return nil
}

func resolveCoinEnergy(_ *rand.Rand, g *game.GameState, act game.Action, r forecast.Resolver) error {
	bc, err := g.BoardAt(act.Actor, act.Position)
	if err != nil {
		return err
	}
	if err := spendTrainer(g, act); err != nil {
		return err
	}
	for i := 0; i < r.Count; i++ {
		bc.AttachedEnergy = append(bc.AttachedEnergy, r.Energy)
	}
	return nil
}
