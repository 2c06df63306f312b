package game

import "fmt"

// ActionType enumerates the operations a player can propose.
type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlace
	ActionEvolve
	ActionAttachEnergy
	ActionPlayTrainer
	ActionAttack
	ActionRetreat
	ActionActivate // free switch: forced promotion or effect-driven
	ActionHeal
	ActionApplyDamage // effect-driven damage outside an attack
	ActionEndTurn
)

func (t ActionType) String() string {
	switch t {
	case ActionDraw:
		return "Draw"
	case ActionPlace:
		return "Place"
	case ActionEvolve:
		return "Evolve"
	case ActionAttachEnergy:
		return "AttachEnergy"
	case ActionPlayTrainer:
		return "PlayTrainer"
	case ActionAttack:
		return "Attack"
	case ActionRetreat:
		return "Retreat"
	case ActionActivate:
		return "Activate"
	case ActionHeal:
		return "Heal"
	case ActionApplyDamage:
		return "ApplyDamage"
	case ActionEndTurn:
		return "EndTurn"
	}
	return "Unknown"
}

// Action is a candidate operation by one actor. Which fields matter
// depends on Type; unused ones stay zero.
type Action struct {
	Actor       int
	Type        ActionType
	Card        *Card // Place, Evolve, PlayTrainer
	Position    int   // board slot target
	AttackIndex int
	Amount      int        // heal amount, energy count
	Energy      EnergyType // AttachEnergy
	FromFrontier bool      // resolving a pending multi-step choice
}

func (a Action) String() string {
	if a.Card != nil {
		return fmt.Sprintf("%s(%s@%d)", a.Type, a.Card.Name, a.Position)
	}
	switch a.Type {
	case ActionAttack:
		return fmt.Sprintf("Attack(%d)", a.AttackIndex)
	case ActionAttachEnergy:
		return fmt.Sprintf("AttachEnergy(%s@%d)", a.Energy, a.Position)
	case ActionHeal:
		return fmt.Sprintf("Heal(%d@%d)", a.Amount, a.Position)
	case ActionApplyDamage:
		return fmt.Sprintf("ApplyDamage(%d@%d)", a.Amount, a.Position)
	case ActionRetreat, ActionActivate:
		return fmt.Sprintf("%s(%d)", a.Type, a.Position)
	}
	return a.Type.String()
}

// IsDeterministic reports whether the action has a single forecast
// branch given public state. Search callers use it to distinguish
// decision from chance expansions.
func (a Action) IsDeterministic() bool {
	switch a.Type {
	case ActionAttack:
		if a.Card == nil || a.AttackIndex >= len(a.Card.Attacks) {
			return false // conservatively stochastic
		}
		return !a.Card.Attacks[a.AttackIndex].Coin
	case ActionPlayTrainer:
		if a.Card == nil {
			return false
		}
		return a.Card.Effect.Kind != EffectCoinEnergy
	}
	return true
}

// LegalActions generates the current actor's candidate actions from the
// state. This is a caller-side convenience with owner visibility (a
// player sees their own hand); the forecast boundary is enforced
// separately by PublicView.
func LegalActions(g *GameState) []Action {
	if g.GameOver() {
		return nil
	}

	// A pending multi-step choice preempts normal turn flow.
	if entry, ok := g.PeekFrontier(); ok {
		return append([]Action(nil), entry.Choices...)
	}

	player := g.CurrentPlayer
	p := &g.Players[player]
	var actions []Action

	// Place basics on empty slots.
	for _, card := range p.Hand.Cards() {
		if !card.IsBasic() {
			continue
		}
		for pos := 0; pos < BoardSize; pos++ {
			if p.Board[pos] == nil {
				actions = append(actions, Action{
					Actor: player, Type: ActionPlace, Card: card, Position: pos,
				})
			}
		}
	}

	// Evolve creatures that have been in play for a turn.
	for _, card := range p.Hand.Cards() {
		if card.Kind != KindStage1 && card.Kind != KindStage2 {
			continue
		}
		for pos, b := range p.Board {
			if b != nil && !b.PlayedThisTurn && card.EvolvesFrom == b.Card.Name {
				actions = append(actions, Action{
					Actor: player, Type: ActionEvolve, Card: card, Position: pos,
				})
			}
		}
	}

	// Attach the turn energy.
	if g.CurrentEnergy != EnergyNone {
		for pos, b := range p.Board {
			if b != nil {
				actions = append(actions, Action{
					Actor: player, Type: ActionAttachEnergy,
					Energy: g.CurrentEnergy, Position: pos, Amount: 1,
				})
			}
		}
	}

	// Play trainers, one supporter per turn. Targeted effects get one
	// action per occupied board slot.
	for _, card := range p.Hand.Cards() {
		if card.Kind != KindTrainer {
			continue
		}
		if card.Supporter && g.HasPlayedSupporter {
			continue
		}
		switch card.Effect.Kind {
		case EffectHeal, EffectCoinEnergy:
			for pos, b := range p.Board {
				if b != nil {
					actions = append(actions, Action{
						Actor: player, Type: ActionPlayTrainer, Card: card, Position: pos,
					})
				}
			}
		default:
			actions = append(actions, Action{
				Actor: player, Type: ActionPlayTrainer, Card: card,
			})
		}
	}

	// Attacks from the active creature.
	if active := p.Board[0]; active != nil && !active.Paralyzed && !active.Asleep {
		for i, attack := range active.Card.Attacks {
			if EnergyCovers(active.AttachedEnergy, attack.Cost) {
				actions = append(actions, Action{
					Actor: player, Type: ActionAttack,
					Card: active.Card, AttackIndex: i,
				})
			}
		}
	}

	// Paid retreat to a bench slot.
	if active := p.Board[0]; active != nil && !g.HasRetreated &&
		len(active.AttachedEnergy) >= active.Card.RetreatCost {
		for pos := 1; pos < BoardSize; pos++ {
			if p.Board[pos] != nil {
				actions = append(actions, Action{
					Actor: player, Type: ActionRetreat, Position: pos,
				})
			}
		}
	}

	actions = append(actions, Action{Actor: player, Type: ActionEndTurn})
	return actions
}

// EnergyCovers checks an attack cost against attached energy. Specific
// colors are matched first; Colorless entries consume any remainder.
func EnergyCovers(attached []EnergyType, cost []EnergyType) bool {
	pool := map[EnergyType]int{}
	for _, e := range attached {
		pool[e]++
	}
	wildcards := 0
	for _, c := range cost {
		if c == EnergyColorless {
			wildcards++
			continue
		}
		if pool[c] > 0 {
			pool[c]--
		} else {
			return false
		}
	}
	remaining := 0
	for _, n := range pool {
		remaining += n
	}
	return remaining >= wildcards
}
