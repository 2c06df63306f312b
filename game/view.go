package game

// PublicView is the capability handed to forecasting code. It exposes
// the public half of the table plus aggregate predicates over concealed
// zones (counts, existence, category membership) and cannot enumerate
// concealed elements, so a forecast cannot branch on concealed identity
// or order even by accident.
//
// A partial-reveal capability between PublicView and the full state
// (for "opponent reveals top card" style effects) is a deliberate
// extension point; today reveal-then-route decisions live entirely
// inside resolution.
type PublicView struct {
	state *GameState
}

// Public returns the forecast-side view of the state.
func (g *GameState) Public() *PublicView { return &PublicView{state: g} }

func (v *PublicView) Turn() int           { return v.state.Turn }
func (v *PublicView) CurrentPlayer() int  { return v.state.CurrentPlayer }
func (v *PublicView) Outcome() GameOutcome { return v.state.Outcome }
func (v *PublicView) GameOver() bool      { return v.state.GameOver() }
func (v *PublicView) Points(player int) int { return v.state.Points[player] }

func (v *PublicView) CurrentEnergy() EnergyType { return v.state.CurrentEnergy }
func (v *PublicView) HasPlayedSupporter() bool  { return v.state.HasPlayedSupporter }
func (v *PublicView) HasRetreated() bool        { return v.state.HasRetreated }

// HandCount and DeckCount are public: zone sizes are visible to both
// players even though contents are not.
func (v *PublicView) HandCount(player int) int { return v.state.Players[player].Hand.Count() }
func (v *PublicView) DeckCount(player int) int { return v.state.Players[player].DeckZone.Count() }
func (v *PublicView) DeckEmpty(player int) bool { return v.state.Players[player].DeckZone.Empty() }

// DeckHas answers an aggregate category predicate over the concealed
// deck ("contains at least one Basic") without exposing which card or
// where.
func (v *PublicView) DeckHas(player int, p Predicate) bool {
	return v.state.Players[player].DeckZone.Has(p)
}

// HandContains answers a membership predicate: whether the named card
// is in the player's hand. Legality of playing a card is publicly
// checkable; the hand's full contents are not exposed.
func (v *PublicView) HandContains(player int, card *Card) bool {
	return v.state.Players[player].Hand.Contains(card)
}

// DiscardCards returns the public discard pile. Read-only.
func (v *PublicView) DiscardCards(player int) []*Card {
	return v.state.Players[player].DiscardPile.Cards()
}

// Board returns the creature at a public board slot, or nil. The
// returned value is read-only.
func (v *PublicView) Board(player, position int) *BoardCard {
	if position < 0 || position >= BoardSize {
		return nil
	}
	return v.state.Players[player].Board[position]
}

// EachInPlay iterates the player's occupied board slots.
func (v *PublicView) EachInPlay(player int, fn func(position int, b *BoardCard)) {
	v.state.EachInPlay(player, fn)
}

// BenchOccupied reports whether the player has any benched creature.
func (v *PublicView) BenchOccupied(player int) bool {
	for pos := 1; pos < BoardSize; pos++ {
		if v.state.Players[player].Board[pos] != nil {
			return true
		}
	}
	return false
}
