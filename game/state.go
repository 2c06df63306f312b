package game

import (
	"encoding/binary"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

const (
	// BoardSize is the number of board slots per player; slot 0 is the
	// active creature, 1..3 are the bench.
	BoardSize = 4
	// StartingHand is the number of cards drawn during setup.
	StartingHand = 5
	// PointsToWin ends the match in favor of the scorer.
	PointsToWin = 3
	// MaxTurns caps a match; reaching it is a tie.
	MaxTurns = 100
)

// GameOutcome encodes the result of a match. Values >= 0 name the
// winning player index.
type GameOutcome int

const (
	OutcomeOpen GameOutcome = -2
	OutcomeTie  GameOutcome = -1
)

// Win returns the outcome where player p has won.
func Win(p int) GameOutcome { return GameOutcome(p) }

func (o GameOutcome) Over() bool { return o != OutcomeOpen }

func (o GameOutcome) String() string {
	switch o {
	case OutcomeOpen:
		return "open"
	case OutcomeTie:
		return "tie"
	}
	return "player" + string(rune('1'+int(o)))
}

// BoardCard is a creature in play: the card plus its battle state.
type BoardCard struct {
	Card           *Card
	TotalHP        int
	RemainingHP    int
	AttachedEnergy []EnergyType
	CardsBehind    []*Card // pre-evolutions stacked underneath
	PlayedThisTurn bool
	Poisoned       bool
	Paralyzed      bool
	Asleep         bool
}

// NewBoardCard wraps a creature card for play.
func NewBoardCard(card *Card, playedThisTurn bool) *BoardCard {
	return &BoardCard{
		Card:           card,
		TotalHP:        card.HP,
		RemainingHP:    card.HP,
		PlayedThisTurn: playedThisTurn,
	}
}

func (b *BoardCard) copy() *BoardCard {
	dup := *b
	dup.AttachedEnergy = append([]EnergyType(nil), b.AttachedEnergy...)
	dup.CardsBehind = append([]*Card(nil), b.CardsBehind...)
	return &dup
}

// Heal restores up to amount HP, clamped to the printed total.
func (b *BoardCard) Heal(amount int) {
	b.RemainingHP += amount
	if b.RemainingHP > b.TotalHP {
		b.RemainingHP = b.TotalHP
	}
}

// Damaged reports whether the creature has taken damage.
func (b *BoardCard) Damaged() bool { return b.RemainingHP < b.TotalHP }

// CureStatus clears poison, paralysis and sleep.
func (b *BoardCard) CureStatus() {
	b.Poisoned = false
	b.Paralyzed = false
	b.Asleep = false
}

// cardCount is the number of cards physically in this slot.
func (b *BoardCard) cardCount() int { return 1 + len(b.CardsBehind) }

// PlayerState is one player's half of the table.
type PlayerState struct {
	Hand        Zone // concealed
	DeckZone    Zone // concealed, ordered
	DiscardPile Zone // public
	Board       [BoardSize]*BoardCard
	EnergyTypes []EnergyType // colors the player's generator produces
}

// FrontierEntry is a pending multi-step choice: the actor must pick one
// of the candidate actions before normal turn flow resumes.
type FrontierEntry struct {
	Actor   int
	Choices []Action
}

// GameState is the complete table state. It is created once per match,
// mutated only through the resolution engine, and cloned freely: a
// clone is O(1) because zone storage is shared copy-on-write.
type GameState struct {
	Turn          int
	CurrentPlayer int
	Points        [2]int
	Outcome       GameOutcome
	Players       [2]PlayerState
	Frontier      []FrontierEntry

	// Turn flags, reset when the turn advances.
	CurrentEnergy      EnergyType
	HasPlayedSupporter bool
	HasRetreated       bool
}

// NewGameState builds an un-shuffled, un-dealt state from two decks.
func NewGameState(deckA, deckB Deck) *GameState {
	g := &GameState{Outcome: OutcomeOpen}
	for i, deck := range []Deck{deckA, deckB} {
		g.Players[i] = PlayerState{
			Hand:        NewZone(nil, true),
			DeckZone:    NewZone(deck.Cards, true),
			DiscardPile: NewZone(nil, false),
			EnergyTypes: append([]EnergyType(nil), deck.EnergyTypes...),
		}
	}
	return g
}

// Initialize shuffles both decks, deals the starting hands and flips a
// coin for the starting player.
func Initialize(deckA, deckB Deck, rng *rand.Rand) *GameState {
	g := NewGameState(deckA, deckB)
	for i := range g.Players {
		g.Players[i].DeckZone.Shuffle(rng)
	}
	for j := 0; j < StartingHand; j++ {
		g.DrawCard(0)
		g.DrawCard(1)
	}
	g.CurrentPlayer = rng.Intn(2)
	return g
}

// Clone returns an independent copy in O(1): zone blocks are shared
// with atomic counters and privatized on first write, board slots and
// the frontier are small and copied eagerly.
func (g *GameState) Clone() *GameState {
	dup := *g
	for i := range dup.Players {
		p := &g.Players[i]
		dup.Players[i].Hand = p.Hand.clone()
		dup.Players[i].DeckZone = p.DeckZone.clone()
		dup.Players[i].DiscardPile = p.DiscardPile.clone()
		dup.Players[i].EnergyTypes = append([]EnergyType(nil), p.EnergyTypes...)
		for j, b := range p.Board {
			if b != nil {
				dup.Players[i].Board[j] = b.copy()
			}
		}
	}
	dup.Frontier = make([]FrontierEntry, len(g.Frontier))
	for i, entry := range g.Frontier {
		dup.Frontier[i] = FrontierEntry{
			Actor:   entry.Actor,
			Choices: append([]Action(nil), entry.Choices...),
		}
	}
	return &dup
}

// Release gives up this clone's share of all zone storage. Optional:
// it keeps surviving siblings from copy-on-write churn. The state must
// not be used after release.
func (g *GameState) Release() {
	for i := range g.Players {
		g.Players[i].Hand.release()
		g.Players[i].DeckZone.release()
		g.Players[i].DiscardPile.release()
	}
}

// DrawCard moves the top deck card to the player's hand. Drawing from
// an empty deck is a no-op, matching the pocket rules.
func (g *GameState) DrawCard(player int) {
	card := g.Players[player].DeckZone.TakeTop()
	if card == nil {
		return
	}
	g.Players[player].Hand.Append(card)
}

// RemoveFromHand takes the named card out of the player's hand.
func (g *GameState) RemoveFromHand(player int, card *Card) error {
	if !g.Players[player].Hand.Remove(card) {
		return CardNotInHand(card.Name, player)
	}
	return nil
}

// DiscardFromHand moves the named card from hand to the discard pile.
func (g *GameState) DiscardFromHand(player int, card *Card) error {
	if err := g.RemoveFromHand(player, card); err != nil {
		return err
	}
	g.Players[player].DiscardPile.Append(card)
	return nil
}

// Active returns the player's active creature.
func (g *GameState) Active(player int) (*BoardCard, error) {
	b := g.Players[player].Board[0]
	if b == nil {
		return nil, NoActivePokemon(player)
	}
	return b, nil
}

// BoardAt returns the creature at a board position.
func (g *GameState) BoardAt(player, position int) (*BoardCard, error) {
	if position < 0 || position >= BoardSize {
		return nil, InvalidCardPosition(position, BoardSize-1)
	}
	b := g.Players[player].Board[position]
	if b == nil {
		return nil, NoPokemonAtPosition(player, position)
	}
	return b, nil
}

// EachInPlay calls fn for every occupied board slot of the player.
func (g *GameState) EachInPlay(player int, fn func(position int, b *BoardCard)) {
	for i, b := range g.Players[player].Board {
		if b != nil {
			fn(i, b)
		}
	}
}

// Opponent returns the other player's index.
func Opponent(player int) int { return (player + 1) % 2 }

// PushFrontier queues a pending multi-step choice. Empty choice sets
// are dropped: there is nothing for the actor to decide.
func (g *GameState) PushFrontier(actor int, choices []Action) {
	if len(choices) == 0 {
		return
	}
	g.Frontier = append(g.Frontier, FrontierEntry{Actor: actor, Choices: choices})
}

// PeekFrontier returns the pending entry that must resolve next.
func (g *GameState) PeekFrontier() (FrontierEntry, bool) {
	if len(g.Frontier) == 0 {
		return FrontierEntry{}, false
	}
	return g.Frontier[len(g.Frontier)-1], true
}

// PopFrontier removes the pending entry that resolved.
func (g *GameState) PopFrontier() {
	if len(g.Frontier) > 0 {
		g.Frontier = g.Frontier[:len(g.Frontier)-1]
	}
}

// QueueDraw queues a draw the actor must take before acting further.
func (g *GameState) QueueDraw(actor int) {
	g.PushFrontier(actor, []Action{{Actor: actor, Type: ActionDraw, FromFrontier: true}})
}

// GenerateEnergy rolls the turn energy from the current player's
// generator colors.
func (g *GameState) GenerateEnergy(rng *rand.Rand) error {
	types := g.Players[g.CurrentPlayer].EnergyTypes
	if len(types) == 0 {
		return InvalidGameState("deck has no energy types defined")
	}
	g.CurrentEnergy = types[rng.Intn(len(types))]
	return nil
}

// ResetTurnFlags clears the per-turn state on both sides of the table.
func (g *GameState) ResetTurnFlags() {
	for i := range g.Players {
		g.EachInPlay(i, func(_ int, b *BoardCard) {
			b.PlayedThisTurn = false
		})
	}
	g.HasPlayedSupporter = false
	g.HasRetreated = false
}

// AdvanceTurn hands the turn to the other player: flags reset, a draw
// is queued and turn energy is generated.
func (g *GameState) AdvanceTurn(rng *rand.Rand) error {
	g.CurrentPlayer = Opponent(g.CurrentPlayer)
	g.Turn++
	if g.Turn >= MaxTurns && g.Outcome == OutcomeOpen {
		g.Outcome = OutcomeTie
		return nil
	}
	g.ResetTurnFlags()
	g.QueueDraw(g.CurrentPlayer)
	return g.GenerateEnergy(rng)
}

// GameOver reports whether the match has ended.
func (g *GameState) GameOver() bool { return g.Outcome.Over() }

// TotalCards counts every card across all zones of both players, the
// conservation quantity checked after each resolution.
func (g *GameState) TotalCards() int {
	total := 0
	for i := range g.Players {
		p := &g.Players[i]
		total += p.Hand.Count() + p.DeckZone.Count() + p.DiscardPile.Count()
		for _, b := range p.Board {
			if b != nil {
				total += b.cardCount()
			}
		}
	}
	return total
}

// Hash fingerprints the state for determinism checks and transposition
// keying.
func (g *GameState) Hash() uint64 {
	h := fnv.New64a()
	word := func(v uint64) {
		binary.Write(h, binary.LittleEndian, v)
	}
	word(uint64(g.Turn))
	word(uint64(g.CurrentPlayer))
	word(uint64(int64(g.Outcome)))
	word(uint64(g.CurrentEnergy))
	for i := range g.Players {
		word(uint64(g.Points[i]))
		p := &g.Players[i]
		for _, zone := range []*Zone{&p.Hand, &p.DeckZone, &p.DiscardPile} {
			word(uint64(zone.Count()))
			for _, c := range zone.Cards() {
				h.Write([]byte(c.ID))
			}
		}
		for _, b := range p.Board {
			if b == nil {
				word(0)
				continue
			}
			h.Write([]byte(b.Card.ID))
			word(uint64(b.RemainingHP))
			word(uint64(len(b.AttachedEnergy)))
			word(uint64(len(b.CardsBehind)))
		}
	}
	return h.Sum64()
}
