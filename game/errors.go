package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the category of a rule violation.
type ErrorKind int

const (
	ErrorInvalidCardPosition ErrorKind = iota
	ErrorCardNotInHand
	ErrorNoPokemonAtPosition
	ErrorNoActivePokemon
	ErrorEmptyZone
	ErrorInvalidAction
	ErrorIllegalMove
	ErrorInvalidEvolution
	ErrorInvalidAttachment
	ErrorMissingEnergy
	ErrorGameAlreadyOver
	ErrorInvalidGameState
	ErrorNoLegalMoves
)

// GameError is a rule violation derivable from public state. Every
// fallible operation returns one instead of panicking; callers may
// recover by choosing a different action.
type GameError struct {
	Kind      ErrorKind
	Player    int
	Position  int
	Max       int
	Card      string
	Action    string
	Reason    string
	Required  []EnergyType
	Available []EnergyType
}

func (e *GameError) Error() string {
	switch e.Kind {
	case ErrorInvalidCardPosition:
		return fmt.Sprintf("invalid card position %d, max allowed is %d", e.Position, e.Max)
	case ErrorCardNotInHand:
		return fmt.Sprintf("card %q not found in player %d's hand", e.Card, e.Player+1)
	case ErrorNoPokemonAtPosition:
		return fmt.Sprintf("no pokemon at position %d for player %d", e.Position, e.Player+1)
	case ErrorNoActivePokemon:
		return fmt.Sprintf("player %d has no active pokemon", e.Player+1)
	case ErrorEmptyZone:
		return fmt.Sprintf("player %d's %s is empty", e.Player+1, e.Reason)
	case ErrorInvalidAction:
		return fmt.Sprintf("invalid action %q: %s", e.Action, e.Reason)
	case ErrorIllegalMove:
		return fmt.Sprintf("illegal move: %s", e.Reason)
	case ErrorInvalidEvolution:
		return fmt.Sprintf("invalid evolution: %s", e.Reason)
	case ErrorInvalidAttachment:
		return fmt.Sprintf("invalid attachment: %s", e.Reason)
	case ErrorMissingEnergy:
		return fmt.Sprintf("missing energy: required %s, available %s",
			formatEnergy(e.Required), formatEnergy(e.Available))
	case ErrorGameAlreadyOver:
		return "game is already over"
	case ErrorInvalidGameState:
		return fmt.Sprintf("invalid game state: %s", e.Reason)
	case ErrorNoLegalMoves:
		return fmt.Sprintf("player %d has no legal moves", e.Player+1)
	}
	return "unknown game error"
}

// Is matches any GameError of the same kind, so callers can test with
// errors.Is against a bare kind sentinel.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Kind == e.Kind
}

func formatEnergy(types []EnergyType) string {
	if len(types) == 0 {
		return "[]"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

func InvalidCardPosition(position, max int) *GameError {
	return &GameError{Kind: ErrorInvalidCardPosition, Position: position, Max: max}
}

func CardNotInHand(card string, player int) *GameError {
	return &GameError{Kind: ErrorCardNotInHand, Card: card, Player: player}
}

func NoPokemonAtPosition(player, position int) *GameError {
	return &GameError{Kind: ErrorNoPokemonAtPosition, Player: player, Position: position}
}

func NoActivePokemon(player int) *GameError {
	return &GameError{Kind: ErrorNoActivePokemon, Player: player}
}

func EmptyZone(player int, zone string) *GameError {
	return &GameError{Kind: ErrorEmptyZone, Player: player, Reason: zone}
}

func InvalidAction(action, reason string) *GameError {
	return &GameError{Kind: ErrorInvalidAction, Action: action, Reason: reason}
}

func IllegalMove(reason string) *GameError {
	return &GameError{Kind: ErrorIllegalMove, Reason: reason}
}

func InvalidEvolution(reason string) *GameError {
	return &GameError{Kind: ErrorInvalidEvolution, Reason: reason}
}

func InvalidAttachment(reason string) *GameError {
	return &GameError{Kind: ErrorInvalidAttachment, Reason: reason}
}

func MissingEnergy(required, available []EnergyType) *GameError {
	return &GameError{Kind: ErrorMissingEnergy, Required: required, Available: available}
}

func GameAlreadyOver() *GameError {
	return &GameError{Kind: ErrorGameAlreadyOver}
}

func InvalidGameState(reason string) *GameError {
	return &GameError{Kind: ErrorInvalidGameState, Reason: reason}
}

func NoLegalMoves(player int) *GameError {
	return &GameError{Kind: ErrorNoLegalMoves, Player: player}
}

// IsKind reports whether err is, or wraps, a GameError of the kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *GameError
	return errors.As(err, &e) && e.Kind == kind
}

// InvariantError signals a core defect: a conservation breach or a
// forecast predicate proven false at resolution. Unlike GameError it is
// not retryable; callers should abandon the current simulation.
type InvariantError struct {
	Context string
	Details string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Context, e.Details)
}

// Invariantf builds an InvariantError with a formatted detail string.
func Invariantf(context, format string, args ...any) *InvariantError {
	return &InvariantError{Context: context, Details: fmt.Sprintf(format, args...)}
}
