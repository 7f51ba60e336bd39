package engine

import (
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors describing why a transition was rejected. Apply always
// returns the unchanged state alongside these, so callers wanting the
// silent-no-op contract can ignore the error and keep the returned value.
var (
	ErrInvalidTransition    = errors.New("action not valid for current phase")
	ErrUnknownEntity        = errors.New("referenced entity not found")
	ErrIllegalChoice        = errors.New("choice not among current options")
	ErrDeckExhausted        = errors.New("draw and discard piles are both empty")
	ErrDuplicateSelection   = errors.New("token already selected by another player")
	ErrInvalidActionPayload = errors.New("action payload out of range")
)

// Action is the closed set of game actions. Exactly the reducer action
// variants of the original game, one struct per kind.
type Action interface {
	isAction()
}

type SetPlayerCount struct {
	Count int
}

type SelectToken struct {
	PlayerID   uuid.UUID
	TokenType  TokenType
	TokenColor TokenColor
}

type PlaceBoardToken struct {
	TokenID  uuid.UUID
	Position int
}

type PlaceAllTokensRandomly struct{}

type NextTokenPlacementPhase struct{}

type StartGame struct{}

type RollDice struct {
	Kind DiceKind
	// Value, when non-zero for the regular die, is used instead of a fresh
	// roll so external animation and engine state stay in lockstep.
	Value int
}

type MovePlayer struct {
	PlayerID uuid.UUID
	Spaces   int
}

type DrawCard struct {
	CardType CardType
}

type GiveCard struct {
	FromPlayerID uuid.UUID
	ToPlayerID   uuid.UUID
	CardType     CardType
}

type PlayCard struct {
	CardID uuid.UUID
}

type InitiateDuel struct {
	Player1ID uuid.UUID
	Player2ID uuid.UUID
}

type DuelRoll struct {
	Player1Value TokenType
	Player2Value TokenType
}

type SetInteraction struct {
	Interaction Interaction
}

type ResolveInteraction struct {
	Choice string
}

type EndTurn struct{}

type SetSetupPlayerIndex struct {
	Index int
}

type ResetGame struct{}

func (SetPlayerCount) isAction()          {}
func (SelectToken) isAction()             {}
func (PlaceBoardToken) isAction()         {}
func (PlaceAllTokensRandomly) isAction()  {}
func (NextTokenPlacementPhase) isAction() {}
func (StartGame) isAction()               {}
func (RollDice) isAction()                {}
func (MovePlayer) isAction()              {}
func (DrawCard) isAction()                {}
func (GiveCard) isAction()                {}
func (PlayCard) isAction()                {}
func (InitiateDuel) isAction()            {}
func (DuelRoll) isAction()                {}
func (SetInteraction) isAction()          {}
func (ResolveInteraction) isAction()      {}
func (EndTurn) isAction()                 {}
func (SetSetupPlayerIndex) isAction()     {}
func (ResetGame) isAction()               {}

// Apply runs one action against the state and returns the resulting
// snapshot. On a precondition violation the receiver is returned unchanged
// together with a sentinel error.
func (g GameState) Apply(action Action) (GameState, error) {
	switch a := action.(type) {
	case SetPlayerCount:
		return g.setPlayerCount(a)
	case SelectToken:
		return g.selectToken(a)
	case PlaceBoardToken:
		return g.placeBoardToken(a)
	case PlaceAllTokensRandomly:
		return g.placeAllTokensRandomly()
	case NextTokenPlacementPhase:
		return g.nextTokenPlacementPhase()
	case StartGame:
		return g.startGame()
	case RollDice:
		return g.rollDice(a)
	case MovePlayer:
		return g.movePlayer(a)
	case DrawCard:
		return g.drawCard(a)
	case GiveCard:
		return g.giveCard(a)
	case PlayCard:
		return g.playCard(a)
	case InitiateDuel:
		return g.initiateDuel(a)
	case DuelRoll:
		return g.duelRoll(a)
	case SetInteraction:
		return g.setInteraction(a)
	case ResolveInteraction:
		return g.resolveInteraction(a)
	case EndTurn:
		return g.endTurn()
	case SetSetupPlayerIndex:
		return g.setSetupPlayerIndex(a)
	case ResetGame:
		return g.resetGame()
	default:
		return g, ErrInvalidTransition
	}
}
