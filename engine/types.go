package engine

import "github.com/google/uuid"

// TokenType is the Rock-Paper-Scissors archetype of a token.
type TokenType string

const (
	Rock     TokenType = "rock"
	Paper    TokenType = "paper"
	Scissors TokenType = "scissors"
)

// Beats reports whether t wins against other under the standard
// rock>scissors, scissors>paper, paper>rock relation.
func (t TokenType) Beats(other TokenType) bool {
	switch {
	case t == Rock && other == Scissors:
		return true
	case t == Scissors && other == Paper:
		return true
	case t == Paper && other == Rock:
		return true
	}
	return false
}

// TokenColor is the visual color of a token. Each token type has two
// allowed colors.
type TokenColor string

const (
	ColorGreen  TokenColor = "green"
	ColorOrange TokenColor = "orange"
	ColorRed    TokenColor = "red"
	ColorBlue   TokenColor = "blue"
	ColorYellow TokenColor = "yellow"
	ColorWhite  TokenColor = "white"
)

// PlayerToken is the piece a player moves around the board.
type PlayerToken struct {
	ID       uuid.UUID  `json:"id"`
	Type     TokenType  `json:"type"`
	Color    TokenColor `json:"color"`
	Position int        `json:"position"` // 0..BoardSize; BoardSize marks the winner
	Owner    uuid.UUID  `json:"owner"`
}

// BoardToken is a static, unowned marker placed on the board during setup.
// Position -1 means not yet placed; placed tokens sit in [1, BoardSize-1].
type BoardToken struct {
	ID       uuid.UUID  `json:"id"`
	Type     TokenType  `json:"type"`
	Color    TokenColor `json:"color"`
	Position int        `json:"position"`
}

// CardType discriminates the two decks.
type CardType string

const (
	Advantage    CardType = "advantage"
	Disadvantage CardType = "disadvantage"
)

// EffectKind enumerates the closed set of card effects.
type EffectKind string

const (
	EffectMove      EffectKind = "move"
	EffectSkipTurn  EffectKind = "skipTurn"
	EffectDuel      EffectKind = "duel"
	EffectMoveToken EffectKind = "moveToken"
	EffectDrawCards EffectKind = "drawCards"
	EffectGiveCard  EffectKind = "giveCard"
)

// CardEffect describes what a card does when played. Only the fields
// relevant to Kind are meaningful.
type CardEffect struct {
	Kind     EffectKind `json:"kind"`
	Spaces   int        `json:"spaces,omitempty"`   // EffectMove: signed move distance
	Players  int        `json:"players,omitempty"`  // EffectDuel: number of duelists
	Count    int        `json:"count,omitempty"`    // EffectDrawCards: cards to draw
	CardType CardType   `json:"cardType,omitempty"` // EffectGiveCard: deck to give from
}

// Card is an immutable one-shot effect card. Cards keep their identity as
// they move between the draw pile, player hands, and the discard pile.
type Card struct {
	ID          uuid.UUID  `json:"id"`
	Type        CardType   `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Effect      CardEffect `json:"effect"`
}

// Player holds one participant's identity, token, and hands.
type Player struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Token             PlayerToken `json:"token"`
	HasSkippedTurn    bool        `json:"hasSkippedTurn"`
	AdvantageCards    []Card      `json:"advantageCards"`
	DisadvantageCards []Card      `json:"disadvantageCards"`
}

// DiceKind selects which instrument a roll targets.
type DiceKind string

const (
	DiceRegular DiceKind = "regular"
	DiceRPS     DiceKind = "rps"
)

// RegularDie is the 6-sided numeric die. Value 0 means unset.
type RegularDie struct {
	Value   int  `json:"value"`
	Rolling bool `json:"rolling"`
}

// RPSDie is one of the pair of rock/paper/scissors dice. Empty value means
// unset.
type RPSDie struct {
	Value   TokenType `json:"value"`
	Rolling bool      `json:"rolling"`
}

// DiceState holds both dice instruments.
type DiceState struct {
	Regular RegularDie `json:"regular"`
	RPS     [2]RPSDie  `json:"rps"`
}

// Phase is the top-level state of the game state machine.
type Phase string

const (
	PhaseSetup       Phase = "setup"
	PhasePlaying     Phase = "playing"
	PhaseDuel        Phase = "duel"
	PhaseCardEffect  Phase = "cardEffect"
	PhaseInteraction Phase = "interaction"
	PhaseGameOver    Phase = "gameOver"
)

// SetupStep is the sub-phase sequence inside PhaseSetup.
type SetupStep string

const (
	StepPlayerCount        SetupStep = "playerCount"
	StepTokenSelection     SetupStep = "tokenSelection"
	StepRockPlacement      SetupStep = "rockTokenPlacement"
	StepPaperPlacement     SetupStep = "paperTokenPlacement"
	StepScissorsPlacement  SetupStep = "scissorsTokenPlacement"
	StepRemainingPlacement SetupStep = "remainingTokenPlacement"
	StepReady              SetupStep = "ready"
)

// InteractionType enumerates the six forced-decision kinds raised by a
// landing.
type InteractionType string

const (
	MoveBackOrDrawCard              InteractionType = "moveBackOrDrawCard"
	MoveForwardOrDrawCard           InteractionType = "moveForwardOrDrawCard"
	CallDuelOrSkip                  InteractionType = "callDuelOrSkip"
	DrawAdvantageOrGiveDisadvantage InteractionType = "drawAdvantageOrGiveDisadvantage"
	DrawDisadvantageOrGiveAdvantage InteractionType = "drawDisadvantageOrGiveAdvantage"
	CallDuel                        InteractionType = "callDuel"
)

// Interaction is an ephemeral decision request. Options are literal strings
// the caller must echo back verbatim via ResolveInteraction.
type Interaction struct {
	Type         InteractionType `json:"type"`
	SourcePlayer *Player         `json:"sourcePlayer"`
	TargetPlayer *Player         `json:"targetPlayer,omitempty"`
	BoardToken   *BoardToken     `json:"boardToken,omitempty"`
	Options      []string        `json:"options"`
}

// DuelResult records the outcome of a duel.
type DuelResult string

const (
	DuelWinnerPlayer1 DuelResult = "player1"
	DuelWinnerPlayer2 DuelResult = "player2"
	DuelDraw          DuelResult = "draw"
)

// DuelState is the sub-state populated while a duel is in progress. The
// player fields hold copies taken at initiation; position changes are
// applied to the live players by id.
type DuelState struct {
	Player1 *Player    `json:"player1,omitempty"`
	Player2 *Player    `json:"player2,omitempty"`
	Result  DuelResult `json:"result,omitempty"`
}
