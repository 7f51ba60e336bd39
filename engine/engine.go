// Package engine implements the TUAS race game rules.
//
// The engine is a pure state machine: Apply is a function from
// (GameState, Action) to a new GameState. State is never mutated in place;
// every transition deep-copies the state first, so snapshots held by
// callers stay valid and undo/replay reduce to keeping old values.
package engine

import (
	"sort"

	"github.com/google/uuid"
)

const (
	// DefaultBoardSize is the number of spaces on the board. A token at
	// position DefaultBoardSize has finished the race.
	DefaultBoardSize = 64

	MinPlayers = 2
	MaxPlayers = 6

	// BoardTokensPerArchetype is how many copies of each (type, color)
	// board token archetype exist.
	BoardTokensPerArchetype = 3
)

// GameState is the single root aggregate of a game. It is replaced
// wholesale on every action.
type GameState struct {
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	// SetupPlayerIndex tracks whose turn it is during the token-placement
	// setup sub-phase. It is the only field mirrored to durable storage.
	SetupPlayerIndex int          `json:"setupPlayerIndex"`
	BoardTokens      []BoardToken `json:"boardTokens"`

	AdvantageCards             []Card `json:"advantageCards"`
	DisadvantageCards          []Card `json:"disadvantageCards"`
	DiscardedAdvantageCards    []Card `json:"discardedAdvantageCards"`
	DiscardedDisadvantageCards []Card `json:"discardedDisadvantageCards"`

	Dice   DiceState `json:"dice"`
	Phase  Phase     `json:"phase"`
	Winner *Player   `json:"winner,omitempty"`

	BoardSize int       `json:"boardSize"`
	SetupStep SetupStep `json:"setupStep"`

	Duel               DuelState    `json:"duel"`
	CardInPlay         *Card        `json:"cardInPlay,omitempty"`
	CurrentInteraction *Interaction `json:"currentInteraction,omitempty"`

	// CurrentTokenPlacementType is the board-token type being placed in the
	// current setup sub-step; empty outside placement steps.
	CurrentTokenPlacementType TokenType `json:"currentTokenPlacementType,omitempty"`

	RNG RNG `json:"-"`
}

// NewGame returns the initial snapshot: setup phase, playerCount step, no
// players, seeded RNG.
func NewGame(seed uint64) GameState {
	return GameState{
		Players:   []Player{},
		BoardSize: DefaultBoardSize,
		Phase:     PhaseSetup,
		SetupStep: StepPlayerCount,
		RNG:       NewRNG(seed),
	}
}

// clone deep-copies the state so the transition can mutate freely without
// aliasing the caller's snapshot.
func (g GameState) clone() GameState {
	next := g

	next.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		next.Players[i] = clonePlayer(p)
	}
	next.BoardTokens = append([]BoardToken(nil), g.BoardTokens...)
	next.AdvantageCards = append([]Card(nil), g.AdvantageCards...)
	next.DisadvantageCards = append([]Card(nil), g.DisadvantageCards...)
	next.DiscardedAdvantageCards = append([]Card(nil), g.DiscardedAdvantageCards...)
	next.DiscardedDisadvantageCards = append([]Card(nil), g.DiscardedDisadvantageCards...)

	if g.Winner != nil {
		w := clonePlayer(*g.Winner)
		next.Winner = &w
	}
	if g.CardInPlay != nil {
		c := *g.CardInPlay
		next.CardInPlay = &c
	}
	if g.CurrentInteraction != nil {
		next.CurrentInteraction = cloneInteraction(g.CurrentInteraction)
	}
	next.Duel = cloneDuel(g.Duel)

	return next
}

func clonePlayer(p Player) Player {
	p.AdvantageCards = append([]Card(nil), p.AdvantageCards...)
	p.DisadvantageCards = append([]Card(nil), p.DisadvantageCards...)
	return p
}

func cloneInteraction(in *Interaction) *Interaction {
	out := *in
	if in.SourcePlayer != nil {
		sp := clonePlayer(*in.SourcePlayer)
		out.SourcePlayer = &sp
	}
	if in.TargetPlayer != nil {
		tp := clonePlayer(*in.TargetPlayer)
		out.TargetPlayer = &tp
	}
	if in.BoardToken != nil {
		bt := *in.BoardToken
		out.BoardToken = &bt
	}
	out.Options = append([]string(nil), in.Options...)
	return &out
}

func cloneDuel(d DuelState) DuelState {
	if d.Player1 != nil {
		p := clonePlayer(*d.Player1)
		d.Player1 = &p
	}
	if d.Player2 != nil {
		p := clonePlayer(*d.Player2)
		d.Player2 = &p
	}
	return d
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true when the game is over.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseGameOver }

// CurrentPlayer returns a pointer to the player whose turn it is, or nil
// when no players exist yet.
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerByID returns the player with the given id, or nil.
func (g *GameState) PlayerByID(id uuid.UUID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// BoardTokenByID returns the board token with the given id, or nil.
func (g *GameState) BoardTokenByID(id uuid.UUID) *BoardToken {
	for i := range g.BoardTokens {
		if g.BoardTokens[i].ID == id {
			return &g.BoardTokens[i]
		}
	}
	return nil
}

// BoardTokensAt returns the board tokens placed at the given position.
func (g *GameState) BoardTokensAt(position int) []BoardToken {
	var tokens []BoardToken
	for _, t := range g.BoardTokens {
		if t.Position == position {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// PlayersAt returns the players (other than except) whose tokens sit at the
// given position.
func (g *GameState) PlayersAt(position int, except uuid.UUID) []Player {
	var players []Player
	for _, p := range g.Players {
		if p.ID != except && p.Token.Position == position {
			players = append(players, p)
		}
	}
	return players
}

// unplacedByType reports which token types still have unplaced board
// tokens.
func (g *GameState) unplacedByType() map[TokenType]bool {
	remaining := make(map[TokenType]bool, 3)
	for _, t := range g.BoardTokens {
		if t.Position == -1 {
			remaining[t.Type] = true
		}
	}
	return remaining
}

// clampPosition bounds a board position to [0, BoardSize].
func (g *GameState) clampPosition(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > g.BoardSize {
		return g.BoardSize
	}
	return pos
}

// sortPlayersByTokenType stable-sorts players into the fixed rock < paper <
// scissors turn order.
func sortPlayersByTokenType(players []Player) {
	order := map[TokenType]int{Rock: 0, Paper: 1, Scissors: 2}
	sort.SliceStable(players, func(i, j int) bool {
		return order[players[i].Token.Type] < order[players[j].Token.Type]
	})
}
