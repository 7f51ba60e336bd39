package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// boardTokenArchetypes lists the (type, color) pairs of board tokens; each
// archetype exists in BoardTokensPerArchetype copies.
var boardTokenArchetypes = []struct {
	Type  TokenType
	Color TokenColor
}{
	{Rock, ColorGreen},
	{Rock, ColorOrange},
	{Paper, ColorRed},
	{Paper, ColorBlue},
	{Scissors, ColorYellow},
	{Scissors, ColorWhite},
}

// setPlayerCount creates the players, all board tokens, and both decks,
// then advances setup to token selection.
func (g GameState) setPlayerCount(a SetPlayerCount) (GameState, error) {
	if g.SetupStep != StepPlayerCount {
		return g, ErrInvalidTransition
	}
	if a.Count < MinPlayers || a.Count > MaxPlayers {
		return g, ErrInvalidActionPayload
	}

	next := g.clone()

	next.Players = make([]Player, a.Count)
	for i := range next.Players {
		id := uuid.New()
		next.Players[i] = Player{
			ID:   id,
			Name: fmt.Sprintf("Player %d", i+1),
			Token: PlayerToken{
				ID: uuid.New(),
				// Defaults overwritten during token selection.
				Type:  Rock,
				Color: ColorGreen,
				Owner: id,
			},
			AdvantageCards:    []Card{},
			DisadvantageCards: []Card{},
		}
	}

	next.BoardTokens = make([]BoardToken, 0, len(boardTokenArchetypes)*BoardTokensPerArchetype)
	for _, arch := range boardTokenArchetypes {
		for i := 0; i < BoardTokensPerArchetype; i++ {
			next.BoardTokens = append(next.BoardTokens, BoardToken{
				ID:       uuid.New(),
				Type:     arch.Type,
				Color:    arch.Color,
				Position: -1,
			})
		}
	}

	next.AdvantageCards = GenerateAdvantageDeck(&next.RNG)
	next.DisadvantageCards = GenerateDisadvantageDeck(&next.RNG)
	next.SetupStep = StepTokenSelection
	return next, nil
}

// selectToken assigns a (type, color) token to a player. A pair owned by
// another player is rejected, and with fewer than four players each player
// must pick a distinct type.
func (g GameState) selectToken(a SelectToken) (GameState, error) {
	target := g.PlayerByID(a.PlayerID)
	if target == nil {
		return g, ErrUnknownEntity
	}

	for _, p := range g.Players {
		if p.ID == a.PlayerID {
			continue
		}
		if p.Token.Type == a.TokenType && p.Token.Color == a.TokenColor {
			return g, ErrDuplicateSelection
		}
		if len(g.Players) < 4 && p.Token.Type == a.TokenType {
			return g, ErrDuplicateSelection
		}
	}

	next := g.clone()
	for i := range next.Players {
		if next.Players[i].ID == a.PlayerID {
			next.Players[i].Token.Type = a.TokenType
			next.Players[i].Token.Color = a.TokenColor
		}
	}

	// Every player has selected once nobody still holds the rock/green
	// default; then placement begins with rock tokens.
	allSelected := true
	for _, p := range next.Players {
		if p.Token.Type == Rock && p.Token.Color == ColorGreen {
			allSelected = false
			break
		}
	}
	if allSelected {
		next.SetupStep = StepRockPlacement
		next.CurrentTokenPlacementType = Rock
	}
	return next, nil
}

// placeBoardToken sets a board token's position. The token's type must
// match the type being placed in the current sub-step; when no placement
// type is active the acting setup player's token type gates instead.
func (g GameState) placeBoardToken(a PlaceBoardToken) (GameState, error) {
	token := g.BoardTokenByID(a.TokenID)
	if token == nil {
		return g, ErrUnknownEntity
	}
	if a.Position < 1 || a.Position > g.BoardSize-1 {
		return g, ErrInvalidActionPayload
	}

	gate := g.CurrentTokenPlacementType
	if gate == "" && g.SetupPlayerIndex < len(g.Players) {
		gate = g.Players[g.SetupPlayerIndex].Token.Type
	}
	if gate != "" && token.Type != gate {
		return g, ErrInvalidTransition
	}

	next := g.clone()
	for i := range next.BoardTokens {
		if next.BoardTokens[i].ID == a.TokenID {
			next.BoardTokens[i].Position = a.Position
		}
	}
	return next, nil
}

// placeAllTokensRandomly assigns every unplaced board token a unique,
// unoccupied position in [1, BoardSize-1] and forces setup to ready.
func (g GameState) placeAllTokensRandomly() (GameState, error) {
	next := g.clone()

	occupied := make(map[int]bool)
	for _, t := range next.BoardTokens {
		if t.Position != -1 {
			occupied[t.Position] = true
		}
	}
	var free []int
	for pos := 1; pos <= next.BoardSize-1; pos++ {
		if !occupied[pos] {
			free = append(free, pos)
		}
	}
	free = Shuffle(&next.RNG, free)

	for i := range next.BoardTokens {
		if next.BoardTokens[i].Position != -1 {
			continue
		}
		if len(free) == 0 {
			return g, ErrInvalidActionPayload
		}
		next.BoardTokens[i].Position = free[len(free)-1]
		free = free[:len(free)-1]
	}

	next.SetupStep = StepReady
	next.CurrentTokenPlacementType = ""
	return next, nil
}

// nextTokenPlacementPhase recomputes which token types still have unplaced
// tokens and advances to the first of rock, paper, scissors with tokens
// remaining, or to ready when none remain.
func (g GameState) nextTokenPlacementPhase() (GameState, error) {
	next := g.clone()
	remaining := next.unplacedByType()

	switch {
	case len(remaining) == 0:
		next.SetupStep = StepReady
		next.CurrentTokenPlacementType = ""
	case remaining[Rock]:
		next.SetupStep = StepRockPlacement
		next.CurrentTokenPlacementType = Rock
	case remaining[Paper]:
		next.SetupStep = StepPaperPlacement
		next.CurrentTokenPlacementType = Paper
	case remaining[Scissors]:
		next.SetupStep = StepScissorsPlacement
		next.CurrentTokenPlacementType = Scissors
	default:
		next.SetupStep = StepRemainingPlacement
		next.CurrentTokenPlacementType = ""
	}
	return next, nil
}

// startGame locks in turn order (rock before paper before scissors, stable
// for ties) and enters the playing phase.
func (g GameState) startGame() (GameState, error) {
	next := g.clone()
	sortPlayersByTokenType(next.Players)
	next.Phase = PhasePlaying
	return next, nil
}

// setSetupPlayerIndex records whose turn it is during setup. Callers mirror
// the value to durable storage as a resume aid.
func (g GameState) setSetupPlayerIndex(a SetSetupPlayerIndex) (GameState, error) {
	if a.Index < 0 {
		return g, ErrInvalidActionPayload
	}
	next := g.clone()
	next.SetupPlayerIndex = a.Index
	return next, nil
}

// resetGame discards everything and returns a fresh initial snapshot. The
// RNG stream and the resumable setup index carry over.
func (g GameState) resetGame() (GameState, error) {
	next := NewGame(uint64(g.RNG))
	next.SetupPlayerIndex = g.SetupPlayerIndex
	return next, nil
}
