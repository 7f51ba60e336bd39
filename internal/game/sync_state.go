// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	"github.com/jaydeepc/tuas-game/engine"
)

// ClientCard is a card as shown to a client.
type ClientCard struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// ClientPlayerState is one player's public state, plus hand details when
// the observer is that player.
type ClientPlayerState struct {
	PlayerID          uuid.UUID `json:"playerId"`
	Name              string    `json:"name"`
	TokenType         string    `json:"tokenType"`
	TokenColor        string    `json:"tokenColor"`
	Position          int       `json:"position"`
	HasSkippedTurn    bool      `json:"hasSkippedTurn"`
	Connected         bool      `json:"connected"`
	IsCurrentTurn     bool      `json:"isCurrentTurn"`
	AdvantageCount    int       `json:"advantageCount"`
	DisadvantageCount int       `json:"disadvantageCount"`

	// Hand contents are populated only for the observer's own entry.
	AdvantageCards    []ClientCard `json:"advantageCards,omitempty"`
	DisadvantageCards []ClientCard `json:"disadvantageCards,omitempty"`
}

// ClientBoardToken is a placed board token as shown to clients. Unplaced
// tokens during setup are included with position -1.
type ClientBoardToken struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Color    string    `json:"color"`
	Position int       `json:"position"`
}

// ClientInteraction mirrors the engine's pending decision for the client.
type ClientInteraction struct {
	Type         string    `json:"type"`
	SourcePlayer uuid.UUID `json:"sourcePlayer"`
	TargetPlayer uuid.UUID `json:"targetPlayer,omitempty"`
	Options      []string  `json:"options"`
}

// ClientState is the full game view sent to one observer. Board, dice,
// discard tops, and the card in play are public; hands are revealed only
// to their owner.
type ClientState struct {
	GameID           uuid.UUID           `json:"gameId"`
	Phase            string              `json:"phase"`
	SetupStep        string              `json:"setupStep,omitempty"`
	TurnID           int                 `json:"turnId"`
	CurrentPlayerID  uuid.UUID           `json:"currentPlayerId,omitempty"`
	BoardSize        int                 `json:"boardSize"`
	Players          []ClientPlayerState `json:"players"`
	BoardTokens      []ClientBoardToken  `json:"boardTokens"`
	Dice             engine.DiceState    `json:"dice"`
	AdvantageDeck    int                 `json:"advantageDeckSize"`
	DisadvantageDeck int                 `json:"disadvantageDeckSize"`
	CardInPlay       *ClientCard         `json:"cardInPlay,omitempty"`
	Interaction      *ClientInteraction  `json:"interaction,omitempty"`
	DuelResult       string              `json:"duelResult,omitempty"`
	WinnerID         uuid.UUID           `json:"winnerId,omitempty"`
	GameOver         bool                `json:"gameOver"`
}

func toClientCard(c engine.Card) ClientCard {
	return ClientCard{
		ID:          c.ID,
		Type:        string(c.Type),
		Title:       c.Title,
		Description: c.Description,
	}
}

func toClientCards(cards []engine.Card) []ClientCard {
	out := make([]ClientCard, len(cards))
	for i, c := range cards {
		out[i] = toClientCard(c)
	}
	return out
}

// ClientStateFor builds the state view for one observer.
// Assumes lock is held by caller.
func (g *RPSGame) ClientStateFor(forPlayer uuid.UUID) ClientState {
	s := g.State

	cs := ClientState{
		GameID:           g.ID,
		Phase:            string(s.Phase),
		TurnID:           g.TurnID,
		BoardSize:        s.BoardSize,
		Dice:             s.Dice,
		AdvantageDeck:    len(s.AdvantageCards),
		DisadvantageDeck: len(s.DisadvantageCards),
		GameOver:         g.GameOver || s.IsTerminal(),
	}
	if s.Phase == engine.PhaseSetup {
		cs.SetupStep = string(s.SetupStep)
	}
	if s.Winner != nil {
		cs.WinnerID = s.Winner.ID
	}
	if s.CardInPlay != nil {
		card := toClientCard(*s.CardInPlay)
		cs.CardInPlay = &card
	}
	if s.Duel.Result != "" {
		cs.DuelResult = string(s.Duel.Result)
	}
	if s.CurrentInteraction != nil {
		in := s.CurrentInteraction
		ci := &ClientInteraction{
			Type:    string(in.Type),
			Options: append([]string(nil), in.Options...),
		}
		if in.SourcePlayer != nil {
			ci.SourcePlayer = in.SourcePlayer.ID
		}
		if in.TargetPlayer != nil {
			ci.TargetPlayer = in.TargetPlayer.ID
		}
		cs.Interaction = ci
	}

	current := s.CurrentPlayer()
	if s.Phase != engine.PhaseSetup && current != nil && !cs.GameOver {
		cs.CurrentPlayerID = current.ID
	}

	cs.Players = make([]ClientPlayerState, len(s.Players))
	for i, p := range s.Players {
		ps := ClientPlayerState{
			PlayerID:          p.ID,
			Name:              p.Name,
			TokenType:         string(p.Token.Type),
			TokenColor:        string(p.Token.Color),
			Position:          p.Token.Position,
			HasSkippedTurn:    p.HasSkippedTurn,
			IsCurrentTurn:     current != nil && current.ID == p.ID && s.Phase != engine.PhaseSetup,
			AdvantageCount:    len(p.AdvantageCards),
			DisadvantageCount: len(p.DisadvantageCards),
		}
		if sp := g.getPlayerByID(p.ID); sp != nil {
			ps.Connected = sp.Connected
		}
		if p.ID == forPlayer {
			ps.AdvantageCards = toClientCards(p.AdvantageCards)
			ps.DisadvantageCards = toClientCards(p.DisadvantageCards)
		}
		cs.Players[i] = ps
	}

	cs.BoardTokens = make([]ClientBoardToken, len(s.BoardTokens))
	for i, bt := range s.BoardTokens {
		cs.BoardTokens[i] = ClientBoardToken{
			ID:       bt.ID,
			Type:     string(bt.Type),
			Color:    string(bt.Color),
			Position: bt.Position,
		}
	}

	return cs
}
