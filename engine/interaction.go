package engine

// Option strings offered by interactions. Callers echo these back verbatim
// as the ResolveInteraction choice.
const (
	OptionMoveForward2     = "Move forward 2 spaces"
	OptionMoveBack2        = "Move back 2 spaces"
	OptionDrawAdvantage    = "Draw advantage card"
	OptionDrawDisadvantage = "Draw disadvantage card"
	OptionGiveAdvantage    = "Give advantage card"
	OptionGiveDisadvantage = "Give disadvantage card"
	OptionCallDuel         = "Call for duel"
	OptionSkip             = "Skip"
)

// ResolveLanding decides whether landing on a space forces an interaction,
// and which kind. Board tokens take precedence: when one occupies the
// destination, the player-collision branch is not evaluated at all for
// this landing. Only the first occupant of each kind is considered.
func ResolveLanding(mover Player, allPlayers []Player, boardTokens []BoardToken, otherPlayers []Player) *Interaction {
	if len(boardTokens) > 0 {
		return resolveBoardTokenLanding(mover, allPlayers, boardTokens[0])
	}
	if len(otherPlayers) > 0 {
		return resolvePlayerLanding(mover, otherPlayers[0])
	}
	return nil
}

func resolveBoardTokenLanding(mover Player, allPlayers []Player, token BoardToken) *Interaction {
	src := clonePlayer(mover)
	bt := token

	switch {
	case mover.Token.Type.Beats(token.Type):
		return &Interaction{
			Type:         MoveForwardOrDrawCard,
			SourcePlayer: &src,
			BoardToken:   &bt,
			Options:      []string{OptionMoveForward2, OptionDrawAdvantage},
		}
	case token.Type.Beats(mover.Token.Type):
		return &Interaction{
			Type:         MoveBackOrDrawCard,
			SourcePlayer: &src,
			BoardToken:   &bt,
			Options:      []string{OptionMoveBack2, OptionDrawDisadvantage},
		}
	default:
		// Same type: a duel offer, but only when an opponent has actually
		// left the start space.
		for _, p := range allPlayers {
			if p.ID != mover.ID && p.Token.Position > 0 {
				return &Interaction{
					Type:         CallDuelOrSkip,
					SourcePlayer: &src,
					BoardToken:   &bt,
					Options:      []string{OptionCallDuel, OptionSkip},
				}
			}
		}
		return nil
	}
}

func resolvePlayerLanding(mover, other Player) *Interaction {
	src := clonePlayer(mover)
	tgt := clonePlayer(other)

	switch {
	case mover.Token.Type.Beats(other.Token.Type):
		return &Interaction{
			Type:         DrawAdvantageOrGiveDisadvantage,
			SourcePlayer: &src,
			TargetPlayer: &tgt,
			Options:      []string{OptionDrawAdvantage, OptionGiveDisadvantage},
		}
	case other.Token.Type.Beats(mover.Token.Type):
		return &Interaction{
			Type:         DrawDisadvantageOrGiveAdvantage,
			SourcePlayer: &src,
			TargetPlayer: &tgt,
			Options:      []string{OptionDrawDisadvantage, OptionGiveAdvantage},
		}
	default:
		return &Interaction{
			Type:         CallDuel,
			SourcePlayer: &src,
			TargetPlayer: &tgt,
			Options:      []string{OptionCallDuel},
		}
	}
}

// setInteraction installs a caller-built interaction and enters the
// interaction phase.
func (g GameState) setInteraction(a SetInteraction) (GameState, error) {
	next := g.clone()
	in := a.Interaction
	next.CurrentInteraction = cloneInteraction(&in)
	next.Phase = PhaseInteraction
	return next, nil
}

// resolveInteraction applies the chosen option of the current interaction.
// Only the movement options are engine-resolvable here; card draws, card
// gives, and duel calls are expected as explicit follow-up actions from the
// caller. Resolving always clears the interaction and returns to playing
// (or ends the game on a winning forward move).
func (g GameState) resolveInteraction(a ResolveInteraction) (GameState, error) {
	if g.CurrentInteraction == nil {
		return g, ErrInvalidTransition
	}
	in := g.CurrentInteraction
	if in.SourcePlayer == nil {
		return g, ErrInvalidTransition
	}

	choiceIndex := -1
	for i, opt := range in.Options {
		if opt == a.Choice {
			choiceIndex = i
			break
		}
	}
	if choiceIndex == -1 {
		return g, ErrIllegalChoice
	}

	next := g.clone()
	next.CurrentInteraction = nil
	next.Phase = PhasePlaying

	switch in.Type {
	case MoveBackOrDrawCard:
		if choiceIndex == 0 {
			for i := range next.Players {
				if next.Players[i].ID == in.SourcePlayer.ID {
					next.Players[i].Token.Position = next.clampPosition(next.Players[i].Token.Position - 2)
				}
			}
		}
	case MoveForwardOrDrawCard:
		if choiceIndex == 0 {
			for i := range next.Players {
				if next.Players[i].ID == in.SourcePlayer.ID {
					next.Players[i].Token.Position = next.clampPosition(next.Players[i].Token.Position + 2)
					if next.Players[i].Token.Position >= next.BoardSize {
						winner := clonePlayer(next.Players[i])
						next.Winner = &winner
						next.Phase = PhaseGameOver
					}
				}
			}
		}
	case CallDuelOrSkip, CallDuel:
		// The duel itself starts with an explicit InitiateDuel.
	case DrawAdvantageOrGiveDisadvantage, DrawDisadvantageOrGiveAdvantage:
		// Both options are actioned by explicit DrawCard/GiveCard.
	}

	return next, nil
}
