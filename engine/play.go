package engine

// rollDice rolls one of the two dice instruments. A regular roll accepts a
// caller-supplied value so an externally animated die and the engine agree;
// an RPS roll always rolls both RPS dice independently.
func (g GameState) rollDice(a RollDice) (GameState, error) {
	next := g.clone()
	switch a.Kind {
	case DiceRegular:
		value := a.Value
		if value < 1 || value > 6 {
			value = next.RNG.RollDie(6)
		}
		next.Dice.Regular.Value = value
		next.Dice.Regular.Rolling = false
	case DiceRPS:
		next.Dice.RPS[0].Value = next.RNG.RollRPS()
		next.Dice.RPS[0].Rolling = false
		next.Dice.RPS[1].Value = next.RNG.RollRPS()
		next.Dice.RPS[1].Rolling = false
	default:
		return g, ErrInvalidActionPayload
	}
	return next, nil
}

// movePlayer advances a player's token, checks the win condition, and
// otherwise runs landing resolution against the new position.
func (g GameState) movePlayer(a MovePlayer) (GameState, error) {
	if g.PlayerByID(a.PlayerID) == nil {
		return g, ErrUnknownEntity
	}

	next := g.clone()
	var mover *Player
	for i := range next.Players {
		if next.Players[i].ID == a.PlayerID {
			next.Players[i].Token.Position = next.clampPosition(next.Players[i].Token.Position + a.Spaces)
			mover = &next.Players[i]
		}
	}

	if mover.Token.Position >= next.BoardSize {
		winner := clonePlayer(*mover)
		next.Winner = &winner
		next.Phase = PhaseGameOver
		return next, nil
	}

	landing := mover.Token.Position
	interaction := ResolveLanding(
		*mover,
		next.Players,
		next.BoardTokensAt(landing),
		next.PlayersAt(landing, mover.ID),
	)
	if interaction != nil {
		next.CurrentInteraction = interaction
		next.Phase = PhaseInteraction
	}
	return next, nil
}

// endTurn closes out the current turn: RPS dice reset (the numeric die
// keeps its value for reference), duel and card-in-play state clear, and
// the turn passes to the next player. A player flagged to skip loses
// exactly one turn; the flag never cascades past them.
func (g GameState) endTurn() (GameState, error) {
	if len(g.Players) == 0 {
		return g, ErrInvalidTransition
	}

	next := g.clone()
	next.Dice.RPS[0].Value = ""
	next.Dice.RPS[1].Value = ""
	next.Duel = DuelState{}
	next.CardInPlay = nil
	next.Phase = PhasePlaying

	nextIndex := (next.CurrentPlayerIndex + 1) % len(next.Players)
	if next.Players[nextIndex].HasSkippedTurn {
		next.Players[nextIndex].HasSkippedTurn = false
		nextIndex = (nextIndex + 1) % len(next.Players)
	}
	next.CurrentPlayerIndex = nextIndex
	return next, nil
}
