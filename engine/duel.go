package engine

// DetermineRPSWinner resolves two RPS values under the standard dominance
// relation.
func DetermineRPSWinner(value1, value2 TokenType) DuelResult {
	if value1 == value2 {
		return DuelDraw
	}
	if value1.Beats(value2) {
		return DuelWinnerPlayer1
	}
	return DuelWinnerPlayer2
}

// initiateDuel enters the duel phase with both players recorded and no
// result yet.
func (g GameState) initiateDuel(a InitiateDuel) (GameState, error) {
	p1 := g.PlayerByID(a.Player1ID)
	p2 := g.PlayerByID(a.Player2ID)
	if p1 == nil || p2 == nil {
		return g, ErrUnknownEntity
	}

	next := g.clone()
	d1 := clonePlayer(*p1)
	d2 := clonePlayer(*p2)
	next.Duel = DuelState{Player1: &d1, Player2: &d2}
	next.Phase = PhaseDuel
	return next, nil
}

// duelRoll records both duelists' RPS values and applies the outcome. A
// draw keeps the duel phase open for a re-roll; a decisive result moves
// the loser back 4 spaces (clamped at 0) and returns to playing.
func (g GameState) duelRoll(a DuelRoll) (GameState, error) {
	if g.Duel.Player1 == nil || g.Duel.Player2 == nil {
		return g, ErrInvalidTransition
	}

	next := g.clone()
	result := DetermineRPSWinner(a.Player1Value, a.Player2Value)
	next.Duel.Result = result
	if result == DuelDraw {
		return next, nil
	}

	loserID := next.Duel.Player1.ID
	if result == DuelWinnerPlayer1 {
		loserID = next.Duel.Player2.ID
	}
	for i := range next.Players {
		if next.Players[i].ID == loserID {
			next.Players[i].Token.Position = next.clampPosition(next.Players[i].Token.Position - 4)
		}
	}
	next.Phase = PhasePlaying
	return next, nil
}
