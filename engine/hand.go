package engine

// takeFromDeck removes and returns the head card of the given deck,
// swapping in the discard pile first when the deck is empty. The reclaimed
// pile is not reshuffled; cards come back in discard order.
func takeFromDeck(deck, discard *[]Card) (Card, bool) {
	if len(*deck) == 0 {
		*deck = *discard
		*discard = []Card{}
	}
	if len(*deck) == 0 {
		return Card{}, false
	}
	card := (*deck)[0]
	*deck = (*deck)[1:]
	return card, true
}

// drawCard draws the head card of the requested deck into the current
// player's hand and shows it as the card in play.
func (g GameState) drawCard(a DrawCard) (GameState, error) {
	current := g.CurrentPlayer()
	if current == nil {
		return g, ErrInvalidTransition
	}

	next := g.clone()
	var card Card
	var ok bool
	switch a.CardType {
	case Advantage:
		card, ok = takeFromDeck(&next.AdvantageCards, &next.DiscardedAdvantageCards)
	case Disadvantage:
		card, ok = takeFromDeck(&next.DisadvantageCards, &next.DiscardedDisadvantageCards)
	default:
		return g, ErrInvalidActionPayload
	}
	if !ok {
		return g, ErrDeckExhausted
	}

	for i := range next.Players {
		if next.Players[i].ID == current.ID {
			if a.CardType == Advantage {
				next.Players[i].AdvantageCards = append(next.Players[i].AdvantageCards, card)
			} else {
				next.Players[i].DisadvantageCards = append(next.Players[i].DisadvantageCards, card)
			}
		}
	}

	shown := card
	next.CardInPlay = &shown
	next.Phase = PhaseCardEffect
	return next, nil
}

// giveCard draws the head card of the requested deck directly into the
// recipient's hand. The source player is informational only; nothing
// leaves their hand.
func (g GameState) giveCard(a GiveCard) (GameState, error) {
	if g.PlayerByID(a.FromPlayerID) == nil || g.PlayerByID(a.ToPlayerID) == nil {
		return g, ErrUnknownEntity
	}

	next := g.clone()
	var card Card
	var ok bool
	switch a.CardType {
	case Advantage:
		card, ok = takeFromDeck(&next.AdvantageCards, &next.DiscardedAdvantageCards)
	case Disadvantage:
		card, ok = takeFromDeck(&next.DisadvantageCards, &next.DiscardedDisadvantageCards)
	default:
		return g, ErrInvalidActionPayload
	}
	if !ok {
		return g, ErrDeckExhausted
	}

	for i := range next.Players {
		if next.Players[i].ID == a.ToPlayerID {
			if a.CardType == Advantage {
				next.Players[i].AdvantageCards = append(next.Players[i].AdvantageCards, card)
			} else {
				next.Players[i].DisadvantageCards = append(next.Players[i].DisadvantageCards, card)
			}
		}
	}
	return next, nil
}

// playCard removes a card from the current player's hand to the matching
// discard pile, shows it as the card in play, and applies whatever part of
// its effect the engine can resolve without extra parameters. Move effects
// move the current player (with a winner re-check); skip-turn flags the
// next player. Duel, move-token, draw-cards, and give-card effects only
// surface intent: the caller follows up with the explicit action carrying
// the concrete parameters.
func (g GameState) playCard(a PlayCard) (GameState, error) {
	current := g.CurrentPlayer()
	if current == nil {
		return g, ErrInvalidTransition
	}

	next := g.clone()
	var played *Card
	for i := range next.Players {
		if next.Players[i].ID != current.ID {
			continue
		}
		p := &next.Players[i]
		for j, c := range p.AdvantageCards {
			if c.ID == a.CardID {
				card := c
				p.AdvantageCards = append(p.AdvantageCards[:j], p.AdvantageCards[j+1:]...)
				next.DiscardedAdvantageCards = append(next.DiscardedAdvantageCards, card)
				played = &card
				break
			}
		}
		if played != nil {
			break
		}
		for j, c := range p.DisadvantageCards {
			if c.ID == a.CardID {
				card := c
				p.DisadvantageCards = append(p.DisadvantageCards[:j], p.DisadvantageCards[j+1:]...)
				next.DiscardedDisadvantageCards = append(next.DiscardedDisadvantageCards, card)
				played = &card
				break
			}
		}
	}
	if played == nil {
		return g, ErrUnknownEntity
	}

	next.CardInPlay = played
	next.Phase = PhaseCardEffect

	switch played.Effect.Kind {
	case EffectMove:
		for i := range next.Players {
			if next.Players[i].ID == current.ID {
				next.Players[i].Token.Position = next.clampPosition(next.Players[i].Token.Position + played.Effect.Spaces)
				if next.Players[i].Token.Position >= next.BoardSize {
					winner := clonePlayer(next.Players[i])
					next.Winner = &winner
					next.Phase = PhaseGameOver
				}
			}
		}
	case EffectSkipTurn:
		nextIndex := (next.CurrentPlayerIndex + 1) % len(next.Players)
		next.Players[nextIndex].HasSkippedTurn = true
	case EffectDuel, EffectMoveToken, EffectDrawCards, EffectGiveCard:
		// Deferred to the caller's follow-up action.
	}
	return next, nil
}
