package engine

import "github.com/google/uuid"

// DeckSize is the fixed size of each generated deck.
const DeckSize = 19

func newCard(ct CardType, title, description string, effect CardEffect) Card {
	return Card{
		ID:          uuid.New(),
		Type:        ct,
		Title:       title,
		Description: description,
		Effect:      effect,
	}
}

func repeatCard(n int, ct CardType, title, description string, effect CardEffect) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = newCard(ct, title, description, effect)
	}
	return cards
}

// GenerateAdvantageDeck builds the fixed 19-card advantage deck with fresh
// unique ids and returns it shuffled.
//
// Composition: move+5 ×2, move+4 ×3, skipTurn ×4, duel(2) ×4, moveToken ×3,
// drawCards(2) ×1, giveCard(disadvantage) ×3.
func GenerateAdvantageDeck(rng *RNG) []Card {
	var cards []Card
	cards = append(cards, repeatCard(2, Advantage,
		"Swift Advance", "Move ahead 5 spaces",
		CardEffect{Kind: EffectMove, Spaces: 5})...)
	cards = append(cards, repeatCard(3, Advantage,
		"Quick Advance", "Move ahead 4 spaces",
		CardEffect{Kind: EffectMove, Spaces: 4})...)
	cards = append(cards, repeatCard(4, Advantage,
		"Time Freeze", "Make a player skip a turn",
		CardEffect{Kind: EffectSkipTurn})...)
	cards = append(cards, repeatCard(4, Advantage,
		"Forced Duel", "Make any 2 players play a Rock Paper Scissor Duel",
		CardEffect{Kind: EffectDuel, Players: 2})...)
	cards = append(cards, repeatCard(3, Advantage,
		"Token Shift", "Move any one Board token on the board",
		CardEffect{Kind: EffectMoveToken})...)
	cards = append(cards, newCard(Advantage,
		"Double Draw", "Pick 2 advantage cards",
		CardEffect{Kind: EffectDrawCards, Count: 2}))
	cards = append(cards, repeatCard(3, Advantage,
		"Bad Luck Charm", "Give a disadvantage card to any player",
		CardEffect{Kind: EffectGiveCard, CardType: Disadvantage})...)
	return Shuffle(rng, cards)
}

// GenerateDisadvantageDeck builds the fixed 19-card disadvantage deck with
// fresh unique ids and returns it shuffled.
//
// Composition: move−5 ×2, move−4 ×3, move−3 ×4, skipTurn ×5, move+2 ×2,
// drawCards(2) ×1, giveCard(advantage) ×3.
func GenerateDisadvantageDeck(rng *RNG) []Card {
	var cards []Card
	cards = append(cards, repeatCard(2, Disadvantage,
		"Major Setback", "Move back 5 spaces",
		CardEffect{Kind: EffectMove, Spaces: -5})...)
	cards = append(cards, repeatCard(3, Disadvantage,
		"Significant Setback", "Move back 4 spaces",
		CardEffect{Kind: EffectMove, Spaces: -4})...)
	cards = append(cards, repeatCard(4, Disadvantage,
		"Minor Setback", "Move back 3 spaces",
		CardEffect{Kind: EffectMove, Spaces: -3})...)
	cards = append(cards, repeatCard(5, Disadvantage,
		"Time Warp", "Skip a turn",
		CardEffect{Kind: EffectSkipTurn})...)
	cards = append(cards, repeatCard(2, Disadvantage,
		"Opponent Boost", "Make any player move 2 places ahead",
		CardEffect{Kind: EffectMove, Spaces: 2})...)
	cards = append(cards, newCard(Disadvantage,
		"Double Trouble", "Pick 2 disadvantage cards",
		CardEffect{Kind: EffectDrawCards, Count: 2}))
	cards = append(cards, repeatCard(3, Disadvantage,
		"Karma", "Give an advantage card to the player because of whom you got a disadvantage card",
		CardEffect{Kind: EffectGiveCard, CardType: Advantage})...)
	return Shuffle(rng, cards)
}
