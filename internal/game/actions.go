// internal/game/actions.go
package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jaydeepc/tuas-game/engine"
	"github.com/jaydeepc/tuas-game/internal/models"
)

// payloadString extracts a string field from an action payload.
func payloadString(payload map[string]interface{}, key string) (string, error) {
	v, ok := payload[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing or invalid %q field", key)
	}
	return v, nil
}

// payloadInt extracts an integer field. JSON numbers arrive as float64.
func payloadInt(payload map[string]interface{}, key string) (int, error) {
	v, ok := payload[key].(float64)
	if !ok {
		return 0, fmt.Errorf("missing or invalid %q field", key)
	}
	return int(v), nil
}

// payloadUUID extracts and parses a UUID field.
func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, error) {
	s, err := payloadString(payload, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %q field: %v", key, err)
	}
	return id, nil
}

// payloadTokenType extracts and validates a token type field.
func payloadTokenType(payload map[string]interface{}, key string) (engine.TokenType, error) {
	s, err := payloadString(payload, key)
	if err != nil {
		return "", err
	}
	tt := engine.TokenType(s)
	switch tt {
	case engine.Rock, engine.Paper, engine.Scissors:
		return tt, nil
	}
	return "", fmt.Errorf("invalid token type %q", s)
}

// payloadCardType extracts and validates a card type field.
func payloadCardType(payload map[string]interface{}, key string) (engine.CardType, error) {
	s, err := payloadString(payload, key)
	if err != nil {
		return "", err
	}
	ct := engine.CardType(s)
	switch ct {
	case engine.Advantage, engine.Disadvantage:
		return ct, nil
	}
	return "", fmt.Errorf("invalid card type %q", s)
}

// buildEngineAction translates a client action envelope into the engine
// action it stands for. The sender's ID fills any actor field the payload
// does not name explicitly.
func buildEngineAction(senderID uuid.UUID, action models.GameAction) (engine.Action, error) {
	p := action.Payload

	switch action.ActionType {
	case "action_set_player_count":
		count, err := payloadInt(p, "count")
		if err != nil {
			return nil, err
		}
		return engine.SetPlayerCount{Count: count}, nil

	case "action_select_token":
		tt, err := payloadTokenType(p, "tokenType")
		if err != nil {
			return nil, err
		}
		color, err := payloadString(p, "tokenColor")
		if err != nil {
			return nil, err
		}
		return engine.SelectToken{
			PlayerID:   senderID,
			TokenType:  tt,
			TokenColor: engine.TokenColor(color),
		}, nil

	case "action_place_board_token":
		tokenID, err := payloadUUID(p, "tokenId")
		if err != nil {
			return nil, err
		}
		position, err := payloadInt(p, "position")
		if err != nil {
			return nil, err
		}
		return engine.PlaceBoardToken{TokenID: tokenID, Position: position}, nil

	case "action_place_all_random":
		return engine.PlaceAllTokensRandomly{}, nil

	case "action_next_placement_phase":
		return engine.NextTokenPlacementPhase{}, nil

	case "action_start_game":
		return engine.StartGame{}, nil

	case "action_roll_dice":
		kind, err := payloadString(p, "kind")
		if err != nil {
			return nil, err
		}
		value, _ := payloadInt(p, "value")
		return engine.RollDice{Kind: engine.DiceKind(kind), Value: value}, nil

	case "action_move":
		spaces, err := payloadInt(p, "spaces")
		if err != nil {
			return nil, err
		}
		playerID := senderID
		if _, ok := p["playerId"]; ok {
			playerID, err = payloadUUID(p, "playerId")
			if err != nil {
				return nil, err
			}
		}
		return engine.MovePlayer{PlayerID: playerID, Spaces: spaces}, nil

	case "action_draw_card":
		ct, err := payloadCardType(p, "cardType")
		if err != nil {
			return nil, err
		}
		return engine.DrawCard{CardType: ct}, nil

	case "action_give_card":
		toID, err := payloadUUID(p, "toPlayerId")
		if err != nil {
			return nil, err
		}
		ct, err := payloadCardType(p, "cardType")
		if err != nil {
			return nil, err
		}
		return engine.GiveCard{FromPlayerID: senderID, ToPlayerID: toID, CardType: ct}, nil

	case "action_play_card":
		cardID, err := payloadUUID(p, "cardId")
		if err != nil {
			return nil, err
		}
		return engine.PlayCard{CardID: cardID}, nil

	case "action_initiate_duel":
		opponentID, err := payloadUUID(p, "opponentId")
		if err != nil {
			return nil, err
		}
		return engine.InitiateDuel{Player1ID: senderID, Player2ID: opponentID}, nil

	case "action_duel_roll":
		v1, err := payloadTokenType(p, "player1Value")
		if err != nil {
			return nil, err
		}
		v2, err := payloadTokenType(p, "player2Value")
		if err != nil {
			return nil, err
		}
		return engine.DuelRoll{Player1Value: v1, Player2Value: v2}, nil

	case "action_resolve_interaction":
		choice, err := payloadString(p, "choice")
		if err != nil {
			return nil, err
		}
		return engine.ResolveInteraction{Choice: choice}, nil

	case "action_end_turn":
		return engine.EndTurn{}, nil

	case "action_set_setup_index":
		index, err := payloadInt(p, "index")
		if err != nil {
			return nil, err
		}
		return engine.SetSetupPlayerIndex{Index: index}, nil

	case "action_reset":
		return engine.ResetGame{}, nil
	}

	return nil, fmt.Errorf("unknown action type %q", action.ActionType)
}
