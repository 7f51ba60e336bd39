package engine

import (
	"testing"

	"github.com/google/uuid"
)

// TestDetermineRPSWinner checks the full dominance table.
func TestDetermineRPSWinner(t *testing.T) {
	cases := []struct {
		v1, v2 TokenType
		want   DuelResult
	}{
		{Rock, Scissors, DuelWinnerPlayer1},
		{Scissors, Paper, DuelWinnerPlayer1},
		{Paper, Rock, DuelWinnerPlayer1},
		{Scissors, Rock, DuelWinnerPlayer2},
		{Paper, Scissors, DuelWinnerPlayer2},
		{Rock, Paper, DuelWinnerPlayer2},
		{Rock, Rock, DuelDraw},
		{Paper, Paper, DuelDraw},
		{Scissors, Scissors, DuelDraw},
	}
	for _, tc := range cases {
		if got := DetermineRPSWinner(tc.v1, tc.v2); got != tc.want {
			t.Errorf("DetermineRPSWinner(%s, %s) = %s, want %s", tc.v1, tc.v2, got, tc.want)
		}
	}
}

// TestInitiateDuel verifies the duel phase opens with both duelists
// recorded and no result.
func TestInitiateDuel(t *testing.T) {
	g := newStartedGame(t, 42, tokenSpec{Rock, ColorOrange}, tokenSpec{Paper, ColorRed})

	g = mustApply(t, g, InitiateDuel{Player1ID: g.Players[0].ID, Player2ID: g.Players[1].ID})
	if g.Phase != PhaseDuel {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseDuel)
	}
	if g.Duel.Player1 == nil || g.Duel.Player1.ID != g.Players[0].ID {
		t.Error("duel player 1 not recorded")
	}
	if g.Duel.Player2 == nil || g.Duel.Player2.ID != g.Players[1].ID {
		t.Error("duel player 2 not recorded")
	}
	if g.Duel.Result != "" {
		t.Errorf("duel result = %q before any roll", g.Duel.Result)
	}
}

// TestInitiateDuelUnknownPlayer verifies unknown duelists are rejected.
func TestInitiateDuelUnknownPlayer(t *testing.T) {
	g := newStartedGame(t, 42, tokenSpec{Rock, ColorOrange}, tokenSpec{Paper, ColorRed})
	mustReject(t, g, InitiateDuel{Player1ID: g.Players[0].ID, Player2ID: uuid.New()}, ErrUnknownEntity)
}

// TestDuelRollDecisive verifies the loser moves back 4 spaces, clamped at
// 0, and play resumes.
func TestDuelRollDecisive(t *testing.T) {
	g := newStartedGame(t, 42, tokenSpec{Rock, ColorOrange}, tokenSpec{Paper, ColorRed})
	g.Players[0].Token.Position = 10
	g.Players[1].Token.Position = 2
	g = mustApply(t, g, InitiateDuel{Player1ID: g.Players[0].ID, Player2ID: g.Players[1].ID})

	g = mustApply(t, g, DuelRoll{Player1Value: Rock, Player2Value: Scissors})
	if g.Duel.Result != DuelWinnerPlayer1 {
		t.Errorf("result = %s, want %s", g.Duel.Result, DuelWinnerPlayer1)
	}
	if got := g.Players[1].Token.Position; got != 0 {
		t.Errorf("loser position = %d, want 0 (2 - 4 clamped)", got)
	}
	if got := g.Players[0].Token.Position; got != 10 {
		t.Errorf("winner position = %d, want unchanged 10", got)
	}
	if g.Phase != PhasePlaying {
		t.Errorf("phase = %s, want %s", g.Phase, PhasePlaying)
	}
}

// TestDuelRollDraw verifies a draw keeps the duel open for a re-roll.
func TestDuelRollDraw(t *testing.T) {
	g := newStartedGame(t, 42, tokenSpec{Rock, ColorOrange}, tokenSpec{Paper, ColorRed})
	g.Players[0].Token.Position = 10
	g.Players[1].Token.Position = 8
	g = mustApply(t, g, InitiateDuel{Player1ID: g.Players[0].ID, Player2ID: g.Players[1].ID})

	g = mustApply(t, g, DuelRoll{Player1Value: Paper, Player2Value: Paper})
	if g.Duel.Result != DuelDraw {
		t.Errorf("result = %s, want %s", g.Duel.Result, DuelDraw)
	}
	if g.Phase != PhaseDuel {
		t.Errorf("phase = %s, want still %s", g.Phase, PhaseDuel)
	}
	if g.Players[0].Token.Position != 10 || g.Players[1].Token.Position != 8 {
		t.Error("positions changed on a drawn duel")
	}

	// Re-roll decisively.
	g = mustApply(t, g, DuelRoll{Player1Value: Scissors, Player2Value: Rock})
	if g.Duel.Result != DuelWinnerPlayer2 {
		t.Errorf("result = %s, want %s", g.Duel.Result, DuelWinnerPlayer2)
	}
	if got := g.Players[0].Token.Position; got != 6 {
		t.Errorf("loser position = %d, want 6", got)
	}
}

// TestDuelRollWithoutDuel verifies rolling outside a duel is rejected.
func TestDuelRollWithoutDuel(t *testing.T) {
	g := newStartedGame(t, 42, tokenSpec{Rock, ColorOrange}, tokenSpec{Paper, ColorRed})
	mustReject(t, g, DuelRoll{Player1Value: Rock, Player2Value: Paper}, ErrInvalidTransition)
}
