package game

import (
	"errors"
	"testing"

	"github.com/mtarnawa/gwentish/internal/log"
)

func TestSessionTurnAlternation(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3), creature("a2", "nb", 3)},
		[]Card{creature("b1", "nc", 3), creature("b2", "nd", 3)},
	)

	if s.TurnSeat() != 0 {
		t.Fatalf("turn = %d, want seat 0 to lead round 1", s.TurnSeat())
	}
	mustPlay(t, s, "alice", "a1", RowMelee)
	if s.TurnSeat() != 1 {
		t.Errorf("turn = %d after alice's play, want 1", s.TurnSeat())
	}
	mustPlay(t, s, "bob", "b1", RowMelee)
	if s.TurnSeat() != 0 {
		t.Errorf("turn = %d after bob's play, want 0", s.TurnSeat())
	}
}

func TestSessionRejectsOutOfTurnPlay(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3)},
		[]Card{creature("b1", "nb", 3)},
	)

	err := s.PlayCard("bob", "b1", RowMelee)
	if !IsIllegalOperation(err) || !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want IllegalOperation(ErrNotYourTurn)", err)
	}
	// No state change: bob's card is still in hand, board empty.
	if len(s.Hand(1)) != 1 {
		t.Errorf("bob hand = %d cards, want 1", len(s.Hand(1)))
	}
	if len(s.RowCards(1, RowMelee)) != 0 {
		t.Errorf("bob melee row not empty after rejected play")
	}
}

func TestSessionRejectsCardNotInHand(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3)},
		[]Card{creature("b1", "nb", 3)},
	)

	err := s.PlayCard("alice", "no-such-card", RowMelee)
	if !IsIllegalOperation(err) || !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("err = %v, want IllegalOperation(ErrCardNotInHand)", err)
	}
	if len(s.Hand(0)) != 1 {
		t.Errorf("alice hand = %d cards, want 1 (unchanged)", len(s.Hand(0)))
	}
}

func TestSessionRejectsInvalidRow(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3)},
		[]Card{creature("b1", "nb", 3)},
	)

	err := s.PlayCard("alice", "a1", Row(7))
	if !IsIllegalOperation(err) || !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("err = %v, want IllegalOperation(ErrInvalidRow)", err)
	}
}

func TestSessionRejectsUnknownPlayer(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3)},
		[]Card{creature("b1", "nb", 3)},
	)
	if err := s.Pass("mallory"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("err = %v, want ErrUnknownPlayer", err)
	}
}

func TestSessionActorKeepsTurnWhenOpponentPassed(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 10), creature("a2", "nb", 10)},
		[]Card{creature("b1", "nc", 5), creature("b2", "nd", 5)},
	)

	mustPass(t, s, "alice")
	if s.TurnSeat() != 1 {
		t.Fatalf("turn = %d after alice passes, want 1", s.TurnSeat())
	}
	mustPlay(t, s, "bob", "b1", RowMelee)
	if s.TurnSeat() != 1 {
		t.Errorf("turn = %d, want bob to keep the turn after alice passed", s.TurnSeat())
	}
	mustPlay(t, s, "bob", "b2", RowRanged)
	if s.TurnSeat() != 1 {
		t.Errorf("turn = %d, want bob still acting", s.TurnSeat())
	}
}

func TestSessionTiedRoundNoWinnerStillTransitions(t *testing.T) {
	s, logger := newTestSession(t,
		[]Card{creature("a1", "na", 20), creature("a2", "nb", 1)},
		[]Card{creature("b1", "nc", 20), creature("b2", "nd", 1)},
	)

	mustPlay(t, s, "alice", "a1", RowMelee)
	mustPlay(t, s, "bob", "b1", RowMelee)
	mustPass(t, s, "alice")
	mustPass(t, s, "bob")

	if s.RoundsWon(0) != 0 || s.RoundsWon(1) != 0 {
		t.Errorf("rounds won = %d-%d after a 20-20 tie, want 0-0", s.RoundsWon(0), s.RoundsWon(1))
	}
	ended := logger.EventsOfType(log.EventRoundEnded)
	if len(ended) != 1 {
		t.Fatalf("round ended events = %d, want 1", len(ended))
	}
	if ended[0].Player != -1 {
		t.Errorf("round winner = %d, want -1 (tie)", ended[0].Player)
	}
	if s.Round() != 2 || s.State() != StateInProgress {
		t.Errorf("state = round %d %s, want round 2 in progress", s.Round(), s.State())
	}
	// Modifiers were cleared with the round.
	if got := s.Scores(); got != [2]int{0, 0} {
		t.Errorf("scores at round 2 start = %v, want zeros", got)
	}
}

func TestSessionBestOfThreeEndsAtTwoWins(t *testing.T) {
	s, logger := newTestSession(t,
		[]Card{creature("a1", "na", 10), creature("a2", "nb", 10)},
		[]Card{creature("b1", "nc", 5), creature("b2", "nd", 5)},
	)

	// Round 1: alice 10, bob 5, alice takes it.
	mustPlay(t, s, "alice", "a1", RowMelee)
	mustPlay(t, s, "bob", "b1", RowMelee)
	mustPass(t, s, "alice")
	mustPass(t, s, "bob")

	if s.RoundsWon(0) != 1 {
		t.Fatalf("alice rounds won = %d, want 1", s.RoundsWon(0))
	}
	// Loser leads the next round by default.
	if s.Round() != 2 || s.TurnSeat() != 1 {
		t.Fatalf("round %d turn %d, want round 2 led by bob", s.Round(), s.TurnSeat())
	}

	// Round 2: alice takes it again, game over, no round 3.
	mustPlay(t, s, "bob", "b2", RowMelee)
	mustPlay(t, s, "alice", "a2", RowMelee)
	mustPass(t, s, "bob")
	mustPass(t, s, "alice")

	if s.State() != StateGameEnded {
		t.Fatalf("state = %s, want game ended at two round wins", s.State())
	}
	if s.Winner() != 0 {
		t.Errorf("winner = %d, want seat 0", s.Winner())
	}
	if n := len(logger.EventsOfType(log.EventGameEnded)); n != 1 {
		t.Errorf("game ended events = %d, want 1", n)
	}

	// Operations after game end are rejected.
	if err := s.Pass("alice"); !errors.Is(err, ErrGameEnded) {
		t.Errorf("pass after end: err = %v, want ErrGameEnded", err)
	}
}

func TestSessionAllTiesIsADraw(t *testing.T) {
	// Alice passes round 1 away, bob empties his hand winning it; round 2
	// goes to alice the same way; round 3 finds both hands empty and ties
	// 0-0: one round win apiece, game is a draw.
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 10), creature("a2", "nb", 10)},
		[]Card{creature("b1", "nc", 5), creature("b2", "nd", 5)},
	)

	mustPass(t, s, "alice")
	mustPlay(t, s, "bob", "b1", RowMelee)
	mustPlay(t, s, "bob", "b2", RowRanged)
	mustPass(t, s, "bob") // bob wins round 1, 10-0

	if s.RoundsWon(1) != 1 {
		t.Fatalf("bob rounds won = %d, want 1", s.RoundsWon(1))
	}
	// Round 2: alice (the loser) leads; bob has no cards and is
	// auto-passed, so alice keeps the turn throughout.
	if s.Round() != 2 || s.TurnSeat() != 0 {
		t.Fatalf("round %d turn %d, want round 2 led by alice", s.Round(), s.TurnSeat())
	}
	if !s.Passed(1) {
		t.Fatalf("bob should be auto-passed with an empty hand")
	}
	mustPlay(t, s, "alice", "a1", RowMelee)
	mustPlay(t, s, "alice", "a2", RowSiege)
	mustPass(t, s, "alice") // alice wins round 2, 20-0

	// Round 3: neither side has cards to contest, so an immediate 0-0 tie,
	// one round apiece: a drawn game.
	if s.State() != StateGameEnded {
		t.Fatalf("state = %s, want game ended", s.State())
	}
	if s.Winner() != -1 {
		t.Errorf("winner = %d, want -1 (draw)", s.Winner())
	}
}

func TestSessionAbortEndsGameImmediately(t *testing.T) {
	s, logger := newTestSession(t,
		[]Card{creature("a1", "na", 3)},
		[]Card{creature("b1", "nb", 3)},
	)

	// Abort requires no turn-order check: bob forfeits on alice's turn.
	if err := s.Abort("bob", "disconnect"); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if s.State() != StateGameEnded {
		t.Fatalf("state = %s, want game ended", s.State())
	}
	if s.Winner() != 0 {
		t.Errorf("winner = %d, want the remaining player", s.Winner())
	}
	if n := len(logger.EventsOfType(log.EventForfeit)); n != 1 {
		t.Errorf("forfeit events = %d, want 1", n)
	}
	if err := s.Abort("alice", "again"); !errors.Is(err, ErrGameEnded) {
		t.Errorf("second abort: err = %v, want ErrGameEnded", err)
	}
}

func TestSessionFactionComboThroughPlay(t *testing.T) {
	s, logger := newTestSession(t,
		[]Card{
			creature("fire-a", "fire", 5),
			creature("fire-b", "fire", 6),
			creature("fire-c", "fire", 7),
			creature("fire-d", "fire", 3),
		},
		fillerDeck("b", 4),
	)

	mustPlay(t, s, "alice", "fire-a", RowMelee)
	mustPlay(t, s, "bob", "b0", RowMelee)
	mustPlay(t, s, "alice", "fire-b", RowMelee)
	mustPlay(t, s, "bob", "b1", RowMelee)
	mustPlay(t, s, "alice", "fire-c", RowMelee)
	if n := len(logger.EventsOfType(log.EventComboTriggered)); n != 1 {
		t.Fatalf("combo events after third fire card = %d, want 1", n)
	}
	// The combo firing also announces the recomputed totals.
	changed := logger.EventsOfType(log.EventScoreChanged)
	if len(changed) != 1 || changed[0].Scores != [2]int{21, 2} {
		t.Fatalf("score change events = %v, want one at 21-2", changed)
	}
	mustPlay(t, s, "bob", "b2", RowMelee)
	mustPlay(t, s, "alice", "fire-d", RowRanged)

	// Third fire card fired faction_fire at +1 each; the fourth must not
	// re-trigger it, so the total is 5+6+7 +3(first boost) +3(base of 4th).
	if got := s.Scores()[0]; got != 24 {
		t.Errorf("alice total = %d, want 24", got)
	}
	if n := len(logger.EventsOfType(log.EventComboTriggered)); n != 1 {
		t.Errorf("combo events = %d, want still 1 within the round", n)
	}
}

func TestSessionSnapshotRedactsOpponentHand(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 3), creature("a2", "nb", 4)},
		[]Card{creature("b1", "nc", 3)},
	)

	snap, err := s.Snapshot("alice")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.You.Hand) != 2 {
		t.Errorf("own hand = %d cards, want 2", len(snap.You.Hand))
	}
	if snap.Opponent.Hand != nil {
		t.Errorf("opponent hand exposed: %v", snap.Opponent.Hand)
	}
	if snap.Opponent.HandCount != 1 {
		t.Errorf("opponent hand count = %d, want 1", snap.Opponent.HandCount)
	}
	if !snap.IsYourTurn {
		t.Errorf("IsYourTurn = false for the leading seat")
	}

	if _, err := s.Snapshot("mallory"); err == nil {
		t.Errorf("snapshot for unknown player succeeded")
	}
}

func TestSessionLeaderAbilityWeatherClamp(t *testing.T) {
	cards := []Card{creature("a1", "na", 10), creature("b1", "nb", 2)}
	catalog := newStubCatalog(cards...).
		addLeader(Leader{ID: "frost-king", Name: "Frost King", Ability: LeaderAbilityFrost})

	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Players: [2]ParticipantConfig{
			{ID: "alice", Name: "Alice", Deck: []string{"a1"}, Leader: "frost-king"},
			{ID: "bob", Name: "Bob", Deck: []string{"b1"}},
		},
		Catalog:   catalog,
		Logger:    logger,
		Seed:      1,
		NoShuffle: true,
		HandSize:  1,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if err := s.UseLeaderAbility("alice"); err != nil {
		t.Fatalf("UseLeaderAbility: %v", err)
	}
	mustPlay(t, s, "bob", "b1", RowRanged)
	mustPlay(t, s, "alice", "a1", RowMelee)

	// Frost caps the 10-power melee card to 1; bob's ranged card is clear.
	scores := s.Scores()
	if scores[0] != 1 || scores[1] != 2 {
		t.Errorf("scores = %v, want [1 2]", scores)
	}

	// Once per game.
	err = s.UseLeaderAbility("alice")
	if !errors.Is(err, ErrLeaderUsed) && !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("second use: err = %v, want rejection", err)
	}
}

func TestSessionMissingCardIsConfigurationError(t *testing.T) {
	catalog := newStubCatalog(creature("a1", "na", 3))
	_, err := NewSession(SessionConfig{
		Players: [2]ParticipantConfig{
			{ID: "alice", Deck: []string{"a1"}},
			{ID: "bob", Deck: []string{"missing"}},
		},
		Catalog: catalog,
	})
	if !IsConfigurationError(err) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestSessionDuplicateDeckEntriesBecomeInstances(t *testing.T) {
	catalog := newStubCatalog(creature("grunt", "na", 2))
	s, err := NewSession(SessionConfig{
		Players: [2]ParticipantConfig{
			{ID: "alice", Deck: []string{"grunt", "grunt", "grunt"}},
			{ID: "bob", Deck: []string{"grunt"}},
		},
		Catalog:   catalog,
		NoShuffle: true,
		HandSize:  3,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range s.Hand(0) {
		if seen[c.ID] {
			t.Fatalf("duplicate instance id %s in hand", c.ID)
		}
		seen[c.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("distinct instances = %d, want 3", len(seen))
	}
}

func TestSessionRowOrderIndependentScoring(t *testing.T) {
	// Same cards, opposite play order into the same row: totals match.
	deckX := []Card{creature("x1", "na", 4), creature("x2", "nb", 9)}
	deckY := []Card{creature("y1", "nc", 9), creature("y2", "nd", 4)}
	s, _ := newTestSession(t, deckX, deckY)

	mustPlay(t, s, "alice", "x1", RowMelee)
	mustPlay(t, s, "bob", "y1", RowMelee)
	mustPlay(t, s, "alice", "x2", RowMelee)
	mustPlay(t, s, "bob", "y2", RowMelee)

	scores := s.Scores()
	if scores[0] != scores[1] || scores[0] != 13 {
		t.Errorf("scores = %v, want both 13", scores)
	}
}

func TestParseRoundLeaderRule(t *testing.T) {
	cases := []struct {
		in      string
		want    RoundLeaderRule
		wantErr bool
	}{
		{"", LoserLeads, false},
		{"loser-leads", LoserLeads, false},
		{"Winner", WinnerLeads, false},
		{"alternate", AlternateLeads, false},
		{"coinflip", LoserLeads, true},
	}
	for _, tc := range cases {
		got, err := ParseRoundLeaderRule(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRoundLeaderRule(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRoundLeaderRule(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestSessionRoundEndSweepsBoards(t *testing.T) {
	s, _ := newTestSession(t,
		[]Card{creature("a1", "na", 12), creature("a2", "nb", 8)},
		[]Card{creature("b1", "nc", 12), creature("b2", "nd", 8)},
	)

	mustPlay(t, s, "alice", "a1", RowMelee)
	mustPlay(t, s, "bob", "b1", RowMelee)
	mustPass(t, s, "alice")
	mustPass(t, s, "bob")

	if s.Round() != 2 || s.State() != StateInProgress {
		t.Fatalf("state = round %d %s, want round 2 in progress", s.Round(), s.State())
	}
	// Round 1 cards are gone from the boards, so the new round opens 0-0.
	if got := s.Scores(); got != [2]int{0, 0} {
		t.Errorf("scores at round 2 start = %v, want zeros", got)
	}
	for seat := 0; seat < 2; seat++ {
		for r := RowMelee; r <= RowSiege; r++ {
			if cards := s.RowCards(seat, r); len(cards) != 0 {
				t.Errorf("seat %d row %s holds %v after round end, want empty", seat, r, ids(cards))
			}
		}
	}
	if g := s.fields[0].Graveyard(); len(g) != 1 || g[0].ID != "a1" {
		t.Errorf("seat 0 graveyard = %v, want [a1]", ids(g))
	}
	// Hands persist minus cards played.
	if h := s.Hand(0); len(h) != 1 || h[0].ID != "a2" {
		t.Errorf("seat 0 hand = %v, want [a2]", ids(h))
	}
}
