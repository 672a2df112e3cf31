// Package net hosts live matches: per-match serialization, the match
// registry, and the WebSocket transport.
package net

import (
	"sync"
	"time"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/log"
)

// Match owns one running session. Every operation takes the match lock, so
// session mutations are serialized; after each human operation the bot seat
// is driven until the turn comes back or the game ends.
type Match struct {
	ID      string
	Created time.Time

	mu      sync.Mutex
	session *game.Session
	events  *log.MemoryLogger
	bot     *ai.Player
	botSeat int // -1 for a two-human match
}

// MatchConfig describes a match against the built-in opponent.
type MatchConfig struct {
	PlayerID   string
	PlayerName string
	Deck       []string
	Leader     string

	BotDeck    []string
	BotLeader  string
	Difficulty ai.Difficulty

	Catalog    game.CardSource
	Seed       int64
	HandSize   int
	LeaderRule game.RoundLeaderRule
}

const botPlayerID = "bot"

// NewBotMatch starts a session with the human in seat 0 and the AI in
// seat 1, and lets the bot act if it leads.
func NewBotMatch(id string, cfg MatchConfig) (*Match, error) {
	events := log.NewMemoryLogger()
	session, err := game.NewSession(game.SessionConfig{
		Players: [2]game.ParticipantConfig{
			{ID: cfg.PlayerID, Name: cfg.PlayerName, Deck: cfg.Deck, Leader: cfg.Leader},
			{ID: botPlayerID, Name: "Opponent (" + cfg.Difficulty.String() + ")", Deck: cfg.BotDeck, Leader: cfg.BotLeader},
		},
		Catalog:    cfg.Catalog,
		Logger:     events,
		Seed:       cfg.Seed,
		HandSize:   cfg.HandSize,
		LeaderRule: cfg.LeaderRule,
	})
	if err != nil {
		return nil, err
	}

	m := &Match{
		ID:      id,
		Created: time.Now(),
		session: session,
		events:  events,
		bot:     ai.NewPlayer(cfg.Difficulty, cfg.Seed),
		botSeat: 1,
	}

	m.mu.Lock()
	m.driveBot()
	m.mu.Unlock()
	return m, nil
}

// PlayCard plays for a human participant, then lets the bot respond.
func (m *Match) PlayCard(playerID, cardID string, row game.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.PlayCard(playerID, cardID, row); err != nil {
		return err
	}
	m.driveBot()
	return nil
}

// Pass passes for a human participant, then lets the bot respond.
func (m *Match) Pass(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.Pass(playerID); err != nil {
		return err
	}
	m.driveBot()
	return nil
}

// UseLeaderAbility spends the participant's leader ability.
func (m *Match) UseLeaderAbility(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.UseLeaderAbility(playerID); err != nil {
		return err
	}
	m.driveBot()
	return nil
}

// Forfeit aborts the match.
func (m *Match) Forfeit(playerID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Abort(playerID, reason)
}

// Snapshot returns the viewer's redacted state.
func (m *Match) Snapshot(playerID string) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Snapshot(playerID)
}

// EventsSince returns events with a sequence number greater than seq.
func (m *Match) EventsSince(seq int) []log.GameEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.events.Events()
	for i, e := range all {
		if e.Seq > seq {
			out := make([]log.GameEvent, len(all)-i)
			copy(out, all[i:])
			return out
		}
	}
	return nil
}

// Ended reports whether the match reached a terminal state.
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.State() == game.StateGameEnded
}

// SeatOf resolves a participant id. Unknown ids get game.ErrUnknownPlayer.
func (m *Match) SeatOf(playerID string) (int, error) {
	return m.session.SeatOf(playerID)
}

// driveBot runs the AI seat until the turn leaves it or the game ends.
// Must be called with the match lock held.
func (m *Match) driveBot() {
	if m.botSeat < 0 {
		return
	}
	// Each Act plays a card or passes, so this terminates; the bound is a
	// guard against a stuck session.
	for i := 0; i < 1000; i++ {
		if m.session.State() != game.StateInProgress || m.session.TurnSeat() != m.botSeat {
			return
		}
		if err := m.bot.Act(m.session, m.botSeat); err != nil {
			return
		}
	}
}
