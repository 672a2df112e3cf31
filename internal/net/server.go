package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/catalog"
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/logging"
)

// Server hosts matches over WebSocket. Each connection is one human seat;
// the opponent seat is driven by the built-in AI.
type Server struct {
	Registry *Registry
	Catalog  *catalog.Memory
	// Source resolves card ids for sessions; defaults to Catalog.
	Source   game.CardSource
	HandSize int
	Seed     int64
	// DefaultDifficulty applies when a join message omits the difficulty.
	DefaultDifficulty string
	LeaderRule        game.RoundLeaderRule
}

func (s *Server) cardSource() game.CardSource {
	if s.Source != nil {
		return s.Source
	}
	return s.Catalog
}

// Handler returns the WebSocket endpoint handler.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWebSocket)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		logging.Error("websocket accept", err, nil)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	join, err := readMessage(ctx, conn)
	if err != nil || join.Type != "join" {
		conn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}

	match, playerID, err := s.startMatch(join)
	if err != nil {
		writeMessage(ctx, conn, ServerMessage{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusNormalClosure, "join failed")
		return
	}
	logging.Info("match started", logging.Fields{"match_id": match.ID, "player_id": playerID})

	snap, err := match.Snapshot(playerID)
	if err != nil {
		writeMessage(ctx, conn, ServerMessage{Type: "error", Error: err.Error()})
		return
	}
	if err := writeMessage(ctx, conn, ServerMessage{
		Type:     "joined",
		MatchID:  match.ID,
		PlayerID: playerID,
		State:    &snap,
	}); err != nil {
		return
	}

	lastSeq := 0
	lastSeq, _ = s.flush(ctx, conn, match, playerID, lastSeq)

	for {
		msg, err := readMessage(ctx, conn)
		if err != nil {
			// Disconnect mid-match is a forfeit.
			if !match.Ended() {
				_ = match.Forfeit(playerID, "disconnected")
			}
			s.Registry.Remove(match.ID)
			return
		}

		if opErr := s.apply(match, playerID, msg); opErr != nil {
			if writeErr := writeMessage(ctx, conn, ServerMessage{Type: "error", Error: opErr.Error()}); writeErr != nil {
				return
			}
		}

		var done bool
		lastSeq, done = s.flush(ctx, conn, match, playerID, lastSeq)
		if done {
			s.Registry.Remove(match.ID)
			conn.Close(websocket.StatusNormalClosure, "game ended")
			return
		}
	}
}

// startMatch resolves the join request against the catalog and registers a
// new bot match.
func (s *Server) startMatch(join ClientMessage) (*Match, string, error) {
	deck, ok := s.Catalog.DeckByName(join.Deck)
	if !ok {
		decks := s.Catalog.Decks()
		if join.Deck != "" || len(decks) == 0 {
			return nil, "", fmt.Errorf("unknown deck %q", join.Deck)
		}
		deck = decks[0]
	}
	difficultyStr := join.Difficulty
	if difficultyStr == "" {
		difficultyStr = s.DefaultDifficulty
	}
	difficulty, err := ai.ParseDifficulty(difficultyStr)
	if err != nil {
		return nil, "", err
	}

	name := join.PlayerName
	if name == "" {
		name = "Player"
	}
	playerID := uuid.NewString()

	match, err := s.Registry.CreateBotMatch(MatchConfig{
		PlayerID:   playerID,
		PlayerName: name,
		Deck:       deck.CardIDs,
		Leader:     deck.Leader,
		BotDeck:    deck.CardIDs,
		BotLeader:  deck.Leader,
		Difficulty: difficulty,
		Catalog:    s.cardSource(),
		Seed:       s.Seed,
		HandSize:   s.HandSize,
		LeaderRule: s.LeaderRule,
	})
	if err != nil {
		return nil, "", err
	}
	return match, playerID, nil
}

// apply routes one client message to its match operation.
func (s *Server) apply(match *Match, playerID string, msg ClientMessage) error {
	switch msg.Type {
	case "play":
		row, err := game.ParseRow(msg.Row)
		if err != nil {
			return err
		}
		return match.PlayCard(playerID, msg.Card, row)
	case "pass":
		return match.Pass(playerID)
	case "leader":
		return match.UseLeaderAbility(playerID)
	case "forfeit":
		return match.Forfeit(playerID, "player forfeited")
	case "state":
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// flush pushes new events and the fresh state to the client. Returns the
// new sequence cursor and whether the match is over.
func (s *Server) flush(ctx context.Context, conn *websocket.Conn, match *Match, playerID string, sinceSeq int) (int, bool) {
	for _, e := range match.EventsSince(sinceSeq) {
		sinceSeq = e.Seq
		if err := writeMessage(ctx, conn, ServerMessage{Type: "event", Event: eventView(e)}); err != nil {
			return sinceSeq, false
		}
	}

	snap, err := match.Snapshot(playerID)
	if err != nil {
		return sinceSeq, false
	}
	if err := writeMessage(ctx, conn, ServerMessage{Type: "state", State: &snap}); err != nil {
		return sinceSeq, false
	}

	if match.Ended() {
		_ = writeMessage(ctx, conn, ServerMessage{
			Type:   "game_over",
			Winner: snap.Winner,
			Result: snap.Result,
		})
		return sinceSeq, true
	}
	return sinceSeq, false
}

func readMessage(ctx context.Context, conn *websocket.Conn) (ClientMessage, error) {
	var msg ClientMessage
	_, data, err := conn.Read(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("parse client message: %w", err)
	}
	return msg, nil
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
