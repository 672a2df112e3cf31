// Package mcp exposes the duel as MCP tools over stdio: the client plays
// one seat against the built-in opponent, one tool call per operation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/catalog"
	"github.com/mtarnawa/gwentish/internal/game"
	gwnet "github.com/mtarnawa/gwentish/internal/net"
)

const playerID = "mcp-client"

// activeMatch is the singleton match (one per stdio process).
var activeMatch *gwnet.Match

// cardCatalog backs deck resolution, set by main.
var cardCatalog *catalog.Memory

// lastSeq is the event cursor across tool calls.
var lastSeq int

// SetCatalog sets the card catalog used for matches.
func SetCatalog(m *catalog.Memory) {
	cardCatalog = m
}

// RegisterTools adds all duel tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), handleStartMatch)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(passTurnTool(), handlePassTurn)
	s.AddTool(useLeaderTool(), handleUseLeader)
	s.AddTool(getStateTool(), handleGetState)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new duel against the built-in opponent. Returns the opening state: "+
			"your hand, both boards, and whose turn it is. Best of three rounds; highest field total wins a round."),
		mcp.WithString("deck", mcp.Description("Prebuilt deck name (defaults to the first deck in the catalog)")),
		mcp.WithString("difficulty", mcp.Description("Opponent difficulty: easy, normal, hard, or expert (default normal)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand onto one of your rows. The opponent responds before this returns."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card id from your hand")),
		mcp.WithString("row", mcp.Required(), mcp.Description("Target row: melee, ranged, or siege")),
	)
}

func passTurnTool() mcp.Tool {
	return mcp.NewTool("pass_turn",
		mcp.WithDescription("Pass for the rest of the round. The round ends once both sides have passed."),
	)
}

func useLeaderTool() mcp.Tool {
	return mcp.NewTool("use_leader",
		mcp.WithDescription("Spend your once-per-game leader ability. Consumes your turn like a card play."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current match state and the events since your last call. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeMatch != nil && !activeMatch.Ended() {
		return mcp.NewToolResultError("A match is already running. Finish it or forfeit via pass/play, then start again."), nil
	}
	if cardCatalog == nil {
		return mcp.NewToolResultError("No card catalog configured."), nil
	}

	deckName := request.GetString("deck", "")
	deck, ok := cardCatalog.DeckByName(deckName)
	if !ok {
		decks := cardCatalog.Decks()
		if deckName != "" || len(decks) == 0 {
			return mcp.NewToolResultErrorf("Unknown deck %q.", deckName), nil
		}
		deck = decks[0]
	}

	difficulty, err := ai.ParseDifficulty(request.GetString("difficulty", "normal"))
	if err != nil {
		return mcp.NewToolResultErrorf("%v. Use easy, normal, hard, or expert.", err), nil
	}

	match, err := gwnet.NewBotMatch("mcp", gwnet.MatchConfig{
		PlayerID:   playerID,
		PlayerName: "Claude",
		Deck:       deck.CardIDs,
		Leader:     deck.Leader,
		BotDeck:    deck.CardIDs,
		BotLeader:  deck.Leader,
		Difficulty: difficulty,
		Catalog:    cardCatalog,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}

	activeMatch = match
	lastSeq = 0
	return respond(match, "")
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, errResult := requireMatch()
	if errResult != nil {
		return errResult, nil
	}

	row, err := game.ParseRow(request.GetString("row", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("%v. Use melee, ranged, or siege.", err), nil
	}
	cardID := request.GetString("card", "")

	if err := match.PlayCard(playerID, cardID, row); err != nil {
		return respond(match, err.Error())
	}
	return respond(match, "")
}

func handlePassTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, errResult := requireMatch()
	if errResult != nil {
		return errResult, nil
	}
	if err := match.Pass(playerID); err != nil {
		return respond(match, err.Error())
	}
	return respond(match, "")
}

func handleUseLeader(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, errResult := requireMatch()
	if errResult != nil {
		return errResult, nil
	}
	if err := match.UseLeaderAbility(playerID); err != nil {
		return respond(match, err.Error())
	}
	return respond(match, "")
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, errResult := requireMatch()
	if errResult != nil {
		return errResult, nil
	}
	return respond(match, "")
}

func requireMatch() (*gwnet.Match, *mcp.CallToolResult) {
	if activeMatch == nil {
		return nil, mcp.NewToolResultError("No match is running. Use start_match first.")
	}
	return activeMatch, nil
}

// toolResponse is the JSON envelope returned by all tools.
type toolResponse struct {
	State    game.Snapshot `json:"state"`
	Events   []eventView   `json:"events"`
	Rejected string        `json:"rejected,omitempty"`
	GameOver bool          `json:"game_over,omitempty"`
}

type eventView struct {
	Round   int    `json:"round"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// respond builds the envelope from the match and advances the event
// cursor. A rejected operation is reported in-band so the client can
// correct its input.
func respond(match *gwnet.Match, rejected string) (*mcp.CallToolResult, error) {
	snap, err := match.Snapshot(playerID)
	if err != nil {
		return mcp.NewToolResultErrorf("snapshot: %v", err), nil
	}

	resp := toolResponse{
		State:    snap,
		Events:   []eventView{},
		Rejected: rejected,
		GameOver: match.Ended(),
	}
	for _, e := range match.EventsSince(lastSeq) {
		lastSeq = e.Seq
		resp.Events = append(resp.Events, eventView{
			Round:   e.Round,
			Type:    e.Type.String(),
			Details: e.Details,
		})
	}
	if resp.GameOver {
		activeMatch = nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
