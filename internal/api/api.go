// Package api exposes match operations over HTTP for clients that do not
// hold a WebSocket open.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/catalog"
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/logging"
	gwnet "github.com/mtarnawa/gwentish/internal/net"
)

// Handler carries the shared state the route handlers close over.
type Handler struct {
	Registry *gwnet.Registry
	Catalog  *catalog.Memory
	// Source resolves card ids for sessions; defaults to Catalog. A
	// database-backed catalog plugs in here.
	Source   game.CardSource
	HandSize int
	Seed     int64
	// DefaultDifficulty applies when a create request omits the difficulty.
	DefaultDifficulty string
	LeaderRule        game.RoundLeaderRule
}

func (h *Handler) cardSource() game.CardSource {
	if h.Source != nil {
		return h.Source
	}
	return h.Catalog
}

// Register wires the API routes onto the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/api/decks", h.listDecks)
	router.GET("/api/cards", h.listCards)
	router.POST("/api/matches", h.createMatch)
	router.GET("/api/matches/:id/state", h.matchState)
	router.GET("/api/matches/:id/events", h.matchEvents)
	router.POST("/api/matches/:id/play", h.playCard)
	router.POST("/api/matches/:id/pass", h.pass)
	router.POST("/api/matches/:id/leader", h.useLeader)
	router.POST("/api/matches/:id/forfeit", h.forfeit)
}

func (h *Handler) listDecks(c *gin.Context) {
	type deckInfo struct {
		Name   string `json:"name"`
		Leader string `json:"leader,omitempty"`
		Size   int    `json:"size"`
	}
	var decks []deckInfo
	for _, d := range h.Catalog.Decks() {
		decks = append(decks, deckInfo{Name: d.Name, Leader: d.Leader, Size: len(d.CardIDs)})
	}
	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

func (h *Handler) listCards(c *gin.Context) {
	type cardInfo struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Type    string `json:"type"`
		Power   int    `json:"power"`
		Faction string `json:"faction,omitempty"`
		Rarity  string `json:"rarity"`
	}
	var cards []cardInfo
	for _, card := range h.Catalog.Cards() {
		cards = append(cards, cardInfo{
			ID:      card.ID,
			Name:    card.Name,
			Type:    card.Type.String(),
			Power:   card.BasePower,
			Faction: card.Faction,
			Rarity:  card.Rarity.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

type createMatchRequest struct {
	PlayerName string `json:"player_name"`
	Deck       string `json:"deck"`
	Difficulty string `json:"difficulty"`
}

func (h *Handler) createMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deck, ok := h.Catalog.DeckByName(req.Deck)
	if !ok {
		decks := h.Catalog.Decks()
		if req.Deck != "" || len(decks) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown deck"})
			return
		}
		deck = decks[0]
	}
	difficultyStr := req.Difficulty
	if difficultyStr == "" {
		difficultyStr = h.DefaultDifficulty
	}
	difficulty, err := ai.ParseDifficulty(difficultyStr)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	name := req.PlayerName
	if name == "" {
		name = "Player"
	}

	playerID := uuid.NewString()
	match, err := h.Registry.CreateBotMatch(gwnet.MatchConfig{
		PlayerID:   playerID,
		PlayerName: name,
		Deck:       deck.CardIDs,
		Leader:     deck.Leader,
		BotDeck:    deck.CardIDs,
		BotLeader:  deck.Leader,
		Difficulty: difficulty,
		Catalog:    h.cardSource(),
		Seed:       h.Seed,
		HandSize:   h.HandSize,
		LeaderRule: h.LeaderRule,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	logging.Info("match created", logging.Fields{"match_id": match.ID, "difficulty": difficulty.String()})

	snap, err := match.Snapshot(playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"match_id":  match.ID,
		"player_id": playerID,
		"state":     snap,
	})
}

func (h *Handler) matchState(c *gin.Context) {
	match, ok := h.findMatch(c)
	if !ok {
		return
	}
	snap, err := match.Snapshot(c.Query("player_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

func (h *Handler) matchEvents(c *gin.Context) {
	match, ok := h.findMatch(c)
	if !ok {
		return
	}
	since := 0
	if s := c.Query("since"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since cursor"})
			return
		}
		since = n
	}
	c.JSON(http.StatusOK, gin.H{"events": match.EventsSince(since)})
}

type actionRequest struct {
	PlayerID string `json:"player_id"`
	Card     string `json:"card,omitempty"`
	Row      string `json:"row,omitempty"`
}

func (h *Handler) playCard(c *gin.Context) {
	match, req, ok := h.matchAction(c)
	if !ok {
		return
	}
	row, err := game.ParseRow(req.Row)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	h.finishAction(c, match, req.PlayerID, match.PlayCard(req.PlayerID, req.Card, row))
}

func (h *Handler) pass(c *gin.Context) {
	match, req, ok := h.matchAction(c)
	if !ok {
		return
	}
	h.finishAction(c, match, req.PlayerID, match.Pass(req.PlayerID))
}

func (h *Handler) useLeader(c *gin.Context) {
	match, req, ok := h.matchAction(c)
	if !ok {
		return
	}
	h.finishAction(c, match, req.PlayerID, match.UseLeaderAbility(req.PlayerID))
}

func (h *Handler) forfeit(c *gin.Context) {
	match, req, ok := h.matchAction(c)
	if !ok {
		return
	}
	h.finishAction(c, match, req.PlayerID, match.Forfeit(req.PlayerID, "player forfeited"))
}

func (h *Handler) findMatch(c *gin.Context) (*gwnet.Match, bool) {
	match, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return nil, false
	}
	return match, true
}

func (h *Handler) matchAction(c *gin.Context) (*gwnet.Match, actionRequest, bool) {
	var req actionRequest
	match, ok := h.findMatch(c)
	if !ok {
		return nil, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, req, false
	}
	return match, req, true
}

func (h *Handler) finishAction(c *gin.Context, match *gwnet.Match, playerID string, opErr error) {
	if opErr != nil {
		writeError(c, opErr)
		return
	}
	snap, err := match.Snapshot(playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

// writeError maps the engine's error taxonomy onto HTTP statuses: rejected
// operations conflict with the current match state, unknown ids are not
// found, bad configuration is unprocessable.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownPlayer):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case game.IsIllegalOperation(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case game.IsConfigurationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logging.Error("internal error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
