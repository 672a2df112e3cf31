package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/mtarnawa/gwentish/internal/log"
)

const (
	MaxRounds       = 3
	RoundsToWin     = 2
	DefaultHandSize = 10
)

type SessionState int

const (
	StateDealing SessionState = iota
	StateInProgress
	StateRoundEnded
	StateGameEnded
)

func (s SessionState) String() string {
	switch s {
	case StateDealing:
		return "Dealing"
	case StateInProgress:
		return "InProgress"
	case StateRoundEnded:
		return "RoundEnded"
	case StateGameEnded:
		return "GameEnded"
	default:
		return "Unknown"
	}
}

// RoundLeaderRule decides who acts first in rounds after the first.
type RoundLeaderRule int

const (
	// LoserLeads gives the first move of a round to the loser of the
	// previous one; after a tied round the previous leader keeps the lead.
	LoserLeads RoundLeaderRule = iota
	WinnerLeads
	AlternateLeads
)

func (r RoundLeaderRule) String() string {
	switch r {
	case WinnerLeads:
		return "winner-leads"
	case AlternateLeads:
		return "alternate"
	default:
		return "loser-leads"
	}
}

// ParseRoundLeaderRule reads a rule name as written in configuration.
func ParseRoundLeaderRule(s string) (RoundLeaderRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "loser", "loser-leads":
		return LoserLeads, nil
	case "winner", "winner-leads":
		return WinnerLeads, nil
	case "alternate", "alternating":
		return AlternateLeads, nil
	default:
		return LoserLeads, fmt.Errorf("unknown round leader rule %q", s)
	}
}

// Observer receives every match event for one seat. This is the hook a
// presentation layer renders from; the core never formats UI text beyond
// the event's detail string.
type Observer interface {
	Notify(event log.GameEvent)
}

// ParticipantConfig describes one seat of a match.
type ParticipantConfig struct {
	ID     string
	Name   string
	Deck   []string // card ids, resolved against the catalog
	Leader string   // optional leader id
}

// SessionConfig holds everything needed to create a session.
type SessionConfig struct {
	Players    [2]ParticipantConfig
	Catalog    CardSource
	Logger     log.EventLogger
	Seed       int64 // RNG seed (0 for time-based)
	NoShuffle  bool  // skip deck shuffle (deterministic tests)
	HandSize   int   // 0 = DefaultHandSize
	FirstTurn  int   // seat that leads round 1
	LeaderRule RoundLeaderRule
	Damager    FieldDamager // nil = ledger-backed default
}

type participant struct {
	id         string
	name       string
	leader     *Leader
	leaderUsed bool
	deck       []Card // undealt cards, top of deck is last element
	passed     bool
	roundsWon  int
}

// Session is the composition root for one match: the round/game state
// machine wired to the field models, the modifier ledger, the weather
// state and the combo engine. A session is the single logical owner of its
// state; callers must serialize mutating operations (the transport layer
// holds one lock per match); sessions are independent of each other and
// share nothing but the read-only catalog.
type Session struct {
	state       SessionState
	round       int
	turn        int // seat to act
	roundLeader int

	players   [2]*participant
	fields    [2]*Field
	ledger    *Ledger
	weather   *Weather
	combos    *ComboEngine
	collected [2]map[ComboKey]bool

	observers  [2]Observer
	logger     log.EventLogger
	rng        *rand.Rand
	leaderRule RoundLeaderRule
	handSize   int

	winner int // seat index, or -1 (undecided, or a drawn game)
	result string
	failed error // set when an invariant violation fails the session
}

// NewSession validates the configuration against the catalog, deals the
// opening hands and starts round 1. Any missing card or leader definition
// is a ConfigurationError and aborts before any state mutation.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Catalog == nil {
		return nil, configErr("catalog", "no card catalog provided")
	}
	if cfg.Players[0].ID == "" || cfg.Players[1].ID == "" {
		return nil, configErr("players", "both participant ids are required")
	}
	if cfg.Players[0].ID == cfg.Players[1].ID {
		return nil, configErr("players", "participant ids must differ")
	}
	if cfg.FirstTurn != 0 && cfg.FirstTurn != 1 {
		return nil, configErr("first_turn", "seat must be 0 or 1, got %d", cfg.FirstTurn)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	handSize := cfg.HandSize
	if handSize <= 0 {
		handSize = DefaultHandSize
	}

	s := &Session{
		state:      StateDealing,
		ledger:     NewLedger(),
		weather:    NewWeather(),
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		leaderRule: cfg.LeaderRule,
		handSize:   handSize,
		winner:     -1,
	}

	for seat := 0; seat < 2; seat++ {
		pc := cfg.Players[seat]
		deck, err := resolveDeck(cfg.Catalog, pc)
		if err != nil {
			return nil, err
		}
		p := &participant{id: pc.ID, name: pc.Name, deck: deck}
		if pc.Leader != "" {
			ld, ok := cfg.Catalog.Leader(pc.Leader)
			if !ok {
				return nil, configErr("leader", "player %s: leader %q not in catalog", pc.ID, pc.Leader)
			}
			p.leader = &ld
		}
		s.players[seat] = p
		s.fields[seat] = NewField()
	}

	damager := cfg.Damager
	if damager == nil {
		damager = &ledgerDamager{s: s}
	}
	s.combos = &ComboEngine{Ledger: s.ledger, Damager: damager}

	if !cfg.NoShuffle {
		for seat := 0; seat < 2; seat++ {
			deck := s.players[seat].deck
			s.rng.Shuffle(len(deck), func(i, j int) {
				deck[i], deck[j] = deck[j], deck[i]
			})
		}
	}

	for i := 0; i < handSize; i++ {
		for seat := 0; seat < 2; seat++ {
			s.drawCard(seat)
		}
	}

	s.emit(log.NewMatchStartedEvent([2]string{s.players[0].name, s.players[1].name}))
	s.startRound(cfg.FirstTurn)
	return s, nil
}

// resolveDeck maps card ids to definitions. Duplicate ids within a deck are
// legal deck-building; they become distinct instances (id#2, id#3, …) so
// the single-location invariant and the ledger keep per-copy bookkeeping.
func resolveDeck(catalog CardSource, pc ParticipantConfig) ([]Card, error) {
	if len(pc.Deck) == 0 {
		return nil, configErr("deck", "player %s: empty deck", pc.ID)
	}
	seen := make(map[string]int)
	deck := make([]Card, 0, len(pc.Deck))
	for _, id := range pc.Deck {
		def, ok := catalog.Card(id)
		if !ok {
			return nil, configErr("deck", "player %s: card %q not in catalog", pc.ID, id)
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			def.ID = fmt.Sprintf("%s#%d", id, n)
		}
		deck = append(deck, def)
	}
	return deck, nil
}

// --- Accessors ---

func (s *Session) State() SessionState { return s.state }
func (s *Session) Round() int          { return s.round }
func (s *Session) TurnSeat() int       { return s.turn }
func (s *Session) Winner() int         { return s.winner }
func (s *Session) Result() string      { return s.result }

// Failed returns the invariant violation that failed the session, if any.
func (s *Session) Failed() error { return s.failed }

// SeatOf maps a participant id to its seat.
func (s *Session) SeatOf(playerID string) (int, error) {
	for seat := 0; seat < 2; seat++ {
		if s.players[seat].id == playerID {
			return seat, nil
		}
	}
	return -1, ErrUnknownPlayer
}

func (s *Session) PlayerID(seat int) string   { return s.players[seat].id }
func (s *Session) PlayerName(seat int) string { return s.players[seat].name }
func (s *Session) RoundsWon(seat int) int     { return s.players[seat].roundsWon }
func (s *Session) Passed(seat int) bool       { return s.players[seat].passed }
func (s *Session) DeckCount(seat int) int     { return len(s.players[seat].deck) }

// Hand returns the seat's current hand.
func (s *Session) Hand(seat int) []Card { return s.fields[seat].Hand() }

// RowCards returns one of the seat's rows in play order.
func (s *Session) RowCards(seat int, row Row) []Card { return s.fields[seat].RowCards(row) }

// WeatherRows returns the weather-affected rows.
func (s *Session) WeatherRows() []Row { return s.weather.Active() }

// Leader returns the seat's leader and whether its ability was spent.
func (s *Session) Leader(seat int) (Leader, bool, bool) {
	p := s.players[seat]
	if p.leader == nil {
		return Leader{}, false, false
	}
	return *p.leader, true, p.leaderUsed
}

// CollectedCombos returns the seat's collected combo keys this round, in
// sorted order.
func (s *Session) CollectedCombos(seat int) []ComboKey {
	keys := make([]ComboKey, 0, len(s.collected[seat]))
	for k := range s.collected[seat] {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EffectivePower returns a row card's weather-adjusted effective power.
func (s *Session) EffectivePower(seat int, c Card, row Row) int {
	return s.ledger.EffectivePower(c.ID, seat, c.BasePower, s.weather.Affects(row))
}

// RowScore sums effective power over one row.
func (s *Session) RowScore(seat int, row Row) int {
	total := 0
	affected := s.weather.Affects(row)
	for _, c := range s.fields[seat].RowCards(row) {
		total += s.ledger.EffectivePower(c.ID, seat, c.BasePower, affected)
	}
	return total
}

// Scores returns both seats' weather-adjusted field totals. Round winner
// determination is a pure function of these totals and is independent of
// card order within a row.
func (s *Session) Scores() [2]int {
	var out [2]int
	for seat := 0; seat < 2; seat++ {
		for r := RowMelee; r <= RowSiege; r++ {
			out[seat] += s.RowScore(seat, r)
		}
	}
	return out
}

// SetObserver attaches the notification hook for one seat.
func (s *Session) SetObserver(seat int, o Observer) {
	if seat == 0 || seat == 1 {
		s.observers[seat] = o
	}
}

// --- Operations ---

// PlayCard moves a card from the acting player's hand onto a row, runs the
// combo engine, and advances the turn. The turn passes to the opponent
// unless they have already passed, in which case the acting player keeps
// it. The operation is atomic: any rejection leaves no state change.
func (s *Session) PlayCard(playerID, cardID string, row Row) error {
	seat, err := s.SeatOf(playerID)
	if err != nil {
		return illegalOp("play_card", playerID, err)
	}
	if err := s.checkActionable(seat); err != nil {
		return illegalOp("play_card", playerID, err)
	}
	if !row.Valid() {
		return illegalOp("play_card", playerID, ErrInvalidRow)
	}

	card, err := s.fields[seat].PlaceCard(cardID, row)
	if err != nil {
		return illegalOp("play_card", playerID, err)
	}
	if err := s.fields[seat].CheckIntegrity(); err != nil {
		s.failSession(err)
		return err
	}

	s.emit(log.NewCardPlayedEvent(s.round, seat, card.Name, row.String(), s.Scores()))

	combos := s.combos.Evaluate(seat, 1-seat, s.fields[seat], s.weather, s.collected[seat])
	for _, combo := range combos {
		s.emit(log.NewComboTriggeredEvent(s.round, seat, string(combo.Key), combo.Detail, s.Scores()))
	}
	if len(combos) > 0 {
		s.emit(log.NewScoreChangedEvent(s.round, s.Scores()))
	}

	s.advanceTurn(seat)
	return nil
}

// Pass marks the player as passed for the round. When both players have
// passed the round ends immediately, regardless of whose turn it nominally
// was. An external turn-timer expiry is translated into this call.
func (s *Session) Pass(playerID string) error {
	seat, err := s.SeatOf(playerID)
	if err != nil {
		return illegalOp("pass", playerID, err)
	}
	if s.state != StateInProgress {
		return illegalOp("pass", playerID, ErrGameEnded)
	}
	if s.players[seat].passed {
		return illegalOp("pass", playerID, ErrAlreadyPassed)
	}

	s.players[seat].passed = true
	s.emit(log.NewPassEvent(s.round, seat))

	if s.players[0].passed && s.players[1].passed {
		s.endRound()
		return nil
	}
	if s.turn == seat {
		s.turn = 1 - seat
		s.emit(log.NewTurnStartedEvent(s.round, s.turn))
	}
	return nil
}

// UseLeaderAbility spends the player's once-per-game leader ability and
// consumes the turn like a card play.
func (s *Session) UseLeaderAbility(playerID string) error {
	seat, err := s.SeatOf(playerID)
	if err != nil {
		return illegalOp("use_leader", playerID, err)
	}
	if err := s.checkActionable(seat); err != nil {
		return illegalOp("use_leader", playerID, err)
	}
	p := s.players[seat]
	if p.leader == nil {
		return illegalOp("use_leader", playerID, ErrNoLeader)
	}
	if p.leaderUsed {
		return illegalOp("use_leader", playerID, ErrLeaderUsed)
	}

	p.leaderUsed = true
	detail := s.applyLeaderAbility(seat, p.leader.Ability)
	s.emit(log.NewLeaderAbilityEvent(s.round, seat, p.leader.Name, detail))

	s.advanceTurn(seat)
	return nil
}

// Abort forfeits the session from any non-terminal state, skipping turn
// order checks. The opponent of the forfeiting player wins.
func (s *Session) Abort(playerID, reason string) error {
	seat, err := s.SeatOf(playerID)
	if err != nil {
		return illegalOp("abort", playerID, err)
	}
	if s.state == StateGameEnded {
		return illegalOp("abort", playerID, ErrGameEnded)
	}

	s.emit(log.NewForfeitEvent(s.round, seat, reason))
	s.winner = 1 - seat
	s.result = fmt.Sprintf("%s wins, %s forfeited (%s)", s.players[s.winner].name, s.players[seat].name, reason)
	s.state = StateGameEnded
	s.emit(log.NewGameEndedEvent(s.round, s.winner, s.result))
	return nil
}

// --- Internals ---

// checkActionable validates that the seat may act right now.
func (s *Session) checkActionable(seat int) error {
	if s.failed != nil {
		return s.failed
	}
	if s.state != StateInProgress {
		return ErrGameEnded
	}
	if s.turn != seat {
		return ErrNotYourTurn
	}
	if s.players[seat].passed {
		return ErrAlreadyPassed
	}
	return nil
}

func (s *Session) advanceTurn(actor int) {
	opp := 1 - actor
	if !s.players[opp].passed {
		s.turn = opp
	}
	s.emit(log.NewTurnStartedEvent(s.round, s.turn))
}

func (s *Session) drawCard(seat int) (Card, bool) {
	p := s.players[seat]
	if len(p.deck) == 0 {
		return Card{}, false
	}
	card := p.deck[len(p.deck)-1]
	p.deck = p.deck[:len(p.deck)-1]
	if err := s.fields[seat].AddToHand(card); err != nil {
		s.failSession(err)
		return Card{}, false
	}
	return card, true
}

func (s *Session) startRound(leader int) {
	s.round++
	s.roundLeader = leader
	s.players[0].passed = false
	s.players[1].passed = false
	s.collected[0] = make(map[ComboKey]bool)
	s.collected[1] = make(map[ComboKey]bool)
	s.state = StateInProgress
	s.turn = leader

	s.emit(log.NewRoundStartedEvent(s.round, leader))

	// A seat with no cards in hand cannot contest the round.
	for seat := 0; seat < 2; seat++ {
		if s.fields[seat].HandSize() == 0 {
			s.players[seat].passed = true
			s.emit(log.NewPassEvent(s.round, seat))
		}
	}
	if s.players[0].passed && s.players[1].passed {
		s.endRound()
		return
	}
	if s.players[s.turn].passed {
		s.turn = 1 - s.turn
	}
	s.emit(log.NewTurnStartedEvent(s.round, s.turn))
}

// endRound scores the round, then clears the per-round state: boards are
// swept to the graveyards, modifiers, weather and the combo-collected sets
// are reset. Hands persist minus cards played.
func (s *Session) endRound() {
	scores := s.Scores()
	roundWinner := -1
	switch {
	case scores[0] > scores[1]:
		roundWinner = 0
	case scores[1] > scores[0]:
		roundWinner = 1
	}
	if roundWinner >= 0 {
		s.players[roundWinner].roundsWon++
	}

	s.state = StateRoundEnded
	s.emit(log.NewRoundEndedEvent(s.round, roundWinner, scores))

	s.fields[0].ClearRows()
	s.fields[1].ClearRows()
	s.ledger.ClearRound()
	s.weather.Clear()

	if s.players[0].roundsWon >= RoundsToWin || s.players[1].roundsWon >= RoundsToWin || s.round >= MaxRounds {
		s.endGame()
		return
	}

	s.state = StateDealing
	s.startRound(s.nextRoundLeader(roundWinner))
}

func (s *Session) endGame() {
	w0, w1 := s.players[0].roundsWon, s.players[1].roundsWon
	switch {
	case w0 > w1:
		s.winner = 0
	case w1 > w0:
		s.winner = 1
	default:
		// No seat took more rounds than the other (including the
		// all-ties game): declared a draw.
		s.winner = -1
	}
	if s.winner >= 0 {
		s.result = fmt.Sprintf("%s wins %d–%d", s.players[s.winner].name, max(w0, w1), min(w0, w1))
	} else {
		s.result = fmt.Sprintf("Draw, %d round wins apiece", w0)
	}
	s.state = StateGameEnded
	s.emit(log.NewGameEndedEvent(s.round, s.winner, s.result))
}

func (s *Session) nextRoundLeader(roundWinner int) int {
	switch s.leaderRule {
	case WinnerLeads:
		if roundWinner >= 0 {
			return roundWinner
		}
		return s.roundLeader
	case AlternateLeads:
		return 1 - s.roundLeader
	default: // LoserLeads
		if roundWinner >= 0 {
			return 1 - roundWinner
		}
		return s.roundLeader
	}
}

func (s *Session) applyLeaderAbility(seat int, kind LeaderAbilityKind) string {
	switch kind {
	case LeaderAbilityClearSkies:
		s.weather.Clear()
		s.emit(log.NewWeatherChangedEvent(s.round, seat, "weather cleared"))
		return "all weather cleared"
	case LeaderAbilityFrost:
		s.weather.Set(RowMelee, true)
		s.emit(log.NewWeatherChangedEvent(s.round, seat, "Frost settles on the melee rows"))
		return "frost on melee"
	case LeaderAbilityFog:
		s.weather.Set(RowRanged, true)
		s.emit(log.NewWeatherChangedEvent(s.round, seat, "Fog covers the ranged rows"))
		return "fog on ranged"
	case LeaderAbilityRain:
		s.weather.Set(RowSiege, true)
		s.emit(log.NewWeatherChangedEvent(s.round, seat, "Rain drenches the siege rows"))
		return "rain on siege"
	default:
		return "no effect"
	}
}

// failSession records a broken invariant. The session stops accepting
// operations; recovery is not attempted.
func (s *Session) failSession(err error) {
	if s.failed == nil {
		s.failed = err
	}
	s.winner = -1
	s.result = fmt.Sprintf("session failed: %v", err)
	s.state = StateGameEnded
	s.emit(log.NewGameEndedEvent(s.round, -1, s.result))
}

func (s *Session) emit(event log.GameEvent) {
	s.logger.Log(event)
	for seat := 0; seat < 2; seat++ {
		if s.observers[seat] != nil {
			s.observers[seat].Notify(event)
		}
	}
}

// ledgerDamager is the default field-damage collaborator: a flat reduction
// applied to each card on the target's field, independently, through the
// ledger.
type ledgerDamager struct {
	s *Session
}

func (d *ledgerDamager) DamageAllCards(owner int, amount int) {
	for r := RowMelee; r <= RowSiege; r++ {
		for _, c := range d.s.fields[owner].RowCards(r) {
			d.s.ledger.Add(c.ID, owner, -amount)
		}
	}
}
