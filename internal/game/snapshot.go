package game

// CardView is a card as seen by a client, with its effective power.
type CardView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Faction   string `json:"faction,omitempty"`
	Rarity    string `json:"rarity"`
	BasePower int    `json:"base_power"`
	Power     int    `json:"power"`
}

// RowView is one lane of the board.
type RowView struct {
	Row     string     `json:"row"`
	Weather bool       `json:"weather"`
	Cards   []CardView `json:"cards"`
	Total   int        `json:"total"`
}

// PlayerView shows one side of the board. Hand contents are only present
// for the viewer's own side; the opponent exposes a count.
type PlayerView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	HandCount  int               `json:"hand_count"`
	Hand       []CardView        `json:"hand,omitempty"`
	Rows       [RowCount]RowView `json:"rows"`
	Graveyard  int               `json:"graveyard_count"`
	DeckCount  int               `json:"deck_count"`
	Score      int               `json:"score"`
	RoundsWon  int               `json:"rounds_won"`
	Passed     bool              `json:"passed"`
	Leader     string            `json:"leader,omitempty"`
	LeaderUsed bool              `json:"leader_used,omitempty"`
	Combos     []string          `json:"combos_collected,omitempty"`
}

// Snapshot is the session state from one participant's perspective, ready
// for serialization by a transport layer.
type Snapshot struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Round      int        `json:"round"`
	State      string     `json:"state"`
	IsYourTurn bool       `json:"is_your_turn"`
	Weather    []string   `json:"weather,omitempty"`
	Winner     string     `json:"winner,omitempty"`
	Result     string     `json:"result,omitempty"`
}

// Snapshot builds the viewer-relative state. The opponent's hand is
// redacted to a count.
func (s *Session) Snapshot(viewerID string) (Snapshot, error) {
	seat, err := s.SeatOf(viewerID)
	if err != nil {
		return Snapshot{}, illegalOp("snapshot", viewerID, err)
	}
	return s.SnapshotForSeat(seat), nil
}

// SnapshotForSeat is Snapshot keyed by seat, for internal callers that
// already hold one.
func (s *Session) SnapshotForSeat(seat int) Snapshot {
	snap := Snapshot{
		You:        s.playerView(seat, true),
		Opponent:   s.playerView(1-seat, false),
		Round:      s.round,
		State:      s.state.String(),
		IsYourTurn: s.state == StateInProgress && s.turn == seat,
		Result:     s.result,
	}
	for _, r := range s.weather.Active() {
		snap.Weather = append(snap.Weather, WeatherEffectName(r))
	}
	if s.state == StateGameEnded && s.winner >= 0 {
		snap.Winner = s.players[s.winner].id
	}
	return snap
}

func (s *Session) playerView(seat int, viewer bool) PlayerView {
	p := s.players[seat]
	f := s.fields[seat]

	pv := PlayerView{
		ID:        p.id,
		Name:      p.name,
		HandCount: f.HandSize(),
		Graveyard: f.GraveyardSize(),
		DeckCount: len(p.deck),
		RoundsWon: p.roundsWon,
		Passed:    p.passed,
	}
	if p.leader != nil {
		pv.Leader = p.leader.Name
		pv.LeaderUsed = p.leaderUsed
	}
	if viewer {
		for _, c := range f.Hand() {
			pv.Hand = append(pv.Hand, s.cardView(seat, c, false))
		}
	}
	for r := RowMelee; r <= RowSiege; r++ {
		rv := RowView{
			Row:     r.String(),
			Weather: s.weather.Affects(r),
			Total:   s.RowScore(seat, r),
		}
		for _, c := range f.RowCards(r) {
			rv.Cards = append(rv.Cards, s.cardView(seat, c, s.weather.Affects(r)))
		}
		pv.Rows[r] = rv
		pv.Score += rv.Total
	}
	for _, k := range s.CollectedCombos(seat) {
		pv.Combos = append(pv.Combos, string(k))
	}
	return pv
}

func (s *Session) cardView(seat int, c Card, weatherAffected bool) CardView {
	return CardView{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type.String(),
		Faction:   c.Faction,
		Rarity:    c.Rarity.String(),
		BasePower: c.BasePower,
		Power:     s.ledger.EffectivePower(c.ID, seat, c.BasePower, weatherAffected),
	}
}
