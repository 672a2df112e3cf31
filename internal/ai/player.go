package ai

import (
	"math/rand"
	"time"

	"github.com/mtarnawa/gwentish/internal/game"
)

// Player drives one seat of a session. It holds no match state of its own;
// every decision is recomputed from the session, so a Player survives
// rounds and can be shared across matches only if seeded per match.
type Player struct {
	Difficulty Difficulty
	rng        *rand.Rand
}

// NewPlayer creates a seat driver. Seed 0 draws from the clock.
func NewPlayer(d Difficulty, seed int64) *Player {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Player{Difficulty: d, rng: rand.New(rand.NewSource(seed))}
}

// Act issues exactly one operation for the seat: a card play, a leader
// ability, or a pass. A heuristic that picks something the session rejects
// falls back to passing, so Act never surfaces an illegal operation.
func (p *Player) Act(s *game.Session, seat int) error {
	if s.State() != game.StateInProgress || s.TurnSeat() != seat || s.Passed(seat) {
		return nil
	}

	sit := p.situation(s, seat)
	mode := ChooseStrategy(p.rng, p.Difficulty, sit)

	if !ShouldPlay(p.rng, mode, sit) {
		return s.Pass(s.PlayerID(seat))
	}

	if p.shouldUseLeader(s, seat, sit) {
		if err := s.UseLeaderAbility(s.PlayerID(seat)); err == nil {
			return nil
		}
	}

	card, ok := ChooseCard(p.rng, mode, s.Hand(seat), sit.ScoreDiff)
	if !ok {
		return s.Pass(s.PlayerID(seat))
	}
	row := ChooseRow(mode, card, p.rowStates(s, seat))

	if err := s.PlayCard(s.PlayerID(seat), card.ID, row); err != nil {
		return s.Pass(s.PlayerID(seat))
	}
	return nil
}

func (p *Player) situation(s *game.Session, seat int) Situation {
	scores := s.Scores()
	return Situation{
		ScoreDiff:    scores[seat] - scores[1-seat],
		Round:        s.Round(),
		RoundsWon:    s.RoundsWon(seat),
		RoundsWonOpp: s.RoundsWon(1 - seat),
		HandSize:     len(s.Hand(seat)),
	}
}

func (p *Player) rowStates(s *game.Session, seat int) [game.RowCount]RowState {
	var rows [game.RowCount]RowState
	affected := make(map[game.Row]bool)
	for _, r := range s.WeatherRows() {
		affected[r] = true
	}
	for r := game.RowMelee; r <= game.RowSiege; r++ {
		rows[r] = RowState{
			OwnCount:      len(s.RowCards(seat, r)),
			OwnPower:      s.RowScore(seat, r),
			OpponentPower: s.RowScore(1-seat, r),
			Weather:       affected[r],
		}
	}
	return rows
}

// shouldUseLeader spends the once-per-game ability only from behind and
// only at the two upper difficulties, where holding it has known value.
func (p *Player) shouldUseLeader(s *game.Session, seat int, sit Situation) bool {
	if p.Difficulty < DifficultyHard {
		return false
	}
	_, has, used := s.Leader(seat)
	if !has || used {
		return false
	}
	return sit.ScoreDiff <= deficitThreshold && p.rng.Float64() < 0.5
}
