package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStarted EventType = iota
	EventRoundStarted
	EventTurnStarted
	EventCardPlayed
	EventComboTriggered
	EventWeatherChanged
	EventPass
	EventLeaderAbility
	EventScoreChanged
	EventRoundEnded
	EventGameEnded
	EventForfeit
)

func (e EventType) String() string {
	switch e {
	case EventMatchStarted:
		return "MatchStarted"
	case EventRoundStarted:
		return "RoundStarted"
	case EventTurnStarted:
		return "TurnStarted"
	case EventCardPlayed:
		return "CardPlayed"
	case EventComboTriggered:
		return "ComboTriggered"
	case EventWeatherChanged:
		return "WeatherChanged"
	case EventPass:
		return "Pass"
	case EventLeaderAbility:
		return "LeaderAbility"
	case EventScoreChanged:
		return "ScoreChanged"
	case EventRoundEnded:
		return "RoundEnded"
	case EventGameEnded:
		return "GameEnded"
	case EventForfeit:
		return "Forfeit"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Player  int       // acting player (0 or 1, -1 when not player-scoped)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Combo   string    // combo key (if applicable)
	Row     string    // row name (if applicable)
	Scores  [2]int    // weather-adjusted field totals after the event
	Details string    // human-readable detail string
}
