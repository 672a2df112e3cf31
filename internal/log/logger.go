package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	for len(kind) < 16 {
		kind += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartedEvent(names [2]string) GameEvent {
	return GameEvent{
		Round:   1,
		Player:  -1,
		Type:    EventMatchStarted,
		Details: fmt.Sprintf("Match started: %s vs %s", names[0], names[1]),
	}
}

func NewRoundStartedEvent(round, leader int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  leader,
		Type:    EventRoundStarted,
		Details: fmt.Sprintf("=== Round %d (%s leads) ===", round, playerName(leader)),
	}
}

func NewTurnStartedEvent(round, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventTurnStarted,
		Details: fmt.Sprintf("%s to act", playerName(player)),
	}
}

func NewCardPlayedEvent(round, player int, card, row string, scores [2]int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventCardPlayed,
		Card:    card,
		Row:     row,
		Scores:  scores,
		Details: fmt.Sprintf("%s plays %s on %s (%d–%d)", playerName(player), card, row, scores[0], scores[1]),
	}
}

func NewComboTriggeredEvent(round, player int, key, detail string, scores [2]int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventComboTriggered,
		Combo:   key,
		Scores:  scores,
		Details: fmt.Sprintf("%s combo %s: %s (%d–%d)", playerName(player), key, detail, scores[0], scores[1]),
	}
}

func NewScoreChangedEvent(round int, scores [2]int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventScoreChanged,
		Scores:  scores,
		Details: fmt.Sprintf("Score now %d–%d", scores[0], scores[1]),
	}
}

func NewWeatherChangedEvent(round, player int, detail string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventWeatherChanged,
		Details: detail,
	}
}

func NewPassEvent(round, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passes", playerName(player)),
	}
}

func NewLeaderAbilityEvent(round, player int, leader, detail string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventLeaderAbility,
		Card:    leader,
		Details: fmt.Sprintf("%s uses %s: %s", playerName(player), leader, detail),
	}
}

func NewRoundEndedEvent(round, winner int, scores [2]int) GameEvent {
	detail := fmt.Sprintf("Round %d tied %d–%d", round, scores[0], scores[1])
	if winner >= 0 {
		detail = fmt.Sprintf("Round %d to %s (%d–%d)", round, playerName(winner), scores[0], scores[1])
	}
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventRoundEnded,
		Scores:  scores,
		Details: detail,
	}
}

func NewGameEndedEvent(round, winner int, result string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventGameEnded,
		Details: result,
	}
}

func NewForfeitEvent(round, player int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventForfeit,
		Details: fmt.Sprintf("%s forfeits: %s", playerName(player), reason),
	}
}
