package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger receives every event a game emits.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// MemoryLogger keeps the whole event log; sessions replay it to clients.
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

// EventsOfType filters the log by type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Since returns events with Seq > seq.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Seq > seq {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the newest event. An empty log yields the zero event.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// TextLogger streams each event as a line to w and also keeps it.
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


// playerName is the 1-based seat label.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent renders one log line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll renders the events one per line.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Constructors for each event type.

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw Order",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

// NewDrawEvent names the drawn card, so it is private to the drawing player.
func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Amount:  1,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
		Private: true,
	}
}

func NewAutoDrawEvent(turn int, phase string, player int, cardName string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAutoDraw,
		Card:    cardName,
		Amount:  count,
		Details: fmt.Sprintf("%s's %s draws %d on arrival", playerName(player), cardName, count),
		Private: true,
	}
}

func NewShuffleEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Amount:  count,
		Details: fmt.Sprintf("%s shuffles %d discarded cards into a new draw pile", playerName(player), count),
	}
}

func NewPlayEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s", playerName(player), cardName),
	}
}

func NewStageEvent(turn int, phase string, player int, cardName, baseName string, defense int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStage,
		Card:    cardName,
		Amount:  defense,
		Details: fmt.Sprintf("%s sends %s to the frontier of %s (defense %d)", playerName(player), cardName, baseName, defense),
	}
}

func NewChargeEvent(turn int, phase string, player int, leaderName, baseName string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCharge,
		Card:    leaderName,
		Amount:  count,
		Details: fmt.Sprintf("%s leads the charge from %s: %d cards enter play", leaderName, baseName, count),
	}
}

func NewBuyEvent(turn int, phase string, player int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBuy,
		Card:    cardName,
		Amount:  cost,
		Details: fmt.Sprintf("%s buys %s for %d trade", playerName(player), cardName, cost),
	}
}

func NewRecruitEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRecruit,
		Card:    cardName,
		Details: fmt.Sprintf("%s recruits %s", playerName(player), cardName),
	}
}

func NewScrapEvent(turn int, phase string, player int, cardName string, from string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventScrap,
		Card:    cardName,
		Details: fmt.Sprintf("%s scraps %s from %s", playerName(player), cardName, from),
	}
}

func NewTradeRowScrapEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTradeRowScrap,
		Card:    cardName,
		Details: fmt.Sprintf("%s scraps %s from the trade row", playerName(player), cardName),
	}
}

func NewRefillEvent(turn int, phase string, slot int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventRefill,
		Card:    cardName,
		Amount:  slot,
		Details: fmt.Sprintf("Trade row slot %d refills with %s", slot+1, cardName),
	}
}

func NewResourceEvent(turn int, phase string, player int, source, resource string, amount, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventResource,
		Card:    source,
		Amount:  amount,
		Details: fmt.Sprintf("%s gains %d %s from %s (now %d)", playerName(player), amount, resource, source, total),
	}
}

func NewAttackEvent(turn int, phase string, player int, target string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttack,
		Amount:  amount,
		Details: fmt.Sprintf("%s attacks %s with %d combat", playerName(player), target, amount),
	}
}

func NewAuthorityChangeEvent(turn int, phase string, player int, oldAuth, newAuth int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAuthorityChange,
		Amount:  newAuth - oldAuth,
		Details: fmt.Sprintf("%s authority: %d → %d (%s)", playerName(player), oldAuth, newAuth, reason),
	}
}

func NewBaseDestroyedEvent(turn int, phase string, owner int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  owner,
		Type:    EventBaseDestroyed,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is destroyed (%s)", playerName(owner), cardName, reason),
	}
}

func NewDeployEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeploy,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is deployed", playerName(player), cardName),
	}
}

func NewSpawnEvent(turn int, phase string, player int, unitName, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSpawn,
		Card:    unitName,
		Details: fmt.Sprintf("%s spawns %s into %s's discard", source, unitName, playerName(player)),
	}
}

func NewActivateBaseEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventActivateBase,
		Card:    cardName,
		Details: fmt.Sprintf("%s activates %s", playerName(player), cardName),
	}
}

func NewUpgradeEvent(turn int, phase string, player int, cardName string, tag string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventUpgrade,
		Card:    cardName,
		Details: fmt.Sprintf("%s upgrades %s (%s)", playerName(player), cardName, tag),
	}
}

func NewArtAcknowledgedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventArtAcknowledged,
		Card:    cardName,
		Details: fmt.Sprintf("Art for %s regenerated", cardName),
	}
}

func NewChoicePendingEvent(turn int, phase string, player int, kind string, min, max int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChoicePending,
		Card:    kind,
		Amount:  max,
		Details: fmt.Sprintf("%s must choose (%s, %d-%d)", playerName(player), kind, min, max),
	}
}

func NewChoiceResolvedEvent(turn int, phase string, player int, kind string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChoiceResolved,
		Card:    kind,
		Amount:  count,
		Details: fmt.Sprintf("%s resolves %s with %d selected", playerName(player), kind, count),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", playerName(player), cardName),
	}
}

func NewFlowEvent(turn int, phase string, player int, low, high, handSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFlow,
		Amount:  handSize,
		Details: fmt.Sprintf("%s flow (%d, %d), hand size %d", playerName(player), low, high, handSize),
	}
}

func NewEndTurnEvent(turn int, phase string, player int, forced bool) GameEvent {
	details := fmt.Sprintf("%s ends the turn", playerName(player))
	if forced {
		details = fmt.Sprintf("%s's turn is forced to end", playerName(player))
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEndTurn,
		Details: details,
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}
