package log

// EventType identifies what happened.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventAutoDraw
	EventShuffle
	EventPlay
	EventStage
	EventCharge
	EventBuy
	EventRecruit
	EventScrap
	EventTradeRowScrap
	EventRefill
	EventResource
	EventAttack
	EventAuthorityChange
	EventBaseDestroyed
	EventDeploy
	EventSpawn
	EventActivateBase
	EventUpgrade
	EventArtAcknowledged
	EventChoicePending
	EventChoiceResolved
	EventDiscard
	EventFlow
	EventEndTurn
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventAutoDraw:
		return "AutoDraw"
	case EventShuffle:
		return "Shuffle"
	case EventPlay:
		return "Play"
	case EventStage:
		return "Stage"
	case EventCharge:
		return "Charge"
	case EventBuy:
		return "Buy"
	case EventRecruit:
		return "Recruit"
	case EventScrap:
		return "Scrap"
	case EventTradeRowScrap:
		return "TradeRowScrap"
	case EventRefill:
		return "Refill"
	case EventResource:
		return "Resource"
	case EventAttack:
		return "Attack"
	case EventAuthorityChange:
		return "AuthorityChange"
	case EventBaseDestroyed:
		return "BaseDestroyed"
	case EventDeploy:
		return "Deploy"
	case EventSpawn:
		return "Spawn"
	case EventActivateBase:
		return "ActivateBase"
	case EventUpgrade:
		return "Upgrade"
	case EventArtAcknowledged:
		return "ArtAcknowledged"
	case EventChoicePending:
		return "ChoicePending"
	case EventChoiceResolved:
		return "ChoiceResolved"
	case EventDiscard:
		return "Discard"
	case EventFlow:
		return "Flow"
	case EventEndTurn:
		return "EndTurn"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent is one entry of a match's log.
type GameEvent struct {
	Seq     int       // assigned by the logger, starts at 1
	Turn    int       // 1-based
	Phase   string    // phase name at the time
	Player  int       // seat the event concerns
	Type    EventType
	Card    string    // card name, if any
	Amount  int       // numeric payload (resource delta, cards drawn, ...)
	Details string    // free text for the log line

	// Private events reveal hidden information and are only shown to Player.
	Private bool
}

// VisibleTo reports whether the viewer may see this event.
func (e GameEvent) VisibleTo(viewer int) bool {
	return !e.Private || e.Player == viewer
}

