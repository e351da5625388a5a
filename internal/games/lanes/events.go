package lanes

import "fmt"

// EventKind identifies a discrete notification emitted during a tick.
type EventKind int

const (
	EventLanded EventKind = iota
	EventJumped
	EventCoinCollected
	EventHit
	EventTrapHit
	EventDied
	EventLevelCompleted
	EventLevelUnlocked
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventLanded:
		return "landed"
	case EventJumped:
		return "jumped"
	case EventCoinCollected:
		return "coinCollected"
	case EventHit:
		return "hit"
	case EventTrapHit:
		return "trapHit"
	case EventDied:
		return "died"
	case EventLevelCompleted:
		return "levelCompleted"
	case EventLevelUnlocked:
		return "levelUnlocked"
	default:
		return "unknown"
	}
}

// Event is a notification for renderers and audio. Level is set for
// EventLevelCompleted and EventLevelUnlocked.
type Event struct {
	Kind  EventKind
	Level int
}

func (e Event) String() string {
	if e.Kind == EventLevelUnlocked || e.Kind == EventLevelCompleted {
		return fmt.Sprintf("%s(%d)", e.Kind, e.Level)
	}
	return e.Kind.String()
}

// Events is the per-tick event buffer.
type Events []Event

func (ev *Events) emit(kind EventKind) {
	*ev = append(*ev, Event{Kind: kind})
}

func (ev *Events) emitLevel(kind EventKind, level int) {
	*ev = append(*ev, Event{Kind: kind, Level: level})
}

// Has reports whether an event of kind was emitted.
func (ev Events) Has(kind EventKind) bool {
	for _, e := range ev {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many events of kind were emitted.
func (ev Events) Count(kind EventKind) int {
	n := 0
	for _, e := range ev {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
