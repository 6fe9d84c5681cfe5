package ecs

// EventType names an ECS event payload.
type EventType string

const (
	EventTrigger      EventType = "trigger"
	EventAvatarJoined EventType = "avatar_joined"
	EventAvatarLeft   EventType = "avatar_left"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// TriggerPhase is the overlap phase reported by a trigger volume.
type TriggerPhase uint8

const (
	TriggerEnter TriggerPhase = iota + 1
	TriggerExit
)

func (p TriggerPhase) String() string {
	switch p {
	case TriggerEnter:
		return "enter"
	case TriggerExit:
		return "exit"
	default:
		return "unknown"
	}
}

// TriggerEvent is emitted when an entity starts or stops overlapping a
// trigger volume. Other may already be dead when the event is consumed.
type TriggerEvent struct {
	Volume Entity
	Other  Entity
	Phase  TriggerPhase
}

// AvatarEvent carries the avatar for join/leave events.
type AvatarEvent struct {
	Avatar Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
