package resource

// Handle is an opaque local reference into a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for reference lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	default:
		return "unknown"
	}
}

// Event represents a reference lifecycle event.
type Event struct {
	Value   any
	Handle  Handle
	Borrows uint32
	Type    EventType
}

// Observer receives notifications about reference lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by values that need cleanup when their
// last reference is deleted.
type Dropper interface {
	Drop()
}
