package game

// EventType names what happened to a session.
type EventType string

const (
	EventStarted   EventType = "started"
	EventEvaluated EventType = "evaluated"
	EventRejected  EventType = "rejected"
)

// Event is the structured notification a Session hands to its Sink after
// every operation that changes or refuses to change its state.
type Event struct {
	Type     EventType   `json:"type"`
	Attempt  int         `json:"attempt"`
	Guess    Word        `json:"guess,omitempty"`
	Row      Evaluation  `json:"row,omitempty"`
	Keys     KeyStateMap `json:"keys,omitempty"`
	Score    int         `json:"score"`
	Gained   int         `json:"gained,omitempty"`
	Status   Status      `json:"status"`
	Outcome  *Outcome    `json:"outcome,omitempty"`
	Hint     *Hint       `json:"hint,omitempty"`
	Category string      `json:"category,omitempty"`
	// Err is set on EventRejected.
	Err error `json:"-"`
}

// Sink consumes session events. Implementations must not call back into the
// emitting Session.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// MultiSink fans an event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
