package limn

// EventKind identifies a kind of event. The raw input kinds are predeclared;
// user-defined kinds for widget-emitted notifications come from NewEventKind.
type EventKind uint32

const (
	// EventNone is the zero kind. Handlers return it when they emit nothing.
	EventNone EventKind = iota
	// EventPointerMove fires when the pointer moves. Carries Pos.
	EventPointerMove
	// EventPress fires when a mouse button is pressed. Carries Button.
	EventPress
	// EventRelease fires when a mouse button is released. Carries Button.
	EventRelease
	// EventUpdate is the per-tick housekeeping event. Carries DT; broadcast
	// deliveries use a zero DT.
	EventUpdate

	eventKindBuiltin // first free kind for NewEventKind
)

// eventKindCounter is a plain counter (single-threaded, like widget IDs).
var eventKindCounter = EventKind(eventKindBuiltin)

// NewEventKind allocates a fresh application-defined event kind, typically
// used for widget-emitted notifications picked up by the broadcast phase.
func NewEventKind() EventKind {
	eventKindCounter++
	return eventKindCounter
}

// Event is a single input or notification event. Only the fields relevant to
// Kind are set: Pos for pointer motion, Button for press/release, DT for
// update ticks. Hit testing never reads Pos — it always uses the last
// position observed by the input state.
type Event struct {
	Kind   EventKind
	Pos    Vec2
	Button MouseButton
	DT     float64
}

// EventHandler reacts to one kind of event on one widget. HandleEvent may
// mutate the widget's drawable and may emit a follow-up kind (returned with
// true) that the dispatcher broadcasts to the whole tree.
type EventHandler interface {
	EventKind() EventKind
	HandleEvent(ev Event, drawable any) (EventKind, bool)
}

// funcHandler adapts a plain function to the EventHandler interface.
type funcHandler struct {
	kind EventKind
	fn   func(ev Event, drawable any) (EventKind, bool)
}

func (h funcHandler) EventKind() EventKind {
	return h.kind
}

func (h funcHandler) HandleEvent(ev Event, drawable any) (EventKind, bool) {
	return h.fn(ev, drawable)
}

// InputState tracks pointer state across the process lifetime. The cursor
// position persists between events so that press/release hit tests use the
// last known pointer location.
type InputState struct {
	Cursor Vec2
}

// Observe folds an event into the tracked state. Only pointer motion moves
// the cursor; other kinds leave it untouched.
func (in *InputState) Observe(ev Event) {
	if ev.Kind == EventPointerMove {
		in.Cursor = ev.Pos
	}
}
