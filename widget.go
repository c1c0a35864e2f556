package limn

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoHandler is returned by TriggerEventChecked when the widget has no
// handler registered for the triggered kind.
var ErrNoHandler = errors.New("limn: no handler registered for event kind")

// DrawFunc renders a widget's drawable state into the resolved bounds.
// The toolkit never interprets the drawable; it only hands it back here.
type DrawFunc func(drawable any, bounds Rect, res *Resources, target *ebiten.Image)

// HitTestFunc reports whether a point hits a widget given its resolved
// bounds. Widgets without one use HitInside.
type HitTestFunc func(p Vec2, bounds Rect) bool

// HitInside is the default hit test: point inside the bounds rectangle,
// edges included.
func HitInside(p Vec2, bounds Rect) bool {
	return bounds.Contains(p.X, p.Y)
}

// Widget pairs opaque drawable state with layout variables, a draw function,
// a hit test, and an ordered handler list. The toolkit stores and traverses
// widgets; all rendering and event behavior is supplied by the client.
type Widget struct {
	ID        WidgetID
	Name      string // debug label, not unique
	Layout    LayoutVars
	Drawable  any
	DrawFn    DrawFunc
	HitTestFn HitTestFunc

	handlers []EventHandler
}

// WidgetContainer is the graph's storage unit for one widget. It is
// identified by its Widget's ID.
type WidgetContainer struct {
	Widget
}

// NewWidget creates a widget container with a fresh ID, layout variables
// named after the debug label, and the default hit test.
func NewWidget(name string, drawable any, drawFn DrawFunc) *WidgetContainer {
	c := &WidgetContainer{Widget: Widget{
		ID:       NextWidgetID(),
		Name:     name,
		Layout:   NewLayoutVars(name),
		Drawable: drawable,
		DrawFn:   drawFn,
	}}
	return c
}

// AddHandler appends a handler. Handlers run in registration order when
// their kind is triggered.
func (w *Widget) AddHandler(h EventHandler) {
	if h == nil {
		panic("limn: cannot add nil event handler")
	}
	w.handlers = append(w.handlers, h)
}

// On registers a plain function as a handler for the given kind.
func (w *Widget) On(kind EventKind, fn func(ev Event, drawable any) (EventKind, bool)) {
	if fn == nil {
		panic("limn: cannot add nil event handler")
	}
	w.handlers = append(w.handlers, funcHandler{kind: kind, fn: fn})
}

// Registered reports whether any handler is registered for kind.
func (w *Widget) Registered(kind EventKind) bool {
	for _, h := range w.handlers {
		if h.EventKind() == kind {
			return true
		}
	}
	return false
}

// TriggerEvent runs every handler registered for kind, in registration
// order, and returns the kinds they emitted. Triggering a kind with no
// handler is a wiring bug and panics; guard with Registered, or use
// TriggerEventChecked.
func (w *Widget) TriggerEvent(kind EventKind, ev Event) []EventKind {
	emitted, err := w.TriggerEventChecked(kind, ev)
	if err != nil {
		panic(fmt.Sprintf("limn: widget %q has no handler for event kind %d", w.Name, kind))
	}
	return emitted
}

// TriggerEventChecked is TriggerEvent with an error return instead of a
// panic: ErrNoHandler when nothing is registered for kind.
func (w *Widget) TriggerEventChecked(kind EventKind, ev Event) ([]EventKind, error) {
	var emitted []EventKind
	found := false
	for _, h := range w.handlers {
		if h.EventKind() != kind {
			continue
		}
		found = true
		if out, ok := h.HandleEvent(ev, w.Drawable); ok {
			emitted = append(emitted, out)
		}
	}
	if !found {
		return nil, ErrNoHandler
	}
	return emitted, nil
}

// hitTest applies the widget's hit test, falling back to HitInside.
func (w *Widget) hitTest(p Vec2, bounds Rect) bool {
	if w.HitTestFn != nil {
		return w.HitTestFn(p, bounds)
	}
	return HitInside(p, bounds)
}
