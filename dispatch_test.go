package limn

import (
	"slices"
	"testing"
)

// pinBox adds a rect widget pinned to an exact rectangle inside the root.
func pinBox(t *testing.T, u *UI, name string, r Rect) *WidgetContainer {
	t.Helper()
	root := u.Container(u.Root())
	w := NewRectWidget(name, ColorWhite)
	w.Layout.Size(r.Width, r.Height)
	w.Layout.AlignLeft(&root.Layout, r.X)
	w.Layout.AlignTop(&root.Layout, r.Y)
	u.AddWidget(w, u.Root())
	return w
}

// --- Hit phase ---

func TestHitPhaseDeliversOnlyUnderCursor(t *testing.T) {
	u := New(640, 480)
	left := pinBox(t, u, "left", Rect{0, 0, 100, 100})
	right := pinBox(t, u, "right", Rect{200, 0, 100, 100})

	var pressed []string
	record := func(w *WidgetContainer) {
		w.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
			pressed = append(pressed, w.Name)
			return EventNone, false
		})
	}
	record(left)
	record(right)
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 50, Y: 50}})
	u.HandleEvent(Event{Kind: EventPress, Button: MouseButtonLeft})

	if !slices.Equal(pressed, []string{"left"}) {
		t.Errorf("pressed = %v, want [left]", pressed)
	}
}

func TestHitPhaseUsesTrackedCursorNotEventPos(t *testing.T) {
	u := New(640, 480)
	box := pinBox(t, u, "box", Rect{0, 0, 100, 100})

	hits := 0
	box.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		hits++
		return EventNone, false
	})
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Move inside the box, then press with a bogus position on the event.
	// Hit testing must use the tracked cursor, not ev.Pos.
	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 10, Y: 10}})
	u.HandleEvent(Event{Kind: EventPress, Pos: Vec2{X: 9999, Y: 9999}})
	if hits != 1 {
		t.Fatalf("hits = %d, want 1 (cursor is inside)", hits)
	}

	// Move away; pressing at the old position must miss.
	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 500, Y: 400}})
	u.HandleEvent(Event{Kind: EventPress, Pos: Vec2{X: 10, Y: 10}})
	if hits != 1 {
		t.Errorf("hits = %d, want still 1 (cursor moved away)", hits)
	}
}

func TestHitPhasePreOrder(t *testing.T) {
	u := New(640, 480)
	root := u.Container(u.Root())

	outer := pinBox(t, u, "outer", Rect{0, 0, 200, 200})
	inner := NewRectWidget("inner", ColorWhite)
	inner.Layout.Size(50, 50)
	inner.Layout.AlignLeft(&root.Layout, 10)
	inner.Layout.AlignTop(&root.Layout, 10)
	u.AddWidget(inner, outer.ID)

	var order []string
	for _, w := range []*WidgetContainer{outer, inner} {
		w := w
		w.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
			order = append(order, w.Name)
			return EventNone, false
		})
	}
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 20, Y: 20}})
	u.HandleEvent(Event{Kind: EventPress})

	if !slices.Equal(order, []string{"outer", "inner"}) {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}

// --- Broadcast phase ---

func TestEmissionBroadcastsToWholeTree(t *testing.T) {
	u := New(640, 480)
	toggled := NewEventKind()

	button := pinBox(t, u, "button", Rect{0, 0, 100, 100})
	button.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		return toggled, true
	})

	// The label sits far from the cursor in a different subtree; only the
	// broadcast can reach it.
	label := pinBox(t, u, "label", Rect{500, 400, 100, 50})
	var got []Event
	label.On(toggled, func(ev Event, drawable any) (EventKind, bool) {
		got = append(got, ev)
		return EventNone, false
	})
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 50, Y: 50}})
	u.HandleEvent(Event{Kind: EventPress})

	if len(got) != 1 {
		t.Fatalf("label deliveries = %d, want 1", len(got))
	}
	// Broadcast deliveries are synthetic zero-duration updates.
	if got[0].Kind != EventUpdate || got[0].DT != 0 {
		t.Errorf("broadcast event = %+v, want zero-DT EventUpdate", got[0])
	}
}

func TestEmissionsCollectedNotFiredDuringHitPhase(t *testing.T) {
	u := New(640, 480)
	noted := NewEventKind()

	var order []string
	first := pinBox(t, u, "first", Rect{0, 0, 100, 100})
	first.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		order = append(order, "first.press")
		return noted, true
	})

	// Overlapping widget: its press handler must run before anyone's noted
	// handler, even though first already emitted.
	second := pinBox(t, u, "second", Rect{0, 0, 100, 100})
	second.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		order = append(order, "second.press")
		return EventNone, false
	})
	second.On(noted, func(ev Event, drawable any) (EventKind, bool) {
		order = append(order, "second.noted")
		return EventNone, false
	})
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 50, Y: 50}})
	u.HandleEvent(Event{Kind: EventPress})

	want := []string{"first.press", "second.press", "second.noted"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestBroadcastEmissionsAreDropped(t *testing.T) {
	u := New(640, 480)
	level1 := NewEventKind()
	level2 := NewEventKind()

	button := pinBox(t, u, "button", Rect{0, 0, 100, 100})
	button.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		return level1, true
	})

	relay := pinBox(t, u, "relay", Rect{200, 200, 50, 50})
	relay.On(level1, func(ev Event, drawable any) (EventKind, bool) {
		return level2, true // must go nowhere
	})

	sink := pinBox(t, u, "sink", Rect{300, 300, 50, 50})
	level2Seen := 0
	sink.On(level2, func(ev Event, drawable any) (EventKind, bool) {
		level2Seen++
		return EventNone, false
	})
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 50, Y: 50}})
	u.HandleEvent(Event{Kind: EventPress})

	if level2Seen != 0 {
		t.Errorf("second-level emission delivered %d times, want 0 (no cascades)", level2Seen)
	}
}

func TestEveryHitEmissionBroadcasts(t *testing.T) {
	u := New(640, 480)
	kindA := NewEventKind()
	kindB := NewEventKind()

	// Two overlapping widgets each emit a different kind from the same
	// press; both must be broadcast, in hit order.
	a := pinBox(t, u, "a", Rect{0, 0, 100, 100})
	a.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		return kindA, true
	})
	b := pinBox(t, u, "b", Rect{0, 0, 100, 100})
	b.On(EventPress, func(ev Event, drawable any) (EventKind, bool) {
		return kindB, true
	})

	var got []EventKind
	sink := pinBox(t, u, "sink", Rect{300, 300, 50, 50})
	sink.On(kindA, func(ev Event, drawable any) (EventKind, bool) {
		got = append(got, kindA)
		return EventNone, false
	})
	sink.On(kindB, func(ev Event, drawable any) (EventKind, bool) {
		got = append(got, kindB)
		return EventNone, false
	})
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 50, Y: 50}})
	u.HandleEvent(Event{Kind: EventPress})

	if !slices.Equal(got, []EventKind{kindA, kindB}) {
		t.Errorf("broadcast kinds = %v, want [%d %d]", got, kindA, kindB)
	}
}

// --- Cursor tracking ---

func TestCursorTracksMoves(t *testing.T) {
	u := New(640, 480)
	u.HandleEvent(Event{Kind: EventPointerMove, Pos: Vec2{X: 12, Y: 34}})
	if u.Cursor() != (Vec2{X: 12, Y: 34}) {
		t.Errorf("Cursor = %v, want {12 34}", u.Cursor())
	}
}

// --- WidgetsUnderCursor through the UI ---

func TestUIWidgetsUnderCursor(t *testing.T) {
	u := New(640, 480)
	root := u.Container(u.Root())

	panel := pinBox(t, u, "panel", Rect{0, 0, 300, 300})
	inner := NewRectWidget("inner", ColorWhite)
	inner.Layout.Size(50, 50)
	inner.Layout.AlignLeft(&root.Layout, 20)
	inner.Layout.AlignTop(&root.Layout, 20)
	u.AddWidget(inner, panel.ID)
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var got []WidgetID
	for id := range u.WidgetsUnderCursor(Vec2{X: 30, Y: 30}) {
		got = append(got, id)
	}
	want := []WidgetID{inner.ID, panel.ID, u.Root()}
	if !slices.Equal(got, want) {
		t.Errorf("under cursor = %v, want %v", got, want)
	}
}
