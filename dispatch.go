package limn

import "iter"

// HandleEvent folds a raw event into the input state and dispatches it.
// This is the entry point for both real and injected input.
func (u *UI) HandleEvent(ev Event) {
	u.input.Observe(ev)
	u.PostEvent(ev)
}

// PostEvent dispatches one event in two phases.
//
// Hit phase: the whole tree is walked in pre-order; every widget registered
// for ev.Kind whose hit test passes at the current cursor position gets the
// event. Kinds emitted by the handlers are collected, not fired — within one
// raw event, hit-phase handlers never observe each other's follow-ups.
//
// Broadcast phase: for each collected kind, the whole tree is walked again
// and every widget registered for that kind — hit or not, anywhere in the
// tree — receives a zero-duration synthetic update. Emissions from broadcast
// handlers are dropped: one delivery per collected emission, no cascades.
//
// The tree must not be mutated by handlers; dispatch is single-threaded and
// non-reentrant.
func (u *UI) PostEvent(ev Event) {
	cursor := u.input.Cursor

	var emitted []EventKind
	for id := range u.graph.DFS(u.root) {
		w := u.graph.Widget(id)
		if !w.Registered(ev.Kind) {
			continue
		}
		if !w.hitTest(cursor, u.layout.Bounds(&w.Layout)) {
			continue
		}
		emitted = append(emitted, w.TriggerEvent(ev.Kind, ev)...)
	}

	for _, kind := range emitted {
		update := Event{Kind: EventUpdate}
		for id := range u.graph.DFS(u.root) {
			w := u.graph.Widget(id)
			if w.Registered(kind) {
				w.TriggerEvent(kind, update)
			}
		}
	}
}

// Cursor returns the last pointer position observed by the dispatcher.
func (u *UI) Cursor() Vec2 {
	return u.input.Cursor
}

// WidgetsUnderCursor yields every widget whose hit test passes at p, deepest
// first. See Graph.WidgetsUnderCursor for the order contract.
func (u *UI) WidgetsUnderCursor(p Vec2) iter.Seq[WidgetID] {
	return u.graph.WidgetsUnderCursor(u.root, p, u.layout)
}
