package limn

// Synthetic input for tests and scripted automation. Injected events queue
// up and are consumed one per Update tick, exactly like real input arriving
// across frames; each helper leads with a pointer move so the hit test runs
// at the intended position.

// InjectMove queues a pointer move to (x, y). Consumes one tick.
func (u *UI) InjectMove(x, y float64) {
	u.injectQueue = append(u.injectQueue,
		Event{Kind: EventPointerMove, Pos: Vec2{X: x, Y: y}})
}

// InjectPress queues a pointer move to (x, y) followed by a left-button
// press. Consumes two ticks.
func (u *UI) InjectPress(x, y float64) {
	u.InjectMove(x, y)
	u.injectQueue = append(u.injectQueue,
		Event{Kind: EventPress, Button: MouseButtonLeft})
}

// InjectRelease queues a pointer move to (x, y) followed by a left-button
// release. Consumes two ticks.
func (u *UI) InjectRelease(x, y float64) {
	u.InjectMove(x, y)
	u.injectQueue = append(u.injectQueue,
		Event{Kind: EventRelease, Button: MouseButtonLeft})
}

// InjectClick queues a move, a press, and a release at (x, y). Consumes
// three ticks.
func (u *UI) InjectClick(x, y float64) {
	u.InjectMove(x, y)
	u.injectQueue = append(u.injectQueue,
		Event{Kind: EventPress, Button: MouseButtonLeft},
		Event{Kind: EventRelease, Button: MouseButtonLeft})
}

// PendingInjected reports how many injected events are still queued.
func (u *UI) PendingInjected() int {
	return len(u.injectQueue)
}
