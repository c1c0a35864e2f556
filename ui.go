package limn

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/limn/cassowary"
)

// UI is the top-level object that owns the widget graph, the layout engine,
// resources, and input state. All methods must be called from the same
// goroutine; nothing here is safe for concurrent use.
type UI struct {
	graph  *Graph
	layout *Layout
	res    *Resources
	input  InputState
	root   WidgetID

	width, height float64
	layoutDirty   bool

	injectQueue []Event
	watcher     *AssetWatcher
	testRunner  *TestRunner

	debug       bool
	debugBounds bool

	// ClearColor fills the draw target before widgets when its alpha is
	// non-zero.
	ClearColor Color

	screenshotQueue []string
	screenshotSeq   int

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// New creates a UI whose root widget spans a width-by-height window. The
// root's left/top edges are pinned to 0 and its right/bottom edges are
// registered as edit variables, so ResizeWindow is just a pair of suggested
// values. A solver rejection here is a construction bug and panics.
func New(width, height float64) *UI {
	u := &UI{
		graph:         NewGraph(),
		layout:        NewLayout(),
		res:           NewResources(),
		width:         width,
		height:        height,
		ScreenshotDir: "screenshots",
	}

	root := NewWidget("root", &EmptyDrawable{}, DrawNothing)
	u.root = u.graph.AddWidget(root, NoWidget)

	lv := &root.Layout
	if err := u.layout.AddEditVariable(lv.Right, cassowary.Strong); err != nil {
		panic("limn: root setup: " + err.Error())
	}
	if err := u.layout.AddEditVariable(lv.Bottom, cassowary.Strong); err != nil {
		panic("limn: root setup: " + err.Error())
	}
	if err := u.layout.AddConstraints(
		cassowary.EQ(cassowary.Var(lv.Left), cassowary.Const(0), cassowary.Strong),
		cassowary.EQ(cassowary.Var(lv.Top), cassowary.Const(0), cassowary.Strong),
	); err != nil {
		panic("limn: root setup: " + err.Error())
	}
	if err := u.ResizeWindow(width, height); err != nil {
		panic("limn: root setup: " + err.Error())
	}
	if err := u.Init(); err != nil {
		panic("limn: root setup: " + err.Error())
	}
	return u
}

// Root returns the root widget's ID.
func (u *UI) Root() WidgetID {
	return u.root
}

// Graph returns the widget graph.
func (u *UI) Graph() *Graph {
	return u.graph
}

// Layout returns the layout engine shared by the whole tree.
func (u *UI) Layout() *Layout {
	return u.layout
}

// Resources returns the font and image registry.
func (u *UI) Resources() *Resources {
	return u.res
}

// Size returns the window size last passed to New or ResizeWindow.
func (u *UI) Size() (width, height float64) {
	return u.width, u.height
}

// Widget returns the widget for id, or nil when unknown.
func (u *UI) Widget(id WidgetID) *Widget {
	return u.graph.Widget(id)
}

// Container returns the storage container for id, or nil when unknown.
func (u *UI) Container(id WidgetID) *WidgetContainer {
	return u.graph.Container(id)
}

// AddWidget inserts a widget into the graph. When the parent resolves,
// containment constraints against it are authored automatically; they are
// installed by the next Init (or Update). A NoWidget/unknown parent inserts
// the widget detached, with no containment.
func (u *UI) AddWidget(c *WidgetContainer, parent WidgetID) WidgetID {
	id := u.graph.AddWidget(c, parent)
	if p := u.graph.Container(parent); p != nil {
		c.Layout.BoundBy(&p.Layout)
	}
	u.layoutDirty = true
	return id
}

// RemoveWidget removes a widget and its entire subtree. Every removed
// widget's installed constraints and edit variables leave the solver in the
// same step. Returns the subtree root's container, or nil for unknown IDs.
// The root widget cannot be removed.
func (u *UI) RemoveWidget(id WidgetID) *WidgetContainer {
	if id == u.root {
		panic("limn: cannot remove the root widget")
	}
	for sid := range u.graph.DFS(id) {
		c := u.graph.Container(sid)
		u.layout.removeWidget(sid, &c.Layout)
	}
	return u.graph.RemoveWidget(id)
}

// Reparent moves a widget (and its subtree) under a new parent. The widget's
// previously installed constraints are unwound and its containment is
// re-authored against the new parent; the next Init installs the fresh set.
// Reparenting to NoWidget or an unknown parent detaches the subtree, which
// also unwinds the subtree's constraints — detached widgets are never
// solved. Panics when the move would create a cycle.
func (u *UI) Reparent(id, parent WidgetID) error {
	c := u.graph.Container(id)
	if c == nil {
		return fmt.Errorf("limn: reparent: unknown widget %d", id)
	}

	u.layout.uninstall(id)
	u.graph.Reparent(id, parent)

	if p := u.graph.Container(parent); p != nil {
		c.Layout.BoundBy(&p.Layout)
	} else {
		c.Layout.clearContainment()
		for sid := range u.graph.DFS(id) {
			u.layout.uninstall(sid)
		}
	}
	u.layoutDirty = true
	return nil
}

// Init installs the authored constraints of every widget reachable from the
// root that are not installed yet. Detached widgets are unreachable and
// therefore never solved. A solver rejection is returned wrapped with the
// offending widget's name; it means the constraint set itself is wrong, so
// callers should treat it as fatal.
func (u *UI) Init() error {
	var t0 time.Time
	if u.debug {
		t0 = time.Now()
	}
	for id := range u.graph.DFS(u.root) {
		c := u.graph.Container(id)
		if err := u.layout.install(id, &c.Layout); err != nil {
			return fmt.Errorf("limn: install constraints for widget %q: %w", c.Name, err)
		}
	}
	u.layoutDirty = false
	if u.debug {
		u.debugLogInit(time.Since(t0))
	}
	return nil
}

// ResizeWindow suggests a new size for the root's right/bottom edges. The
// incremental solver re-solves the whole tree as part of the suggestion.
func (u *UI) ResizeWindow(width, height float64) error {
	lv := &u.graph.Container(u.root).Layout
	if err := u.layout.SuggestValue(lv.Right, width); err != nil {
		return fmt.Errorf("limn: resize: %w", err)
	}
	if err := u.layout.SuggestValue(lv.Bottom, height); err != nil {
		return fmt.Errorf("limn: resize: %w", err)
	}
	u.width, u.height = width, height
	return nil
}

// Bounds returns the solved rectangle for a widget. The second return is
// false for unknown IDs.
func (u *UI) Bounds(id WidgetID) (Rect, bool) {
	c := u.graph.Container(id)
	if c == nil {
		return Rect{}, false
	}
	return u.layout.Bounds(&c.Layout), true
}

// Update runs one tick of housekeeping: pending constraints are installed
// when the tree changed, asset reloads and injected events are drained (one
// injected event per tick, so scripted interactions see coherent frames),
// and every widget registered for EventUpdate receives the tick.
func (u *UI) Update(dt float64) error {
	if u.layoutDirty {
		if err := u.Init(); err != nil {
			return err
		}
	}

	if u.watcher != nil {
		u.drainWatcher()
	}
	if u.testRunner != nil {
		u.testRunner.step(u)
	}
	if len(u.injectQueue) > 0 {
		ev := u.injectQueue[0]
		copy(u.injectQueue, u.injectQueue[1:])
		u.injectQueue = u.injectQueue[:len(u.injectQueue)-1]
		u.HandleEvent(ev)
	}

	tick := Event{Kind: EventUpdate, DT: dt}
	for id := range u.graph.DFS(u.root) {
		w := u.graph.Widget(id)
		if w.Registered(EventUpdate) {
			w.TriggerEvent(EventUpdate, tick)
		}
	}
	return nil
}

// Draw renders the tree in pre-order: parents first, children over them,
// siblings in insertion order. Each widget's DrawFn receives its drawable,
// its solved bounds, the resources, and the target. With debug bounds
// enabled every widget also gets a 1px outline.
func (u *UI) Draw(target *ebiten.Image) {
	if u.ClearColor.A > 0 {
		target.Fill(u.ClearColor.toRGBA())
	}

	var t0 time.Time
	if u.debug {
		t0 = time.Now()
	}

	for id := range u.graph.DFS(u.root) {
		c := u.graph.Container(id)
		bounds := u.layout.Bounds(&c.Layout)
		if c.DrawFn != nil {
			c.DrawFn(c.Drawable, bounds, u.res, target)
		}
		if u.debugBounds {
			strokeRect(target, bounds, debugOutlineColor)
		}
	}

	u.flushScreenshots(target)

	if u.debug {
		u.debugLogDraw(time.Since(t0))
	}
}

// SetDebugMode enables or disables debug mode. When enabled, graph integrity
// is verified after every mutation and per-tick timing stats are logged to
// stderr.
func (u *UI) SetDebugMode(enabled bool) {
	u.debug = enabled
	globalDebug = enabled
}

// SetDebugBounds toggles the 1px outline drawn over every widget's solved
// bounds.
func (u *UI) SetDebugBounds(enabled bool) {
	u.debugBounds = enabled
}
