package limn

import "iter"

// graphNode is one arena slot. Slots refer to each other by index; indices
// never escape the package — callers only ever see WidgetIDs.
type graphNode struct {
	id        WidgetID
	container *WidgetContainer
	parent    int   // parent slot; 0 means detached
	children  []int // child slots in insertion order
}

// Graph stores the widget tree in a dense slot arena with an ID index.
// Slot 0 is a permanent null sentinel with no container and no edges, so
// lookups of unknown IDs resolve to a node that behaves exactly like
// "no relatives". Freed slots are reused; WidgetIDs never are.
type Graph struct {
	nodes []graphNode
	index map[WidgetID]int
	free  []int
}

// NewGraph creates an empty graph containing only the null sentinel.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]graphNode, 1),
		index: make(map[WidgetID]int),
	}
}

// slotOf resolves an ID to its slot, or to the sentinel slot 0 when the ID
// is unknown (or NoWidget, which is never indexed).
func (g *Graph) slotOf(id WidgetID) int {
	if slot, ok := g.index[id]; ok {
		return slot
	}
	return 0
}

// NumWidgets returns the number of widgets currently stored.
func (g *Graph) NumWidgets() int {
	return len(g.index)
}

// AddWidget inserts a widget. When parent resolves to a stored widget the
// new node is attached under it; NoWidget or an unknown parent leaves the
// node detached with no edge (it becomes the root of its own subtree).
// Returns the widget's ID.
func (g *Graph) AddWidget(c *WidgetContainer, parent WidgetID) WidgetID {
	if c == nil {
		panic("limn: cannot add nil widget")
	}
	if c.ID == NoWidget {
		panic("limn: widget has no ID")
	}
	if _, ok := g.index[c.ID]; ok {
		panic("limn: widget is already in the graph")
	}

	var slot int
	if n := len(g.free); n > 0 {
		slot = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.nodes = append(g.nodes, graphNode{})
		slot = len(g.nodes) - 1
	}

	pslot := g.slotOf(parent)
	g.nodes[slot] = graphNode{id: c.ID, container: c, parent: pslot}
	if pslot != 0 {
		g.nodes[pslot].children = append(g.nodes[pslot].children, slot)
	}
	g.index[c.ID] = slot

	if globalDebug {
		g.debugCheckIntegrity()
		g.debugCheckTreeDepth(c.ID)
	}
	return c.ID
}

// RemoveWidget removes a widget and its entire subtree: every descendant is
// unmapped and its slot freed in the same step, so no orphan nodes remain.
// Returns the removed widget's container, or nil for unknown IDs.
func (g *Graph) RemoveWidget(id WidgetID) *WidgetContainer {
	slot := g.slotOf(id)
	if slot == 0 {
		return nil
	}
	c := g.nodes[slot].container

	if pslot := g.nodes[slot].parent; pslot != 0 {
		g.detachFromParent(slot, pslot)
	}

	// Free the subtree depth-first. Freed slots go on the free list; the
	// IDs are gone for good.
	stack := []int{slot}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, g.nodes[s].children...)
		delete(g.index, g.nodes[s].id)
		g.nodes[s] = graphNode{}
		g.free = append(g.free, s)
	}

	if globalDebug {
		g.debugCheckIntegrity()
	}
	return c
}

// detachFromParent removes slot from pslot's child list.
func (g *Graph) detachFromParent(slot, pslot int) {
	children := g.nodes[pslot].children
	for i, ch := range children {
		if ch == slot {
			g.nodes[pslot].children = append(children[:i], children[i+1:]...)
			return
		}
	}
}

// Reparent moves a widget and its subtree under a new parent, keeping the
// subtree's internal edges intact. NoWidget or an unknown parent detaches
// the widget instead. Returns false when id is unknown; panics when the move
// would create a cycle (the new parent lies inside the widget's own subtree).
func (g *Graph) Reparent(id, newParent WidgetID) bool {
	slot := g.slotOf(id)
	if slot == 0 {
		return false
	}

	npslot := g.slotOf(newParent)
	for p := npslot; p != 0; p = g.nodes[p].parent {
		if p == slot {
			panic("limn: reparenting would create a cycle")
		}
	}

	if pslot := g.nodes[slot].parent; pslot != 0 {
		g.detachFromParent(slot, pslot)
	}
	g.nodes[slot].parent = npslot
	if npslot != 0 {
		g.nodes[npslot].children = append(g.nodes[npslot].children, slot)
	}

	if globalDebug {
		g.debugCheckIntegrity()
		g.debugCheckTreeDepth(id)
	}
	return true
}

// Widget returns the widget for id, or nil when unknown.
func (g *Graph) Widget(id WidgetID) *Widget {
	c := g.nodes[g.slotOf(id)].container
	if c == nil {
		return nil
	}
	return &c.Widget
}

// Container returns the storage container for id, or nil when unknown.
func (g *Graph) Container(id WidgetID) *WidgetContainer {
	return g.nodes[g.slotOf(id)].container
}

// Parent returns the parent's ID, or NoWidget for detached roots and
// unknown IDs.
func (g *Graph) Parent(id WidgetID) WidgetID {
	return g.nodes[g.nodes[g.slotOf(id)].parent].id
}

// Children returns the child IDs in insertion order. Unknown IDs resolve to
// the sentinel and yield nothing.
func (g *Graph) Children(id WidgetID) []WidgetID {
	children := g.nodes[g.slotOf(id)].children
	if len(children) == 0 {
		return nil
	}
	out := make([]WidgetID, len(children))
	for i, slot := range children {
		out[i] = g.nodes[slot].id
	}
	return out
}

// DFS walks the subtree rooted at id depth-first, parents before children,
// siblings in insertion order. The sequence is restartable by re-invoking
// it; the graph must not be mutated during a walk. Unknown IDs yield
// nothing.
func (g *Graph) DFS(id WidgetID) iter.Seq[WidgetID] {
	return func(yield func(WidgetID) bool) {
		slot := g.slotOf(id)
		if slot == 0 {
			return
		}
		g.visitPreOrder(slot, yield)
	}
}

func (g *Graph) visitPreOrder(slot int, yield func(WidgetID) bool) bool {
	if !yield(g.nodes[slot].id) {
		return false
	}
	for _, child := range g.nodes[slot].children {
		if !g.visitPreOrder(child, yield) {
			return false
		}
	}
	return true
}

// WidgetsUnderCursor yields every widget in root's subtree whose hit test
// passes at p, children before parents (deepest first), siblings in
// insertion order. Bounds come from the layout's current solution.
func (g *Graph) WidgetsUnderCursor(root WidgetID, p Vec2, layout *Layout) iter.Seq[WidgetID] {
	return func(yield func(WidgetID) bool) {
		slot := g.slotOf(root)
		if slot == 0 {
			return
		}
		g.visitUnderCursor(slot, p, layout, yield)
	}
}

func (g *Graph) visitUnderCursor(slot int, p Vec2, layout *Layout, yield func(WidgetID) bool) bool {
	for _, child := range g.nodes[slot].children {
		if !g.visitUnderCursor(child, p, layout, yield) {
			return false
		}
	}
	n := &g.nodes[slot]
	if n.container.hitTest(p, layout.Bounds(&n.container.Layout)) {
		return yield(n.id)
	}
	return true
}
