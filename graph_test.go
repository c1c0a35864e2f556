package limn

import (
	"slices"
	"testing"
)

// testWidget builds a bare widget for graph tests; rendering is irrelevant
// here.
func testWidget(name string) *WidgetContainer {
	return NewWidget(name, nil, nil)
}

// --- AddWidget ---

func TestAddWidgetAttached(t *testing.T) {
	g := NewGraph()
	parent := testWidget("parent")
	child := testWidget("child")

	pid := g.AddWidget(parent, NoWidget)
	cid := g.AddWidget(child, pid)

	if g.NumWidgets() != 2 {
		t.Errorf("NumWidgets = %d, want 2", g.NumWidgets())
	}
	if g.Parent(cid) != pid {
		t.Errorf("Parent(child) = %d, want %d", g.Parent(cid), pid)
	}
	if kids := g.Children(pid); len(kids) != 1 || kids[0] != cid {
		t.Errorf("Children(parent) = %v, want [%d]", kids, cid)
	}
}

func TestAddWidgetDetached(t *testing.T) {
	g := NewGraph()
	id := g.AddWidget(testWidget("floating"), NoWidget)

	if g.Parent(id) != NoWidget {
		t.Errorf("Parent = %d, want NoWidget", g.Parent(id))
	}
	if g.Children(id) != nil {
		t.Errorf("Children = %v, want nil", g.Children(id))
	}
}

func TestAddWidgetUnknownParentDetaches(t *testing.T) {
	g := NewGraph()
	id := g.AddWidget(testWidget("orphan"), WidgetID(999999))

	if g.Parent(id) != NoWidget {
		t.Errorf("Parent = %d, want NoWidget for unknown parent", g.Parent(id))
	}
}

func TestAddWidgetNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil widget")
		}
	}()
	NewGraph().AddWidget(nil, NoWidget)
}

func TestAddWidgetNoIDPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for widget without an ID")
		}
	}()
	NewGraph().AddWidget(&WidgetContainer{}, NoWidget)
}

func TestAddWidgetDuplicatePanics(t *testing.T) {
	g := NewGraph()
	w := testWidget("w")
	g.AddWidget(w, NoWidget)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate insert")
		}
	}()
	g.AddWidget(w, NoWidget)
}

// --- Lookup ---

func TestWidgetLookup(t *testing.T) {
	g := NewGraph()
	w := testWidget("w")
	id := g.AddWidget(w, NoWidget)

	if got := g.Widget(id); got != &w.Widget {
		t.Error("Widget(id) did not return the stored widget")
	}
	if got := g.Container(id); got != w {
		t.Error("Container(id) did not return the stored container")
	}
	if g.Widget(WidgetID(123456)) != nil {
		t.Error("Widget(unknown) should be nil")
	}
	if g.Container(WidgetID(123456)) != nil {
		t.Error("Container(unknown) should be nil")
	}
}

func TestUnknownIDHasNoRelatives(t *testing.T) {
	g := NewGraph()
	g.AddWidget(testWidget("w"), NoWidget)
	unknown := WidgetID(424242)

	if g.Parent(unknown) != NoWidget {
		t.Errorf("Parent(unknown) = %d, want NoWidget", g.Parent(unknown))
	}
	if g.Children(unknown) != nil {
		t.Errorf("Children(unknown) = %v, want nil", g.Children(unknown))
	}
	for range g.DFS(unknown) {
		t.Fatal("DFS(unknown) yielded a widget")
	}
}

// --- RemoveWidget ---

func TestRemoveWidgetLeaf(t *testing.T) {
	g := NewGraph()
	pid := g.AddWidget(testWidget("parent"), NoWidget)
	child := testWidget("child")
	cid := g.AddWidget(child, pid)

	got := g.RemoveWidget(cid)
	if got != child {
		t.Error("RemoveWidget did not return the removed container")
	}
	if g.NumWidgets() != 1 {
		t.Errorf("NumWidgets = %d, want 1", g.NumWidgets())
	}
	if g.Children(pid) != nil {
		t.Errorf("Children(parent) = %v, want nil", g.Children(pid))
	}
	if g.Widget(cid) != nil {
		t.Error("removed widget still resolvable")
	}
}

func TestRemoveWidgetUnknown(t *testing.T) {
	g := NewGraph()
	if got := g.RemoveWidget(WidgetID(987)); got != nil {
		t.Errorf("RemoveWidget(unknown) = %v, want nil", got)
	}
}

func TestRemoveWidgetCascades(t *testing.T) {
	// root > a > b > c, plus sibling d under a. Removing a takes b, c, d
	// with it; root stays.
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)
	b := g.AddWidget(testWidget("b"), a)
	c := g.AddWidget(testWidget("c"), b)
	d := g.AddWidget(testWidget("d"), a)

	g.RemoveWidget(a)

	if g.NumWidgets() != 1 {
		t.Fatalf("NumWidgets = %d, want 1", g.NumWidgets())
	}
	for _, id := range []WidgetID{a, b, c, d} {
		if g.Widget(id) != nil {
			t.Errorf("widget %d still resolvable after subtree removal", id)
		}
	}
	if g.Children(root) != nil {
		t.Errorf("Children(root) = %v, want nil", g.Children(root))
	}
}

func TestSlotReuseNeverReusesIDs(t *testing.T) {
	g := NewGraph()
	first := g.AddWidget(testWidget("first"), NoWidget)
	g.RemoveWidget(first)

	second := g.AddWidget(testWidget("second"), NoWidget)
	if second == first {
		t.Fatalf("ID %d was reused", first)
	}
	if g.Widget(first) != nil {
		t.Error("stale ID resolves after its slot was recycled")
	}
	if g.Widget(second) == nil {
		t.Error("new widget not resolvable")
	}
}

// --- Reparent ---

func TestReparentMovesSubtree(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)
	b := g.AddWidget(testWidget("b"), root)
	leaf := g.AddWidget(testWidget("leaf"), a)

	if !g.Reparent(a, b) {
		t.Fatal("Reparent returned false for known widget")
	}
	if g.Parent(a) != b {
		t.Errorf("Parent(a) = %d, want %d", g.Parent(a), b)
	}
	if kids := g.Children(root); len(kids) != 1 || kids[0] != b {
		t.Errorf("Children(root) = %v, want [%d]", kids, b)
	}
	// The subtree under a moved intact.
	if g.Parent(leaf) != a {
		t.Errorf("Parent(leaf) = %d, want %d", g.Parent(leaf), a)
	}
}

func TestReparentToNoWidgetDetaches(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)

	g.Reparent(a, NoWidget)
	if g.Parent(a) != NoWidget {
		t.Errorf("Parent(a) = %d, want NoWidget", g.Parent(a))
	}
	if g.Children(root) != nil {
		t.Errorf("Children(root) = %v, want nil", g.Children(root))
	}
	// Detached widgets stay resolvable.
	if g.Widget(a) == nil {
		t.Error("detached widget not resolvable")
	}
}

func TestReparentUnknown(t *testing.T) {
	g := NewGraph()
	if g.Reparent(WidgetID(555), NoWidget) {
		t.Error("Reparent(unknown) = true, want false")
	}
}

func TestReparentCyclePanics(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)
	b := g.AddWidget(testWidget("b"), a)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle-creating reparent")
		}
	}()
	g.Reparent(a, b) // b is inside a's subtree
}

func TestReparentToSelfPanics(t *testing.T) {
	g := NewGraph()
	a := g.AddWidget(testWidget("a"), NoWidget)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for self-reparent")
		}
	}()
	g.Reparent(a, a)
}

// --- Traversal ---

func TestDFSPreOrder(t *testing.T) {
	//        root
	//       /    \
	//      a      b
	//     / \      \
	//    a1  a2     b1
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)
	b := g.AddWidget(testWidget("b"), root)
	a1 := g.AddWidget(testWidget("a1"), a)
	a2 := g.AddWidget(testWidget("a2"), a)
	b1 := g.AddWidget(testWidget("b1"), b)

	var got []WidgetID
	for id := range g.DFS(root) {
		got = append(got, id)
	}
	want := []WidgetID{root, a, a1, a2, b, b1}
	if !slices.Equal(got, want) {
		t.Errorf("DFS order = %v, want %v", got, want)
	}
}

func TestDFSRestartable(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	g.AddWidget(testWidget("a"), root)

	seq := g.DFS(root)
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Errorf("walk counts = %d, %d, want 2, 2", first, second)
	}
}

func TestDFSEarlyStop(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	g.AddWidget(testWidget("a"), root)
	g.AddWidget(testWidget("b"), root)

	count := 0
	for range g.DFS(root) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("visited %d widgets after break, want 2", count)
	}
}

func TestDFSSubtreeOnly(t *testing.T) {
	g := NewGraph()
	root := g.AddWidget(testWidget("root"), NoWidget)
	a := g.AddWidget(testWidget("a"), root)
	a1 := g.AddWidget(testWidget("a1"), a)
	g.AddWidget(testWidget("b"), root) // sibling, not in a's subtree

	var got []WidgetID
	for id := range g.DFS(a) {
		got = append(got, id)
	}
	want := []WidgetID{a, a1}
	if !slices.Equal(got, want) {
		t.Errorf("DFS(a) = %v, want %v", got, want)
	}
}

// --- WidgetsUnderCursor ---

// fixedHit pins a widget's hit test to a fixed rectangle, sidestepping the
// solver for traversal-order tests.
func fixedHit(w *WidgetContainer, r Rect) {
	w.HitTestFn = func(p Vec2, bounds Rect) bool {
		return r.Contains(p.X, p.Y)
	}
}

func TestWidgetsUnderCursorDeepestFirst(t *testing.T) {
	// root covers everything; a covers the left half with child a1; b covers
	// the right half. Cursor in a1: expect a1, a, root — children before
	// parents, b absent.
	g := NewGraph()
	layout := NewLayout()

	rootW := testWidget("root")
	aW := testWidget("a")
	a1W := testWidget("a1")
	bW := testWidget("b")
	fixedHit(rootW, Rect{0, 0, 200, 100})
	fixedHit(aW, Rect{0, 0, 100, 100})
	fixedHit(a1W, Rect{10, 10, 30, 30})
	fixedHit(bW, Rect{100, 0, 100, 100})

	root := g.AddWidget(rootW, NoWidget)
	a := g.AddWidget(aW, root)
	a1 := g.AddWidget(a1W, a)
	g.AddWidget(bW, root)

	var got []WidgetID
	for id := range g.WidgetsUnderCursor(root, Vec2{X: 20, Y: 20}, layout) {
		got = append(got, id)
	}
	want := []WidgetID{a1, a, root}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestWidgetsUnderCursorSiblingOrder(t *testing.T) {
	// Two overlapping siblings: insertion order decides who is yielded
	// first.
	g := NewGraph()
	layout := NewLayout()

	rootW := testWidget("root")
	firstW := testWidget("first")
	secondW := testWidget("second")
	overlap := Rect{0, 0, 50, 50}
	fixedHit(rootW, overlap)
	fixedHit(firstW, overlap)
	fixedHit(secondW, overlap)

	root := g.AddWidget(rootW, NoWidget)
	first := g.AddWidget(firstW, root)
	second := g.AddWidget(secondW, root)

	var got []WidgetID
	for id := range g.WidgetsUnderCursor(root, Vec2{X: 25, Y: 25}, layout) {
		got = append(got, id)
	}
	want := []WidgetID{first, second, root}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestWidgetsUnderCursorMissYieldsNothing(t *testing.T) {
	g := NewGraph()
	layout := NewLayout()
	w := testWidget("w")
	fixedHit(w, Rect{0, 0, 10, 10})
	root := g.AddWidget(w, NoWidget)

	for range g.WidgetsUnderCursor(root, Vec2{X: 500, Y: 500}, layout) {
		t.Fatal("nothing should hit at (500, 500)")
	}
}
