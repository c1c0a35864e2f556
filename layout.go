package limn

import (
	"github.com/phanxgames/limn/cassowary"
)

// LayoutVars holds one widget's four edge variables plus its authored
// constraints. Authoring methods only record constraint descriptors; nothing
// touches the solver until the UI installs them (Init), so widgets can be
// described in any order before a solve.
type LayoutVars struct {
	Left, Top, Right, Bottom *cassowary.Variable

	// containment is re-authored on every attach; authored persists for the
	// widget's lifetime.
	containment []*cassowary.Constraint
	authored    []*cassowary.Constraint
}

// NewLayoutVars creates edge variables named after the widget's debug label
// and authors the non-negative-extent constraints (right >= left,
// bottom >= top).
func NewLayoutVars(name string) LayoutVars {
	lv := LayoutVars{
		Left:   cassowary.NewVariable(name + ".left"),
		Top:    cassowary.NewVariable(name + ".top"),
		Right:  cassowary.NewVariable(name + ".right"),
		Bottom: cassowary.NewVariable(name + ".bottom"),
	}
	lv.authored = append(lv.authored,
		cassowary.GE(cassowary.Var(lv.Right), cassowary.Var(lv.Left), cassowary.Required),
		cassowary.GE(cassowary.Var(lv.Bottom), cassowary.Var(lv.Top), cassowary.Required),
	)
	return lv
}

// BoundBy replaces the containment constraints: every edge stays inside the
// parent's matching edge. The UI authors this automatically when a widget is
// attached or reparented.
func (lv *LayoutVars) BoundBy(parent *LayoutVars) {
	lv.containment = []*cassowary.Constraint{
		cassowary.GE(cassowary.Var(lv.Left), cassowary.Var(parent.Left), cassowary.Required),
		cassowary.GE(cassowary.Var(lv.Top), cassowary.Var(parent.Top), cassowary.Required),
		cassowary.LE(cassowary.Var(lv.Right), cassowary.Var(parent.Right), cassowary.Required),
		cassowary.LE(cassowary.Var(lv.Bottom), cassowary.Var(parent.Bottom), cassowary.Required),
	}
}

// clearContainment drops the containment constraints, used when a widget is
// detached from its parent.
func (lv *LayoutVars) clearContainment() {
	lv.containment = nil
}

// Size prefers the given width and height (Strong, so required constraints
// can still squeeze the widget).
func (lv *LayoutVars) Size(w, h float64) {
	lv.authored = append(lv.authored,
		cassowary.EQ(cassowary.Var(lv.Right).Minus(cassowary.Var(lv.Left)), cassowary.Const(w), cassowary.Strong),
		cassowary.EQ(cassowary.Var(lv.Bottom).Minus(cassowary.Var(lv.Top)), cassowary.Const(h), cassowary.Strong),
	)
}

// MinSize requires the widget to be at least w by h.
func (lv *LayoutVars) MinSize(w, h float64) {
	lv.authored = append(lv.authored,
		cassowary.GE(cassowary.Var(lv.Right).Minus(cassowary.Var(lv.Left)), cassowary.Const(w), cassowary.Required),
		cassowary.GE(cassowary.Var(lv.Bottom).Minus(cassowary.Var(lv.Top)), cassowary.Const(h), cassowary.Required),
	)
}

// MaxSize requires the widget to be at most w by h.
func (lv *LayoutVars) MaxSize(w, h float64) {
	lv.authored = append(lv.authored,
		cassowary.LE(cassowary.Var(lv.Right).Minus(cassowary.Var(lv.Left)), cassowary.Const(w), cassowary.Required),
		cassowary.LE(cassowary.Var(lv.Bottom).Minus(cassowary.Var(lv.Top)), cassowary.Const(h), cassowary.Required),
	)
}

// AlignLeft pins the left edge padding pixels inside other's left edge.
func (lv *LayoutVars) AlignLeft(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.EQ(cassowary.Var(lv.Left), cassowary.Var(other.Left).Plus(cassowary.Const(padding)), cassowary.Required))
}

// AlignRight pins the right edge padding pixels inside other's right edge.
func (lv *LayoutVars) AlignRight(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.EQ(cassowary.Var(lv.Right), cassowary.Var(other.Right).Minus(cassowary.Const(padding)), cassowary.Required))
}

// AlignTop pins the top edge padding pixels inside other's top edge.
func (lv *LayoutVars) AlignTop(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.EQ(cassowary.Var(lv.Top), cassowary.Var(other.Top).Plus(cassowary.Const(padding)), cassowary.Required))
}

// AlignBottom pins the bottom edge padding pixels inside other's bottom edge.
func (lv *LayoutVars) AlignBottom(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.EQ(cassowary.Var(lv.Bottom), cassowary.Var(other.Bottom).Minus(cassowary.Const(padding)), cassowary.Required))
}

// CenterHorizontal centers the widget horizontally within other.
func (lv *LayoutVars) CenterHorizontal(other *LayoutVars) {
	lv.authored = append(lv.authored,
		cassowary.EQ(
			cassowary.Var(lv.Left).Plus(cassowary.Var(lv.Right)),
			cassowary.Var(other.Left).Plus(cassowary.Var(other.Right)),
			cassowary.Required))
}

// CenterVertical centers the widget vertically within other.
func (lv *LayoutVars) CenterVertical(other *LayoutVars) {
	lv.authored = append(lv.authored,
		cassowary.EQ(
			cassowary.Var(lv.Top).Plus(cassowary.Var(lv.Bottom)),
			cassowary.Var(other.Top).Plus(cassowary.Var(other.Bottom)),
			cassowary.Required))
}

// Below keeps the top edge at least padding pixels under other's bottom edge.
func (lv *LayoutVars) Below(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.GE(cassowary.Var(lv.Top), cassowary.Var(other.Bottom).Plus(cassowary.Const(padding)), cassowary.Required))
}

// RightOf keeps the left edge at least padding pixels right of other's right
// edge.
func (lv *LayoutVars) RightOf(other *LayoutVars, padding float64) {
	lv.authored = append(lv.authored,
		cassowary.GE(cassowary.Var(lv.Left), cassowary.Var(other.Right).Plus(cassowary.Const(padding)), cassowary.Required))
}

// Constrain appends raw constraints for anything the named helpers don't
// cover. Constraints may reference any other widget's variables.
func (lv *LayoutVars) Constrain(cs ...*cassowary.Constraint) {
	lv.authored = append(lv.authored, cs...)
}

// all returns every constraint the widget wants installed, containment first.
func (lv *LayoutVars) all() []*cassowary.Constraint {
	out := make([]*cassowary.Constraint, 0, len(lv.containment)+len(lv.authored))
	out = append(out, lv.containment...)
	out = append(out, lv.authored...)
	return out
}

// Layout wraps a single solver shared by the whole widget tree, so
// constraints may relate any two widgets' variables. It tracks which
// constraints were installed per widget so removal can unwind them.
type Layout struct {
	solver    *cassowary.Solver
	installed map[WidgetID][]*cassowary.Constraint
}

// NewLayout creates an empty layout engine.
func NewLayout() *Layout {
	return &Layout{
		solver:    cassowary.NewSolver(),
		installed: make(map[WidgetID][]*cassowary.Constraint),
	}
}

// AddEditVariable registers v for SuggestValue at the given strength.
func (l *Layout) AddEditVariable(v *cassowary.Variable, strength cassowary.Strength) error {
	return l.solver.AddEditVariable(v, strength)
}

// RemoveEditVariable unregisters an edit variable.
func (l *Layout) RemoveEditVariable(v *cassowary.Variable) error {
	return l.solver.RemoveEditVariable(v)
}

// SuggestValue pushes a new value for an edit variable and re-solves. It
// fails when v was never registered with AddEditVariable.
func (l *Layout) SuggestValue(v *cassowary.Variable, value float64) error {
	return l.solver.SuggestValue(v, value)
}

// Value returns the current solved value of v.
func (l *Layout) Value(v *cassowary.Variable) float64 {
	return l.solver.Value(v)
}

// AddConstraints installs constraints not tied to any widget's lifetime.
// The first rejection is returned; never ignore it — an unsatisfiable or
// duplicate constraint means the layout program is wrong.
func (l *Layout) AddConstraints(cs ...*cassowary.Constraint) error {
	for _, cn := range cs {
		if err := l.solver.AddConstraint(cn); err != nil {
			return err
		}
	}
	return nil
}

// Bounds resolves a widget's rectangle from its edge variables.
func (l *Layout) Bounds(lv *LayoutVars) Rect {
	left := l.solver.Value(lv.Left)
	top := l.solver.Value(lv.Top)
	return Rect{
		X:      left,
		Y:      top,
		Width:  l.solver.Value(lv.Right) - left,
		Height: l.solver.Value(lv.Bottom) - top,
	}
}

// install adds the widget's not-yet-installed constraints to the solver.
// Constraints added before an error stay tracked so a later uninstall
// unwinds them.
func (l *Layout) install(id WidgetID, lv *LayoutVars) error {
	for _, cn := range lv.all() {
		if l.solver.HasConstraint(cn) {
			continue
		}
		if err := l.solver.AddConstraint(cn); err != nil {
			return err
		}
		l.installed[id] = append(l.installed[id], cn)
	}
	return nil
}

// uninstall removes every constraint previously installed for the widget.
func (l *Layout) uninstall(id WidgetID) {
	for _, cn := range l.installed[id] {
		if err := l.solver.RemoveConstraint(cn); err != nil {
			panic("limn: internal layout error: " + err.Error())
		}
	}
	delete(l.installed, id)
}

// removeWidget unwinds everything the solver holds for one widget: its
// installed constraints and any edit variables on its edges.
func (l *Layout) removeWidget(id WidgetID, lv *LayoutVars) {
	l.uninstall(id)
	for _, v := range [...]*cassowary.Variable{lv.Left, lv.Top, lv.Right, lv.Bottom} {
		if l.solver.HasEditVariable(v) {
			if err := l.solver.RemoveEditVariable(v); err != nil {
				panic("limn: internal layout error: " + err.Error())
			}
		}
	}
}

// installedCount reports how many constraints are currently installed across
// all widgets. Debug stats only.
func (l *Layout) installedCount() int {
	n := 0
	for _, cs := range l.installed {
		n += len(cs)
	}
	return n
}
