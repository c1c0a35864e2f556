package limn

import (
	"github.com/phanxgames/limn/cassowary"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously, typically a
// drawable's color components. Call Update(dt) each tick (an EventUpdate
// handler is the natural place).
//
// There is no global animation manager — users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue creates a TweenGroup animating a single field from its current
// value to the given target over the specified duration.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenColor creates a TweenGroup animating all four components of a color
// to the target color over the specified duration.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// EditTween animates a layout edit variable by suggesting interpolated
// values — panel slides and window-size animations run through the solver,
// so every dependent widget follows.
type EditTween struct {
	tween  *gween.Tween
	layout *Layout
	v      *cassowary.Variable
	Done   bool
}

// NewEditTween animates v from its current solved value to the given target.
// The variable must already be registered with Layout.AddEditVariable.
func NewEditTween(layout *Layout, v *cassowary.Variable, to float64, duration float32, fn ease.TweenFunc) *EditTween {
	return &EditTween{
		tween:  gween.New(float32(layout.Value(v)), float32(to), duration, fn),
		layout: layout,
		v:      v,
	}
}

// Update advances the tween by dt seconds and suggests the interpolated
// value. The error is the solver's (unregistered edit variable).
func (t *EditTween) Update(dt float32) error {
	if t.Done {
		return nil
	}
	val, finished := t.tween.Update(dt)
	if err := t.layout.SuggestValue(t.v, float64(val)); err != nil {
		return err
	}
	t.Done = finished
	return nil
}
