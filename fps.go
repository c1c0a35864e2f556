package limn

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsDrawable repaints its backing image at most every half second from the
// widget's update ticks.
type fpsDrawable struct {
	img   *ebiten.Image
	since float64
}

// NewFPSWidget creates a widget that displays the current FPS and TPS in the
// top-left of its bounds, sized 100x32. Attach it anywhere and align it like
// any other widget.
func NewFPSWidget() *WidgetContainer {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	d := &fpsDrawable{img: ebiten.NewImage(100, 32), since: 1}

	w := NewWidget("fps", d, drawFPS)
	w.Layout.Size(100, 32)
	w.On(EventUpdate, func(ev Event, drawable any) (EventKind, bool) {
		f := drawable.(*fpsDrawable)
		f.since += ev.DT
		if f.since < 0.5 {
			return EventNone, false
		}
		f.since = 0

		f.img.Clear()
		// Semi-transparent background for readability
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
		return EventNone, false
	})
	return w
}

func drawFPS(drawable any, bounds Rect, res *Resources, target *ebiten.Image) {
	d := drawable.(*fpsDrawable)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bounds.X, bounds.Y)
	target.DrawImage(d.img, op)
}
