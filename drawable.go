package limn

import "github.com/hajimehoshi/ebiten/v2"

// The toolkit treats drawables as opaque state; these primitives cover the
// common cases and double as the reference client contract.

// EmptyDrawable has no visual output. The root widget uses it.
type EmptyDrawable struct{}

// DrawNothing is the DrawFunc for invisible widgets.
func DrawNothing(drawable any, bounds Rect, res *Resources, target *ebiten.Image) {}

// RectDrawable fills the widget's bounds with a solid color.
type RectDrawable struct {
	Color Color
}

// DrawRect renders a RectDrawable.
func DrawRect(drawable any, bounds Rect, res *Resources, target *ebiten.Image) {
	d := drawable.(*RectDrawable)
	fillRect(target, bounds, d.Color)
}

// TextDrawable renders a string with a registered font. The glyph image is
// rasterized white once per (font, text) pair and tinted at draw time.
type TextDrawable struct {
	Text    string
	FontKey string
	Color   Color
}

// DrawText renders a TextDrawable at the top-left of the widget's bounds.
// Nothing is drawn when the font is missing or the text is empty.
func DrawText(drawable any, bounds Rect, res *Resources, target *ebiten.Image) {
	d := drawable.(*TextDrawable)
	img := res.RenderText(d.FontKey, d.Text)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bounds.X, bounds.Y)
	a := float32(d.Color.A)
	op.ColorScale.Scale(float32(d.Color.R)*a, float32(d.Color.G)*a, float32(d.Color.B)*a, a)
	target.DrawImage(img, op)
}

// ImageDrawable stretches a registered image into the widget's bounds.
type ImageDrawable struct {
	Key string
}

// DrawImage renders an ImageDrawable. Nothing is drawn when the image is
// missing or the bounds are degenerate.
func DrawImage(drawable any, bounds Rect, res *Resources, target *ebiten.Image) {
	d := drawable.(*ImageDrawable)
	img := res.Image(d.Key)
	if img == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bounds.Width/float64(b.Dx()), bounds.Height/float64(b.Dy()))
	op.GeoM.Translate(bounds.X, bounds.Y)
	target.DrawImage(img, op)
}

// NewRectWidget creates a widget drawing a solid rectangle.
func NewRectWidget(name string, c Color) *WidgetContainer {
	return NewWidget(name, &RectDrawable{Color: c}, DrawRect)
}

// NewTextWidget creates a widget drawing a string with the given font key.
func NewTextWidget(name, fontKey, content string, c Color) *WidgetContainer {
	return NewWidget(name, &TextDrawable{Text: content, FontKey: fontKey, Color: c}, DrawText)
}

// NewImageWidget creates a widget stretching a registered image into its
// bounds.
func NewImageWidget(name, key string) *WidgetContainer {
	return NewWidget(name, &ImageDrawable{Key: key}, DrawImage)
}

// fillRect draws a solid rectangle by scaling the shared white pixel.
// The tint is premultiplied at submission, matching Ebitengine's default
// color scale mode.
func fillRect(target *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	target.DrawImage(WhitePixel, op)
}

// strokeRect draws a 1px outline along the inside of r.
func strokeRect(target *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	fillRect(target, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, c)
	fillRect(target, Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}, c)
	fillRect(target, Rect{X: r.X, Y: r.Y, Width: 1, Height: r.Height}, c)
	fillRect(target, Rect{X: r.X + r.Width - 1, Y: r.Y, Width: 1, Height: r.Height}, c)
}
