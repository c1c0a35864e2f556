package limn

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructors ---

func TestNewRectWidget(t *testing.T) {
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	w := NewRectWidget("box", c)

	d, ok := w.Drawable.(*RectDrawable)
	if !ok {
		t.Fatalf("Drawable = %T, want *RectDrawable", w.Drawable)
	}
	if d.Color != c {
		t.Errorf("Color = %v, want %v", d.Color, c)
	}
	if w.DrawFn == nil {
		t.Error("DrawFn not set")
	}
}

func TestNewTextWidget(t *testing.T) {
	w := NewTextWidget("label", "body", "hello", ColorWhite)

	d, ok := w.Drawable.(*TextDrawable)
	if !ok {
		t.Fatalf("Drawable = %T, want *TextDrawable", w.Drawable)
	}
	if d.Text != "hello" || d.FontKey != "body" || d.Color != ColorWhite {
		t.Errorf("drawable = %+v", d)
	}
}

func TestNewImageWidget(t *testing.T) {
	w := NewImageWidget("pic", "logo")

	d, ok := w.Drawable.(*ImageDrawable)
	if !ok {
		t.Fatalf("Drawable = %T, want *ImageDrawable", w.Drawable)
	}
	if d.Key != "logo" {
		t.Errorf("Key = %q, want logo", d.Key)
	}
}

// --- Draw functions (smoke: no panics on edge cases) ---

func TestDrawRectDegenerateBounds(t *testing.T) {
	target := ebiten.NewImage(64, 64)
	res := NewResources()
	d := &RectDrawable{Color: ColorWhite}

	DrawRect(d, Rect{0, 0, 0, 0}, res, target)
	DrawRect(d, Rect{10, 10, -5, 20}, res, target)
	DrawRect(&RectDrawable{Color: Color{1, 1, 1, 0}}, Rect{0, 0, 10, 10}, res, target)
	DrawRect(d, Rect{0, 0, 10, 10}, res, target)
}

func TestDrawTextMissingFont(t *testing.T) {
	target := ebiten.NewImage(64, 64)
	res := NewResources()
	d := &TextDrawable{Text: "hi", FontKey: "nope", Color: ColorWhite}
	DrawText(d, Rect{0, 0, 64, 64}, res, target) // must be a no-op
}

func TestDrawImageMissingKey(t *testing.T) {
	target := ebiten.NewImage(64, 64)
	res := NewResources()
	d := &ImageDrawable{Key: "nope"}
	DrawImage(d, Rect{0, 0, 64, 64}, res, target) // must be a no-op
}

func TestDrawImageStretches(t *testing.T) {
	target := ebiten.NewImage(64, 64)
	res := NewResources()
	res.AddImage("logo", ebiten.NewImage(8, 8))
	d := &ImageDrawable{Key: "logo"}
	DrawImage(d, Rect{0, 0, 32, 16}, res, target)
	DrawImage(d, Rect{0, 0, 0, 16}, res, target) // degenerate, skipped
}

// --- UI.Draw smoke ---

func TestUIDrawTree(t *testing.T) {
	u := New(64, 64)
	u.ClearColor = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	box := pinBox(t, u, "box", Rect{4, 4, 16, 16})
	_ = box
	if err := u.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	u.SetDebugBounds(true)
	defer u.SetDebugBounds(false)
	target := ebiten.NewImage(64, 64)
	u.Draw(target) // whole tree renders without panicking
}
