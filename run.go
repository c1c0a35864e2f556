package limn

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int // window width in pixels; 640 if zero
	Height    int // window height in pixels; 480 if zero
	Resizable bool
	ShowFPS   bool // attach an FPS widget to the root
}

// game adapts a UI to the ebiten.Game interface: it converts real mouse
// state into events, forwards window resizes to the layout engine, and
// drives the per-tick update.
type game struct {
	ui         *UI
	width      int
	height     int
	prevCursor Vec2
	hasCursor  bool
	prevDown   [3]bool
}

var gameButtons = [3]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

func (g *game) Update() error {
	mx, my := ebiten.CursorPosition()
	cursor := Vec2{X: float64(mx), Y: float64(my)}
	if !g.hasCursor || cursor != g.prevCursor {
		g.ui.HandleEvent(Event{Kind: EventPointerMove, Pos: cursor})
		g.prevCursor = cursor
		g.hasCursor = true
	}

	// Edge-detect each button so press/release fire exactly once.
	for i, b := range gameButtons {
		down := ebiten.IsMouseButtonPressed(b)
		if down && !g.prevDown[i] {
			g.ui.HandleEvent(Event{Kind: EventPress, Button: MouseButton(i)})
		}
		if !down && g.prevDown[i] {
			g.ui.HandleEvent(Event{Kind: EventRelease, Button: MouseButton(i)})
		}
		g.prevDown[i] = down
	}

	return g.ui.Update(1.0 / float64(ebiten.TPS()))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		// Suggesting the root edges cannot fail: they were registered as
		// edit variables in New.
		_ = g.ui.ResizeWindow(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the UI until the window is closed. It
// installs any pending constraints before the first frame, so a
// construction-time solver rejection surfaces here rather than mid-loop.
func Run(ui *UI, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "limn"
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if cfg.ShowFPS {
		fps := NewFPSWidget()
		ui.AddWidget(fps, ui.Root())
		root := ui.Container(ui.Root())
		fps.Layout.AlignLeft(&root.Layout, 4)
		fps.Layout.AlignTop(&root.Layout, 4)
	}

	if err := ui.ResizeWindow(float64(cfg.Width), float64(cfg.Height)); err != nil {
		return err
	}
	if err := ui.Init(); err != nil {
		return err
	}

	return ebiten.RunGame(&game{ui: ui, width: cfg.Width, height: cfg.Height})
}
