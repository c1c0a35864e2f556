// Package limn is a retained-mode UI core for Ebitengine. Widgets live in an
// arena-backed tree, their rectangles are solved by an incremental cassowary
// constraint solver (package cassowary), and input flows through a two-phase
// dispatcher: a hit phase that walks the tree under the cursor, then a
// broadcast phase that delivers the events emitted by hit handlers to every
// widget registered for them.
//
// A minimal program builds a UI, adds widgets with constraints, and hands the
// whole thing to Run:
//
//	ui := limn.New(640, 480)
//	root := ui.Container(ui.Root())
//
//	box := limn.NewRectWidget("box", limn.Color{R: 0.2, G: 0.55, B: 0.9, A: 1})
//	box.Layout.Size(200, 120)
//	box.Layout.CenterHorizontal(&root.Layout)
//	box.Layout.CenterVertical(&root.Layout)
//	box.On(limn.EventPress, func(ev limn.Event, _ any) (limn.EventKind, bool) {
//		fmt.Println("pressed")
//		return limn.EventNone, false
//	})
//	ui.AddWidget(box, root.ID)
//
//	if err := limn.Run(ui, limn.RunConfig{Title: "box"}); err != nil {
//		log.Fatal(err)
//	}
//
// Layout is declarative: a widget's Layout field carries four edge variables
// (left, top, right, bottom) and helpers such as Size, AlignLeft, Below and
// CenterHorizontal that author constraints between them. Constraints are
// installed into the solver on Init and re-solved incrementally when the
// window resizes or an EditTween suggests new values, so a full relayout is
// never needed.
//
// Everything here is single-threaded and driven by the Ebitengine game loop:
// call Update and Draw from exactly one goroutine. The only goroutine the
// package itself starts is the asset watcher's, and it communicates through a
// channel drained during Update.
//
// Project site: https://phanxgames.github.io/limn/
package limn
