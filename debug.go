package limn

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set UI debug flag so that graph
// operations (which lack a UI pointer) can check it cheaply. Only valid with
// a single UI; multiple UIs with differing debug modes will reflect
// whichever called SetDebugMode last.
var globalDebug bool

// debugOutlineColor is the stroke drawn over every widget's solved bounds
// when debug bounds are enabled.
var debugOutlineColor = Color{R: 0, G: 1, B: 1, A: 1}

// debugf prints a debug-gated message to stderr.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[limn] "+format+"\n", args...)
}

// debugLogInit prints constraint-install stats to stderr.
func (u *UI) debugLogInit(elapsed time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[limn] init: %v | widgets: %d | constraints: %d\n",
		elapsed, u.graph.NumWidgets(), u.layout.installedCount())
}

// debugLogDraw prints per-frame draw stats to stderr.
func (u *UI) debugLogDraw(elapsed time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[limn] draw: %v | widgets: %d | cached glyphs: %d\n",
		elapsed, u.graph.NumWidgets(), u.res.NumGlyphs())
}

// debugCheckIntegrity verifies that the ID index and the slot arena agree:
// every indexed ID points at a slot holding that ID, the live slot count
// matches the index size, and the null sentinel is untouched. The two
// structures mutate together; divergence is a bug, so this panics.
func (g *Graph) debugCheckIntegrity() {
	for id, slot := range g.index {
		if slot <= 0 || slot >= len(g.nodes) {
			panic(fmt.Sprintf("limn debug: widget %d indexed at invalid slot %d", id, slot))
		}
		if g.nodes[slot].id != id {
			panic(fmt.Sprintf("limn debug: widget %d indexed at slot %d holding widget %d",
				id, slot, g.nodes[slot].id))
		}
	}
	live := 0
	for slot := 1; slot < len(g.nodes); slot++ {
		if g.nodes[slot].container != nil {
			live++
		}
	}
	if live != len(g.index) {
		panic(fmt.Sprintf("limn debug: %d live slots but %d indexed widgets", live, len(g.index)))
	}
	if g.nodes[0].container != nil || len(g.nodes[0].children) != 0 || g.nodes[0].id != NoWidget {
		panic("limn debug: null sentinel slot was mutated")
	}
}

// debugCheckTreeDepth warns on stderr when a widget sits deeper than the
// threshold.
const debugMaxTreeDepth = 32

func (g *Graph) debugCheckTreeDepth(id WidgetID) {
	depth := 0
	for slot := g.slotOf(id); slot != 0; slot = g.nodes[slot].parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[limn] warning: tree depth %d exceeds %d (widget %q)\n",
			depth, debugMaxTreeDepth, g.Widget(id).Name)
	}
}
