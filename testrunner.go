package limn

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TestStep is a single scripted action. Which fields matter depends on the
// action:
//
//	move, press, release, click  — x, y
//	resize                       — w, h
//	screenshot                   — label
//	wait                         — frames (defaults to 1)
type TestStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	W      int     `yaml:"w,omitempty"`
	H      int     `yaml:"h,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// TestRunner replays a scripted sequence of actions against a UI, one per
// Update tick. It drives the same injection queue as the Inject helpers, so a
// scripted click is indistinguishable from a real one. Attach it with
// SetTestRunner and poll Done to know when the script has finished.
type TestRunner struct {
	steps     []TestStep
	index     int
	waitCount int
	done      bool
}

// LoadTestScript reads a YAML test script from disk. The file must contain a
// top-level "steps" list with at least one entry:
//
//	steps:
//	  - {action: click, x: 120, y: 80}
//	  - {action: wait, frames: 2}
//	  - {action: screenshot, label: after-click}
func LoadTestScript(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("limn: read test script %s: %w", path, err)
	}
	tr, err := ParseTestScript(data)
	if err != nil {
		return nil, fmt.Errorf("limn: parse test script %s: %w", path, err)
	}
	return tr, nil
}

// ParseTestScript builds a TestRunner from raw YAML script data.
func ParseTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []TestStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("script has no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a script to the UI. The runner advances by one
// action per Update; pass nil to detach.
func (u *UI) SetTestRunner(tr *TestRunner) {
	u.testRunner = tr
}

// Done reports whether the script has run to completion.
func (tr *TestRunner) Done() bool {
	return tr.done
}

// step advances the script by at most one action per tick. Events injected
// by a previous action drain first, so every action observes the effects of
// the one before it.
func (tr *TestRunner) step(u *UI) {
	if tr.done {
		return
	}
	if u.PendingInjected() > 0 {
		return
	}
	if tr.waitCount > 0 {
		tr.waitCount--
		return
	}
	if tr.index >= len(tr.steps) {
		tr.done = true
		return
	}

	s := tr.steps[tr.index]
	tr.index++

	switch s.Action {
	case "move":
		u.InjectMove(s.X, s.Y)
	case "press":
		u.InjectPress(s.X, s.Y)
	case "release":
		u.InjectRelease(s.X, s.Y)
	case "click":
		u.InjectClick(s.X, s.Y)
	case "resize":
		if err := u.ResizeWindow(float64(s.W), float64(s.H)); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[limn] test script: resize: %v\n", err)
		}
	case "screenshot":
		u.Screenshot(s.Label)
	case "wait":
		frames := s.Frames
		if frames < 1 {
			frames = 1
		}
		tr.waitCount = frames
	default:
		_, _ = fmt.Fprintf(os.Stderr, "[limn] test script: unknown action %q\n", s.Action)
	}
}
