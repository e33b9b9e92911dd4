package lurk

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Ms     int    `json:"ms,omitempty"`
	State  string `json:"state,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, clock advances and state assertions
// across frames. Attach to a Host via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	clock     *ManualClock
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script. clock is required by "advance"
// steps and may be nil otherwise.
func LoadTestScript(jsonData []byte, clock *ManualClock) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "pointer", "hide", "wait", "screenshot":
		case "advance":
			if clock == nil {
				return nil, fmt.Errorf("parse test script: step %d: advance needs a manual clock", i)
			}
			if st.Ms < 0 {
				return nil, fmt.Errorf("parse test script: step %d: negative ms", i)
			}
		case "expect":
			if _, err := ParseStateKind(st.State); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, clock: clock}, nil
}

// SetTestRunner attaches a TestRunner to the host. The runner's step method
// is called from Host.Update before processInput each frame.
func (h *Host) SetTestRunner(runner *TestRunner) {
	h.testRunner = runner
}

// Done reports whether all steps in the test script have been executed, or
// an expectation failed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first failed expectation, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Host.Update.
func (r *TestRunner) step(h *Host) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(h.injectQueue) > 0 || len(h.events) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "click":
		h.InjectClick()
	case "pointer":
		h.InjectPointerClick(st.X, st.Y)
	case "hide":
		h.InjectHide()
	case "advance":
		r.clock.Advance(time.Duration(st.Ms) * time.Millisecond)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		want, _ := ParseStateKind(st.State)
		if got := h.creature.Kind(); got != want {
			r.err = fmt.Errorf("step %d: expected state %s, got %s", r.cursor-1, want, got)
			r.done = true
			return
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 && len(h.events) == 0 {
		r.done = true
	}
}
