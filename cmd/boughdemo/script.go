package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bough"
)

// Step is one scripted action. Steps run one per frame except wait, which
// holds the script for Frames frames.
type Step struct {
	Action  string  `yaml:"action"`
	Label   string  `yaml:"label,omitempty"`
	Node    string  `yaml:"node,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	Alpha   float64 `yaml:"alpha,omitempty"`
	Seconds float32 `yaml:"seconds,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
}

func (s Step) validate() error {
	switch s.Action {
	case "wait", "screenshot", "scroll":
		return nil
	case "move", "fade", "hide", "show":
		if s.Node == "" {
			return fmt.Errorf("%s needs a node", s.Action)
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", s.Action)
}

// runner sequences scripted steps across frames.
type runner struct {
	steps     []Step
	cursor    int
	waitCount int
	done      bool
}

func newRunner(steps []Step) *runner {
	return &runner{steps: steps, done: len(steps) == 0}
}

// Done reports whether every step has run.
func (r *runner) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *runner) step(d *demo) {
	if r.done {
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
	log := d.log.WithFields(logrus.Fields{"step": r.cursor, "action": st.Action})

	var target *bough.Node
	if st.Node != "" {
		if target = d.lookup(st.Node); target == nil {
			log.WithField("node", st.Node).Warn("script: node not found")
		}
	}

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if d.screenshot != nil {
			d.screenshot(st.Label)
		}
	case "move":
		if target != nil {
			d.tweens = append(d.tweens, bough.TweenPosition(target, st.X, st.Y, st.Seconds, ease.InOutQuad))
		}
	case "fade":
		if target != nil {
			d.tweens = append(d.tweens, bough.TweenAlpha(target, st.Alpha, st.Seconds, ease.Linear))
		}
	case "hide", "show":
		if target != nil {
			target.SetVisible(st.Action == "show")
		}
	case "scroll":
		d.camera.ScrollTo(st.X, st.Y, st.Seconds, ease.OutCubic)
	}
	log.Debug("script: step")

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
