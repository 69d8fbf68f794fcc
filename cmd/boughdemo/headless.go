package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/bough/canvas"
	"github.com/phanxgames/bough/gpu"
)

// headlessDT is the simulated frame time when no window drives the loop.
const headlessDT = 1.0 / 60

// runHeadless steps the demo for frames frames, drawing each through the
// software renderer. Screenshots requested by the script, and the final
// frame, are written as PNGs into dir.
func runHeadless(d *demo, cfg *Config, frames int, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	r := canvas.NewRenderer(cfg.Window.Width, cfg.Window.Height)

	var pending []string
	d.screenshot = func(label string) { pending = append(pending, label) }

	var written []string
	save := func(frame int, label string) error {
		path := filepath.Join(dir, fmt.Sprintf("%04d_%s.png", frame, gpu.SanitizeLabel(label)))
		if err := r.SavePNG(path); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		written = append(written, path)
		d.log.WithFields(logrus.Fields{"frame": frame, "path": path}).Debug("headless: saved")
		return nil
	}

	pb := progressbar.Default(int64(frames), "rendering")
	defer pb.Close()

	for i := 0; i < frames; i++ {
		d.step(headlessDT)
		r.Render(d.scene, cfg.Window.ClearColor)
		for _, label := range pending {
			if err := save(i, label); err != nil {
				return written, err
			}
		}
		pending = pending[:0]
		pb.Add(1)
	}
	if err := save(frames, "final"); err != nil {
		return written, err
	}

	st := d.scene.Frame().Stats()
	d.log.WithFields(logrus.Fields{
		"frames":      frames,
		"nodes_drawn": st.NodesDrawn,
		"masks":       st.EffectScopes,
		"quads":       r.Draws(),
		"script_done": d.runner.Done(),
	}).Info("headless: done")
	return written, nil
}
