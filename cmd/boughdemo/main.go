// Command boughdemo shows a bough scene: an orbiting ring of boxes clipped by
// a rotated mask, a filtered badge and a scripted camera. It opens a window
// by default, or renders frames to PNG with -snapshot.
//
//	boughdemo -config demo.yaml
//	boughdemo -snapshot out -frames 240
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/gpu"
)

func _main() error {
	configPath := flag.String("config", "", "YAML config file (defaults to the built-in demo)")
	snapshot := flag.String("snapshot", "", "render headless into this directory instead of opening a window")
	frames := flag.Int("frames", 240, "frames to render with -snapshot")
	debug := flag.Bool("debug", false, "log per-frame stats and tree checks")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.Window.Debug = cfg.Window.Debug || *debug

	logger := log.WithField("prefix", "bough")
	bough.SetLogger(logger)

	d := newDemo(cfg, logger)
	d.scene.SetDebugMode(cfg.Window.Debug)

	if *snapshot != "" {
		paths, err := runHeadless(d, cfg, *frames, *snapshot)
		if err != nil {
			return err
		}
		log.WithField("files", len(paths)).Info("snapshots written")
		return nil
	}

	shots := gpu.NewScreenshotter("")
	d.screenshot = shots.Request
	dt := float32(1.0 / float64(ebiten.DefaultTPS))
	if cfg.Window.TPS > 0 {
		dt = float32(1.0 / float64(cfg.Window.TPS))
	}

	run := cfg.Window
	run.Screenshots = shots
	run.OnUpdate = func() error {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			shots.Request("manual")
		}
		d.advance(dt)
		return nil
	}
	return gpu.Run(d.scene, run)
}

func main() {
	formatter := &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}
	log.SetFormatter(formatter)
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	if err := _main(); err != nil {
		log.Fatal(err)
	}
}
