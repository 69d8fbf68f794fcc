package gpu

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/bough"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string      `yaml:"title"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	TPS        int         `yaml:"tps"`
	VSync      bool        `yaml:"vsync"`
	ShowFPS    bool        `yaml:"show_fps"`
	ClearColor bough.Color `yaml:"clear_color"`
	Debug      bool        `yaml:"debug"`

	// OnUpdate runs once per tick before the scene's transforms update.
	// A non-nil error stops the game loop and is returned by Run.
	OnUpdate func() error `yaml:"-"`
	// Screenshots, when set, captures queued screenshots after each draw.
	Screenshots *Screenshotter `yaml:"-"`
}

func (c *RunConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "bough"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.TPS <= 0 {
		c.TPS = ebiten.DefaultTPS
	}
}

// Run opens a window and drives scene until the window closes or OnUpdate
// returns an error.
func Run(scene *bough.Scene, cfg RunConfig) error {
	cfg.setDefaults()
	scene.SetDebugMode(cfg.Debug)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetVsyncEnabled(cfg.VSync)

	bough.Logger().WithFields(logrus.Fields{
		"title":  cfg.Title,
		"width":  cfg.Width,
		"height": cfg.Height,
		"tps":    cfg.TPS,
	}).Info("gpu: starting game loop")

	return ebiten.RunGame(newGame(scene, cfg))
}

type game struct {
	scene    *bough.Scene
	renderer *Renderer
	cfg      RunConfig
	clear    color.RGBA
}

func newGame(scene *bough.Scene, cfg RunConfig) *game {
	return &game{
		scene:    scene,
		renderer: NewRenderer(),
		cfg:      cfg,
		clear:    premultipliedRGBA(cfg.ClearColor),
	}
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clear)
	g.renderer.Render(g.scene, screen)
	if g.cfg.Screenshots != nil {
		if _, err := g.cfg.Screenshots.Capture(screen); err != nil {
			bough.Logger().WithError(err).Error("gpu: screenshot failed")
		}
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// premultipliedRGBA converts a straight-alpha color to color.RGBA.
func premultipliedRGBA(c bough.Color) color.RGBA {
	p := bough.PackPremultiplied(c)
	return color.RGBA{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: uint8(p >> 24)}
}
