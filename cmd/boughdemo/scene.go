package main

import (
	"image"
	"image/color"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/gpu"
)

// demo is the running scene plus everything that animates it.
type demo struct {
	scene  *bough.Scene
	camera *bough.Camera
	index  *bough.NameIndex
	orbit  *bough.Node
	tweens []*bough.TweenGroup
	runner *runner
	cfg    SceneConfig
	log    logrus.FieldLogger

	// screenshot is set by the front end (window or headless).
	screenshot func(label string)
}

func newDemo(cfg *Config, log logrus.FieldLogger) *demo {
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	scene := bough.NewScene()
	root := scene.Root()

	cam := bough.NewCamera(bough.NewRect(0, 0, w, h))
	cam.X, cam.Y = w/2, h/2
	cam.SetBounds(bough.NewRect(-w/2, -h/2, w*2, h*2))
	scene.SetCamera(cam)

	d := &demo{
		scene:  scene,
		camera: cam,
		index:  bough.NewNameIndex(root),
		cfg:    cfg.Scene,
		log:    log,
		runner: newRunner(cfg.Script),
	}

	root.AddChild(bough.NewRectNode("floor", w, h, bough.Color{R: 0.16, G: 0.17, B: 0.22, A: 1}))

	panel := bough.NewContainer("panel")
	panel.SetPosition(w/2-80, h/2)
	bg := bough.NewRectNode("panel-bg", 220, 220, bough.Color{R: 0.25, G: 0.3, B: 0.4, A: 1})
	bough.SpriteOf(bg).SetAnchor(0.5, 0.5)
	panel.AddChild(bg)

	d.orbit = bough.NewContainer("orbit")
	panel.AddChild(d.orbit)
	d.addBoxes(cfg.Scene)

	if cfg.Scene.Masked {
		mask := bough.NewRectNode("panel-mask", 180, 180, bough.ColorWhite)
		bough.SpriteOf(mask).SetAnchor(0.5, 0.5)
		mask.SetRotation(math.Pi / 4)
		panel.SetMask(mask)
	}
	root.AddChild(panel)

	badge := bough.NewSprite("badge", bough.NewImageTexture(checker(8, 4)))
	bough.SpriteOf(badge).SetSize(64, 64)
	bough.SpriteOf(badge).SetAnchor(0.5, 0.5)
	badge.SetPosition(w-120, 120)
	if cfg.Scene.Blur > 0 {
		badge.Filters = append(badge.Filters, gpu.NewBlurFilter(cfg.Scene.Blur))
	}
	if cfg.Scene.Outline > 0 {
		badge.Filters = append(badge.Filters, gpu.NewOutlineFilter(cfg.Scene.Outline, bough.Color{R: 1, G: 0.85, B: 0.2, A: 1}))
	}
	root.AddChild(badge)

	return d
}

// addBoxes arranges n tinted boxes on a circle inside the orbit container.
func (d *demo) addBoxes(cfg SceneConfig) {
	const radius = 70
	for i := 0; i < cfg.Boxes; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Boxes)
		box := bough.NewRectNode("box", cfg.BoxSize, cfg.BoxSize, hue(float64(i)/float64(cfg.Boxes)))
		bough.SpriteOf(box).SetAnchor(0.5, 0.5)
		box.SetPosition(radius*math.Cos(angle), radius*math.Sin(angle))
		box.SetRotation(angle)
		d.orbit.AddChild(box)
	}
}

// lookup finds a node by name among the root's children, then one level
// below them.
func (d *demo) lookup(name string) *bough.Node {
	if n := d.index.Lookup(name); n != nil {
		return n
	}
	for _, top := range d.scene.Root().Children() {
		if n := top.ChildByName(name); n != nil {
			return n
		}
	}
	return nil
}

// step advances the demo by dt seconds and runs the transform pass.
func (d *demo) step(dt float32) {
	d.advance(dt)
	d.scene.Update()
}

// advance runs the script, tweens and camera without updating transforms.
// The window loop calls it from OnUpdate and lets gpu.Run update the scene.
func (d *demo) advance(dt float32) {
	d.runner.step(d)

	d.orbit.SetRotation(d.orbit.Rotation + d.cfg.OrbitSpeed*float64(dt))
	live := d.tweens[:0]
	for _, tw := range d.tweens {
		tw.Update(dt)
		if !tw.Done {
			live = append(live, tw)
		}
	}
	clear(d.tweens[len(live):])
	d.tweens = live
	d.camera.Update(dt)
}

// hue returns a saturated color around the color wheel, h in [0, 1).
func hue(h float64) bough.Color {
	f := func(n float64) float64 {
		k := math.Mod(n+h*6, 6)
		return 1 - math.Max(0, math.Min(math.Min(k, 4-k), 1))
	}
	return bough.Color{R: f(5), G: f(3), B: f(1), A: 1}
}

// checker returns a cells x cells checkerboard with size-pixel squares.
func checker(cells, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cells*size, cells*size))
	light := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	dark := color.RGBA{R: 60, G: 140, B: 200, A: 255}
	for y := 0; y < cells*size; y++ {
		for x := 0; x < cells*size; x++ {
			c := dark
			if (x/size+y/size)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
