// Package canvas is the software backend for bough. It implements
// bough.CanvasRenderer on an *image.RGBA, so scenes can be drawn headless
// and saved as PNG.
//
//	r := canvas.NewRenderer(320, 240)
//	scene.Update()
//	r.Render(scene, bough.Color{A: 1})
//	if err := r.SavePNG("frame.png"); err != nil {
//		log.Fatal(err)
//	}
//
// Masks are supported; filters and non-normal blend modes are not.
package canvas
