package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/phanxgames/bough"
)

// Renderer draws a bough scene into an in-memory RGBA image. Solid quads are
// filled as paths with gg; textured quads are resampled with x/image/draw.
// Masks are rasterised into alpha images and applied to every draw while
// they are open.
type Renderer struct {
	dst    *image.RGBA
	dc     *gg.Context
	masks  []*image.Alpha
	tinted map[tintKey]*image.RGBA
	warned map[any]bool
	draws  int
}

type tintKey struct {
	tex   bough.Texture
	frame image.Rectangle
	color color.RGBA
}

// NewRenderer returns a renderer with a transparent w x h target.
func NewRenderer(w, h int) *Renderer {
	return NewRendererForRGBA(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewRendererForRGBA returns a renderer that draws into dst.
func NewRendererForRGBA(dst *image.RGBA) *Renderer {
	return &Renderer{
		dst:    dst,
		dc:     gg.NewContextForRGBA(dst),
		tinted: make(map[tintKey]*image.RGBA),
		warned: make(map[any]bool),
	}
}

// Image returns the render target.
func (r *Renderer) Image() *image.RGBA {
	return r.dst
}

// Draws returns the number of quads drawn since the last Clear.
func (r *Renderer) Draws() int {
	return r.draws
}

// Clear fills the target with c and drops any open masks.
func (r *Renderer) Clear(c bough.Color) {
	r.masks = r.masks[:0]
	r.dc.ResetClip()
	r.dc.SetRGBA(c.R, c.G, c.B, c.A)
	r.dc.Clear()
	clear(r.tinted)
	r.draws = 0
}

// Render clears the target to c and draws scene into it.
func (r *Renderer) Render(scene *bough.Scene, c bough.Color) {
	r.Clear(c)
	scene.RenderCanvas(r)
}

// SavePNG writes the target to path.
func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// DrawQuad implements bough.CanvasRenderer.
func (r *Renderer) DrawQuad(q *bough.Quad) {
	if q.Color.A <= 0 || q.Width == 0 || q.Height == 0 {
		return
	}
	if q.Blend != bough.BlendNormal {
		r.warnOnce(q.Blend, "canvas: blend mode not supported; drawing as normal")
	}
	tex := q.Texture
	if tex == nil || tex == bough.WhiteTexture {
		r.fillQuad(q)
		return
	}
	src, ok := tex.(bough.ImageSource)
	if !ok {
		r.warnOnce(tex, "canvas: texture has no pixels; skipping")
		return
	}
	r.drawTextured(q, tex, src.Image())
}

func (r *Renderer) fillQuad(q *bough.Quad) {
	c := q.Corners()
	r.dc.NewSubPath()
	r.dc.MoveTo(c[0].X, c[0].Y)
	r.dc.LineTo(c[1].X, c[1].Y)
	r.dc.LineTo(c[3].X, c[3].Y)
	r.dc.LineTo(c[2].X, c[2].Y)
	r.dc.ClosePath()
	r.dc.SetRGBA(q.Color.R, q.Color.G, q.Color.B, q.Color.A)
	r.dc.Fill()
	r.draws++
}

func (r *Renderer) drawTextured(q *bough.Quad, tex bough.Texture, img image.Image) {
	fr := q.Frame
	if fr.Empty() {
		fr = img.Bounds()
	} else {
		fr = fr.Add(img.Bounds().Min)
	}
	s2d, ok := sourceToDest(q, fr)
	if !ok {
		return
	}

	var src image.Image = img
	if q.Color != bough.ColorWhite {
		src = r.tint(tex, img, fr, q.Color)
	}
	opts := &draw.Options{}
	if m := r.mask(); m != nil {
		opts.DstMask = m
	}
	draw.BiLinear.Transform(r.dst, s2d, src, fr, draw.Over, opts)
	r.draws++
}

// sourceToDest maps source pixels in fr onto the quad's destination
// parallelogram. It reports false for a degenerate transform.
func sourceToDest(q *bough.Quad, fr image.Rectangle) (f64.Aff3, bool) {
	if fr.Empty() {
		return f64.Aff3{}, false
	}
	m := q.Transform
	kx := q.Width / float64(fr.Dx())
	ky := q.Height / float64(fr.Dy())
	lx := q.OffsetX - kx*float64(fr.Min.X)
	ly := q.OffsetY - ky*float64(fr.Min.Y)
	a := f64.Aff3{
		m[0] * kx, m[2] * ky, m[0]*lx + m[2]*ly + m[4],
		m[1] * kx, m[3] * ky, m[1]*lx + m[3]*ly + m[5],
	}
	if math.Abs(a[0]*a[4]-a[1]*a[3]) < 1e-12 {
		return a, false
	}
	return a, true
}

// tint returns the frame region of img multiplied by c, premultiplied. The
// result shares img's coordinates so fr still addresses it.
func (r *Renderer) tint(tex bough.Texture, img image.Image, fr image.Rectangle, c bough.Color) *image.RGBA {
	key := tintKey{tex: tex, frame: fr, color: color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}}
	if out, ok := r.tinted[key]; ok {
		return out
	}
	a := clamp01(c.A)
	mr, mg, mb := clamp01(c.R)*a, clamp01(c.G)*a, clamp01(c.B)*a
	out := image.NewRGBA(fr)
	for y := fr.Min.Y; y < fr.Max.Y; y++ {
		for x := fr.Min.X; x < fr.Max.X; x++ {
			sr, sg, sb, sa := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(sr>>8)*mr + 0.5),
				G: uint8(float64(sg>>8)*mg + 0.5),
				B: uint8(float64(sb>>8)*mb + 0.5),
				A: uint8(float64(sa>>8)*a + 0.5),
			})
		}
	}
	r.tinted[key] = out
	return out
}

func (r *Renderer) mask() *image.Alpha {
	if len(r.masks) == 0 {
		return nil
	}
	return r.masks[len(r.masks)-1]
}

// PushMask implements bough.MaskManager. The mask subtree is rendered into
// an offscreen target, its alpha intersected with any enclosing mask, and
// the result clips all drawing until PopMask.
func (r *Renderer) PushMask(target, maskNode *bough.Node) {
	b := r.dst.Bounds()
	off := NewRendererForRGBA(image.NewRGBA(b))
	bough.RenderMaskCanvas(maskNode, off)
	m := off.dc.AsMask()
	if outer := r.mask(); outer != nil {
		intersectMasks(m, outer)
	}
	r.masks = append(r.masks, m)
	r.applyMask()
}

// PopMask implements bough.MaskManager.
func (r *Renderer) PopMask(target, maskNode *bough.Node) {
	if len(r.masks) == 0 {
		panic("bough/canvas: PopMask with no open mask")
	}
	r.masks[len(r.masks)-1] = nil
	r.masks = r.masks[:len(r.masks)-1]
	r.applyMask()
}

func (r *Renderer) applyMask() {
	m := r.mask()
	if m == nil {
		r.dc.ResetClip()
		return
	}
	if err := r.dc.SetMask(m); err != nil {
		panic("bough/canvas: " + err.Error())
	}
}

// intersectMasks multiplies m by outer in place. Both cover the same bounds.
func intersectMasks(m, outer *image.Alpha) {
	for i := range m.Pix {
		m.Pix[i] = uint8((uint16(m.Pix[i])*uint16(outer.Pix[i]) + 127) / 255)
	}
}

func (r *Renderer) warnOnce(key any, msg string) {
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	bough.Logger().WithField("key", key).Warn(msg)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
