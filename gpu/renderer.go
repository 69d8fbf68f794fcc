package gpu

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bough"
)

type targetKind uint8

const (
	targetScreen targetKind = iota
	targetMask
	targetFilter
)

// target is one level of the render-target stack. Quads are drawn into img
// translated by -origin, so world coordinates keep working offscreen.
type target struct {
	img     *ebiten.Image
	origin  image.Point
	kind    targetKind
	node    *bough.Node
	filters []ImageFilter
}

// Renderer draws a bough scene with Ebitengine. Quads are grouped by a
// bough.Batcher and submitted through a multi-texture shader; masks and
// filters render their subtree into pooled offscreen images that are
// composited back when the scope closes.
type Renderer struct {
	batcher  *bough.Batcher
	textures textureCache
	pool     renderTexturePool
	targets  []target

	verts     []ebiten.Vertex
	inds      []uint32
	shaderOp  ebiten.DrawTrianglesShaderOptions
	imgOp     ebiten.DrawImageOptions
	drawCalls int
}

// NewRenderer returns a renderer with an empty target stack. Call Begin or
// Render before drawing.
func NewRenderer() *Renderer {
	r := &Renderer{
		verts: make([]ebiten.Vertex, 0, 4*256),
		inds:  make([]uint32, 0, 6*256),
	}
	r.batcher = bough.NewBatcher(MaxTextures, r)
	r.batcher.UniformTextureSize = true
	return r
}

// Begin resets the renderer to draw into screen.
func (r *Renderer) Begin(screen *ebiten.Image) {
	for _, t := range r.targets[min(1, len(r.targets)):] {
		r.pool.Release(t.img)
	}
	clear(r.targets)
	r.targets = append(r.targets[:0], target{img: screen, kind: targetScreen})
	r.batcher.ResetStats()
	r.drawCalls = 0
}

// Render draws scene into screen.
func (r *Renderer) Render(scene *bough.Scene, screen *ebiten.Image) {
	r.Begin(screen)
	scene.RenderBatched(r)
}

// Start implements bough.BatchRenderer.
func (r *Renderer) Start() { r.batcher.Start() }

// Flush implements bough.BatchRenderer.
func (r *Renderer) Flush() { r.batcher.Flush() }

// DrawQuad implements bough.BatchRenderer.
func (r *Renderer) DrawQuad(q *bough.Quad) { r.batcher.Add(q) }

// BatchStats returns the batcher counters for the current frame.
func (r *Renderer) BatchStats() bough.BatchStats { return r.batcher.Stats() }

// DrawCalls returns the number of shader draws issued since Begin.
func (r *Renderer) DrawCalls() int { return r.drawCalls }

// ForgetTexture drops the uploaded copy of an image-backed texture so the
// next draw uploads its current pixels.
func (r *Renderer) ForgetTexture(t bough.Texture) { r.textures.forget(t) }

func (r *Renderer) top() *target {
	if len(r.targets) == 0 {
		panic("bough/gpu: draw before Begin")
	}
	return &r.targets[len(r.targets)-1]
}

// SubmitBatch implements bough.BatchSubmitter. Quads whose texture has no
// GPU image are dropped.
func (r *Renderer) SubmitBatch(d *bough.BatchData) {
	t := r.top()
	if t.img == nil {
		return
	}

	var imgs [MaxTextures]*ebiten.Image
	for i, tex := range d.Textures {
		if i >= MaxTextures {
			break
		}
		imgs[i] = r.textures.resolve(tex)
	}
	base := imageFor(imgs)
	if base == nil {
		return
	}
	sb := base.Bounds()
	sw, sh := float32(sb.Dx()), float32(sb.Dy())
	ox, oy := float32(t.origin.X), float32(t.origin.Y)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for q := 0; q < d.Quads(); q++ {
		unit := int(d.Vertices[q*4].TextureUnit)
		if unit >= MaxTextures || imgs[unit] == nil {
			continue
		}
		first := uint32(len(r.verts))
		for _, v := range d.Vertices[q*4 : q*4+4] {
			cr, cg, cb, ca := bough.UnpackColor(v.Color)
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:    v.X - ox,
				DstY:    v.Y - oy,
				SrcX:    float32(sb.Min.X) + v.U*sw,
				SrcY:    float32(sb.Min.Y) + v.V*sh,
				ColorR:  cr,
				ColorG:  cg,
				ColorB:  cb,
				ColorA:  ca,
				Custom0: v.TextureUnit,
			})
		}
		for _, idx := range d.Indices[q*6 : q*6+6] {
			r.inds = append(r.inds, idx-uint32(q*4)+first)
		}
	}
	if len(r.inds) == 0 {
		return
	}

	r.shaderOp.Images = imgs
	r.shaderOp.Blend = EbitenBlend(d.Blend)
	t.img.DrawTrianglesShader32(r.verts, r.inds, ensureBatchShader(), &r.shaderOp)
	r.drawCalls++
}

// imageFor returns the first bound image; source coordinates are relative to
// it.
func imageFor(imgs [MaxTextures]*ebiten.Image) *ebiten.Image {
	for _, img := range imgs {
		if img != nil {
			return img
		}
	}
	return nil
}

// PushMask implements bough.MaskManager. The masked subtree is redirected
// into an offscreen image covering the target's world bounds.
func (r *Renderer) PushMask(targetNode, mask *bough.Node) {
	r.pushTarget(targetNode, targetMask, 0, nil)
}

// PopMask implements bough.MaskManager. The mask subtree is rendered into a
// second image, multiplied into the content by alpha, and the result is
// drawn onto the enclosing target.
func (r *Renderer) PopMask(targetNode, mask *bough.Node) {
	t := r.popTarget(targetNode, targetMask)
	if t.img == nil {
		return
	}
	b := t.img.Bounds()
	maskImg := r.pool.Acquire(b.Dx(), b.Dy())
	r.targets = append(r.targets, target{img: maskImg, origin: t.origin, kind: targetMask, node: mask})
	bough.RenderMaskBatched(mask, r)
	r.batcher.Flush()
	r.targets = r.targets[:len(r.targets)-1]

	r.imgOp.GeoM.Reset()
	r.imgOp.Blend = maskBlend
	t.img.DrawImage(maskImg, &r.imgOp)
	r.pool.Release(maskImg)

	r.composite(t.img, t.origin)
	r.pool.Release(t.img)
}

// PushFilters implements bough.FilterManager. The offscreen image is padded
// so effects that spread pixels are not clipped.
func (r *Renderer) PushFilters(targetNode *bough.Node, filters []bough.Filter) {
	r.pushTarget(targetNode, targetFilter, bough.FilterPadding(filters), imageFilters(filters))
}

// PopFilters implements bough.FilterManager.
func (r *Renderer) PopFilters(targetNode *bough.Node, filters []bough.Filter) {
	t := r.popTarget(targetNode, targetFilter)
	if t.img == nil {
		return
	}
	result, spare := applyFilters(t.filters, t.img, &r.pool)
	r.composite(result, t.origin)
	r.pool.Release(result)
	r.pool.Release(spare)
}

func (r *Renderer) pushTarget(n *bough.Node, kind targetKind, pad int, filters []ImageFilter) {
	region := targetRegion(n.Bounds(), pad, r.targets[0].img.Bounds())
	t := target{origin: region.Min, kind: kind, node: n, filters: filters}
	if !region.Empty() {
		t.img = r.pool.Acquire(region.Dx(), region.Dy())
	}
	r.targets = append(r.targets, t)
}

func (r *Renderer) popTarget(n *bough.Node, kind targetKind) target {
	t := *r.top()
	if len(r.targets) < 2 || t.kind != kind || t.node != n {
		panic(fmt.Sprintf("bough/gpu: pop of %v does not match the open render target", n))
	}
	r.targets[len(r.targets)-1] = target{}
	r.targets = r.targets[:len(r.targets)-1]
	return t
}

// composite draws img, whose top-left sits at origin in world space, onto
// the current target.
func (r *Renderer) composite(img *ebiten.Image, origin image.Point) {
	parent := r.top()
	if parent.img == nil {
		return
	}
	r.imgOp.GeoM.Reset()
	r.imgOp.GeoM.Translate(float64(origin.X-parent.origin.X), float64(origin.Y-parent.origin.Y))
	r.imgOp.Blend = ebiten.BlendSourceOver
	parent.img.DrawImage(img, &r.imgOp)
}

// targetRegion returns the pixel rectangle an offscreen target must cover:
// the world bounds grown by pad, snapped outward to whole pixels, and
// limited to the screen grown by the same pad.
func targetRegion(b bough.Rect, pad int, screen image.Rectangle) image.Rectangle {
	if b.IsEmpty() {
		return image.Rectangle{}
	}
	p := float64(pad)
	region := image.Rect(
		int(math.Floor(b.X-p)),
		int(math.Floor(b.Y-p)),
		int(math.Ceil(b.Right()+p)),
		int(math.Ceil(b.Bottom()+p)),
	)
	return region.Intersect(screen.Inset(-pad))
}
