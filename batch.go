package bough

import "image"

// DefaultMaxTextures is the number of texture units a batch may bind when a
// backend does not say otherwise.
const DefaultMaxTextures = 4

// Quad is one textured rectangle ready for submission. Corners are computed
// from the local rectangle (OffsetX, OffsetY, Width, Height) under Transform.
type Quad struct {
	Texture   Texture
	Frame     image.Rectangle // source region in texture pixels
	Transform Matrix
	OffsetX   float64
	OffsetY   float64
	Width     float64
	Height    float64
	Color     Color // straight alpha; premultiplied when vertices are built
	Blend     BlendMode
}

// Corners returns the four transformed corners in TL, TR, BL, BR order.
func (q *Quad) Corners() [4]Vec2 {
	lx := [4]float64{q.OffsetX, q.OffsetX + q.Width, q.OffsetX, q.OffsetX + q.Width}
	ly := [4]float64{q.OffsetY, q.OffsetY, q.OffsetY + q.Height, q.OffsetY + q.Height}
	var out [4]Vec2
	for i := range out {
		out[i].X, out[i].Y = q.Transform.Apply(lx[i], ly[i])
	}
	return out
}

// UVs returns normalised texture coordinates for the four corners in the
// same order as Corners. An empty Frame maps the whole texture.
func (q *Quad) UVs() [4]Vec2 {
	tw, th := q.Texture.Size()
	if tw <= 0 || th <= 0 {
		return [4]Vec2{}
	}
	fr := q.Frame
	if fr.Empty() {
		fr = image.Rect(0, 0, tw, th)
	}
	u0 := float64(fr.Min.X) / float64(tw)
	v0 := float64(fr.Min.Y) / float64(th)
	u1 := float64(fr.Max.X) / float64(tw)
	v1 := float64(fr.Max.Y) / float64(th)
	return [4]Vec2{{u0, v0}, {u1, v0}, {u0, v1}, {u1, v1}}
}

// BatchVertex is one vertex of the multi-texture batch format.
type BatchVertex struct {
	X, Y float32 // world position
	U, V float32 // texture coordinate in [0, 1]
	// Color is premultiplied RGBA packed as 0xAABBGGRR.
	Color uint32
	// TextureUnit selects which of the batch's bound textures to sample.
	TextureUnit float32
}

// PackPremultiplied packs c as 0xAABBGGRR with rgb multiplied by alpha.
// Components are clamped to [0, 1].
func PackPremultiplied(c Color) uint32 {
	a := clamp01(c.A)
	r := uint32(clamp01(c.R)*a*255 + 0.5)
	g := uint32(clamp01(c.G)*a*255 + 0.5)
	b := uint32(clamp01(c.B)*a*255 + 0.5)
	return uint32(a*255+0.5)<<24 | b<<16 | g<<8 | r
}

// UnpackColor splits a packed 0xAABBGGRR color into premultiplied float
// components in [0, 1].
func UnpackColor(p uint32) (r, g, b, a float32) {
	return float32(p&0xff) / 255, float32(p>>8&0xff) / 255,
		float32(p>>16&0xff) / 255, float32(p>>24) / 255
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BatchData is one draw submission: geometry in draw order, the textures
// bound to units 0..len(Textures)-1 and a single blend mode.
type BatchData struct {
	Vertices []BatchVertex
	Indices  []uint32
	Textures []Texture
	Blend    BlendMode
}

// Quads returns the number of quads in the batch.
func (d *BatchData) Quads() int {
	return len(d.Vertices) / 4
}

func (d *BatchData) reset() {
	d.Vertices = d.Vertices[:0]
	d.Indices = d.Indices[:0]
	clear(d.Textures)
	d.Textures = d.Textures[:0]
}

// BatchSubmitter receives completed batches. The BatchData is reused after
// SubmitBatch returns.
type BatchSubmitter interface {
	SubmitBatch(d *BatchData)
}

// BatchStats counts batcher activity since the last ResetStats.
type BatchStats struct {
	Batches int
	Quads   int
}

// Batcher groups quads into multi-texture batches without reordering them.
// A quad joins the open batch when its texture is already bound or a unit is
// free; otherwise, or when the blend mode changes, the batch is flushed first.
type Batcher struct {
	// MaxTextures is the number of texture units per batch.
	MaxTextures int
	// UniformTextureSize requires every texture in a batch to have the same
	// pixel size, for backends whose samplers share one size.
	UniformTextureSize bool

	submit BatchSubmitter
	data   BatchData
	stats  BatchStats
}

// NewBatcher returns a batcher that hands completed batches to submit.
// maxTextures <= 0 selects DefaultMaxTextures.
func NewBatcher(maxTextures int, submit BatchSubmitter) *Batcher {
	if maxTextures <= 0 {
		maxTextures = DefaultMaxTextures
	}
	return &Batcher{
		MaxTextures: maxTextures,
		submit:      submit,
		data: BatchData{
			Vertices: make([]BatchVertex, 0, 4*256),
			Indices:  make([]uint32, 0, 6*256),
			Textures: make([]Texture, 0, maxTextures),
		},
	}
}

// Start begins a new batch. Pending geometry is submitted first.
func (b *Batcher) Start() {
	b.Flush()
}

// Add appends q to the open batch, flushing first when q cannot join it.
func (b *Batcher) Add(q *Quad) {
	tex := q.Texture
	if tex == nil {
		tex = WhiteTexture
	}
	if len(b.data.Vertices) > 0 && b.data.Blend != q.Blend {
		b.Flush()
	}
	unit := b.unitFor(tex)
	if unit < 0 {
		b.Flush()
		unit = b.unitFor(tex)
	}
	b.data.Blend = q.Blend

	qq := *q
	qq.Texture = tex
	corners := qq.Corners()
	uvs := qq.UVs()
	color := PackPremultiplied(q.Color)
	base := uint32(len(b.data.Vertices))
	for i := range corners {
		b.data.Vertices = append(b.data.Vertices, BatchVertex{
			X:           float32(corners[i].X),
			Y:           float32(corners[i].Y),
			U:           float32(uvs[i].X),
			V:           float32(uvs[i].Y),
			Color:       color,
			TextureUnit: float32(unit),
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	b.data.Indices = append(b.data.Indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// unitFor returns the texture unit for tex in the open batch, binding it if a
// unit is free, or -1 when it cannot join.
func (b *Batcher) unitFor(tex Texture) int {
	for i, t := range b.data.Textures {
		if t == tex {
			return i
		}
	}
	if len(b.data.Textures) >= b.MaxTextures {
		return -1
	}
	if b.UniformTextureSize && len(b.data.Textures) > 0 {
		w0, h0 := b.data.Textures[0].Size()
		w, h := tex.Size()
		if w != w0 || h != h0 {
			return -1
		}
	}
	b.data.Textures = append(b.data.Textures, tex)
	return len(b.data.Textures) - 1
}

// Flush submits the open batch, if it holds any geometry, and clears it.
func (b *Batcher) Flush() {
	if len(b.data.Vertices) == 0 {
		b.data.reset()
		return
	}
	b.stats.Batches++
	b.stats.Quads += b.data.Quads()
	if b.submit != nil {
		b.submit.SubmitBatch(&b.data)
	}
	b.data.reset()
}

// Pending returns the number of quads in the open batch.
func (b *Batcher) Pending() int {
	return b.data.Quads()
}

// Stats returns counters accumulated since the last ResetStats.
func (b *Batcher) Stats() BatchStats {
	return b.stats
}

// ResetStats zeroes the counters.
func (b *Batcher) ResetStats() {
	b.stats = BatchStats{}
}
