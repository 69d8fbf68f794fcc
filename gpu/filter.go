package gpu

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bough"
)

// ImageFilter is a bough.Filter this backend can run. Filters that do not
// implement it are skipped by the GPU renderer.
type ImageFilter interface {
	bough.Filter
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// --- Kage shader sources ---
// Ebitengine uses premultiplied alpha; shaders un-premultiply before
// processing and re-premultiply output.

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("bough/gpu: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// --- ColorMatrixFilter ---

// ColorMatrixFilter applies a 4x5 color matrix in row-major order:
// [R_r, R_g, R_b, R_a, R_offset, G_r, ...].
type ColorMatrixFilter struct {
	Matrix    [20]float64
	uniforms  map[string]any
	matrixF32 [20]float32
	shaderOp  ebiten.DrawRectShaderOptions
}

// NewColorMatrixFilter creates a color matrix filter initialized to the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{uniforms: make(map[string]any, 1)}
	f.uniforms["Matrix"] = f.matrixF32[:]
	f.Matrix[0] = 1
	f.Matrix[6] = 1
	f.Matrix[12] = 1
	f.Matrix[18] = 1
	return f
}

// SetBrightness sets the matrix to adjust brightness by the given offset [-1, 1].
func (f *ColorMatrixFilter) SetBrightness(b float64) {
	f.Matrix = [20]float64{
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	}
}

// SetContrast sets the matrix to adjust contrast. c=1 is normal.
func (f *ColorMatrixFilter) SetContrast(c float64) {
	t := (1.0 - c) / 2.0
	f.Matrix = [20]float64{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	}
}

// SetSaturation sets the matrix to adjust saturation. s=1 is normal, 0=grayscale.
func (f *ColorMatrixFilter) SetSaturation(s float64) {
	sr := (1 - s) * 0.299
	sg := (1 - s) * 0.587
	sb := (1 - s) * 0.114
	f.Matrix = [20]float64{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; color transforms don't expand the image.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// --- BlurFilter ---

// BlurFilter applies a Kawase-style blur with downscale/upscale passes;
// bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// blurPasses returns the number of halvings for a radius, minimum 1.
func blurPasses(radius int) int {
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply renders the blur from src into dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := blurPasses(f.Radius)
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if t := f.temps[i]; t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			t.Clear()
		}
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}
	f.scaleInto(dst, current)
}

// scaleInto draws src stretched over all of dst with bilinear filtering.
func (f *BlurFilter) scaleInto(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(
		float64(dst.Bounds().Dx())/float64(src.Bounds().Dx()),
		float64(dst.Bounds().Dy())/float64(src.Bounds().Dy()),
	)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the blur radius.
func (f *BlurFilter) Padding() int { return f.Radius }

// --- OutlineFilter ---

const outlineShaderSrc = `//kage:unit pixels
package main

var OutlineColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		return c
	}
	if imageSrc0At(src + vec2(1, 0)).a > 0 ||
		imageSrc0At(src + vec2(-1, 0)).a > 0 ||
		imageSrc0At(src + vec2(0, 1)).a > 0 ||
		imageSrc0At(src + vec2(0, -1)).a > 0 {
		return OutlineColor
	}
	return vec4(0)
}
`

var outlineShader *ebiten.Shader

func ensureOutlineShader() *ebiten.Shader {
	if outlineShader == nil {
		s, err := ebiten.NewShader([]byte(outlineShaderSrc))
		if err != nil {
			panic("bough/gpu: failed to compile outline shader: " + err.Error())
		}
		outlineShader = s
	}
	return outlineShader
}

// OutlineFilter grows a solid outline around opaque pixels, one pixel per
// pass.
type OutlineFilter struct {
	Thickness int
	Color     bough.Color
	uniforms  map[string]any
	colorF32  [4]float32
	temp      *ebiten.Image
	shaderOp  ebiten.DrawRectShaderOptions
	imgOp     ebiten.DrawImageOptions
}

// NewOutlineFilter creates an outline filter.
func NewOutlineFilter(thickness int, c bough.Color) *OutlineFilter {
	f := &OutlineFilter{Thickness: max(thickness, 0), Color: c, uniforms: make(map[string]any, 1)}
	f.uniforms["OutlineColor"] = f.colorF32[:]
	return f
}

// Apply renders the outlined source from src into dst.
func (f *OutlineFilter) Apply(src, dst *ebiten.Image) {
	if f.Thickness <= 0 {
		f.imgOp.GeoM.Reset()
		dst.DrawImage(src, &f.imgOp)
		return
	}
	a := float32(f.Color.A)
	f.colorF32 = [4]float32{float32(f.Color.R) * a, float32(f.Color.G) * a, float32(f.Color.B) * a, a}
	shader := ensureOutlineShader()
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if f.Thickness > 1 && (f.temp == nil || f.temp.Bounds().Dx() != w || f.temp.Bounds().Dy() != h) {
		if f.temp != nil {
			f.temp.Deallocate()
		}
		f.temp = ebiten.NewImage(w, h)
	}

	// Odd pass counts end in dst; intermediate passes alternate with temp.
	current := src
	for i := 0; i < f.Thickness; i++ {
		out := dst
		if (f.Thickness-i)%2 == 0 {
			out = f.temp
		}
		out.Clear()
		f.shaderOp.Images[0] = current
		f.shaderOp.Uniforms = f.uniforms
		out.DrawRectShader(w, h, shader, &f.shaderOp)
		current = out
	}
}

// Padding returns the outline thickness.
func (f *OutlineFilter) Padding() int { return f.Thickness }

// --- CustomShaderFilter ---

// CustomShaderFilter runs a user-provided Kage shader. Images[0] is filled
// with the source; Images[1] and Images[2] may be set by the caller.
type CustomShaderFilter struct {
	Shader   *ebiten.Shader
	Uniforms map[string]any
	Images   [3]*ebiten.Image
	padding  int
	shaderOp ebiten.DrawRectShaderOptions
}

// NewCustomShaderFilter creates a custom shader filter with the given padding.
func NewCustomShaderFilter(shader *ebiten.Shader, padding int) *CustomShaderFilter {
	return &CustomShaderFilter{
		Shader:   shader,
		Uniforms: make(map[string]any),
		padding:  padding,
	}
}

// Apply runs the shader with src as Images[0].
func (f *CustomShaderFilter) Apply(src, dst *ebiten.Image) {
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Images[1] = f.Images[1]
	f.shaderOp.Images[2] = f.Images[2]
	f.shaderOp.Uniforms = f.Uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), f.Shader, &f.shaderOp)
}

// Padding returns the padding set at construction time.
func (f *CustomShaderFilter) Padding() int { return f.padding }

// --- Filter chain ---

// imageFilters returns the filters this backend can run, in order.
func imageFilters(filters []bough.Filter) []ImageFilter {
	out := make([]ImageFilter, 0, len(filters))
	for _, f := range filters {
		if imf, ok := f.(ImageFilter); ok {
			out = append(out, imf)
		}
	}
	return out
}

// applyFilters runs a filter chain on src, ping-ponging between src and one
// pooled scratch image. It returns the image holding the result and the
// image that is now free; either may be src.
func applyFilters(filters []ImageFilter, src *ebiten.Image, pool *renderTexturePool) (result, spare *ebiten.Image) {
	if len(filters) == 0 {
		return src, nil
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	var scratch *ebiten.Image
	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	return current, scratch
}
