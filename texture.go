package bough

import (
	"image"
	"image/color"
)

// Texture is a source of pixels that quads sample. Backends resolve concrete
// texture types to their native images.
type Texture interface {
	Size() (w, h int)
}

// ImageSource is implemented by textures whose pixels are available as an
// image.Image. Both backends can draw any ImageSource.
type ImageSource interface {
	Texture
	Image() image.Image
}

// ImageTexture wraps an in-memory image.
type ImageTexture struct {
	img image.Image
}

// NewImageTexture wraps img. Backends may upload it once and cache the
// result, so img should not change after wrapping.
func NewImageTexture(img image.Image) *ImageTexture {
	return &ImageTexture{img: img}
}

// Image returns the wrapped image.
func (t *ImageTexture) Image() image.Image {
	return t.img
}

// Size returns the image's pixel dimensions.
func (t *ImageTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// WhiteTexture is a 1x1 opaque white texture used for solid color quads.
var WhiteTexture = newWhiteTexture()

func newWhiteTexture() *ImageTexture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	return NewImageTexture(img)
}
