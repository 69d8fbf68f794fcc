package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bough"
)

// Texture wraps an ebiten image so sprites can draw it directly.
type Texture struct {
	img *ebiten.Image
}

// NewTexture wraps img.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the wrapped image.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Size implements bough.Texture.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// textureCache uploads image-backed textures once and remembers the result.
type textureCache struct {
	images  map[bough.Texture]*ebiten.Image
	skipped map[bough.Texture]bool
}

// resolve returns the ebiten image for t, or nil if t has no GPU form.
func (c *textureCache) resolve(t bough.Texture) *ebiten.Image {
	switch t := t.(type) {
	case *Texture:
		return t.img
	case bough.ImageSource:
		if img, ok := c.images[t]; ok {
			return img
		}
		if c.images == nil {
			c.images = make(map[bough.Texture]*ebiten.Image)
		}
		img := ebiten.NewImageFromImage(t.Image())
		c.images[t] = img
		return img
	}
	if !c.skipped[t] {
		if c.skipped == nil {
			c.skipped = make(map[bough.Texture]bool)
		}
		c.skipped[t] = true
		bough.Logger().WithField("texture", t).Warn("gpu: texture type has no GPU image; skipping")
	}
	return nil
}

// Forget drops the cached upload of t, for example after its pixels change.
func (c *textureCache) forget(t bough.Texture) {
	if img, ok := c.images[t]; ok {
		img.Deallocate()
		delete(c.images, t)
	}
}
