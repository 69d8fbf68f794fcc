package bough

import "image"

// Sprite is node content that draws one textured quad. The quad covers
// (-AnchorX*w, -AnchorY*h, w, h) in the node's local space, where w and h
// default to the frame size.
type Sprite struct {
	texture Texture
	frame   image.Rectangle
	width   float64
	height  float64
	sized   bool
	anchorX float64
	anchorY float64

	// Tint multiplies the texture color. Its alpha is further multiplied by
	// the node's world alpha.
	Tint  Color
	Blend BlendMode

	owner *Node
}

// NewSprite creates a node that draws the whole of tex. A nil texture draws a
// 1x1 white quad; size it with SetSize for solid rectangles.
func NewSprite(name string, tex Texture) *Node {
	return NewNode(name, newSprite(tex))
}

// NewRectNode creates a node drawing a solid w x h rectangle of color c.
func NewRectNode(name string, w, h float64, c Color) *Node {
	s := newSprite(WhiteTexture)
	s.Tint = c
	s.SetSize(w, h)
	return NewNode(name, s)
}

func newSprite(tex Texture) *Sprite {
	if tex == nil {
		tex = WhiteTexture
	}
	w, h := tex.Size()
	return &Sprite{
		texture: tex,
		frame:   image.Rect(0, 0, w, h),
		Tint:    ColorWhite,
	}
}

// SpriteOf returns n's content as a *Sprite, or nil.
func SpriteOf(n *Node) *Sprite {
	s, _ := n.Content().(*Sprite)
	return s
}

func (s *Sprite) attach(n *Node) {
	s.owner = n
}

func (s *Sprite) changed() {
	if s.owner != nil {
		s.owner.InvalidateBounds()
	}
}

// Texture returns the sprite's texture.
func (s *Sprite) Texture() Texture {
	return s.texture
}

// SetTexture replaces the texture and resets the frame to cover all of it.
func (s *Sprite) SetTexture(tex Texture) {
	if tex == nil {
		tex = WhiteTexture
	}
	w, h := tex.Size()
	s.texture = tex
	s.frame = image.Rect(0, 0, w, h)
	s.changed()
}

// Frame returns the source rectangle in texture pixels.
func (s *Sprite) Frame() image.Rectangle {
	return s.frame
}

// SetFrame selects a sub-rectangle of the texture, such as one atlas cell.
func (s *Sprite) SetFrame(r image.Rectangle) {
	s.frame = r
	s.changed()
}

// SetSize overrides the drawn size. The frame is stretched to fit.
func (s *Sprite) SetSize(w, h float64) {
	s.width, s.height = w, h
	s.sized = true
	s.changed()
}

// Size returns the drawn size.
func (s *Sprite) Size() (w, h float64) {
	if s.sized {
		return s.width, s.height
	}
	return float64(s.frame.Dx()), float64(s.frame.Dy())
}

// SetAnchor sets the normalised point of the quad placed at the node origin.
// (0.5, 0.5) centers the sprite.
func (s *Sprite) SetAnchor(x, y float64) {
	s.anchorX, s.anchorY = x, y
	s.changed()
}

// Anchor returns the normalised anchor.
func (s *Sprite) Anchor() (x, y float64) {
	return s.anchorX, s.anchorY
}

// LocalBounds implements Content.
func (s *Sprite) LocalBounds() Rect {
	w, h := s.Size()
	return Rect{X: -s.anchorX * w, Y: -s.anchorY * h, Width: w, Height: h}
}

// Quad builds the quad for s drawn by n.
func (s *Sprite) Quad(n *Node) Quad {
	w, h := s.Size()
	c := s.Tint
	c.A *= n.WorldAlpha()
	return Quad{
		Texture:   s.texture,
		Frame:     s.frame,
		Transform: n.WorldTransform(),
		OffsetX:   -s.anchorX * w,
		OffsetY:   -s.anchorY * h,
		Width:     w,
		Height:    h,
		Color:     c,
		Blend:     s.Blend,
	}
}

// DrawBatched implements BatchDrawer.
func (s *Sprite) DrawBatched(r BatchRenderer, n *Node) {
	q := s.Quad(n)
	r.DrawQuad(&q)
}

// DrawCanvas implements CanvasDrawer.
func (s *Sprite) DrawCanvas(r CanvasRenderer, n *Node) {
	q := s.Quad(n)
	r.DrawQuad(&q)
}
