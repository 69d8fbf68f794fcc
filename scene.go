package bough

// Scene is the top-level object that owns the node tree and the frame
// context used to update and draw it.
type Scene struct {
	root   *Node
	frame  *Frame
	camera *Camera
	debug  bool
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:  NewContainer("root"),
		frame: NewFrame(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Frame returns the scene's traversal context.
func (s *Scene) Frame() *Frame {
	return s.frame
}

// SetView sets the view transform applied above the root, for example a
// camera's scroll and zoom.
func (s *Scene) SetView(m Matrix) {
	s.frame.SetView(m)
}

// SetCamera attaches c; its View replaces the view transform on every
// Update. A nil camera leaves the last view in place.
func (s *Scene) SetCamera(c *Camera) {
	s.camera = c
}

// Camera returns the attached camera, or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Update runs the transform pass over the whole tree.
func (s *Scene) Update() {
	if s.camera != nil {
		s.frame.SetView(s.camera.View())
	}
	s.frame.UpdateTransform(s.root)
}

// batchStatser is implemented by renderers that batch quads.
type batchStatser interface {
	BatchStats() BatchStats
}

// RenderBatched draws the tree through a GPU renderer.
func (s *Scene) RenderBatched(r BatchRenderer) {
	s.frame.RenderBatched(s.root, r)
	if s.debug {
		var bs BatchStats
		if b, ok := r.(batchStatser); ok {
			bs = b.BatchStats()
		}
		logFrameStats(s.frame.Stats(), bs)
	}
}

// RenderCanvas draws the tree through a software renderer.
func (s *Scene) RenderCanvas(r CanvasRenderer) {
	s.frame.RenderCanvas(s.root, r)
	if s.debug {
		logFrameStats(s.frame.Stats(), BatchStats{})
	}
}

// ContentBounds returns the scene-space bounds of everything visible,
// independent of the view transform.
func (s *Scene) ContentBounds() Rect {
	return s.root.ComputedBounds()
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings and per-frame stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}
