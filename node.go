package bough

import "fmt"

// nodeIDCounter is a plain counter (no atomic — bough is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Content is the geometry a node contributes on its own, in addition to its
// children. Containers have no content.
type Content interface {
	// LocalBounds returns the content's extent in the node's local space, or
	// EmptyRect when it draws nothing.
	LocalBounds() Rect
}

// BatchDrawer is implemented by content that can emit geometry on the
// batched (GPU) path.
type BatchDrawer interface {
	DrawBatched(r BatchRenderer, n *Node)
}

// CanvasDrawer is implemented by content that can emit geometry on the
// software path.
type CanvasDrawer interface {
	DrawCanvas(r CanvasRenderer, n *Node)
}

// ChildrenObserver is notified once per structural mutation of a node's
// child list with the lowest affected index. Implementations use it to
// invalidate auxiliary indexes over the children without rescanning.
type ChildrenObserver interface {
	ChildrenChanged(parent *Node, index int)
}

// contentAttacher is implemented by built-in content that needs to know its
// owning node (to invalidate bounds when it changes).
type contentAttacher interface {
	attach(n *Node)
}

// Node is the fundamental scene graph element. A single flat struct is used
// for leaves and containers; what a node draws is decided by its Content.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. parent never keeps the parent alive; it is cleared whenever
	// the node leaves a child list.
	parent   *Node
	children []*Node

	// Transform (local). Setters mark the node dirty; after writing these
	// fields directly call MarkDirty.
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	// Computed during the transform pass.
	worldTransform    Matrix
	computedTransform Matrix
	worldAlpha        float64
	localDirty        bool
	worldID           uint64
	parentWorldID     uint64
	visibleSeen       bool

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool

	// Ordering stamps (see Frame).
	updatePostOrder uint64
	displayOrder    uint64

	// Bounds cache
	boundsID       uint64
	worldBounds    boundsCache
	computedBounds boundsCache

	// Effects. Neither the mask nor the filters are owned by the node.
	content Content
	mask    *Node
	Filters []Filter

	// Metadata
	UserData any

	// Structural hooks (nil by default; zero cost when unused).
	ChildrenObserver ChildrenObserver
	OnAdded          func(parent *Node)
	OnRemoved        func(parent *Node)

	destroyed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
	n.Renderable = true
	n.localDirty = true
	n.worldTransform = IdentityMatrix
	n.computedTransform = IdentityMatrix
	n.worldAlpha = 1
}

// NewContainer creates a node with no content of its own.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewNode creates a node that draws c.
func NewNode(name string, c Content) *Node {
	n := NewContainer(name)
	n.SetContent(c)
	return n
}

// String returns a short description for logs.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%d %q)", n.ID, n.Name)
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Content returns the node's own drawable content, or nil.
func (n *Node) Content() Content {
	return n.content
}

// SetContent replaces the node's content and invalidates its bounds.
func (n *Node) SetContent(c Content) {
	if a, ok := n.content.(contentAttacher); ok {
		a.attach(nil)
	}
	n.content = c
	if a, ok := c.(contentAttacher); ok {
		a.attach(n)
	}
	n.invalidateBounds()
}

// SetVisible shows or hides the node. Hidden nodes are skipped by the
// transform pass, the draw pass and their parent's bounds.
func (n *Node) SetVisible(v bool) {
	if n.Visible == v {
		return
	}
	n.Visible = v
	n.visibleSeen = v
	n.invalidateBounds()
}

// UpdatePostOrder returns the frame counter stamped after this node's
// subtree finished its last transform update. Zero if never updated.
func (n *Node) UpdatePostOrder() uint64 {
	return n.updatePostOrder
}

// DisplayOrder returns the draw-submission stamp from the last draw pass
// that reached this node. A hidden node is reset to zero, but its
// descendants, and those of a zero-alpha or non-renderable node, are not
// visited and keep the stamp from an earlier pass.
func (n *Node) DisplayOrder() uint64 {
	return n.displayOrder
}

// UpdatedAfter reports whether n's last transform update completed after
// other's. Only meaningful for nodes updated by the same Frame.
func (n *Node) UpdatedAfter(other *Node) bool {
	return n.updatePostOrder > other.updatePostOrder
}

// --- Mask ---

// SetMask sets a mask node for this node. The mask's geometry clips this
// node's subtree. A mask outside the scene tree has its transform composed
// relative to the masked node. The mask node stops rendering on its own
// while assigned; ClearMask restores it.
func (n *Node) SetMask(maskNode *Node) {
	if n.mask == maskNode {
		return
	}
	if n.mask != nil {
		n.mask.Renderable = true
	}
	n.mask = maskNode
	if maskNode != nil {
		maskNode.Renderable = false
	}
}

// ClearMask removes the mask from this node.
func (n *Node) ClearMask() {
	n.SetMask(nil)
}

// Mask returns the current mask node, or nil if no mask is set.
func (n *Node) Mask() *Node {
	return n.mask
}

// --- Destruction ---

// DestroyOptions controls how far Destroy reaches.
type DestroyOptions struct {
	// Children destroys every child recursively instead of only detaching it.
	Children bool
}

// Destroy detaches the node from its parent, severs every child and marks
// the node destroyed. Child-list operations on a destroyed node fail with
// ErrDestroyed. Destroying twice is a no-op.
func (n *Node) Destroy(opts DestroyOptions) {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	removed := n.RemoveChildren()
	if opts.Children {
		for _, child := range removed {
			child.Destroy(opts)
		}
	}
	n.ClearMask()
	n.SetContent(nil)
	n.destroyed = true
	n.children = nil
	n.Filters = nil
	n.UserData = nil
	n.ChildrenObserver = nil
	n.OnAdded = nil
	n.OnRemoved = nil
}

// IsDestroyed reports whether Destroy has been called on this node.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}
