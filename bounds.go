package bough

// boundsCache memoises one bounds query. It is valid while id matches the
// owning node's boundsID.
type boundsCache struct {
	rect  Rect
	id    uint64
	valid bool
}

// --- Bounds ---

// Bounds returns the world-space axis-aligned bounds of the node's content and
// every visible descendant, using the transforms from the last transform pass.
// Returns EmptyRect when nothing in the subtree draws.
func (n *Node) Bounds() Rect {
	if c := &n.worldBounds; c.valid && c.id == n.boundsID {
		return c.rect
	}
	r := n.measure(n.worldTransform, (*Node).Bounds)
	n.worldBounds = boundsCache{rect: r, id: n.boundsID, valid: true}
	return r
}

// ComputedBounds is Bounds in scene space, before the frame's view transform
// is applied.
func (n *Node) ComputedBounds() Rect {
	if c := &n.computedBounds; c.valid && c.id == n.boundsID {
		return c.rect
	}
	r := n.measure(n.computedTransform, (*Node).ComputedBounds)
	n.computedBounds = boundsCache{rect: r, id: n.boundsID, valid: true}
	return r
}

// measure starts from the content bounds under m and unions in every visible
// child that produced content. child returns a child's bounds in the same
// space as m.
func (n *Node) measure(m Matrix, child func(*Node) Rect) Rect {
	r := EmptyRect
	if n.content != nil {
		r = m.TransformRect(n.content.LocalBounds())
	}
	for _, c := range n.children {
		if !c.Visible {
			continue
		}
		r.Enlarge(child(c))
	}
	return r
}

// InvalidateBounds drops the cached bounds of n and every ancestor. Content
// implementations call it when their geometry changes.
func (n *Node) InvalidateBounds() {
	n.invalidateBounds()
}

func (n *Node) invalidateBounds() {
	for p := n; p != nil; p = p.parent {
		p.boundsID++
	}
}

// --- Local bounds and size ---

// LocalBounds returns the bounds of the subtree measured as if n had the
// identity transform, so the result does not depend on n's own position,
// scale or rotation. Descendant transforms are composed from scratch; the
// cached world state is left untouched.
func (n *Node) LocalBounds() Rect {
	return n.localMeasure(IdentityMatrix)
}

func (n *Node) localMeasure(m Matrix) Rect {
	r := EmptyRect
	if n.content != nil {
		r = m.TransformRect(n.content.LocalBounds())
	}
	for _, c := range n.children {
		if !c.Visible {
			continue
		}
		r.Enlarge(c.localMeasure(m.Multiply(localMatrix(c))))
	}
	return r
}

// Width returns the node's scaled width: ScaleX times the local extent.
func (n *Node) Width() float64 {
	lb := n.LocalBounds()
	if lb.IsEmpty() {
		return 0
	}
	return n.ScaleX * lb.Width
}

// Height returns the node's scaled height: ScaleY times the local extent.
func (n *Node) Height() float64 {
	lb := n.LocalBounds()
	if lb.IsEmpty() {
		return 0
	}
	return n.ScaleY * lb.Height
}

// SetWidth sets ScaleX so that Width reports w. A node with no horizontal
// extent gets scale 1.
func (n *Node) SetWidth(w float64) {
	n.ScaleX = scaleFor(w, n.LocalBounds(), true)
	n.MarkDirty()
}

// SetHeight sets ScaleY so that Height reports h. A node with no vertical
// extent gets scale 1.
func (n *Node) SetHeight(h float64) {
	n.ScaleY = scaleFor(h, n.LocalBounds(), false)
	n.MarkDirty()
}

func scaleFor(target float64, lb Rect, horizontal bool) float64 {
	if lb.IsEmpty() {
		return 1
	}
	extent := lb.Height
	if horizontal {
		extent = lb.Width
	}
	if extent == 0 {
		return 1
	}
	return target / extent
}
