package bough

import "math"

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslationMatrix returns a pure translation by (tx, ty).
func TranslationMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Multiply returns p * c, i.e. c applied first, then p.
func (p Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// TransformRect returns the axis-aligned bounding box of r's four corners
// after transformation. EmptyRect maps to EmptyRect.
func (m Matrix) TransformRect(r Rect) Rect {
	if r.IsEmpty() {
		return r
	}
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.X+r.Width, r.Y)
	x2, y2 := m.Apply(r.X, r.Y+r.Height)
	x3, y3 := m.Apply(r.X+r.Width, r.Y+r.Height)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// localMatrix computes the local affine matrix from the node's transform
// properties.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func localMatrix(n *Node) Matrix {
	sx := n.ScaleX
	sy := n.ScaleY

	sin, cos := math.Sincos(n.Rotation)

	var tanSkewX, tanSkewY float64
	if n.SkewX != 0 {
		tanSkewX = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		tanSkewY = math.Tan(n.SkewY)
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	px := n.PivotX
	py := n.PivotY
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return Matrix{ra, rb, rc, rd, rtx + n.X, rty + n.Y}
}

// updateTransform recomputes n's world and computed transforms and recurses
// into visible children in list order. Invisible nodes are skipped together
// with their subtree. The post-order stamp is taken from f after every child
// has finished; f may be nil for out-of-frame recomputation, in which case
// nothing is stamped and parentless nodes compose against the identity.
//
// It reports whether any geometry in the subtree moved or changed
// visibility, which is what invalidates bounds caches on the way back up.
func (n *Node) updateTransform(f *Frame) bool {
	if !n.Visible {
		return false
	}

	parentWorld, parentComputed := IdentityMatrix, IdentityMatrix
	parentAlpha := 1.0
	var parentID uint64
	if p := n.parent; p != nil {
		parentWorld, parentComputed = p.worldTransform, p.computedTransform
		parentAlpha = p.worldAlpha
		parentID = p.worldID
	} else if f != nil {
		parentWorld = f.view
		parentID = f.viewID
	}

	changed := false
	if n.localDirty || n.parentWorldID != parentID {
		local := localMatrix(n)
		n.worldTransform = parentWorld.Multiply(local)
		n.computedTransform = parentComputed.Multiply(local)
		n.parentWorldID = parentID
		n.localDirty = false
		n.worldID++
		changed = true
	}
	n.worldAlpha = parentAlpha * n.Alpha

	for _, child := range n.children {
		if child.Visible != child.visibleSeen {
			child.visibleSeen = child.Visible
			changed = true
		}
		if child.updateTransform(f) {
			changed = true
		}
	}

	if changed {
		n.boundsID++
	}
	if f != nil {
		f.stats.NodesUpdated++
		n.updatePostOrder = f.nextUpdateOrder()
	}
	return changed
}

// updateDetached composes n against base's world transform. Used for masks
// that live outside the scene tree: their transforms are relative to the
// node they mask.
func (n *Node) updateDetached(base *Node) {
	local := localMatrix(n)
	n.worldTransform = base.worldTransform.Multiply(local)
	n.computedTransform = base.computedTransform.Multiply(local)
	n.worldAlpha = n.Alpha
	n.localDirty = false
	n.worldID++
	n.boundsID++
	for _, child := range n.children {
		child.updateTransform(nil)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.localDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.localDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.localDirty = true
}

// SetSkew sets the node's SkewX and SkewY and marks it dirty.
func (n *Node) SetSkew(sx, sy float64) {
	n.SkewX = sx
	n.SkewY = sy
	n.localDirty = true
}

// SetPivot sets the node's PivotX and PivotY and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.localDirty = true
}

// SetAlpha sets the node's alpha. World alpha is recomposed on the next
// transform pass.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
}

// MarkDirty marks the node's transform as dirty and drops cached bounds up
// the ancestor chain. Call it after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.localDirty = true
	n.invalidateBounds()
}

// WorldTransform returns the transform computed by the last transform pass,
// including the frame's view transform. Stale for invisible subtrees.
func (n *Node) WorldTransform() Matrix {
	return n.worldTransform
}

// ComputedTransform returns the scene-space transform (without the view)
// computed by the last transform pass.
func (n *Node) ComputedTransform() Matrix {
	return n.computedTransform
}

// WorldAlpha returns the alpha composited through every ancestor.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.worldTransform.Invert().Apply(wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.worldTransform.Apply(lx, ly)
}
