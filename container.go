package bough

import "fmt"

// --- Tree manipulation ---

// AddChild appends children to this node's child list in argument order and
// returns the first one. A child that already has a parent is removed from
// that parent first. Panics if a child is nil, is this node or one of its
// ancestors (cycle), or if either side is destroyed.
func (n *Node) AddChild(children ...*Node) *Node {
	for _, child := range children {
		n.checkAttachable(child, "AddChild")
	}
	for _, child := range children {
		n.attach(child, len(n.children))
	}
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// AddChildAt inserts child at index, which must be in [0, len(children)].
// Index len(children) appends. Moving an existing child removes it first and
// clamps index to the shortened list. Returns ErrDestroyed on a destroyed
// node; otherwise panics like AddChild.
func (n *Node) AddChildAt(child *Node, index int) (*Node, error) {
	if err := n.checkAlive("AddChildAt"); err != nil {
		return nil, err
	}
	n.checkAttachable(child, "AddChildAt")
	if index < 0 || index > len(n.children) {
		return nil, fmt.Errorf("AddChildAt(%s, %d) on %s with %d children: %w",
			child, index, n, len(n.children), ErrIndexOutOfRange)
	}
	n.attach(child, index)
	return child, nil
}

// SwapChildren exchanges the positions of a and b. Swapping a node with
// itself is a no-op.
func (n *Node) SwapChildren(a, b *Node) error {
	if err := n.checkAlive("SwapChildren"); err != nil {
		return err
	}
	i, err := n.ChildIndex(a)
	if err != nil {
		return err
	}
	j, err := n.ChildIndex(b)
	if err != nil {
		return err
	}
	if i == j {
		return nil
	}
	n.children[i], n.children[j] = b, a
	n.childrenChanged(min(i, j))
	return nil
}

// ChildIndex returns the position of child in this node's child list.
// A node that is not a direct child is a programming error, reported as
// ErrNotChild.
func (n *Node) ChildIndex(child *Node) (int, error) {
	if err := n.checkAlive("ChildIndex"); err != nil {
		return -1, err
	}
	if child != nil && child.parent == n {
		for i, c := range n.children {
			if c == child {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("ChildIndex(%v) on %s: %w", child, n, ErrNotChild)
}

// SetChildIndex moves child to index among its siblings, preserving the
// relative order of all other children.
func (n *Node) SetChildIndex(child *Node, index int) error {
	if err := n.checkAlive("SetChildIndex"); err != nil {
		return err
	}
	if index < 0 || index >= len(n.children) {
		return fmt.Errorf("SetChildIndex(%v, %d) on %s with %d children: %w",
			child, index, n, len(n.children), ErrIndexOutOfRange)
	}
	oldIndex, err := n.ChildIndex(child)
	if err != nil {
		return err
	}
	if oldIndex == index {
		return nil
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.childrenChanged(min(oldIndex, index))
	return nil
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) (*Node, error) {
	if err := n.checkAlive("ChildAt"); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("ChildAt(%d) on %s with %d children: %w",
			index, n, len(n.children), ErrIndexOutOfRange)
	}
	return n.children[index], nil
}

// ChildByName returns the first child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// RemoveChild detaches each argument that is currently a child of this node
// and returns the first argument. Arguments that are not children are
// ignored, so "make sure this is detached" can be called any number of times.
func (n *Node) RemoveChild(children ...*Node) *Node {
	for _, child := range children {
		if child == nil || child.parent != n {
			continue
		}
		index, err := n.ChildIndex(child)
		if err != nil {
			continue
		}
		n.detachAt(index)
		n.childrenChanged(index)
		if child.OnRemoved != nil {
			child.OnRemoved(n)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if err := n.checkAlive("RemoveChildAt"); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("RemoveChildAt(%d) on %s with %d children: %w",
			index, n, len(n.children), ErrIndexOutOfRange)
	}
	child := n.detachAt(index)
	n.childrenChanged(index)
	if child.OnRemoved != nil {
		child.OnRemoved(n)
	}
	return child, nil
}

// RemoveChildrenRange removes the children in the half-open range
// [begin, end) and returns them in their former order. A zero-length range
// within [0, len] removes nothing and returns an empty slice. Every removed
// node is detached before any OnRemoved callback runs.
func (n *Node) RemoveChildrenRange(begin, end int) ([]*Node, error) {
	if err := n.checkAlive("RemoveChildrenRange"); err != nil {
		return nil, err
	}
	if begin < 0 || end > len(n.children) || begin > end {
		return nil, fmt.Errorf("RemoveChildrenRange(%d, %d) on %s with %d children: %w",
			begin, end, n, len(n.children), ErrInvalidRange)
	}
	if begin == end {
		return []*Node{}, nil
	}

	removed := make([]*Node, end-begin)
	copy(removed, n.children[begin:end])
	for _, child := range removed {
		child.parent = nil
		child.localDirty = true
	}
	tail := copy(n.children[begin:], n.children[end:])
	for i := begin + tail; i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = n.children[:begin+tail]
	n.childrenChanged(begin)

	for _, child := range removed {
		if child.OnRemoved != nil {
			child.OnRemoved(n)
		}
	}
	return removed, nil
}

// RemoveChildren detaches all children and returns them. Children are NOT
// destroyed. Calling it on a node without children returns an empty slice.
func (n *Node) RemoveChildren() []*Node {
	removed, err := n.RemoveChildrenRange(0, len(n.children))
	if err != nil {
		return []*Node{}
	}
	return removed
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// --- Helpers ---

// checkAttachable panics on the programming errors AddChild refuses.
func (n *Node) checkAttachable(child *Node, op string) {
	if child == nil {
		panic("bough: cannot add nil child")
	}
	if n.destroyed {
		panic(fmt.Sprintf("bough: %s on destroyed node %q", op, n.Name))
	}
	if child.destroyed {
		panic(fmt.Sprintf("bough: %s of destroyed node %q", op, child.Name))
	}
	if isAncestor(child, n) {
		panic("bough: adding child would create a cycle")
	}
}

// checkAlive reports ErrDestroyed for operations on a destroyed node.
func (n *Node) checkAlive(op string) error {
	if n.destroyed {
		return fmt.Errorf("%s on %s: %w", op, n, ErrDestroyed)
	}
	return nil
}

// attach detaches child from any current parent and inserts it at index.
// The old parent is fully updated before this node's list is touched.
func (n *Node) attach(child *Node, index int) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	index = min(index, len(n.children))
	child.parent = n
	child.localDirty = true
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenChanged(index)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	if child.OnAdded != nil {
		child.OnAdded(n)
	}
}

// detachAt splices out the child at index and clears its parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) detachAt(index int) *Node {
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	child.localDirty = true
	return child
}

// childrenChanged invalidates cached bounds and notifies the observer once
// with the lowest affected index.
func (n *Node) childrenChanged(index int) {
	n.invalidateBounds()
	if n.ChildrenObserver != nil {
		n.ChildrenObserver.ChildrenChanged(n, index)
	}
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
