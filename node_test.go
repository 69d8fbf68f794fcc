package bough

import (
	"errors"
	"testing"
)

// changeRecorder records ChildrenChanged calls.
type changeRecorder struct {
	indexes []int
}

func (r *changeRecorder) ChildrenChanged(parent *Node, index int) {
	r.indexes = append(r.indexes, index)
}

func assertChildren(t *testing.T, parent *Node, want ...*Node) {
	t.Helper()
	got := parent.Children()
	if len(got) != len(want) {
		t.Fatalf("%s has %d children, want %d", parent.Name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s child %d = %s, want %s", parent.Name, i, got[i].Name, want[i].Name)
		}
		if got[i].Parent() != parent {
			t.Errorf("%s.Parent() = %v, want %s", got[i].Name, got[i].Parent(), parent.Name)
		}
	}
}

func assertPanics(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for %s, got none", what)
		}
	}()
	fn()
}

func newChildren(names ...string) []*Node {
	out := make([]*Node, len(names))
	for i, name := range names {
		out[i] = NewContainer(name)
	}
	return out
}

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible || !n.Renderable {
		t.Error("new node should be visible and renderable")
	}
	if n.Content() != nil {
		t.Error("container should have no content")
	}
	if n.Parent() != nil {
		t.Error("new node should be detached")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- AddChild ---

func TestAddChildVariadicOrder(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	got := parent.AddChild(c...)
	if got != c[0] {
		t.Errorf("AddChild returned %v, want first argument", got)
	}
	assertChildren(t, parent, c...)
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)
	p2.AddChild(child)

	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	assertChildren(t, p2, child)
}

func TestAddChildReparentIsDetachedFirst(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	var events []string
	child.OnRemoved = func(parent *Node) {
		if child.Parent() != nil {
			t.Error("OnRemoved: child should already be detached")
		}
		if p2.NumChildren() != 0 {
			t.Error("OnRemoved: new parent list should not be mutated yet")
		}
		events = append(events, "removed:"+parent.Name)
	}
	child.OnAdded = func(parent *Node) {
		events = append(events, "added:"+parent.Name)
	}
	p2.AddChild(child)

	if len(events) != 2 || events[0] != "removed:p1" || events[1] != "added:p2" {
		t.Errorf("events = %v, want [removed:p1 added:p2]", events)
	}
}

func TestAddChildSameParentMovesToEnd(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)
	parent.AddChild(c[0])
	assertChildren(t, parent, c[1], c[2], c[0])
}

func TestAddChildAtSameParentAtLength(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)

	if _, err := parent.AddChildAt(c[0], 3); err != nil {
		t.Fatalf("AddChildAt(len): %v", err)
	}
	assertChildren(t, parent, c[1], c[2], c[0])

	if _, err := parent.AddChildAt(c[0], 4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddChildAt(len+1) err = %v, want ErrIndexOutOfRange", err)
	}
	assertChildren(t, parent, c[1], c[2], c[0])
}

func TestAddChildValidatesBeforeAttaching(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	assertPanics(t, "nil second child", func() { parent.AddChild(a, nil) })
	if parent.NumChildren() != 0 || a.Parent() != nil {
		t.Errorf("children = %d, a.Parent = %v; want nothing attached", parent.NumChildren(), a.Parent())
	}

	grand := NewContainer("grand")
	parent.AddChild(grand)
	b := NewContainer("b")
	assertPanics(t, "cycle in second child", func() { grand.AddChild(b, parent) })
	if b.Parent() != nil {
		t.Error("b attached despite a later cycle")
	}
	assertChildren(t, parent, grand)
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	assertPanics(t, "cycle", func() { grandchild.AddChild(parent) })
	assertChildren(t, grandchild)
}

func TestAddChildSelfPanic(t *testing.T) {
	n := NewContainer("self")
	assertPanics(t, "self-add", func() { n.AddChild(n) })
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewContainer("n")
	assertPanics(t, "nil child", func() { n.AddChild(nil) })
}

func TestAddChildHooks(t *testing.T) {
	parent := NewContainer("parent")
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec
	var added *Node
	child := NewContainer("child")
	child.OnAdded = func(p *Node) { added = p }

	parent.AddChild(NewContainer("first"))
	parent.AddChild(child)

	if added != parent {
		t.Errorf("OnAdded parent = %v, want %v", added, parent)
	}
	if len(rec.indexes) != 2 || rec.indexes[0] != 0 || rec.indexes[1] != 1 {
		t.Errorf("ChildrenChanged indexes = %v, want [0 1]", rec.indexes)
	}
}

// --- AddChildAt ---

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c[0], c[2])

	got, err := parent.AddChildAt(c[1], 1)
	if err != nil {
		t.Fatalf("AddChildAt: %v", err)
	}
	if got != c[1] {
		t.Error("AddChildAt should return the child")
	}
	assertChildren(t, parent, c...)
}

func TestAddChildAtBounds(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b")
	parent.AddChild(c[0])

	if _, err := parent.AddChildAt(c[1], 1); err != nil {
		t.Errorf("AddChildAt(len) should append: %v", err)
	}
	x := NewContainer("x")
	if _, err := parent.AddChildAt(x, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddChildAt(len+1) err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := parent.AddChildAt(x, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddChildAt(-1) err = %v, want ErrIndexOutOfRange", err)
	}
	if x.Parent() != nil {
		t.Error("failed AddChildAt must not attach the child")
	}
	assertChildren(t, parent, c...)
}

func TestAddChildAtFailureKeepsOldParent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	if _, err := p2.AddChildAt(child, 5); err == nil {
		t.Fatal("expected error")
	}
	assertChildren(t, p1, child)
}

func TestAddChildAtSameParent(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)

	if _, err := parent.AddChildAt(c[0], 2); err != nil {
		t.Fatalf("AddChildAt: %v", err)
	}
	assertChildren(t, parent, c[1], c[2], c[0])
}

// --- Swap / index ---

func TestSwapChildren(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	if err := parent.SwapChildren(c[2], c[0]); err != nil {
		t.Fatalf("SwapChildren: %v", err)
	}
	assertChildren(t, parent, c[2], c[1], c[0])
	if len(rec.indexes) != 1 || rec.indexes[0] != 0 {
		t.Errorf("ChildrenChanged indexes = %v, want [0]", rec.indexes)
	}

	// Swapping back restores the original order.
	if err := parent.SwapChildren(c[0], c[2]); err != nil {
		t.Fatalf("SwapChildren: %v", err)
	}
	assertChildren(t, parent, c...)
}

func TestSwapChildrenSelfNoHook(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	if err := parent.SwapChildren(c[1], c[1]); err != nil {
		t.Fatalf("SwapChildren(self): %v", err)
	}
	if len(rec.indexes) != 0 {
		t.Errorf("self swap fired ChildrenChanged %v", rec.indexes)
	}
	assertChildren(t, parent, c...)
}

func TestSwapChildrenNotChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	parent.AddChild(a)
	stranger := NewContainer("stranger")

	if err := parent.SwapChildren(a, stranger); !errors.Is(err, ErrNotChild) {
		t.Errorf("err = %v, want ErrNotChild", err)
	}
	assertChildren(t, parent, a)
}

func TestChildIndex(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)

	for i, child := range c {
		got, err := parent.ChildIndex(child)
		if err != nil || got != i {
			t.Errorf("ChildIndex(%s) = %d, %v; want %d", child.Name, got, err, i)
		}
	}
	if _, err := parent.ChildIndex(NewContainer("x")); !errors.Is(err, ErrNotChild) {
		t.Errorf("ChildIndex(non-child) err = %v, want ErrNotChild", err)
	}
	if _, err := parent.ChildIndex(nil); !errors.Is(err, ErrNotChild) {
		t.Errorf("ChildIndex(nil) err = %v, want ErrNotChild", err)
	}
}

func TestSetChildIndex(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c", "d")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	if err := parent.SetChildIndex(c[0], 2); err != nil {
		t.Fatalf("SetChildIndex: %v", err)
	}
	assertChildren(t, parent, c[1], c[2], c[0], c[3])

	if err := parent.SetChildIndex(c[3], 1); err != nil {
		t.Fatalf("SetChildIndex: %v", err)
	}
	assertChildren(t, parent, c[1], c[3], c[2], c[0])

	if len(rec.indexes) != 2 || rec.indexes[0] != 0 || rec.indexes[1] != 1 {
		t.Errorf("ChildrenChanged indexes = %v, want [0 1]", rec.indexes)
	}
}

func TestSetChildIndexErrors(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b")
	parent.AddChild(c...)

	if err := parent.SetChildIndex(c[0], 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetChildIndex(len) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := parent.SetChildIndex(NewContainer("x"), 0); !errors.Is(err, ErrNotChild) {
		t.Errorf("SetChildIndex(non-child) err = %v, want ErrNotChild", err)
	}
	assertChildren(t, parent, c...)
}

func TestChildAt(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b")
	parent.AddChild(c...)

	got, err := parent.ChildAt(1)
	if err != nil || got != c[1] {
		t.Errorf("ChildAt(1) = %v, %v; want b", got, err)
	}
	if _, err := parent.ChildAt(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ChildAt(2) err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := parent.ChildAt(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ChildAt(-1) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestChildByName(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "b")
	parent.AddChild(c...)

	if got := parent.ChildByName("b"); got != c[1] {
		t.Errorf("ChildByName(b) = %v, want first b", got)
	}
	if got := parent.ChildByName("z"); got != nil {
		t.Errorf("ChildByName(z) = %v, want nil", got)
	}
}

// --- Remove ---

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec
	var removedFrom *Node
	c[1].OnRemoved = func(p *Node) { removedFrom = p }

	if got := parent.RemoveChild(c[1]); got != c[1] {
		t.Errorf("RemoveChild returned %v", got)
	}
	assertChildren(t, parent, c[0], c[2])
	if c[1].Parent() != nil {
		t.Error("removed child should have nil parent")
	}
	if removedFrom != parent {
		t.Errorf("OnRemoved parent = %v, want %v", removedFrom, parent)
	}
	if len(rec.indexes) != 1 || rec.indexes[0] != 1 {
		t.Errorf("ChildrenChanged indexes = %v, want [1]", rec.indexes)
	}
}

func TestRemoveChildIdempotent(t *testing.T) {
	parent := NewContainer("parent")
	other := NewContainer("other")
	child := NewContainer("child")
	parent.AddChild(child)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	parent.RemoveChild(child)
	parent.RemoveChild(child)
	other.RemoveChild(child)

	if len(rec.indexes) != 1 {
		t.Errorf("ChildrenChanged fired %d times, want 1", len(rec.indexes))
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should be empty")
	}
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)

	got, err := parent.RemoveChildAt(0)
	if err != nil || got != c[0] {
		t.Fatalf("RemoveChildAt(0) = %v, %v", got, err)
	}
	assertChildren(t, parent, c[1], c[2])

	if _, err := parent.RemoveChildAt(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveChildAt(2) err = %v, want ErrIndexOutOfRange", err)
	}
	assertChildren(t, parent, c[1], c[2])
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent() != nil || parent.NumChildren() != 0 {
		t.Error("RemoveFromParent should detach")
	}
	child.RemoveFromParent()
}

func TestRemoveChildrenRange(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c", "d", "e")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	removed, err := parent.RemoveChildrenRange(1, 3)
	if err != nil {
		t.Fatalf("RemoveChildrenRange: %v", err)
	}
	if len(removed) != 2 || removed[0] != c[1] || removed[1] != c[2] {
		t.Errorf("removed = %v, want [b c]", removed)
	}
	assertChildren(t, parent, c[0], c[3], c[4])
	if len(rec.indexes) != 1 || rec.indexes[0] != 1 {
		t.Errorf("ChildrenChanged indexes = %v, want [1]", rec.indexes)
	}
}

func TestRemoveChildrenRangeDetachesBeforeNotify(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)

	calls := 0
	for _, child := range c {
		child.OnRemoved = func(p *Node) {
			calls++
			for _, other := range c {
				if other.Parent() != nil {
					t.Errorf("%s still attached during OnRemoved", other.Name)
				}
			}
			if p.NumChildren() != 0 {
				t.Error("parent list should already be empty")
			}
		}
	}
	if _, err := parent.RemoveChildrenRange(0, 3); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("OnRemoved calls = %d, want 3", calls)
	}
}

func TestRemoveChildrenRangeBoundaries(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b", "c")
	parent.AddChild(c...)
	rec := &changeRecorder{}
	parent.ChildrenObserver = rec

	for _, r := range [][2]int{{-1, 1}, {0, 4}, {2, 1}} {
		if _, err := parent.RemoveChildrenRange(r[0], r[1]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("RemoveChildrenRange(%d, %d) err = %v, want ErrInvalidRange", r[0], r[1], err)
		}
	}
	for _, r := range [][2]int{{0, 0}, {3, 3}, {1, 1}} {
		removed, err := parent.RemoveChildrenRange(r[0], r[1])
		if err != nil || removed == nil || len(removed) != 0 {
			t.Errorf("RemoveChildrenRange(%d, %d) = %v, %v; want empty", r[0], r[1], removed, err)
		}
	}
	if len(rec.indexes) != 0 {
		t.Errorf("failed or empty ranges fired ChildrenChanged %v", rec.indexes)
	}
	assertChildren(t, parent, c...)

	removed, err := parent.RemoveChildrenRange(0, 3)
	if err != nil || len(removed) != 3 {
		t.Errorf("full range = %v, %v", removed, err)
	}
}

func TestRemoveChildrenEmpty(t *testing.T) {
	parent := NewContainer("parent")
	removed := parent.RemoveChildren()
	if removed == nil || len(removed) != 0 {
		t.Errorf("RemoveChildren on empty = %v, want empty slice", removed)
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	c := newChildren("a", "b")
	parent.AddChild(c...)
	removed := parent.RemoveChildren()
	if len(removed) != 2 {
		t.Fatalf("removed %d, want 2", len(removed))
	}
	for _, child := range c {
		if child.Parent() != nil || child.IsDestroyed() {
			t.Errorf("%s should be detached but alive", child.Name)
		}
	}
}

// --- Invariants ---

func TestSingleParentInvariant(t *testing.T) {
	parents := newChildren("p0", "p1", "p2")
	child := NewContainer("child")
	parents[0].AddChild(child)
	parents[1].AddChild(child)
	if _, err := parents[2].AddChildAt(child, 0); err != nil {
		t.Fatal(err)
	}
	parents[0].AddChild(child)

	holders := 0
	for _, p := range parents {
		for _, c := range p.Children() {
			if c == child {
				holders++
				if child.Parent() != p {
					t.Errorf("child listed by %s but Parent() = %v", p.Name, child.Parent())
				}
			}
		}
	}
	if holders != 1 {
		t.Errorf("child appears in %d child lists, want 1", holders)
	}
}

// --- Destroy ---

func TestDestroy(t *testing.T) {
	parent := NewContainer("parent")
	n := NewContainer("n")
	c := newChildren("a", "b")
	parent.AddChild(n)
	n.AddChild(c...)

	n.Destroy(DestroyOptions{})

	if !n.IsDestroyed() {
		t.Error("IsDestroyed should be true")
	}
	if parent.NumChildren() != 0 {
		t.Error("destroyed node should be removed from parent")
	}
	for _, child := range c {
		if child.Parent() != nil {
			t.Errorf("%s parent should be cleared", child.Name)
		}
		if child.IsDestroyed() {
			t.Errorf("%s should not be destroyed without Children option", child.Name)
		}
	}
	if _, err := n.RemoveChildAt(0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("RemoveChildAt on destroyed err = %v, want ErrDestroyed", err)
	}
	if _, err := n.ChildAt(0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("ChildAt on destroyed err = %v, want ErrDestroyed", err)
	}
	if _, err := n.ChildIndex(c[0]); !errors.Is(err, ErrDestroyed) {
		t.Errorf("ChildIndex on destroyed err = %v, want ErrDestroyed", err)
	}
	x := NewContainer("x")
	if _, err := n.AddChildAt(x, 0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("AddChildAt on destroyed err = %v, want ErrDestroyed", err)
	}
	if x.Parent() != nil {
		t.Error("AddChildAt on destroyed attached the child")
	}
	assertPanics(t, "add to destroyed", func() { n.AddChild(NewContainer("x")) })
	assertPanics(t, "add destroyed", func() { parent.AddChild(n) })
}

func TestDestroyChildren(t *testing.T) {
	n := NewContainer("n")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	n.AddChild(child)
	child.AddChild(grandchild)

	n.Destroy(DestroyOptions{Children: true})
	if !child.IsDestroyed() || !grandchild.IsDestroyed() {
		t.Error("descendants should be destroyed")
	}
	n.Destroy(DestroyOptions{Children: true})
}

// --- Mask ---

func TestSetMaskTogglesRenderable(t *testing.T) {
	n := NewContainer("n")
	m1 := NewContainer("m1")
	m2 := NewContainer("m2")

	n.SetMask(m1)
	if m1.Renderable {
		t.Error("mask should be non-renderable while assigned")
	}
	n.SetMask(m2)
	if !m1.Renderable || m2.Renderable {
		t.Error("replacing a mask should restore the old one")
	}
	n.ClearMask()
	if !m2.Renderable || n.Mask() != nil {
		t.Error("ClearMask should restore the mask and clear it")
	}
}
