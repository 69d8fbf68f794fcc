package bough

// NameIndex is a ChildrenObserver that answers name lookups over one node's
// children without rescanning the list on every query. Structural changes
// drop only the entries at or after the lowest changed index; the rest of
// the list is rescanned lazily on the next Lookup.
type NameIndex struct {
	parent  *Node
	byName  map[string]int
	scanned int
}

// NewNameIndex installs a name index as parent's ChildrenObserver.
func NewNameIndex(parent *Node) *NameIndex {
	x := &NameIndex{parent: parent, byName: make(map[string]int)}
	parent.ChildrenObserver = x
	return x
}

// ChildrenChanged implements ChildrenObserver.
func (x *NameIndex) ChildrenChanged(parent *Node, index int) {
	if parent != x.parent || index >= x.scanned {
		return
	}
	for name, i := range x.byName {
		if i >= index {
			delete(x.byName, name)
		}
	}
	x.scanned = index
}

// Lookup returns the first child named name, or nil.
func (x *NameIndex) Lookup(name string) *Node {
	children := x.parent.Children()
	for i := x.scanned; i < len(children); i++ {
		if _, ok := x.byName[children[i].Name]; !ok {
			x.byName[children[i].Name] = i
		}
	}
	x.scanned = len(children)
	if i, ok := x.byName[name]; ok {
		return children[i]
	}
	return nil
}
