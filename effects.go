package bough

import "fmt"

type effectKind uint8

const (
	effectFilter effectKind = iota
	effectMask
)

func (k effectKind) String() string {
	if k == effectMask {
		return "mask"
	}
	return "filter"
}

type effectEntry struct {
	kind effectKind
	node *Node
}

// effectStack is the single LIFO that pairs every mask and filter push with
// its pop. Filters go on before the mask so the mask trims content before the
// filters see it on the way out.
type effectStack struct {
	entries []effectEntry
}

// push opens the effect scope for n. masks may be nil (no mask support) and
// filters may be nil (the software path has no filter stage).
func (s *effectStack) push(n *Node, masks MaskManager, filters FilterManager) {
	if filters != nil && len(n.Filters) > 0 {
		s.entries = append(s.entries, effectEntry{effectFilter, n})
		filters.PushFilters(n, n.Filters)
	}
	if masks != nil && n.mask != nil {
		if n.mask.parent == nil {
			n.mask.updateDetached(n)
		}
		s.entries = append(s.entries, effectEntry{effectMask, n})
		masks.PushMask(n, n.mask)
	}
}

// pop closes the scope opened by push for n, mask first.
func (s *effectStack) pop(n *Node, masks MaskManager, filters FilterManager) {
	if masks != nil && n.mask != nil {
		s.expect(effectMask, n)
		masks.PopMask(n, n.mask)
	}
	if filters != nil && len(n.Filters) > 0 {
		s.expect(effectFilter, n)
		filters.PopFilters(n, n.Filters)
	}
}

// expect pops the top entry and panics unless it is kind for n.
func (s *effectStack) expect(kind effectKind, n *Node) {
	if len(s.entries) == 0 {
		panic(fmt.Sprintf("bough: pop %s for %s on empty effect stack", kind, n))
	}
	top := s.entries[len(s.entries)-1]
	if top.kind != kind || top.node != n {
		panic(fmt.Sprintf("bough: pop %s for %s but top of effect stack is %s for %s",
			kind, n, top.kind, top.node))
	}
	s.entries[len(s.entries)-1] = effectEntry{}
	s.entries = s.entries[:len(s.entries)-1]
}

// depth returns the number of open effects.
func (s *effectStack) depth() int {
	return len(s.entries)
}

// reset drops every entry. Used when a pass is abandoned by a panic.
func (s *effectStack) reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
