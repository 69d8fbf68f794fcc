package bough

// MaskManager clips drawing to a mask node's geometry. PushMask is called
// with the masked node and its mask before the masked subtree draws; PopMask
// is called with the same pair after it.
type MaskManager interface {
	PushMask(target, mask *Node)
	PopMask(target, mask *Node)
}

// FilterManager redirects a subtree's output through a filter chain.
type FilterManager interface {
	PushFilters(target *Node, filters []Filter)
	PopFilters(target *Node, filters []Filter)
}

// BatchRenderer is the GPU backend contract. Quads accumulate into a batch
// between Start and Flush; Flush submits whatever is pending.
type BatchRenderer interface {
	MaskManager
	FilterManager
	Start()
	Flush()
	DrawQuad(q *Quad)
}

// CanvasRenderer is the software backend contract. It draws immediately and
// has no batch or filter stage.
type CanvasRenderer interface {
	MaskManager
	DrawQuad(q *Quad)
}

// renderBatched draws n and its subtree.
//
// Invisible nodes are unstamped and skipped. Visible nodes receive the next
// display-order stamp. Zero world alpha or a non-renderable node stops the
// pass for the whole subtree. Nodes carrying a mask or filters are drawn in
// their own batch: the open batch is flushed, filters then mask are pushed,
// and after the subtree the mask then filters are popped before a fresh
// batch starts.
func (f *Frame) renderBatched(n *Node, r BatchRenderer) {
	if !n.Visible {
		n.displayOrder = 0
		return
	}
	n.displayOrder = f.nextDisplayOrder()
	if n.worldAlpha <= 0 || !n.Renderable {
		return
	}
	f.stats.NodesDrawn++

	if n.mask == nil && len(n.Filters) == 0 {
		emitBatched(n, r)
		for _, child := range n.children {
			f.renderBatched(child, r)
		}
		return
	}

	r.Flush()
	f.openEffects(n, r, r)
	r.Start()
	emitBatched(n, r)
	for _, child := range n.children {
		f.renderBatched(child, r)
	}
	r.Flush()
	f.effects.pop(n, r, r)
	r.Start()
}

// renderCanvas is renderBatched without batching or filters.
func (f *Frame) renderCanvas(n *Node, r CanvasRenderer) {
	if !n.Visible {
		n.displayOrder = 0
		return
	}
	n.displayOrder = f.nextDisplayOrder()
	if n.worldAlpha <= 0 || !n.Renderable {
		return
	}
	f.stats.NodesDrawn++

	if n.mask != nil {
		f.openEffects(n, r, nil)
	}
	emitCanvas(n, r)
	for _, child := range n.children {
		f.renderCanvas(child, r)
	}
	if n.mask != nil {
		f.effects.pop(n, r, nil)
	}
}

func (f *Frame) openEffects(n *Node, masks MaskManager, filters FilterManager) {
	f.effects.push(n, masks, filters)
	f.stats.EffectScopes++
	if d := f.effects.depth(); d > f.stats.MaxEffects {
		f.stats.MaxEffects = d
	}
}

func emitBatched(n *Node, r BatchRenderer) {
	if d, ok := n.content.(BatchDrawer); ok {
		d.DrawBatched(r, n)
	}
}

func emitCanvas(n *Node, r CanvasRenderer) {
	if d, ok := n.content.(CanvasDrawer); ok {
		d.DrawCanvas(r, n)
	}
}

// RenderMaskBatched draws a mask subtree into r for backends that rasterise
// masks. The mask root is drawn even though assigning it as a mask made it
// non-renderable. No ordering stamps are taken and nested effects are
// ignored.
func RenderMaskBatched(mask *Node, r BatchRenderer) {
	if !mask.Visible {
		return
	}
	emitBatched(mask, r)
	for _, child := range mask.children {
		renderMaskBatched(child, r)
	}
}

func renderMaskBatched(n *Node, r BatchRenderer) {
	if !n.Visible || !n.Renderable {
		return
	}
	emitBatched(n, r)
	for _, child := range n.children {
		renderMaskBatched(child, r)
	}
}

// RenderMaskCanvas is RenderMaskBatched for the software path.
func RenderMaskCanvas(mask *Node, r CanvasRenderer) {
	if !mask.Visible {
		return
	}
	emitCanvas(mask, r)
	for _, child := range mask.children {
		renderMaskCanvas(child, r)
	}
}

func renderMaskCanvas(n *Node, r CanvasRenderer) {
	if !n.Visible || !n.Renderable {
		return
	}
	emitCanvas(n, r)
	for _, child := range n.children {
		renderMaskCanvas(child, r)
	}
}
