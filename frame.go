package bough

import (
	"fmt"
	"time"
)

// Frame is the traversal context for one scene graph. It owns the view
// transform, the two ordering counters and the effect stack, so independent
// scene graphs never share state. A Frame is not safe for concurrent use.
type Frame struct {
	view   Matrix
	viewID uint64

	updateCounter  uint64
	displayCounter uint64

	effects effectStack
	stats   FrameStats
}

// FrameStats holds counters for the most recent update and render passes.
type FrameStats struct {
	NodesUpdated int
	NodesDrawn   int
	EffectScopes int
	MaxEffects   int
	UpdateTime   time.Duration
	RenderTime   time.Duration
}

// NewFrame returns a frame with the identity view transform.
func NewFrame() *Frame {
	return &Frame{view: IdentityMatrix, viewID: nextViewID()}
}

// viewIDCounter hands out view IDs unique across frames, so a root updated
// by a different frame always recomposes against that frame's view.
var viewIDCounter uint64

func nextViewID() uint64 {
	viewIDCounter++
	return viewIDCounter
}

// SetView sets the transform applied above every root node. World transforms
// include it; computed transforms do not.
func (f *Frame) SetView(m Matrix) {
	if f.view == m {
		return
	}
	f.view = m
	f.viewID = nextViewID()
}

// View returns the current view transform.
func (f *Frame) View() Matrix {
	return f.view
}

// Stats returns counters from the last passes.
func (f *Frame) Stats() FrameStats {
	return f.stats
}

// UpdateTransform runs the transform pass over root and its visible subtree.
// Every updated node receives an update post-order stamp larger than the
// stamps of all of its descendants.
func (f *Frame) UpdateTransform(root *Node) {
	start := time.Now()
	f.stats.NodesUpdated = 0
	if root.Visible != root.visibleSeen {
		root.visibleSeen = root.Visible
		root.boundsID++
	}
	root.updateTransform(f)
	f.stats.UpdateTime = time.Since(start)
}

// RenderBatched runs the GPU draw pass over root. The renderer receives a
// Start before the first node and a Flush after the last.
func (f *Frame) RenderBatched(root *Node, r BatchRenderer) {
	start := time.Now()
	f.beginRender()
	r.Start()
	f.renderBatched(root, r)
	r.Flush()
	f.endRender()
	f.stats.RenderTime = time.Since(start)
}

// RenderCanvas runs the software draw pass over root.
func (f *Frame) RenderCanvas(root *Node, r CanvasRenderer) {
	start := time.Now()
	f.beginRender()
	f.renderCanvas(root, r)
	f.endRender()
	f.stats.RenderTime = time.Since(start)
}

// beginRender clears per-pass stats. The effect stack is reset in case a
// previous pass was abandoned by a panic.
func (f *Frame) beginRender() {
	f.stats.NodesDrawn = 0
	f.stats.EffectScopes = 0
	f.stats.MaxEffects = 0
	f.effects.reset()
}

// endRender panics if an effect scope leaked out of the pass.
func (f *Frame) endRender() {
	if d := f.effects.depth(); d != 0 {
		f.effects.reset()
		panic(fmt.Sprintf("bough: %d effects still open after render pass", d))
	}
}

func (f *Frame) nextUpdateOrder() uint64 {
	f.updateCounter++
	return f.updateCounter
}

func (f *Frame) nextDisplayOrder() uint64 {
	f.displayCounter++
	return f.displayCounter
}
