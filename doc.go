// Package bough is the scene-graph core of a retained-mode 2D renderer.
//
// Bough owns the node hierarchy, the per-frame transform and bounds
// propagation, and the draw traversal that nests clipping masks and
// post-process filters around GPU batches. Actual drawing is delegated to a
// backend: [github.com/phanxgames/bough/gpu] renders through Ebitengine with
// multi-texture batching, and [github.com/phanxgames/bough/canvas] rasterises
// in software.
//
// # Quick start
//
//	scene := bough.NewScene()
//	ui := bough.NewContainer("ui")
//	scene.Root().AddChild(ui)
//
//	hero := bough.NewSprite("hero", tex)
//	hero.SetPosition(100, 50)
//	ui.AddChild(hero)
//
//	// once per frame
//	scene.Update()
//	scene.RenderBatched(renderer)
//
// # Scene graph
//
// Every display element is a [Node]. Any node may hold children; a node
// created with [NewContainer] has no content of its own and only groups its
// children. Children are drawn in list order, index 0 first (behind later
// siblings). A node has at most one parent; adding a node that already has a
// parent detaches it from the old parent first.
//
// Index-based operations ([Node.AddChildAt], [Node.ChildAt],
// [Node.SetChildIndex], [Node.RemoveChildAt], [Node.RemoveChildrenRange])
// and membership checks ([Node.ChildIndex], [Node.SwapChildren]) return
// sentinel errors ([ErrIndexOutOfRange], [ErrNotChild], [ErrInvalidRange])
// and leave the tree unchanged on failure. Removing a node that is not a
// child is a no-op.
//
// # Frames
//
// A [Frame] carries the two monotonically increasing counters used for
// staleness checks: the transform post-order stamp ([Node.UpdatePostOrder])
// and the draw-submission stamp ([Node.DisplayOrder]). It also owns the
// mask/filter effect stack. Each [Scene] has its own frame, so independent
// scenes never share counters.
//
// # Bounds
//
// [Node.Bounds] and [Node.ComputedBounds] return the axis-aligned extent of
// a node and its visible subtree, memoised until geometry, children or
// transforms change. A node with no visible content reports [EmptyRect],
// which is distinct from a zero-sized rectangle at the origin.
package bough
