// Package gpu renders a bough scene graph through Ebitengine.
//
// [Renderer] implements [bough.BatchRenderer]. Quads are grouped by a
// [bough.Batcher] into multi-texture batches and drawn with a Kage shader
// that selects one of up to four source images per vertex, so sprites from
// different textures share a single draw call. Ebitengine requires every
// source image of one draw to have the same size; the batcher is configured
// to break batches when texture sizes differ.
//
// Masks and filters render their subtree into pooled offscreen images sized
// to the node's bounds. A mask is rasterised into a second image and
// composited with the mask blend before the result is drawn back into the
// enclosing target; filters implementing [ImageFilter] are applied in order
// with ping-pong buffers.
//
// [Run] opens a window and drives a [bough.Scene] with Ebitengine's game
// loop.
package gpu
