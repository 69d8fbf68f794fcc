package bough

import (
	"testing"
)

// discardBatches drops every submitted batch.
type discardBatches struct{}

func (discardBatches) SubmitBatch(*BatchData) {}

// batchOnly is a BatchRenderer over a Batcher with no-op effects.
type batchOnly struct {
	*Batcher
}

func (r batchOnly) DrawQuad(q *Quad)                  { r.Add(q) }
func (batchOnly) PushMask(target, mask *Node)         {}
func (batchOnly) PopMask(target, mask *Node)          {}
func (batchOnly) PushFilters(target *Node, _ []Filter) {}
func (batchOnly) PopFilters(target *Node, _ []Filter)  {}

// setupBenchScene creates a Scene with n sprite nodes in a 100-wide grid,
// alternating between two textures.
func setupBenchScene(n int) *Scene {
	s := NewScene()
	root := s.Root()
	texA := newTestTexture(32, 32)
	texB := newTestTexture(32, 32)
	for i := 0; i < n; i++ {
		tex := texA
		if i%2 == 1 {
			tex = texB
		}
		sp := NewSprite("sp", tex)
		sp.SetPosition(float64(i%100)*40, float64(i/100)*40)
		root.AddChild(sp)
	}
	return s
}

func BenchmarkUpdate_10000Sprites_Clean(b *testing.B) {
	s := setupBenchScene(10000)
	s.Update()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Update()
	}
}

func BenchmarkUpdate_10000Sprites_Rotating(b *testing.B) {
	s := setupBenchScene(10000)
	children := s.Root().Children()
	s.Update()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, child := range children {
			child.SetRotation(child.Rotation + 0.01)
		}
		s.Update()
	}
}

func BenchmarkUpdate_10000Sprites_ViewChange(b *testing.B) {
	s := setupBenchScene(10000)
	s.Update()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.SetView(TranslationMatrix(float64(i%10), 0))
		s.Update()
	}
}

func BenchmarkBounds_10000Sprites(b *testing.B) {
	s := setupBenchScene(10000)
	children := s.Root().Children()
	s.Update()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		children[i%len(children)].MarkDirty()
		s.Update()
		_ = s.Root().Bounds()
	}
}

func BenchmarkRenderBatched_10000Sprites(b *testing.B) {
	s := setupBenchScene(10000)
	r := batchOnly{NewBatcher(4, discardBatches{})}
	s.Update()
	s.RenderBatched(r)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.RenderBatched(r)
	}
}

func BenchmarkRenderBatched_Masked(b *testing.B) {
	s := setupBenchScene(0)
	for i := 0; i < 100; i++ {
		group := NewContainer("group")
		for j := 0; j < 100; j++ {
			group.AddChild(NewRectNode("sp", 8, 8, ColorWhite))
		}
		group.SetMask(NewRectNode("mask", 40, 40, ColorWhite))
		s.Root().AddChild(group)
	}
	r := batchOnly{NewBatcher(4, discardBatches{})}
	s.Update()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.RenderBatched(r)
	}
}
