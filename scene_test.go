package bough

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("Root() should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root name = %q, want %q", s.Root().Name, "root")
	}
	if s.Frame() == nil {
		t.Fatal("Frame() should not be nil")
	}
}

func TestSceneUpdateAndRender(t *testing.T) {
	s := NewScene()
	a := NewNode("a", probe{})
	s.Root().AddChild(a)
	s.SetView(TranslationMatrix(5, 0))

	s.Update()
	rec := &recorder{}
	s.RenderBatched(rec)

	assertLog(t, rec.log, "start", "draw a", "flush")
	assertMatrix(t, "a world", a.WorldTransform(), TranslationMatrix(5, 0))
	assertRect(t, "content", s.ContentBounds(), NewRect(0, 0, 1, 1))
}

func TestSceneDebugLogsFrameStats(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	SetLogger(l)
	defer SetLogger(nil)

	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	s.Root().AddChild(NewNode("a", probe{}))
	s.Update()
	s.RenderCanvas(&recorder{})

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "frame" {
		t.Fatalf("last entry = %v, want frame stats", entry)
	}
	if entry.Data["nodes_drawn"] != 2 {
		t.Errorf("nodes_drawn = %v, want 2", entry.Data["nodes_drawn"])
	}
}
