package bough

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestCamera() *Camera {
	return NewCamera(NewRect(0, 0, 800, 600))
}

func TestCameraDefaults(t *testing.T) {
	cam := newTestCamera()
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.Viewport.Width != 800 || cam.Viewport.Height != 600 {
		t.Errorf("Viewport = %v, want 800x600", cam.Viewport)
	}
}

func TestCameraIdentityView(t *testing.T) {
	cam := newTestCamera()
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newTestCamera()
	cam.X = 100
	cam.Y = 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom = 2.0

	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := newTestCamera()
	cam.Rotation = math.Pi / 2

	// Rotate(-pi/2) maps (1,0) to (0,-1) before centering.
	sx, sy := cam.WorldToScreen(1, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 299, epsilon) {
		t.Errorf("90deg rotation: WorldToScreen(1,0) = (%f,%f), want (400,299)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.Rotation = 0.3

	sx, sy := cam.WorldToScreen(123, -456)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 123, 1e-6) || !approxEqual(wy, -456, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (123,-456)", wx, wy)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := newTestCamera()
	cam.X = 400
	cam.Y = 300
	b := cam.VisibleBounds()
	if !approxEqual(b.X, 0, 1e-6) || !approxEqual(b.Y, 0, 1e-6) ||
		!approxEqual(b.Width, 800, 1e-6) || !approxEqual(b.Height, 600, 1e-6) {
		t.Errorf("VisibleBounds = %+v, want (0,0,800,600)", b)
	}

	cam.Zoom = 2.0
	b = cam.VisibleBounds()
	if !approxEqual(b.Width, 400, 1e-6) || !approxEqual(b.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds at zoom 2 size = (%f,%f), want (400,300)", b.Width, b.Height)
	}
}

func TestCameraFollow(t *testing.T) {
	scene := NewScene()
	cam := newTestCamera()
	scene.SetCamera(cam)

	target := NewContainer("target")
	target.SetPosition(200, 150)
	scene.Root().AddChild(target)
	scene.Update()

	cam.Follow(target, 0, 0, 1.0)
	cam.Update(1.0 / 60)
	if !approxEqual(cam.X, 200, epsilon) || !approxEqual(cam.Y, 150, epsilon) {
		t.Errorf("after snap follow: cam = (%f,%f), want (200,150)", cam.X, cam.Y)
	}
}

func TestCameraFollowLerpAndOffset(t *testing.T) {
	scene := NewScene()
	target := NewContainer("target")
	target.SetPosition(100, 0)
	scene.Root().AddChild(target)
	scene.Update()

	cam := newTestCamera()
	cam.Follow(target, 0, 10, 0.5)
	cam.Update(1.0 / 60)
	if !approxEqual(cam.X, 50, epsilon) || !approxEqual(cam.Y, 5, epsilon) {
		t.Errorf("lerp 0.5: cam = (%f,%f), want (50,5)", cam.X, cam.Y)
	}

	cam.Unfollow()
	cam.Update(1.0 / 60)
	if !approxEqual(cam.X, 50, epsilon) {
		t.Errorf("after Unfollow: X = %f, want 50", cam.X)
	}
}

func TestCameraFollowIgnoresView(t *testing.T) {
	scene := NewScene()
	cam := newTestCamera()
	cam.Zoom = 3
	scene.SetCamera(cam)

	target := NewContainer("target")
	target.SetPosition(10, 20)
	scene.Root().AddChild(target)
	scene.Update()

	cam.Follow(target, 0, 0, 1.0)
	cam.Update(0)
	if !approxEqual(cam.X, 10, epsilon) || !approxEqual(cam.Y, 20, epsilon) {
		t.Errorf("follow should use scene coordinates: cam = (%f,%f), want (10,20)", cam.X, cam.Y)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newTestCamera()
	cam.ScrollTo(500, 300, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("expected scrolling after ScrollTo")
	}

	for i := 0; i < 120; i++ {
		cam.Update(1.0 / 60)
	}
	if !approxEqual(cam.X, 500, 1) || !approxEqual(cam.Y, 300, 1) {
		t.Errorf("after ScrollTo: cam = (%f,%f), want (500,300)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("scroll should have finished")
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newTestCamera()
	cam.SetBounds(NewRect(0, 0, 2000, 1000))

	cam.X = -500
	cam.Y = -500
	cam.Update(0)
	if !approxEqual(cam.X, 400, epsilon) || !approxEqual(cam.Y, 300, epsilon) {
		t.Errorf("clamped = (%f,%f), want (400,300)", cam.X, cam.Y)
	}

	cam.X = 5000
	cam.Update(0)
	if !approxEqual(cam.X, 1600, epsilon) {
		t.Errorf("clamped X = %f, want 1600", cam.X)
	}

	cam.ClearBounds()
	cam.X = -500
	cam.Update(0)
	if cam.X != -500 {
		t.Errorf("after ClearBounds X = %f, want -500", cam.X)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := newTestCamera()
	cam.SetBounds(NewRect(0, 0, 200, 100))
	cam.Update(0)
	if !approxEqual(cam.X, 100, epsilon) || !approxEqual(cam.Y, 50, epsilon) {
		t.Errorf("small world: cam = (%f,%f), want centered (100,50)", cam.X, cam.Y)
	}
}

func TestSceneCameraDrivesView(t *testing.T) {
	scene := NewScene()
	cam := newTestCamera()
	cam.X = 400
	cam.Y = 300
	scene.SetCamera(cam)
	if scene.Camera() != cam {
		t.Fatal("Camera() should return the attached camera")
	}

	n := NewRectNode("r", 10, 10, ColorWhite)
	n.SetPosition(400, 300)
	scene.Root().AddChild(n)
	scene.Update()
	assertRect(t, "world at center", n.Bounds(), NewRect(400, 300, 10, 10))

	cam.X = 300
	scene.Update()
	assertRect(t, "world after pan", n.Bounds(), NewRect(500, 300, 10, 10))
	assertRect(t, "computed unchanged", n.ComputedBounds(), NewRect(400, 300, 10, 10))
}
