package compose

import (
	"math"
	"testing"

	"github.com/ivlev/motioncam/internal/animation"
	"github.com/ivlev/motioncam/internal/camera"
)

var hd = Viewport{Width: 1920, Height: 1080}

func restChannels() animation.Channels {
	return animation.Channels{Opacity: 1, Scale: 1}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestViewOffset(t *testing.T) {
	pose := camera.Pose{X: 960, Y: 540, Scale: 1}
	v := View(hd, pose, 0, 0)
	if v.OffsetX != 0 || v.OffsetY != 0 || v.Scale != 1 {
		t.Errorf("centered camera: got %+v", v)
	}

	pose = camera.Pose{X: 1000, Y: 500, Scale: 2}
	v = View(hd, pose, 3, -2)
	if v.OffsetX != 960-2000+3 || v.OffsetY != 540-1000-2 {
		t.Errorf("zoomed camera offset = (%v,%v)", v.OffsetX, v.OffsetY)
	}

	// The look-at point lands on the viewport center, shifted only by the shake.
	x, y := Apply(v.Matrix, pose.X, pose.Y)
	if !near(x, 963) || !near(y, 538) {
		t.Errorf("look-at maps to (%v,%v), want (963,538)", x, y)
	}
}

func TestShakeNotMagnifiedByZoom(t *testing.T) {
	pose := camera.Pose{X: 100, Y: 100, Scale: 3}
	still := View(hd, pose, 0, 0)
	shaken := View(hd, pose, 2, 1)
	if !near(shaken.OffsetX-still.OffsetX, 2) || !near(shaken.OffsetY-still.OffsetY, 1) {
		t.Errorf("shake was scaled: dx=%v dy=%v", shaken.OffsetX-still.OffsetX, shaken.OffsetY-still.OffsetY)
	}
}

func TestOmission(t *testing.T) {
	pose := camera.Pose{X: 960, Y: 540, Scale: 1}
	faded := restChannels()
	faded.Opacity = 0

	frame := Compose(hd, pose, 0, 0, []Element{
		{ID: "visible", Active: true, Channels: restChannels()},
		{ID: "inactive", Active: false, Channels: restChannels()},
		{ID: "transparent", Active: true, Channels: faded},
	})
	if len(frame.Elements) != 1 || frame.Elements[0].ID != "visible" {
		t.Fatalf("expected only the visible element, got %+v", frame.Elements)
	}
}

func TestBlurThreshold(t *testing.T) {
	pose := camera.Pose{X: 0, Y: 0, Scale: 1}
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.2, 0},
		{0.49, 0},
		{0.5, 0.5},
		{3.7, 3.7},
	}
	for _, tt := range tests {
		ch := restChannels()
		ch.Blur = tt.in
		frame := Compose(hd, pose, 0, 0, []Element{{ID: "e", Active: true, Channels: ch}})
		if got := frame.Elements[0].Blur; got != tt.want {
			t.Errorf("blur %v -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTransformOrder(t *testing.T) {
	pose := camera.Pose{X: 960, Y: 540, Scale: 1}
	ch := animation.Channels{Opacity: 1, TranslateX: 10, TranslateY: 0, Scale: 2, Rotation: 90}
	frame := Compose(hd, pose, 0, 0, []Element{{ID: "e", Active: true, AnchorX: 100, AnchorY: 200, Channels: ch}})
	tr := frame.Elements[0]

	// Local point (1,0): rotate 90 -> (0,1), scale 2 -> (0,2),
	// translate (10,0) -> (10,2), anchor -> (110,202).
	x, y := Apply(tr.World, 1, 0)
	if !near(x, 110) || !near(y, 202) {
		t.Errorf("world point = (%v,%v), want (110,202)", x, y)
	}

	// Screen applies the view on top; a centered unzoomed camera is identity.
	sx, sy := Apply(tr.Screen, 1, 0)
	if !near(sx, x) || !near(sy, y) {
		t.Errorf("screen point = (%v,%v), want (%v,%v)", sx, sy, x, y)
	}

	// Swapping scale and translate would move the anchor offset too.
	if near(x, 120) {
		t.Error("translate was scaled")
	}
}

func TestOpacityCapped(t *testing.T) {
	ch := restChannels()
	ch.Opacity = 1.3
	frame := Compose(hd, camera.Pose{Scale: 1}, 0, 0, []Element{{ID: "e", Active: true, Channels: ch}})
	if got := frame.Elements[0].Opacity; got != 1 {
		t.Errorf("opacity = %v, want 1", got)
	}
}
