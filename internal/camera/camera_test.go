package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/motioncam/internal/keyframe"
)

func TestQueryMidpoint(t *testing.T) {
	path, err := NewPath([]Keyframe{
		{Time: 0, X: 0, Y: 0, Zoom: 1},
		{Time: 1.0, X: 100, Y: 0, Zoom: 2},
	})
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}

	pose := path.Query(0.5)
	if pose.X != 50 || pose.Y != 0 || pose.Scale != 1.5 {
		t.Errorf("Query(0.5) = %+v, want {X:50 Y:0 Scale:1.5}", pose)
	}
}

func TestQueryExactAtKeyframes(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0.0, X: 960, Y: 540, Zoom: 1.0},
		{Time: 1.3, X: 412.5, Y: 233.25, Zoom: 1.75},
		{Time: 2.9, X: 1500.125, Y: 800.5, Zoom: 2.6},
		{Time: 4.0, X: 960, Y: 540, Zoom: 1.0},
	}
	path, err := NewPath(kfs)
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}

	for i, kf := range kfs {
		got := path.Query(kf.Time)
		want := Pose{X: kf.X, Y: kf.Y, Scale: kf.Zoom}
		if got != want {
			t.Errorf("keyframe %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestQueryClampsOutsideRange(t *testing.T) {
	path, err := NewPath([]Keyframe{
		{Time: 0.5, X: 10, Y: 20, Zoom: 1.2},
		{Time: 2.0, X: 30, Y: 40, Zoom: 2.4},
	})
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}

	if got := path.Query(0); got != (Pose{X: 10, Y: 20, Scale: 1.2}) {
		t.Errorf("before first: got %+v", got)
	}
	if got := path.Query(99); got != (Pose{X: 30, Y: 40, Scale: 2.4}) {
		t.Errorf("after last: got %+v", got)
	}
	if path.Duration() != 2.0 {
		t.Errorf("Duration = %v, want 2", path.Duration())
	}
}

func TestNewPathValidation(t *testing.T) {
	tests := []struct {
		name    string
		kfs     []Keyframe
		wantErr error
	}{
		{"empty", nil, keyframe.ErrEmpty},
		{"unordered", []Keyframe{{Time: 1, Zoom: 1}, {Time: 0.5, Zoom: 1}}, keyframe.ErrOrder},
		{"equal times", []Keyframe{{Time: 1, Zoom: 1}, {Time: 1, Zoom: 1}}, keyframe.ErrOrder},
		{"zero zoom", []Keyframe{{Time: 0, Zoom: 0}}, ErrZoom},
		{"negative time", []Keyframe{{Time: -0.5, Zoom: 1}, {Time: 1, Zoom: 1}}, ErrTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPath(tt.kfs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewPath([]Keyframe{{Time: 0, Zoom: 1, Name: "a"}, {Time: 1, Zoom: 1, Name: "a"}}); err == nil {
		t.Error("expected error for duplicate anchor name")
	}
}

func TestAnchors(t *testing.T) {
	path, err := NewPath([]Keyframe{
		{Time: 0, Zoom: 1},
		{Time: 1.6, Zoom: 1, Name: "zoom-in"},
		{Time: 2.4, Zoom: 2.2, Name: "close-up"},
	})
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}
	anchors := path.Anchors()
	if anchors["zoom-in"] != 1.6 || anchors["close-up"] != 2.4 || len(anchors) != 2 {
		t.Errorf("unexpected anchors %v", anchors)
	}
}

func TestStatic(t *testing.T) {
	pose := Pose{X: 640, Y: 360, Scale: 1}
	p := Static(pose)
	if got := p.Query(12.5); got != pose {
		t.Errorf("Static query = %+v", got)
	}
}

func TestShakeScalesInverselyWithZoom(t *testing.T) {
	s := DefaultShake()
	for _, tm := range []float64{0.1, 0.77, 3.3, 10.01} {
		x1, y1 := s.Offset(tm, 1)
		x2, y2 := s.Offset(tm, 2)
		if math.Abs(x1/2-x2) > 1e-12 || math.Abs(y1/2-y2) > 1e-12 {
			t.Errorf("t=%v: zoom 2 offset (%v,%v) is not half of (%v,%v)", tm, x2, y2, x1, y1)
		}
	}
}

func TestShakeBoundedAndVarying(t *testing.T) {
	s := Shake{Amplitude: 4, Frequency: 1.3}
	bound := s.Bound(1)
	distinct := map[float64]bool{}
	for i := 0; i < 600; i++ {
		x, y := s.Offset(float64(i)/60, 1)
		if math.Abs(x) > bound+1e-9 || math.Abs(y) > bound+1e-9 {
			t.Fatalf("offset (%v,%v) exceeds bound %v", x, y, bound)
		}
		distinct[math.Round(x*1000)] = true
	}
	if len(distinct) < 50 {
		t.Errorf("shake looks static: %d distinct values", len(distinct))
	}
}

func TestShakeDeterministicAndDisabled(t *testing.T) {
	s := DefaultShake()
	ax, ay := s.Offset(2.5, 1.4)
	bx, by := s.Offset(2.5, 1.4)
	if ax != bx || ay != by {
		t.Error("shake is not deterministic")
	}

	if x, y := (Shake{}).Offset(2.5, 1); x != 0 || y != 0 {
		t.Errorf("zero amplitude should not move, got (%v,%v)", x, y)
	}
	if x, y := s.Offset(2.5, 0); x != 0 || y != 0 {
		t.Errorf("zero zoom should not move, got (%v,%v)", x, y)
	}
}
