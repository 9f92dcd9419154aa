package director

import (
	"math"
	"testing"

	"github.com/ivlev/motioncam/internal/camera"
)

func TestPlan(t *testing.T) {
	director := NewDirector(1280, 720)

	regions := []Region{
		{X: 50, Y: 150, W: 250, H: 100},
		{Name: "title", X: 50, Y: 50, W: 150, H: 50},
	}

	keyframes, err := director.Plan(regions, 10.0)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// start + 2 regions + end
	if len(keyframes) != 4 {
		t.Fatalf("Expected 4 keyframes, got %d", len(keyframes))
	}

	// Reading order puts the title first; unnamed regions are numbered by position.
	wantNames := []string{StartName, "title", "region_2", EndName}
	for i, kf := range keyframes {
		if kf.Name != wantNames[i] {
			t.Errorf("keyframe %d name = %q, want %q", i, kf.Name, wantNames[i])
		}
	}

	// available = 10 - 2 = 8, dwell = 4 clamped to 3
	wantTimes := []float64{0, 1, 4, 7}
	for i, kf := range keyframes {
		if kf.Time != wantTimes[i] {
			t.Errorf("keyframe %d time = %v, want %v", i, kf.Time, wantTimes[i])
		}
	}

	title := keyframes[1]
	if title.X != 125 || title.Y != 75 {
		t.Errorf("title center = (%v,%v), want (125,75)", title.X, title.Y)
	}

	// The path built from the plan must be valid.
	if _, err := camera.NewPath(keyframes); err != nil {
		t.Errorf("plan does not form a valid path: %v", err)
	}

	for i, kf := range keyframes {
		t.Logf("Keyframe %d: time=%.1fs, name=%s, zoom=%.2f", i, kf.Time, kf.Name, kf.Zoom)
	}
}

func TestSameRowSortsByX(t *testing.T) {
	director := NewDirector(1280, 720)
	regions := []Region{
		{Name: "right", X: 600, Y: 105, W: 10, H: 10},
		{Name: "left", X: 100, Y: 100, W: 10, H: 10},
		{Name: "below", X: 0, Y: 300, W: 10, H: 10},
	}
	keyframes, err := director.Plan(regions, 6)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{keyframes[1].Name, keyframes[2].Name, keyframes[3].Name}
	want := []string{"left", "right", "below"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}

func TestZoomFor(t *testing.T) {
	director := NewDirector(1000, 500)
	tests := []struct {
		name   string
		region Region
		want   float64
	}{
		{"half width", Region{W: 450, H: 100}, 2},
		{"height bound", Region{W: 100, H: 225}, 2},
		{"tiny clamps to max", Region{W: 10, H: 10}, 3},
		{"larger than viewport", Region{W: 5000, H: 5000}, 1},
		{"degenerate", Region{W: 0, H: 50}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := director.zoomFor(tt.region); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("zoomFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShortTourUsesWholeDuration(t *testing.T) {
	director := NewDirector(1280, 720)
	director.MinDwell = 0.1
	keyframes, err := director.Plan([]Region{{W: 10, H: 10}, {Y: 100, W: 10, H: 10}}, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	// available = 1.5 - 2 <= 0, so the dwell uses the whole 1.5s: 0.75 per region
	if got := keyframes[len(keyframes)-1].Time; got != 2.5 {
		t.Errorf("end time = %v, want 2.5", got)
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name     string
		regions  []Region
		duration float64
		mutate   func(d *Director)
	}{
		{"no regions", nil, 5, nil},
		{"zero duration", []Region{{W: 1, H: 1}}, 0, nil},
		{"negative size", []Region{{W: -1, H: 1}}, 5, nil},
		{"bad viewport", []Region{{W: 1, H: 1}}, 5, func(d *Director) { d.ViewportWidth = 0 }},
		{"dwell bounds", []Region{{W: 1, H: 1}}, 5, func(d *Director) { d.MinDwell = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			director := NewDirector(1280, 720)
			if tt.mutate != nil {
				tt.mutate(director)
			}
			if _, err := director.Plan(tt.regions, tt.duration); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
