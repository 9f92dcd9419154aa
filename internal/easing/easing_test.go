package easing

import (
	"math"
	"testing"
)

var allCurves = []Curve{Linear, CubicIn, CubicOut, CubicInOut, BackOut(DefaultBackTension), QuadIn, QuadOut, ExpoOut}

func TestEndpoints(t *testing.T) {
	for _, c := range allCurves {
		t.Run(c.String(), func(t *testing.T) {
			if got := c.Ease(0); got != 0 {
				t.Errorf("Ease(0) = %v, want 0", got)
			}
			if got := c.Ease(1); got != 1 {
				t.Errorf("Ease(1) = %v, want 1", got)
			}
		})
	}
}

func TestOutOfRangeIsClamped(t *testing.T) {
	for _, c := range allCurves {
		if got := c.Ease(-3); got != 0 {
			t.Errorf("%s: Ease(-3) = %v, want 0", c, got)
		}
		if got := c.Ease(7); got != 1 {
			t.Errorf("%s: Ease(7) = %v, want 1", c, got)
		}
		if got := c.Ease(math.NaN()); got != 0 {
			t.Errorf("%s: Ease(NaN) = %v, want 0", c, got)
		}
	}
}

func TestBackOutOvershoots(t *testing.T) {
	c := BackOut(DefaultBackTension)
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = math.Max(peak, c.Ease(float64(i)/100))
	}
	if peak <= 1 {
		t.Fatalf("expected overshoot above 1, peak %.4f", peak)
	}
	t.Logf("back-out peak %.4f", peak)

	if got := BackOut(3).Ease(0.7); got <= c.Ease(0.7) {
		t.Errorf("higher tension should overshoot more at 0.7: %v <= %v", got, c.Ease(0.7))
	}
}

func TestCubicInOutSymmetry(t *testing.T) {
	if got := CubicInOut.Ease(0.5); got != 0.5 {
		t.Errorf("Ease(0.5) = %v, want exactly 0.5", got)
	}
	for _, p := range []float64{0.1, 0.25, 0.4} {
		a := CubicInOut.Ease(p)
		b := CubicInOut.Ease(1 - p)
		if math.Abs(a+b-1) > 1e-12 {
			t.Errorf("not symmetric at %v: %v + %v", p, a, b)
		}
	}
}

func TestMonotoneCurves(t *testing.T) {
	for _, c := range []Curve{Linear, CubicIn, CubicOut, CubicInOut, QuadIn, QuadOut, ExpoOut} {
		prev := 0.0
		for i := 0; i <= 200; i++ {
			v := c.Ease(float64(i) / 200)
			if v < prev {
				t.Fatalf("%s decreases at step %d: %v < %v", c, i, v, prev)
			}
			prev = v
		}
	}
}

func TestParseCurve(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"linear", "linear", false},
		{"", "linear", false},
		{"Cubic-In-Out", "cubic-in-out", false},
		{"back", "back-out", false},
		{"expo-out", "expo-out", false},
		{"bounce", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCurve(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c.String() != tt.want {
				t.Errorf("got %s, want %s", c, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp = %v, want 12.5", got)
	}
	if got := Lerp(3, 9, 0); got != 3 {
		t.Errorf("Lerp at 0 = %v, want 3", got)
	}
}
