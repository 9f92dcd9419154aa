// Package compose merges the camera pose with per-element animation channels
// into the transforms handed to a renderer.
package compose

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/ivlev/motioncam/internal/animation"
	"github.com/ivlev/motioncam/internal/camera"
)

// BlurThreshold is the smallest blur radius passed through; anything below
// is reported as no blur at all.
const BlurThreshold = 0.5

// Viewport is the output frame size in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// ViewTransform maps world space to screen space: translate, then scale
type ViewTransform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
	Matrix  f64.Aff3
}

// Element is one scheduled element ready for composition
type Element struct {
	ID       string
	Active   bool
	AnchorX  float64 // Center anchor in world space
	AnchorY  float64
	Channels animation.Channels
}

// Transform is the final, immutable state of one visible element
type Transform struct {
	ID         string
	Opacity    float64
	Blur       float64
	AnchorX    float64
	AnchorY    float64
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotation   float64 // Degrees
	// World maps element-local space (origin at the anchor) to world space:
	// anchor translate, animated translate, scale, rotation.
	World f64.Aff3
	// Screen is World with the view transform applied
	Screen f64.Aff3
}

// Frame is the composed output of one query
type Frame struct {
	Time     float64
	Camera   camera.Pose
	View     ViewTransform
	Elements []Transform
}

// View computes the view offset for a camera pose plus an already
// zoom-compensated shake offset. The shake is added after zoom scaling and
// is never scaled again.
func View(vp Viewport, pose camera.Pose, shakeX, shakeY float64) ViewTransform {
	ox := vp.Width/2 - pose.X*pose.Scale + shakeX
	oy := vp.Height/2 - pose.Y*pose.Scale + shakeY
	return ViewTransform{
		OffsetX: ox,
		OffsetY: oy,
		Scale:   pose.Scale,
		Matrix:  mul(translate(ox, oy), scale(pose.Scale)),
	}
}

// Compose builds the frame for a camera pose and a list of elements.
// Inactive elements and elements with opacity <= 0 are omitted.
func Compose(vp Viewport, pose camera.Pose, shakeX, shakeY float64, elements []Element) Frame {
	view := View(vp, pose, shakeX, shakeY)
	frame := Frame{Camera: pose, View: view}

	for _, el := range elements {
		tr, ok := composeElement(view, el)
		if ok {
			frame.Elements = append(frame.Elements, tr)
		}
	}
	return frame
}

func composeElement(view ViewTransform, el Element) (Transform, bool) {
	ch := el.Channels
	if !el.Active || !(ch.Opacity > 0) {
		return Transform{}, false
	}

	blur := ch.Blur
	if blur < BlurThreshold {
		blur = 0
	}
	opacity := math.Min(ch.Opacity, 1)

	world := mul(
		mul(translate(el.AnchorX, el.AnchorY), translate(ch.TranslateX, ch.TranslateY)),
		mul(scale(ch.Scale), rotate(ch.Rotation)),
	)

	return Transform{
		ID:         el.ID,
		Opacity:    opacity,
		Blur:       blur,
		AnchorX:    el.AnchorX,
		AnchorY:    el.AnchorY,
		TranslateX: ch.TranslateX,
		TranslateY: ch.TranslateY,
		Scale:      ch.Scale,
		Rotation:   ch.Rotation,
		World:      world,
		Screen:     mul(view.Matrix, world),
	}, true
}

// Apply maps point (x, y) through m
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func translate(x, y float64) f64.Aff3 {
	return f64.Aff3{1, 0, x, 0, 1, y}
}

func scale(s float64) f64.Aff3 {
	return f64.Aff3{s, 0, 0, 0, s, 0}
}

func rotate(deg float64) f64.Aff3 {
	if deg == 0 {
		return f64.Aff3{1, 0, 0, 0, 1, 0}
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// mul returns a*b: b is applied first, then a
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
