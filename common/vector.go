package common

import (
	"fmt"
	"math"
)

// Vector2 is a 2D value. It is always passed and returned by value.
type Vector2 struct {
	X float64
	Y float64
}

// Vec returns Vector2{x, y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the component-wise sum of v and o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Div divides both components by s. A zero s yields IEEE infinities or NaN.
func (v Vector2) Div(s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Len returns the magnitude of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Accumulate adds o to v in place.
func (v *Vector2) Accumulate(o Vector2) {
	v.X += o.X
	v.Y += o.Y
}

// Clear zeroes both components.
func (v *Vector2) Clear() {
	v.X = 0
	v.Y = 0
}

// Clamp clips each axis of v into [min, max] independently and reports
// whether either axis was clipped.
func (v *Vector2) Clamp(min, max Vector2) bool {
	clamped := false
	if v.X < min.X {
		v.X = min.X
		clamped = true
	} else if v.X > max.X {
		v.X = max.X
		clamped = true
	}
	if v.Y < min.Y {
		v.Y = min.Y
		clamped = true
	} else if v.Y > max.Y {
		v.Y = max.Y
		clamped = true
	}
	return clamped
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
