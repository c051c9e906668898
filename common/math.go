package common

import "math"

const (
	// BaseWidth and BaseHeight are the logical play-field size in pixels.
	BaseWidth  = 640
	BaseHeight = 480
)

// Finite reports whether f is neither NaN nor an infinity.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
