// Package render defines the drawing contract entities render through and
// the surfaces that satisfy it.
package render

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrNoContext is returned when a surface cannot hand out a 2D drawing context.
var ErrNoContext = errors.New("render: surface has no 2d context")

// Surface is a bounded drawing target. Every Context it returns draws onto
// the same underlying pixels and shares its fill state.
type Surface interface {
	Context() (Context, error)
	Width() int
	Height() int
}

// Context is a 2D drawing handle acquired once from a Surface.
type Context interface {
	FillColor() color.Color
	SetFillColor(c color.Color)
	FillRect(x, y, w, h float64)
	DrawImage(img image.Image, x, y, w, h float64)
}
