package render

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Op names a recorded drawing operation.
type Op string

const (
	OpFillRect  Op = "fill_rect"
	OpDrawImage Op = "draw_image"
)

// DrawCall is one recorded drawing operation.
type DrawCall struct {
	Op    Op
	X, Y  float64
	W, H  float64
	Color color.Color
	Image image.Image
}

// Recorder is a headless Surface that records draw calls instead of
// rasterising them. It backs headless runs and tests.
type Recorder struct {
	width  int
	height int
	fill   color.Color
	calls  []DrawCall
}

// NewRecorder returns a w x h recording surface. A non-positive size yields
// a surface without a context.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{width: w, height: h, fill: color.Black}
}

func (r *Recorder) Context() (Context, error) {
	if r == nil || r.width <= 0 || r.height <= 0 {
		return nil, errors.Wrap(ErrNoContext, "recorder has no area")
	}
	return &recorderContext{r: r}, nil
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

// Calls returns a copy of the draw calls recorded since the last Reset.
func (r *Recorder) Calls() []DrawCall {
	out := make([]DrawCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset drops the recorded draw calls.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

type recorderContext struct {
	r *Recorder
}

func (c *recorderContext) FillColor() color.Color {
	return c.r.fill
}

func (c *recorderContext) SetFillColor(clr color.Color) {
	c.r.fill = clr
}

func (c *recorderContext) FillRect(x, y, w, h float64) {
	c.r.calls = append(c.r.calls, DrawCall{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c.r.fill})
}

func (c *recorderContext) DrawImage(img image.Image, x, y, w, h float64) {
	c.r.calls = append(c.r.calls, DrawCall{Op: OpDrawImage, X: x, Y: y, W: w, H: h, Image: img})
}
