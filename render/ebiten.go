package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
)

// EbitenSurface is an offscreen ebiten canvas the size of the play-field.
// Entities draw into it; the game blits it to the screen each frame.
type EbitenSurface struct {
	canvas *ebiten.Image
	fill   color.Color
	images map[image.Image]*ebiten.Image
}

// NewEbitenSurface allocates a w x h canvas. A non-positive size yields a
// surface without a context.
func NewEbitenSurface(w, h int) *EbitenSurface {
	s := &EbitenSurface{
		fill:   color.Black,
		images: make(map[image.Image]*ebiten.Image),
	}
	if w > 0 && h > 0 {
		s.canvas = ebiten.NewImage(w, h)
	}
	return s
}

func (s *EbitenSurface) Context() (Context, error) {
	if s == nil || s.canvas == nil {
		return nil, errors.Wrap(ErrNoContext, "ebiten canvas not allocated")
	}
	return &ebitenContext{surface: s}, nil
}

func (s *EbitenSurface) Width() int {
	if s == nil || s.canvas == nil {
		return 0
	}
	return s.canvas.Bounds().Dx()
}

func (s *EbitenSurface) Height() int {
	if s == nil || s.canvas == nil {
		return 0
	}
	return s.canvas.Bounds().Dy()
}

// Begin clears the canvas to bg ahead of a frame's draw calls.
func (s *EbitenSurface) Begin(bg color.Color) {
	if s == nil || s.canvas == nil {
		return
	}
	s.canvas.Fill(bg)
}

// Present draws the canvas onto screen at the origin.
func (s *EbitenSurface) Present(screen *ebiten.Image) {
	if s == nil || s.canvas == nil || screen == nil {
		return
	}
	screen.DrawImage(s.canvas, nil)
}

// Dispose releases the canvas. Contexts acquired earlier become no-ops.
func (s *EbitenSurface) Dispose() {
	if s == nil || s.canvas == nil {
		return
	}
	s.canvas.Deallocate()
	s.canvas = nil
	s.images = make(map[image.Image]*ebiten.Image)
}

func (s *EbitenSurface) ebitenImage(img image.Image) *ebiten.Image {
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	if eimg, ok := s.images[img]; ok {
		return eimg
	}
	eimg := ebiten.NewImageFromImage(img)
	s.images[img] = eimg
	return eimg
}

type ebitenContext struct {
	surface *EbitenSurface
}

func (c *ebitenContext) FillColor() color.Color {
	return c.surface.fill
}

func (c *ebitenContext) SetFillColor(clr color.Color) {
	c.surface.fill = clr
}

func (c *ebitenContext) FillRect(x, y, w, h float64) {
	dst := c.surface.canvas
	if dst == nil {
		return
	}
	vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), c.surface.fill, false)
}

func (c *ebitenContext) DrawImage(img image.Image, x, y, w, h float64) {
	dst := c.surface.canvas
	if dst == nil || img == nil {
		return
	}
	src := c.surface.ebitenImage(img)
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw <= 0 || sh <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(sw), h/float64(sh))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(src, op)
}
