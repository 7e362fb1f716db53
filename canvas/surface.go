package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/draw"

	"github.com/gogpu/gg"
)

// Surface is the pixel buffer a Handler paints into and exports. A surface
// with a zero dimension holds no pixels: drawing on it does nothing and it
// exports as EmptyDataURL.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
	interp gg.InterpolationMode
}

// NewSurface creates a surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{interp: gg.InterpBilinear}
	s.Resize(width, height)
	return s
}

// Width returns the pixel width.
func (s *Surface) Width() int { return s.width }

// Height returns the pixel height.
func (s *Surface) Height() int { return s.height }

// SetInterpolation selects how images are sampled when scaled.
func (s *Surface) SetInterpolation(mode gg.InterpolationMode) {
	s.interp = mode
}

// Resize changes the pixel dimensions. Like a browser canvas, any resize
// discards the current contents.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width, s.height = width, height
	if width == 0 || height == 0 {
		if s.dc != nil {
			_ = s.dc.Close()
		}
		s.dc = nil
		return
	}
	if s.dc == nil {
		s.dc = gg.NewContext(width, height)
		return
	}
	// gg keeps the pixmap when the size is unchanged; a canvas does not.
	_ = s.dc.Resize(width, height)
	s.dc.Clear()
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.Clear()
}

// DrawImage paints img scaled to w x h with its top-left corner at (x, y).
func (s *Surface) DrawImage(img *gg.ImageBuf, x, y, w, h float64) {
	if s.dc == nil || img == nil || w <= 0 || h <= 0 {
		return
	}
	s.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: s.interp,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
}

// Image returns a copy of the current pixels. An empty surface returns an
// empty image.
func (s *Surface) Image() *image.RGBA {
	if s.dc == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	img := s.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// ErrEmptySurface is returned when encoding a surface without pixels.
var ErrEmptySurface = errors.New("canvas: surface has no pixels")

// EncodePNG returns the surface encoded as PNG.
func (s *Surface) EncodePNG() ([]byte, error) {
	if s.dc == nil {
		return nil, ErrEmptySurface
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns the surface as a "data:image/png;base64," URI, or
// EmptyDataURL when the surface has no pixels.
func (s *Surface) DataURL() string {
	data, err := s.EncodePNG()
	if err != nil {
		return EmptyDataURL
	}
	return EncodeDataURL("image/png", data)
}
