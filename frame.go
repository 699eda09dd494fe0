package bmode

import (
	"image"
	"image/png"
	"io"
)

// Frame is one rendered B-mode raster: a dense grayscale intensity
// buffer sized to the drawing surface. The engine creates a Frame per
// render and hands it to the surface; it does not retain frames.
type Frame struct {
	img *image.Gray
}

// NewFrame allocates a frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Frame{img: image.NewGray(image.Rect(0, 0, width, height))}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// SetIntensity writes a normalized intensity in [0, 1] at (x, y),
// clamped to the displayable range.
func (f *Frame) SetIntensity(x, y int, v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if x < 0 || y < 0 || x >= f.img.Rect.Dx() || y >= f.img.Rect.Dy() {
		return
	}
	f.img.Pix[y*f.img.Stride+x] = uint8(v*255 + 0.5)
}

// GrayAt returns the displayed 8-bit value at (x, y), 0 outside the
// frame.
func (f *Frame) GrayAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.img.Rect.Dx() || y >= f.img.Rect.Dy() {
		return 0
	}
	return f.img.Pix[y*f.img.Stride+x]
}

// Gray returns the underlying grayscale image. This is a direct
// reference, not a copy; the overlay renderer draws into it.
func (f *Frame) Gray() *image.Gray { return f.img }

// Image returns the frame as an image.Image for hosts and encoders.
func (f *Frame) Image() image.Image { return f.img }

// EncodePNG writes the frame as a PNG.
func (f *Frame) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.img)
}
