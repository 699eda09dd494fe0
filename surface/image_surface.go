package surface

import (
	"errors"
	"image"
	"image/draw"
)

// ErrClosed is returned by operations on a closed surface.
var ErrClosed = errors.New("surface: closed")

// ImageSurface is a CPU surface backed by an *image.RGBA. It is the
// default target for headless hosts: tests, snapshot tools, and the
// HTTP streaming server.
//
// Example:
//
//	s := surface.NewImageSurface(512, 512)
//	defer s.Close()
//
//	eng, _ := bmode.New(s, cfg)
//	eng.RenderFrame()
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a CPU surface with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height.
func (s *ImageSurface) Height() int { return s.height }

// Present blits the frame into the backing image.
func (s *ImageSurface) Present(frame image.Image) error {
	if s.closed {
		return ErrClosed
	}
	if frame == nil {
		return nil
	}
	draw.Draw(s.img, s.img.Bounds(), frame, frame.Bounds().Min, draw.Src)
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Resize changes the surface dimensions, discarding existing content.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	s.width = width
	s.height = height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Verify ImageSurface implements the surface interfaces.
var _ Surface = (*ImageSurface)(nil)
var _ ResizableSurface = (*ImageSurface)(nil)
