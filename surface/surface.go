// Package surface defines the raster drawing targets the bmode engine
// renders into.
//
// A Surface is caller-owned: the engine binds to one at construction,
// pushes each rendered frame to it via Present, and never allocates or
// retains the display target itself.
package surface

import "image"

// Surface is the rendering target abstraction.
//
// Surfaces are NOT thread-safe. Each surface should be used from a
// single goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Present displays one rendered frame. Ownership of the pixel data
	// passes to the surface for display; the caller must not reuse the
	// image afterwards. Frames smaller or larger than the surface are
	// blitted top-left and cropped.
	Present(frame image.Image) error

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications do not affect the
	// surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support
// resizing. Existing content may be discarded.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions.
	Resize(width, height int) error
}
