// Package bmode provides a real-time procedural B-mode ultrasound
// image synthesis engine.
//
// # Overview
//
// bmode turns a declarative tissue/transducer description into a
// continuously animated grayscale raster image, reproducing the visual
// artifacts of physical ultrasound: speckle, depth attenuation, focal
// gain, time-gain compensation, interface reflections, acoustic
// shadowing, posterior enhancement, reverberation, and beam geometry.
// It is a stylized visual approximation intended for teaching, not a
// wave-propagation solver.
//
// # Quick Start
//
//	import (
//	    "github.com/sonolab/bmode"
//	    "github.com/sonolab/bmode/surface"
//	)
//
//	s := surface.NewImageSurface(512, 512)
//	defer s.Close()
//
//	eng, err := bmode.New(s, bmode.Config{
//	    Anatomy:      bmode.PresetSoftTissueVessel(),
//	    Transducer:   bmode.TransducerLinear,
//	    FrequencyMHz: 7.5,
//	    ScanDepthCm:  6,
//	    FocusDepthCm: 3,
//	    Gain:         50,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Destroy()
//
//	eng.RenderFrame()   // one static frame
//	img := s.Snapshot() // read it back
//
// Call Start to drive a throttled animation loop instead of rendering
// single frames by hand.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Config, Anatomy, Medium, Frame
//   - Core: geometry mapping, noise cache, per-pixel intensity pipeline
//   - Targets: surface (caller-owned raster drawing targets)
//
// # Coordinate System
//
// Raster coordinates have the origin at the top-left, x increasing
// right and y increasing down. Physical coordinates are (depth,
// lateral) in centimeters: depth increases away from the transducer
// face, lateral is signed distance from the beam axis.
//
// # Performance
//
// Rendering is a single synchronous CPU pass over the raster. Noise
// caches are regenerated only when the resolution or frequency class
// changes, never inside the per-pixel loop.
package bmode

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
