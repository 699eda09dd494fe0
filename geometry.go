package bmode

import "math"

// apertureWidthCm is the lateral field width of the linear transducer.
// A constant, independent of depth and frequency. Distinct from
// inclusionScaleCm: inclusion geometry must not move when the probe
// changes.
const apertureWidthCm = 8.0

// maxSteeringAngleRad is the full fan angle of the convex transducer.
const maxSteeringAngleRad = 1.2

// Mapper converts raster pixel coordinates to physical (depth, lateral)
// coordinates and back. It is pure and stateless; construct one per
// frame from the config snapshot.
type Mapper struct {
	// Width and Height are the raster dimensions in pixels.
	Width  int
	Height int

	// Transducer selects linear or fan geometry.
	Transducer TransducerType

	// ScanDepthCm is the imaged depth.
	ScanDepthCm float64

	// FrequencyMHz feeds the beam-width model.
	FrequencyMHz float64
}

// Physical maps a pixel to (depth, lateral) in centimeters. Depth is
// linear in y for every transducer type and never exceeds ScanDepthCm
// on the bottom row. For a convex probe the lateral position diverges
// with depth, producing the fan shape.
func (m Mapper) Physical(x, y int) (depthCm, lateralCm float64) {
	if m.Width <= 0 || m.Height <= 0 {
		return 0, 0
	}
	depthCm = float64(y) / float64(m.Height) * m.ScanDepthCm
	switch m.Transducer {
	case TransducerConvex:
		angle := (float64(x)/float64(m.Width) - 0.5) * maxSteeringAngleRad
		lateralCm = depthCm * math.Tan(angle)
	default:
		lateralCm = (float64(x)/float64(m.Width) - 0.5) * apertureWidthCm
	}
	return depthCm, lateralCm
}

// Pixel is the inverse of Physical, used by the overlay renderer to
// place markers and labels. Results are rounded to the nearest pixel
// and may fall outside the raster for points outside the field of view.
func (m Mapper) Pixel(depthCm, lateralCm float64) (x, y int) {
	if m.Width <= 0 || m.Height <= 0 || m.ScanDepthCm <= 0 {
		return 0, 0
	}
	y = int(math.Round(depthCm / m.ScanDepthCm * float64(m.Height)))
	switch m.Transducer {
	case TransducerConvex:
		var angle float64
		if depthCm > 0 {
			angle = math.Atan2(lateralCm, depthCm)
		}
		x = int(math.Round((angle/maxSteeringAngleRad + 0.5) * float64(m.Width)))
	default:
		x = int(math.Round((lateralCm/apertureWidthCm + 0.5) * float64(m.Width)))
	}
	return x, y
}

// BeamWidthCm models the insonified field width at a depth: narrower
// for linear probes and high frequencies, wider for convex probes and
// low frequencies, and growing with depth. The intensity pipeline rolls
// intensity off laterally beyond half this width.
func (m Mapper) BeamWidthCm(depthCm float64) float64 {
	freq := m.FrequencyMHz
	if freq <= 0 {
		freq = defFrequencyMHz
	}
	var w float64
	switch m.Transducer {
	case TransducerConvex:
		w = 2*depthCm*math.Tan(maxSteeringAngleRad/2)*0.9 + 1.5 - 0.04*freq
	default:
		w = apertureWidthCm*0.88 + 0.05*depthCm - 0.08*freq
	}
	if w < 0.5 {
		w = 0.5
	}
	return w
}
