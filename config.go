package bmode

import (
	"log/slog"
	"math"
)

// TransducerType selects the beam geometry.
type TransducerType uint8

const (
	// TransducerLinear produces parallel beams and a rectangular image.
	TransducerLinear TransducerType = iota

	// TransducerConvex produces diverging beams and a fan-shaped image.
	TransducerConvex
)

// String returns the probe family name.
func (t TransducerType) String() string {
	if t == TransducerConvex {
		return "convex"
	}
	return "linear"
}

// ImagingMode selects the readout mode.
type ImagingMode uint8

const (
	// ModeB is brightness mode, a full 2-D raster. The default.
	ModeB ImagingMode = iota

	// ModeM is motion mode: a single beam line sampled over time.
	// Only the column readout differs; the intensity pipeline is shared.
	ModeM
)

// ArtifactFlags toggles the synthetic artifacts individually.
// The zero value enables everything (flags are stored inverted).
type ArtifactFlags struct {
	// DisableShadow suppresses acoustic shadow cones.
	DisableShadow bool

	// DisableEnhancement suppresses posterior enhancement.
	DisableEnhancement bool

	// DisableReverberation suppresses periodic reverberation bands.
	DisableReverberation bool

	// DisableSpecularBorder suppresses sharp-border reflections.
	DisableSpecularBorder bool
}

// OverlayFlags toggles diagnostic overlays drawn after the raster.
type OverlayFlags struct {
	// BeamLines draws the beam geometry (vertical or fan lines).
	BeamLines bool

	// DepthRuler draws a depth ruler with centimeter tick labels.
	DepthRuler bool

	// FocusMarker draws a horizontal marker at the focus depth.
	FocusMarker bool

	// Labels draws inclusion name labels at their mapped positions.
	Labels bool
}

// any reports whether at least one overlay is enabled.
func (o OverlayFlags) any() bool {
	return o.BeamLines || o.DepthRuler || o.FocusMarker || o.Labels
}

// Config is the full imaging configuration. The engine treats a Config
// as an immutable snapshot: UpdateConfig replaces it wholesale, and a
// frame in flight keeps rendering from the snapshot it started with.
type Config struct {
	// Anatomy is the tissue description. Nil renders the default
	// isoechoic background.
	Anatomy *Anatomy

	// Transducer selects beam geometry.
	Transducer TransducerType

	// FrequencyMHz is the imaging frequency. Clamped to [1, 20].
	FrequencyMHz float64

	// ScanDepthCm is the imaged depth. Clamped to [1, 30].
	ScanDepthCm float64

	// FocusDepthCm is the focal depth. Clamped to [0, ScanDepthCm].
	FocusDepthCm float64

	// Gain is the overall receive gain in [0, 100]; 50 is unity.
	Gain float64

	// DynamicRangeDB compresses contrast. Clamped to [20, 120];
	// 0 means the default of 60.
	DynamicRangeDB float64

	// TGC is an ordered set of depth-indexed gain samples in dB,
	// spanning depth 0..ScanDepthCm evenly. Empty applies a default
	// mild linear ramp.
	TGC []float64

	// Mode is the imaging mode. ModeB is the default.
	Mode ImagingMode

	// Artifacts toggles individual artifact models.
	Artifacts ArtifactFlags

	// Overlay toggles diagnostic overlays.
	Overlay OverlayFlags
}

// Config limits. Out-of-range values are clamped, logged, never fatal.
const (
	minFrequencyMHz = 1
	maxFrequencyMHz = 20
	minScanDepthCm  = 1
	maxScanDepthCm  = 30
	maxGain         = 100
	minDynamicRange = 20
	maxDynamicRange = 120
	defDynamicRange = 60
	defFrequencyMHz = 5
	defScanDepthCm  = 10
)

// withDefaults returns a copy with out-of-range fields clamped and
// unset fields defaulted. Clamps are logged at Warn with the field name.
func (c Config) withDefaults() Config {
	log := Logger()
	clamp := func(name string, v, lo, hi float64) float64 {
		if v < lo || v > hi || math.IsNaN(v) {
			w := math.Min(math.Max(v, lo), hi)
			if math.IsNaN(v) {
				w = lo
			}
			log.Warn("config value clamped", slog.String("field", name),
				slog.Float64("value", v), slog.Float64("clamped", w))
			return w
		}
		return v
	}

	if c.FrequencyMHz == 0 {
		c.FrequencyMHz = defFrequencyMHz
	}
	if c.ScanDepthCm == 0 {
		c.ScanDepthCm = defScanDepthCm
	}
	if c.DynamicRangeDB == 0 {
		c.DynamicRangeDB = defDynamicRange
	}
	c.FrequencyMHz = clamp("frequencyMHz", c.FrequencyMHz, minFrequencyMHz, maxFrequencyMHz)
	c.ScanDepthCm = clamp("scanDepthCm", c.ScanDepthCm, minScanDepthCm, maxScanDepthCm)
	c.FocusDepthCm = clamp("focusDepthCm", c.FocusDepthCm, 0, c.ScanDepthCm)
	c.Gain = clamp("gain", c.Gain, 0, maxGain)
	c.DynamicRangeDB = clamp("dynamicRangeDB", c.DynamicRangeDB, minDynamicRange, maxDynamicRange)
	return c
}

// freqClass buckets the frequency for cache-regeneration purposes.
// Speckle grain depends on frequency, so crossing a whole-MHz boundary
// regenerates the noise cache; sub-MHz tweaks only move the per-pixel
// depth scaling and do not.
func (c *Config) freqClass() int {
	return int(math.Round(c.FrequencyMHz))
}

// tgcGainLinear returns the linear TGC gain at a normalized depth.
// With a curve supplied, samples are interpolated and converted from
// dB; otherwise a mild linear ramp compensates typical attenuation.
func (c *Config) tgcGainLinear(depthNorm float64) float64 {
	if len(c.TGC) == 0 {
		return 1 + 0.8*depthNorm
	}
	if len(c.TGC) == 1 {
		return dbToLinear(c.TGC[0])
	}
	pos := depthNorm * float64(len(c.TGC)-1)
	if pos <= 0 {
		return dbToLinear(c.TGC[0])
	}
	if pos >= float64(len(c.TGC)-1) {
		return dbToLinear(c.TGC[len(c.TGC)-1])
	}
	i := int(pos)
	frac := pos - float64(i)
	db := c.TGC[i] + (c.TGC[i+1]-c.TGC[i])*frac
	return dbToLinear(db)
}

// dbToLinear converts an amplitude gain in dB to a linear factor.
func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// gainLinear derives the global linear gain from the 0..100 setting.
// Gain 0 is silence, 50 unity, 100 doubles amplitude.
func (c *Config) gainLinear() float64 {
	return c.Gain / 50
}

// contrastExponent derives the display gamma from dynamic range: a
// narrow range compresses to high contrast, a wide one flattens.
func (c *Config) contrastExponent() float64 {
	return defDynamicRange / c.DynamicRangeDB
}
