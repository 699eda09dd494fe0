package bmode

import (
	"fmt"
	"math"
)

// inclusionScaleCm maps the normalized lateral position of an inclusion
// to centimeters. It is deliberately a fixed physical scale, decoupled
// from beam width and frequency, so inclusion geometry stays stable
// when imaging parameters change.
const inclusionScaleCm = 8.0

// Layer is one depth-banded background tissue layer. Depth bounds are
// normalized fractions of the scan depth; the bands of an anatomy are
// expected to partition [0, 1] without gaps (lookup takes the first
// band containing the depth).
type Layer struct {
	// Name is the display name used by overlays.
	Name string `json:"name"`

	// DepthStart and DepthEnd bound the band as fractions of the
	// maximum scan depth, start inclusive, end exclusive (the last
	// band also includes 1.0).
	DepthStart float64 `json:"depthStart"`
	DepthEnd   float64 `json:"depthEnd"`

	// MediumID references the layer's acoustic medium.
	MediumID MediumID `json:"medium"`

	// Reflectivity in [0, 1] scales the layer's echo strength.
	Reflectivity float64 `json:"reflectivity"`

	// Echogenicity overrides the medium's class when not EchoUnset.
	Echogenicity Echogenicity `json:"echogenicity,omitempty"`

	// Attenuation overrides the medium's coefficient (dB/cm/MHz)
	// when > 0.
	Attenuation float64 `json:"attenuation,omitempty"`

	// TextureScale multiplies the coherent-noise contribution,
	// coarsening (>1) or smoothing (<1) the layer texture. Zero means
	// the default of 1.
	TextureScale float64 `json:"textureScale,omitempty"`
}

// contains reports whether the normalized depth falls in the band.
func (l *Layer) contains(depthNorm float64) bool {
	if depthNorm < l.DepthStart {
		return false
	}
	if depthNorm < l.DepthEnd {
		return true
	}
	// The deepest band is closed at 1.0 so the bottom row still maps.
	return l.DepthEnd >= 1 && depthNorm <= 1
}

// Shape enumerates inclusion geometries.
type Shape uint8

const (
	// ShapeCircle is an ellipse with equal axes; SizeCm width is the
	// diameter and height is ignored when zero.
	ShapeCircle Shape = iota

	// ShapeEllipse is an axis-aligned ellipse.
	ShapeEllipse

	// ShapeRect is an axis-aligned rectangle.
	ShapeRect
)

// Border enumerates inclusion border echogenicity.
type Border uint8

const (
	// BorderSoft blends the inclusion into the background.
	BorderSoft Border = iota

	// BorderSharp adds a specular reflection at the geometric edge.
	BorderSharp
)

// Inclusion is a discrete structure (vessel, cyst, lesion) embedded in
// the layered background. Inclusions take priority over layers at any
// coordinate they contain; the first declared inclusion containing a
// point wins.
type Inclusion struct {
	// Name is the display name used by overlays.
	Name string `json:"name"`

	// Shape of the inclusion.
	Shape Shape `json:"shape"`

	// CenterDepthCm is the center depth in centimeters.
	CenterDepthCm float64 `json:"centerDepthCm"`

	// CenterLateral is the normalized lateral center in [-0.5, 0.5],
	// mapped to centimeters via a fixed physical scale independent of
	// beam width.
	CenterLateral float64 `json:"centerLateral"`

	// WidthCm and HeightCm are the full extents in centimeters. A
	// circle uses WidthCm as diameter. Non-positive extents make the
	// inclusion degenerate: it matches nothing and contributes no
	// artifacts.
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm,omitempty"`

	// MediumID references the medium filling the inclusion.
	MediumID MediumID `json:"medium"`

	// StrongShadow casts an acoustic shadow cone posterior to the
	// inclusion.
	StrongShadow bool `json:"strongShadow,omitempty"`

	// PosteriorEnhancement brightens tissue posterior to the
	// inclusion, peaking a fixed distance below it.
	PosteriorEnhancement bool `json:"posteriorEnhancement,omitempty"`

	// Border selects soft or sharp (specular) border rendering.
	Border Border `json:"border,omitempty"`
}

// lateralCm returns the inclusion center's lateral position in cm.
func (in *Inclusion) lateralCm() float64 {
	return in.CenterLateral * inclusionScaleCm
}

// halfExtents returns the lateral and axial half sizes in cm, or
// (0, 0, false) when degenerate.
func (in *Inclusion) halfExtents() (rx, ry float64, ok bool) {
	rx = in.WidthCm / 2
	ry = in.HeightCm / 2
	if in.Shape == ShapeCircle {
		ry = rx
	}
	if rx <= 0 || ry <= 0 {
		return 0, 0, false
	}
	return rx, ry, true
}

// contains reports whether the physical point lies inside the inclusion.
func (in *Inclusion) contains(depthCm, lateralCm float64) bool {
	rx, ry, ok := in.halfExtents()
	if !ok {
		return false
	}
	dl := lateralCm - in.lateralCm()
	dd := depthCm - in.CenterDepthCm
	switch in.Shape {
	case ShapeRect:
		return math.Abs(dl) <= rx && math.Abs(dd) <= ry
	default:
		nx := dl / rx
		ny := dd / ry
		return nx*nx+ny*ny <= 1
	}
}

// edgeDistanceCm returns the approximate unsigned distance in cm from
// the point to the inclusion boundary. Degenerate inclusions report
// +Inf so border effects vanish.
func (in *Inclusion) edgeDistanceCm(depthCm, lateralCm float64) float64 {
	rx, ry, ok := in.halfExtents()
	if !ok {
		return math.Inf(1)
	}
	dl := lateralCm - in.lateralCm()
	dd := depthCm - in.CenterDepthCm
	if in.Shape == ShapeRect {
		ax := math.Abs(dl) - rx
		ay := math.Abs(dd) - ry
		if ax <= 0 && ay <= 0 {
			// Inside: distance to the nearest face.
			return math.Min(-ax, -ay)
		}
		return math.Hypot(math.Max(ax, 0), math.Max(ay, 0))
	}
	// Ellipse: scale the radial overshoot by the smaller axis. Exact
	// ellipse distance needs an iterative solve; this approximation is
	// visually indistinguishable at border-band widths.
	norm := math.Hypot(dl/rx, dd/ry)
	return math.Abs(norm-1) * math.Min(rx, ry)
}

// bottomDepthCm returns the depth of the inclusion's deepest point.
func (in *Inclusion) bottomDepthCm() float64 {
	_, ry, ok := in.halfExtents()
	if !ok {
		return in.CenterDepthCm
	}
	return in.CenterDepthCm + ry
}

// Anatomy is the full tissue description consumed by the engine: an
// ordered list of depth-banded layers plus discrete inclusions, with
// the acoustic medium table they reference.
type Anatomy struct {
	// Name identifies the preset.
	Name string `json:"name"`

	// Layers are ordered by declaration; lookup returns the first band
	// containing the queried depth.
	Layers []Layer `json:"layers"`

	// Inclusions are tested before layers, in declaration order.
	Inclusions []Inclusion `json:"inclusions,omitempty"`

	// Media resolves MediumID references. Nil means BuiltinMedia.
	Media MediumTable `json:"media,omitempty"`
}

// defaultLayer is the fail-soft answer when no layer matches.
var defaultLayer = Layer{
	Name:         "tissue",
	DepthStart:   0,
	DepthEnd:     1,
	Reflectivity: 0.5,
	Echogenicity: EchoIsoechoic,
	Attenuation:  0.7,
	TextureScale: 1,
}

// TissueSample is the result of a point lookup: the acoustic values the
// intensity pipeline needs, plus a back-reference when the point fell
// inside an inclusion.
type TissueSample struct {
	// Echogenicity is the resolved brightness class.
	Echogenicity Echogenicity

	// Attenuation is the resolved coefficient in dB/cm/MHz.
	Attenuation float64

	// Impedance is the acoustic impedance in MRayl.
	Impedance float64

	// Reflectivity in [0, 1].
	Reflectivity float64

	// TextureScale multiplies the coherent-noise weight.
	TextureScale float64

	// InInclusion is true when the point fell inside an inclusion;
	// Inclusion then points at it.
	InInclusion bool
	Inclusion   *Inclusion
}

// media returns the effective medium table.
func (a *Anatomy) media() MediumTable {
	if a == nil || a.Media == nil {
		return BuiltinMedia
	}
	return a.Media
}

// SampleAt resolves the tissue at a physical point. Inclusions are
// tested first in declaration order; otherwise the first layer whose
// band contains depthCm/scanDepthCm is used; if nothing matches, a
// default isoechoic layer is returned. SampleAt never fails.
func (a *Anatomy) SampleAt(depthCm, lateralCm, scanDepthCm float64) TissueSample {
	if a != nil {
		for i := range a.Inclusions {
			in := &a.Inclusions[i]
			if in.contains(depthCm, lateralCm) {
				m := a.media().ByID(in.MediumID)
				return TissueSample{
					Echogenicity: m.Echogenicity,
					Attenuation:  m.Attenuation,
					Impedance:    m.Impedance,
					Reflectivity: 0.5,
					TextureScale: 1,
					InInclusion:  true,
					Inclusion:    in,
				}
			}
		}
	}

	depthNorm := 0.0
	if scanDepthCm > 0 {
		depthNorm = depthCm / scanDepthCm
	}
	layer := &defaultLayer
	if a != nil {
		for i := range a.Layers {
			if a.Layers[i].contains(depthNorm) {
				layer = &a.Layers[i]
				break
			}
		}
	}
	return a.sampleLayer(layer)
}

// sampleLayer resolves a layer against its medium, applying overrides.
func (a *Anatomy) sampleLayer(l *Layer) TissueSample {
	m := a.media().ByID(l.MediumID)
	s := TissueSample{
		Echogenicity: l.Echogenicity,
		Attenuation:  l.Attenuation,
		Impedance:    m.Impedance,
		Reflectivity: l.Reflectivity,
		TextureScale: l.TextureScale,
	}
	if s.Echogenicity == EchoUnset {
		s.Echogenicity = m.Echogenicity
	}
	if s.Attenuation <= 0 {
		s.Attenuation = m.Attenuation
	}
	if s.TextureScale <= 0 {
		s.TextureScale = 1
	}
	return s
}

// boundary is a precomputed interface between adjacent declared layers.
type boundary struct {
	depthNorm float64 // normalized boundary depth
	refl      float64 // reflection coefficient between the two media
}

// boundaries returns the interfaces between consecutive declared
// layers, with their reflection coefficients. Boundaries at the very
// top (0) are skipped: the transducer face is not an imaged interface.
func (a *Anatomy) boundaries() []boundary {
	if a == nil || len(a.Layers) < 2 {
		return nil
	}
	media := a.media()
	bs := make([]boundary, 0, len(a.Layers)-1)
	for i := 1; i < len(a.Layers); i++ {
		prev := media.ByID(a.Layers[i-1].MediumID)
		cur := media.ByID(a.Layers[i].MediumID)
		d := a.Layers[i].DepthStart
		if d <= 0 || d >= 1 {
			continue
		}
		bs = append(bs, boundary{
			depthNorm: d,
			refl:      ReflectionCoefficient(prev.Impedance, cur.Impedance),
		})
	}
	return bs
}

// Validate reports structural problems: layer bands that do not
// partition [0, 1], or inclusions referencing out-of-range media. The
// engine does not require a valid anatomy (lookups fail soft), but
// preset authors should check.
func (a *Anatomy) Validate() error {
	if a == nil {
		return fmt.Errorf("anatomy: nil")
	}
	if len(a.Layers) == 0 {
		return fmt.Errorf("anatomy %q: no layers", a.Name)
	}
	cursor := 0.0
	for i, l := range a.Layers {
		if l.DepthStart > cursor+1e-9 {
			return fmt.Errorf("anatomy %q: gap before layer %d (%q) at depth %.3f", a.Name, i, l.Name, l.DepthStart)
		}
		if l.DepthEnd <= l.DepthStart {
			return fmt.Errorf("anatomy %q: layer %d (%q) has non-positive extent", a.Name, i, l.Name)
		}
		if l.DepthEnd > cursor {
			cursor = l.DepthEnd
		}
	}
	if cursor < 1-1e-9 {
		return fmt.Errorf("anatomy %q: layers end at %.3f, want 1", a.Name, cursor)
	}
	media := a.media()
	for i, in := range a.Inclusions {
		if in.MediumID < 0 || int(in.MediumID) >= len(media) {
			return fmt.Errorf("anatomy %q: inclusion %d (%q) references unknown medium %d", a.Name, i, in.Name, in.MediumID)
		}
	}
	return nil
}
