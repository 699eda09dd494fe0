package bmode

import "math"

// Tuning constants for the artifact models. Values are chosen for
// visual plausibility against reference B-mode images, not measured.
const (
	// Interface reflection band.
	reflBandCm     = 0.15 // half-width of the bright interface band
	reflSigmaCm    = 0.06 // Gaussian falloff from the exact boundary
	reflBrightness = 0.8

	// Acoustic shadow.
	shadowFloor      = 0.05 // residual transmission inside the cone
	shadowDivergence = 0.08 // cone widening per cm of posterior distance
	shadowPenumbraCm = 0.25 // lateral Gaussian penumbra width
	shadowFadeCm     = 3.0  // exponential posterior fade length

	// Posterior enhancement.
	enhancePeakCm    = 0.8 // boost peaks this far below the inclusion
	enhanceDepthSpan = 0.7
	enhanceMax       = 0.6

	// Specular border.
	borderBandCm  = 0.08
	borderSigmaCm = 0.03
	borderGain    = 0.45

	// Reverberation.
	reverbPeriodCm = 0.8
	reverbSigmaCm  = 0.05
	reverbDecayCm  = 4.0
	reverbGain     = 0.18

	// Beam falloff.
	beamEdgeSigmaCm = 0.35
)

// pipeline composes tissue lookup, speckle, attenuation, focal gain,
// TGC, interface reflection, inclusion artifacts, reverberation, and
// beam falloff into one scalar intensity per pixel. It is built once
// per frame from an immutable config snapshot.
type pipeline struct {
	cfg    *Config
	noise  *NoiseCache
	mapper Mapper

	// boundaries between declared layers, depths resolved to cm.
	boundDepthCm []float64
	boundRefl    []float64
}

// newPipeline precomputes the per-frame lookup structures.
func newPipeline(cfg *Config, noise *NoiseCache, mapper Mapper) *pipeline {
	p := &pipeline{cfg: cfg, noise: noise, mapper: mapper}
	for _, b := range cfg.Anatomy.boundaries() {
		p.boundDepthCm = append(p.boundDepthCm, b.depthNorm*cfg.ScanDepthCm)
		p.boundRefl = append(p.boundRefl, b.refl)
	}
	return p
}

// render fills the frame. tick advances the speckle animation.
func (p *pipeline) render(f *Frame, tick uint64) {
	gain := p.cfg.gainLinear()
	gamma := p.cfg.contrastExponent()
	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			depth, lateral := p.mapper.Physical(x, y)
			v := p.intensityAt(x, y, depth, lateral, tick)
			v *= gain
			if v < 0 || math.IsNaN(v) {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			if gamma != 1 && v > 0 {
				v = math.Pow(v, gamma)
			}
			f.SetIntensity(x, y, v)
		}
	}
}

// renderColumn fills one beam-line column of intensities for M-mode
// readout, applying the same display transform as render.
func (p *pipeline) renderColumn(x, height int, tick uint64, out []float64) {
	gain := p.cfg.gainLinear()
	gamma := p.cfg.contrastExponent()
	m := p.mapper
	m.Height = height
	for y := 0; y < height && y < len(out); y++ {
		depth, lateral := m.Physical(x, y)
		v := p.intensityAt(x, y, depth, lateral, tick) * gain
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		if gamma != 1 && v > 0 {
			v = math.Pow(v, gamma)
		}
		out[y] = v
	}
}

// intensityAt computes the pre-gain intensity at a physical point.
// No step may fail: degenerate inputs contribute nothing and the
// result is always finite and non-negative.
func (p *pipeline) intensityAt(x, y int, depthCm, lateralCm float64, tick uint64) float64 {
	cfg := p.cfg

	// Beyond the configured scan depth there is no echo at all.
	if depthCm > cfg.ScanDepthCm || cfg.ScanDepthCm <= 0 {
		return 0
	}
	depthNorm := depthCm / cfg.ScanDepthCm

	// 1-2. Tissue sample and baseline echogenicity.
	sample := cfg.Anatomy.SampleAt(depthCm, lateralCm, cfg.ScanDepthCm)
	intensity := sample.Echogenicity.Baseline() * (0.7 + 0.6*sample.Reflectivity)

	// 3. Speckle: Rayleigh amplitude plus remapped coherent noise,
	// grain coarsening with depth as effective frequency drops.
	r := p.noise.Rayleigh(x, y, tick)
	c01 := (p.noise.Coherent(x, y) + 1) / 2
	s := (0.35*r + 0.65*c01) * (1 + 0.3*depthNorm) * sample.TextureScale
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	intensity *= 0.4 + 0.6*s

	// 4. Depth attenuation, dB-per-cm-per-MHz exponential law.
	atten := attenuationFactor(sample.Attenuation, cfg.FrequencyMHz, depthCm)
	intensity *= atten

	// 5. Focal gain: Gaussian bump at the focus depth.
	dFocus := depthCm - cfg.FocusDepthCm
	intensity *= 1 + 0.4*math.Exp(-2*dFocus*dFocus)

	// 6. Time-gain compensation.
	tgc := cfg.tgcGainLinear(depthNorm)
	intensity *= tgc

	// 7. Interface reflections between declared layers.
	for i, bd := range p.boundDepthCm {
		d := depthCm - bd
		if d < -reflBandCm || d > reflBandCm {
			continue
		}
		band := math.Abs(p.boundRefl[i]) * math.Exp(-(d*d)/(reflSigmaCm*reflSigmaCm))
		intensity += reflBrightness * band * atten * tgc
	}

	// 8. Inclusion artifacts.
	intensity = p.applyInclusionEffects(intensity, depthCm, lateralCm, sample, atten)

	// 9. Reverberation: periodic bands decaying with depth.
	if !cfg.Artifacts.DisableReverberation {
		k := math.Round(depthCm / reverbPeriodCm)
		if k >= 1 {
			d := depthCm - k*reverbPeriodCm
			band := math.Exp(-(d * d) / (reverbSigmaCm * reverbSigmaCm))
			intensity += reverbGain * band * math.Exp(-depthCm/reverbDecayCm)
		}
	}

	// 10. Beam falloff beyond half the local beam width.
	half := p.mapper.BeamWidthCm(depthCm) / 2
	if excess := math.Abs(lateralCm) - half; excess > 0 {
		intensity *= math.Exp(-(excess * excess) / (beamEdgeSigmaCm * beamEdgeSigmaCm))
	}

	if intensity < 0 || math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return 0
	}
	return intensity
}

// attenuationFactor is the standard dB-per-cm-per-MHz exponential law:
// 10^(-(coeff · freq · depth)/20). Strictly decreasing in depth and
// frequency for positive coefficients.
func attenuationFactor(coeffDBPerCmMHz, freqMHz, depthCm float64) float64 {
	return math.Pow(10, -(coeffDBPerCmMHz*freqMHz*depthCm)/20)
}

// applyInclusionEffects folds in shadow, posterior enhancement, and
// specular border reflections for every flagged inclusion. Shadow and
// enhancement act only posterior to an inclusion; the border band acts
// near its geometric edge on either side.
func (p *pipeline) applyInclusionEffects(intensity, depthCm, lateralCm float64, sample TissueSample, atten float64) float64 {
	cfg := p.cfg
	if cfg.Anatomy == nil {
		return intensity
	}
	for i := range cfg.Anatomy.Inclusions {
		in := &cfg.Anatomy.Inclusions[i]
		rx, _, ok := in.halfExtents()
		if !ok {
			continue // degenerate: zero-effect contribution
		}
		latDist := math.Abs(lateralCm - in.lateralCm())
		post := depthCm - in.bottomDepthCm()
		inside := sample.InInclusion && sample.Inclusion == in

		if in.StrongShadow && !cfg.Artifacts.DisableShadow && post > 0 && !inside {
			radius := rx * (1 + shadowDivergence*post)
			dip := 1 - shadowFloor
			if latDist > radius {
				pen := (latDist - radius) / shadowPenumbraCm
				dip *= math.Exp(-pen * pen)
			}
			dip *= math.Exp(-post / shadowFadeCm)
			intensity *= 1 - dip
		}

		if in.PosteriorEnhancement && !cfg.Artifacts.DisableEnhancement && post > 0 && !inside {
			dd := (post - enhancePeakCm) / enhanceDepthSpan
			ll := latDist / (rx + 0.3)
			boost := enhanceMax * math.Exp(-dd*dd) * math.Exp(-ll*ll)
			intensity *= 1 + boost
		}

		if in.Border == BorderSharp && !cfg.Artifacts.DisableSpecularBorder {
			if edge := in.edgeDistanceCm(depthCm, lateralCm); edge < borderBandCm {
				intensity += borderGain * math.Exp(-(edge*edge)/(borderSigmaCm*borderSigmaCm)) * atten
			}
		}
	}
	return intensity
}
