package bmode

import (
	"math"
	"math/rand"
)

// coherentOctaves is the number of octaves summed for the coherent
// noise field.
const coherentOctaves = 6

// referenceFreqMHz anchors the speckle grain scale: at this frequency
// the coherent field samples at baseGrainScale cells per pixel.
const (
	referenceFreqMHz = 7.5
	baseGrainScale   = 0.12
)

// NoiseCache holds the two precomputed per-pixel texture fields the
// intensity pipeline multiplies in: a Rayleigh-statistics amplitude
// field approximating coherent-interference speckle, and a multi-octave
// coherent noise field giving the texture spatial structure.
//
// Both buffers are sized to the raster resolution and regenerated only
// when the resolution or the frequency class changes, never mid-frame.
type NoiseCache struct {
	width  int
	height int

	rayleigh []float64 // amplitude samples in [0, 1]
	coherent []float64 // structured noise in [-1, 1]

	grainScale float64 // lattice cells per pixel for the coherent field
	rng        *rand.Rand
}

// newNoiseCache allocates and fills a cache for the given resolution
// and frequency. The seed makes tests reproducible; hosts pass
// anything (the scheduler uses the construction time).
func newNoiseCache(width, height int, freqMHz float64, seed int64) *NoiseCache {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	n := &NoiseCache{
		width:    width,
		height:   height,
		rayleigh: make([]float64, width*height),
		coherent: make([]float64, width*height),
		rng:      rand.New(rand.NewSource(seed)),
	}
	n.setFrequency(freqMHz)
	n.Regenerate()
	return n
}

// setFrequency updates the grain scale: higher frequency means finer
// speckle, so the coherent field is sampled at a denser lattice.
func (n *NoiseCache) setFrequency(freqMHz float64) {
	if freqMHz <= 0 {
		freqMHz = referenceFreqMHz
	}
	n.grainScale = baseGrainScale * freqMHz / referenceFreqMHz
}

// Width returns the cache width in cells.
func (n *NoiseCache) Width() int { return n.width }

// Height returns the cache height in cells.
func (n *NoiseCache) Height() int { return n.height }

// Regenerate refills both buffers. It is idempotent apart from
// producing fresh stochastic samples with the same statistics, and has
// no other side effects. Called at construction and on resolution or
// frequency-class changes only.
func (n *NoiseCache) Regenerate() {
	offX := n.rng.Float64() * 1024
	offY := n.rng.Float64() * 1024
	for y := 0; y < n.height; y++ {
		for x := 0; x < n.width; x++ {
			i := y*n.width + x
			n.rayleigh[i] = n.sampleRayleigh()
			n.coherent[i] = coherentNoise(
				(float64(x)+offX)*n.grainScale,
				(float64(y)+offY)*n.grainScale,
			)
		}
	}
}

// sampleRayleigh draws one speckle amplitude. The Box-Muller transform
// sqrt(-2 ln u1) * cos(2π u2) gives a standard normal; its magnitude
// approximates the Rayleigh statistics of fully developed speckle.
// Normalized into [0, 1] with unit-ish mean around 0.4.
func (n *NoiseCache) sampleRayleigh() float64 {
	u1 := n.rng.Float64()
	u2 := n.rng.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	g := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	v := math.Abs(g) / 2.5
	if v > 1 {
		v = 1
	}
	return v
}

// Rayleigh returns the speckle amplitude at a cell, offset by the
// animation tick so live imaging decorrelates frame to frame. The
// offset is deterministic per (cell, tick).
func (n *NoiseCache) Rayleigh(x, y int, tick uint64) float64 {
	if len(n.rayleigh) == 0 {
		return 0.5
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	ox := int(tick*17) % n.width
	oy := int(tick*7) % n.height
	i := ((y+oy)%n.height)*n.width + (x+ox)%n.width
	return n.rayleigh[i]
}

// Coherent returns the structured noise at a cell, in [-1, 1].
func (n *NoiseCache) Coherent(x, y int) float64 {
	if len(n.coherent) == 0 {
		return 0
	}
	if x < 0 || x >= n.width || y < 0 || y >= n.height {
		return 0
	}
	return n.coherent[y*n.width+x]
}

// coherentNoise sums octaves of hashed value noise with amplitude
// halving and frequency doubling, normalized by total amplitude so the
// result stays in [-1, 1]. A deterministic, cheap stand-in for Perlin
// noise.
func coherentNoise(x, y float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := 1.0
	total := 0.0
	for o := 0; o < coherentOctaves; o++ {
		sum += amp * valueNoise(x*freq, y*freq)
		total += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / total
}

// valueNoise interpolates hashed lattice values with smoothstep,
// returning a value in [-1, 1].
func valueNoise(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := smoothstep(x - x0)
	fy := smoothstep(y - y0)

	v00 := latticeHash(x0, y0)
	v10 := latticeHash(x0+1, y0)
	v01 := latticeHash(x0, y0+1)
	v11 := latticeHash(x0+1, y0+1)

	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}

// latticeHash maps integer lattice coordinates to [-1, 1] via a
// hashed sinusoid.
func latticeHash(x, y float64) float64 {
	s := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return 2*(s-math.Floor(s)) - 1
}

// smoothstep is the cubic Hermite fade 3t² - 2t³.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
