package bmode

import "testing"

func TestConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(t *testing.T, c Config)
	}{
		{
			name: "zero config gets defaults",
			in:   Config{},
			check: func(t *testing.T, c Config) {
				if c.FrequencyMHz != defFrequencyMHz {
					t.Errorf("FrequencyMHz = %v, want %v", c.FrequencyMHz, defFrequencyMHz)
				}
				if c.ScanDepthCm != defScanDepthCm {
					t.Errorf("ScanDepthCm = %v, want %v", c.ScanDepthCm, defScanDepthCm)
				}
				if c.DynamicRangeDB != defDynamicRange {
					t.Errorf("DynamicRangeDB = %v, want %v", c.DynamicRangeDB, defDynamicRange)
				}
			},
		},
		{
			name: "out of range values clamp",
			in:   Config{FrequencyMHz: 99, ScanDepthCm: -3, Gain: 250, DynamicRangeDB: 5},
			check: func(t *testing.T, c Config) {
				if c.FrequencyMHz != maxFrequencyMHz {
					t.Errorf("FrequencyMHz = %v, want %v", c.FrequencyMHz, float64(maxFrequencyMHz))
				}
				if c.ScanDepthCm != minScanDepthCm {
					t.Errorf("ScanDepthCm = %v, want %v", c.ScanDepthCm, float64(minScanDepthCm))
				}
				if c.Gain != maxGain {
					t.Errorf("Gain = %v, want %v", c.Gain, float64(maxGain))
				}
				if c.DynamicRangeDB != minDynamicRange {
					t.Errorf("DynamicRangeDB = %v, want %v", c.DynamicRangeDB, float64(minDynamicRange))
				}
			},
		},
		{
			name: "focus clamps to scan depth",
			in:   Config{ScanDepthCm: 6, FocusDepthCm: 12},
			check: func(t *testing.T, c Config) {
				if c.FocusDepthCm != 6 {
					t.Errorf("FocusDepthCm = %v, want 6", c.FocusDepthCm)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.in.withDefaults())
		})
	}
}

func TestConfig_FreqClass(t *testing.T) {
	tests := []struct {
		freq float64
		want int
	}{
		{freq: 5, want: 5},
		{freq: 5.2, want: 5},
		{freq: 5.7, want: 6},
		{freq: 7.5, want: 8},
	}
	for _, tt := range tests {
		c := Config{FrequencyMHz: tt.freq}
		if got := c.freqClass(); got != tt.want {
			t.Errorf("freqClass(%v) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

func TestConfig_TGC(t *testing.T) {
	t.Run("default ramp grows with depth", func(t *testing.T) {
		c := Config{}
		if top, bot := c.tgcGainLinear(0), c.tgcGainLinear(1); bot <= top {
			t.Errorf("default TGC: gain(1) = %v not above gain(0) = %v", bot, top)
		}
	})
	t.Run("curve interpolates in dB", func(t *testing.T) {
		c := Config{TGC: []float64{0, 6}}
		if got := c.tgcGainLinear(0); absDiff(got, 1) > 1e-9 {
			t.Errorf("gain at 0 dB = %v, want 1", got)
		}
		// Midpoint is 3 dB, not the linear midpoint of the endpoints.
		want := dbToLinear(3)
		if got := c.tgcGainLinear(0.5); absDiff(got, want) > 1e-9 {
			t.Errorf("gain at midpoint = %v, want %v", got, want)
		}
	})
	t.Run("clamps outside the curve", func(t *testing.T) {
		c := Config{TGC: []float64{-6, 0, 6}}
		if got := c.tgcGainLinear(2); absDiff(got, dbToLinear(6)) > 1e-9 {
			t.Errorf("gain past end = %v, want last sample", got)
		}
		if got := c.tgcGainLinear(-1); absDiff(got, dbToLinear(-6)) > 1e-9 {
			t.Errorf("gain before start = %v, want first sample", got)
		}
	})
}

func TestConfig_GainAndContrast(t *testing.T) {
	c := Config{Gain: 0, DynamicRangeDB: 60}
	if got := c.gainLinear(); got != 0 {
		t.Errorf("gainLinear(0) = %v, want 0", got)
	}
	c.Gain = 50
	if got := c.gainLinear(); got != 1 {
		t.Errorf("gainLinear(50) = %v, want 1", got)
	}
	if got := c.contrastExponent(); got != 1 {
		t.Errorf("contrastExponent at 60 dB = %v, want 1", got)
	}
	c.DynamicRangeDB = 30
	if got := c.contrastExponent(); got != 2 {
		t.Errorf("contrastExponent at 30 dB = %v, want 2", got)
	}
}
