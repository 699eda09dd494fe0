package bmode

import "testing"

func TestReflectionCoefficient(t *testing.T) {
	tests := []struct {
		name   string
		z1, z2 float64
		want   float64
	}{
		{name: "equal impedances", z1: 1.63, z2: 1.63, want: 0},
		{name: "soft tissue to bone", z1: 1.63, z2: 7.8, want: (7.8 - 1.63) / (7.8 + 1.63)},
		{name: "degenerate zero sum", z1: 0, z2: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReflectionCoefficient(tt.z1, tt.z2)
			if absDiff(got, tt.want) > 1e-12 {
				t.Errorf("ReflectionCoefficient(%v, %v) = %v, want %v", tt.z1, tt.z2, got, tt.want)
			}
		})
	}
}

func TestReflectionCoefficient_Antisymmetric(t *testing.T) {
	pairs := [][2]float64{{1.38, 1.7}, {1.63, 7.8}, {1.48, 1.61}}
	for _, p := range pairs {
		fwd := ReflectionCoefficient(p[0], p[1])
		rev := ReflectionCoefficient(p[1], p[0])
		if absDiff(fwd, -rev) > 1e-12 {
			t.Errorf("R(%v,%v) = %v, R(%v,%v) = %v, want antisymmetric", p[0], p[1], fwd, p[1], p[0], rev)
		}
	}
}

func TestMediumTable_ByID(t *testing.T) {
	if got := BuiltinMedia.ByID(MediumBone); got.Name != "bone" {
		t.Errorf("ByID(MediumBone).Name = %q, want %q", got.Name, "bone")
	}
	// Out-of-range ids fall back to generic soft tissue, never fail.
	for _, id := range []MediumID{-1, MediumID(len(BuiltinMedia)), 999} {
		got := BuiltinMedia.ByID(id)
		if got.Name != defaultMedium.Name {
			t.Errorf("ByID(%d).Name = %q, want default %q", id, got.Name, defaultMedium.Name)
		}
	}
}

func TestEchogenicity_Baseline(t *testing.T) {
	order := []Echogenicity{EchoAnechoic, EchoHypoechoic, EchoIsoechoic, EchoHyperechoic}
	for i := 1; i < len(order); i++ {
		lo := order[i-1].Baseline()
		hi := order[i].Baseline()
		if lo >= hi {
			t.Errorf("Baseline(%v) = %v not below Baseline(%v) = %v", order[i-1], lo, order[i], hi)
		}
	}
	if got := Echogenicity(200).Baseline(); got != EchoIsoechoic.Baseline() {
		t.Errorf("out-of-range baseline = %v, want isoechoic fallback", got)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
