package bmode

import "testing"

func TestPresets_Valid(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			a := Preset(name)
			if a == nil {
				t.Fatalf("Preset(%q) = nil", name)
			}
			if err := a.Validate(); err != nil {
				t.Errorf("preset %q invalid: %v", name, err)
			}
		})
	}
}

func TestPreset_Unknown(t *testing.T) {
	if a := Preset("no such preset"); a != nil {
		t.Errorf("Preset(unknown) = %v, want nil", a)
	}
}

func TestPresetNames_Sorted(t *testing.T) {
	names := PresetNames()
	if len(names) < 3 {
		t.Fatalf("PresetNames() = %v, want at least 3", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestPresets_ArtifactCoverage(t *testing.T) {
	// Between them the built-in presets must exercise every artifact
	// flag so demo hosts show the full artifact set.
	var shadow, enhancement, sharp bool
	for _, name := range PresetNames() {
		for _, in := range Preset(name).Inclusions {
			shadow = shadow || in.StrongShadow
			enhancement = enhancement || in.PosteriorEnhancement
			sharp = sharp || in.Border == BorderSharp
		}
	}
	if !shadow || !enhancement || !sharp {
		t.Errorf("artifact coverage: shadow=%v enhancement=%v sharpBorder=%v", shadow, enhancement, sharp)
	}
}
