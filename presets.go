package bmode

import "sort"

// Built-in anatomy presets. Presets normally come from the external
// persistence layer as already-parsed values; these ship with the
// library so hosts and tests have working anatomies out of the box.

// PresetSoftTissueVessel is a layered soft-tissue block with one
// anechoic vessel showing posterior enhancement.
func PresetSoftTissueVessel() *Anatomy {
	return &Anatomy{
		Name: "soft tissue with vessel",
		Layers: []Layer{
			{Name: "skin", DepthStart: 0, DepthEnd: 0.04, MediumID: MediumSkin, Reflectivity: 0.8},
			{Name: "subcutaneous fat", DepthStart: 0.04, DepthEnd: 0.25, MediumID: MediumFat, Reflectivity: 0.4},
			{Name: "muscle", DepthStart: 0.25, DepthEnd: 0.7, MediumID: MediumMuscle, Reflectivity: 0.55, TextureScale: 1.2},
			{Name: "deep tissue", DepthStart: 0.7, DepthEnd: 1, MediumID: MediumLiver, Reflectivity: 0.5},
		},
		Inclusions: []Inclusion{
			{
				Name:                 "vessel",
				Shape:                ShapeCircle,
				CenterDepthCm:        3,
				CenterLateral:        -0.12,
				WidthCm:              1.2,
				MediumID:             MediumBlood,
				PosteriorEnhancement: true,
				Border:               BorderSharp,
			},
		},
	}
}

// PresetCyst is a fluid-filled cyst: anechoic, sharp-walled, with
// strong posterior enhancement and no shadow.
func PresetCyst() *Anatomy {
	return &Anatomy{
		Name: "simple cyst",
		Layers: []Layer{
			{Name: "skin", DepthStart: 0, DepthEnd: 0.05, MediumID: MediumSkin, Reflectivity: 0.8},
			{Name: "fat", DepthStart: 0.05, DepthEnd: 0.3, MediumID: MediumFat, Reflectivity: 0.4},
			{Name: "parenchyma", DepthStart: 0.3, DepthEnd: 1, MediumID: MediumLiver, Reflectivity: 0.55},
		},
		Inclusions: []Inclusion{
			{
				Name:                 "cyst",
				Shape:                ShapeEllipse,
				CenterDepthCm:        4.5,
				CenterLateral:        0.05,
				WidthCm:              2.4,
				HeightCm:             1.8,
				MediumID:             MediumFluid,
				PosteriorEnhancement: true,
				Border:               BorderSharp,
			},
		},
	}
}

// PresetNodule is a hypoechoic solid nodule with a calcified core
// casting a strong acoustic shadow.
func PresetNodule() *Anatomy {
	return &Anatomy{
		Name: "shadowing nodule",
		Layers: []Layer{
			{Name: "skin", DepthStart: 0, DepthEnd: 0.05, MediumID: MediumSkin, Reflectivity: 0.8},
			{Name: "gland", DepthStart: 0.05, DepthEnd: 0.6, MediumID: MediumLiver, Reflectivity: 0.6, Echogenicity: EchoIsoechoic},
			{Name: "muscle", DepthStart: 0.6, DepthEnd: 1, MediumID: MediumMuscle, Reflectivity: 0.5},
		},
		Inclusions: []Inclusion{
			{
				Name:          "nodule",
				Shape:         ShapeEllipse,
				CenterDepthCm: 2.5,
				CenterLateral: 0,
				WidthCm:       2,
				HeightCm:      1.4,
				MediumID:      MediumMuscle,
				Border:        BorderSoft,
			},
			{
				Name:          "calcification",
				Shape:         ShapeCircle,
				CenterDepthCm: 2.7,
				CenterLateral: 0.02,
				WidthCm:       0.6,
				MediumID:      MediumBone,
				StrongShadow:  true,
				Border:        BorderSharp,
			},
		},
	}
}

// presetFuncs maps preset names to constructors.
var presetFuncs = map[string]func() *Anatomy{
	"vessel": PresetSoftTissueVessel,
	"cyst":   PresetCyst,
	"nodule": PresetNodule,
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetFuncs))
	for name := range presetFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named built-in anatomy, or nil
// when the name is unknown.
func Preset(name string) *Anatomy {
	fn, ok := presetFuncs[name]
	if !ok {
		return nil
	}
	return fn()
}
