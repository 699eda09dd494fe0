package bmode

// Echogenicity is the qualitative brightness class of a tissue on
// B-mode imaging.
type Echogenicity uint8

const (
	// EchoUnset means "inherit from the referenced medium".
	EchoUnset Echogenicity = iota

	// EchoAnechoic renders nearly black (fluid).
	EchoAnechoic

	// EchoHypoechoic renders darker than the reference soft tissue.
	EchoHypoechoic

	// EchoIsoechoic renders at the reference soft-tissue brightness.
	EchoIsoechoic

	// EchoHyperechoic renders brighter than the reference soft tissue.
	EchoHyperechoic
)

// echoBaseline maps an echogenicity class to its baseline intensity.
// Indexed by Echogenicity; EchoUnset falls back to isoechoic.
var echoBaseline = [...]float64{
	EchoUnset:       0.55,
	EchoAnechoic:    0.05,
	EchoHypoechoic:  0.35,
	EchoIsoechoic:   0.55,
	EchoHyperechoic: 0.85,
}

// Baseline returns the baseline intensity for the class, in [0, 1].
func (e Echogenicity) Baseline() float64 {
	if int(e) >= len(echoBaseline) {
		return echoBaseline[EchoIsoechoic]
	}
	return echoBaseline[e]
}

// String returns the lowercase clinical name of the class.
func (e Echogenicity) String() string {
	switch e {
	case EchoAnechoic:
		return "anechoic"
	case EchoHypoechoic:
		return "hypoechoic"
	case EchoIsoechoic:
		return "isoechoic"
	case EchoHyperechoic:
		return "hyperechoic"
	default:
		return "unset"
	}
}

// MediumID indexes a Medium inside a MediumTable.
type MediumID int

// Built-in medium ids, valid indices into BuiltinMedia.
const (
	MediumSkin MediumID = iota
	MediumFat
	MediumMuscle
	MediumBlood
	MediumBone
	MediumTendon
	MediumFluid
	MediumLiver
)

// Medium holds the acoustic constants of a named material. Media are
// immutable reference data: the engine looks them up by id and never
// mutates them.
type Medium struct {
	// Name is the display name ("muscle", "fat", ...).
	Name string `json:"name"`

	// Impedance is the acoustic impedance in MRayl.
	Impedance float64 `json:"impedance"`

	// Attenuation is the attenuation coefficient in dB/cm/MHz.
	Attenuation float64 `json:"attenuation"`

	// Echogenicity is the baseline brightness class.
	Echogenicity Echogenicity `json:"echogenicity"`
}

// MediumTable is an ordered collection of media looked up by MediumID.
type MediumTable []Medium

// BuiltinMedia is the default acoustic property table. Values are
// textbook approximations, not measurements.
var BuiltinMedia = MediumTable{
	MediumSkin:   {Name: "skin", Impedance: 1.68, Attenuation: 1.8, Echogenicity: EchoHyperechoic},
	MediumFat:    {Name: "fat", Impedance: 1.38, Attenuation: 0.6, Echogenicity: EchoHypoechoic},
	MediumMuscle: {Name: "muscle", Impedance: 1.70, Attenuation: 1.0, Echogenicity: EchoIsoechoic},
	MediumBlood:  {Name: "blood", Impedance: 1.61, Attenuation: 0.18, Echogenicity: EchoAnechoic},
	MediumBone:   {Name: "bone", Impedance: 7.80, Attenuation: 8.0, Echogenicity: EchoHyperechoic},
	MediumTendon: {Name: "tendon", Impedance: 1.85, Attenuation: 1.2, Echogenicity: EchoHyperechoic},
	MediumFluid:  {Name: "fluid", Impedance: 1.48, Attenuation: 0.05, Echogenicity: EchoAnechoic},
	MediumLiver:  {Name: "liver", Impedance: 1.65, Attenuation: 0.7, Echogenicity: EchoIsoechoic},
}

// defaultMedium is returned for out-of-range ids so lookups never fail.
var defaultMedium = Medium{Name: "soft tissue", Impedance: 1.63, Attenuation: 0.7, Echogenicity: EchoIsoechoic}

// ByID returns the medium for id, or a generic isoechoic soft tissue
// when id is out of range.
func (t MediumTable) ByID(id MediumID) Medium {
	if id < 0 || int(id) >= len(t) {
		return defaultMedium
	}
	return t[id]
}

// ReflectionCoefficient returns the amplitude reflection coefficient at
// an interface between media with impedances z1 (proximal) and z2
// (distal): R = (z2-z1)/(z2+z1). It is antisymmetric in its arguments
// and zero for equal impedances. Degenerate inputs (z1+z2 == 0) yield 0.
func ReflectionCoefficient(z1, z2 float64) float64 {
	sum := z1 + z2
	if sum == 0 {
		return 0
	}
	return (z2 - z1) / sum
}
