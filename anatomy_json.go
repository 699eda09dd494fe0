package bmode

import (
	"encoding/json"
	"fmt"
	"io"
)

// Anatomies normally arrive as JSON documents authored outside the
// engine; this file is the decoding boundary. Enum fields read and
// write their lowercase names rather than raw integers.

// DecodeAnatomy reads and validates a JSON anatomy description.
//
// Example document:
//
//	{
//	  "name": "demo",
//	  "layers": [
//	    {"name": "skin", "depthStart": 0, "depthEnd": 0.05, "medium": 0, "reflectivity": 0.8},
//	    {"name": "tissue", "depthStart": 0.05, "depthEnd": 1, "medium": 7, "reflectivity": 0.5}
//	  ],
//	  "inclusions": [
//	    {"name": "cyst", "shape": "ellipse", "centerDepthCm": 4,
//	     "widthCm": 2, "heightCm": 1.5, "medium": 6,
//	     "posteriorEnhancement": true, "border": "sharp"}
//	  ]
//	}
func DecodeAnatomy(r io.Reader) (*Anatomy, error) {
	var a Anatomy
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding anatomy: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case ShapeEllipse:
		return "ellipse"
	case ShapeRect:
		return "rect"
	default:
		return "circle"
	}
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Shape) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "circle":
		*s = ShapeCircle
	case "ellipse":
		*s = ShapeEllipse
	case "rect":
		*s = ShapeRect
	default:
		return fmt.Errorf("unknown shape %q", name)
	}
	return nil
}

// String returns the lowercase border name.
func (b Border) String() string {
	if b == BorderSharp {
		return "sharp"
	}
	return "soft"
}

func (b Border) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Border) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "soft":
		*b = BorderSoft
	case "sharp":
		*b = BorderSharp
	default:
		return fmt.Errorf("unknown border %q", name)
	}
	return nil
}

func (e Echogenicity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Echogenicity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "unset", "":
		*e = EchoUnset
	case "anechoic":
		*e = EchoAnechoic
	case "hypoechoic":
		*e = EchoHypoechoic
	case "isoechoic":
		*e = EchoIsoechoic
	case "hyperechoic":
		*e = EchoHyperechoic
	default:
		return fmt.Errorf("unknown echogenicity %q", name)
	}
	return nil
}
