package bmode

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeAnatomy(t *testing.T) {
	doc := `{
		"name": "demo",
		"layers": [
			{"name": "skin", "depthStart": 0, "depthEnd": 0.05, "medium": 0, "reflectivity": 0.8},
			{"name": "tissue", "depthStart": 0.05, "depthEnd": 1, "medium": 7, "reflectivity": 0.5}
		],
		"inclusions": [
			{"name": "cyst", "shape": "ellipse", "centerDepthCm": 4,
			 "widthCm": 2, "heightCm": 1.5, "medium": 6,
			 "posteriorEnhancement": true, "border": "sharp"}
		]
	}`
	a, err := DecodeAnatomy(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeAnatomy() error = %v", err)
	}
	if a.Name != "demo" || len(a.Layers) != 2 || len(a.Inclusions) != 1 {
		t.Fatalf("decoded %q with %d layers, %d inclusions", a.Name, len(a.Layers), len(a.Inclusions))
	}
	in := a.Inclusions[0]
	if in.Shape != ShapeEllipse || in.Border != BorderSharp || !in.PosteriorEnhancement {
		t.Errorf("inclusion decoded as %+v", in)
	}
}

func TestDecodeAnatomy_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: `{"name": `},
		{name: "unknown field", doc: `{"name": "x", "layerz": []}`},
		{name: "unknown shape", doc: `{"name": "x", "layers": [{"name": "t", "depthStart": 0, "depthEnd": 1, "medium": 0}], "inclusions": [{"name": "i", "shape": "blob", "widthCm": 1}]}`},
		{name: "invalid layers", doc: `{"name": "x", "layers": [{"name": "t", "depthStart": 0.5, "depthEnd": 1, "medium": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeAnatomy(strings.NewReader(tt.doc)); err == nil {
				t.Error("DecodeAnatomy() accepted a bad document")
			}
		})
	}
}

func TestAnatomy_JSONRoundTrip(t *testing.T) {
	orig := PresetCyst()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(orig); err != nil {
		t.Fatalf("encoding: %v", err)
	}
	if !strings.Contains(buf.String(), `"ellipse"`) || !strings.Contains(buf.String(), `"sharp"`) {
		t.Errorf("encoded enums as integers: %s", buf.String())
	}
	back, err := DecodeAnatomy(&buf)
	if err != nil {
		t.Fatalf("DecodeAnatomy() error = %v", err)
	}
	if back.Inclusions[0].Shape != orig.Inclusions[0].Shape {
		t.Errorf("shape round trip = %v, want %v", back.Inclusions[0].Shape, orig.Inclusions[0].Shape)
	}
}
