package bmode

import (
	"bytes"
	"image/png"
	"testing"
)

func TestFrame_SetIntensity(t *testing.T) {
	f := NewFrame(4, 4)
	tests := []struct {
		name string
		v    float64
		want uint8
	}{
		{name: "black", v: 0, want: 0},
		{name: "white", v: 1, want: 255},
		{name: "mid", v: 0.5, want: 128},
		{name: "clamps negative", v: -3, want: 0},
		{name: "clamps above one", v: 7, want: 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SetIntensity(1, 1, tt.v)
			if got := f.GrayAt(1, 1); got != tt.want {
				t.Errorf("GrayAt = %d, want %d", got, tt.want)
			}
		})
	}
	// Out-of-bounds writes and reads are safe no-ops.
	f.SetIntensity(-1, 99, 1)
	if got := f.GrayAt(-1, 99); got != 0 {
		t.Errorf("out-of-bounds GrayAt = %d, want 0", got)
	}
}

func TestFrame_EncodePNG(t *testing.T) {
	f := NewFrame(8, 6)
	f.SetIntensity(3, 2, 0.8)
	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding the PNG back: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("decoded bounds = %v, want 8x6", b)
	}
}

func TestNewFrame_MinimumSize(t *testing.T) {
	f := NewFrame(0, -5)
	if f.Width() != 1 || f.Height() != 1 {
		t.Errorf("NewFrame(0,-5) sized %dx%d, want 1x1", f.Width(), f.Height())
	}
}
