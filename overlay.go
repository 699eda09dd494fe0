package bmode

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay drawing constants.
const (
	overlayGray    = 200 // annotation brightness
	beamLineCount  = 9
	rulerTickLenPx = 6
	focusDashPx    = 8
	focusGapPx     = 6
	labelOffsetPx  = 4
)

// overlayRenderer draws diagnostic annotations on top of a rendered
// frame: beam lines, a depth ruler, a focus marker, and inclusion
// labels. It has no physics and is safe to disable entirely.
type overlayRenderer struct {
	cfg    *Config
	mapper Mapper
}

// draw renders every enabled overlay into the frame's image.
func (o *overlayRenderer) draw(f *Frame) {
	if !o.cfg.Overlay.any() {
		return
	}
	img := f.Gray()
	if o.cfg.Overlay.BeamLines {
		o.drawBeamLines(img)
	}
	if o.cfg.Overlay.DepthRuler {
		o.drawDepthRuler(img)
	}
	if o.cfg.Overlay.FocusMarker {
		o.drawFocusMarker(img)
	}
	if o.cfg.Overlay.Labels {
		o.drawLabels(img)
	}
}

// drawBeamLines traces a small set of beam lines: vertical for a
// linear probe, diverging from the apex for a convex probe.
func (o *overlayRenderer) drawBeamLines(img *image.Gray) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	for i := 0; i < beamLineCount; i++ {
		fx := float64(i) / float64(beamLineCount-1)
		x := int(fx * float64(w-1))
		switch o.cfg.Transducer {
		case TransducerConvex:
			angle := (fx - 0.5) * maxSteeringAngleRad
			// Trace the beam line depth by depth; the fan apex sits at
			// the top center of the raster.
			for y := 0; y < h; y++ {
				depth := float64(y) / float64(h) * o.cfg.ScanDepthCm
				lat := depth * math.Tan(angle)
				px, py := o.mapper.Pixel(depth, lat)
				setGray(img, px, py, overlayGray)
			}
		default:
			drawVLine(img, x, 0, h-1, overlayGray)
		}
	}
}

// drawDepthRuler draws centimeter ticks with labels down the left edge.
func (o *overlayRenderer) drawDepthRuler(img *image.Gray) {
	h := img.Rect.Dy()
	if o.cfg.ScanDepthCm <= 0 {
		return
	}
	for cm := 0; float64(cm) <= o.cfg.ScanDepthCm; cm++ {
		y := int(float64(cm) / o.cfg.ScanDepthCm * float64(h))
		if y >= h {
			y = h - 1
		}
		drawHLine(img, 0, rulerTickLenPx, y, overlayGray)
		drawText(img, rulerTickLenPx+2, y+4, fmt.Sprintf("%d", cm))
	}
}

// drawFocusMarker draws a dashed horizontal line at the focus depth.
func (o *overlayRenderer) drawFocusMarker(img *image.Gray) {
	w := img.Rect.Dx()
	_, y := o.mapper.Pixel(o.cfg.FocusDepthCm, 0)
	for x := 0; x < w; x += focusDashPx + focusGapPx {
		end := x + focusDashPx
		if end >= w {
			end = w - 1
		}
		drawHLine(img, x, end, y, overlayGray)
	}
}

// drawLabels writes each named inclusion's label at its mapped center.
func (o *overlayRenderer) drawLabels(img *image.Gray) {
	if o.cfg.Anatomy == nil {
		return
	}
	for i := range o.cfg.Anatomy.Inclusions {
		in := &o.cfg.Anatomy.Inclusions[i]
		if in.Name == "" {
			continue
		}
		x, y := o.mapper.Pixel(in.CenterDepthCm, in.lateralCm())
		drawText(img, x+labelOffsetPx, y, in.Name)
	}
}

// drawText renders fixed-size ASCII text with the basicfont face.
func drawText(img *image.Gray, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: overlayGray}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func setGray(img *image.Gray, x, y int, v uint8) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.Pix[y*img.Stride+x] = v
}

func drawVLine(img *image.Gray, x, y0, y1 int, v uint8) {
	for y := y0; y <= y1; y++ {
		setGray(img, x, y, v)
	}
}

func drawHLine(img *image.Gray, x0, x1, y int, v uint8) {
	for x := x0; x <= x1; x++ {
		setGray(img, x, y, v)
	}
}
