package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Annotation labels.
const (
	LabelPass = "PASS"
	LabelFail = "FAIL"
)

// AnnotationStyle controls how Annotate renders its verdict label.
type AnnotationStyle struct {
	// PassColor and FailColor are hex colors ("#RRGGBB") for the label fill.
	PassColor string `yaml:"pass_color"`
	FailColor string `yaml:"fail_color"`

	// Margin is the gap in pixels between the label and the right edge.
	Margin int `yaml:"margin"`

	// Scale is the integer magnification applied to the 7x13 glyphs.
	Scale int `yaml:"scale"`

	// Stroke is the outline width in pixels drawn around the glyphs.
	Stroke int `yaml:"stroke"`

	// OutlineDarken is how far (0-1) the outline color is blended from the
	// fill color toward black in Lab space. 1 gives a black outline.
	OutlineDarken float64 `yaml:"outline_darken"`
}

// DefaultAnnotationStyle returns a green PASS / red FAIL style with a black outline.
func DefaultAnnotationStyle() AnnotationStyle {
	return AnnotationStyle{
		PassColor:     "#00FF00",
		FailColor:     "#FF0000",
		Margin:        10,
		Scale:         2,
		Stroke:        1,
		OutlineDarken: 1.0,
	}
}

// Validate checks that both colors parse and the geometry is non-negative.
func (s AnnotationStyle) Validate() error {
	if _, err := ParseColor(s.PassColor); err != nil {
		return fmt.Errorf("pass color: %w", err)
	}
	if _, err := ParseColor(s.FailColor); err != nil {
		return fmt.Errorf("fail color: %w", err)
	}
	if s.Margin < 0 || s.Stroke < 0 || s.Scale < 1 {
		return fmt.Errorf("invalid annotation geometry: margin=%d stroke=%d scale=%d", s.Margin, s.Stroke, s.Scale)
	}
	if s.OutlineDarken < 0 || s.OutlineDarken > 1 {
		return fmt.Errorf("outline darken must be within [0,1], got %g", s.OutlineDarken)
	}
	return nil
}

// Annotate overlays a PASS or FAIL label onto a copy of img.
//
// The label is PASS only when every verdict is true (an empty map counts as
// all true). It is right-aligned with style.Margin pixels to spare and
// vertically centred. The outline stroke is drawn before the fill so the
// label stays legible on both paper and ink.
//
// Unparseable colors fall back to the defaults. img is never modified.
func Annotate(img image.Image, verdicts map[string]bool, style AnnotationStyle) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	passed := true
	for _, ok := range verdicts {
		if !ok {
			passed = false
			break
		}
	}

	defaults := DefaultAnnotationStyle()
	label, hex, fallback := LabelPass, style.PassColor, defaults.PassColor
	if !passed {
		label, hex, fallback = LabelFail, style.FailColor, defaults.FailColor
	}

	fill, err := colorful.Hex(hex)
	if err != nil {
		fill, _ = colorful.Hex(fallback)
	}
	outline := fill.BlendLab(colorful.Color{}, style.OutlineDarken).Clamped()

	text := renderText(label, style.Scale)
	w, _ := text.Size()
	textHeight := text.Ascent

	x := out.Bounds().Dx() - w - style.Margin
	baseline := out.Bounds().Dy()/2 + textHeight/2

	text.drawOutlined(out, x, baseline, style.Stroke, toRGBA(fill), toRGBA(outline))
	return out
}

// ParseColor parses a hex color string like "#FF0000" into an opaque RGBA color.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return toRGBA(c), nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
