package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// textMask is a rendered string ready to be stamped onto an image.
// Only the alpha channel of Mask is meaningful.
type textMask struct {
	Mask   *image.NRGBA
	Ascent int // distance from the top of Mask to the baseline
}

// renderText rasterizes s with the 7x13 bitmap face and scales it by an
// integer factor using nearest-neighbour sampling so glyph edges stay sharp.
func renderText(s string, scale int) textMask {
	if scale < 1 {
		scale = 1
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	height := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	if width == 0 || height == 0 {
		return textMask{Mask: image.NewNRGBA(image.Rect(0, 0, 0, 0))}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  alpha,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	var mask *image.NRGBA
	if scale == 1 {
		mask = imaging.Clone(alpha)
	} else {
		mask = imaging.Resize(alpha, width*scale, height*scale, imaging.NearestNeighbor)
	}

	return textMask{Mask: mask, Ascent: ascent * scale}
}

// Size returns the width and height of the rendered text in pixels.
func (t textMask) Size() (int, int) {
	b := t.Mask.Bounds()
	return b.Dx(), b.Dy()
}

// drawAt stamps the text onto dst with its baseline starting at (x, baseline).
// Parts falling outside dst are clipped.
func (t textMask) drawAt(dst draw.Image, x, baseline int, c color.Color) {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return
	}
	top := baseline - t.Ascent
	r := image.Rect(x, top, x+w, top+h)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, t.Mask, image.Point{}, draw.Over)
}

// drawOutlined stamps the text with a square outline of the given stroke
// width drawn first in outline, then the fill on top.
func (t textMask) drawOutlined(dst draw.Image, x, baseline, stroke int, fill, outline color.Color) {
	for dy := -stroke; dy <= stroke; dy++ {
		for dx := -stroke; dx <= stroke; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			t.drawAt(dst, x+dx, baseline+dy, outline)
		}
	}
	t.drawAt(dst, x, baseline, fill)
}
