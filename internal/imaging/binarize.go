package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// DefaultInkCutoff is the mid-level gray value separating ink from paper.
const DefaultInkCutoff uint8 = 128

// Binarize returns the ink mask of an image.
//
// Pixels whose gray value is at or below cutoff become 255 (foreground ink);
// every other pixel becomes 0. The input is never modified and the mask has its
// origin at (0,0).
func Binarize(img image.Image, cutoff uint8) *image.Gray {
	gray := ToGray(img)

	inverted := imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		if c.R <= cutoff {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{A: 255}
	})

	bounds := inverted.Bounds()
	mask := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			mask.Pix[y*mask.Stride+x] = inverted.Pix[y*inverted.Stride+x*4]
		}
	}
	return mask
}

// FlattenBackground returns a copy of img where every pixel at or above level
// is set to pure white. It removes faint paper texture before edge detection.
// A level of 0 returns an unmodified grayscale copy.
func FlattenBackground(img image.Image, level uint8) *image.Gray {
	if level == 0 {
		return cloneGray(ToGray(img))
	}

	flattened := adjust.Apply(ToGray(img), func(c color.RGBA) color.RGBA {
		if c.R >= level {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return c
	})
	return ToGray(flattened)
}

func cloneGray(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Rect)
	w := g.Rect.Dx()
	for y := 0; y < g.Rect.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w], g.Pix[y*g.Stride:y*g.Stride+w])
	}
	return out
}
