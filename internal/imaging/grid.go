package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// DrawBoundaries renders detected grid boundaries over a copy of img.
//
// Each row boundary becomes a full-width horizontal line and each column
// boundary a full-height vertical line, both in lineColor (a hex string; red
// when it does not parse). Every line is tagged with its index in its
// boundary list so a detection can be compared against the form template by
// eye. The output is purely diagnostic and plays no part in validation.
func DrawBoundaries(img image.Image, rows, cols []int, lineColor string) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	c, err := ParseColor(lineColor)
	if err != nil {
		c = color.RGBA{255, 0, 0, 255}
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for _, y := range rows {
		if y < 0 || y >= height {
			continue
		}
		for x := 0; x < width; x++ {
			result.SetRGBA(x, y, c)
		}
	}

	for _, x := range cols {
		if x < 0 || x >= width {
			continue
		}
		for y := 0; y < height; y++ {
			result.SetRGBA(x, y, c)
		}
	}

	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}
	for i, y := range rows {
		tagBoundary(result, 2, y+2, strconv.Itoa(i), labelColor, bgColor)
	}
	for i, x := range cols {
		tagBoundary(result, x+2, 2, strconv.Itoa(i), labelColor, bgColor)
	}

	return result
}

// tagBoundary writes label on a padded box whose top left corner is (x, y).
func tagBoundary(img *image.RGBA, x, y int, label string, fg, bg color.RGBA) {
	t := renderText(label, 1)
	w, h := t.Size()
	if w == 0 {
		return
	}
	box := image.Rect(x-1, y-1, x+w+1, y+h+1)
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)
	t.drawAt(img, x, y+t.Ascent, fg)
}
