package form

import (
	"image"
	"image/color"
)

func createPaper(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillRect(img *image.Gray, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

// writeChars draws n 4 pixel wide characters separated by 2 pixels of
// paper. A word break of extra pixels is inserted before character
// breakAt when breakAt > 0.
func writeChars(n, breakAt, extra int) *image.Gray {
	img := createPaper(10+n*6+extra, 24)
	x := 3
	for i := 0; i < n; i++ {
		if breakAt > 0 && i == breakAt {
			x += extra
		}
		fillRect(img, image.Rect(x, 6, x+4, 18))
		x += 6
	}
	return img
}
