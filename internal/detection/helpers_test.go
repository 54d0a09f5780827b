package detection

import (
	"image"
	"image/color"
)

// createPaper creates a white grayscale image.
func createPaper(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// fillRect paints r black.
func fillRect(img *image.Gray, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

// blob is a solid ink rectangle spanning [left, left+width) horizontally.
type blob struct {
	left, width int
}

// createCrop draws each blob as a 10 pixel tall ink block on a crop that
// leaves some paper to the right of the last blob.
func createCrop(blobs ...blob) *image.Gray {
	width := 10
	for _, b := range blobs {
		width = max(width, b.left+b.width+10)
	}
	img := createPaper(width, 20)
	for _, b := range blobs {
		fillRect(img, image.Rect(b.left, 5, b.left+b.width, 15))
	}
	return img
}

// createGridImage draws 1 pixel black lines at the given row and column
// positions across the whole image.
func createGridImage(width, height int, rows, cols []int) *image.Gray {
	img := createPaper(width, height)
	for _, y := range rows {
		fillRect(img, image.Rect(0, y, width, y+1))
	}
	for _, x := range cols {
		fillRect(img, image.Rect(x, 0, x+1, height))
	}
	return img
}
