package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawBoundaries(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	result := DrawBoundaries(img, []int{50}, []int{70}, "#0000FF")

	if result.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds: got %v, want 100x100", result.Bounds())
	}

	blue := color.RGBA{0, 0, 255, 255}
	if got := result.RGBAAt(90, 50); got != blue {
		t.Errorf("row line pixel: got %v, want %v", got, blue)
	}
	if got := result.RGBAAt(70, 90); got != blue {
		t.Errorf("column line pixel: got %v, want %v", got, blue)
	}
	if got := result.RGBAAt(90, 90); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel should be untouched, got %v", got)
	}
}

func TestDrawBoundaries_InvalidColorFallsBackToRed(t *testing.T) {
	img := createInMemoryImage(60, 60, color.White)

	result := DrawBoundaries(img, []int{40}, nil, "not-a-color")

	if got := result.RGBAAt(50, 40); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("line pixel: got %v, want red", got)
	}
}

func TestDrawBoundaries_IgnoresOutOfRange(t *testing.T) {
	img := createInMemoryImage(30, 30, color.White)

	// Must not panic.
	result := DrawBoundaries(img, []int{-5, 30, 100}, []int{-1, 31}, "#FF0000")

	if result.Bounds().Dx() != 30 {
		t.Errorf("width: got %d, want 30", result.Bounds().Dx())
	}
}

func TestDrawBoundaries_DoesNotModifySource(t *testing.T) {
	src := createPaper(40, 40)

	DrawBoundaries(src, []int{10, 20}, []int{10}, "#FF0000")

	for i, v := range src.Pix {
		if v != 255 {
			t.Fatalf("source pixel %d changed to %d", i, v)
		}
	}
}

func TestTagBoundary(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 255}

	tagBoundary(img, 2, 2, "10", fg, bg)

	// Two 7 pixel glyphs on a 13 pixel line, padded by one pixel.
	if got := img.RGBAAt(1, 1); got != bg {
		t.Errorf("box corner: got %v, want %v", got, bg)
	}
	if got := img.RGBAAt(16, 15); got != bg {
		t.Errorf("box corner: got %v, want %v", got, bg)
	}
	if got := img.RGBAAt(17, 16); got != (color.RGBA{}) {
		t.Errorf("pixel outside the box: got %v, want untouched", got)
	}

	lit := 0
	for y := 2; y < 15; y++ {
		for x := 2; x < 16; x++ {
			if img.RGBAAt(x, y) == fg {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("label text was not drawn")
	}
}

func TestTagBoundary_Clipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))

	// Must not panic when the label runs off the image.
	tagBoundary(img, 3, 3, "123", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})

	if got := img.RGBAAt(4, 4); got != (color.RGBA{0, 0, 0, 255}) && got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("clipped label pixel: got %v", got)
	}
}
