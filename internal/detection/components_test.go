package detection

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestCountCharacters(t *testing.T) {
	tests := []struct {
		name string
		crop *image.Gray
		want int
	}{
		{"blank crop", createPaper(40, 20), 0},
		{"one blob", createCrop(blob{2, 5}), 1},
		{"three blobs", createCrop(blob{0, 3}, blob{8, 3}, blob{20, 4}), 3},
		{"touching blobs merge", createCrop(blob{0, 3}, blob{3, 3}), 1},
		{"one pixel gap separates", createCrop(blob{0, 3}, blob{4, 3}), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCharacters(tt.crop, 128); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountCharacters_EightConnectivity(t *testing.T) {
	img := createPaper(10, 10)
	// A diagonal stroke only touches at corners.
	for i := 2; i < 7; i++ {
		img.SetGray(i, i, color.Gray{Y: 0})
	}
	if got := CountCharacters(img, 128); got != 1 {
		t.Errorf("diagonal stroke: got %d components, want 1", got)
	}
}

func TestCountCharacters_Ring(t *testing.T) {
	img := createPaper(20, 20)
	fillRect(img, image.Rect(4, 4, 16, 16))
	for y := 6; y < 14; y++ {
		for x := 6; x < 14; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	if got := CountCharacters(img, 128); got != 1 {
		t.Errorf("ring: got %d components, want 1", got)
	}
}

func TestCountCharacters_Cutoff(t *testing.T) {
	tests := []struct {
		value uint8
		want  int
	}{
		{0, 1},
		{128, 1},
		{129, 0},
		{200, 0},
	}

	for _, tt := range tests {
		img := createPaper(10, 10)
		img.SetGray(4, 4, color.Gray{Y: tt.value})
		if got := CountCharacters(img, 128); got != tt.want {
			t.Errorf("gray %d: got %d components, want %d", tt.value, got, tt.want)
		}
	}
}

func TestComponents(t *testing.T) {
	img := createPaper(30, 20)
	fillRect(img, image.Rect(10, 2, 14, 6)) // 4x4
	fillRect(img, image.Rect(2, 8, 5, 18))  // 3x10
	fillRect(img, image.Rect(20, 8, 21, 9)) // single pixel

	got := Components(img, 128)

	want := []Component{
		{Left: 10, Top: 2, Width: 4, Height: 4, Area: 16},
		{Left: 2, Top: 8, Width: 3, Height: 10, Area: 30},
		{Left: 20, Top: 8, Width: 1, Height: 1, Area: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
	if got[0].Right() != 14 {
		t.Errorf("Right: got %d, want 14", got[0].Right())
	}
}

func TestComponents_OffsetCrop(t *testing.T) {
	img := createPaper(50, 50)
	fillRect(img, image.Rect(25, 30, 28, 33))
	sub := img.SubImage(image.Rect(20, 20, 40, 40))

	got := Components(sub, 128)

	if len(got) != 1 {
		t.Fatalf("got %d components, want 1", len(got))
	}
	if got[0].Left != 5 || got[0].Top != 10 {
		t.Errorf("component should be in crop coordinates, got left=%d top=%d", got[0].Left, got[0].Top)
	}
}
