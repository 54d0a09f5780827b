package form

import (
	"fmt"
	"image"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
)

// FieldCrop is one answer cell cut from a form.
type FieldCrop struct {
	// Image is a grayscale copy of the cell with its origin at (0,0).
	Image *image.Gray

	// Rect is the cell in the coordinates of the source form.
	Rect image.Rectangle

	// RowPair and ColPair index the boundary pairs the cell lies between.
	RowPair int
	ColPair int
}

// CropFields cuts the answer cells of a form out of img.
//
// Each cell spans [rows[i]+inset, rows[i+1]) vertically and
// [cols[j]+inset, cols[j+1]) horizontally. Row pairs listed in
// layout.ExcludedRowPairs are skipped. Cells are generated row-major and
// only those at positions of parity layout.KeepParity are returned.
//
// A cell with no width or height fails with a *DegenerateFieldError.
func CropFields(img image.Image, rows, cols detection.Boundaries, layout Layout) ([]FieldCrop, error) {
	excluded := make(map[int]bool, len(layout.ExcludedRowPairs))
	for _, p := range layout.ExcludedRowPairs {
		excluded[p] = true
	}
	origin := img.Bounds().Min

	var crops []FieldCrop
	position := 0
	for i := 0; i+1 < len(rows); i++ {
		if excluded[i] {
			continue
		}
		for j := 0; j+1 < len(cols); j++ {
			r := image.Rectangle{
				Min: image.Pt(cols[j]+layout.Inset, rows[i]+layout.Inset).Add(origin),
				Max: image.Pt(cols[j+1], rows[i+1]).Add(origin),
			}
			if r.Dx() <= 0 || r.Dy() <= 0 {
				return nil, &DegenerateFieldError{RowPair: i, ColPair: j, Rect: r}
			}

			keep := position%2 == layout.KeepParity
			position++
			if !keep {
				continue
			}

			cell, err := imaging.Crop(img, r)
			if err != nil {
				return nil, fmt.Errorf("row pair %d, column pair %d: %w", i, j, err)
			}
			crops = append(crops, FieldCrop{Image: cell, Rect: r, RowPair: i, ColPair: j})
		}
	}
	return crops, nil
}
