package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop errors. Callers can match them with errors.Is.
var (
	// ErrOutOfBounds is returned when a crop region extends past the image.
	ErrOutOfBounds = errors.New("crop region outside image bounds")

	// ErrEmptyRegion is returned when a crop region has zero width or height.
	ErrEmptyRegion = errors.New("crop region is empty")
)

// Crop extracts a rectangular region from an image as a grayscale copy.
//
// The region is given in the coordinates of img (Min inclusive, Max
// exclusive). The returned image has its origin at (0,0) and shares no pixel
// memory with img.
func Crop(img image.Image, r image.Rectangle) (*image.Gray, error) {
	bounds := img.Bounds()

	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrEmptyRegion, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d) not in (%d,%d)-(%d,%d)", ErrOutOfBounds,
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return ToGray(imaging.Crop(img, r)), nil
}
