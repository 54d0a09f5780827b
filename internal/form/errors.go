package form

import (
	"errors"
	"fmt"
	"image"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
)

// Sentinel errors. Callers can match them with errors.Is.
var (
	// ErrGridDetection means too few grid lines were found to crop the form.
	ErrGridDetection = errors.New("grid detection failed")

	// ErrDegenerateField means a crop rectangle has no width or height,
	// usually because two boundaries collapsed into one.
	ErrDegenerateField = errors.New("degenerate field")

	// ErrFieldCountMismatch means the number of answer crops does not match
	// the number of fields in the layout.
	ErrFieldCountMismatch = errors.New("field count mismatch")

	// ErrInvalidLayout is returned by Layout.Validate.
	ErrInvalidLayout = errors.New("invalid layout")
)

// GridError reports an axis on which too few boundaries were detected.
type GridError struct {
	FormID   string
	Axis     detection.Axis
	Found    int
	Required int
}

func (e *GridError) Error() string {
	return fmt.Sprintf("form %s: %v: found %d %s boundaries, need %d",
		e.FormID, ErrGridDetection, e.Found, e.Axis, e.Required)
}

// Unwrap returns ErrGridDetection.
func (e *GridError) Unwrap() error {
	return ErrGridDetection
}

// DegenerateFieldError reports the crop rectangle that came out empty.
// Rect is given as computed, before any normalization, so Min may exceed Max.
type DegenerateFieldError struct {
	RowPair int
	ColPair int
	Rect    image.Rectangle
}

func (e *DegenerateFieldError) Error() string {
	return fmt.Sprintf("%v: row pair %d, column pair %d: x=[%d,%d) y=[%d,%d)",
		ErrDegenerateField, e.RowPair, e.ColPair, e.Rect.Min.X, e.Rect.Max.X, e.Rect.Min.Y, e.Rect.Max.Y)
}

// Unwrap returns ErrDegenerateField.
func (e *DegenerateFieldError) Unwrap() error {
	return ErrDegenerateField
}
