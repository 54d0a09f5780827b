package detection

import (
	"errors"
	"fmt"
	"image"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
)

// ErrSeparatorMissing is returned by ChoiceValidator.Marks when a crop holds
// fewer components than the expected separator marks, meaning the separator
// was merged with a mark or not printed.
var ErrSeparatorMissing = errors.New("separator mark not found")

// ChoiceValidator checks single-choice answer cells.
//
// Each answer cell contains SeparatorMarks printed separator components in
// addition to whatever the respondent marked. Counting assumes every
// separator segments into exactly one component.
type ChoiceValidator struct {
	Cutoff         uint8 `yaml:"cutoff"`
	SeparatorMarks int   `yaml:"separator_marks"`
}

// DefaultChoiceValidator returns the validator for the standard form, which
// prints one separator per answer cell.
func DefaultChoiceValidator() ChoiceValidator {
	return ChoiceValidator{Cutoff: imaging.DefaultInkCutoff, SeparatorMarks: 1}
}

// Marks returns the number of respondent marks in crop.
func (v ChoiceValidator) Marks(crop image.Image) (int, error) {
	n := CountCharacters(crop, v.Cutoff)
	if n < v.SeparatorMarks {
		return n - v.SeparatorMarks, fmt.Errorf("%w: found %d components, expected at least %d",
			ErrSeparatorMissing, n, v.SeparatorMarks)
	}
	return n - v.SeparatorMarks, nil
}

// ExactlyOneMarked reports whether exactly one option is marked in crop.
func (v ChoiceValidator) ExactlyOneMarked(crop image.Image) bool {
	return CountCharacters(crop, v.Cutoff)-v.SeparatorMarks == 1
}
