package detection

import (
	"image"
	"sort"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"gonum.org/v1/gonum/floats"
)

// SpacingAnalyzer decides whether a crop contains a word-separating space.
//
// Two thresholds are used. With exactly two components a gap wider than
// PairGap is a space. With three or more, a gap is a space when it exceeds
// Multiplier times the median of the positive gaps, which adapts to the
// writer's letter spacing. The jump between the two regimes is intentional.
type SpacingAnalyzer struct {
	// Cutoff is the binarization level (see Components).
	Cutoff uint8 `yaml:"cutoff"`

	// PairGap is the fixed threshold in pixels used for two components.
	PairGap float64 `yaml:"pair_gap"`

	// Multiplier scales the median positive gap for three or more components.
	Multiplier float64 `yaml:"multiplier"`
}

// DefaultSpacingAnalyzer returns the analyzer tuned for the standard form.
func DefaultSpacingAnalyzer() SpacingAnalyzer {
	return SpacingAnalyzer{
		Cutoff:     imaging.DefaultInkCutoff,
		PairGap:    10,
		Multiplier: 2.5,
	}
}

// HasSpace reports whether crop contains a gap between characters that is
// wide enough to separate two words.
func (s SpacingAnalyzer) HasSpace(crop image.Image) bool {
	return s.HasSpaceBetween(Components(crop, s.Cutoff))
}

// HasSpaceBetween applies the spacing rule to already extracted components.
//
// Fewer than two components never contain a space. When three or more
// components all touch or overlap, no gap is positive and the median is
// undefined; that case is reported as no space.
func (s SpacingAnalyzer) HasSpaceBetween(comps []Component) bool {
	if len(comps) < 2 {
		return false
	}

	gaps := Gaps(comps)

	threshold := s.PairGap
	if len(comps) != 2 {
		m, ok := median(positive(gaps))
		if !ok {
			return false
		}
		threshold = s.Multiplier * m
	}

	return floats.Max(gaps) > threshold
}

// Gaps returns the horizontal gaps between neighbouring components ordered
// by left edge. A gap is the distance from the right edge of one component
// to the left edge of the next and is negative when they overlap.
func Gaps(comps []Component) []float64 {
	if len(comps) < 2 {
		return nil
	}

	sorted := make([]Component, len(comps))
	copy(sorted, comps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Left < sorted[j].Left
	})

	gaps := make([]float64, len(sorted)-1)
	for i := range gaps {
		gaps[i] = float64(sorted[i+1].Left - sorted[i].Right())
	}
	return gaps
}

func positive(vals []float64) []float64 {
	var out []float64
	for _, v := range vals {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// median returns the middle value of vals, averaging the two middle values
// for an even count. ok is false for an empty slice.
func median(vals []float64) (m float64, ok bool) {
	if len(vals) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
