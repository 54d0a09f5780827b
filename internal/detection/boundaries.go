package detection

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Axis selects which family of grid lines a scan looks for.
type Axis int

const (
	// Rows finds horizontal grid lines. The projection sums each pixel row
	// and boundaries are y coordinates.
	Rows Axis = iota

	// Columns finds vertical grid lines. The projection sums each pixel
	// column and boundaries are x coordinates.
	Columns
)

// String returns "rows" or "columns".
func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	if a != Rows && a != Columns {
		return nil, fmt.Errorf("unknown axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts "rows" or
// "columns" in any case.
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "rows", "row":
		*a = Rows
	case "columns", "column", "cols":
		*a = Columns
	default:
		return fmt.Errorf("unknown axis %q", text)
	}
	return nil
}

// Boundaries is an ordered list of grid line positions along one axis.
// Positions are strictly increasing and lie within the image.
type Boundaries []int

// ScanOptions configures boundary selection along one axis.
type ScanOptions struct {
	// MaxCandidates is how many of the strongest lines are considered.
	MaxCandidates int `yaml:"max_candidates"`

	// MinGap is the minimum distance between two kept boundaries.
	MinGap int `yaml:"min_gap"`
}

// DefaultRowScan returns the row scan used on the standard form.
func DefaultRowScan() ScanOptions {
	return ScanOptions{MaxCandidates: 20, MinGap: 10}
}

// DefaultColumnScan returns the column scan used on the standard form.
// Column lines are far apart, so the minimum gap is much larger.
func DefaultColumnScan() ScanOptions {
	return ScanOptions{MaxCandidates: 20, MinGap: 170}
}

// BoundaryRule removes a known spurious boundary from a detected set.
//
// When boundaries are detected along Axis and more than MinCount remain
// after collapsing, the boundary at DropIndex is removed.
type BoundaryRule struct {
	Axis      Axis `yaml:"axis"`
	MinCount  int  `yaml:"min_count"`
	DropIndex int  `yaml:"drop_index"`
}

// DefaultBoundaryRules drops the question separator line, which is the third
// column boundary on the standard form.
func DefaultBoundaryRules() []BoundaryRule {
	return []BoundaryRule{{Axis: Columns, MinCount: 3, DropIndex: 2}}
}

// Apply returns b with the rule applied. b is never modified.
func (r BoundaryRule) Apply(axis Axis, b Boundaries) Boundaries {
	if axis != r.Axis || len(b) <= r.MinCount || r.DropIndex < 0 || r.DropIndex >= len(b) {
		return b
	}
	out := make(Boundaries, 0, len(b)-1)
	out = append(out, b[:r.DropIndex]...)
	return append(out, b[r.DropIndex+1:]...)
}

// Detector finds grid boundaries in scanned forms.
//
// A zero Detector uses no boundary rules and an edge map with zero
// thresholds; use NewDetector for the standard form settings.
type Detector struct {
	Edge  imaging.EdgeOptions
	Rules []BoundaryRule
}

// NewDetector returns a Detector with the default edge thresholds and
// boundary rules.
func NewDetector() Detector {
	return Detector{Edge: imaging.DefaultEdgeOptions(), Rules: DefaultBoundaryRules()}
}

// DetectBoundaries finds grid line positions along axis using the default
// edge thresholds and boundary rules.
func DetectBoundaries(img image.Image, axis Axis, opts ScanOptions) Boundaries {
	return NewDetector().Detect(img, axis, opts)
}

// Detect finds grid line positions along one axis.
//
// # Algorithm
//
//  1. Canny edge map of the image
//  2. Edge intensity projection along the axis (see Projection)
//  3. Selection of the strongest lines (see SelectBoundaries)
//  4. Boundary rules matching the axis, in order
//
// The result may hold fewer boundaries than the layout needs, or none at
// all; deciding whether it is sufficient is up to the caller.
func (d Detector) Detect(img image.Image, axis Axis, opts ScanOptions) Boundaries {
	edges := imaging.EdgeMap(img, d.Edge)
	return d.fromEdges(edges, axis, opts)
}

// DetectGrid runs Detect for both axes over a single edge map.
func (d Detector) DetectGrid(img image.Image, rows, cols ScanOptions) (Boundaries, Boundaries) {
	edges := imaging.EdgeMap(img, d.Edge)
	return d.fromEdges(edges, Rows, rows), d.fromEdges(edges, Columns, cols)
}

func (d Detector) fromEdges(edges *image.Gray, axis Axis, opts ScanOptions) Boundaries {
	b := SelectBoundaries(Projection(edges, axis), opts)
	for _, rule := range d.Rules {
		b = rule.Apply(axis, b)
	}
	return b
}

// Projection sums edge intensity along axis.
//
// For Rows the result has one value per pixel row (image height); for
// Columns one value per pixel column (image width). An empty image yields an
// empty projection.
func Projection(edges *image.Gray, axis Axis) []float64 {
	width := edges.Rect.Dx()
	height := edges.Rect.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+width]
		for x, v := range row {
			data[y*width+x] = float64(v)
		}
	}
	m := mat.NewDense(height, width, data)

	if axis == Rows {
		profile := make([]float64, height)
		for y := range profile {
			profile[y] = floats.Sum(m.RawRowView(y))
		}
		return profile
	}

	profile := make([]float64, width)
	col := make([]float64, height)
	for x := range profile {
		profile[x] = floats.Sum(mat.Col(col, x, m))
	}
	return profile
}

// SelectBoundaries picks grid lines from a projection profile.
//
// The opts.MaxCandidates lines with the highest intensity are taken (clamped
// to the profile length, lines with zero intensity never qualify, and equal
// intensities prefer the lower position). They are sorted by position and
// collapsed: the first is always kept and every later line is kept only if
// it lies at least opts.MinGap past the previously kept one.
func SelectBoundaries(profile []float64, opts ScanOptions) Boundaries {
	n := opts.MaxCandidates
	if n > len(profile) {
		n = len(profile)
	}
	if n <= 0 {
		return Boundaries{}
	}

	idx := make([]int, 0, len(profile))
	for i, v := range profile {
		if v > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return profile[idx[a]] > profile[idx[b]]
	})
	if len(idx) > n {
		idx = idx[:n]
	}
	sort.Ints(idx)

	kept := make(Boundaries, 0, len(idx))
	for _, i := range idx {
		if len(kept) == 0 || i-kept[len(kept)-1] >= opts.MinGap {
			kept = append(kept, i)
		}
	}
	return kept
}
