package form

import (
	"bytes"
	"fmt"
	"os"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
	"gopkg.in/yaml.v3"
)

// RuleKind selects how a field is measured.
type RuleKind string

const (
	// KindText counts characters and optionally checks for a word space.
	KindText RuleKind = "text"

	// KindChoice checks that exactly one option is marked.
	KindChoice RuleKind = "choice"
)

// SpaceRule constrains the presence of a word space in a text field.
type SpaceRule string

const (
	SpaceAny       SpaceRule = "any"
	SpaceRequired  SpaceRule = "required"
	SpaceForbidden SpaceRule = "forbidden"
)

// Rule is the acceptance rule of one field.
//
// For text fields the character count must lie within [MinChars, MaxChars];
// a MaxChars of 0 leaves the count unbounded above. Choice fields ignore the
// character bounds and the space rule.
type Rule struct {
	Kind     RuleKind  `yaml:"kind"`
	MinChars int       `yaml:"min_chars,omitempty"`
	MaxChars int       `yaml:"max_chars,omitempty"`
	Space    SpaceRule `yaml:"space,omitempty"`
}

// Field is a named answer cell.
type Field struct {
	Name string `yaml:"name"`
	Rule Rule   `yaml:"rule"`
}

// Layout describes a form template.
//
// Crops are generated for every pair of adjacent row boundaries except
// ExcludedRowPairs, crossed with every pair of adjacent column boundaries,
// in row-major order. Of those, only crops whose position has parity
// KeepParity are answers; they are assigned to Fields in order.
type Layout struct {
	Name string `yaml:"name"`

	// ExcludedRowPairs lists row band indices that hold headers or footers.
	ExcludedRowPairs []int `yaml:"excluded_row_pairs"`

	// Inset is removed from the top and left of every crop so the grid line
	// itself is not counted as ink.
	Inset int `yaml:"inset"`

	// KeepParity is 1 to keep odd-positioned crops or 0 to keep even ones.
	KeepParity int `yaml:"keep_parity"`

	// MinRowBoundaries and MinColumnBoundaries are the smallest boundary
	// counts for which the form can be cropped.
	MinRowBoundaries    int `yaml:"min_row_boundaries"`
	MinColumnBoundaries int `yaml:"min_column_boundaries"`

	// BoundaryRules remove known spurious grid lines after detection.
	BoundaryRules []detection.BoundaryRule `yaml:"boundary_rules"`

	Fields []Field `yaml:"fields"`
}

// Field names of the standard form.
const (
	FieldName      = "Nombre y Apellido"
	FieldAge       = "Edad"
	FieldMail      = "Mail"
	FieldStudentID = "Legajo"
	FieldQuestion1 = "Pregunta 1"
	FieldQuestion2 = "Pregunta 2"
	FieldQuestion3 = "Pregunta 3"
	FieldComments  = "Comentarios"
)

// DefaultLayout returns the standard enrollment form: a header band, four
// personal data rows, a question header band, three single-choice questions
// and a comments row, each row split into a label cell and an answer cell.
func DefaultLayout() Layout {
	choice := Rule{Kind: KindChoice}
	return Layout{
		Name:                "formulario",
		ExcludedRowPairs:    []int{0, 5},
		Inset:               3,
		KeepParity:          1,
		MinRowBoundaries:    11,
		MinColumnBoundaries: 3,
		BoundaryRules:       detection.DefaultBoundaryRules(),
		Fields: []Field{
			{Name: FieldName, Rule: Rule{Kind: KindText, MaxChars: 25, Space: SpaceRequired}},
			{Name: FieldAge, Rule: Rule{Kind: KindText, MinChars: 2, MaxChars: 3, Space: SpaceForbidden}},
			{Name: FieldMail, Rule: Rule{Kind: KindText, MaxChars: 25, Space: SpaceForbidden}},
			{Name: FieldStudentID, Rule: Rule{Kind: KindText, MinChars: 8, MaxChars: 8, Space: SpaceForbidden}},
			{Name: FieldQuestion1, Rule: choice},
			{Name: FieldQuestion2, Rule: choice},
			{Name: FieldQuestion3, Rule: choice},
			{Name: FieldComments, Rule: Rule{Kind: KindText, MinChars: 1, MaxChars: 25, Space: SpaceAny}},
		},
	}
}

// FieldNames returns the field names in layout order.
func (l Layout) FieldNames() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks the layout for inconsistencies.
func (l Layout) Validate() error {
	if len(l.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidLayout)
	}
	if l.Inset < 0 {
		return fmt.Errorf("%w: negative inset %d", ErrInvalidLayout, l.Inset)
	}
	if l.KeepParity != 0 && l.KeepParity != 1 {
		return fmt.Errorf("%w: keep_parity must be 0 or 1, got %d", ErrInvalidLayout, l.KeepParity)
	}
	if l.MinRowBoundaries < 2 || l.MinColumnBoundaries < 2 {
		return fmt.Errorf("%w: at least 2 row and column boundaries are needed", ErrInvalidLayout)
	}
	for _, p := range l.ExcludedRowPairs {
		if p < 0 {
			return fmt.Errorf("%w: negative excluded row pair %d", ErrInvalidLayout, p)
		}
	}

	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field without a name", ErrInvalidLayout)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidLayout, f.Name)
		}
		seen[f.Name] = true

		if err := f.Rule.validate(); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidLayout, f.Name, err)
		}
	}
	return nil
}

func (r Rule) validate() error {
	switch r.Kind {
	case KindChoice:
		return nil
	case KindText:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}

	if r.MinChars < 0 || r.MaxChars < 0 {
		return fmt.Errorf("negative character bound")
	}
	if r.MaxChars > 0 && r.MinChars > r.MaxChars {
		return fmt.Errorf("min_chars %d exceeds max_chars %d", r.MinChars, r.MaxChars)
	}
	switch r.Space {
	case "", SpaceAny, SpaceRequired, SpaceForbidden:
		return nil
	default:
		return fmt.Errorf("unknown space rule %q", r.Space)
	}
}

// ParseLayout decodes a YAML layout. Unknown keys are rejected and the
// result is validated.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads and parses a YAML layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

// Assignment pairs a field with its crop.
type Assignment struct {
	Field Field
	Crop  FieldCrop
}

// AssignFields pairs crops with the layout's fields in order. The number of
// crops must equal the number of fields.
func (l Layout) AssignFields(crops []FieldCrop) ([]Assignment, error) {
	if len(crops) != len(l.Fields) {
		return nil, fmt.Errorf("%w: %d answer crops for %d fields", ErrFieldCountMismatch, len(crops), len(l.Fields))
	}
	out := make([]Assignment, len(crops))
	for i, c := range crops {
		out[i] = Assignment{Field: l.Fields[i], Crop: c}
	}
	return out, nil
}
