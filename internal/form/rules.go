package form

import (
	"image"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
)

// FieldResult is the measurement and verdict of one field.
type FieldResult struct {
	Field string

	// Chars is the number of ink components found in the crop.
	Chars int

	// Space reports a word space. It is only measured for text fields whose
	// rule constrains it.
	Space bool

	// Marks is the number of respondent marks in a choice field.
	Marks int

	Passed bool

	// Warning is set when a choice field's separator was not found. The
	// verdict still follows the mark count.
	Warning error
}

// RuleEngine applies field rules to crops. It holds no state between calls.
type RuleEngine struct {
	// Spacing measures text fields; its Cutoff also binarizes them for
	// character counting.
	Spacing detection.SpacingAnalyzer

	// Choice measures choice fields.
	Choice detection.ChoiceValidator
}

// NewRuleEngine returns an engine with the default analyzers.
func NewRuleEngine() RuleEngine {
	return RuleEngine{
		Spacing: detection.DefaultSpacingAnalyzer(),
		Choice:  detection.DefaultChoiceValidator(),
	}
}

// Evaluate measures crop and applies the rule of field.
func (e RuleEngine) Evaluate(field Field, crop image.Image) FieldResult {
	res := FieldResult{Field: field.Name}
	rule := field.Rule

	if rule.Kind == KindChoice {
		res.Marks, res.Warning = e.Choice.Marks(crop)
		res.Chars = res.Marks + e.Choice.SeparatorMarks
		res.Passed = res.Marks == 1
		return res
	}

	comps := detection.Components(crop, e.Spacing.Cutoff)
	res.Chars = len(comps)

	passed := res.Chars >= rule.MinChars
	if rule.MaxChars > 0 && res.Chars > rule.MaxChars {
		passed = false
	}

	switch rule.Space {
	case SpaceRequired:
		res.Space = e.Spacing.HasSpaceBetween(comps)
		passed = passed && res.Space
	case SpaceForbidden:
		res.Space = e.Spacing.HasSpaceBetween(comps)
		passed = passed && !res.Space
	}

	res.Passed = passed
	return res
}

// EvaluateAll assigns crops to the layout's fields and evaluates each one.
// It fails only when the number of crops does not match the layout.
func (e RuleEngine) EvaluateAll(layout Layout, crops []FieldCrop) (Verdicts, []FieldResult, error) {
	assigned, err := layout.AssignFields(crops)
	if err != nil {
		return nil, nil, err
	}

	verdicts := make(Verdicts, len(assigned))
	results := make([]FieldResult, len(assigned))
	for i, a := range assigned {
		results[i] = e.Evaluate(a.Field, a.Crop.Image)
		verdicts[a.Field.Name] = results[i].Passed
	}
	return verdicts, results, nil
}
