package form

// Verdicts maps field names to pass or fail.
type Verdicts map[string]bool

// AllPassed reports whether every verdict is true. An empty map passes.
func (v Verdicts) AllPassed() bool {
	for _, ok := range v {
		if !ok {
			return false
		}
	}
	return true
}

// Record is the outcome of validating one form.
type Record struct {
	ID       string
	Verdicts Verdicts

	// Err is the form-level failure, if any. A failed form has every field
	// marked as failed.
	Err error

	// Results holds per-field measurements. It is empty for failed forms.
	Results []FieldResult

	// Text holds optional transcriptions of text fields.
	Text map[string]string
}

// FailedRecord returns a record with every field marked as failed.
func FailedRecord(id string, fields []string, err error) Record {
	v := make(Verdicts, len(fields))
	for _, f := range fields {
		v[f] = false
	}
	return Record{ID: id, Verdicts: v, Err: err}
}

// Passed reports whether the form was processed and every field passed.
func (r Record) Passed() bool {
	return r.Err == nil && r.Verdicts.AllPassed()
}

// Table accumulates form records in order.
type Table struct {
	// Fields is the column order of the table.
	Fields  []string
	Records []Record
}

// NewTable returns an empty table with the given field columns.
func NewTable(fields []string) Table {
	return Table{Fields: append([]string(nil), fields...)}
}

// Append returns a table with records added after the existing ones. The
// receiver is left unchanged.
func (t Table) Append(records ...Record) Table {
	out := Table{
		Fields:  t.Fields,
		Records: make([]Record, 0, len(t.Records)+len(records)),
	}
	out.Records = append(out.Records, t.Records...)
	out.Records = append(out.Records, records...)
	return out
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// Failures returns the records of forms that could not be processed.
func (t Table) Failures() []Record {
	var out []Record
	for _, r := range t.Records {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
