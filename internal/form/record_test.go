package form

import (
	"errors"
	"reflect"
	"testing"
)

func TestVerdicts_AllPassed(t *testing.T) {
	tests := []struct {
		name string
		v    Verdicts
		want bool
	}{
		{"nil", nil, true},
		{"empty", Verdicts{}, true},
		{"all true", Verdicts{"Edad": true, "Mail": true}, true},
		{"one false", Verdicts{"Edad": true, "Mail": false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AllPassed(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailedRecord(t *testing.T) {
	cause := errors.New("scan unreadable")
	fields := DefaultLayout().FieldNames()

	r := FailedRecord("03", fields, cause)

	if r.ID != "03" || !errors.Is(r.Err, cause) {
		t.Errorf("unexpected record: %+v", r)
	}
	if len(r.Verdicts) != len(fields) {
		t.Fatalf("got %d verdicts, want %d", len(r.Verdicts), len(fields))
	}
	for _, f := range fields {
		if ok, present := r.Verdicts[f]; !present || ok {
			t.Errorf("%s: want present and false", f)
		}
	}
	if r.Passed() {
		t.Error("failed record must not pass")
	}
}

func TestTable_Append(t *testing.T) {
	empty := NewTable([]string{"Edad"})

	one := empty.Append(Record{ID: "01", Verdicts: Verdicts{"Edad": true}})
	two := one.Append(Record{ID: "02", Verdicts: Verdicts{"Edad": false}}, FailedRecord("03", []string{"Edad"}, errors.New("x")))

	if empty.Len() != 0 {
		t.Errorf("original table modified: %d records", empty.Len())
	}
	if one.Len() != 1 {
		t.Errorf("one: got %d records, want 1", one.Len())
	}

	var ids []string
	for _, r := range two.Records {
		ids = append(ids, r.ID)
	}
	if want := []string{"01", "02", "03"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("order: got %v, want %v", ids, want)
	}

	if failures := two.Failures(); len(failures) != 1 || failures[0].ID != "03" {
		t.Errorf("failures: got %+v", failures)
	}
}

func TestNewTable_CopiesFields(t *testing.T) {
	fields := []string{"a", "b"}
	table := NewTable(fields)
	fields[0] = "z"

	if table.Fields[0] != "a" {
		t.Error("NewTable must copy the field list")
	}
}
