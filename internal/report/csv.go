package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
)

// Cell values of the CSV report.
const (
	ValuePass = "OK"
	ValueFail = "MAL"

	// IDColumn is the header of the first column.
	IDColumn = "ID"
)

// WriteCSV writes table as CSV: a header of IDColumn followed by the field
// names in table order, then one row per record. A field missing from a
// record's verdicts is written as failed.
func WriteCSV(w io.Writer, table form.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(table.Fields)+1)
	header = append(header, IDColumn)
	header = append(header, table.Fields...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range table.Records {
		row[0] = rec.ID
		for i, field := range table.Fields {
			row[i+1] = verdictValue(rec.Verdicts[field])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write form %s: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes table to path, replacing any existing file.
func WriteCSVFile(path string, table form.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, table); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func verdictValue(ok bool) string {
	if ok {
		return ValuePass
	}
	return ValueFail
}
