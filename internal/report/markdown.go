package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/nao1215/markdown"
)

// Summary identifies a batch run in the Markdown report.
type Summary struct {
	RunID     string
	Generated time.Time

	// Source is the input location shown in the header, if any.
	Source string
}

// WriteMarkdown writes a Markdown summary of table: run information, totals,
// a verdict table with one row per form, the forms that could not be
// processed, and transcriptions when any record carries them.
func WriteMarkdown(w io.Writer, table form.Table, sum Summary) error {
	md := markdown.NewMarkdown(w)

	writeHeader(md, table, sum)
	writeVerdicts(md, table)
	writeFailures(md, table)
	writeTranscriptions(md, table)

	return md.Build()
}

func writeHeader(md *markdown.Markdown, table form.Table, sum Summary) {
	md.H1("Form Validation Report")
	md.PlainText("")

	passed := 0
	for _, rec := range table.Records {
		if rec.Passed() {
			passed++
		}
	}

	rows := [][]string{
		{"Run ID", "`" + sum.RunID + "`"},
	}
	if !sum.Generated.IsZero() {
		rows = append(rows, []string{"Generated", sum.Generated.Format("2006-01-02 15:04:05 MST")})
	}
	if sum.Source != "" {
		rows = append(rows, []string{"Source", "`" + sum.Source + "`"})
	}
	rows = append(rows,
		[]string{"Forms", strconv.Itoa(table.Len())},
		[]string{"Passed", strconv.Itoa(passed)},
		[]string{"Failed", strconv.Itoa(table.Len() - passed)},
		[]string{"Unprocessed", strconv.Itoa(len(table.Failures()))},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeVerdicts(md *markdown.Markdown, table form.Table) {
	md.H2("Verdicts")
	md.PlainText("")

	if table.Len() == 0 {
		md.PlainText("No forms were processed.")
		md.PlainText("")
		return
	}

	header := append([]string{IDColumn}, table.Fields...)
	header = append(header, "Result")

	rows := make([][]string, len(table.Records))
	for i, rec := range table.Records {
		row := make([]string, 0, len(header))
		row = append(row, rec.ID)
		for _, field := range table.Fields {
			row = append(row, verdictValue(rec.Verdicts[field]))
		}
		if rec.Passed() {
			row = append(row, "✅ "+ValuePass)
		} else {
			row = append(row, "❌ "+ValueFail)
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, table form.Table) {
	failures := table.Failures()
	if len(failures) == 0 {
		return
	}

	md.H2("Unprocessed Forms")
	md.PlainText("")
	md.Warningf("%d form(s) could not be processed; every field was marked %s.", len(failures), ValueFail)
	md.PlainText("")

	items := make([]string, len(failures))
	for i, rec := range failures {
		items[i] = fmt.Sprintf("`%s`: %v", rec.ID, rec.Err)
	}
	md.BulletList(items...)
	md.PlainText("")
}

func writeTranscriptions(md *markdown.Markdown, table form.Table) {
	var rows [][]string
	for _, rec := range table.Records {
		for _, field := range table.Fields {
			text, ok := rec.Text[field]
			if !ok {
				continue
			}
			rows = append(rows, []string{rec.ID, field, tableCell(text)})
		}
	}
	if len(rows) == 0 {
		return
	}

	md.H2("Transcriptions")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{IDColumn, "Field", "Text"},
		Rows:   rows,
	})
	md.PlainText("")
}

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "|", "\\|")

// tableCell flattens OCR output onto one line so it fits a table cell.
func tableCell(s string) string {
	return strings.TrimSpace(cellReplacer.Replace(s))
}
