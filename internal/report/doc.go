// Package report writes validation results.
//
// The CSV writer produces the table consumed by the grading spreadsheet: one
// row per form, an ID column followed by one OK/MAL column per field. The
// Markdown writer produces a human-readable batch summary with failures and
// optional transcriptions.
package report
