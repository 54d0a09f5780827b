// Package pipeline validates scanned forms end to end.
//
// For each form the Pipeline flattens the background (optional), detects the
// row and column grid, crops the answer cells, evaluates the field rules and
// assembles a form.Record. RunBatch does this for many forms and appends the
// records to a form.Table in source order.
//
// A form that cannot be processed does not stop the batch: it is recorded
// with every field failed and the error attached to the record.
package pipeline
