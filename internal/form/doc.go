// Package form maps detected grid boundaries onto the fields of a fixed form
// layout and decides whether each field was filled in correctly.
//
// A Layout describes one form template: which row bands are headers, how far
// crops are inset from the grid lines, which cells hold answers and the rule
// every answer must satisfy. CropFields turns boundaries into answer crops,
// Layout.AssignFields pairs them with field names and RuleEngine produces
// the verdicts. Records of many forms are collected in a Table.
package form
