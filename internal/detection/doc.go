// Package detection finds the grid of a scanned form and measures the ink
// inside its fields.
//
// It covers the pixel-level half of form validation:
//
//   - Grid boundaries: Canny edges projected along an axis, the strongest
//     lines kept and collapsed by a minimum gap (Detector, DetectBoundaries)
//   - Character counting: binarization followed by 8-connected component
//     labeling (Components, CountCharacters)
//   - Word spacing: gap analysis between components (SpacingAnalyzer)
//   - Single choice: mark counting with a known number of printed
//     separators (ChoiceValidator)
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Row boundaries are y coordinates and column boundaries are x coordinates of
// the image passed in. Component bounding boxes are relative to the crop they
// were extracted from.
//
// # Ink Convention
//
// Scans are dark ink on light paper. A pixel is ink when its gray value is at
// or below the cutoff (imaging.DefaultInkCutoff by default).
//
// # Determinism
//
// Every function is a pure computation over its input. Ties between equally
// strong grid lines resolve to the lower position, so repeated runs over the
// same scan return identical boundaries.
package detection
