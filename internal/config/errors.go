package config

import "errors"

// Configuration errors. Validate wraps them with the offending values, so
// callers should match with errors.Is.
var (
	// ErrConfigNotFound is returned when an explicitly named configuration
	// file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrNoInput is returned when no input directory is configured.
	ErrNoInput = errors.New("no input directory specified")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidScan is returned when a boundary scan has no candidates or a
	// non-positive minimum gap.
	ErrInvalidScan = errors.New("invalid boundary scan")

	// ErrInvalidEdgeThresholds is returned when the Canny thresholds are
	// negative or the low threshold exceeds the high one.
	ErrInvalidEdgeThresholds = errors.New("invalid edge thresholds")

	// ErrInvalidSpacing is returned when the spacing constants are not positive.
	ErrInvalidSpacing = errors.New("invalid spacing parameters")

	// ErrInvalidSeparatorMarks is returned when the separator count is negative.
	ErrInvalidSeparatorMarks = errors.New("invalid separator marks: must be non-negative")

	// ErrInvalidLogLevel is returned for an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidAnnotation is returned when the annotation style is unusable.
	ErrInvalidAnnotation = errors.New("invalid annotation style")
)
