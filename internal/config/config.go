package config

import (
	"fmt"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/logging"
)

// Default configuration values.
const (
	// DefaultConfigFile is the YAML file looked up in the working directory
	// when no path is given.
	DefaultConfigFile = "formcheck.yaml"

	// DefaultEnvFile is the dotenv file read after the YAML file.
	DefaultEnvFile = ".env"

	DefaultInputDir  = "."
	DefaultInputGlob = "formulario_*.png"
	DefaultCSVPath   = "validacion_formularios.csv"
	DefaultWorkers   = 1
	DefaultLogLevel  = "info"
	DefaultLanguage  = "spa"
)

// InputConfig locates the form scans.
type InputConfig struct {
	Dir  string `yaml:"dir"`
	Glob string `yaml:"glob"`
}

// OutputConfig names the artifacts written after a batch. Empty paths
// disable the corresponding artifact, except CSV which is always written.
type OutputConfig struct {
	CSV          string `yaml:"csv"`
	Markdown     string `yaml:"markdown"`
	AnnotatedDir string `yaml:"annotated_dir"`
	DebugDir     string `yaml:"debug_dir"`
}

// PreprocessConfig controls image cleanup before grid detection.
type PreprocessConfig struct {
	// FlattenLevel whitens every pixel at or above this gray level. 0
	// disables flattening.
	FlattenLevel uint8 `yaml:"flatten_level"`
}

// OCRConfig controls optional transcription of text fields.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`

	// Fields restricts transcription to these field names. Empty means
	// every text field.
	Fields []string `yaml:"fields"`
}

// Config holds every formcheck setting.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Workers    int              `yaml:"workers"`
	LogLevel   string           `yaml:"log_level"`
	Preprocess PreprocessConfig `yaml:"preprocess"`

	Edge       imaging.EdgeOptions   `yaml:"edge"`
	RowScan    detection.ScanOptions `yaml:"row_scan"`
	ColumnScan detection.ScanOptions `yaml:"column_scan"`

	Spacing    detection.SpacingAnalyzer `yaml:"spacing"`
	Choice     detection.ChoiceValidator `yaml:"choice"`
	Annotation imaging.AnnotationStyle   `yaml:"annotation"`
	OCR        OCRConfig                 `yaml:"ocr"`

	// LayoutFile replaces the built-in form layout when set.
	LayoutFile string `yaml:"layout_file"`

	// Layout is the resolved form layout.
	Layout form.Layout `yaml:"-"`
}

// Default returns the configuration for the standard form.
func Default() *Config {
	return &Config{
		Input:      InputConfig{Dir: DefaultInputDir, Glob: DefaultInputGlob},
		Output:     OutputConfig{CSV: DefaultCSVPath},
		Workers:    DefaultWorkers,
		LogLevel:   DefaultLogLevel,
		Edge:       imaging.DefaultEdgeOptions(),
		RowScan:    detection.DefaultRowScan(),
		ColumnScan: detection.DefaultColumnScan(),
		Spacing:    detection.DefaultSpacingAnalyzer(),
		Choice:     detection.DefaultChoiceValidator(),
		Annotation: imaging.DefaultAnnotationStyle(),
		OCR:        OCRConfig{Language: DefaultLanguage},
		Layout:     form.DefaultLayout(),
	}
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return ErrNoInput
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if err := validateScan("row_scan", c.RowScan); err != nil {
		return err
	}
	if err := validateScan("column_scan", c.ColumnScan); err != nil {
		return err
	}
	if c.Edge.Low < 0 || c.Edge.High < 0 || c.Edge.Low > c.Edge.High || c.Edge.BlurRadius < 0 {
		return fmt.Errorf("%w: low=%d high=%d blur=%g", ErrInvalidEdgeThresholds, c.Edge.Low, c.Edge.High, c.Edge.BlurRadius)
	}
	if c.Spacing.PairGap <= 0 || c.Spacing.Multiplier <= 0 {
		return fmt.Errorf("%w: pair_gap=%g multiplier=%g", ErrInvalidSpacing, c.Spacing.PairGap, c.Spacing.Multiplier)
	}
	if c.Choice.SeparatorMarks < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeparatorMarks, c.Choice.SeparatorMarks)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if err := c.Annotation.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAnnotation, err)
	}
	return c.Layout.Validate()
}

func validateScan(name string, s detection.ScanOptions) error {
	if s.MaxCandidates <= 0 || s.MinGap <= 0 {
		return fmt.Errorf("%w: %s max_candidates=%d min_gap=%d", ErrInvalidScan, name, s.MaxCandidates, s.MinGap)
	}
	return nil
}
