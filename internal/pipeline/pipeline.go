package pipeline

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/config"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/detection"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
)

// TextReader transcribes the text in a field crop.
type TextReader interface {
	ReadText(img image.Image) (string, error)
}

// Inspection holds the intermediate results of processing one form.
type Inspection struct {
	ID string

	// Image is the grayscale form after preprocessing.
	Image *image.Gray

	Rows    detection.Boundaries
	Columns detection.Boundaries
	Crops   []form.FieldCrop
	Record  form.Record
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTextReader enables transcription of text fields.
func WithTextReader(r TextReader) Option {
	return func(p *Pipeline) { p.reader = r }
}

// WithInspectionHook registers fn to receive the inspection of every form
// processed by RunBatch, including failed ones. With more than one worker fn
// is called concurrently.
func WithInspectionHook(fn func(Inspection)) Option {
	return func(p *Pipeline) { p.hook = fn }
}

// Pipeline validates forms with a fixed configuration. It is safe for
// concurrent use.
type Pipeline struct {
	cfg      *config.Config
	layout   form.Layout
	detector detection.Detector
	engine   form.RuleEngine
	logger   *slog.Logger
	reader   TextReader
	hook     func(Inspection)
	ocr      map[string]bool
}

// New returns a Pipeline for cfg. cfg is expected to be validated.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		layout:   cfg.Layout,
		detector: detection.Detector{Edge: cfg.Edge, Rules: cfg.Layout.BoundaryRules},
		engine:   form.RuleEngine{Spacing: cfg.Spacing, Choice: cfg.Choice},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if len(cfg.OCR.Fields) > 0 {
		p.ocr = make(map[string]bool, len(cfg.OCR.Fields))
		for _, f := range cfg.OCR.Fields {
			p.ocr[f] = true
		}
	}
	return p
}

// Layout returns the form layout the pipeline validates against.
func (p *Pipeline) Layout() form.Layout {
	return p.layout
}

// Process validates one form image.
//
// On failure the returned record has every field marked as failed and its
// Err set to the returned error. Grid failures match form.ErrGridDetection;
// crop failures match form.ErrDegenerateField or form.ErrFieldCountMismatch.
func (p *Pipeline) Process(id string, img image.Image) (form.Record, error) {
	ins, err := p.Inspect(id, img)
	return ins.Record, err
}

// Inspect is Process returning every intermediate result. Fields of the
// inspection that were not reached before a failure are left empty.
func (p *Pipeline) Inspect(id string, img image.Image) (Inspection, error) {
	gray := imaging.ToGray(img)
	if p.cfg.Preprocess.FlattenLevel > 0 {
		gray = imaging.FlattenBackground(gray, p.cfg.Preprocess.FlattenLevel)
	}

	ins := Inspection{ID: id, Image: gray}
	fail := func(err error) (Inspection, error) {
		ins.Record = form.FailedRecord(id, p.layout.FieldNames(), err)
		return ins, err
	}

	ins.Rows, ins.Columns = p.detector.DetectGrid(gray, p.cfg.RowScan, p.cfg.ColumnScan)
	p.logger.Debug("grid detected", "form", id, "rows", []int(ins.Rows), "columns", []int(ins.Columns))

	if len(ins.Rows) < p.layout.MinRowBoundaries {
		return fail(&form.GridError{FormID: id, Axis: detection.Rows, Found: len(ins.Rows), Required: p.layout.MinRowBoundaries})
	}
	if len(ins.Columns) < p.layout.MinColumnBoundaries {
		return fail(&form.GridError{FormID: id, Axis: detection.Columns, Found: len(ins.Columns), Required: p.layout.MinColumnBoundaries})
	}

	crops, err := form.CropFields(gray, ins.Rows, ins.Columns, p.layout)
	if err != nil {
		return fail(fmt.Errorf("form %s: %w", id, err))
	}
	ins.Crops = crops

	verdicts, results, err := p.engine.EvaluateAll(p.layout, crops)
	if err != nil {
		return fail(fmt.Errorf("form %s: %w", id, err))
	}

	for _, r := range results {
		if r.Warning != nil {
			p.logger.Warn("field measurement suspect", "form", id, "field", r.Field, "error", r.Warning)
		}
		p.logger.Debug("field evaluated", "form", id, "field", r.Field,
			"chars", r.Chars, "space", r.Space, "marks", r.Marks, "passed", r.Passed)
	}

	ins.Record = form.Record{
		ID:       id,
		Verdicts: verdicts,
		Results:  results,
		Text:     p.transcribe(id, crops),
	}
	return ins, nil
}

// transcribe reads the text fields selected for OCR. Failures are logged and
// leave the field out of the result.
func (p *Pipeline) transcribe(id string, crops []form.FieldCrop) map[string]string {
	if p.reader == nil {
		return nil
	}

	assigned, err := p.layout.AssignFields(crops)
	if err != nil {
		return nil
	}

	text := make(map[string]string)
	for _, a := range assigned {
		if a.Field.Rule.Kind != form.KindText {
			continue
		}
		if p.ocr != nil && !p.ocr[a.Field.Name] {
			continue
		}
		s, err := p.reader.ReadText(a.Crop.Image)
		if err != nil {
			p.logger.Warn("transcription failed", "form", id, "field", a.Field.Name, "error", err)
			continue
		}
		text[a.Field.Name] = s
	}
	return text
}
