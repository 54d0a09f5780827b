package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/config"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/pipeline"
)

// debugLineColor is the color of detected boundaries in debug overlays.
const debugLineColor = "#FF0000"

// newArtifactWriter returns an inspection hook writing the optional image
// artifacts: the annotated first field of each form and the detected grid
// overlay. Output directories are created up front. Write failures are
// logged and never affect the batch.
func newArtifactWriter(cfg *config.Config, logger *slog.Logger) (func(pipeline.Inspection), error) {
	annotated := cfg.Output.AnnotatedDir
	debug := cfg.Output.DebugDir
	for _, dir := range []string{annotated, debug} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return func(ins pipeline.Inspection) {
		if annotated != "" && len(ins.Crops) > 0 {
			img := imaging.Annotate(ins.Crops[0].Image, ins.Record.Verdicts, cfg.Annotation)
			path := filepath.Join(annotated, fmt.Sprintf("formulario_%s_anotado.png", ins.ID))
			if err := imaging.SaveImage(img, path); err != nil {
				logger.Warn("failed to write annotated field", "form", ins.ID, "error", err)
			}
		}

		if debug != "" && ins.Image != nil {
			img := imaging.DrawBoundaries(ins.Image, ins.Rows, ins.Columns, debugLineColor)
			path := filepath.Join(debug, fmt.Sprintf("formulario_%s_grilla.png", ins.ID))
			if err := imaging.SaveImage(img, path); err != nil {
				logger.Warn("failed to write grid overlay", "form", ins.ID, "error", err)
			}
		}
	}, nil
}
