package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/config"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/logging"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/ocr"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/pipeline"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/report"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/server"
	"github.com/google/uuid"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	command := "run"
	configPath := config.FindConfigFile()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("formcheck %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "run", "serve":
			command = os.Args[1]
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath, config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formcheck: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout is for the MCP protocol
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formcheck: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	logger.Debug("formcheck starting", "version", Version, "built", BuildTime, "commit", GitCommit, "config", configPath)

	var opts []pipeline.Option
	if cfg.OCR.Enabled {
		opts = append(opts, pipeline.WithTextReader(ocr.NewTranscriber(cfg.OCR.Language)))
	}

	if command == "serve" {
		p := pipeline.New(cfg, append(opts, pipeline.WithLogger(logger))...)
		srv := server.New(p, cfg.Annotation, logger)
		if err := srv.Run(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger, opts); err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
}

// run validates every form in the input directory and writes the reports.
func run(cfg *config.Config, logger *slog.Logger, opts []pipeline.Option) error {
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sources, err := pipeline.DiscoverSources(cfg.Input.Dir, cfg.Input.Glob)
	if err != nil {
		return err
	}

	hook, err := newArtifactWriter(cfg, logger)
	if err != nil {
		return err
	}
	opts = append(opts, pipeline.WithLogger(logger), pipeline.WithInspectionHook(hook))
	p := pipeline.New(cfg, opts...)

	table, batchErr := p.RunBatch(ctx, form.NewTable(p.Layout().FieldNames()), sources)

	// Whatever completed is still reported when the batch is interrupted.
	if err := report.WriteCSVFile(cfg.Output.CSV, table); err != nil {
		return err
	}
	logger.Info("csv written", "path", cfg.Output.CSV, "forms", table.Len())

	if cfg.Output.Markdown != "" {
		if err := writeMarkdown(cfg, table, runID); err != nil {
			return err
		}
		logger.Info("markdown written", "path", cfg.Output.Markdown)
	}

	return batchErr
}

func writeMarkdown(cfg *config.Config, table form.Table, runID string) error {
	f, err := os.Create(cfg.Output.Markdown)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", cfg.Output.Markdown, err)
	}

	sum := report.Summary{
		RunID:     runID,
		Generated: time.Now(),
		Source:    filepath.Join(cfg.Input.Dir, cfg.Input.Glob),
	}
	if err := report.WriteMarkdown(f, table, sum); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", cfg.Output.Markdown, err)
	}
	return f.Close()
}

func printUsage() {
	fmt.Println("formcheck - validate scanned enrollment forms")
	fmt.Println()
	fmt.Println("Usage: formcheck [command] [config.yaml]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run              Validate every form in the input directory (default)")
	fmt.Println("  serve            Run as an MCP server over stdin/stdout")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Configuration is read from formcheck.yaml in the working directory")
	fmt.Println("unless a path is given, then from .env and the environment.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FORMCHECK_INPUT_DIR, FORMCHECK_INPUT_GLOB     Where to find the scans")
	fmt.Println("  FORMCHECK_OUTPUT_CSV, FORMCHECK_OUTPUT_MARKDOWN")
	fmt.Println("  FORMCHECK_ANNOTATED_DIR, FORMCHECK_DEBUG_DIR")
	fmt.Println("  FORMCHECK_WORKERS=4                          Validate forms in parallel")
	fmt.Println("  FORMCHECK_OCR_ENABLED=true                   Transcribe text fields")
	fmt.Println("  FORMCHECK_LOG_LEVEL=debug                    Enable debug logging")
}
