package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FORMCHECK_"

// Load resolves the configuration from defaults, the YAML file at path, the
// dotenv file envFile and the process environment, then validates it.
//
// An empty path skips the YAML layer; a path that does not exist fails with
// ErrConfigNotFound. A missing envFile is ignored, and an empty envFile
// means DefaultEnvFile.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if cfg.LayoutFile != "" {
		layout, err := form.LoadLayout(cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		cfg.Layout = layout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns DefaultConfigFile if it exists in the working
// directory and the empty string otherwise.
func FindConfigFile() string {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	str("INPUT_DIR", &c.Input.Dir)
	str("INPUT_GLOB", &c.Input.Glob)
	str("OUTPUT_CSV", &c.Output.CSV)
	str("OUTPUT_MARKDOWN", &c.Output.Markdown)
	str("ANNOTATED_DIR", &c.Output.AnnotatedDir)
	str("DEBUG_DIR", &c.Output.DebugDir)
	str("OCR_LANGUAGE", &c.OCR.Language)
	str("LAYOUT_FILE", &c.LayoutFile)
	if v, ok := lookup(logging.EnvLevel); ok {
		c.LogLevel = v
	}

	if v, ok := lookup(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidWorkers, EnvPrefix, "WORKERS", v)
		}
		c.Workers = n
	}

	if v, ok := lookup(EnvPrefix + "INK_CUTOFF"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 8)
		if err != nil {
			return fmt.Errorf("invalid %sINK_CUTOFF %q: %w", EnvPrefix, v, err)
		}
		c.Spacing.Cutoff = uint8(n)
		c.Choice.Cutoff = uint8(n)
	}

	if v, ok := lookup(EnvPrefix + "OCR_ENABLED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sOCR_ENABLED %q: %w", EnvPrefix, v, err)
		}
		c.OCR.Enabled = b
	}

	return nil
}
