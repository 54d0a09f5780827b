// Package config loads formcheck settings.
//
// Settings are resolved in layers, each overriding the previous one:
//
//  1. Built-in defaults (Default)
//  2. A YAML file
//  3. Variables from a .env file
//  4. FORMCHECK_* variables from the process environment
//
// The process environment wins over the .env file, which is read without
// modifying the environment. The result is validated before it is returned.
//
// # Environment Variables
//
//	FORMCHECK_INPUT_DIR        directory holding the scans
//	FORMCHECK_INPUT_GLOB       file pattern within the directory
//	FORMCHECK_OUTPUT_CSV       CSV verdict table path
//	FORMCHECK_OUTPUT_MARKDOWN  Markdown summary path (empty disables it)
//	FORMCHECK_ANNOTATED_DIR    directory for annotated crops (empty disables them)
//	FORMCHECK_DEBUG_DIR        directory for grid overlays (empty disables them)
//	FORMCHECK_WORKERS          number of forms processed in parallel
//	FORMCHECK_LOG_LEVEL        debug, info, warn or error
//	FORMCHECK_INK_CUTOFF       gray level at or below which a pixel is ink
//	FORMCHECK_OCR_ENABLED      true to transcribe text fields
//	FORMCHECK_OCR_LANGUAGE     Tesseract language code
//	FORMCHECK_LAYOUT_FILE      YAML form layout replacing the built-in one
package config
