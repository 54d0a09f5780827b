// Package ocr transcribes handwritten form fields with Tesseract.
//
// Transcription is optional and never affects a verdict: it only adds the
// recognized text of a field to reports so a reviewer can compare the
// verdict with what was written.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-spa
//   - macOS: brew install tesseract tesseract-lang
//
// # Page Segmentation
//
// Field crops hold a single line of text, so the Transcriber runs Tesseract
// in single-line mode. Crops are handed over as in-memory PNG data; no
// temporary files are written.
//
// # Concurrency
//
// A gosseract client is not safe for concurrent use. The Transcriber creates
// one client per call, so a single Transcriber can be shared by the batch
// workers.
package ocr
