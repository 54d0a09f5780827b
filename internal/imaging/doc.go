// Package imaging provides the pixel-level operations used to read scanned forms.
//
// This package implements the low-level image manipulation the form pipeline
// is built on: grayscale loading, Canny edge maps, ink binarization, background
// flattening, bounded cropping, and the two drawing helpers used for feedback
// (PASS/FAIL annotation and the grid debug overlay). All operations work with
// standard Go image.Image types and use a coordinate system where (0,0) is at
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// Every image returned by this package has its origin at (0,0), regardless of
// the bounds of the input.
//
// # Grayscale Convention
//
// Scans are handled as *image.Gray. Ink is dark and paper is light, so
// Binarize marks a pixel as foreground (255) when its gray value is at or
// below the cutoff, mirroring an inverse binary threshold.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and never modify their input, so they can be called
// concurrently on the same source image.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Crop regions outside image bounds
//   - Empty crop regions (zero width or height)
//   - File I/O and decoding errors during image loading
//   - Encoding errors during image output
package imaging
