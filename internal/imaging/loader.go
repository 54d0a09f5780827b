package imaging

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ImageCache provides thread-safe caching of loaded scans to avoid redundant disk reads.
//
// The cache stores decoded grayscale images keyed by their file path. Once a scan
// is loaded, subsequent Load() calls for the same path return the cached copy
// without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/formulario_01.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use img...
//	cache.Evict("/path/to/formulario_01.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*image.Gray
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*image.Gray),
	}
}

// Load retrieves a scan from the cache or loads it from disk if not cached.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
// Cached images are shared between callers and must be treated as read-only.
func (c *ImageCache) Load(path string) (*image.Gray, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := LoadGray(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*image.Gray)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// LoadGray reads an image file and returns it as a grayscale scan.
//
// PNG, JPEG, GIF, BMP and TIFF files are supported. Color images are converted
// with the standard luminance weights.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
func LoadGray(path string) (*image.Gray, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return ToGray(img), nil
}

// SaveImage writes img to path, choosing the encoder from the file extension.
// An existing file at path is overwritten.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
