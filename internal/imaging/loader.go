package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// MapCache provides thread-safe caching of loaded battle maps to avoid
// redundant disk reads and decodes.
//
// The cache stores decoded image.Image objects keyed by their file path, along
// with the format name reported by the decoder. Once a map is loaded,
// subsequent Load() calls for the same path return the cached copy without
// disk I/O.
//
// MapCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached maps remain in memory until explicitly removed via Evict() or
// Clear(). Battle maps are often several megapixels, so long-running processes
// handling many maps should evict entries they are done with.
type MapCache struct {
	mu   sync.RWMutex
	maps map[string]cachedMap
}

type cachedMap struct {
	img    image.Image
	format string
}

// NewMapCache creates and initializes a new empty map cache.
func NewMapCache() *MapCache {
	return &MapCache{
		maps: make(map[string]cachedMap),
	}
}

// Load retrieves a map from the cache or loads it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the map image. Supported formats
//     are PNG, JPEG, GIF, and WebP.
//
// Returns:
//   - image.Image: The decoded map. The concrete type depends on the image
//     format and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The map is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) will result in separate cache
// entries.
func (c *MapCache) Load(path string) (image.Image, error) {
	img, _, err := c.LoadWithFormat(path)
	return img, err
}

// LoadWithFormat is Load plus the format name reported by the decoder
// ("png", "jpeg", "gif", or "webp").
func (c *MapCache) LoadWithFormat(path string) (image.Image, string, error) {
	c.mu.RLock()
	if m, ok := c.maps[path]; ok {
		c.mu.RUnlock()
		return m.img, m.format, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode map: %w", err)
	}

	c.mu.Lock()
	c.maps[path] = cachedMap{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Clear removes all maps from the cache, freeing the associated memory.
func (c *MapCache) Clear() {
	c.mu.Lock()
	c.maps = make(map[string]cachedMap)
	c.mu.Unlock()
}

// Evict removes a specific map from the cache by its path.
//
// If the path is not in the cache, this method does nothing. After eviction,
// the next Load() call for this path will read from disk.
func (c *MapCache) Evict(path string) {
	c.mu.Lock()
	delete(c.maps, path)
	c.mu.Unlock()
}

// MapInfo contains metadata about a loaded map file.
type MapInfo struct {
	// Width is the map width in pixels.
	Width int `json:"width"`

	// Height is the map height in pixels.
	Height int `json:"height"`

	// Format is the image format reported by the decoder:
	// "png", "jpeg", "gif", or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the map has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the map file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadMapInfo loads a map and returns metadata about it.
//
// The map is loaded into the cache (if not already cached). The format comes
// from image.Decode rather than the file extension, so misnamed files are
// reported by their actual contents.
//
// Parameters:
//   - cache: The map cache to use for loading. Must not be nil.
//   - path: Path to the map file.
//
// Returns:
//   - *MapInfo: Metadata about the map.
//   - error: Non-nil if the map cannot be loaded or the file cannot be stat'd.
func LoadMapInfo(cache *MapCache, path string) (*MapInfo, error) {
	img, format, err := cache.LoadWithFormat(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &MapInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
