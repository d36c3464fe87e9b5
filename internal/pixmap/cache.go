package pixmap

import (
	"os"
	"sync"
)

// Cache provides thread-safe caching of decoded pixmaps keyed by file path.
//
// Images returned by Load are shared with the cache. Callers that need to
// modify one should Clone it first; the Sobel engine never modifies its input
// so the cached copy can be passed to it directly.
//
// Different spellings of the same file (relative vs absolute) are cached
// separately.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*Image),
	}
}

// Load returns the cached image for path or reads it from disk.
func (c *Cache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict drops the image cached for path, if any. Call it after overwriting a
// file so the next Load sees the new content.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Info describes a pixmap file on disk.
type Info struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// MaxValue is the declared maximum sample value.
	MaxValue int `json:"max_value"`

	// Encoding is "ascii" or "binary".
	Encoding string `json:"encoding"`

	// SampleBytes is 1 or 2; only meaningful for the binary encoding.
	SampleBytes int `json:"sample_bytes"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads path into the cache and reports its metadata.
//
// The encoding is taken from the file's own header rather than its extension.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	h, err := DecodeHeader(f)
	if err != nil {
		return nil, withSource(err, path)
	}
	stat, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	return &Info{
		Width:         img.Width,
		Height:        img.Height,
		MaxValue:      img.MaxValue,
		Encoding:      h.Encoding.String(),
		SampleBytes:   int(img.SampleWidth()),
		FileSizeBytes: stat.Size(),
	}, nil
}
