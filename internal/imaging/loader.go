package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrNotFound is returned by ImageCache.Load when the path does not exist.
var ErrNotFound = errors.New("file not found")

// ImageCache provides thread-safe caching of decoded images so that a file
// referenced twice in one run (for example when the banner and the logo are
// the same asset) is only read and decoded once.
//
// Cached images are already converted to opaque 8-bit RGB (stored as
// *image.NRGBA with alpha 255), the form every operation in this package
// reads from.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("src/assets/banner.png")
//	if errors.Is(err, imaging.ErrNotFound) {
//	    // ...
//	}
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]decodedImage
}

// decodedImage is a cache entry: the converted pixels and the format name
// reported by the decoder ("png", "jpeg", "gif", "bmp", "webp").
type decodedImage struct {
	img    *image.NRGBA
	format string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]decodedImage),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP and WebP. The decoded image is
// converted to RGB: bounds move to the origin, so pixel (0,0) is always the
// top-left corner, and alpha is discarded without touching the stored color
// channels, so a fully transparent pixel keeps its RGB values.
//
// The file handle is closed before Load returns, on success and on error.
//
// # Errors
//
//   - ErrNotFound (wrapped) if the path does not exist
//   - a wrapped open error if the file cannot be read or is a directory
//   - a wrapped decode error if the contents are not a supported image
func (c *ImageCache) Load(path string) (*image.NRGBA, error) {
	d, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

func (c *ImageCache) load(path string) (decodedImage, error) {
	c.mu.RLock()
	if d, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	d, err := decodeFile(path)
	if err != nil {
		return decodedImage{}, err
	}

	c.mu.Lock()
	c.images[path] = d
	c.mu.Unlock()

	return d, nil
}

func decodeFile(path string) (decodedImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return decodedImage{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return decodedImage{}, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return decodedImage{}, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return decodedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return decodedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	return decodedImage{img: toRGB(img), format: format}, nil
}

// toRGB copies img into an origin-based NRGBA and forces every pixel opaque.
// imaging.Clone keeps straight (non-premultiplied) alpha, so the color bytes
// are the stored RGB; with alpha at 255, resampling later weighs every pixel
// by its color alone.
func toRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]decodedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Format is the format name reported by the decoder: "png", "jpeg",
	// "gif", "bmp" or "webp".
	Format string

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64
}

// LoadImageInfo loads an image through the cache and returns its dimensions,
// decoded format and file size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	d, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := d.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        d.format,
		FileSizeBytes: stat.Size(),
	}, nil
}
