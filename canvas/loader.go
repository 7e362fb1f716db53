package canvas

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gogpu/gg"
	lru "github.com/hashicorp/golang-lru/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultCacheSize is the number of decoded images a Loader keeps.
const DefaultCacheSize = 64

// ErrUnsupportedURL is returned for source URLs the loader cannot resolve.
var ErrUnsupportedURL = errors.New("canvas: unsupported source URL")

// Loader resolves source URLs to decoded images. It accepts object URLs
// minted by its URLRegistry, data URIs, and local file paths. Load is safe
// for concurrent use.
type Loader struct {
	urls   *URLRegistry
	cache  *lru.Cache[[sha256.Size]byte, *gg.ImageBuf]
	logger *slog.Logger
}

// NewLoader creates a loader resolving blob URLs through urls and caching
// up to cacheSize decoded images.
func NewLoader(urls *URLRegistry, cacheSize int, logger *slog.Logger) (*Loader, error) {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[[sha256.Size]byte, *gg.ImageBuf](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	if logger == nil {
		logger = newNopLogger()
	}
	return &Loader{urls: urls, cache: cache, logger: logger}, nil
}

// Fetch returns the raw bytes behind url.
func (l *Loader) Fetch(url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, BlobScheme):
		if l.urls == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBlob, url)
		}
		blob, err := l.urls.Lookup(url)
		if err != nil {
			return nil, err
		}
		return blob.Bytes()
	case strings.HasPrefix(url, "data:"):
		_, payload, err := ParseDataURL(url)
		return payload, err
	case strings.HasPrefix(url, "file://"):
		return os.ReadFile(strings.TrimPrefix(url, "file://"))
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
	default:
		return os.ReadFile(url)
	}
}

// Load fetches and decodes the image behind url. Identical payloads are
// decoded once.
func (l *Loader) Load(url string) (*gg.ImageBuf, error) {
	data, err := l.Fetch(url)
	if err != nil {
		return nil, err
	}
	return l.Decode(data)
}

// Decode turns encoded image bytes into an image buffer, applying EXIF
// orientation. PNG, JPEG, GIF, BMP, TIFF and WebP are recognised.
func (l *Loader) Decode(data []byte) (*gg.ImageBuf, error) {
	key := sha256.Sum256(data)
	if img, ok := l.cache.Get(key); ok {
		l.logger.Debug("image cache hit", "size", humanize.Bytes(uint64(len(data))))
		return img, nil
	}

	decoded, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	img := gg.ImageBufFromImage(decoded)
	l.cache.Add(key, img)

	w, h := img.Bounds()
	l.logger.Debug("image decoded",
		"size", humanize.Bytes(uint64(len(data))),
		"width", w,
		"height", h)
	return img, nil
}

// Cached returns the number of decoded images held by the cache.
func (l *Loader) Cached() int { return l.cache.Len() }
