package canvas

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// BlobScheme prefixes every object URL handed out by a URLRegistry.
const BlobScheme = "blob:"

// ErrUnknownBlob is returned when an object URL was never created or was
// created by a different registry.
var ErrUnknownBlob = errors.New("canvas: unknown object URL")

// URLRegistry mints object URLs for blobs. URLs are never revoked; the
// registry holds every blob it has seen for its whole lifetime.
type URLRegistry struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewURLRegistry returns an empty registry.
func NewURLRegistry() *URLRegistry {
	return &URLRegistry{blobs: make(map[string]Blob)}
}

// CreateObjectURL registers b and returns a unique "blob:" URL for it.
func (r *URLRegistry) CreateObjectURL(b Blob) string {
	url := BlobScheme + uuid.NewString()
	r.mu.Lock()
	r.blobs[url] = b
	r.mu.Unlock()
	return url
}

// Lookup returns the blob behind an object URL.
func (r *URLRegistry) Lookup(url string) (Blob, error) {
	if !strings.HasPrefix(url, BlobScheme) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlob, url)
	}
	r.mu.RLock()
	b, ok := r.blobs[url]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlob, url)
	}
	return b, nil
}

// Len returns the number of registered blobs.
func (r *URLRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
