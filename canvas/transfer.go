package canvas

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Container is the layout parent a Handler attaches its surface to.
type Container interface {
	// Bounds returns the current layout box of the container.
	Bounds() Rect
	// Attach adopts the surface as a child.
	Attach(s *Surface)
}

// Box is a minimal Container with settable bounds.
type Box struct {
	Rect    Rect
	Surface *Surface
}

// Bounds implements Container.
func (b *Box) Bounds() Rect { return b.Rect }

// Attach implements Container.
func (b *Box) Attach(s *Surface) { b.Surface = s }

// PointerEvent carries a pointer position in surface coordinates.
type PointerEvent struct {
	X, Y   float64
	Button int
}

// Listener receives the objects under the pointer, in insertion order,
// together with the raw event.
type Listener func(objects []*ImageObject, ev PointerEvent)

// Blob is a file-like payload handed over by a clipboard or drop item.
// Bytes may block and is only called off the event goroutine.
type Blob interface {
	Type() string
	Bytes() ([]byte, error)
}

// Item is one entry of a clipboard or drag data list.
type Item interface {
	// Type is the declared media type, e.g. "image/png".
	Type() string
	// GetAsFile returns the item payload, or nil if the item carries none.
	GetAsFile() Blob
}

// DataTransfer is the item list attached to a paste or drop. A nil Items
// slice means the platform supplied no item data.
type DataTransfer struct {
	Items []Item
}

// ClipboardEvent is a paste notification.
type ClipboardEvent struct {
	ClipboardData *DataTransfer

	defaultPrevented bool
}

// PreventDefault marks the event as consumed by the canvas.
func (e *ClipboardEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *ClipboardEvent) DefaultPrevented() bool { return e.defaultPrevented }

// DragEvent is a drag-over or drop notification.
type DragEvent struct {
	DataTransfer *DataTransfer

	defaultPrevented bool
}

// PreventDefault marks the event as consumed by the canvas.
func (e *DragEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *DragEvent) DefaultPrevented() bool { return e.defaultPrevented }

// MemBlob is a Blob held in memory.
type MemBlob struct {
	MediaType string
	Data      []byte
}

func (b *MemBlob) Type() string           { return b.MediaType }
func (b *MemBlob) Bytes() ([]byte, error) { return b.Data, nil }

// FileBlob is a Blob backed by a file on disk, read on demand.
type FileBlob struct {
	Path      string
	MediaType string
}

func (b *FileBlob) Type() string { return b.MediaType }

func (b *FileBlob) Bytes() ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.Path, err)
	}
	return data, nil
}

// FileItem is a transfer item whose payload is a Blob.
type FileItem struct {
	File Blob
}

func (it FileItem) Type() string    { return it.File.Type() }
func (it FileItem) GetAsFile() Blob { return it.File }

// StringItem is a transfer item carrying text only; it has no file payload.
type StringItem struct {
	MediaType string
	Text      string
}

func (it StringItem) Type() string    { return it.MediaType }
func (it StringItem) GetAsFile() Blob { return nil }

// NewMemItem wraps raw bytes as a file item of the given media type.
func NewMemItem(mediaType string, data []byte) Item {
	return FileItem{File: &MemBlob{MediaType: mediaType, Data: data}}
}

// NewFileItem describes a file on disk as a transfer item. The media type is
// taken from the extension, falling back to sniffing the first bytes.
func NewFileItem(path string) Item {
	return FileItem{File: &FileBlob{Path: path, MediaType: MediaTypeOf(path)}}
}

// MediaTypeOf guesses the media type of a file from its extension, then from
// its content. Unknown files report "application/octet-stream".
func MediaTypeOf(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return stripParams(t)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return stripParams(mt.String())
}

func stripParams(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// ItemsFromText turns clipboard text into transfer items. A data URI becomes
// an in-memory item of its declared type; lines naming existing files (plain
// paths or file:// URIs, as file managers copy them) become file items.
// Anything else is a single text/plain item. Empty text yields nil.
func ItemsFromText(text string) []Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "data:") {
		if mediaType, payload, err := ParseDataURL(text); err == nil {
			return []Item{NewMemItem(mediaType, payload)}
		}
	}

	var files []Item
	for _, line := range strings.Split(text, "\n") {
		path := strings.TrimPrefix(strings.TrimSpace(line), "file://")
		if path == "" {
			continue
		}
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			files = append(files, NewFileItem(path))
		}
	}
	if len(files) > 0 {
		return files
	}
	return []Item{StringItem{MediaType: "text/plain", Text: text}}
}
