package canvas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidAspect is returned by New for non-positive aspect ratios.
var ErrInvalidAspect = errors.New("canvas: aspect ratio must be positive")

// Aspect is a width:height ratio.
type Aspect struct {
	X, Y int
}

// Handler owns a drawing surface, the placed images and the pointer
// listeners. All methods must be called from the goroutine that drains the
// Handler's queue.
type Handler struct {
	parent    Container
	aspect    Aspect
	surface   *Surface
	listeners [kindCount][]Listener
	objects   []*ImageObject

	queue  *Queue
	loader *Loader
	urls   *URLRegistry
	onDraw func(*Surface)
	logger *slog.Logger
}

// New creates a Handler, attaches its surface to parent and sizes it to the
// parent's width at the aspectX:aspectY ratio.
func New(parent Container, aspectX, aspectY int, opts ...Option) (*Handler, error) {
	if aspectX <= 0 || aspectY <= 0 {
		return nil, fmt.Errorf("%w: %d:%d", ErrInvalidAspect, aspectX, aspectY)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = newNopLogger()
	}
	urls := options.urls
	if urls == nil {
		urls = NewURLRegistry()
	}
	loader := options.loader
	if loader == nil {
		var err error
		loader, err = NewLoader(urls, options.cacheSize, logger)
		if err != nil {
			return nil, err
		}
	}
	queue := options.queue
	if queue == nil {
		queue = NewQueue(64)
	}

	h := &Handler{
		parent:  parent,
		aspect:  Aspect{X: aspectX, Y: aspectY},
		surface: NewSurface(0, 0),
		queue:   queue,
		loader:  loader,
		urls:    urls,
		onDraw:  options.onDraw,
		logger:  logger,
	}
	h.surface.SetInterpolation(options.interp)
	parent.Attach(h.surface)

	h.HandleResize()
	return h, nil
}

// Surface returns the drawing surface.
func (h *Handler) Surface() *Surface { return h.surface }

// Aspect returns the configured aspect ratio.
func (h *Handler) Aspect() Aspect { return h.aspect }

// Objects returns the placed images in paint order. The slice aliases the
// Handler's own list; mutate objects through it, then call Draw.
func (h *Handler) Objects() []*ImageObject { return h.objects }

// AddEventListener registers fn under a named kind ("move", "mousemove",
// "down", "mousedown", "up", "mouseup"). Unknown names are ignored.
func (h *Handler) AddEventListener(kind string, fn Listener) {
	k, ok := ParseKind(kind)
	if !ok {
		h.logger.Debug("ignoring listener for unknown kind", "kind", kind)
		return
	}
	h.On(k, fn)
}

// On registers fn for k. Listeners run in registration order.
func (h *Handler) On(k Kind, fn Listener) {
	if !k.Valid() || fn == nil {
		return
	}
	h.listeners[k] = append(h.listeners[k], fn)
}

// Listeners returns how many listeners are registered for k.
func (h *Handler) Listeners(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(h.listeners[k])
}

// HitTest returns every object containing (x, y), in insertion order.
func (h *Handler) HitTest(x, y float64) []*ImageObject {
	var hits []*ImageObject
	for _, obj := range h.objects {
		if obj.Contains(x, y) {
			hits = append(hits, obj)
		}
	}
	return hits
}

// HandlePointer hit-tests ev and hands the matches to every listener of k.
func (h *Handler) HandlePointer(k Kind, ev PointerEvent) {
	if !k.Valid() {
		return
	}
	hits := h.HitTest(ev.X, ev.Y)
	for _, fn := range h.listeners[k] {
		fn(hits, ev)
	}
}

// HandleResize resizes the surface to the parent's width and the matching
// height, then redraws.
func (h *Handler) HandleResize() {
	rect := h.parent.Bounds()
	width := int(rect.Width)
	height := width * h.aspect.Y / h.aspect.X
	h.surface.Resize(width, height)
	h.logger.Debug("surface resized", "width", width, "height", height)
	h.Draw()
}

// HandlePaste ingests the images of a paste. Events without clipboard data
// are left untouched.
func (h *Handler) HandlePaste(ev *ClipboardEvent) {
	if ev == nil || ev.ClipboardData == nil {
		return
	}
	ev.PreventDefault()

	items := ev.ClipboardData.Items
	if items == nil {
		return
	}
	h.HandleFiles(items)
}

// HandleDragOver accepts every drag so a drop can follow.
func (h *Handler) HandleDragOver(ev *DragEvent) {
	if ev == nil {
		return
	}
	ev.PreventDefault()
}

// HandleDrop ingests the images of a drop.
func (h *Handler) HandleDrop(ev *DragEvent) {
	if ev == nil {
		return
	}
	ev.PreventDefault()

	if ev.DataTransfer == nil || ev.DataTransfer.Items == nil {
		return
	}
	h.HandleFiles(ev.DataTransfer.Items)
}

// HandleFiles creates an image for every item whose media type mentions
// "image". Other items are skipped.
func (h *Handler) HandleFiles(items []Item) {
	for _, item := range items {
		if item == nil || !strings.Contains(item.Type(), "image") {
			continue
		}
		blob := item.GetAsFile()
		if blob == nil {
			h.logger.Debug("image item has no file", "type", item.Type())
			continue
		}
		url := h.urls.CreateObjectURL(blob)
		h.CreateImage(url)
	}
}

// CreateImage places a new, still empty image at the origin and starts
// loading url. When the load completes the image takes its natural size and
// the canvas is redrawn. A failed load leaves the object empty.
func (h *Handler) CreateImage(url string) *Source {
	src := &Source{URL: url}
	obj := &ImageObject{Source: src}
	h.objects = append(h.objects, obj)

	h.queue.Go(func() func() {
		img, err := h.loader.Load(url)
		if err != nil {
			return func() {
				src.fail(err)
				h.logger.Warn("image load failed", "url", url, "err", err)
			}
		}
		return func() {
			src.complete(img)
			w, ht := src.NaturalSize()
			obj.Width = float64(w)
			obj.Height = float64(ht)
			h.logger.Info("image loaded", "url", url, "width", w, "height", ht)
			h.Draw()
		}
	})
	return src
}

// Draw clears the surface and paints every object in order.
func (h *Handler) Draw() {
	h.surface.Clear()
	for _, obj := range h.objects {
		obj.Draw(h.surface)
	}
	if h.onDraw != nil {
		h.onDraw(h.surface)
	}
}

// ToB64 returns the rendered composition as a data URI.
func (h *Handler) ToB64() string {
	return h.surface.DataURL()
}

// Pump runs every load completion that is ready and returns how many ran.
func (h *Handler) Pump() int {
	return h.queue.Pump()
}

// Pending returns the number of loads that have not completed yet.
func (h *Handler) Pending() int {
	return h.queue.Pending()
}

// Wait blocks until every started load has completed or ctx is done.
func (h *Handler) Wait(ctx context.Context) error {
	return h.queue.Wait(ctx)
}
