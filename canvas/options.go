package canvas

import (
	"log/slog"

	"github.com/gogpu/gg"
)

// Option configures a Handler during creation.
type Option func(*handlerOptions)

type handlerOptions struct {
	logger    *slog.Logger
	queue     *Queue
	loader    *Loader
	urls      *URLRegistry
	interp    gg.InterpolationMode
	cacheSize int
	onDraw    func(*Surface)
}

func defaultOptions() handlerOptions {
	return handlerOptions{
		interp:    gg.InterpBilinear,
		cacheSize: DefaultCacheSize,
	}
}

// WithLogger sets the logger. By default a Handler logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(o *handlerOptions) {
		o.logger = l
	}
}

// WithQueue makes the Handler post load completions to q instead of a
// private queue. Useful when a front end multiplexes several sources of
// asynchronous work onto one loop.
func WithQueue(q *Queue) Option {
	return func(o *handlerOptions) {
		o.queue = q
	}
}

// WithLoader injects the image loader. The loader's URL registry should be
// the one passed with WithURLRegistry.
func WithLoader(l *Loader) Option {
	return func(o *handlerOptions) {
		o.loader = l
	}
}

// WithURLRegistry sets the registry used to mint object URLs for ingested
// blobs.
func WithURLRegistry(r *URLRegistry) Option {
	return func(o *handlerOptions) {
		o.urls = r
	}
}

// WithInterpolation selects the sampling used when images are scaled.
func WithInterpolation(mode gg.InterpolationMode) Option {
	return func(o *handlerOptions) {
		o.interp = mode
	}
}

// WithCacheSize sets the decoded image cache size of the default loader.
func WithCacheSize(n int) Option {
	return func(o *handlerOptions) {
		o.cacheSize = n
	}
}

// WithDrawHook registers fn to run after every redraw, e.g. to upload the
// surface to the screen.
func WithDrawHook(fn func(*Surface)) Option {
	return func(o *handlerOptions) {
		o.onDraw = fn
	}
}
