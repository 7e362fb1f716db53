package canvas

import "github.com/gogpu/gg"

// Source is a drawable image handle. Its pixels and natural size are only
// available once the asynchronous load has completed.
type Source struct {
	URL string

	img    *gg.ImageBuf
	loaded bool
	err    error
}

// Loaded reports whether the image finished loading successfully.
func (s *Source) Loaded() bool { return s.loaded }

// Err returns the load failure, if any.
func (s *Source) Err() error { return s.err }

// Image returns the decoded pixels, or nil before load completion.
func (s *Source) Image() *gg.ImageBuf { return s.img }

// NaturalSize returns the intrinsic dimensions of the loaded image.
func (s *Source) NaturalSize() (width, height int) {
	if s.img == nil {
		return 0, 0
	}
	return s.img.Bounds()
}

func (s *Source) complete(img *gg.ImageBuf) {
	s.img = img
	s.loaded = true
}

func (s *Source) fail(err error) {
	s.err = err
}
