package canvas

// ImageObject is a placed image: a rectangle at (X, Y) of size
// Width x Height painted from Source. Width and Height stay zero until the
// source has finished loading.
type ImageObject struct {
	Source *Source

	X, Y          float64
	Width, Height float64
}

// Contains reports whether (px, py) lies inside the object, edges included.
// A zero-size object contains only its corner point.
func (o *ImageObject) Contains(px, py float64) bool {
	return o.X <= px && px <= o.X+o.Width &&
		o.Y <= py && py <= o.Y+o.Height
}

// Draw paints the source scaled to the object's rectangle. Objects whose
// source has not loaded, or that have no area, draw nothing.
func (o *ImageObject) Draw(s *Surface) {
	if o.Source == nil || !o.Source.Loaded() {
		return
	}
	if o.Width <= 0 || o.Height <= 0 {
		return
	}
	s.DrawImage(o.Source.Image(), o.X, o.Y, o.Width, o.Height)
}
