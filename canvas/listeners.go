package canvas

// MoveLastMatch returns a listener that moves the last matched object so its
// top-left corner sits at the pointer, then redraws h. Register it for Down
// to reposition images by clicking.
func MoveLastMatch(h *Handler) Listener {
	return func(objects []*ImageObject, ev PointerEvent) {
		if len(objects) == 0 {
			return
		}
		obj := objects[len(objects)-1]
		obj.X = ev.X
		obj.Y = ev.Y
		h.Draw()
	}
}
