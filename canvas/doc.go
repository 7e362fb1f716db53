// Package canvas implements a paste-and-drop image canvas.
//
// A Handler owns a drawing Surface and an ordered list of ImageObjects.
// Front ends feed it pointer, resize, clipboard and drop events; the
// Handler ingests image items, hit-tests pointer events against the
// placed images, and redraws the whole composition after every change.
// The rendered composition can be exported as a PNG data URI with ToB64.
//
// # Event model
//
// All Handler state is owned by a single goroutine. Image decoding runs
// in the background, but completions are posted to a Queue and only take
// effect when the owner drains it with Pump or Wait:
//
//	h, _ := canvas.New(parent, 4, 3)
//	h.AddEventListener("mousedown", func(objs []*canvas.ImageObject, ev canvas.PointerEvent) {
//	    // ...
//	})
//	for running {
//	    h.Pump()
//	    // deliver input
//	}
//
// # Coordinate System
//
// Origin (0,0) is the top-left of the surface; X grows right and Y grows
// down. Pointer events are expected in surface coordinates.
package canvas
