//go:build js && wasm

// Command ddweb runs the paste canvas in a browser page. Build with
//
//	GOOS=js GOARCH=wasm go build -o ddweb.wasm ./cmd/ddweb
//
// and serve it next to index.html and wasm_exec.js.
package main

import (
	"errors"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/ha1tch/deluxepaste/canvas"
)

// page is the document body acting as the canvas parent. Attaching the
// surface creates the visible <canvas> element that mirrors it.
type page struct {
	body    js.Value
	element js.Value
	ctx     js.Value
}

func (p *page) Bounds() canvas.Rect {
	r := p.body.Call("getBoundingClientRect")
	return canvas.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (p *page) Attach(*canvas.Surface) {
	doc := js.Global().Get("document")
	p.element = doc.Call("createElement", "canvas")
	p.ctx = p.element.Call("getContext", "2d")
	p.body.Call("appendChild", p.element)
}

// blit copies the surface pixels into the visible canvas.
func (p *page) blit(s *canvas.Surface) {
	w, h := s.Width(), s.Height()
	p.element.Set("width", w)
	p.element.Set("height", h)
	if w == 0 || h == 0 {
		return
	}
	img := s.Image()
	data := p.ctx.Call("createImageData", w, h)
	js.CopyBytesToJS(data.Get("data"), img.Pix)
	p.ctx.Call("putImageData", data, 0, 0)
}

// toPointer converts a mouse event to surface coordinates.
func (p *page) toPointer(e js.Value) canvas.PointerEvent {
	r := p.element.Call("getBoundingClientRect")
	return canvas.PointerEvent{
		X:      e.Get("clientX").Float() - r.Get("left").Float(),
		Y:      e.Get("clientY").Float() - r.Get("top").Float(),
		Button: e.Get("button").Int(),
	}
}

// jsBlob wraps a File captured while its event was live.
type jsBlob struct {
	file js.Value
}

func (b jsBlob) Type() string { return b.file.Get("type").String() }

// Bytes waits for file.arrayBuffer(). It must not run on the event loop.
func (b jsBlob) Bytes() ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	then := js.FuncOf(func(this js.Value, args []js.Value) any {
		arr := js.Global().Get("Uint8Array").New(args[0])
		buf := make([]byte, arr.Get("length").Int())
		js.CopyBytesToGo(buf, arr)
		done <- result{data: buf}
		return nil
	})
	defer then.Release()
	catch := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- result{err: errors.New(args[0].Call("toString").String())}
		return nil
	})
	defer catch.Release()

	b.file.Call("arrayBuffer").Call("then", then).Call("catch", catch)
	r := <-done
	return r.data, r.err
}

// jsItem is a DataTransferItem snapshot.
type jsItem struct {
	mediaType string
	file      canvas.Blob
}

func (it jsItem) Type() string           { return it.mediaType }
func (it jsItem) GetAsFile() canvas.Blob { return it.file }

// toTransfer snapshots a DataTransfer. A missing item list maps to nil Items.
func toTransfer(dt js.Value) *canvas.DataTransfer {
	if dt.IsNull() || dt.IsUndefined() {
		return nil
	}
	items := dt.Get("items")
	if items.IsNull() || items.IsUndefined() {
		return &canvas.DataTransfer{}
	}
	n := items.Get("length").Int()
	out := make([]canvas.Item, 0, n)
	for i := 0; i < n; i++ {
		item := items.Index(i)
		it := jsItem{mediaType: item.Get("type").String()}
		if item.Get("kind").String() == "file" {
			if f := item.Call("getAsFile"); !f.IsNull() {
				it.file = jsBlob{file: f}
			}
		}
		out = append(out, it)
	}
	return &canvas.DataTransfer{Items: out}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	doc := js.Global().Get("document")
	win := js.Global()
	p := &page{body: doc.Get("body")}

	h, err := canvas.New(p, 4, 3,
		canvas.WithLogger(logger),
		canvas.WithDrawHook(func(s *canvas.Surface) { p.blit(s) }),
	)
	if err != nil {
		logger.Error("create canvas", "err", err)
		return
	}
	h.AddEventListener("mousedown", canvas.MoveLastMatch(h))

	for _, k := range canvas.Kinds() {
		kind := k
		win.Call("addEventListener", "mouse"+kind.String(), js.FuncOf(func(this js.Value, args []js.Value) any {
			h.HandlePointer(kind, p.toPointer(args[0]))
			return nil
		}))
	}

	win.Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		h.HandleResize()
		return nil
	}))

	doc.Call("addEventListener", "paste", js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		ev := &canvas.ClipboardEvent{ClipboardData: toTransfer(e.Get("clipboardData"))}
		h.HandlePaste(ev)
		if ev.DefaultPrevented() {
			e.Call("preventDefault")
		}
		return nil
	}))

	doc.Call("addEventListener", "dragover", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := &canvas.DragEvent{}
		h.HandleDragOver(ev)
		if ev.DefaultPrevented() {
			args[0].Call("preventDefault")
		}
		return nil
	}))

	doc.Call("addEventListener", "drop", js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		ev := &canvas.DragEvent{DataTransfer: toTransfer(e.Get("dataTransfer"))}
		h.HandleDrop(ev)
		if ev.DefaultPrevented() {
			e.Call("preventDefault")
		}
		return nil
	}))

	// Load completions are applied from animation frames so that every
	// Handler call happens inside a JS callback.
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		h.Pump()
		win.Call("requestAnimationFrame", frame)
		return nil
	})
	win.Call("requestAnimationFrame", frame)

	win.Set("toB64", js.FuncOf(func(this js.Value, args []js.Value) any {
		return h.ToB64()
	}))

	select {}
}
