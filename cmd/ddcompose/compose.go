package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ha1tch/deluxepaste/canvas"
)

// Format selects what ddcompose writes.
type Format int

const (
	FormatDataURL Format = iota
	FormatPNG
	FormatJPEG
)

// ParseFormat maps a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "b64", "dataurl":
		return FormatDataURL, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// Point is a scripted click position.
type Point struct {
	X, Y float64
}

// clickList collects repeated -click x,y flags.
type clickList []Point

func (c *clickList) String() string {
	parts := make([]string, len(*c))
	for i, p := range *c {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (c *clickList) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("click %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	*c = append(*c, Point{X: x, Y: y})
	return nil
}

// Job describes one composition run.
type Job struct {
	Width   int
	AspectX int
	AspectY int
	Files   []string
	Clicks  []Point
	Format  Format
	Quality int
}

// Compose drops the job's files onto a fresh canvas, waits for them to
// load, replays the clicks and writes the result to w.
func Compose(ctx context.Context, job Job, w io.Writer, logger *slog.Logger) error {
	box := &canvas.Box{Rect: canvas.Rect{Width: float64(job.Width)}}
	h, err := canvas.New(box, job.AspectX, job.AspectY, canvas.WithLogger(logger))
	if err != nil {
		return err
	}
	h.AddEventListener("mousedown", canvas.MoveLastMatch(h))

	items := make([]canvas.Item, 0, len(job.Files))
	for _, f := range job.Files {
		items = append(items, canvas.NewFileItem(f))
	}
	h.HandleDrop(&canvas.DragEvent{DataTransfer: &canvas.DataTransfer{Items: items}})

	if err := h.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for images: %w", err)
	}
	for _, obj := range h.Objects() {
		if err := obj.Source.Err(); err != nil {
			logger.Warn("image skipped", "url", obj.Source.URL, "err", err)
		}
	}

	for _, p := range job.Clicks {
		ev := canvas.PointerEvent{X: p.X, Y: p.Y}
		h.HandlePointer(canvas.Down, ev)
		h.HandlePointer(canvas.Up, ev)
	}

	switch job.Format {
	case FormatPNG:
		if h.Surface().Width() == 0 {
			return canvas.ErrEmptySurface
		}
		return png.Encode(w, h.Surface().Image())
	case FormatJPEG:
		if h.Surface().Width() == 0 {
			return canvas.ErrEmptySurface
		}
		return jpeg.Encode(w, flatten(h.Surface().Image()), &jpeg.Options{Quality: job.Quality})
	default:
		_, err := io.WriteString(w, h.ToB64())
		return err
	}
}

// flatten composites img over a white background; JPEG has no alpha.
func flatten(img image.Image) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
