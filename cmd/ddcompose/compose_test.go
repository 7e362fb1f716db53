package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ha1tch/deluxepaste/canvas"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestComposeDataURL(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 10, 10, color.NRGBA{R: 255, A: 255})

	var out bytes.Buffer
	job := Job{Width: 40, AspectX: 4, AspectY: 3, Files: []string{a}}
	if err := Compose(testContext(t), job, &out, quietLogger()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.HasPrefix(out.String(), "data:image/png;base64,") {
		t.Errorf("output = %.40q, want PNG data URI", out.String())
	}
}

func TestComposeClicksMoveImage(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 10, 10, color.NRGBA{G: 255, A: 255})

	var out bytes.Buffer
	job := Job{
		Width: 40, AspectX: 4, AspectY: 3,
		Files:  []string{a},
		Clicks: []Point{{X: 5, Y: 5}},
		Format: FormatPNG,
	}
	if err := Compose(testContext(t), job, &out, quietLogger()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("bounds = %v, want 40x30", b)
	}
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("pixel (2,2) still covered after move")
	}
	if _, g, _, _ := img.At(10, 10).RGBA(); g>>8 < 200 {
		t.Errorf("pixel (10,10) not green after move")
	}
}

func TestComposeJPEGFlattensOnWhite(t *testing.T) {
	var out bytes.Buffer
	job := Job{Width: 16, AspectX: 1, AspectY: 1, Format: FormatJPEG, Quality: 90}
	if err := Compose(testContext(t), job, &out, quietLogger()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img, err := jpeg.Decode(&out)
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	if r, g, b, _ := img.At(8, 8).RGBA(); r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("empty canvas JPEG pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestComposeSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	job := Job{Width: 8, AspectX: 1, AspectY: 1, Files: []string{bad, notes}}
	if err := Compose(testContext(t), job, &out, quietLogger()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
}

func TestComposeEmptyCanvas(t *testing.T) {
	var out bytes.Buffer
	job := Job{Width: 0, AspectX: 4, AspectY: 3}
	if err := Compose(testContext(t), job, &out, quietLogger()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.String() != canvas.EmptyDataURL {
		t.Errorf("output = %q, want %q", out.String(), canvas.EmptyDataURL)
	}

	job.Format = FormatPNG
	if err := Compose(testContext(t), job, &out, quietLogger()); err != canvas.ErrEmptySurface {
		t.Errorf("PNG of empty canvas error = %v, want ErrEmptySurface", err)
	}
}

func TestClickList(t *testing.T) {
	var c clickList
	for _, s := range []string{"1,2", " 3.5 , 4 "} {
		if err := c.Set(s); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
	}
	if len(c) != 2 || c[1] != (Point{X: 3.5, Y: 4}) {
		t.Errorf("clicks = %v", c)
	}
	for _, s := range []string{"1", "a,2", "1,b"} {
		if err := c.Set(s); err == nil {
			t.Errorf("Set(%q) accepted", s)
		}
	}
	if got := c.String(); got != "1,2 3.5,4" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatDataURL, "b64": FormatDataURL, "PNG": FormatPNG, "jpg": FormatJPEG}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat(gif) accepted")
	}
}
