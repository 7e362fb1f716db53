// Command ddcompose places image files on a canvas without a window and
// prints the composition as a data URI (or writes PNG/JPEG).
//
//	ddcompose -width 800 -aspect 4:3 -click 120,80 a.png b.jpg > out.b64
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ha1tch/deluxepaste/config"
)

func main() {
	var clicks clickList
	width := flag.Int("width", 800, "canvas width in pixels")
	aspect := flag.String("aspect", "4:3", "canvas aspect ratio W:H")
	out := flag.String("o", "", "output file (stdout if empty)")
	format := flag.String("format", "b64", "output format: b64, png or jpeg")
	quality := flag.Int("quality", 95, "JPEG quality")
	timeout := flag.Duration("timeout", 30*time.Second, "time allowed for images to load")
	level := flag.String("log-level", "warn", "log level")
	flag.Var(&clicks, "click", "click at x,y after loading (repeatable)")
	flag.Parse()

	lvl, err := config.ParseLevel(*level)
	if err != nil {
		fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ax, ay, err := config.ParseAspect(*aspect)
	if err != nil {
		fatal(err)
	}
	f, err := ParseFormat(*format)
	if err != nil {
		fatal(err)
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ddcompose [flags] image...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			fatal(err)
		}
		defer file.Close()
		w = file
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	job := Job{
		Width:   *width,
		AspectX: ax,
		AspectY: ay,
		Files:   flag.Args(),
		Clicks:  clicks,
		Format:  f,
		Quality: *quality,
	}
	if err := Compose(ctx, job, w, logger); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ddcompose: %v\n", err)
	os.Exit(1)
}
