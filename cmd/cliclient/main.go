// cliclient renders a Mandelbrot frame at a given depth and saves it as a PNG file.
// Without -addr the frame is rendered locally; with -addr it is fetched from a running server.

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	mandel "github.com/marben/mandelview"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run renders or fetches the frame and saves it as a PNG file.
// Returns an error if any step fails.
func run() error {
	cfg := mandel.DefaultConfig()
	cfg.InitialDepth = 50
	cfg.RegisterFlags(flag.CommandLine)
	addr := flag.String("addr", "", "websocket url of a running server, e.g. ws://localhost:8080/ws")
	filename := flag.String("out", "mandel.png", "output file")
	timeout := flag.Duration("timeout", time.Minute, "give up after this long")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		fb  *mandel.FrameBuffer
		err error
	)
	if *addr == "" {
		// Step 1: Render locally using our CPU
		fb, err = renderLocal(cfg)
	} else {
		// Step 1: Ask the server to render the requested depth
		log.Printf("Connecting to Mandelbrot server on %s...", *addr)
		fb, err = fetchFrame(ctx, *addr, cfg.InitialDepth)
	}
	if err != nil {
		return err
	}

	// Step 2: Save the rendered image to a PNG file
	log.Printf("Saving rendered image to %q...", *filename)
	if err := savePNG(*filename, fb); err != nil {
		return err
	}

	log.Printf("Fully rendered image saved to %q", *filename)
	return nil
}

func renderLocal(cfg mandel.Config) (*mandel.FrameBuffer, error) {
	r, err := mandel.NewRasterizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("new rasterizer: %w", err)
	}

	start := time.Now()
	fb := r.RenderFrame(cfg.InitialDepth)
	log.Printf("Rendered %dx%d at depth %d in %s", cfg.Width, cfg.Height, cfg.InitialDepth, time.Since(start))
	return fb, nil
}

func savePNG(filename string, fb *mandel.FrameBuffer) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.RGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
