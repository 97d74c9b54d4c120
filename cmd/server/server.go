package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/gops/agent"
	mandel "github.com/marben/mandelview"
)

// main is the entry point for the Mandelbrot depth server.
// Every websocket client gets its own renderer session; the browser only displays frames.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	cfg := mandel.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	addr := flag.String("addr", ":8080", "http listen address")
	static := flag.String("static", "./static", "directory with index.html and main.wasm")
	gops := flag.Bool("gops", false, "start the gops diagnostics agent")
	verbose := flag.Bool("v", false, "log every rendered frame")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("gops agent: %w", err)
		}
		defer agent.Close()
	}

	// httpServer provides index.html, main.wasm along with websocket endpoint
	httpServer := webServer(*addr, *static, cfg)

	log.Printf("mb server waiting for websocket connections (%dx%d, S=%d, %s)", cfg.Width, cfg.Height, cfg.Supersample, cfg.Mode)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
