package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"memory-tree/internal/config"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
	"memory-tree/internal/viewer"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	ornaments := flag.Int("ornaments", 0, "Ornament count (default: 2700)")
	frames := flag.Int("frames", 0, "Photo frame count (default: 12)")
	seed := flag.Int64("seed", 0, "Layout seed (default: time-based)")
	environment := flag.String("environment", "", "Equirectangular sky panorama (default: assets/skybox)")
	offline := flag.Bool("offline", false, "Do not fetch default photos")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Ornaments:   *ornaments,
		Frames:      *frames,
		Seed:        *seed,
		Environment: *environment,
		Offline:     *offline,
		LogLevel:    *logLevel,
	})
	cfg.SetupLogging()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintf(os.Stderr, "Error: window size %dx%d\n", *width, *height)
		os.Exit(1)
	}

	// The loader stays up even offline: dropped photos go through it.
	loader := texture.NewLoader(context.Background(), texture.NewHTTPFetcher(), texture.NewCache())
	defer loader.Close()

	sc := scene.New(scene.Config{
		Ornaments: cfg.Ornaments,
		Frames:    cfg.Frames,
		Offline:   cfg.Offline,
	}, rand.New(rand.NewSource(cfg.Seed)), loader)

	fmt.Printf("Memory tree viewer (seed %d)\n", cfg.Seed)
	fmt.Printf("Ornaments: %d, Frames: %d\n", cfg.Ornaments, cfg.Frames)
	fmt.Println("Space: scatter/gather  Click: open a frame  Esc: close  Drop an image: change photo")

	viewer.Run(sc, viewer.Config{
		Width:       *width,
		Height:      *height,
		Title:       "Memory Tree",
		Environment: cfg.Environment,
	})
}
