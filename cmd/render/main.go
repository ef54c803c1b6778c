package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"memory-tree/internal/batch"
	"memory-tree/internal/config"
	"memory-tree/internal/orbit"
	"memory-tree/internal/raster"
	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	ornaments := flag.Int("ornaments", 0, "Ornament count (default: 2700)")
	frames := flag.Int("frames", 0, "Photo frame count (default: 12)")
	seed := flag.Int64("seed", 0, "Layout seed (default: time-based)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 512)")
	duration := flag.Float64("duration", 0, "Simulated seconds to render (default: 6)")
	environment := flag.String("environment", "", "Optional backdrop image")
	offline := flag.Bool("offline", false, "Do not fetch default photos")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")

	scatterAt := flag.Float64("scatter-at", -1, "Seconds at which to toggle to the scattered layout (default: a third in)")
	activate := flag.Int("activate", -1, "Frame id to pull to the camera")
	activateAt := flag.Float64("activate-at", -1, "Seconds at which to activate (default: two thirds in)")
	closeAt := flag.Float64("close-at", -1, "Seconds at which to release the active frame")
	photo := flag.String("photo", "", "Local image to show on the activated frame")
	noBloom := flag.Bool("no-bloom", false, "Disable the glow pass")

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
		OutputDir:   *outputDir,
		Size:        *size,
		Workers:     *workers,
		Duration:    *duration,
		Environment: *environment,
		Offline:     *offline,
		LogLevel:    *logLevel,
	})
	cfg.SetupLogging()

	script := Script{
		ScatterAt:  *scatterAt,
		Activate:   *activate,
		ActivateAt: *activateAt,
		CloseAt:    *closeAt,
	}
	if script.ScatterAt < 0 {
		script.ScatterAt = cfg.Duration / 3
	}
	if script.ActivateAt < 0 {
		script.ActivateAt = cfg.Duration * 2 / 3
	}
	if *photo != "" {
		p, err := filepath.Abs(*photo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: photo path: %v\n", err)
			os.Exit(1)
		}
		script.Photo = p
	}

	// Build the scene
	var loader *texture.Loader
	if !cfg.Offline || script.Photo != "" {
		loader = texture.NewLoader(context.Background(), texture.NewHTTPFetcher(), texture.NewCache())
		defer loader.Close()
	}
	sc := scene.New(scene.Config{
		Ornaments: cfg.Ornaments,
		Frames:    cfg.Frames,
		Offline:   cfg.Offline,
	}, rand.New(rand.NewSource(cfg.Seed)), loader)
	if loader != nil {
		// Let default photos land before the first tick so every frame
		// renders with them.
		fmt.Println("Loading photos...")
		loader.Wait()
	}

	env := raster.LoadEnvironment(cfg.Environment)

	// Print summary
	steps := int(cfg.Duration * float64(cfg.FPS))
	fmt.Printf("Memory tree → WebP (seed %d)\n", cfg.Seed)
	fmt.Printf("Ornaments: %d, Frames: %d, Images: %d, Workers: %d\n", cfg.Ornaments, cfg.Frames, steps, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	// Simulate
	cam := orbit.New().Pose(cfg.RenderSize)
	jobs := Simulate(sc, loader, script, cam, steps, 1/float64(cfg.FPS))
	for i := range jobs {
		jobs[i].View.Environment = env
	}

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Bloom:       !*noBloom,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batch.Entries(jobs, results)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
