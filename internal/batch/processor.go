// Package batch renders captured scene views to WebP files on a worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"memory-tree/internal/activation"
	"memory-tree/internal/animate"
	"memory-tree/internal/postprocess"
	"memory-tree/internal/raster"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir   string
	RenderSize  int
	Supersample int
	Workers     int
	// Bloom disables the glow pass when false.
	Bloom bool
}

// Job is one captured frame of the simulation.
type Job struct {
	Index  int
	Time   float64
	Mode   animate.Mode
	Active activation.Selection
	View   raster.View
}

// Name returns the output file name of the job.
func (j Job) Name() string {
	return fmt.Sprintf("frame_%04d.webp", j.Index)
}

// Result holds the outcome of rendering one job.
type Result struct {
	Index   int
	Path    string
	Success bool
	Error   string
}

// Run renders all jobs using a worker pool. Results are in job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	res := Result{Index: job.Index}

	img := raster.RenderScene(job.View, cfg.RenderSize, cfg.Supersample)

	// Post-processing: supersample downsample, then glow
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	if cfg.Bloom {
		img = postprocess.Bloom(img, postprocess.BloomThreshold, postprocess.BloomIntensity)
	}

	// Save as WebP
	outPath := filepath.Join(cfg.OutputDir, job.Name())
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Path = outPath
	res.Success = true
	return res
}
