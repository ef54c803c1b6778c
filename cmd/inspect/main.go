package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"memory-tree/internal/classify"
	"memory-tree/internal/config"
	"memory-tree/internal/layout"
	"memory-tree/internal/mathutil"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	ornaments := flag.Int("ornaments", 0, "Ornament count (default: 2700)")
	frames := flag.Int("frames", 0, "Photo frame count (default: 12)")
	seed := flag.Int64("seed", 0, "Layout seed (default: time-based)")
	bands := flag.Int("bands", 6, "Height bands in the density table")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Ornaments: *ornaments, Frames: *frames, Seed: *seed})

	orn := layout.Ornaments(rand.New(rand.NewSource(cfg.Seed)), cfg.Ornaments)
	batches := classify.Partition(orn)

	fmt.Printf("Seed: %d, Ornaments: %d\n", cfg.Seed, len(orn))
	fmt.Println("--- Batches ---")
	for k := classify.Key(0); k < classify.NumKeys; k++ {
		b := &batches[k]
		pct := 0.0
		if len(orn) > 0 {
			pct = float64(b.Len()) / float64(len(orn)) * 100
		}
		fmt.Printf("  %-16s %5d  (%4.1f%%)  %s/%s\n", k, b.Len(), pct, b.Group, b.Shape)
	}

	// Count and volume density per height band.
	fmt.Println("--- Density by height ---")
	n := max(*bands, 1)
	counts := make([]int, n)
	for _, o := range orn {
		h := o.Position[1] + layout.TreeHeight/2
		i := min(int(h/layout.TreeHeight*float64(n)), n-1)
		counts[max(i, 0)]++
	}
	for i, c := range counts {
		h0 := float64(i) / float64(n) * layout.TreeHeight
		h1 := float64(i+1) / float64(n) * layout.TreeHeight
		vol := coneSlice(h0, h1)
		fmt.Printf("  h %5.2f-%5.2f  %5d  %.1f per unit³\n", h0, h1, c, float64(c)/vol)
	}

	fmt.Println("--- Explode offsets ---")
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range orn {
		d := o.ExplodeOffset.Len()
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if len(orn) > 0 {
		fmt.Printf("  length %.2f .. %.2f\n", lo, hi)
	}

	fmt.Println("--- Frames ---")
	for _, f := range layout.Frames(cfg.Frames) {
		fwd := f.TreeRotation.Rotate(mathutil.Vec3{0, 0, 1})
		fmt.Printf("  #%-2d tree (%6.2f %6.2f %6.2f) r=%.2f  ring (%6.2f %6.2f %6.2f)  facing %+.2f\n",
			f.ID,
			f.TreePosition[0], f.TreePosition[1], f.TreePosition[2], f.TreePosition.AxisDist(),
			f.RingPosition[0], f.RingPosition[1], f.RingPosition[2],
			fwd.Dot(mathutil.Vec3{f.TreePosition[0], 0, f.TreePosition[2]}.Normalize()))
	}
}

// coneSlice returns the cone volume between heights h0 and h1 above the base.
func coneSlice(h0, h1 float64) float64 {
	r0 := layout.ConeRadius(h0)
	r1 := layout.ConeRadius(h1)
	return math.Pi * (h1 - h0) * (r0*r0 + r0*r1 + r1*r1) / 3
}
