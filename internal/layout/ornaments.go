package layout

import (
	"image/color"
	"math"
	"math/rand"

	"memory-tree/internal/mathutil"
)

// Tree volume.
const (
	TreeHeight = 12.0
	TreeRadius = 5.0
)

// Explode distance band: base + U(0, spread).
const (
	ExplodeBase   = 15.0
	ExplodeSpread = 20.0
)

// Cumulative group thresholds for the single uniform draw.
const (
	accentThreshold = 0.15
	glowThreshold   = 0.40
	// Particles above this secondary draw are cubes.
	particleCubeThreshold = 0.7
)

// minAxisDist keeps explode directions well defined for samples that land
// on the vertical axis.
const minAxisDist = 1e-6

var (
	AccentPalette   = hexPalette("#8B0000", "#700000", "#006400", "#1A5220")
	GlowPalette     = hexPalette("#FFFFE0", "#FFFACD", "#FFF8DC", "#FFD700", "#F0E68C")
	ParticlePalette = hexPalette("#FFD700", "#FFA500", "#FFC107")
)

// ConeRadius returns the tree radius at height h above the base (0..TreeHeight).
// The taper is linear down to a point at the apex.
func ConeRadius(h float64) float64 {
	return (TreeHeight - h) / TreeHeight * TreeRadius
}

// Ornaments generates count ornaments filling the cone volume.
//
// Heights are drawn as 1-sqrt(U) so density falls toward the apex where the
// cone narrows; radii are drawn as sqrt(U)·R(h) for uniform areal density
// within each horizontal disk.
func Ornaments(rng *rand.Rand, count int) []Ornament {
	if count < 0 {
		count = 0
	}
	out := make([]Ornament, 0, count)

	for i := 0; i < count; i++ {
		h := (1 - math.Sqrt(rng.Float64())) * TreeHeight
		radius := ConeRadius(h)

		angle := rng.Float64() * math.Pi * 2
		r := math.Sqrt(rng.Float64()) * radius

		x := math.Cos(angle) * r
		z := math.Sin(angle) * r
		y := h - TreeHeight/2

		pos := mathutil.Vec3{x, y, z}
		offset := explodeDirection(pos, angle).Scale(ExplodeBase + rng.Float64()*ExplodeSpread)

		o := Ornament{
			Position:      pos,
			ExplodeOffset: offset,
		}

		switch g := rng.Float64(); {
		case g < accentThreshold:
			o.Group = Accent
			o.Color = pick(rng, AccentPalette)
			o.Scale = rng.Float64()*0.04 + 0.08
			o.Shape = Sphere
		case g < glowThreshold:
			o.Group = Glow
			o.Color = pick(rng, GlowPalette)
			o.Scale = rng.Float64()*0.04 + 0.08
			o.Shape = Sphere
		default:
			o.Group = Particle
			o.Color = pick(rng, ParticlePalette)
			o.Scale = rng.Float64()*0.04 + 0.04
			o.Shape = Sphere
			if rng.Float64() > particleCubeThreshold {
				o.Shape = Cube
			}
		}

		o.Rotation = mathutil.Vec3{rng.Float64() * math.Pi, rng.Float64() * math.Pi, 0}
		out = append(out, o)
	}
	return out
}

// explodeDirection is the unit vector from the origin through pos. A sample
// sitting on the vertical axis has no horizontal component, so it borrows the
// sampled angle to keep its exploded position off the axis.
func explodeDirection(pos mathutil.Vec3, angle float64) mathutil.Vec3 {
	if pos.AxisDist() < minAxisDist {
		pos[0] = math.Cos(angle) * minAxisDist
		pos[2] = math.Sin(angle) * minAxisDist
	}
	return pos.Normalize()
}

func pick(rng *rand.Rand, palette []color.RGBA) color.RGBA {
	return palette[rng.Intn(len(palette))]
}
