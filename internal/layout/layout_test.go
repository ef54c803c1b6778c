package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-tree/internal/mathutil"
)

func TestOrnamentsZeroCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, Ornaments(rng, 0))
	assert.Empty(t, Ornaments(rng, -3))
	assert.NotNil(t, Ornaments(rng, 0))
}

func TestOrnamentsSeededAreReproducible(t *testing.T) {
	a := Ornaments(rand.New(rand.NewSource(42)), 200)
	b := Ornaments(rand.New(rand.NewSource(42)), 200)
	assert.Equal(t, a, b)

	c := Ornaments(rand.New(rand.NewSource(43)), 200)
	assert.NotEqual(t, a, c)
}

func TestOrnamentsInsideCone(t *testing.T) {
	orns := Ornaments(rand.New(rand.NewSource(7)), 5000)
	for i, o := range orns {
		h := o.Position[1] + TreeHeight/2
		require.GreaterOrEqual(t, h, 0.0, "ornament %d below base", i)
		require.LessOrEqual(t, h, TreeHeight, "ornament %d above apex", i)
		require.LessOrEqual(t, o.Position.AxisDist(), ConeRadius(h)+1e-9, "ornament %d outside cone", i)
		require.Greater(t, o.Scale, 0.0)
	}
}

func TestOrnamentGroupProperties(t *testing.T) {
	orns := Ornaments(rand.New(rand.NewSource(9)), 20000)
	counts := map[Group]int{}
	for _, o := range orns {
		counts[o.Group]++
		switch o.Group {
		case Accent:
			assert.Contains(t, AccentPalette, o.Color)
			assert.Equal(t, Sphere, o.Shape)
			assert.InDelta(t, 0.10, o.Scale, 0.02+1e-9)
		case Glow:
			assert.Contains(t, GlowPalette, o.Color)
			assert.Equal(t, Sphere, o.Shape)
			assert.InDelta(t, 0.10, o.Scale, 0.02+1e-9)
		case Particle:
			assert.Contains(t, ParticlePalette, o.Color)
			assert.InDelta(t, 0.06, o.Scale, 0.02+1e-9)
		}
		assert.Zero(t, o.Rotation[2])
		assert.GreaterOrEqual(t, o.Rotation[0], 0.0)
		assert.Less(t, o.Rotation[0], math.Pi)
	}

	n := float64(len(orns))
	assert.InDelta(t, 0.15, float64(counts[Accent])/n, 0.02)
	assert.InDelta(t, 0.25, float64(counts[Glow])/n, 0.02)
	assert.InDelta(t, 0.60, float64(counts[Particle])/n, 0.02)
}

func TestParticleShapeSplit(t *testing.T) {
	orns := Ornaments(rand.New(rand.NewSource(11)), 20000)
	var particles, cubes int
	for _, o := range orns {
		if o.Group != Particle {
			continue
		}
		particles++
		if o.Shape == Cube {
			cubes++
		}
	}
	require.NotZero(t, particles)
	assert.InDelta(t, 0.3, float64(cubes)/float64(particles), 0.03)
}

// Radial density in each horizontal disk must be uniform per unit area:
// the share of samples with normalized radius in [a, b) is b²-a².
func TestOrnamentsArealUniformity(t *testing.T) {
	const n = 60000
	const bins = 5
	orns := Ornaments(rand.New(rand.NewSource(3)), n)

	var hist [bins]int
	total := 0
	for _, o := range orns {
		h := o.Position[1] + TreeHeight/2
		// Fixed height band in the lower half of the tree.
		if h < 2 || h > 5 {
			continue
		}
		rho := o.Position.AxisDist() / ConeRadius(h)
		b := int(rho * bins)
		if b >= bins {
			b = bins - 1
		}
		hist[b]++
		total++
	}
	require.Greater(t, total, 5000)

	for b := 0; b < bins; b++ {
		lo := float64(b) / bins
		hi := float64(b+1) / bins
		want := hi*hi - lo*lo
		got := float64(hist[b]) / float64(total)
		assert.InDelta(t, want, got, 0.015, "bin %d", b)
	}
}

func TestOrnamentsHeightBiasedTowardBase(t *testing.T) {
	orns := Ornaments(rand.New(rand.NewSource(5)), 20000)
	var lower int
	for _, o := range orns {
		if o.Position[1] < 0 {
			lower++
		}
	}
	// P(1-sqrt(U) < 0.5) = 0.75
	assert.InDelta(t, 0.75, float64(lower)/float64(len(orns)), 0.02)
}

func TestExplodeMovesAwayFromAxis(t *testing.T) {
	orns := Ornaments(rand.New(rand.NewSource(13)), 10000)
	for i, o := range orns {
		base := o.Position.AxisDist()
		exploded := o.Position.Add(o.ExplodeOffset).AxisDist()
		require.Greater(t, exploded, base, "ornament %d", i)

		d := o.ExplodeOffset.Len()
		require.GreaterOrEqual(t, d, ExplodeBase-1e-9)
		require.LessOrEqual(t, d, ExplodeBase+ExplodeSpread+1e-9)
	}
}

func TestExplodeDirectionOnAxis(t *testing.T) {
	dir := explodeDirection(mathutil.Vec3{0, 0, 0}, math.Pi/3)
	assert.InDelta(t, 1, dir.Len(), 1e-9)
	assert.Greater(t, dir.AxisDist(), 0.0)
}

func TestFramesZeroCount(t *testing.T) {
	assert.Empty(t, Frames(0))
}

func TestFramesRingSpacing(t *testing.T) {
	for _, count := range []int{1, 3, 12, 40} {
		frames := Frames(count)
		require.Len(t, frames, count)

		step := 2 * math.Pi / float64(count)
		for i, f := range frames {
			assert.Equal(t, i, f.ID)
			assert.Zero(t, f.RingPosition[1])
			assert.InDelta(t, RingRadius, f.RingPosition.AxisDist(), 1e-9)

			if i == 0 {
				continue
			}
			prev := math.Atan2(frames[i-1].RingPosition[2], frames[i-1].RingPosition[0])
			cur := math.Atan2(f.RingPosition[2], f.RingPosition[0])
			diff := math.Mod(cur-prev+4*math.Pi, 2*math.Pi)
			assert.InDelta(t, step, diff, 1e-9, "count %d index %d", count, i)
		}
	}
}

func TestFramesScenarioLayout(t *testing.T) {
	frames := Frames(DefaultFrameCount)
	require.Len(t, frames, 12)
	assert.Equal(t, 11, frames[len(frames)-1].ID)

	a0 := math.Atan2(frames[0].RingPosition[2], frames[0].RingPosition[0])
	assert.InDelta(t, RingFront, a0, 1e-9)
	assert.InDelta(t, RingFront, RingAngle(0, 12), 1e-12)
}

func TestFramesFaceOutward(t *testing.T) {
	for _, f := range Frames(DefaultFrameCount) {
		for _, pose := range []struct {
			pos mathutil.Vec3
			rot mathutil.Quat
		}{
			{f.TreePosition, f.TreeRotation},
			{f.RingPosition, f.RingRotation},
		} {
			want := mathutil.Vec3{pose.pos[0], 0, pose.pos[2]}.Normalize()
			got := pose.rot.Rotate(mathutil.Vec3{0, 0, 1})
			assert.InDelta(t, 0, got.Sub(want).Len(), 1e-9, "frame %d", f.ID)

			// Frames stay upright.
			upAxis := pose.rot.Rotate(mathutil.Vec3{0, 1, 0})
			assert.InDelta(t, 1, upAxis[1], 1e-9)
		}
	}
}

func TestFramesTreeSpiralSitsOutsideVolume(t *testing.T) {
	frames := Frames(DefaultFrameCount)
	for i, f := range frames {
		h := f.TreePosition[1] + TreeHeight/2
		assert.InDelta(t, ConeRadius(h)+0.5, f.TreePosition.AxisDist(), 1e-9)
		assert.Greater(t, h, 0.0)
		assert.Less(t, h, TreeHeight)
		if i > 0 {
			assert.Greater(t, f.TreePosition[1], frames[i-1].TreePosition[1])
		}
	}
}

func TestFramePose(t *testing.T) {
	f := Frames(4)[1]
	p, q := f.Pose(true)
	assert.Equal(t, f.RingPosition, p)
	assert.Equal(t, f.RingRotation, q)
	p, q = f.Pose(false)
	assert.Equal(t, f.TreePosition, p)
	assert.Equal(t, f.TreeRotation, q)
}

func TestStarOutline(t *testing.T) {
	pts := StarOutline(StarPoints, StarOuterRadius, StarInnerRadius)
	require.Len(t, pts, 12)
	assert.InDelta(t, 0, pts[0][0], 1e-12)
	assert.InDelta(t, StarOuterRadius, pts[0][1], 1e-12)
	for i, p := range pts {
		r := math.Hypot(p[0], p[1])
		if i%2 == 0 {
			assert.InDelta(t, StarOuterRadius, r, 1e-12)
		} else {
			assert.InDelta(t, StarInnerRadius, r, 1e-12)
		}
	}
	assert.Nil(t, StarOutline(0, 1, 1))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FFA500")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0xA5), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, uint8(255), c.A)

	_, err = ParseHex("#FFF")
	assert.Error(t, err)
	_, err = ParseHex("#GGGGGG")
	assert.Error(t, err)
}
