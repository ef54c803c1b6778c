package classify

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-tree/internal/layout"
)

func TestPartitionComplete(t *testing.T) {
	for _, n := range []int{0, 1, 17, 2700} {
		orns := layout.Ornaments(rand.New(rand.NewSource(int64(n))), n)
		bs := Partition(orns)

		require.Equal(t, n, bs.Len())

		seen := make([]bool, n)
		for k := Key(0); k < NumKeys; k++ {
			b := bs[k]
			assert.Equal(t, k, b.Key)
			require.Len(t, b.Source, len(b.Members))

			for j, src := range b.Source {
				require.False(t, seen[src], "ornament %d in two batches", src)
				seen[src] = true
				assert.Equal(t, orns[src], b.Members[j])
				assert.Equal(t, k, KeyOf(b.Members[j]))
				if j > 0 {
					assert.Greater(t, src, b.Source[j-1], "order not preserved in %s", k)
				}
			}
		}
		for i, ok := range seen {
			assert.True(t, ok, "ornament %d missing", i)
		}
	}
}

func TestPartitionGroupsAndShapes(t *testing.T) {
	bs := Partition(layout.Ornaments(rand.New(rand.NewSource(1)), 3000))
	for k := Key(0); k < NumKeys; k++ {
		b := bs[k]
		assert.NotZero(t, b.Len(), "batch %s empty", k)
		for _, o := range b.Members {
			assert.Equal(t, b.Group, o.Group)
			assert.Equal(t, b.Shape, o.Shape)
		}
	}
}

func TestKeyOfAccentColors(t *testing.T) {
	tests := []struct {
		hex  string
		want Key
	}{
		{"#8B0000", AccentRed},
		{"#700000", AccentRed},
		{"#006400", AccentGreen},
		{"#228B22", AccentGreen},
		{"#1A5220", AccentRed},
		{"#00FF00", AccentRed},
	}
	for _, tt := range tests {
		c, err := layout.ParseHex(tt.hex)
		require.NoError(t, err)
		assert.Equal(t, tt.want, KeyOf(layout.Ornament{Group: layout.Accent, Color: c}), tt.hex)
	}

	// Only the accent group is split by color.
	green, err := layout.ParseHex("#006400")
	require.NoError(t, err)
	assert.Equal(t, Glow, KeyOf(layout.Ornament{Group: layout.Glow, Color: green}))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "glow", Glow.String())
	assert.Equal(t, "particle-cube", ParticleCube.String())
	assert.Equal(t, "unknown", NumKeys.String())
}

func TestPartitionEmpty(t *testing.T) {
	bs := Partition(nil)
	assert.Zero(t, bs.Len())
	assert.Equal(t, Glow, bs[Glow].Key)
	assert.Equal(t, layout.Cube, bs[ParticleCube].Shape)
}
