// Package classify partitions generated ornaments into render batches.
//
// A batch is a fixed-capacity group of instances drawn with one material and
// one mesh. Batch capacity is decided here, once, because instanced draw
// buffers cannot grow after creation.
package classify

import (
	"image/color"

	"memory-tree/internal/layout"
)

// Key identifies a render batch.
type Key uint8

const (
	AccentRed Key = iota
	AccentGreen
	Glow
	ParticleSphere
	ParticleCube

	NumKeys
)

var keyNames = [NumKeys]string{"accent-red", "accent-green", "glow", "particle-sphere", "particle-cube"}

func (k Key) String() string {
	if k < NumKeys {
		return keyNames[k]
	}
	return "unknown"
}

// Material is the per-batch surface shared by every instance.
type Material struct {
	Emissive          color.RGBA
	EmissiveIntensity float64
	Roughness         float64
	Metalness         float64
}

// materials mirror the emissive LED look: accents glow strongly in their own
// color, glows are soft gold, particles are metallic gold.
var materials = [NumKeys]Material{
	AccentRed:      {Emissive: color.RGBA{0x8B, 0x00, 0x00, 255}, EmissiveIntensity: 2.0, Roughness: 1},
	AccentGreen:    {Emissive: color.RGBA{0x00, 0x64, 0x00, 255}, EmissiveIntensity: 2.0, Roughness: 1},
	Glow:           {Emissive: color.RGBA{0xFF, 0xD7, 0x00, 255}, EmissiveIntensity: 0.6, Roughness: 1},
	ParticleSphere: {Emissive: color.RGBA{0xFF, 0xD7, 0x00, 255}, EmissiveIntensity: 0.8, Roughness: 0.4, Metalness: 1},
	ParticleCube:   {Emissive: color.RGBA{0xFF, 0xD7, 0x00, 255}, EmissiveIntensity: 0.8, Roughness: 0.4, Metalness: 1},
}

// Batch is one render group. Members keep their generation order.
type Batch struct {
	Key      Key
	Group    layout.Group
	Shape    layout.Shape
	Material Material
	Members  []layout.Ornament
	// Source holds each member's index in the generated slice.
	Source []int
}

// Len returns the fixed instance capacity of the batch.
func (b *Batch) Len() int { return len(b.Members) }

// Batches holds every batch indexed by Key. Empty batches are kept so callers
// can address them uniformly.
type Batches [NumKeys]Batch

// Len returns the total number of instances across all batches.
func (bs *Batches) Len() int {
	n := 0
	for i := range bs {
		n += bs[i].Len()
	}
	return n
}

// KeyOf returns the batch an ornament belongs to.
func KeyOf(o layout.Ornament) Key {
	switch o.Group {
	case layout.Accent:
		if isGreen(o.Color) {
			return AccentGreen
		}
		return AccentRed
	case layout.Glow:
		return Glow
	default:
		if o.Shape == layout.Cube {
			return ParticleCube
		}
		return ParticleSphere
	}
}

// greenLEDs are the colors that take the green accent material. Every other
// accent color, including the darker palette green #1A5220, renders red.
var greenLEDs = [...]color.RGBA{
	{0x00, 0x64, 0x00, 255}, // #006400
	{0x22, 0x8B, 0x22, 255}, // #228B22
}

// isGreen reports whether an accent color is one of the green LEDs.
func isGreen(c color.RGBA) bool {
	for _, g := range greenLEDs {
		if c == g {
			return true
		}
	}
	return false
}

// Partition splits ornaments into batches in a single pass. Every ornament
// lands in exactly one batch and relative order is preserved.
func Partition(ornaments []layout.Ornament) Batches {
	var bs Batches
	for k := Key(0); k < NumKeys; k++ {
		b := &bs[k]
		b.Key = k
		b.Material = materials[k]
		switch k {
		case AccentRed, AccentGreen:
			b.Group, b.Shape = layout.Accent, layout.Sphere
		case Glow:
			b.Group, b.Shape = layout.Glow, layout.Sphere
		case ParticleSphere:
			b.Group, b.Shape = layout.Particle, layout.Sphere
		case ParticleCube:
			b.Group, b.Shape = layout.Particle, layout.Cube
		}
	}

	for i, o := range ornaments {
		b := &bs[KeyOf(o)]
		b.Members = append(b.Members, o)
		b.Source = append(b.Source, i)
	}
	return bs
}
