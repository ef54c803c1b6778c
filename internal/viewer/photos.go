package viewer

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"memory-tree/internal/scene"
	"memory-tree/internal/texture"
)

// photoTextures mirrors the scene's photo slots on the GPU. Uploads happen on
// the render thread whenever a slot's version moves.
type photoTextures struct {
	slots       []photoTexture
	placeholder rl.Texture2D
}

type photoTexture struct {
	version uint64
	tex     rl.Texture2D
	loaded  bool
}

func newPhotoTextures(n int) *photoTextures {
	return &photoTextures{
		slots:       make([]photoTexture, n),
		placeholder: upload(texture.Solid(texture.Placeholder, 4)),
	}
}

// sync re-uploads every slot whose image changed since the last frame.
func (p *photoTextures) sync(sc *scene.Scene) {
	for id := range p.slots {
		slot := sc.PhotoSlot(id)
		pt := &p.slots[id]
		if slot.Version == pt.version {
			continue
		}
		pt.version = slot.Version
		if pt.loaded {
			rl.UnloadTexture(pt.tex)
			pt.loaded = false
		}
		if slot.Image != nil {
			pt.tex = upload(slot.Image)
			pt.loaded = rl.IsTextureValid(pt.tex)
		}
	}
}

// texture returns the photo for frame id, or the placeholder.
func (p *photoTextures) texture(id int) rl.Texture2D {
	if id >= 0 && id < len(p.slots) && p.slots[id].loaded {
		return p.slots[id].tex
	}
	return p.placeholder
}

func (p *photoTextures) unload() {
	for i := range p.slots {
		if p.slots[i].loaded {
			rl.UnloadTexture(p.slots[i].tex)
		}
	}
	rl.UnloadTexture(p.placeholder)
}

func upload(img image.Image) rl.Texture2D {
	ri := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(ri)
	rl.UnloadImage(ri)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}
