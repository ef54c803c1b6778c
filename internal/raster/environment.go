package raster

import (
	"image"
	"log/slog"
	"os"

	xdraw "golang.org/x/image/draw"

	"memory-tree/internal/texture"
)

// LoadEnvironment reads an optional backdrop image. An empty path returns
// nil; any failure is logged and also returns nil, so rendering continues
// over the flat background.
func LoadEnvironment(path string) *image.NRGBA {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("raster: environment unavailable", "path", path, "err", err)
		return nil
	}
	img, err := texture.DecodeImage(data, path)
	if err != nil {
		slog.Warn("raster: environment unavailable", "path", path, "err", err)
		return nil
	}
	return img
}

// drawBackdrop fills fb with the background color and stretches env over it.
func drawBackdrop(fb *FrameBuffer, env *image.NRGBA) {
	fb.Clear(Background)
	if env == nil || env.Bounds().Empty() {
		return
	}
	dst := fb.Image()
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), env, env.Bounds(), xdraw.Over, nil)
}
