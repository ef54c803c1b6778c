package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// Size is the edge length of decoded photo textures.
const Size = 256

// Placeholder is the neutral color shown until a photo is ready.
var Placeholder = color.NRGBA{0xEE, 0xEE, 0xEE, 0xFF}

// ErrNotImage is returned for data that is not an image.
var ErrNotImage = errors.New("texture: not an image")

// Decode sniffs, decodes and fits photo bytes into a Size×Size NRGBA texture.
// name is only used as a hint for formats without a signature (TGA).
func Decode(data []byte, name string) (*image.NRGBA, error) {
	img, err := DecodeImage(data, name)
	if err != nil {
		return nil, err
	}
	return fitSquare(img, Size), nil
}

// decoderFunc decodes one image format.
type decoderFunc func(io.Reader) (image.Image, error)

// decoders maps a sniffed filetype extension to its decoder. Formats are
// never looked up through image.Decode: tga registers an empty magic string
// and would claim any input.
var decoders = map[string]decoderFunc{
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"webp": webp.Decode,
	"tga":  tga.Decode,
}

// DecodeImage sniffs and decodes image bytes at their native size.
func DecodeImage(data []byte, name string) (*image.NRGBA, error) {
	decode, err := decoderFor(data, name)
	if err != nil {
		return nil, err
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture: empty image %s", name)
	}
	return toNRGBA(img), nil
}

// decoderFor picks the decoder for data from its signature. TGA has no
// signature and is recognized by extension only, after every signed format
// failed to match.
func decoderFor(data []byte, name string) (decoderFunc, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("texture: sniff %s: %w", name, err)
	}
	if kind == filetype.Unknown {
		if strings.EqualFold(filepath.Ext(name), ".tga") {
			return decoders["tga"], nil
		}
		return nil, fmt.Errorf("%w: %s", ErrNotImage, name)
	}
	if kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, kind.MIME.Value)
	}
	decode, ok := decoders[kind.Extension]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %s for %s", ErrNotImage, kind.Extension, name)
	}
	return decode, nil
}

// sniffLen is how much of a file filetype needs to recognize it.
const sniffLen = 262

// IsImageFile reports whether the file at path looks like an image Decode
// supports, judging from its first bytes without decoding it.
func IsImageFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(f, head)
	_, err = decoderFor(head[:n], path)
	return err == nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// fitSquare center-crops to a square and scales to size×size with CatmullRom.
func fitSquare(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	crop := image.Rect(0, 0, side, side).Add(b.Min).Add(image.Pt((b.Dx()-side)/2, (b.Dy()-side)/2))

	if side == size && crop == b {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, xdraw.Src, nil)
	return dst
}

// Solid returns a size×size image filled with c.
func Solid(c color.NRGBA, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
