package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeFitsSquare(t *testing.T) {
	red := color.NRGBA{200, 10, 10, 255}
	img, err := Decode(pngBytes(t, 640, 320, red), "photo.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Size, Size), img.Bounds())

	got := img.NRGBAAt(Size/2, Size/2)
	assert.InDelta(t, 200, int(got.R), 2)
	assert.InDelta(t, 10, int(got.G), 2)
}

func TestDecodeRejectsNonImages(t *testing.T) {
	_, err := Decode([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"), "doc.pdf")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Decode([]byte("just some text"), "notes.txt")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeTGAHintPassesSniff(t *testing.T) {
	// Sniffing lets it through by extension; the decoder still rejects junk.
	_, err := Decode([]byte{0, 1, 2, 3}, "broken.tga")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotImage)
}

// tgaBytes builds an uncompressed 24-bit true-color TGA with a top-left
// origin, filled with c.
func tgaBytes(w, h int, c color.NRGBA) []byte {
	hdr := []byte{
		0, 0, 2, // no id, no color map, true color
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		byte(w), byte(w >> 8), byte(h), byte(h >> 8),
		24, 0x20,
	}
	data := append([]byte{}, hdr...)
	for i := 0; i < w*h; i++ {
		data = append(data, c.B, c.G, c.R)
	}
	return data
}

func TestDecodeTGA(t *testing.T) {
	c := color.NRGBA{30, 120, 220, 255}
	img, err := DecodeImage(tgaBytes(6, 4, c), "photo.tga")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	assert.Equal(t, c, img.NRGBAAt(5, 3))

	fitted, err := Decode(tgaBytes(6, 4, c), "PHOTO.TGA")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Size, Size), fitted.Bounds())
}

func TestDecodeFormatsWithSignatures(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 10, 200, 30, 255
	}
	encoders := map[string]func(*bytes.Buffer) error{
		"photo.png": func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"photo.jpg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 95}) },
		"photo.gif": func(b *bytes.Buffer) error {
			pal := image.NewPaletted(src.Bounds(), color.Palette{color.NRGBA{10, 200, 30, 255}})
			return gif.Encode(b, pal, nil)
		},
		"photo.bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"photo.webp": func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) },
		// A misleading extension must not route bytes to the TGA decoder.
		"photo.tga": func(b *bytes.Buffer) error { return png.Encode(b, src) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, enc(&buf))
			img, err := DecodeImage(buf.Bytes(), name)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
			got := img.NRGBAAt(8, 8)
			assert.InDelta(t, 200, int(got.G), 24)
			assert.Less(t, int(got.R), 60)
		})
	}
}

func TestDecodeUnsupportedImageKind(t *testing.T) {
	tiff := append([]byte{0x49, 0x49, 0x2A, 0x00}, make([]byte, 16)...)
	_, err := DecodeImage(tiff, "scan.tif")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeCorruptPNG(t *testing.T) {
	data := pngBytes(t, 8, 8, color.NRGBA{A: 255})
	_, err := Decode(data[:20], "cut.png")
	assert.Error(t, err)
}

func TestSolid(t *testing.T) {
	img := Solid(Placeholder, 4)
	assert.Equal(t, Placeholder, img.NRGBAAt(3, 3))
}

func TestDefaultSourcePerID(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/3/400/400", DefaultSource(3).Ref)
	assert.NotEqual(t, DefaultSource(1), DefaultSource(2))
	assert.Equal(t, Local, LocalSource("/tmp/a.jpg").Kind)
	assert.Equal(t, "file:/tmp/a.jpg", LocalSource("/tmp/a.jpg").String())
}

func TestSlotsPlaceholderUntilReady(t *testing.T) {
	s := NewSlots(2)
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	gen := s.Set(0, DefaultSource(0))
	assert.Nil(t, s.Image(0))

	assert.True(t, s.Apply(Result{Slot: 0, Gen: gen, Image: img}))
	assert.Same(t, img, s.Image(0))
	v := s.At(0).Version

	// A new source drops the old photo immediately.
	gen2 := s.Set(0, LocalSource("/tmp/new.png"))
	assert.Nil(t, s.Image(0))
	assert.Greater(t, s.At(0).Version, v)

	// A late result for the old generation is ignored.
	assert.False(t, s.Apply(Result{Slot: 0, Gen: gen, Image: img}))
	assert.Nil(t, s.Image(0))

	// Failures keep the placeholder.
	assert.False(t, s.Apply(Result{Slot: 0, Gen: gen2, Err: errors.New("boom")}))
	assert.Nil(t, s.Image(0))

	assert.False(t, s.Apply(Result{Slot: 9, Gen: 1, Image: img}))
	assert.Nil(t, s.Image(9))
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls map[Source]int
	data  map[Source][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, src Source) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[src]++
	d, ok := f.data[src]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func TestLoaderDeliversThroughPoll(t *testing.T) {
	good := DefaultSource(1)
	bad := DefaultSource(2)
	f := &fakeFetcher{
		calls: map[Source]int{},
		data:  map[Source][]byte{good: pngBytes(t, 16, 16, color.NRGBA{0, 255, 0, 255})},
	}
	cache := NewCache()
	l := NewLoader(context.Background(), f, cache)
	defer l.Close()

	l.Request(1, 1, good)
	l.Request(2, 1, bad)
	l.Wait()

	results := l.Poll()
	require.Len(t, results, 2)
	for _, r := range results {
		switch r.Slot {
		case 1:
			require.NoError(t, r.Err)
			assert.Equal(t, Size, r.Image.Bounds().Dx())
		case 2:
			assert.Error(t, r.Err)
			assert.Nil(t, r.Image)
		}
	}
	assert.Empty(t, l.Poll())

	// Cached remote source is not fetched again.
	l.Request(3, 1, good)
	l.Wait()
	require.Len(t, l.Poll(), 1)
	assert.Equal(t, 1, f.calls[good])
	assert.Equal(t, 1, cache.Len())
}

func TestCacheSkipsLocal(t *testing.T) {
	c := NewCache()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	c.Put(LocalSource("/a.png"), img)
	c.Put(DefaultSource(0), nil)
	assert.Zero(t, c.Len())

	c.Put(DefaultSource(0), img)
	got, ok := c.Get(DefaultSource(0))
	assert.True(t, ok)
	assert.Same(t, img, got)
}

func TestHTTPFetcher(t *testing.T) {
	body := pngBytes(t, 4, 4, color.NRGBA{1, 2, 3, 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	got, err := f.Fetch(context.Background(), Source{Kind: Remote, Ref: srv.URL + "/ok.png"})
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = f.Fetch(context.Background(), Source{Kind: Remote, Ref: srv.URL + "/missing"})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "pick.png")
	require.NoError(t, os.WriteFile(path, body, 0o644))
	got, err = f.Fetch(context.Background(), LocalSource(path))
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = f.Fetch(context.Background(), LocalSource(filepath.Join(t.TempDir(), "revoked.png")))
	assert.Error(t, err)
}

func TestIsImageFile(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(photo, pngBytes(t, 4, 4, color.NRGBA{1, 2, 3, 255}), 0o644))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hello"), 0o644))

	assert.True(t, IsImageFile(photo))
	assert.False(t, IsImageFile(notes))
	assert.False(t, IsImageFile(filepath.Join(dir, "missing.png")))
}
