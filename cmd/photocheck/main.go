package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"memory-tree/internal/texture"
)

// checkPhoto decodes a file exactly as a dropped photo is decoded and, when
// out is set, writes the fitted texture next to it as WebP.
func checkPhoto(path, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Printf("OK  %s  (%d bytes -> %dx%d texture)\n", path, len(data), img.Rect.Dx(), img.Rect.Dy())
		return nil
	}

	dst := filepath.Join(out, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"_texture.webp")
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	fmt.Printf("OK  %s -> %s  (%d bytes read)\n", path, dst, len(data))
	return nil
}

func main() {
	out := flag.String("out", "", "Directory to write fitted textures to (default: check only)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: photocheck [-out dir] photo...")
		os.Exit(2)
	}
	if *out != "" {
		if err := os.MkdirAll(*out, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	errors := 0
	for _, p := range flag.Args() {
		if err := checkPhoto(p, *out); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone. All photos usable.")
}
