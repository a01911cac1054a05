// Package icons resolves symbolic glyph names such as "star.fill" to vector
// icons and rasterizes them for the software renderer.
//
// The built-in set is embedded at compile time. Glyphs are drawn in black;
// callers use the rasterized alpha channel as a mask and apply their own tint.
package icons

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrUnknownIcon is returned when a glyph name has no registered SVG.
var ErrUnknownIcon = errors.New("icons: unknown icon")

//go:embed glyphs/*.svg
var glyphFS embed.FS

var (
	registryMu sync.RWMutex
	registry   = loadBuiltins()

	defaultCache = newRasterCache()
)

func loadBuiltins() map[string][]byte {
	glyphs := make(map[string][]byte)
	entries, err := fs.ReadDir(glyphFS, "glyphs")
	if err != nil {
		return glyphs
	}
	for _, entry := range entries {
		data, err := glyphFS.ReadFile(path.Join("glyphs", entry.Name()))
		if err != nil {
			continue
		}
		glyphs[strings.TrimSuffix(entry.Name(), ".svg")] = data
	}
	return glyphs
}

// Lookup returns the SVG source for name.
func Lookup(name string) ([]byte, error) {
	registryMu.RLock()
	data, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, name)
	}
	return data, nil
}

// Names returns the registered glyph names in sorted order.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	slices.Sort(names)
	return names
}

// Register adds or replaces a glyph. The SVG is parsed once to reject
// malformed input.
func Register(name string, svg []byte) error {
	if name == "" {
		return errors.New("icons: empty name")
	}
	if _, err := oksvg.ReadIconStream(bytes.NewReader(svg)); err != nil {
		return fmt.Errorf("icons: parse %q: %w", name, err)
	}
	registryMu.Lock()
	registry[name] = append([]byte(nil), svg...)
	registryMu.Unlock()
	defaultCache.invalidate(name)
	return nil
}

// Rasterize draws the named glyph into a size×size image. Results are cached
// per name and size; the returned image must not be modified.
func Rasterize(name string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icons: invalid size %d", size)
	}
	return defaultCache.get(cacheKey{name: name, size: size}, func() (*image.RGBA, error) {
		data, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		return rasterize(data, size)
	})
}

func rasterize(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}
