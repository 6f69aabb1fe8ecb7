// Package textmetrics measures and wraps text against real glyph metrics.
// It owns the process-wide font handles: fonts are parsed once and shared,
// so concurrent render calls can use one manager.
package textmetrics

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects a font file within the family
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

// FontManager loads a two-weight font family and hands out faces.
// Missing bold substitutes regular; missing both falls back to the
// embedded Go fonts so rendering always has glyph metrics to work with.
// The fonts map is read-only after construction.
type FontManager struct {
	fonts map[Weight]*truetype.Font
}

// NewFontManager loads Regular and Bold weight files from fontDir.
// An empty fontDir skips the lookup and uses the embedded fonts directly.
func NewFontManager(fontDir string) (*FontManager, error) {
	fm := &FontManager{
		fonts: make(map[Weight]*truetype.Font),
	}

	regular := loadFontFile(fontDir, "Regular")
	bold := loadFontFile(fontDir, "Bold")
	customFamily := regular != nil

	if regular == nil {
		regular = goregular.TTF
		if fontDir != "" {
			log.Printf("Warning: no Regular font in %s, using embedded default", fontDir)
		}
	}
	if bold == nil {
		// Substitute regular for bold rather than failing; with no
		// family at all the embedded bold keeps the weight contrast.
		if customFamily {
			log.Printf("Warning: no Bold font in %s, substituting Regular weight", fontDir)
			bold = regular
		} else {
			bold = gobold.TTF
		}
	}

	var err error
	if fm.fonts[WeightRegular], err = truetype.Parse(regular); err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	if fm.fonts[WeightBold], err = truetype.Parse(bold); err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	return fm, nil
}

// Face builds a face for the given weight and size. Faces carry a
// mutable glyph cache and must not be shared across goroutines, so every
// call gets a fresh one; only the parsed fonts behind them are shared.
func (fm *FontManager) Face(weight Weight, size float64) font.Face {
	return truetype.NewFace(fm.fonts[weight], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// loadFontFile finds the first font file in dir whose name contains the
// weight marker (e.g. "Inter-Regular.ttf"). Returns nil when none exists.
func loadFontFile(dir, marker string) []byte {
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		if !strings.Contains(name, marker) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Warning: could not read font %s: %v", name, err)
			continue
		}
		return data
	}
	return nil
}
