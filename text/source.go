package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across layouts.
//
// FontSource is safe for concurrent use: both parsed forms are read-only.
type FontSource struct {
	data []byte

	// shaping is the go-text form used for HarfBuzz shaping.
	shaping *font.Font

	// outlines is the x/image form used to rasterize glyphs into the atlas.
	outlines *sfnt.Font

	name string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	data = bytes.Clone(data)

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font outlines: %w", err)
	}

	name, err := outlines.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}

	return &FontSource{
		data:     data,
		shaping:  face.Font,
		outlines: outlines,
		name:     name,
	}, nil
}

// Name returns the font family name, or "" if the font has none.
func (s *FontSource) Name() string {
	return s.name
}
