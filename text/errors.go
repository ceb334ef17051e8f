package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilSource is returned when a layout is created without a font.
	ErrNilSource = errors.New("text: nil font source")

	// ErrAtlasFull is returned when a glyph does not fit in the atlas page.
	ErrAtlasFull = errors.New("text: glyph atlas is full")

	// ErrUnsupportedDirection is returned for right-to-left text, which a
	// horizontal marquee cannot loop.
	ErrUnsupportedDirection = errors.New("text: right-to-left text is not supported")
)
