package text

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/marquee/loop"
)

// Layout shapes a single line of text and places its glyphs for the
// marquee pipeline.
//
// Positions are in a Y-up space: the line's bottom edge (its descent) sits
// at y = 0 and the pen starts at x = 0. Each visible glyph is rasterized
// into the layout's atlas page.
//
// Layout is not safe for concurrent use.
type Layout struct {
	src   *FontSource
	cfg   layoutConfig
	atlas *Atlas

	text  string
	dirty bool

	glyphs  []loop.Glyph
	metrics loop.Metrics
	visible int
}

// NewLayout creates a layout of s using src.
// Nothing is shaped until the first Refresh.
func NewLayout(src *FontSource, s string, opts ...Option) (*Layout, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	cfg := defaultLayoutConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Layout{
		src:   src,
		cfg:   cfg,
		atlas: NewAtlas(cfg.atlasWidth, cfg.atlasHeight, cfg.padding),
		text:  s,
		dirty: true,
	}, nil
}

// SetText replaces the text. The next Refresh re-shapes it.
func (l *Layout) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.dirty = true
}

// Text returns the current text.
func (l *Layout) Text() string {
	return l.text
}

// Atlas returns the glyph atlas page the layout rasterizes into.
func (l *Layout) Atlas() *Atlas {
	return l.atlas
}

// Visible returns the number of visible glyphs after the last Refresh.
func (l *Layout) Visible() int {
	return l.visible
}

// Refresh shapes the text and rebuilds glyph placement when the text has
// changed since the previous call.
func (l *Layout) Refresh() error {
	if !l.dirty {
		return nil
	}

	s := norm.NFC.String(l.text)
	if err := checkDirection(s); err != nil {
		return err
	}

	runes := []rune(s)
	l.glyphs = l.glyphs[:0]
	l.visible = 0
	l.atlas.Reset()

	out := shape(l.src, runes, l.cfg.size)
	ascent := fixedToFloat(out.LineBounds.Ascent)
	descent := fixedToFloat(out.LineBounds.Descent)
	gap := fixedToFloat(out.LineBounds.Gap)
	baseline := -descent
	spacing := float32(l.cfg.letterSpacing)

	var pen float32
	for _, sg := range out.Glyphs {
		g := loop.Glyph{}
		if !isBlank(runes, sg.TextIndex()) {
			c, err := l.atlas.glyph(l.src, sg.GlyphID, l.cfg.size)
			if err != nil {
				return err
			}
			if !c.rect.Empty() {
				x := pen + fixedToFloat(sg.XOffset)
				y := baseline + fixedToFloat(sg.YOffset)
				x0 := x + float32(c.bounds.Min.X)
				x1 := x + float32(c.bounds.Max.X)
				top := y - float32(c.bounds.Min.Y)
				bottom := y - float32(c.bounds.Max.Y)

				g.Visible = true
				g.Corners = loop.Quad{
					loop.BottomLeft:  loop.V3(x0, bottom, 0),
					loop.TopLeft:     loop.V3(x0, top, 0),
					loop.TopRight:    loop.V3(x1, top, 0),
					loop.BottomRight: loop.V3(x1, bottom, 0),
				}
				g.Atlas = l.atlas.texels(c)
				l.visible++
			}
		}
		l.glyphs = append(l.glyphs, g)
		pen += fixedToFloat(sg.Advance) + spacing
	}

	size := l.atlas.Size()
	l.metrics = loop.Metrics{
		Preferred: loop.V2(pen, ascent-descent),
		Nominal:   loop.V2(float32(l.cfg.size), ascent-descent+gap),
		AtlasSize: loop.V2(float32(size.X), float32(size.Y)),
	}
	l.dirty = false
	return nil
}

// GlyphCount returns the number of glyph slots, visible or not.
func (l *Layout) GlyphCount() int {
	return len(l.glyphs)
}

// Glyph returns the placement of glyph slot i.
func (l *Layout) Glyph(i int) loop.Glyph {
	return l.glyphs[i]
}

// Metrics returns the line's preferred size, nominal glyph size and atlas
// size.
func (l *Layout) Metrics() loop.Metrics {
	return l.metrics
}

// checkDirection rejects text containing right-to-left characters.
func checkDirection(s string) error {
	for i, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return fmt.Errorf("%w: %q at byte %d", ErrUnsupportedDirection, r, i)
		}
	}
	return nil
}

// isBlank reports whether the rune a glyph was shaped from is whitespace
// or a control character.
func isBlank(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	r := runes[i]
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
