// Package text shapes a single line of marquee text and packs its glyphs
// into a coverage atlas.
//
// The pipeline has three parts:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF once
//     for shaping and once for outlines)
//   - Atlas: a single-page glyph coverage texture, shelf packed
//   - Layout: shapes text with HarfBuzz and places one quad per glyph
//
// # Example usage
//
//	source, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	layout, err := text.NewLayout(source, "Hello, marquee", text.WithSize(24))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// layout satisfies marquee.Layout.
//	p, err := marquee.New(layout, viewport, sink)
//
// # Coordinates
//
// Layout positions are Y-up with the line's descent at y = 0. Atlas
// rectangles are reported in texels counted from the bottom-left of the
// page, so normalized V grows upward like host Y. Atlas.Image stores rows
// top first; samplers flip V.
//
// Right-to-left text is rejected with ErrUnsupportedDirection.
package text
