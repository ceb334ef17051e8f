package text

// Option configures a Layout.
type Option func(*layoutConfig)

// layoutConfig holds configuration for Layout.
type layoutConfig struct {
	size          float64
	letterSpacing float64
	atlasWidth    int
	atlasHeight   int
	padding       int
}

// defaultLayoutConfig returns the default layout configuration.
func defaultLayoutConfig() layoutConfig {
	return layoutConfig{
		size:        16,
		atlasWidth:  DefaultAtlasSize,
		atlasHeight: DefaultAtlasSize,
		padding:     DefaultPadding,
	}
}

// WithSize sets the font size in pixels per em. Non-positive values are ignored.
func WithSize(size float64) Option {
	return func(c *layoutConfig) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithLetterSpacing adds extra space after every glyph advance.
func WithLetterSpacing(spacing float64) Option {
	return func(c *layoutConfig) {
		c.letterSpacing = spacing
	}
}

// WithAtlasSize sets the glyph atlas page size in texels.
// Non-positive dimensions are ignored.
func WithAtlasSize(width, height int) Option {
	return func(c *layoutConfig) {
		if width > 0 && height > 0 {
			c.atlasWidth = width
			c.atlasHeight = height
		}
	}
}

// WithPadding sets the empty border kept between atlas cells.
func WithPadding(padding int) Option {
	return func(c *layoutConfig) {
		if padding >= 0 {
			c.padding = padding
		}
	}
}
