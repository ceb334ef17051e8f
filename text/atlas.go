package text

import (
	"fmt"
	"image"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/marquee/loop"
)

// Default atlas page configuration.
const (
	DefaultAtlasSize = 512
	DefaultPadding   = 1
)

// Atlas is a single-page coverage atlas holding one cell per glyph ID.
//
// The image is stored top row first, like any image.Image. Rectangles
// handed to the loop kernel use a bottom-up texel space (row 0 at the
// bottom), so V grows in the same direction as host Y. Consumers sampling
// Image() flip V.
//
// Atlas is not safe for concurrent use.
type Atlas struct {
	img      *image.Alpha
	shelves  shelfAllocator
	cells    map[font.GID]cell
	raster   *vector.Rasterizer
	buf      sfnt.Buffer
	revision int
}

// cell is one rasterized glyph.
type cell struct {
	// rect is the texel rectangle in image space, top row first.
	rect image.Rectangle

	// texels is the same rectangle counted from the bottom of the page.
	texels image.Rectangle

	// bounds is the glyph's pixel box relative to its origin, Y down.
	bounds image.Rectangle
}

// NewAtlas creates an empty atlas page.
func NewAtlas(width, height, padding int) *Atlas {
	return &Atlas{
		img:     image.NewAlpha(image.Rect(0, 0, width, height)),
		shelves: newShelfAllocator(width, height, padding),
		cells:   make(map[font.GID]cell),
	}
}

// Image returns the coverage image of the page.
func (a *Atlas) Image() *image.Alpha {
	return a.img
}

// Size returns the page size in texels.
func (a *Atlas) Size() image.Point {
	return a.img.Rect.Size()
}

// Len returns the number of cached glyph cells.
func (a *Atlas) Len() int {
	return len(a.cells)
}

// Revision increases every time the page contents change.
func (a *Atlas) Revision() int {
	return a.revision
}

// Utilization returns the fraction of the page area in use.
func (a *Atlas) Utilization() float64 {
	return a.shelves.utilization()
}

// Reset clears the page and forgets all cells.
func (a *Atlas) Reset() {
	clear(a.img.Pix)
	clear(a.cells)
	a.shelves.reset()
	a.revision++
}

// texels converts a cell into the loop kernel's atlas rectangle.
func (a *Atlas) texels(c cell) loop.Rect {
	return loop.Rect{
		X: float32(c.texels.Min.X),
		Y: float32(c.texels.Min.Y),
		W: float32(c.texels.Dx()),
		H: float32(c.texels.Dy()),
	}
}

// flip maps a bottom-up texel rectangle onto image rows.
func (a *Atlas) flip(r image.Rectangle) image.Rectangle {
	h := a.img.Rect.Dy()
	return image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y)
}

// glyph returns the cell for gid, rasterizing it on first use.
// Glyphs without an outline return an empty cell.
func (a *Atlas) glyph(src *FontSource, gid font.GID, ppem float64) (cell, error) {
	if c, ok := a.cells[gid]; ok {
		return c, nil
	}

	segs, err := src.outlines.LoadGlyph(&a.buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), nil)
	if err != nil {
		return cell{}, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	b := segs.Bounds()
	bounds := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if bounds.Empty() {
		c := cell{}
		a.cells[gid] = c
		return c, nil
	}

	w, h := bounds.Dx(), bounds.Dy()
	texels, ok := a.shelves.allocate(w, h)
	if !ok {
		return cell{}, fmt.Errorf("%w: glyph %d (%dx%d) in %v page", ErrAtlasFull, gid, w, h, a.Size())
	}

	c := cell{rect: a.flip(texels), texels: texels, bounds: bounds}
	a.rasterize(segs, bounds.Min, c.rect)
	a.cells[gid] = c
	a.revision++
	return c, nil
}

// rasterize draws the outline, shifted so origin lands at dst.Min, into the page.
func (a *Atlas) rasterize(segs sfnt.Segments, origin image.Point, dst image.Rectangle) {
	w, h := dst.Dx(), dst.Dy()
	if a.raster == nil {
		a.raster = vector.NewRasterizer(w, h)
	} else {
		a.raster.Reset(w, h)
	}

	dx, dy := float32(-origin.X), float32(-origin.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat(p.X) + dx, fixedToFloat(p.Y) + dy
	}

	z := a.raster
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			z.ClosePath()
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	z.ClosePath()
	z.Draw(a.img, dst, image.Opaque, image.Point{})
}
