package loop

import "github.com/chewxy/math32"

// minLoopSize is the period used on an axis whose computed loop size is not
// positive (empty text in a zero-sized viewport).
const minLoopSize float32 = 1

// Glyph is the static per-glyph input of the kernel, rebuilt on every
// Prepare. Invisible glyphs (whitespace) carry a zero record apart from the
// flag and are skipped.
type Glyph struct {
	Visible bool

	// VertexIndex is the first of the four vertex/UV slots owned by the
	// glyph. Slots of different glyphs never overlap.
	VertexIndex int

	// Corners in BL, TL, TR, BR order, as placed by the layout engine.
	Corners Quad

	// Atlas is the glyph rectangle in atlas texels.
	Atlas Rect
}

// Metrics is the snapshot of text metrics taken on Prepare.
type Metrics struct {
	// Preferred is the unwrapped content size of the text.
	Preferred Vec2

	// Nominal is the size of one glyph at the current font size.
	Nominal Vec2

	// AtlasSize is the atlas texture size in texels.
	AtlasSize Vec2
}

// Params is the shared, read-only record of one batch.
type Params struct {
	Offset    Vec2
	LoopSize  Vec2
	AtlasSize Vec2
}

// Placement reports how Transform placed one glyph.
type Placement struct {
	LeftOverflow   bool
	BottomOverflow bool

	// Scale is the clipped size over the original size on each axis.
	// A component below 1 means the glyph is partially visible.
	Scale Vec2
}

// LoopSize returns the wrap period on each axis:
// max(preferred + spacing, viewport + nominal). The viewport floor keeps a
// glyph from being visible twice at once.
func LoopSize(preferred, spacing, viewport, nominal Vec2) Vec2 {
	return Vec2{
		X: loopAxis(preferred.X+spacing.X, viewport.X+nominal.X),
		Y: loopAxis(preferred.Y+spacing.Y, viewport.Y+nominal.Y),
	}
}

func loopAxis(content, floor float32) float32 {
	size := math32.Max(content, floor)
	if !(size > 0) {
		return minLoopSize
	}
	return size
}

// Wrap maps a host-space point into the loop period starting at the
// viewport's bottom-left corner.
func Wrap(pos Vec3, p *Params, vp *Viewport) Vec3 {
	return Vec3{
		X: wrapAxis(pos.X, vp.BottomLeft.X, p.Offset.X, p.LoopSize.X),
		Y: wrapAxis(pos.Y, vp.BottomLeft.Y, p.Offset.Y, p.LoopSize.Y),
		Z: pos.Z,
	}
}

// wrapAxis applies a floored modulo, so the result is in [origin, origin+period).
func wrapAxis(v, origin, offset, period float32) float32 {
	m := math32.Mod(v-origin+offset, period)
	if m < 0 {
		m += period
	}
	if m >= period {
		m = 0
	}
	return m + origin
}

// Transform writes the looped positions of one glyph into verts[0:4] and
// the matching atlas UVs into uvs[0:4], both in BL, TL, TR, BR order.
//
// A glyph whose wrapped quad straddles the seam has its leading edge moved
// to the viewport edge and its UV window shifted so the texels that remain
// visible are the ones drawn. The wrapped-away tail is dropped, not
// duplicated.
func Transform(g *Glyph, p *Params, vp *Viewport, verts []Vec3, uvs []Vec2) Placement {
	var q Quad
	for c := range q {
		q[c] = Wrap(g.Corners[c], p, vp)
	}

	pl := Placement{
		LeftOverflow:   q[BottomLeft].X > q[BottomRight].X,
		BottomOverflow: q[BottomLeft].Y > q[TopLeft].Y,
	}
	if pl.LeftOverflow {
		q[BottomLeft].X = vp.BottomLeft.X
		q[TopLeft].X = vp.BottomLeft.X
	}
	if pl.BottomOverflow {
		q[BottomLeft].Y = vp.BottomLeft.Y
		q[BottomRight].Y = vp.BottomLeft.Y
	}
	for c := range q {
		q[c].X = math32.Min(q[c].X, vp.TopRight.X)
		q[c].Y = math32.Min(q[c].Y, vp.TopRight.Y)
	}

	pl.Scale = Vec2{
		X: scaleOf(q.Width(), g.Corners.Width()),
		Y: scaleOf(q.Height(), g.Corners.Height()),
	}

	uv := normalize(g.Atlas, p.AtlasSize)
	if pl.LeftOverflow {
		uv.X += uv.W * (1 - pl.Scale.X)
	}
	if pl.BottomOverflow {
		uv.Y += uv.H * (1 - pl.Scale.Y)
	}
	uv.W *= pl.Scale.X
	uv.H *= pl.Scale.Y

	copy(verts[:4], q[:])
	uvs[BottomLeft] = Vec2{X: uv.X, Y: uv.Y}
	uvs[TopLeft] = Vec2{X: uv.X, Y: uv.Y + uv.H}
	uvs[TopRight] = Vec2{X: uv.X + uv.W, Y: uv.Y + uv.H}
	uvs[BottomRight] = Vec2{X: uv.X + uv.W, Y: uv.Y}
	return pl
}

// scaleOf returns clipped/original, treating a zero original extent as
// fully visible.
func scaleOf(clipped, original float32) float32 {
	if original == 0 {
		return 1
	}
	return math32.Max(0, math32.Min(clipped/original, 1))
}

// normalize converts a texel rectangle into [0,1] UV space.
func normalize(r Rect, atlas Vec2) Rect {
	if atlas.X > 0 {
		r.X /= atlas.X
		r.W /= atlas.X
	}
	if atlas.Y > 0 {
		r.Y /= atlas.Y
		r.H /= atlas.Y
	}
	return r
}

// Job runs Transform over a glyph slice. Each index touches only its own
// glyph and its own four output slots, so disjoint index ranges may run
// concurrently.
type Job struct {
	Glyphs   []Glyph
	Params   Params
	Viewport Viewport
	Vertices []Vec3
	UVs      []Vec2
}

// Execute transforms glyph i. Invisible glyphs are skipped.
func (j *Job) Execute(i int) {
	g := &j.Glyphs[i]
	if !g.Visible {
		return
	}
	k := g.VertexIndex
	Transform(g, &j.Params, &j.Viewport, j.Vertices[k:k+4], j.UVs[k:k+4])
}

// ExecuteRange transforms glyphs [start, end).
func (j *Job) ExecuteRange(start, end int) {
	for i := start; i < end; i++ {
		j.Execute(i)
	}
}
