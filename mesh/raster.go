package mesh

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/marquee/loop"
)

// Rasterize composites the mesh onto dst on the CPU.
//
// The viewport is stretched over dst's bounds with Y flipped, so the
// viewport's bottom-left lands on dst's bottom-left pixel. Each quad samples
// its UV window of atlas and paints col through the resulting coverage.
func Rasterize(dst xdraw.Image, m *Mesh, atlas *image.Alpha, col color.Color, vp loop.Viewport) {
	b := dst.Bounds()
	size := vp.Size()
	if b.Empty() || size.X <= 0 || size.Y <= 0 {
		return
	}
	sx := float32(b.Dx()) / size.X
	sy := float32(b.Dy()) / size.Y

	toX := func(x float32) int {
		return b.Min.X + int(math32.Round((x-vp.BottomLeft.X)*sx))
	}
	toY := func(y float32) int {
		return b.Max.Y - int(math32.Round((y-vp.BottomLeft.Y)*sy))
	}

	src := image.NewUniform(col)
	var mask image.Alpha
	for i := range m.QuadCount() {
		q, uv := m.Quad(i)

		dr := image.Rect(
			toX(q[loop.BottomLeft].X), toY(q[loop.TopLeft].Y),
			toX(q[loop.TopRight].X), toY(q[loop.BottomLeft].Y),
		).Intersect(b)
		sr := atlasRect(atlas, uv)
		if dr.Empty() || sr.Empty() {
			continue
		}

		if dr.Size() == sr.Size() {
			xdraw.DrawMask(dst, dr, src, image.Point{}, atlas, sr.Min, xdraw.Over)
			continue
		}

		resizeAlpha(&mask, dr.Dx(), dr.Dy())
		xdraw.ApproxBiLinear.Scale(&mask, mask.Rect, atlas, sr, xdraw.Src, nil)
		xdraw.DrawMask(dst, dr, src, image.Point{}, &mask, image.Point{}, xdraw.Over)
	}
}

// atlasRect converts a quad's UVs into a texel rectangle of the top-first
// atlas image.
func atlasRect(atlas *image.Alpha, uv [VerticesPerQuad]loop.Vec2) image.Rectangle {
	r := atlas.Rect
	w, h := float32(r.Dx()), float32(r.Dy())
	x0 := int(math32.Round(uv[loop.BottomLeft].X * w))
	x1 := int(math32.Round(uv[loop.TopRight].X * w))
	y0 := int(math32.Round((1 - uv[loop.TopLeft].Y) * h))
	y1 := int(math32.Round((1 - uv[loop.BottomLeft].Y) * h))
	return image.Rect(x0, y0, x1, y1).Add(r.Min).Intersect(r)
}

// resizeAlpha makes a a w x h image at the origin, reusing its pixels.
func resizeAlpha(a *image.Alpha, w, h int) {
	n := w * h
	if cap(a.Pix) < n {
		a.Pix = make([]uint8, n)
	}
	a.Pix = a.Pix[:n]
	a.Stride = w
	a.Rect = image.Rect(0, 0, w, h)
}
