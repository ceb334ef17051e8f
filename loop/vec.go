package loop

// Vec2 is a 2D vector in host coordinate space (or normalized UV space).
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Vec3 is a 3D point. The kernel only loops X and Y; Z passes through.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Corner indexes the vertices of a glyph quad.
// The order is fixed for both positions and UVs.
type Corner int

const (
	BottomLeft Corner = iota
	TopLeft
	TopRight
	BottomRight
)

// Quad holds the four corners of a glyph in BL, TL, TR, BR order.
type Quad [4]Vec3

// Width returns the bottom edge length of the quad.
func (q Quad) Width() float32 {
	return q[BottomRight].X - q[BottomLeft].X
}

// Height returns the left edge length of the quad.
func (q Quad) Height() float32 {
	return q[TopLeft].Y - q[BottomLeft].Y
}

// Rect is an axis-aligned rectangle. For atlas rectangles the units are texels.
type Rect struct {
	X, Y, W, H float32
}

// Viewport is the rectangle the text loops inside, given by two corners in
// host coordinate space.
type Viewport struct {
	BottomLeft Vec3
	TopRight   Vec3
}

// ViewportFromCorners builds a Viewport from four local corner points in
// BL, TL, TR, BR order.
func ViewportFromCorners(c [4]Vec3) Viewport {
	return Viewport{BottomLeft: c[BottomLeft], TopRight: c[TopRight]}
}

// Size returns the viewport extent on both axes.
func (v Viewport) Size() Vec2 {
	return Vec2{X: v.TopRight.X - v.BottomLeft.X, Y: v.TopRight.Y - v.BottomLeft.Y}
}
