// Package au implements the fixed-point "application unit" used throughout
// the display list and the geometry types built on top of it.
package au

// PerPx is the number of Au in one pixel.
const PerPx = 60

// Au is a fixed-point distance: 1 pixel == PerPx Au. Addition and subtraction
// are exact; conversion back to pixels truncates toward zero.
type Au int32

// FromPx converts a pixel count to Au.
func FromPx(px int32) Au {
	return Au(px * PerPx)
}

// ToPx converts back to pixels, truncating toward zero.
func (a Au) ToPx() int32 {
	return int32(a) / PerPx
}

// Point is a 2D point in Au space.
type Point struct {
	X, Y Au
}

// Size is a 2D extent in Au space.
type Size struct {
	W, H Au
}

// Rect is an axis-aligned rectangle in Au space, given as an origin and a size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a Rect from pixel coordinates, a convenience used by
// everything that constructs display items from a pixel-space layout.
func NewRect(xPx, yPx, wPx, hPx int32) Rect {
	return Rect{
		Origin: Point{X: FromPx(xPx), Y: FromPx(yPx)},
		Size:   Size{W: FromPx(wPx), H: FromPx(hPx)},
	}
}

// MaxX returns the right edge of the rect.
func (r Rect) MaxX() Au { return r.Origin.X + r.Size.W }

// MaxY returns the bottom edge of the rect.
func (r Rect) MaxY() Au { return r.Origin.Y + r.Size.H }

// Add returns a rect whose origin is offset by d and whose size is unchanged.
func (r Rect) Add(d Point) Rect {
	return Rect{Origin: Point{X: r.Origin.X + d.X, Y: r.Origin.Y + d.Y}, Size: r.Size}
}

// PointU is an unsigned integer point, used for atlas/texture-space coordinates.
type PointU struct {
	X, Y uint32
}

// SizeU is an unsigned integer size, used for atlas/texture-space extents.
type SizeU struct {
	W, H uint32
}

// RectU is an axis-aligned rectangle in unsigned integer (pixel/texel) space.
type RectU struct {
	Origin PointU
	Size   SizeU
}

// Contains reports whether r lies entirely within the [0,0)-(w,h) bounds.
func (r RectU) Contains(w, h uint32) bool {
	return r.Origin.X+r.Size.W <= w && r.Origin.Y+r.Size.H <= h
}

// BottomRight returns the corner opposite Origin.
func (r RectU) BottomRight() PointU {
	return PointU{X: r.Origin.X + r.Size.W, Y: r.Origin.Y + r.Size.H}
}

// Overlaps reports whether r and other share any texel.
func (r RectU) Overlaps(other RectU) bool {
	if r.Origin.X >= other.Origin.X+other.Size.W || other.Origin.X >= r.Origin.X+r.Size.W {
		return false
	}
	if r.Origin.Y >= other.Origin.Y+other.Size.H || other.Origin.Y >= r.Origin.Y+r.Size.H {
		return false
	}
	return true
}

// NDCPoint is a point in normalized device coordinates, [-1,1]^2.
type NDCPoint struct {
	X, Y float32
}

// NDCRect is an axis-aligned rectangle in normalized device coordinates.
type NDCRect struct {
	Origin NDCPoint
	Size   struct{ W, H float32 }
}

// ToNDC converts a point in Au space to normalized device coordinates for a
// render target of the given pixel dimensions: x_ndc = (px/w - 0.5)*2, same
// for y. The caller is responsible for negating Y when emitting vertices,
// since screen space is Y-down and NDC is Y-up (see batch.Batch).
func (p Point) ToNDC(targetWidthPx, targetHeightPx int32) NDCPoint {
	return NDCPoint{
		X: (float32(p.X.ToPx())/float32(targetWidthPx) - 0.5) * 2,
		Y: (float32(p.Y.ToPx())/float32(targetHeightPx) - 0.5) * 2,
	}
}

// ToNDC converts a rect in Au space to a rect in normalized device coordinates.
func (r Rect) ToNDC(targetWidthPx, targetHeightPx int32) NDCRect {
	origin := r.Origin.ToNDC(targetWidthPx, targetHeightPx)
	out := NDCRect{Origin: origin}
	out.Size.W = float32(r.Size.W.ToPx()) / float32(targetWidthPx) * 2
	out.Size.H = float32(r.Size.H.ToPx()) / float32(targetHeightPx) * 2
	return out
}

// MaxX returns the right edge of the NDC rect.
func (r NDCRect) MaxX() float32 { return r.Origin.X + r.Size.W }

// MaxY returns the bottom edge of the NDC rect.
func (r NDCRect) MaxY() float32 { return r.Origin.Y + r.Size.H }
