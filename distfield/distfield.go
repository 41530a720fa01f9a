// Package distfield builds 8-bit signed-distance-field bitmaps for glyphs
// and quarter-circle arcs (spec §4.B), and rasterizes glyph bitmaps through
// FreeType (golang/freetype), mirroring the way the teacher's
// glyphs/font_atlas.go walks a truetype.Face to fill a texture atlas.
package distfield

import (
	"math"
)

// Buffer is the alpha bias added to a signed distance before it is stored in
// the 8-bit alpha channel (spec §3).
const Buffer = 192

// GlyphDistanceScalingFactor and ArcDistanceScalingFactor convert a signed
// distance, measured in source-pixel units, into the alpha channel's units
// (spec §3).
const (
	GlyphDistanceScalingFactor = 10.0
	ArcDistanceScalingFactor   = 256.0
)

// FontSizeForRasterization is the pixel size glyphs are rendered at before
// being downscaled into the SDF (spec §3/§6).
const FontSizeForRasterization = 1024

// FontDPI is the vertical rendering resolution used when rasterizing a glyph.
const FontDPI = 50

// DownscaleRatio is the ratio applied to a glyph rasterized at
// FontSizeForRasterization to get its size within the SDF field (spec §3).
const DownscaleRatio = 96.0 / 1024.0

// ArcRadius is the fixed pixel radius a FilledArc/InvertedFilledArc SDF is
// generated at; the resulting field is ArcRadius x ArcRadius (spec §3).
const ArcRadius = 50

// Size is an unsigned width/height pair, matching AssetRasterization.size.
type Size struct {
	W, H uint32
}

// Bitmap is a grayscale glyph bitmap: zero means "outside" the glyph,
// nonzero means "inside" (spec §4.B, §6).
type Bitmap struct {
	Data   []byte
	Width  uint32
	Height uint32
}

func (b Bitmap) at(x, y int32) bool {
	if x < 0 || y < 0 || uint32(x) >= b.Width || uint32(y) >= b.Height {
		return false
	}
	return b.Data[int32(b.Width)*y+x] != 0
}

// BuildGlyphField rasterizes a glyph bitmap into an RGBA8 SDF of size
// fieldSize, with R=G=B=255 everywhere and A encoding the biased signed
// distance (spec §4.B). fieldSize is expected to be 2x glyphSizeInField on
// each axis (half of glyphSizeInField is padding on every side).
//
// The naive scan is O((fieldW*fieldH) * (glyphW*glyphH)) as specified; it
// is the literal translation of distance_field.rs's nested loop, generalized
// from a fixed cutoff to spec's biased/scaled convention.
func BuildGlyphField(glyph Bitmap, glyphSizeInField, fieldSize Size) []byte {

	padX := float64(glyphSizeInField.W) / 2
	padY := float64(glyphSizeInField.H) / 2
	ratio := float64(glyph.Width) / float64(glyphSizeInField.W)

	out := make([]byte, fieldSize.W*fieldSize.H*4)

	for y0 := uint32(0); y0 < fieldSize.H; y0++ {
		for x0 := uint32(0); x0 < fieldSize.W; x0++ {

			gx := int32((float64(x0) - padX) * ratio)
			gy := int32((float64(y0) - padY) * ratio)
			inside := glyph.at(gx, gy)

			var minDist float64 = math.MaxFloat64
			for y1 := int32(0); y1 < int32(glyph.Height); y1++ {
				for x1 := int32(0); x1 < int32(glyph.Width); x1++ {

					if x1 == gx && y1 == gy {
						continue
					}
					if glyph.at(x1, y1) == inside {
						continue
					}

					dx := float64(x1) - float64(gx)
					dy := float64(y1) - float64(gy)
					d := math.Sqrt(dx*dx + dy*dy)
					if d < minDist {
						minDist = d
					}
				}
			}
			if minDist == math.MaxFloat64 {
				minDist = 0
			}

			var alpha float64
			if inside {
				alpha = Buffer + (minDist*GlyphDistanceScalingFactor - GlyphDistanceScalingFactor)
			} else {
				alpha = Buffer - minDist*GlyphDistanceScalingFactor
			}

			i := (y0*fieldSize.W + x0) * 4
			out[i+0] = 255
			out[i+1] = 255
			out[i+2] = 255
			out[i+3] = clamp255(alpha)
		}
	}

	return out
}

// ArcMode selects which convention an arc SDF is generated under (spec §3).
type ArcMode int

const (
	// FilledArc is the outer-corner convention: alpha is highest at the
	// field's bottom-right corner (the circle's center) and decreases with
	// distance from it; over an ArcRadius-sized field it stays above zero.
	FilledArc ArcMode = iota
	// InvertedFilledArc negates FilledArc's inside/outside convention, used
	// for a border's inner (concave) corner.
	InvertedFilledArc
)

// BuildArcField produces a size x size quarter-circle SDF of radius
// distfield.ArcRadius under the given mode (spec §4.B).
func BuildArcField(size uint32, mode ArcMode) []byte {

	out := make([]byte, size*size*4)
	radius := float64(ArcRadius)

	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {

			dx := float64(size) - float64(x)
			dy := float64(size) - float64(y)
			dist := math.Sqrt(dx*dx+dy*dy) - radius
			scaled := (1 - dist/ArcDistanceScalingFactor) * Buffer
			alpha := clamp255(scaled)
			if mode == InvertedFilledArc {
				alpha = 255 - alpha
			}

			i := (y*size + x) * 4
			out[i+0] = 255
			out[i+1] = 255
			out[i+2] = 255
			out[i+3] = alpha
		}
	}

	return out
}

// GlyphOutputHeight applies the spec's height derivation for a rasterized
// glyph: FontSizeForRasterization - bitmapTop. This is almost certainly a
// bug inherited from the original implementation (bitmap_top is normally a
// per-glyph ascent, not something you'd subtract from a fixed rasterization
// size, and the result drops descender regions for many glyphs) — spec §9
// says to preserve it verbatim rather than silently fix it, so it is not
// "corrected" here.
func GlyphOutputHeight(bitmapTop int32) uint32 {
	h := FontSizeForRasterization - bitmapTop
	if h < 0 {
		return 0
	}
	return uint32(h)
}

// GlyphSizeInField downscales a glyph's rasterized dimensions by
// DownscaleRatio to get its target size within the SDF field (spec §3/§4.B).
func GlyphSizeInField(glyphW, glyphH uint32) Size {
	return Size{
		W: uint32(math.Round(float64(glyphW) * DownscaleRatio)),
		H: uint32(math.Round(float64(glyphH) * DownscaleRatio)),
	}
}

// FieldSize returns the full SDF field size for a glyph, with padding equal
// to half of glyphSizeInField on every side (spec §4.B).
func FieldSize(glyphSizeInField Size) Size {
	return Size{W: glyphSizeInField.W * 2, H: glyphSizeInField.H * 2}
}

func clamp255(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
