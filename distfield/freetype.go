package distfield

import (
	"image"
	"os"

	"github.com/dlraster/dlraster/rasterr"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// GlyphSource is the font sink boundary from spec §6: given a font path and
// a codepoint, it returns the rasterized glyph bitmap and the FreeType
// bitmap_top value the downstream height derivation needs.
type GlyphSource interface {
	Rasterize(fontPath string, codepoint rune) (bitmap Bitmap, bitmapTop int32, err error)
}

// FreetypeGlyphSource rasterizes glyphs with golang/freetype's pure-Go
// truetype rasterizer, the same library the teacher uses in
// glyphs/font_atlas.go. It keeps one parsed *truetype.Font per path, the
// per-thread face cache spec §4.E and §9 require — callers must not share
// a FreetypeGlyphSource across goroutines; the job server gives each
// worker its own instance.
type FreetypeGlyphSource struct {
	fonts map[string]*truetype.Font
}

// NewFreetypeGlyphSource builds an empty, single-goroutine-owned glyph source.
func NewFreetypeGlyphSource() *FreetypeGlyphSource {
	return &FreetypeGlyphSource{fonts: make(map[string]*truetype.Font)}
}

func (s *FreetypeGlyphSource) loadFont(fontPath string) (*truetype.Font, error) {

	if f, ok := s.fonts[fontPath]; ok {
		return f, nil
	}

	fBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, rasterr.Wrap(rasterr.FontLoadError, "read "+fontPath, err)
	}

	f, err := truetype.Parse(fBytes)
	if err != nil {
		return nil, rasterr.Wrap(rasterr.FontLoadError, "parse "+fontPath, err)
	}

	s.fonts[fontPath] = f
	return f, nil
}

// Rasterize renders codepoint at FontSizeForRasterization/FontDPI with no
// hinting (matching the teacher's subPixelX/subPixelY==64, hinting==
// font.HintingNone setup in main.go), and reports the bitmap and its
// bitmap_top (the FreeType distance from baseline to the top of the glyph
// bitmap).
func (s *FreetypeGlyphSource) Rasterize(fontPath string, codepoint rune) (Bitmap, int32, error) {

	f, err := s.loadFont(fontPath)
	if err != nil {
		return Bitmap{}, 0, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    FontSizeForRasterization,
		DPI:     FontDPI,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	dot := fixed.P(0, FontSizeForRasterization)
	dr, mask, maskp, _, ok := face.Glyph(dot, codepoint)
	if !ok {
		return Bitmap{}, 0, rasterr.Wrap(rasterr.FontLoadError, "load glyph", os.ErrNotExist)
	}

	width := uint32(dr.Dx())
	realHeight := uint32(dr.Dy())
	bitmapTop := int32(dot.Y.Round()) - dr.Min.Y

	// spec §9: the glyph's reported height is FontSizeForRasterization -
	// bitmapTop, not dr.Dy() — preserved verbatim even though it is
	// virtually never equal to the real rendered bitmap height. Rows beyond
	// what FreeType actually rendered are left zero ("outside"), so the
	// quirk changes the shape of the resulting field without reading past
	// the real bitmap.
	reportedHeight := GlyphOutputHeight(bitmapTop)
	copyRows := realHeight
	if copyRows > reportedHeight {
		copyRows = reportedHeight
	}

	data := make([]byte, width*reportedHeight)
	for y := uint32(0); y < copyRows; y++ {
		for x := uint32(0); x < width; x++ {
			data[y*width+x] = maskAlphaAt(mask, maskp, int(x), int(y))
		}
	}

	return Bitmap{Data: data, Width: width, Height: reportedHeight}, bitmapTop, nil
}

func maskAlphaAt(mask image.Image, maskp image.Point, x, y int) byte {
	_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
	return byte(a >> 8)
}
