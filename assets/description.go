// Package assets implements the asset description tagged union and the
// five-state rasterization status machine of spec §3/§4.D, grounded on
// original_source/assets.rs generalized from its single Glyph variant to
// Glyph/BlurredGlyph/Arc.
package assets

import (
	"github.com/dlraster/dlraster/blur"
	"github.com/dlraster/dlraster/distfield"
	"github.com/dlraster/dlraster/rasterr"
)

// Kind identifies which AssetDescription variant a Description holds.
type Kind int

const (
	Glyph Kind = iota
	BlurredGlyph
	Arc
)

func (k Kind) String() string {
	switch k {
	case Glyph:
		return "Glyph"
	case BlurredGlyph:
		return "BlurredGlyph"
	case Arc:
		return "Arc"
	default:
		return "UnknownKind"
	}
}

// Description is the closed AssetDescription sum (spec §3). It is kept
// comparable (no pointers/slices) so it can key the manager's dedup map
// directly — see Manager.CreateAsset.
type Description struct {
	Kind Kind

	// Glyph fields.
	FontPath  string
	Codepoint rune

	// BlurredGlyph fields.
	Sigma float32

	// Arc fields.
	ArcMode distfield.ArcMode
}

// NewGlyph builds a Glyph description.
func NewGlyph(fontPath string, codepoint rune) Description {
	return Description{Kind: Glyph, FontPath: fontPath, Codepoint: codepoint}
}

// NewBlurredGlyph builds a BlurredGlyph description. It always depends on a
// Glyph asset's rasterization (spec §3 invariant); the dependency is
// recorded on the owning Asset, not the Description itself.
func NewBlurredGlyph(sigma float32) Description {
	return Description{Kind: BlurredGlyph, Sigma: sigma}
}

// NewArc builds an Arc description.
func NewArc(mode distfield.ArcMode) Description {
	return Description{Kind: Arc, ArcMode: mode}
}

// Rasterize executes the description's rasterization job (spec §4.E step 1:
// "Computes description.rasterize(context, optional_input)"). glyphs is the
// worker's thread-local font source; input is the dependency's
// rasterization, required for BlurredGlyph and nil otherwise.
func (d Description) Rasterize(glyphs distfield.GlyphSource, input *Rasterization) (Rasterization, error) {
	switch d.Kind {

	case Glyph:
		bitmap, _, err := glyphs.Rasterize(d.FontPath, d.Codepoint)
		if err != nil {
			return Rasterization{}, err
		}
		sizeInField := distfield.GlyphSizeInField(bitmap.Width, bitmap.Height)
		fieldSize := distfield.FieldSize(sizeInField)
		data := distfield.BuildGlyphField(bitmap, sizeInField, fieldSize)
		return Rasterization{Data: data, Size: distfield.Size{W: fieldSize.W, H: fieldSize.H}}, nil

	case BlurredGlyph:
		if input == nil {
			return Rasterization{}, rasterr.New(rasterr.InvalidStateTransition, "rasterize BlurredGlyph: no dependency input")
		}
		data := blur.Apply(input.Data, input.Size, float64(d.Sigma))
		return Rasterization{Data: data, Size: input.Size}, nil

	case Arc:
		data := distfield.BuildArcField(distfield.ArcRadius, d.ArcMode)
		return Rasterization{Data: data, Size: distfield.Size{W: distfield.ArcRadius, H: distfield.ArcRadius}}, nil
	}

	panic(rasterr.New(rasterr.InvalidStateTransition, "rasterize: unknown description kind"))
}

// Rasterization is the immutable RGBA8 SDF result of rasterizing a
// Description (spec §3 "AssetRasterization").
type Rasterization struct {
	Data []byte
	Size distfield.Size
}
