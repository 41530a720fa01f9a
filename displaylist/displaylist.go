// Package displaylist implements the immutable display-list model of spec
// §4.H: an ordered sequence of solid-color, text, and border items sharing
// references to assets. Grounded on original_source/display_list.rs,
// generalized with the Border variant and blur/arc asset references the
// original (single-Glyph) version didn't have.
package displaylist

import (
	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/au"
	"github.com/dlraster/dlraster/color"
)

// ClippingRegion is the axis-aligned clip rect every item carries (spec
// §4.H). The batcher's clip vertex path is dead code in core (spec §9 /
// SPEC_FULL §5 Open Question: "Clipping"), but the field survives on every
// item the way the original always carried one.
type ClippingRegion struct {
	Main au.Rect
}

// BaseDisplayItem is the data every display item variant shares (spec
// §4.H).
type BaseDisplayItem struct {
	Bounds au.Rect
	Clip   ClippingRegion
}

// Kind identifies which DisplayItem variant an item holds.
type Kind int

const (
	SolidColorItem Kind = iota
	TextItem
	BorderItem
)

// Item is the closed DisplayItem sum (spec §4.H, §9 "tagged variants").
// Exactly one of the variant-specific struct pointers below is non-nil,
// selected by Kind.
type Item struct {
	Kind Kind
	Base BaseDisplayItem

	SolidColor *SolidColorDisplayItem
	Text       *TextDisplayItem
	Border     *BorderDisplayItem
}

// SolidColorDisplayItem fills Base.Bounds with a flat color.
type SolidColorDisplayItem struct {
	Color color.Color
}

// TextDisplayItem draws one glyph, optionally blurred.
type TextDisplayItem struct {
	GlyphAsset        *assets.Asset
	BlurredGlyphAsset *assets.Asset // nil unless the text item is blurred
}

// BorderDisplayItem draws a rounded border using an arc SDF for its corners
// (spec §4.H/§4.I).
type BorderDisplayItem struct {
	Width            au.Au
	Color            color.Color
	Radius           au.Au
	ArcAsset         *assets.Asset
	InvertedArcAsset *assets.Asset
}

// NewSolidColor builds a SolidColor item.
func NewSolidColor(base BaseDisplayItem, c color.Color) Item {
	return Item{Kind: SolidColorItem, Base: base, SolidColor: &SolidColorDisplayItem{Color: c}}
}

// NewText builds a Text item. blurredGlyphAsset may be nil.
func NewText(base BaseDisplayItem, glyphAsset, blurredGlyphAsset *assets.Asset) Item {
	return Item{Kind: TextItem, Base: base, Text: &TextDisplayItem{GlyphAsset: glyphAsset, BlurredGlyphAsset: blurredGlyphAsset}}
}

// NewBorder builds a Border item.
func NewBorder(base BaseDisplayItem, width au.Au, c color.Color, radius au.Au, arcAsset, invertedArcAsset *assets.Asset) Item {
	return Item{
		Kind: BorderItem,
		Base: base,
		Border: &BorderDisplayItem{
			Width: width, Color: c, Radius: radius,
			ArcAsset: arcAsset, InvertedArcAsset: invertedArcAsset,
		},
	}
}

// List is an ordered sequence of items; order is painter's-algorithm
// z-order (spec §3).
type List struct {
	Items []Item
}

// StartRasterizingAssetsAsNecessary walks the list in order, scheduling
// every item's assets through mgr (spec §4.D "Display-list walk"): for Text
// items, the glyph asset first, then the blurred-glyph asset if present;
// for Border items, the arc asset then the inverted-arc asset. One pass is
// sufficient — see §4.D's note on dependency ordering.
//
// This method lives on List rather than on assets.Manager (as
// original_source/assets.rs's method does on AssetManager) to avoid a
// displaylist<->assets import cycle, since Item holds *assets.Asset
// references.
func (l *List) StartRasterizingAssetsAsNecessary(mgr *assets.Manager) error {
	for _, item := range l.Items {
		switch item.Kind {
		case TextItem:
			if err := mgr.StartRasterizingAssetIfNecessary(item.Text.GlyphAsset); err != nil {
				return err
			}
			if item.Text.BlurredGlyphAsset != nil {
				if err := mgr.StartRasterizingAssetIfNecessary(item.Text.BlurredGlyphAsset); err != nil {
					return err
				}
			}

		case BorderItem:
			if err := mgr.StartRasterizingAssetIfNecessary(item.Border.ArcAsset); err != nil {
				return err
			}
			if err := mgr.StartRasterizingAssetIfNecessary(item.Border.InvertedArcAsset); err != nil {
				return err
			}
		}
	}
	return nil
}
