// Package batch implements the batcher (spec §4.I): it walks a display
// list, materializing each item's assets into the atlas, and translates
// item geometry plus atlas locations into five parallel vertex attribute
// arrays a fixed two-stage shader can consume in one indexed draw.
// Grounded on original_source/batch.rs and original_source/context.rs,
// generalized from the original's single always-present Context struct
// into explicit parameters, since the render target size and asset
// manager/atlas no longer need to live behind one shared handle in Go.
package batch

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/dlraster/dlraster/assert"
	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/atlas"
	"github.com/dlraster/dlraster/au"
	"github.com/dlraster/dlraster/color"
	"github.com/dlraster/dlraster/displaylist"
	"github.com/dlraster/dlraster/distfield"
)

// NearDepthValue and FarDepthValue are the two z-planes every vertex lands
// on: all real geometry at Near, the one full-viewport clear quad at Far
// (spec §4.I, §4.J).
const (
	NearDepthValue float32 = -0.5
	FarDepthValue  float32 = 0.5
)

// bufferFrac and gamma feed the fragment shader's smoothstep edge (spec §6,
// §4.I). gamma is 0.01 per spec scenario S2; buffer_gamma is left at (0,0)
// ("dummy") for anything not sampling an SDF-encoded edge.
var (
	bufferFrac = float32(distfield.Buffer) / 255.0
	gammaValue = float32(0.01)
)

// Batch is the five parallel arrays the draw context uploads as vertex
// attributes and issues one indexed draw over (spec §4.I). Vertices and
// the two 2-component attribute arrays use gglm's vector types, the same
// way teacher code builds every position/UV it hands to the GPU
// (glyphs.go's GlyphRend construction, ansi.go's gglm.Vec4 colors).
type Batch struct {
	Vertices     []gglm.Vec3
	Colors       []color.Color
	BufferGamma  []gglm.Vec2
	TextureCoord []gglm.Vec2
	Elements     []uint32
}

// VertexCount reports the number of vertices accumulated so far (spec §8
// property 6 is checked against this and len(Elements)).
func (b *Batch) VertexCount() int { return len(b.Vertices) }

func (b *Batch) addVerticesForRect(targetWidthPx, targetHeightPx int32, rect au.Rect, z float32) {
	ndc := rect.ToNDC(targetWidthPx, targetHeightPx)
	onePixelX := 1.0 / float32(targetWidthPx)
	onePixelY := 1.0 / float32(targetHeightPx)

	maxX := ndc.MaxX() - onePixelX
	maxY := ndc.MaxY() - onePixelY

	b.Vertices = append(b.Vertices,
		*gglm.NewVec3(ndc.Origin.X, -ndc.Origin.Y, z),
		*gglm.NewVec3(maxX, -ndc.Origin.Y, z),
		*gglm.NewVec3(ndc.Origin.X, -maxY, z),
		*gglm.NewVec3(maxX, -maxY, z),
	)
}

func (b *Batch) addSolidColors(count int, c color.Color) {
	for i := 0; i < count; i++ {
		b.Colors = append(b.Colors, c)
	}
}

func (b *Batch) addBufferGamma(count int, buffer, gamma float32) {
	for i := 0; i < count; i++ {
		b.BufferGamma = append(b.BufferGamma, *gglm.NewVec2(buffer, gamma))
	}
}

func (b *Batch) addDummyBufferGamma(count int) {
	b.addBufferGamma(count, 0, 0)
}

func (b *Batch) addTextureCoordsForRect(rect au.RectU) {
	atlasW := float32(atlas.Width)
	atlasH := float32(atlas.Height)
	onePixelX := 1.0 / atlasW
	onePixelY := 1.0 / atlasH

	originX := (float32(rect.Origin.X) + 0.5) / atlasW
	originY := (float32(rect.Origin.Y) + 0.5) / atlasH
	sizeW := float32(rect.Size.W) / atlasW
	sizeH := float32(rect.Size.H) / atlasH

	maxX := originX + sizeW - onePixelX
	maxY := originY + sizeH - onePixelY

	b.TextureCoord = append(b.TextureCoord,
		*gglm.NewVec2(originX, originY),
		*gglm.NewVec2(maxX, originY),
		*gglm.NewVec2(originX, maxY),
		*gglm.NewVec2(maxX, maxY),
	)
}

func (b *Batch) addDummyTextureCoords(count int) {
	for i := 0; i < count; i++ {
		b.TextureCoord = append(b.TextureCoord, *gglm.NewVec2(0, 0))
	}
}

// addElementsForClockwiseWoundRect indexes the most recently appended four
// vertices (top_left, top_right, bottom_left, bottom_right, in that append
// order) as two clockwise-wound triangles (spec §4.I, used only by the
// clear-quad and clip-quad paths).
func (b *Batch) addElementsForClockwiseWoundRect() {
	bottomRight := uint32(len(b.Vertices)) - 1
	bottomLeft := bottomRight - 1
	topRight := bottomLeft - 1
	topLeft := topRight - 1
	b.Elements = append(b.Elements,
		topLeft, topRight, bottomLeft,
		bottomLeft, topRight, bottomRight,
	)
}

// addElementsForCounterclockwiseWoundRect is the winding used by every
// real (non-clear, non-clip) primitive (spec §4.I, scenario S1).
func (b *Batch) addElementsForCounterclockwiseWoundRect() {
	bottomRight := uint32(len(b.Vertices)) - 1
	bottomLeft := bottomRight - 1
	topRight := bottomLeft - 1
	topLeft := topRight - 1
	b.Elements = append(b.Elements,
		topLeft, bottomLeft, topRight,
		topRight, bottomLeft, bottomRight,
	)
}

func (b *Batch) addSolidColorRect(targetW, targetH int32, rect au.Rect, c color.Color) {
	b.addVerticesForRect(targetW, targetH, rect, NearDepthValue)
	b.addSolidColors(4, c)
	b.addDummyBufferGamma(4)
	b.addDummyTextureCoords(4)
	b.addElementsForCounterclockwiseWoundRect()
}

// addText emits one textured quad for bounds, either from glyphAsset's own
// atlas rect (unblurred — the SDF buffer/gamma edge applies) or from
// blurredAsset's rect (blurred — the edge softness is already baked into
// the blurred field, so buffer_gamma is dummy). Materializes the glyph
// asset into atl and, when blurred, the blurred asset after it, which may
// block (spec §5 "suspension points").
func (b *Batch) addText(targetW, targetH int32, atl *atlas.Atlas, mgr *assets.Manager, bounds au.Rect, glyphAsset, blurredAsset *assets.Asset) error {

	if blurredAsset == nil {
		if err := atl.RequireAsset(glyphAsset, atlas.Retained); err != nil {
			return err
		}
		handle := glyphAsset.GetAtlasHandle()

		b.addVerticesForRect(targetW, targetH, bounds, NearDepthValue)
		b.addSolidColors(4, color.TransparentBlack)
		b.addBufferGamma(4, bufferFrac, gammaValue)
		b.addTextureCoordsForRect(handle.Rect)
		b.addElementsForCounterclockwiseWoundRect()
		return nil
	}

	// The blurred job needs the glyph's rasterization as input, so the glyph
	// is materialized first (blocking on it if it is still Waiting), and only
	// then is the dependent scheduled (original_source/batch.rs's TODO: "We
	// should have a service that automatically starts rasterizing
	// dependencies so we don't have to block on it here!" — still true).
	if err := atl.RequireAsset(glyphAsset, atlas.Retained); err != nil {
		return err
	}
	if err := mgr.StartRasterizingAssetIfNecessary(blurredAsset); err != nil {
		return err
	}
	if err := atl.RequireAsset(blurredAsset, atlas.Retained); err != nil {
		return err
	}
	handle := blurredAsset.GetAtlasHandle()

	b.addVerticesForRect(targetW, targetH, bounds, NearDepthValue)
	b.addSolidColors(4, color.TransparentBlack)
	b.addDummyBufferGamma(4)
	b.addTextureCoordsForRect(handle.Rect)
	b.addElementsForCounterclockwiseWoundRect()
	return nil
}

// addBorder emits the five sub-quads of a rounded border (spec §4.I,
// scenario S4): outer-corner (arc-textured), top edge, center band, left
// edge (all three solid), inner-corner (inverted-arc-textured). All five
// are counter-clockwise wound.
func (b *Batch) addBorder(targetW, targetH int32, atl *atlas.Atlas, bounds au.Rect, width, radius au.Au, c color.Color, arcAsset, invertedArcAsset *assets.Asset) error {

	if err := atl.RequireAsset(arcAsset, atlas.Retained); err != nil {
		return err
	}
	if err := atl.RequireAsset(invertedArcAsset, atlas.Retained); err != nil {
		return err
	}

	arcHandle := arcAsset.GetAtlasHandle()
	invertedArcHandle := invertedArcAsset.GetAtlasHandle()

	// 1: outer corner, textured with the arc SDF.
	outerCorner := au.Rect{Origin: bounds.Origin, Size: au.Size{W: radius, H: radius}}
	b.addVerticesForRect(targetW, targetH, outerCorner, NearDepthValue)
	b.addTextureCoordsForRect(arcCornerRect(arcHandle.Rect))
	b.addSolidColors(4, color.TransparentBlack)
	b.addBufferGamma(4, bufferFrac, gammaValue)
	b.addElementsForCounterclockwiseWoundRect()

	// 2: top edge, solid.
	topEdge := au.Rect{
		Origin: au.Point{X: bounds.Origin.X + radius, Y: bounds.Origin.Y},
		Size:   au.Size{W: width, H: radius},
	}
	b.addVerticesForRect(targetW, targetH, topEdge, NearDepthValue)
	b.addDummyTextureCoords(4)
	b.addSolidColors(4, c)
	b.addDummyBufferGamma(4)
	b.addElementsForCounterclockwiseWoundRect()

	// 3: center band, solid.
	centerBand := au.Rect{
		Origin: au.Point{X: bounds.Origin.X, Y: bounds.Origin.Y + radius},
		Size:   au.Size{W: width + radius, H: width - radius},
	}
	b.addVerticesForRect(targetW, targetH, centerBand, NearDepthValue)
	b.addDummyTextureCoords(4)
	b.addSolidColors(4, c)
	b.addDummyBufferGamma(4)
	b.addElementsForCounterclockwiseWoundRect()

	// 4: left edge, solid.
	leftEdge := au.Rect{
		Origin: au.Point{X: bounds.Origin.X, Y: bounds.Origin.Y + width},
		Size:   au.Size{W: width, H: radius},
	}
	b.addVerticesForRect(targetW, targetH, leftEdge, NearDepthValue)
	b.addDummyTextureCoords(4)
	b.addSolidColors(4, c)
	b.addDummyBufferGamma(4)
	b.addElementsForCounterclockwiseWoundRect()

	// 5: inner corner, textured with the inverted-arc SDF.
	innerCorner := au.Rect{
		Origin: au.Point{X: bounds.Origin.X + width, Y: bounds.Origin.Y + width},
		Size:   au.Size{W: radius, H: radius},
	}
	b.addVerticesForRect(targetW, targetH, innerCorner, NearDepthValue)
	b.addTextureCoordsForRect(arcCornerRect(invertedArcHandle.Rect))
	b.addSolidColors(4, color.TransparentBlack)
	b.addBufferGamma(4, bufferFrac, gammaValue)
	b.addElementsForCounterclockwiseWoundRect()

	return nil
}

// arcCornerRect picks the bottom-right ArcRadius x ArcRadius corner of an
// arc asset's atlas rect (a direct port of batch.rs's add_border: the arc
// SDF is already exactly ArcRadius square, so this is an identity in the
// common case but preserves the original's corner-anchoring logic if an
// atlas ever hands back a larger region).
func arcCornerRect(full au.RectU) au.RectU {
	br := full.BottomRight()
	return au.RectU{
		Origin: au.PointU{X: br.X - distfield.ArcRadius, Y: br.Y - distfield.ArcRadius},
		Size:   au.SizeU{W: distfield.ArcRadius, H: distfield.ArcRadius},
	}
}

// clearClip appends the full-viewport clear quad (dead in the core per
// SPEC_FULL §5's Open Question on clipping, kept for parity with
// original_source/batch.rs and any future caller that wants an explicit
// clear pass distinct from the GL clear the draw context issues).
func (b *Batch) clearClip(targetW, targetH int32) {
	rect := au.Rect{Origin: au.Point{}, Size: au.Size{W: au.FromPx(targetW), H: au.FromPx(targetH)}}
	b.addVerticesForRect(targetW, targetH, rect, FarDepthValue)
	b.addSolidColors(4, color.White)
	b.addDummyBufferGamma(4)
	b.addDummyTextureCoords(4)
	b.addElementsForClockwiseWoundRect()
}

// addClip appends a transparent-green debug quad over clip.Main (dead in
// the core; same status as clearClip above).
func (b *Batch) addClip(targetW, targetH int32, clip displaylist.ClippingRegion) {
	b.addVerticesForRect(targetW, targetH, clip.Main, NearDepthValue)
	b.addSolidColors(4, color.TransparentGreen)
	b.addDummyBufferGamma(4)
	b.addDummyTextureCoords(4)
	b.addElementsForClockwiseWoundRect()
}

// Batcher accumulates one pending Batch across a display-list walk.
type Batcher struct {
	pending Batch
}

// New returns an empty Batcher.
func New() *Batcher {
	return &Batcher{}
}

// Add materializes item's assets into atl (for a blurred text item, the
// glyph first, then the blurred asset scheduled through mgr) and appends
// its geometry to the pending
// batch. targetWidthPx/targetHeightPx is the render target size in pixels.
func (ba *Batcher) Add(targetWidthPx, targetHeightPx int32, mgr *assets.Manager, atl *atlas.Atlas, item displaylist.Item) error {

	vertsBefore, elemsBefore := len(ba.pending.Vertices), len(ba.pending.Elements)
	wantVerts, wantElems := 4, 6
	if item.Kind == displaylist.BorderItem {
		wantVerts, wantElems = 20, 30
	}

	var err error
	switch item.Kind {
	case displaylist.SolidColorItem:
		ba.pending.addSolidColorRect(targetWidthPx, targetHeightPx, item.Base.Bounds, item.SolidColor.Color)

	case displaylist.TextItem:
		err = ba.pending.addText(targetWidthPx, targetHeightPx, atl, mgr,
			item.Base.Bounds, item.Text.GlyphAsset, item.Text.BlurredGlyphAsset)

	case displaylist.BorderItem:
		border := item.Border
		err = ba.pending.addBorder(targetWidthPx, targetHeightPx, atl,
			item.Base.Bounds, border.Width, border.Radius, border.Color,
			border.ArcAsset, border.InvertedArcAsset)
	}
	if err != nil {
		return err
	}

	// spec §8 property 6: every item emits exactly 4 vertices/6 indices, or
	// (border only) 20 vertices/30 indices.
	assert.T(len(ba.pending.Vertices)-vertsBefore == wantVerts, "batch: item emitted %d vertices, want %d", len(ba.pending.Vertices)-vertsBefore, wantVerts)
	assert.T(len(ba.pending.Elements)-elemsBefore == wantElems, "batch: item emitted %d indices, want %d", len(ba.pending.Elements)-elemsBefore, wantElems)
	return nil
}

// Finish returns the accumulated batches (today, always exactly one — spec
// §4.I never splits a frame across multiple draws) and resets the Batcher.
func (ba *Batcher) Finish() []Batch {
	out := []Batch{ba.pending}
	ba.pending = Batch{}
	return out
}
