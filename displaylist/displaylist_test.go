package displaylist_test

import (
	"testing"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/au"
	"github.com/dlraster/dlraster/color"
	"github.com/dlraster/dlraster/displaylist"
	"github.com/dlraster/dlraster/distfield"
)

type fakeJobServer struct {
	submitted []assets.Description
}

func (f *fakeJobServer) RasterizeAsset(d assets.Description, input *assets.Rasterization) <-chan assets.Rasterization {
	f.submitted = append(f.submitted, d)
	ch := make(chan assets.Rasterization, 1)
	return ch
}

func TestWalkSchedulesGlyphBeforeBlurredGlyph(t *testing.T) {

	jobs := &fakeJobServer{}
	mgr := assets.NewManager(jobs)

	glyph := mgr.CreateAsset(assets.NewGlyph("f.ttf", 'S'), nil)
	blurred := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph)

	base := displaylist.BaseDisplayItem{Bounds: au.NewRect(0, 0, 100, 100)}
	list := displaylist.List{Items: []displaylist.Item{
		displaylist.NewText(base, glyph, blurred),
	}}

	if err := list.StartRasterizingAssetsAsNecessary(mgr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if glyph.StatusKind() != assets.Waiting {
		t.Fatalf("expected glyph to be Waiting, got %s", glyph.StatusKind())
	}
	// The glyph hasn't materialized yet, so the dependent must have parked
	// at WaitingForDependency rather than submitting its own job.
	if blurred.StatusKind() != assets.WaitingForDependency {
		t.Fatalf("expected blurred glyph to be WaitingForDependency, got %s", blurred.StatusKind())
	}
	if len(jobs.submitted) != 1 {
		t.Fatalf("expected exactly one job submitted (the glyph), got %d", len(jobs.submitted))
	}
}

func TestWalkSchedulesBorderArcThenInvertedArc(t *testing.T) {

	jobs := &fakeJobServer{}
	mgr := assets.NewManager(jobs)

	arc := mgr.CreateAsset(assets.NewArc(distfield.FilledArc), nil)
	invertedArc := mgr.CreateAsset(assets.NewArc(distfield.InvertedFilledArc), nil)

	base := displaylist.BaseDisplayItem{Bounds: au.NewRect(0, 0, 100, 100)}
	list := displaylist.List{Items: []displaylist.Item{
		displaylist.NewBorder(base, au.FromPx(150), color.White, au.FromPx(50), arc, invertedArc),
	}}

	if err := list.StartRasterizingAssetsAsNecessary(mgr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs.submitted) != 2 {
		t.Fatalf("expected two jobs submitted (arc, inverted arc), got %d", len(jobs.submitted))
	}
	if jobs.submitted[0].ArcMode != distfield.FilledArc {
		t.Fatalf("expected the arc asset scheduled first")
	}
	if jobs.submitted[1].ArcMode != distfield.InvertedFilledArc {
		t.Fatalf("expected the inverted arc asset scheduled second")
	}
}
