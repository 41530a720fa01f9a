package assets_test

import (
	"testing"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/distfield"
	"github.com/dlraster/dlraster/rasterr"
)

type fakeCall struct {
	Description assets.Description
	Input       *assets.Rasterization
	Ch          chan assets.Rasterization
}

type fakeJobServer struct {
	calls []fakeCall
}

func (f *fakeJobServer) RasterizeAsset(d assets.Description, input *assets.Rasterization) <-chan assets.Rasterization {
	ch := make(chan assets.Rasterization, 1)
	f.calls = append(f.calls, fakeCall{Description: d, Input: input, Ch: ch})
	return ch
}

func TestCreateAssetDedupesByDescription(t *testing.T) {

	mgr := assets.NewManager(&fakeJobServer{})

	a := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)
	b := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)
	if a != b {
		t.Fatalf("expected identical Glyph descriptions to dedup to the same asset")
	}

	c := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'T'), nil)
	if a == c {
		t.Fatalf("expected different codepoints to produce different assets")
	}
}

func TestCreateAssetDedupesBlurredGlyphByDependency(t *testing.T) {

	mgr := assets.NewManager(&fakeJobServer{})

	glyph1 := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)
	glyph2 := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'T'), nil)

	blur1 := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph1)
	blur1Again := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph1)
	blur2 := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph2)

	if blur1 != blur1Again {
		t.Fatalf("expected same sigma+dependency to dedup to the same asset")
	}
	if blur1 == blur2 {
		t.Fatalf("expected same sigma but different dependency to produce different assets")
	}
}

func asRasterr(t *testing.T, r any) *rasterr.Error {
	t.Helper()
	err, ok := r.(*rasterr.Error)
	if !ok {
		t.Fatalf("expected panic value to be *rasterr.Error, got %T (%v)", r, r)
	}
	return err
}

func TestGetRasterizationOnPendingPanics(t *testing.T) {

	mgr := assets.NewManager(&fakeJobServer{})
	a := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)

	defer func() {
		e := asRasterr(t, recover())
		if e.Kind != rasterr.InvalidStateTransition {
			t.Fatalf("expected InvalidStateTransition, got %s", e.Kind)
		}
	}()
	a.GetRasterization()
}

func TestSetAtlasHandleOnPendingPanics(t *testing.T) {

	mgr := assets.NewManager(&fakeJobServer{})
	a := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)

	defer func() {
		e := asRasterr(t, recover())
		if e.Kind != rasterr.InvalidStateTransition {
			t.Fatalf("expected InvalidStateTransition, got %s", e.Kind)
		}
	}()
	a.SetAtlasHandle(nil)
}

func TestGetAtlasHandleOnNonInAtlasPanics(t *testing.T) {

	mgr := assets.NewManager(&fakeJobServer{})
	a := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)

	defer func() {
		e := asRasterr(t, recover())
		if e.Kind != rasterr.InvalidStateTransition {
			t.Fatalf("expected InvalidStateTransition, got %s", e.Kind)
		}
	}()
	a.GetAtlasHandle()
}

func TestScheduleWithNoDependencyGoesPendingToWaitingToInMemory(t *testing.T) {

	jobs := &fakeJobServer{}
	mgr := assets.NewManager(jobs)
	a := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)

	if err := mgr.StartRasterizingAssetIfNecessary(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.StatusKind() != assets.Waiting {
		t.Fatalf("expected Waiting, got %s", a.StatusKind())
	}
	if len(jobs.calls) != 1 {
		t.Fatalf("expected exactly one job submitted, got %d", len(jobs.calls))
	}
	if jobs.calls[0].Input != nil {
		t.Fatalf("expected no dependency input for an un-derived asset")
	}

	want := assets.Rasterization{Data: []byte{1, 2, 3, 4}, Size: distfield.Size{W: 1, H: 1}}
	jobs.calls[0].Ch <- want

	got := a.GetRasterization()
	if a.StatusKind() != assets.InMemory {
		t.Fatalf("expected InMemory after GetRasterization, got %s", a.StatusKind())
	}
	if len(got.Data) != len(want.Data) || got.Size != want.Size {
		t.Fatalf("expected %+v, got %+v", want, *got)
	}

	// Scheduling an already-materialized asset is a no-op (spec §8 property 5).
	if err := mgr.StartRasterizingAssetIfNecessary(a); err != nil {
		t.Fatalf("unexpected error on re-schedule: %v", err)
	}
	if len(jobs.calls) != 1 {
		t.Fatalf("expected no additional job submitted for an InMemory asset")
	}
}

func TestScheduleDependentWhileDependencyPendingErrors(t *testing.T) {

	jobs := &fakeJobServer{}
	mgr := assets.NewManager(jobs)
	glyph := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)
	blurred := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph)

	err := mgr.StartRasterizingAssetIfNecessary(blurred)
	if err == nil {
		t.Fatalf("expected an error scheduling a dependent whose dependency is still Pending")
	}
	rerr, ok := err.(*rasterr.Error)
	if !ok || rerr.Kind != rasterr.InvalidStateTransition {
		t.Fatalf("expected InvalidStateTransition, got %v", err)
	}
}

func TestScheduleDependentWhileDependencyWaitingGoesWaitingForDependency(t *testing.T) {

	jobs := &fakeJobServer{}
	mgr := assets.NewManager(jobs)
	glyph := mgr.CreateAsset(assets.NewGlyph("a.ttf", 'S'), nil)
	blurred := mgr.CreateAsset(assets.NewBlurredGlyph(20), glyph)

	if err := mgr.StartRasterizingAssetIfNecessary(glyph); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.StartRasterizingAssetIfNecessary(blurred); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blurred.StatusKind() != assets.WaitingForDependency {
		t.Fatalf("expected WaitingForDependency, got %s", blurred.StatusKind())
	}

	// Revisiting while the dependency is still only Waiting leaves it as-is.
	if err := mgr.StartRasterizingAssetIfNecessary(blurred); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blurred.StatusKind() != assets.WaitingForDependency {
		t.Fatalf("expected WaitingForDependency to persist, got %s", blurred.StatusKind())
	}
	if len(jobs.calls) != 1 {
		t.Fatalf("expected no job submitted yet for the dependent, got %d calls", len(jobs.calls))
	}

	// Once the glyph materializes, rescheduling submits the dependent's job
	// with the glyph's rasterization as input.
	jobs.calls[0].Ch <- assets.Rasterization{Data: []byte{5, 5, 5, 5}, Size: distfield.Size{W: 1, H: 1}}
	glyph.GetRasterization()

	if err := mgr.StartRasterizingAssetIfNecessary(blurred); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blurred.StatusKind() != assets.Waiting {
		t.Fatalf("expected Waiting, got %s", blurred.StatusKind())
	}
	if len(jobs.calls) != 2 {
		t.Fatalf("expected a second job submitted, got %d", len(jobs.calls))
	}
	if jobs.calls[1].Input == nil {
		t.Fatalf("expected the dependent's job to carry the dependency's rasterization")
	}
}
