package jobserver_test

import (
	"testing"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/blur"
	"github.com/dlraster/dlraster/distfield"
	"github.com/dlraster/dlraster/jobserver"
)

// Arc and BlurredGlyph jobs need no font file, so they can run without a
// real TTF on disk — Glyph rasterization is exercised at the distfield
// package level instead (distfield_test.go), where BuildGlyphField is
// driven directly with synthetic bitmaps rather than a font file.

func TestRasterizeArcAssetMatchesDirectBuild(t *testing.T) {

	s := jobserver.New(2)
	defer s.Stop()

	ch := s.RasterizeAsset(assets.NewArc(distfield.FilledArc), nil)
	got := <-ch

	want := distfield.BuildArcField(distfield.ArcRadius, distfield.FilledArc)
	if len(got.Data) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got.Data))
	}
	for i := range want {
		if got.Data[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, want[i], got.Data[i])
		}
	}
}

func TestRasterizeBlurredGlyphAssetMatchesDirectBlur(t *testing.T) {

	s := jobserver.New(2)
	defer s.Stop()

	input := assets.Rasterization{
		Data: distfield.BuildArcField(distfield.ArcRadius, distfield.FilledArc),
		Size: distfield.Size{W: distfield.ArcRadius, H: distfield.ArcRadius},
	}

	ch := s.RasterizeAsset(assets.NewBlurredGlyph(2), &input)
	got := <-ch

	want := blur.Apply(input.Data, input.Size, 2)
	if len(got.Data) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got.Data))
	}
	for i := range want {
		if got.Data[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, want[i], got.Data[i])
		}
	}
}

func TestRasterizeManyJobsAcrossWorkers(t *testing.T) {

	s := jobserver.New(4)
	defer s.Stop()

	const n = 16
	chans := make([]<-chan assets.Rasterization, n)
	for i := 0; i < n; i++ {
		mode := distfield.FilledArc
		if i%2 == 0 {
			mode = distfield.InvertedFilledArc
		}
		chans[i] = s.RasterizeAsset(assets.NewArc(mode), nil)
	}

	for i := 0; i < n; i++ {
		got := <-chans[i]
		mode := distfield.FilledArc
		if i%2 == 0 {
			mode = distfield.InvertedFilledArc
		}
		want := distfield.BuildArcField(distfield.ArcRadius, mode)
		if len(got.Data) != len(want) {
			t.Fatalf("job %d: expected %d bytes, got %d", i, len(want), len(got.Data))
		}
	}
}
