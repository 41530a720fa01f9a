// Command dlrastdemo exercises the full rasterizer pipeline end to end —
// display list, asset scheduling, atlas packing, batching, and a draw
// context — against an in-memory recording Sink (see SPEC_FULL.md §3),
// since this module treats windowing/GL-context bootstrap as out of
// scope. Grounded on original_source/demo.rs's two-SolidColor-rect scene.
package main

import (
	"log"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/atlas"
	"github.com/dlraster/dlraster/au"
	"github.com/dlraster/dlraster/batch"
	"github.com/dlraster/dlraster/color"
	"github.com/dlraster/dlraster/displaylist"
	"github.com/dlraster/dlraster/gpu"
	"github.com/dlraster/dlraster/jobserver"
)

const (
	renderTargetWidth  = 800
	renderTargetHeight = 600
)

func main() {
	jobs := jobserver.New(0)
	defer jobs.Stop()

	mgr := assets.NewManager(jobs)

	list := displaylist.List{Items: []displaylist.Item{
		displaylist.NewSolidColor(
			displaylist.BaseDisplayItem{
				Bounds: au.NewRect(60, 60, 240, 240),
				Clip:   displaylist.ClippingRegion{Main: au.NewRect(60, 100, 240, 160)},
			},
			color.New(128, 0, 128, 255),
		),
		displaylist.NewSolidColor(
			displaylist.BaseDisplayItem{
				Bounds: au.NewRect(150, 150, 240, 240),
				Clip:   displaylist.ClippingRegion{Main: au.NewRect(170, 180, 200, 160)},
			},
			color.White,
		),
	}}

	if err := list.StartRasterizingAssetsAsNecessary(mgr); err != nil {
		log.Fatalf("scheduling display list: %v", err)
	}

	s := newRecordingSink()
	atl := atlas.New(s)

	ba := batch.New()
	for _, item := range list.Items {
		if err := ba.Add(renderTargetWidth, renderTargetHeight, mgr, atl, item); err != nil {
			log.Fatalf("batching display list: %v", err)
		}
	}
	batches := ba.Finish()

	drawCtx, err := gpu.NewDrawContext(s, 0)
	if err != nil {
		log.Fatalf("compiling shaders: %v", err)
	}

	drawCtx.InitGLState()
	drawCtx.Clear()
	for _, b := range batches {
		drawCtx.DrawBatch(b)
	}
	drawCtx.Finish()

	log.Printf("dlrastdemo: drew %d batch(es), %d draw call(s)", len(batches), s.draws)
}
