// Package atlas implements the BSP-packed GPU texture atlas (spec §4.G):
// a 1024x1024 RGBA8 texture, a blackpawn bin packer, and opaque handle
// issuance for materialized assets. Grounded on original_source/atlas.rs.
package atlas

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/dlraster/dlraster/assets"
	"github.com/dlraster/dlraster/atlashandle"
	"github.com/dlraster/dlraster/au"
	"github.com/dlraster/dlraster/internal/tga"
	"github.com/dlraster/dlraster/rasterr"
	"github.com/dlraster/dlraster/ring"
	"github.com/dlraster/dlraster/sink"
)

// Width and Height are the atlas texture's fixed dimensions (spec §3/§4.G).
const (
	Width  = 1024
	Height = 1024
)

// Priority reserves future eviction (spec §4.G: "Priority is accepted but
// unused in the core"). Retained is its only variant today.
type Priority int

const (
	// Retained marks an asset needed by the retained display list.
	Retained Priority = iota
)

// Atlas owns the packed texture and the BSP tree covering it.
type Atlas struct {
	texture uint32
	sink    sink.Texture
	root    *bin

	// Debug gates the per-upload TGA snapshot dump (spec §6 "Debug
	// artifacts"); off by default, since unconditionally writing a file per
	// upload is not something a library should do unasked (SPEC_FULL §4).
	Debug bool

	// Events is a bounded log of recent placements and snapshot writes, the
	// adapted use of the teacher's ring.Buffer[T] (DESIGN.md, "ring").
	Events *ring.Buffer[string]
}

// New creates the atlas's backing texture through s (opaque blue,
// LINEAR filtering, REPEAT wrap — spec §4.G) and an empty BSP root.
func New(s sink.Texture) *Atlas {

	texture := s.CreateTexture()
	s.BindTexture(texture)

	buffer := make([]byte, Width*Height*4)
	for i := 0; i < len(buffer); i += 4 {
		buffer[i+0], buffer[i+1], buffer[i+2], buffer[i+3] = 0, 0, 255, 255
	}
	s.TexImage2D(Width, Height, buffer)

	s.TexParameter(sink.TEXTURE_MAG_FILTER, sink.LINEAR)
	s.TexParameter(sink.TEXTURE_MIN_FILTER, sink.LINEAR)
	s.TexParameter(sink.TEXTURE_WRAP_S, sink.REPEAT)
	s.TexParameter(sink.TEXTURE_WRAP_T, sink.REPEAT)

	return &Atlas{
		texture: texture,
		sink:    s,
		root:    newBin(au.RectU{Size: au.SizeU{W: Width, H: Height}}),
		Events:  ring.NewBuffer[string](64),
	}
}

// RequireAsset materializes asset (blocking on its rasterization job if
// necessary) and packs it into the atlas, installing a handle (spec §4.G).
// A no-op if asset is already InAtlas (spec §8 property 5).
func (a *Atlas) RequireAsset(asset *assets.Asset, priority Priority) error {

	if asset.IsInAtlas() {
		return nil
	}

	rasterization := asset.GetRasterization()

	origin, ok := a.root.insert(au.SizeU{W: rasterization.Size.W, H: rasterization.Size.H})
	if !ok {
		return rasterr.New(rasterr.AtlasOutOfSpace,
			fmt.Sprintf("allocate %dx%d (priority=%d)", rasterization.Size.W, rasterization.Size.H, priority))
	}
	rect := au.RectU{Origin: origin, Size: au.SizeU{W: rasterization.Size.W, H: rasterization.Size.H}}

	if uint64(len(rasterization.Data)) < uint64(rect.Size.W)*uint64(rect.Size.H)*4 {
		panic(rasterr.New(rasterr.InvalidStateTransition, "atlas upload: rasterization data shorter than size*4"))
	}

	a.sink.BindTexture(a.texture)
	a.sink.TexSubImage2D(int32(rect.Origin.X), int32(rect.Origin.Y), int32(rect.Size.W), int32(rect.Size.H), rasterization.Data)

	a.Events.Append(fmt.Sprintf("placed %dx%d at (%d,%d)", rect.Size.W, rect.Size.H, rect.Origin.X, rect.Origin.Y))
	a.dumpSnapshotIfDebug(rasterization.Data, rect.Size)

	asset.SetAtlasHandle(&atlashandle.Handle{Rect: rect})
	return nil
}

// snapshotCounter is the process-wide monotonic TGA snapshot index (spec §9
// "Global mutable state... implement via an atomic counter").
var snapshotCounter uint64

func (a *Atlas) dumpSnapshotIfDebug(data []byte, size au.SizeU) {
	if !a.Debug {
		return
	}

	index := atomic.AddUint64(&snapshotCounter, 1) - 1
	name := fmt.Sprintf("atlas%d.tga", index)

	var buf bytes.Buffer
	if err := tga.Write(&buf, data, size); err != nil {
		log.Printf("atlas: failed to encode %s: %v", name, err)
		return
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		log.Printf("atlas: failed to write %s: %v", name, err)
		return
	}
	a.Events.Append(fmt.Sprintf("wrote %s", name))
}
