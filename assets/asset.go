package assets

import (
	"fmt"

	"github.com/dlraster/dlraster/atlashandle"
	"github.com/dlraster/dlraster/rasterr"
	"github.com/google/uuid"
)

// StatusKind is one of the five states an Asset's rasterization can be in
// (spec §4.D).
type StatusKind int

const (
	Pending StatusKind = iota
	Waiting
	WaitingForDependency
	InMemory
	InAtlas
)

func (k StatusKind) String() string {
	switch k {
	case Pending:
		return "Pending"
	case Waiting:
		return "Waiting"
	case WaitingForDependency:
		return "WaitingForDependency"
	case InMemory:
		return "InMemory"
	case InAtlas:
		return "InAtlas"
	default:
		return "UnknownStatus"
	}
}

// status is the tagged-union payload for StatusKind: only the fields valid
// for the current kind are populated (spec §9 "tagged variants... implement
// as tagged unions").
type status struct {
	kind   StatusKind
	waitCh <-chan Rasterization
	raster Rasterization
	handle *atlashandle.Handle
}

// Asset is an owned record of a description, an optional dependency, and
// its current rasterization status (spec §3 "Asset"). Asset methods are
// main-thread-only (spec §5 "shared-resource policy") — nothing here is
// safe to call concurrently.
type Asset struct {
	ID          uuid.UUID
	Description Description
	// DerivedFrom is non-nil exactly for BlurredGlyph assets (spec §3
	// invariant: "A BlurredGlyph always has derived_from = Some(glyph_asset);
	// others have None").
	DerivedFrom *Asset

	status status
}

func newAsset(description Description, derivedFrom *Asset) *Asset {
	return &Asset{
		ID:          uuid.New(),
		Description: description,
		DerivedFrom: derivedFrom,
		status:      status{kind: Pending},
	}
}

// StatusKind reports the asset's current state.
func (a *Asset) StatusKind() StatusKind { return a.status.kind }

// IsPending reports whether the asset has not yet been scheduled.
func (a *Asset) IsPending() bool { return a.status.kind == Pending }

// IsInAtlas reports whether the asset currently owns a live atlas handle.
func (a *Asset) IsInAtlas() bool { return a.status.kind == InAtlas }

// GetRasterization returns the asset's materialized rasterization,
// performing the one blocking receive the whole pipeline has (spec §5
// "suspension points") if the asset is Waiting. Illegal on Pending or
// WaitingForDependency (spec §4.D).
func (a *Asset) GetRasterization() *Rasterization {
	switch a.status.kind {
	case Pending, WaitingForDependency:
		panic(rasterr.New(rasterr.InvalidStateTransition,
			fmt.Sprintf("get_rasterization on %s asset", a.status.kind)))

	case InMemory, InAtlas:
		return &a.status.raster

	case Waiting:
		r, ok := <-a.status.waitCh
		if !ok {
			panic(rasterr.New(rasterr.WorkerChannelClosed, "get_rasterization: worker channel closed"))
		}
		a.status = status{kind: InMemory, raster: r}
		return &a.status.raster
	}

	panic(rasterr.New(rasterr.InvalidStateTransition, "get_rasterization: unknown status kind"))
}

// SetAtlasHandle installs h and transitions the asset to InAtlas. Legal
// from InMemory (first upload) or InAtlas (a repack moving the handle);
// illegal otherwise (spec §4.D).
func (a *Asset) SetAtlasHandle(h *atlashandle.Handle) {
	switch a.status.kind {
	case Pending, Waiting, WaitingForDependency:
		panic(rasterr.New(rasterr.InvalidStateTransition,
			fmt.Sprintf("set_atlas_handle on %s asset", a.status.kind)))

	case InMemory, InAtlas:
		a.status.kind = InAtlas
		a.status.handle = h
	}
}

// GetAtlasHandle returns the asset's atlas handle. Illegal on anything but
// InAtlas (spec §4.D).
func (a *Asset) GetAtlasHandle() *atlashandle.Handle {
	if a.status.kind != InAtlas {
		panic(rasterr.New(rasterr.InvalidStateTransition,
			fmt.Sprintf("get_atlas_handle on %s asset", a.status.kind)))
	}
	return a.status.handle
}
