package assets

import (
	"github.com/dlraster/dlraster/rasterr"
	"github.com/google/uuid"
)

// JobServer is the subset of the job server the asset manager needs: submit
// a rasterization job and get back the response channel immediately (spec
// §4.E). Declared here, implemented by package jobserver, to keep assets
// free of a dependency on the worker-pool package.
type JobServer interface {
	RasterizeAsset(description Description, input *Rasterization) <-chan Rasterization
}

// dedupKey identifies an asset's identity for CreateAsset's dedup table
// (SPEC_FULL.md closes original_source/assets.rs's
// "TODO(pcwalton): Maintain a map of assets so we don't rasterize things
// multiple times."). Description alone is not enough for BlurredGlyph: two
// glyphs blurred with the same sigma must not collapse into one asset, so
// the dependency's identity is part of the key.
type dedupKey struct {
	description Description
	derivedFrom uuid.UUID
}

// Manager creates assets, dedupes them by description (+ dependency), and
// drives them through the status machine (spec §4.F "Asset Manager"). It
// does not itself block — the one blocking operation, GetRasterization, is
// invoked by the atlas during require_asset.
type Manager struct {
	jobs  JobServer
	byKey map[dedupKey]*Asset
}

// NewManager builds a Manager that submits rasterization jobs through jobs.
func NewManager(jobs JobServer) *Manager {
	return &Manager{
		jobs:  jobs,
		byKey: make(map[dedupKey]*Asset),
	}
}

// CreateAsset returns the asset for description (and, for BlurredGlyph,
// derivedFrom), creating one the first time this exact pair is requested
// and returning the existing asset on every subsequent call.
func (m *Manager) CreateAsset(description Description, derivedFrom *Asset) *Asset {

	key := dedupKey{description: description}
	if derivedFrom != nil {
		key.derivedFrom = derivedFrom.ID
	}

	if existing, ok := m.byKey[key]; ok {
		return existing
	}

	a := newAsset(description, derivedFrom)
	m.byKey[key] = a
	return a
}

// StartRasterizingAssetIfNecessary implements the scheduling rules of spec
// §4.D. It is a no-op unless asset is Pending or WaitingForDependency.
func (m *Manager) StartRasterizingAssetIfNecessary(asset *Asset) error {

	switch asset.status.kind {
	case Pending, WaitingForDependency:
		// fall through to scheduling below
	default:
		return nil
	}

	if asset.DerivedFrom == nil {
		asset.status = status{kind: Waiting, waitCh: m.jobs.RasterizeAsset(asset.Description, nil)}
		return nil
	}

	switch asset.DerivedFrom.status.kind {
	case Pending:
		return rasterr.New(rasterr.InvalidStateTransition,
			"start_rasterizing_asset_if_necessary: dependency is Pending; schedule it first")

	case Waiting:
		asset.status = status{kind: WaitingForDependency}
		return nil

	case WaitingForDependency:
		// leave as-is; revisited once the dependency progresses.
		return nil

	case InMemory, InAtlas:
		dep := *asset.DerivedFrom.GetRasterization()
		asset.status = status{kind: Waiting, waitCh: m.jobs.RasterizeAsset(asset.Description, &dep)}
		return nil
	}

	panic(rasterr.New(rasterr.InvalidStateTransition, "start_rasterizing_asset_if_necessary: unknown dependency status"))
}
