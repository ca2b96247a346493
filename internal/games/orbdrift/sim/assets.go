package sim

import "errors"

// AssetHandle is an opaque visual reference. The simulation never looks inside it.
type AssetHandle string

// PlaceholderAsset is attached to entities whose visual could not be resolved.
const PlaceholderAsset AssetHandle = "placeholder"

// ErrAssetMissing is returned by providers that cannot resolve a kind.
var ErrAssetMissing = errors.New("sim: asset missing")

// AssetProvider resolves visuals for entities.
// Every handle acquired for an entity is released when the entity leaves the store.
type AssetProvider interface {
	Acquire(kind Kind) (AssetHandle, error)
	Release(handle AssetHandle)
}

// kindAssets is the provider used when none is configured.
type kindAssets struct{}

func (kindAssets) Acquire(kind Kind) (AssetHandle, error) {
	if !kind.Valid() {
		return "", ErrAssetMissing
	}
	return AssetHandle(kind.String()), nil
}

func (kindAssets) Release(AssetHandle) {}
