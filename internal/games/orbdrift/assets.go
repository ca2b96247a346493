package orbdrift

import (
	"fmt"

	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
	"github.com/vovakirdan/orbdrift/internal/registry"
)

// ThemeAssets resolves entity visuals from a glyph theme.
// Handles have the form "theme:kind" and are reference counted.
type ThemeAssets struct {
	theme    registry.Theme
	glyphs   map[sim.AssetHandle]registry.Glyph
	live     map[sim.AssetHandle]int
	acquired int
	released int
}

// NewThemeAssets creates a provider for theme.
func NewThemeAssets(theme registry.Theme) *ThemeAssets {
	return &ThemeAssets{
		theme:  theme,
		glyphs: make(map[sim.AssetHandle]registry.Glyph),
		live:   make(map[sim.AssetHandle]int),
	}
}

// Acquire implements sim.AssetProvider.
func (a *ThemeAssets) Acquire(kind sim.Kind) (sim.AssetHandle, error) {
	g, ok := a.theme.Glyph(kind)
	if !ok {
		return "", fmt.Errorf("orbdrift: theme %q has no glyph for %s: %w", a.theme.ID, kind, sim.ErrAssetMissing)
	}
	h := sim.AssetHandle(a.theme.ID + ":" + kind.String())
	a.glyphs[h] = g
	a.live[h]++
	a.acquired++
	return h, nil
}

// Release implements sim.AssetProvider. Unknown handles are ignored.
func (a *ThemeAssets) Release(h sim.AssetHandle) {
	n, ok := a.live[h]
	if !ok {
		return
	}
	a.released++
	if n <= 1 {
		delete(a.live, h)
		return
	}
	a.live[h] = n - 1
}

// Resolve returns the glyph behind a handle, or the theme placeholder.
func (a *ThemeAssets) Resolve(h sim.AssetHandle) registry.Glyph {
	if g, ok := a.glyphs[h]; ok {
		return g
	}
	return a.theme.Placeholder
}

// Theme returns the theme the provider draws from.
func (a *ThemeAssets) Theme() registry.Theme {
	return a.theme
}

// Live returns the number of handles currently held.
func (a *ThemeAssets) Live() int {
	n := 0
	for _, c := range a.live {
		n += c
	}
	return n
}

// Counts returns the total number of acquisitions and releases.
func (a *ThemeAssets) Counts() (acquired, released int) {
	return a.acquired, a.released
}
