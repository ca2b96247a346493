// Package registry provides a global registry of glyph themes.
// Themes register themselves in init() functions, allowing the platform
// to list and select them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
)

// Glyph is how a single world element is drawn in a terminal cell.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Theme maps entity kinds and decorations to glyphs.
type Theme struct {
	ID    string
	Title string

	// Glyphs holds one glyph per entity kind. A kind without a glyph
	// cannot be drawn by this theme.
	Glyphs map[sim.Kind]Glyph

	Ground      Glyph
	Hitbox      Glyph
	Placeholder Glyph
	HUD         core.Color
	Banner      core.Color
}

// Glyph returns the glyph for kind.
func (t Theme) Glyph(kind sim.Kind) (Glyph, bool) {
	g, ok := t.Glyphs[kind]
	return g, ok
}

// ThemeInfo contains metadata about a registered theme.
type ThemeInfo struct {
	ID    string
	Title string
}

// Factory is a function that builds a theme.
type Factory func() Theme

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a theme factory to the registry.
// Panics if a theme with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: theme %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title
}

// List returns information about all registered themes, sorted by ID.
func List() []ThemeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ThemeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ThemeInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a theme by its ID.
func Create(id string) (Theme, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Theme{}, fmt.Errorf("registry: unknown theme %q", id)
	}

	t := f()
	t.ID = id
	return t, nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
