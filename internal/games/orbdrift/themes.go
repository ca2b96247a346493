package orbdrift

import (
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
	"github.com/vovakirdan/orbdrift/internal/registry"
)

// DefaultTheme is used when no theme is selected.
const DefaultTheme = "classic"

func classicTheme() registry.Theme {
	return registry.Theme{
		Title: "Classic",
		Glyphs: map[sim.Kind]registry.Glyph{
			sim.KindPlayer:            {Rune: '▶', Color: core.ColorBrightYellow},
			sim.KindObstaclePrimary:   {Rune: '●', Color: core.ColorRed},
			sim.KindObstacleSecondary: {Rune: '◆', Color: core.ColorMagenta},
			sim.KindOrb:               {Rune: 'o', Color: core.ColorBrightCyan},
		},
		Ground:      registry.Glyph{Rune: '═', Color: core.ColorGray},
		Hitbox:      registry.Glyph{Rune: '·', Color: core.ColorBrightGreen},
		Placeholder: registry.Glyph{Rune: '?', Color: core.ColorBrightMagenta},
		HUD:         core.ColorBrightWhite,
		Banner:      core.ColorBrightYellow,
	}
}

func monoTheme() registry.Theme {
	return registry.Theme{
		Title: "Monochrome",
		Glyphs: map[sim.Kind]registry.Glyph{
			sim.KindPlayer:            {Rune: '>'},
			sim.KindObstaclePrimary:   {Rune: '#'},
			sim.KindObstacleSecondary: {Rune: '%'},
			sim.KindOrb:               {Rune: 'o'},
		},
		Ground:      registry.Glyph{Rune: '='},
		Hitbox:      registry.Glyph{Rune: '.'},
		Placeholder: registry.Glyph{Rune: '?'},
	}
}

func init() {
	registry.Register("classic", classicTheme)
	registry.Register("mono", monoTheme)
}
