package engine

import (
	"time"

	"github.com/lixenwraith/platanus-dice/constants"
)

// Rank titles, one per LevelsPerRank levels
var rankTitles = [...]string{
	"Platano Junior",
	"Platano Aprendiz",
	"Caminante Dorado",
	"Simio Nivel-1",
	"Platano Mayor",
	"Maestro Bananero",
	"Hacker Prime",
	"Súper Plátano",
}

// LegendRank is awarded at the maximum level
const LegendRank = "LEYENDA SUPREMA 👑"

// Rank returns the title for a level
func Rank(level int) string {
	if level >= constants.MaxLevel {
		return LegendRank
	}
	idx := (level - 1) / constants.LevelsPerRank
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rankTitles) {
		idx = len(rankTitles) - 1
	}
	return rankTitles[idx]
}

// RateTurn grades the time taken for one correct press
func RateTurn(elapsed time.Duration) string {
	switch {
	case elapsed < constants.RatingFlashBelow:
		return "¡FLASH!"
	case elapsed < constants.RatingFastBelow:
		return "¡RÁPIDO!"
	case elapsed < constants.RatingGoodBelow:
		return "¡BIEN HECHO!"
	case elapsed < constants.RatingBarelyBelow:
		return "¡APENAS!"
	default:
		return "¡UFF, JUSTO!"
	}
}
