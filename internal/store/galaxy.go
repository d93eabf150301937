package store

import "fmt"

// The galaxy is fixed: systems 555:111 through 555:999, nine planets
// each (555:NNN:1 through 555:NNN:9).
const (
	GalaxyPrefix     = "555"
	SystemSuffixMin  = 111
	SystemSuffixMax  = 999
	PlanetsPerSystem = 9

	initializeBatchSize = 50
)

// SystemCount is how many systems a fully initialized user owns.
const SystemCount = SystemSuffixMax - SystemSuffixMin + 1

func SystemCode(suffix int) string {
	return fmt.Sprintf("%s:%d", GalaxyPrefix, suffix)
}

func PlanetCode(systemCode string, position int) string {
	return fmt.Sprintf("%s:%d", systemCode, position)
}
