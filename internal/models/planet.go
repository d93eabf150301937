package models

// Planet is one of the nine planets of a System ("555:342:3"), keyed by
// the owning system's row id. Planet rows carry no timestamp; edits bump
// the parent system's LastUpdate instead.
type Planet struct {
	ID        uint   `gorm:"primaryKey"`
	SystemID  uint   `gorm:"not null;uniqueIndex:idx_system_planet"`
	PlanetID  string `gorm:"not null;uniqueIndex:idx_system_planet"`
	Important bool   `gorm:"not null;default:false"`
	Notes     string `gorm:"not null;default:''"`
}
