package models

import "time"

// System is one galaxy system ("555:342") tracked by one user. The
// (UserID, SystemID) pair is unique; LastUpdate is refreshed on every
// mutation of the system or any of its planets.
type System struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_system"`
	SystemID   string    `gorm:"not null;uniqueIndex:idx_user_system"`
	RecRes     bool      `gorm:"not null;default:false"`
	LastUpdate time.Time `gorm:"not null"`

	// Relationships
	Planets []Planet `gorm:"foreignKey:SystemID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
