package models

import "time"

// User accounts are created inactive and must be approved by an
// administrator before login succeeds. Deletion is a hard delete so
// owned systems and planets go with the account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsActive     bool `gorm:"not null;default:false"`
	IsAdmin      bool `gorm:"not null;default:false"`
	CreatedAt    time.Time

	// Relationships
	Systems []System `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
