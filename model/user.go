package model

import "time"

// User represents a learner account on the platform
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`

	// Relationships
	Topics []UserTopic `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
