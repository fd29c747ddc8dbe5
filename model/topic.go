package model

import "time"

// TopicStatus is the publication state of a topic
type TopicStatus string

const (
	TopicStatusDraft     TopicStatus = "draft"
	TopicStatusPublished TopicStatus = "published"
	TopicStatusArchived  TopicStatus = "archived"
)

// Topic represents a purchasable training topic
type Topic struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Price       float64     `gorm:"type:numeric(10,2);default:0" json:"price"`
	Status      TopicStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`

	// Relationships
	Enrollments []UserTopic   `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews     []TopicReview `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

// TopicReview is a learner rating of a topic. Only approved reviews count towards averages.
type TopicReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	TopicID    uint      `gorm:"not null;index" json:"topic_id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
}
