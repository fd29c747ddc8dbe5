package model

import "time"

// PaymentStatus drives which reporting bucket an enrollment falls into
type PaymentStatus string

const (
	PaymentStatusCompleted    PaymentStatus = "completed"
	PaymentStatusPaid         PaymentStatus = "paid"
	PaymentStatusPending      PaymentStatus = "pending"
	PaymentStatusProcessing   PaymentStatus = "processing"
	PaymentStatusActive       PaymentStatus = "active"
	PaymentStatusSubscription PaymentStatus = "subscription"
	PaymentStatusFailed       PaymentStatus = "failed"
)

// UserTopic is one enrollment event of a user in a topic
type UserTopic struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	TopicID       uint          `gorm:"not null;index" json:"topic_id"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);index" json:"payment_status"`
	EnrolledAt    time.Time     `gorm:"index" json:"enrolled_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserTopic) TableName() string {
	return "user_topics"
}

// UserTopicProgress records watch progress of a user on a topic.
// Progress is a percentage (0-100), WatchTime is in seconds.
type UserTopicProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;index:idx_progress_user_topic" json:"user_id"`
	TopicID   uint      `gorm:"not null;index:idx_progress_user_topic" json:"topic_id"`
	Progress  float64   `gorm:"default:0" json:"progress"`
	WatchTime int64     `gorm:"default:0" json:"watch_time"`
}

func (UserTopicProgress) TableName() string {
	return "user_topic_progress"
}
