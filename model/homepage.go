package model

import (
	"time"

	"gorm.io/datatypes"
)

// Homepage is the versioned root of the marketing page content for one language
type Homepage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Language  string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"language"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	IsActive  bool      `gorm:"not null" json:"is_active"`

	// Relationships
	Hero    *HomepageHero    `gorm:"foreignKey:HomepageID;constraint:OnDelete:CASCADE" json:"hero,omitempty"`
	About   *HomepageAbout   `gorm:"foreignKey:HomepageID;constraint:OnDelete:CASCADE" json:"about,omitempty"`
	Contact *HomepageContact `gorm:"foreignKey:HomepageID;constraint:OnDelete:CASCADE" json:"contact,omitempty"`
	FAQs    []HomepageFAQ    `gorm:"foreignKey:HomepageID;constraint:OnDelete:CASCADE" json:"faqs,omitempty"`
}

func (Homepage) TableName() string {
	return "homepage"
}

type HomepageHero struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	HomepageID      uint      `gorm:"uniqueIndex;not null" json:"homepage_id"`
	Title           string    `gorm:"not null" json:"title"`
	Subtitle        string    `gorm:"type:text" json:"subtitle"`
	BackgroundImage *string   `json:"background_image"`
	CTAText         *string   `gorm:"column:cta_text" json:"cta_text"`
	CTALink         *string   `gorm:"column:cta_link" json:"cta_link"`
}

func (HomepageHero) TableName() string {
	return "homepage_hero"
}

type HomepageAbout struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	HomepageID uint           `gorm:"uniqueIndex;not null" json:"homepage_id"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Image      *string        `json:"image"`
	Features   datatypes.JSON `json:"features"` // JSON array of features
}

func (HomepageAbout) TableName() string {
	return "homepage_about"
}

type HomepageContact struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	HomepageID   uint           `gorm:"uniqueIndex;not null" json:"homepage_id"`
	Email        string         `gorm:"not null" json:"email"`
	Phone        *string        `json:"phone"`
	Address      *string        `gorm:"type:text" json:"address"`
	Hours        *string        `json:"hours"`
	Description  *string        `gorm:"type:text" json:"description"`
	SupportEmail *string        `json:"support_email"`
	SalesEmail   *string        `json:"sales_email"`
	SocialLinks  datatypes.JSON `json:"social_links"` // JSON object keyed by network
}

func (HomepageContact) TableName() string {
	return "homepage_contact"
}

// HomepageFAQ is a single question/answer pair, ordered by OrderIndex ascending
type HomepageFAQ struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	HomepageID uint      `gorm:"not null;index" json:"homepage_id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
}

func (HomepageFAQ) TableName() string {
	return "homepage_faqs"
}
