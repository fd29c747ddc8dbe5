package services

import (
	"math"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
)

// subscriptionTerm is how long a paid enrollment stays valid
const subscriptionTerm = 1 // years

// SubscriptionWindow is the derived validity of a paid enrollment
type SubscriptionWindow struct {
	StartDate *time.Time `json:"subscriptionStartDate"`
	EndDate   *time.Time `json:"subscriptionEndDate"`
	ValidDays *int       `json:"subscriptionValidDays"`
	IsActive  bool       `json:"isSubscriptionActive"`
}

// SubscriptionValidity computes the one-year window that starts at enrolledAt.
// Only completed and subscription enrollments carry a window, every other
// status yields an empty, inactive one.
func SubscriptionValidity(enrolledAt *time.Time, status string, now time.Time) SubscriptionWindow {
	if enrolledAt == nil {
		return SubscriptionWindow{}
	}
	switch model.PaymentStatus(status) {
	case model.PaymentStatusCompleted, model.PaymentStatusSubscription:
	default:
		return SubscriptionWindow{}
	}

	start := enrolledAt.UTC()
	end := start.AddDate(subscriptionTerm, 0, 0)

	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return SubscriptionWindow{
		StartDate: &start,
		EndDate:   &end,
		ValidDays: &days,
		IsActive:  !now.Before(start) && !now.After(end),
	}
}
