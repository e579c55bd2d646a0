package visiontech

import (
	"strings"
	"time"
)

// SubscriptionService is the interface that wraps methods related to the subscriber lifecycle
type SubscriptionService interface {
	Subscribe(email, name string) (*Subscriber, bool, error)
	FindAll() ([]Subscriber, error)
	FindActive() ([]Subscriber, error)
	FindByToken(token string) (*Subscriber, error)
	UnsubscribeByToken(token string) error
	DeleteByToken(token string) error
	Stats() (*SubscriberStats, error)
}

// Subscriber represents a newsletter subscriber
type Subscriber struct {
	ID               int         `storm:"id,increment" json:"id"`
	Email            string      `storm:"unique" json:"email"`
	Name             string      `json:"name"`
	Status           string      `storm:"index" json:"status"`
	UnsubscribeToken string      `storm:"unique" json:"-"`
	SignupDate       time.Time   `json:"signupDate"`
	Preferences      Preferences `json:"preferences"`
	LastEngagement   *time.Time  `json:"lastEngagement,omitempty"`
	EngagementScore  int         `json:"engagementScore"`
	IPAddress        string      `json:"ipAddress,omitempty"`
	UserAgent        string      `json:"userAgent,omitempty"`
}

// Preferences is accepted on signup and carried on the record; nothing in the
// send path reads it.
type Preferences struct {
	Categories []string `json:"categories"`
	Frequency  string   `json:"frequency"`
}

// Subscriber status
const (
	StatusPending      = "pending"
	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"
)

// Newsletter frequency
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// NewSubscriber returns a new active subscriber with a freshly generated
// unsubscribe token. The token is assigned exactly once, here, before the
// record is first persisted.
func NewSubscriber(email, name string) (*Subscriber, error) {
	token, err := NewUnsubscribeToken()
	if err != nil {
		return nil, err
	}

	return &Subscriber{
		Email:            NormalizeEmail(email),
		Name:             name,
		Status:           StatusActive,
		UnsubscribeToken: token,
		SignupDate:       time.Now(),
		Preferences: Preferences{
			Frequency: FrequencyWeekly,
		},
	}, nil
}

// NormalizeEmail lower-cases and trims an email address. One record per
// normalized email is the store-level uniqueness invariant.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubscriberStats holds live status counts.
type SubscriberStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Unsubscribed int `json:"unsubscribed"`
	Pending      int `json:"pending"`
}

type SubscriptionRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SubscriptionResponse struct {
	Message    string      `json:"message"`
	Subscriber *Subscriber `json:"subscriber,omitempty"`
}
