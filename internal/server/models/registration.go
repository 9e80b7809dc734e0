package models

import (
	"fmt"
	"strings"
	"time"
)

// Registration records that a user signed up for an event. EventID refers to
// the external catalog and is stored as given.
type Registration struct {
	ID        int64
	UserID    int64
	EventID   string
	CreatedAt time.Time
}

// RegistrationPolicy decides what happens when a user registers for an event
// they are already registered for.
type RegistrationPolicy string

const (
	// PolicyAllow stores every request, duplicates included.
	PolicyAllow RegistrationPolicy = "allow"
	// PolicyReject refuses a second registration with ErrAlreadyRegistered.
	PolicyReject RegistrationPolicy = "reject"
	// PolicyIgnore reports success for a repeat without storing another row.
	PolicyIgnore RegistrationPolicy = "ignore"
)

// ParseRegistrationPolicy validates a configured policy name.
func ParseRegistrationPolicy(s string) (RegistrationPolicy, error) {
	switch p := RegistrationPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAllow, PolicyReject, PolicyIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("unknown registration policy %q", s)
	}
}
