package domain

import "strings"

// List of possible driver onboarding statuses.
const (
	StatusPending  DriverStatus = "pending"
	StatusApproved DriverStatus = "approved"
	StatusRejected DriverStatus = "rejected"
)

var allowedStatuses = [...]DriverStatus{
	StatusPending, StatusApproved, StatusRejected,
}

// Valid checks if the DriverStatus is one of the closed enumeration.
func (s DriverStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus normalizes an external status string into a DriverStatus.
// Unknown values are rejected at the boundary.
func ParseStatus(raw string) (DriverStatus, bool) {
	s := DriverStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}
