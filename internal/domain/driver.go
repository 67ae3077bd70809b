package domain

// DriverStatus represents the onboarding status of a driver.
type DriverStatus string

// DriverLocation represents a driver's registry row: current position,
// availability and onboarding status. The row is long-lived and mutated
// in place by location pings and by dispatch/completion.
type DriverLocation struct {
	DriverID  string
	Name      string
	Latitude  float64
	Longitude float64
	Available bool
	Status    DriverStatus
	UserID    string
}

// LocationPing carries a driver location update. Name and UserID are
// optional; a nil field means "do not change" that attribute.
type LocationPing struct {
	DriverID  string
	Name      *string
	Latitude  float64
	Longitude float64
	UserID    *string
}
