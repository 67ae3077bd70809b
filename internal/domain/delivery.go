package domain

import "time"

// Delivery - an in-flight delivery binding an order to a driver.
// Exactly zero or one row exists per order id while not yet delivered.
type Delivery struct {
	ID         int64
	OrderID    string
	DriverID   string
	Shop       Point
	Dest       Point
	DriverPos  Point
	Delivered  bool
	AssignedAt time.Time
}

// CompletedDelivery - an archived delivery. Append-only, at most one
// row per order id.
type CompletedDelivery struct {
	ID          int64
	OrderID     string
	DriverID    string
	Dest        Point
	Delivered   bool
	CompletedAt time.Time
}

// DispatchResult - struct representing the result of dispatching an order.
type DispatchResult struct {
	OrderID    string
	DriverID   string
	DriverName string
	DistanceKm float64
}

// TrackingInfo is a read-only projection of an active delivery for
// client polling.
type TrackingInfo struct {
	OrderID          string
	Delivered        bool
	EstimatedArrival time.Time
	DriverName       string
	DriverPos        Point
	Dest             Point
}
