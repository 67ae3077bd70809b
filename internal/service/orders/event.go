package orders

import "time"

// Event is a single order event from the order service.
type Event struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ShopLat   float64   `json:"shop_lat"`
	ShopLon   float64   `json:"shop_lon"`
	DestLat   float64   `json:"dest_lat"`
	DestLon   float64   `json:"dest_lon"`
	CreatedAt time.Time `json:"created_at"`
}

// DriverEvent is a driver-registration event. New drivers enter the
// registry with default (0,0) coordinates until their first ping.
type DriverEvent struct {
	DriverID string  `json:"driver_id"`
	Name     *string `json:"name,omitempty"`
	UserID   *string `json:"user_id,omitempty"`
}
