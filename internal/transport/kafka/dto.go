package kafka

import (
	"strings"
	"time"

	"service-dispatch/internal/service/orders"
)

// EventDTO is the wire representation of an order event.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ShopLat   float64   `json:"shop_lat"`
	ShopLon   float64   `json:"shop_lon"`
	DestLat   float64   `json:"dest_lat"`
	DestLon   float64   `json:"dest_lon"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts an EventDTO to an orders.Event.
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		Status:    strings.TrimSpace(dto.Status),
		ShopLat:   dto.ShopLat,
		ShopLon:   dto.ShopLon,
		DestLat:   dto.DestLat,
		DestLon:   dto.DestLon,
		CreatedAt: dto.CreatedAt,
	}
}

// DriverEventDTO is the wire representation of a driver-registration event.
type DriverEventDTO struct {
	DriverID string  `json:"driver_id"`
	Name     *string `json:"name,omitempty"`
	UserID   *string `json:"user_id,omitempty"`
}

// DriverToDomain converts a DriverEventDTO to an orders.DriverEvent.
func DriverToDomain(dto DriverEventDTO) orders.DriverEvent {
	return orders.DriverEvent{
		DriverID: strings.TrimSpace(dto.DriverID),
		Name:     dto.Name,
		UserID:   dto.UserID,
	}
}
