package handlers

import "time"

type locationUpdateRequest struct {
	DriverID   string  `json:"driver_id"`
	DriverName *string `json:"driver_name,omitempty"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lon"`
	UserID     *string `json:"user_id,omitempty"`
}

type driverDTO struct {
	DriverID  string  `json:"driver_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Available bool    `json:"available"`
	Status    string  `json:"status"`
	UserID    string  `json:"user_id,omitempty"`
}

type dispatchResponse struct {
	OrderID    string  `json:"order_id"`
	DriverID   string  `json:"driver_id"`
	DriverName string  `json:"driver_name"`
	DistanceKm float64 `json:"distance_km"`
}

type deliveryDTO struct {
	ID         int64     `json:"id"`
	OrderID    string    `json:"order_id"`
	DriverID   string    `json:"driver_id"`
	ShopLat    float64   `json:"shop_lat"`
	ShopLon    float64   `json:"shop_lon"`
	DestLat    float64   `json:"dest_lat"`
	DestLon    float64   `json:"dest_lon"`
	DriverLat  float64   `json:"driver_lat"`
	DriverLon  float64   `json:"driver_lon"`
	Delivered  bool      `json:"is_delivered"`
	AssignedAt time.Time `json:"assigned_at"`
}

type completedDeliveryDTO struct {
	ID          int64     `json:"id"`
	OrderID     string    `json:"order_id"`
	DriverID    string    `json:"driver_id"`
	DestLat     float64   `json:"dest_lat"`
	DestLon     float64   `json:"dest_lon"`
	Delivered   bool      `json:"is_delivered"`
	CompletedAt time.Time `json:"completed_at"`
}

type trackingDTO struct {
	OrderID          string    `json:"order_id"`
	Delivered        bool      `json:"is_delivered"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	DriverName       string    `json:"driver_name"`
	DriverLat        float64   `json:"driver_lat"`
	DriverLon        float64   `json:"driver_lon"`
	DestLat          float64   `json:"dest_lat"`
	DestLon          float64   `json:"dest_lon"`
}

type statusResponse struct {
	Message string `json:"message"`
}
