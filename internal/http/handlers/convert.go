package handlers

import "service-dispatch/internal/domain"

func toDomainPing(req locationUpdateRequest) domain.LocationPing {
	return domain.LocationPing{
		DriverID:  req.DriverID,
		Name:      req.DriverName,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		UserID:    req.UserID,
	}
}

func toDriverDTO(d domain.DriverLocation) driverDTO {
	return driverDTO{
		DriverID:  d.DriverID,
		Name:      d.Name,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Available: d.Available,
		Status:    string(d.Status),
		UserID:    d.UserID,
	}
}

func toDriverDTOs(list []domain.DriverLocation) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDriverDTO(d))
	}
	return out
}

func toDispatchResponse(r domain.DispatchResult) dispatchResponse {
	return dispatchResponse{
		OrderID:    r.OrderID,
		DriverID:   r.DriverID,
		DriverName: r.DriverName,
		DistanceKm: r.DistanceKm,
	}
}

func toDeliveryDTO(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:         d.ID,
		OrderID:    d.OrderID,
		DriverID:   d.DriverID,
		ShopLat:    d.Shop.Lat,
		ShopLon:    d.Shop.Lon,
		DestLat:    d.Dest.Lat,
		DestLon:    d.Dest.Lon,
		DriverLat:  d.DriverPos.Lat,
		DriverLon:  d.DriverPos.Lon,
		Delivered:  d.Delivered,
		AssignedAt: d.AssignedAt,
	}
}

func toCompletedDTO(c domain.CompletedDelivery) completedDeliveryDTO {
	return completedDeliveryDTO{
		ID:          c.ID,
		OrderID:     c.OrderID,
		DriverID:    c.DriverID,
		DestLat:     c.Dest.Lat,
		DestLon:     c.Dest.Lon,
		Delivered:   c.Delivered,
		CompletedAt: c.CompletedAt,
	}
}

func toCompletedDTOs(list []domain.CompletedDelivery) []completedDeliveryDTO {
	out := make([]completedDeliveryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toCompletedDTO(c))
	}
	return out
}

func toTrackingDTO(t domain.TrackingInfo) trackingDTO {
	return trackingDTO{
		OrderID:          t.OrderID,
		Delivered:        t.Delivered,
		EstimatedArrival: t.EstimatedArrival,
		DriverName:       t.DriverName,
		DriverLat:        t.DriverPos.Lat,
		DriverLon:        t.DriverPos.Lon,
		DestLat:          t.Dest.Lat,
		DestLon:          t.Dest.Lon,
	}
}
