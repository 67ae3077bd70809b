package handlers

import (
	"errors"
	"net/http"
	"strings"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// DeliveryHandler serves the dispatch and lifecycle endpoints.
type DeliveryHandler struct {
	*Handlers
	uc deliveryUsecase
}

func NewDeliveryHandler(base *Handlers, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{Handlers: base, uc: uc}
}

// UpdateLocation handles POST /delivery/update-location.
func (h *DeliveryHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationUpdateRequest
	if !decodeJSON(h.Logger, w, r, &req) {
		return
	}

	if err := h.uc.UpdateLocation(r.Context(), toDomainPing(req)); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, statusResponse{Message: "location updated"})
}

// Create handles POST /delivery/create. Coordinates arrive as query
// parameters to match the order service's dispatch call.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(r.URL.Query().Get("orderId"))
	if orderID == "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, "missing orderId")
		return
	}

	var (
		shop domain.Point
		dest domain.Point
	)
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"shopLat", &shop.Lat},
		{"shopLon", &shop.Lon},
		{"destLat", &dest.Lat},
		{"destLon", &dest.Lon},
	} {
		v, err := floatFromQuery(r, p.name)
		if err != nil {
			writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
			return
		}
		*p.dst = v
	}

	res, err := h.uc.CreateDelivery(r.Context(), orderID, shop, dest)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.Logger.Info("delivery created",
		logx.String("req_id", reqID(r.Context())),
		logx.String("order_id", res.OrderID),
		logx.String("driver_id", res.DriverID),
	)
	writeJSON(h.Logger, w, r, http.StatusCreated, toDispatchResponse(res))
}

// MarkDelivered handles POST /delivery/mark-delivered/{driverId}.
func (h *DeliveryHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	driverID, err := paramFromURL(r, "driverId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	done, err := h.uc.MarkDelivered(r.Context(), driverID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.Logger.Info("delivery completed",
		logx.String("req_id", reqID(r.Context())),
		logx.String("order_id", done.OrderID),
		logx.String("driver_id", done.DriverID),
	)
	writeJSON(h.Logger, w, r, http.StatusOK, toCompletedDTO(done))
}

// GetByDriver handles GET /delivery/by-driver/{driverId}.
func (h *DeliveryHandler) GetByDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := paramFromURL(r, "driverId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.uc.GetByDriver(r.Context(), driverID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, toDeliveryDTO(*d))
}

// GetTracking handles GET /delivery/{orderId}.
func (h *DeliveryHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	orderID, err := paramFromURL(r, "orderId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.uc.GetTrackingInfo(r.Context(), orderID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, toTrackingDTO(info))
}

// ListCompleted handles GET /delivery/completed-deliveries/{driverId}.
func (h *DeliveryHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	driverID, err := paramFromURL(r, "driverId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.uc.ListCompletedByDriver(r.Context(), driverID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, toCompletedDTOs(list))
}

// DeleteCompleted handles DELETE /delivery/completed-deliveries/order/{orderId}.
func (h *DeliveryHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	orderID, err := paramFromURL(r, "orderId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.uc.DeleteCompletedByOrder(r.Context(), orderID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DeliveryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNoActiveDelivery):
		writeError(h.Logger, w, r, http.StatusNotFound, "no active delivery")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.Logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrNoDriversAvailable):
		writeError(h.Logger, w, r, http.StatusConflict, "no drivers available")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.Logger, w, r, http.StatusConflict, "conflict")
	default:
		h.Logger.Error("delivery handler error",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
