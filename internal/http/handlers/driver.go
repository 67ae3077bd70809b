package handlers

import (
	"errors"
	"net/http"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
)

// DriverHandler serves the driver registry endpoints.
type DriverHandler struct {
	*Handlers
	uc driverUsecase
}

func NewDriverHandler(base *Handlers, uc driverUsecase) *DriverHandler {
	return &DriverHandler{Handlers: base, uc: uc}
}

// List handles GET /delivery/drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.uc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, toDriverDTOs(drivers))
}

// ListByStatus handles GET /delivery/drivers/status/{status}.
func (h *DriverHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	raw, err := paramFromURL(r, "status")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	drivers, err := h.uc.ListByStatus(r.Context(), raw)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, toDriverDTOs(drivers))
}

// UpdateStatus handles PUT /delivery/drivers/{driverId}/status?status=X.
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	driverID, err := paramFromURL(r, "driverId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	raw := r.URL.Query().Get("status")

	if err := h.uc.SetStatus(r.Context(), driverID, raw); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.Logger.Info("driver status updated",
		logx.String("req_id", reqID(r.Context())),
		logx.String("driver_id", driverID),
		logx.String("status", raw),
	)
	writeJSON(h.Logger, w, r, http.StatusOK, statusResponse{Message: "status updated"})
}

// Delete handles DELETE /delivery/drivers/{driverId}.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	driverID, err := paramFromURL(r, "driverId")
	if err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.uc.Delete(r.Context(), driverID); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DriverHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.Logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.Logger, w, r, http.StatusNotFound, "driver not found")
	default:
		h.Logger.Error("driver handler error",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
