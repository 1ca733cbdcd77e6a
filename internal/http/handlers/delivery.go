package handlers

import (
	"errors"
	"net/http"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/logx"
)

// DeliveryHandler serves the driver endpoints.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: orNop(logger)}
}

// ListAvailable handles GET /deliveries/available.
func (h *DeliveryHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListAvailable(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// Claim handles POST /deliveries/claim. Losing a race is a 409 with
// "order no longer available".
func (h *DeliveryHandler) Claim(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req claimDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.Claim(r.Context(), req.OrderID, who.ID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(c))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeServiceError(h.logger, w, r, err)
	}
}

// UpdateStatus handles POST /deliveries/{id}/status.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Advance(r.Context(), id, who.ID, req.Status, req.Notes)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, advanceResponse{
		Delivery: deliveryToResponse(res.Claim),
		Replayed: res.Replayed,
	})
}

// MyStats handles GET /drivers/me/stats.
func (h *DeliveryHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	st, err := h.usecase.DriverStats(r.Context(), who.ID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverStatsDTO{
		DriverID:      st.DriverID,
		Deliveries:    st.Deliveries,
		EarningsCents: st.EarningsCents,
	})
}
