package handlers

import (
	"net/http"

	"food-delivery-dispatch/internal/logx"
)

// PaymentHandler accepts payment confirmations from the payment collaborator.
type PaymentHandler struct {
	usecase paymentUsecase
	logger  logx.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(logger logx.Logger, uc paymentUsecase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, logger: orNop(logger)}
}

// Confirmed handles POST /internal/payments/confirmed. A new delivery answers
// 201, a repeated confirmation 200 with the current state.
func (h *PaymentHandler) Confirmed(w http.ResponseWriter, r *http.Request) {
	var req paymentConfirmedRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	out, err := h.usecase.Confirm(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	resp := paymentConfirmedResponse{Created: out.Created}
	if out.Claim != nil {
		d := deliveryToResponse(*out.Claim)
		resp.Delivery = &d
	}
	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	writeJSON(h.logger, w, r, status, resp)
}
