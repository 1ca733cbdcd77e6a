package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/service/payments"
)

type stubPaymentUsecase struct {
	confirmFn func(ctx context.Context, c domain.PaymentConfirmed) (payments.Outcome, error)
}

func (s *stubPaymentUsecase) Confirm(ctx context.Context, c domain.PaymentConfirmed) (payments.Outcome, error) {
	return s.confirmFn(ctx, c)
}

const paymentBody = `{
	"order_id": "ord-42",
	"customer_id": 1,
	"owner_id": 2,
	"restaurant_id": 3,
	"restaurant_address": {"line": "Main St 1", "lat": 52.5, "lng": 13.4},
	"customer_address": {"line": "Side St 9", "lat": 52.51, "lng": 13.41},
	"requires_delivery": true
}`

func TestPaymentHandler_Confirmed_Created(t *testing.T) {
	t.Parallel()

	uc := &stubPaymentUsecase{
		confirmFn: func(_ context.Context, c domain.PaymentConfirmed) (payments.Outcome, error) {
			require.Equal(t, "ord-42", c.OrderID)
			require.True(t, c.RequiresDelivery)
			require.Equal(t, 52.5, c.RestaurantAddress.Lat)
			claim := domain.DeliveryClaim{ID: 5, OrderID: c.OrderID, Status: domain.DeliveryAvailable}
			return payments.Outcome{Claim: &claim, Created: true}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewPaymentHandler(nil, uc).Confirmed(rr, newRequest(http.MethodPost, "/internal/payments/confirmed", paymentBody, nil, nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"created":true`)
	assert.Contains(t, rr.Body.String(), `"status":"available"`)
}

func TestPaymentHandler_Confirmed_Repeated(t *testing.T) {
	t.Parallel()

	uc := &stubPaymentUsecase{
		confirmFn: func(_ context.Context, c domain.PaymentConfirmed) (payments.Outcome, error) {
			claim := domain.DeliveryClaim{ID: 5, OrderID: c.OrderID, Status: domain.DeliveryClaimed}
			return payments.Outcome{Claim: &claim}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewPaymentHandler(nil, uc).Confirmed(rr, newRequest(http.MethodPost, "/internal/payments/confirmed", paymentBody, nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"created":false`)
}

func TestPaymentHandler_Confirmed_Pickup(t *testing.T) {
	t.Parallel()

	uc := &stubPaymentUsecase{
		confirmFn: func(context.Context, domain.PaymentConfirmed) (payments.Outcome, error) {
			return payments.Outcome{}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewPaymentHandler(nil, uc).Confirmed(rr, newRequest(http.MethodPost, "/internal/payments/confirmed", `{"order_id":"p","customer_id":1,"owner_id":2,"restaurant_id":3}`, nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"created":false}`, rr.Body.String())
}

func TestPaymentHandler_Confirmed_Invalid(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewPaymentHandler(nil, &stubPaymentUsecase{}).Confirmed(rr, newRequest(http.MethodPost, "/internal/payments/confirmed", `{"order_id":"ord-42"}`, nil, nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid input"}`, rr.Body.String())
}
