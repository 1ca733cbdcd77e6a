package handlers

import (
	"time"

	"food-delivery-dispatch/internal/domain"
)

type addressDTO struct {
	Line string  `json:"line" validate:"max=256"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type deliveryDTO struct {
	ID                 int64                 `json:"id"`
	OrderID            string                `json:"order_id"`
	CustomerID         int64                 `json:"customer_id"`
	OwnerID            int64                 `json:"owner_id"`
	RestaurantID       int64                 `json:"restaurant_id"`
	Pickup             addressDTO            `json:"pickup"`
	Dropoff            addressDTO            `json:"dropoff"`
	DistanceKm         float64               `json:"distance_km"`
	DeliveryFee        int64                 `json:"delivery_fee"`
	DriverPayout       int64                 `json:"driver_payout"`
	PlatformCommission int64                 `json:"platform_commission"`
	Status             domain.DeliveryStatus `json:"status"`
	DriverID           *int64                `json:"driver_id,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	ClaimedAt          *time.Time            `json:"claimed_at,omitempty"`
	PickedUpAt         *time.Time            `json:"picked_up_at,omitempty"`
	InTransitAt        *time.Time            `json:"in_transit_at,omitempty"`
	DeliveredAt        *time.Time            `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
}

type claimDeliveryRequest struct {
	OrderID string `json:"order_id" validate:"required,max=128"`
}

type updateStatusRequest struct {
	Status domain.DeliveryStatus `json:"status" validate:"required"`
	Notes  *string               `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type advanceResponse struct {
	Delivery deliveryDTO `json:"delivery"`
	Replayed bool        `json:"replayed"`
}

type driverStatsDTO struct {
	DriverID      int64 `json:"driver_id"`
	Deliveries    int64 `json:"deliveries"`
	EarningsCents int64 `json:"earnings_cents"`
}

type conversationDTO struct {
	ID             int64       `json:"id"`
	CustomerID     int64       `json:"customer_id"`
	OwnerID        int64       `json:"owner_id"`
	RestaurantID   int64       `json:"restaurant_id"`
	LastMessage    string      `json:"last_message,omitempty"`
	LastSenderRole domain.Role `json:"last_sender_role,omitempty"`
	LastMessageAt  *time.Time  `json:"last_message_at,omitempty"`
	Unread         int         `json:"unread"`
	CreatedAt      time.Time   `json:"created_at"`
}

type startConversationRequest struct {
	OtherID      int64 `json:"other_id" validate:"required,gt=0"`
	RestaurantID int64 `json:"restaurant_id" validate:"required,gt=0"`
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type markReadResponse struct {
	Marked int64 `json:"marked"`
}

type paymentConfirmedRequest struct {
	OrderID           string     `json:"order_id" validate:"required,max=128"`
	CustomerID        int64      `json:"customer_id" validate:"required,gt=0"`
	OwnerID           int64      `json:"owner_id" validate:"required,gt=0"`
	RestaurantID      int64      `json:"restaurant_id" validate:"required,gt=0"`
	RestaurantAddress addressDTO `json:"restaurant_address"`
	CustomerAddress   addressDTO `json:"customer_address"`
	RequiresDelivery  bool       `json:"requires_delivery"`
}

type paymentConfirmedResponse struct {
	Created  bool         `json:"created"`
	Delivery *deliveryDTO `json:"delivery,omitempty"`
}
