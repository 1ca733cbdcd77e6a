package kafka

import (
	"strings"
	"time"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/service/payments"
)

// AddressDTO is a geocoded address on the wire
type AddressDTO struct {
	Line string  `json:"line"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// EventDTO is a data transfer object for payments.Event
type EventDTO struct {
	Type              string     `json:"type"`
	OrderID           string     `json:"order_id"`
	CustomerID        int64      `json:"customer_id"`
	OwnerID           int64      `json:"owner_id"`
	RestaurantID      int64      `json:"restaurant_id"`
	RestaurantAddress AddressDTO `json:"restaurant_address"`
	CustomerAddress   AddressDTO `json:"customer_address"`
	RequiresDelivery  bool       `json:"requires_delivery"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToDomain converts EventDTO to payments.Event. A missing type means a
// confirmation, which is the only event the payments topic used to carry.
func ToDomain(dto EventDTO) payments.Event {
	eventType := strings.TrimSpace(dto.Type)
	if eventType == "" {
		eventType = "payment_confirmed"
	}
	return payments.Event{
		Type:              eventType,
		OrderID:           strings.TrimSpace(dto.OrderID),
		CustomerID:        dto.CustomerID,
		OwnerID:           dto.OwnerID,
		RestaurantID:      dto.RestaurantID,
		RestaurantAddress: dto.RestaurantAddress.toDomain(),
		CustomerAddress:   dto.CustomerAddress.toDomain(),
		RequiresDelivery:  dto.RequiresDelivery,
		CreatedAt:         dto.CreatedAt,
	}
}

func (a AddressDTO) toDomain() domain.Address {
	return domain.Address{Line: strings.TrimSpace(a.Line), Lat: a.Lat, Lng: a.Lng}
}
