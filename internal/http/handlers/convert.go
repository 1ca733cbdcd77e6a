package handlers

import "food-delivery-dispatch/internal/domain"

func addressToResponse(a domain.Address) addressDTO {
	return addressDTO{Line: a.Line, Lat: a.Lat, Lng: a.Lng}
}

func (a addressDTO) toModel() domain.Address {
	return domain.Address{Line: a.Line, Lat: a.Lat, Lng: a.Lng}
}

func deliveryToResponse(c domain.DeliveryClaim) deliveryDTO {
	return deliveryDTO{
		ID:                 c.ID,
		OrderID:            c.OrderID,
		CustomerID:         c.CustomerID,
		OwnerID:            c.OwnerID,
		RestaurantID:       c.RestaurantID,
		Pickup:             addressToResponse(c.Pickup),
		Dropoff:            addressToResponse(c.Dropoff),
		DistanceKm:         c.Fee.DistanceKm,
		DeliveryFee:        c.Fee.DeliveryFee,
		DriverPayout:       c.Fee.DriverPayout,
		PlatformCommission: c.Fee.Commission,
		Status:             c.Status,
		DriverID:           c.DriverID,
		Notes:              c.Notes,
		CreatedAt:          c.CreatedAt,
		ClaimedAt:          c.ClaimedAt,
		PickedUpAt:         c.PickedUpAt,
		InTransitAt:        c.InTransitAt,
		DeliveredAt:        c.DeliveredAt,
		CancelledAt:        c.CancelledAt,
	}
}

func deliveriesToResponse(list []domain.DeliveryClaim) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, deliveryToResponse(c))
	}
	return out
}

// conversationToResponse shows the unread counter of the viewer only.
func conversationToResponse(c domain.Conversation, viewer domain.Identity) conversationDTO {
	unread := c.CustomerUnread
	if viewer.Role == domain.RoleOwner {
		unread = c.OwnerUnread
	}
	return conversationDTO{
		ID:             c.ID,
		CustomerID:     c.CustomerID,
		OwnerID:        c.OwnerID,
		RestaurantID:   c.RestaurantID,
		LastMessage:    c.LastMessage,
		LastSenderRole: c.LastSenderRole,
		LastMessageAt:  c.LastMessageAt,
		Unread:         unread,
		CreatedAt:      c.CreatedAt,
	}
}

func conversationsToResponse(list []domain.Conversation, viewer domain.Identity) []conversationDTO {
	out := make([]conversationDTO, 0, len(list))
	for _, c := range list {
		out = append(out, conversationToResponse(c, viewer))
	}
	return out
}

func (r paymentConfirmedRequest) toModel() domain.PaymentConfirmed {
	return domain.PaymentConfirmed{
		OrderID:           r.OrderID,
		CustomerID:        r.CustomerID,
		OwnerID:           r.OwnerID,
		RestaurantID:      r.RestaurantID,
		RestaurantAddress: r.RestaurantAddress.toModel(),
		CustomerAddress:   r.CustomerAddress.toModel(),
		RequiresDelivery:  r.RequiresDelivery,
	}
}
