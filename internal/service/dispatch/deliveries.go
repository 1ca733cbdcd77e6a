package dispatch

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

// Publish fans a committed delivery transition out to drivers, the customer
// and the restaurant owner. Notification rows are written before any push.
// It returns the persistence errors; pushes never fail the call.
func (d *Dispatcher) Publish(ctx context.Context, e domain.DeliveryEvent) error {
	switch e.Status {
	case domain.DeliveryAvailable:
		c := e.Claim
		res := d.hub.Broadcast(domain.RoleDriver, realtime.Envelope{
			Type: domain.EventNewOrderAvailable,
			Payload: OrderAvailablePayload{
				DeliveryID:   e.DeliveryID,
				OrderID:      e.OrderID,
				RestaurantID: c.RestaurantID,
				Pickup:       c.Pickup,
				Dropoff:      c.Dropoff,
				DistanceKm:   c.Fee.DistanceKm,
				DriverPayout: c.Fee.DriverPayout,
				CreatedAt:    c.CreatedAt,
			},
		})
		d.logger.Debug("new order broadcast",
			logx.String("order_id", e.OrderID),
			logx.Int("delivered", res.Delivered),
			logx.Int("failed", res.Failed),
		)
		return nil
	case domain.DeliveryClaimed:
		err := d.notifyParties(ctx, e)
		var driverID int64
		if e.DriverID != nil {
			driverID = *e.DriverID
		}
		d.hub.Broadcast(domain.RoleDriver, realtime.Envelope{
			Type:    domain.EventOrderClaimed,
			Payload: OrderClaimedPayload{DeliveryID: e.DeliveryID, OrderID: e.OrderID, DriverID: driverID},
		})
		return err
	case domain.DeliveryDelivered:
		err := d.notifyParties(ctx, e)
		d.sendOutbound(domain.OutboundMessage{
			Channel:   domain.ChannelSMS,
			Recipient: domain.Identity{Role: domain.RoleCustomer, ID: e.CustomerID},
			Body:      fmt.Sprintf("Your order %s has been delivered. Enjoy your meal!", e.OrderID),
		})
		return err
	case domain.DeliveryPickedUp, domain.DeliveryInTransit, domain.DeliveryCancelled:
		return d.notifyParties(ctx, e)
	default:
		return fmt.Errorf("unknown delivery status %q", e.Status)
	}
}

// notifyParties writes one notification per human party of the order and
// pushes the status change to each.
func (d *Dispatcher) notifyParties(ctx context.Context, e domain.DeliveryEvent) error {
	kind, title, body := statusText(e)
	var errs []error
	for _, to := range []domain.Identity{
		{Role: domain.RoleCustomer, ID: e.CustomerID},
		{Role: domain.RoleOwner, ID: e.OwnerID},
	} {
		payload := DeliveryStatusPayload{
			DeliveryID: e.DeliveryID,
			OrderID:    e.OrderID,
			Status:     e.Status,
			DriverID:   e.DriverID,
		}
		n := &domain.Notification{
			Recipient: to,
			Type:      kind,
			Title:     title,
			Body:      body,
			Payload:   mustJSON(payload),
		}
		err := d.notify(ctx, n, func(n *domain.Notification) realtime.Envelope {
			payload.NotificationID = n.ID
			return realtime.Envelope{Type: domain.EventDeliveryStatusChanged, Payload: payload}
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func statusText(e domain.DeliveryEvent) (domain.NotificationType, string, string) {
	switch e.Status {
	case domain.DeliveryClaimed:
		return domain.NotifOrderClaimed, "Driver assigned",
			fmt.Sprintf("A driver accepted order %s.", e.OrderID)
	case domain.DeliveryPickedUp:
		return domain.NotifDeliveryStatus, "Order picked up",
			fmt.Sprintf("Order %s was picked up from the restaurant.", e.OrderID)
	case domain.DeliveryInTransit:
		return domain.NotifDeliveryStatus, "Order on the way",
			fmt.Sprintf("Order %s is on its way.", e.OrderID)
	case domain.DeliveryDelivered:
		return domain.NotifDeliveryComplete, "Order delivered",
			fmt.Sprintf("Order %s was delivered.", e.OrderID)
	default:
		return domain.NotifDeliveryStatus, "Delivery cancelled",
			fmt.Sprintf("The delivery of order %s was cancelled.", e.OrderID)
	}
}

// PaymentConfirmed tells the restaurant owner about a new paid order and the
// customer that the payment went through, in the app and by email.
func (d *Dispatcher) PaymentConfirmed(ctx context.Context, p domain.PaymentConfirmed) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	owner := domain.Identity{Role: domain.RoleOwner, ID: p.OwnerID}
	customer := domain.Identity{Role: domain.RoleCustomer, ID: p.CustomerID}
	payload := mustJSON(map[string]any{
		"order_id":          p.OrderID,
		"restaurant_id":     p.RestaurantID,
		"requires_delivery": p.RequiresDelivery,
	})
	asEvent := func(n *domain.Notification) realtime.Envelope {
		return realtime.Envelope{Type: domain.EventNotification, Payload: *n}
	}

	var errs []error
	for _, n := range []*domain.Notification{
		{
			Recipient: owner,
			Type:      domain.NotifNewOrder,
			Title:     "New order",
			Body:      fmt.Sprintf("Order %s was paid and is waiting for preparation.", p.OrderID),
			Payload:   payload,
		},
		{
			Recipient: customer,
			Type:      domain.NotifOrderPaid,
			Title:     "Payment confirmed",
			Body:      fmt.Sprintf("We received the payment for order %s.", p.OrderID),
			Payload:   payload,
		},
	} {
		if err := d.notify(ctx, n, asEvent); err != nil {
			errs = append(errs, err)
		}
	}

	d.sendOutbound(domain.OutboundMessage{
		Channel:   domain.ChannelEmail,
		Recipient: owner,
		Subject:   "New order " + p.OrderID,
		Body:      fmt.Sprintf("Order %s was paid. Please start preparing it.", p.OrderID),
	})
	d.sendOutbound(domain.OutboundMessage{
		Channel:   domain.ChannelEmail,
		Recipient: customer,
		Subject:   "Order " + p.OrderID + " confirmed",
		Body:      fmt.Sprintf("Thanks! Your payment for order %s was confirmed.", p.OrderID),
	})
	return errors.Join(errs...)
}
