package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"food-delivery-dispatch/internal/domain"
)

func TestDeliveryStatus_CanAdvanceTo(t *testing.T) {
	t.Parallel()

	all := []domain.DeliveryStatus{
		domain.DeliveryAvailable,
		domain.DeliveryClaimed,
		domain.DeliveryPickedUp,
		domain.DeliveryInTransit,
		domain.DeliveryDelivered,
		domain.DeliveryCancelled,
	}

	allowed := map[domain.DeliveryStatus][]domain.DeliveryStatus{
		domain.DeliveryClaimed:   {domain.DeliveryPickedUp, domain.DeliveryInTransit, domain.DeliveryDelivered, domain.DeliveryCancelled},
		domain.DeliveryPickedUp:  {domain.DeliveryInTransit, domain.DeliveryDelivered, domain.DeliveryCancelled},
		domain.DeliveryInTransit: {domain.DeliveryDelivered, domain.DeliveryCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			require.Equalf(t, want, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}
}

func TestDeliveryStatus_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, domain.DeliveryCancelled.Valid())
	require.True(t, domain.DeliveryInTransit.Valid())
	require.False(t, domain.DeliveryStatus("lost").Valid())
	require.False(t, domain.DeliveryClaimed.CanAdvanceTo("lost"))
}

func TestConversation_Counterpart(t *testing.T) {
	t.Parallel()

	c := domain.Conversation{ID: 7, CustomerID: 1, OwnerID: 2}

	other, ok := c.Counterpart(domain.Identity{Role: domain.RoleCustomer, ID: 1})
	require.True(t, ok)
	require.Equal(t, domain.Identity{Role: domain.RoleOwner, ID: 2}, other)

	other, ok = c.Counterpart(domain.Identity{Role: domain.RoleOwner, ID: 2})
	require.True(t, ok)
	require.Equal(t, domain.Identity{Role: domain.RoleCustomer, ID: 1}, other)

	_, ok = c.Counterpart(domain.Identity{Role: domain.RoleCustomer, ID: 3})
	require.False(t, ok)
	_, ok = c.Counterpart(domain.Identity{Role: domain.RoleDriver, ID: 1})
	require.False(t, ok)
}
