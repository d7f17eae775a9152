package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/shipping"
)

func TestSeedsFromShipments(t *testing.T) {
	shipments := []shipping.Shipment{
		{Address: shipping.ResolvedAddress{ID: "address-1", Name: "My Home", FullAddress: "123 Main Street, District 1, Ho Chi Minh City"}},
		{Address: shipping.ResolvedAddress{ID: "default", Name: "Default Address"}},
	}

	seeds := SeedsFromShipments(shipments)

	require.Len(t, seeds, 2)
	assert.Equal(t, "#SHIP-address-1", seeds[0].ID)
	assert.Equal(t, "123 Main Street, District 1, Ho Chi Minh City", seeds[0].Recipient)
	assert.Equal(t, "#SHIP-default", seeds[1].ID)
	assert.Equal(t, "Default Address", seeds[1].Recipient)

	for _, seed := range seeds {
		require.NotNil(t, seed.ActiveIndex)
		assert.Equal(t, 0, *seed.ActiveIndex)
	}
}

func TestSeedsFromOrderGroupsItems(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{ShippingAddressID: "address-1", ShipTo: models.ShipTo{Name: "Anna", Street: "123 Main Street"}},
			{ShippingAddressID: "address-1", ShipTo: models.ShipTo{Name: "Anna", Street: "123 Main Street"}},
			{ShipTo: models.ShipTo{Name: "Ben", Street: "5 Hill Street", City: "Hue", Phone: "0901"}},
		},
	}

	seeds := SeedsFromOrder(order)

	require.Len(t, seeds, 2)
	assert.Equal(t, "#SHIP-1", seeds[0].ID)
	assert.Equal(t, "Anna, 123 Main Street", seeds[0].Recipient)
	assert.Equal(t, "#SHIP-2", seeds[1].ID)
	assert.Equal(t, "Ben, 5 Hill Street, Hue, 0901", seeds[1].Recipient)
}

func TestSeedsFromOrderUnaddressedItemsShareOneShipment(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{}, {},
		},
	}

	seeds := SeedsFromOrder(order)

	require.Len(t, seeds, 1)
	assert.Equal(t, "Recipient 1", seeds[0].Recipient)
}
