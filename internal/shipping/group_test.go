package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/matie/internal/cart"
)

var testBook = AddressBook{
	"address-1": {ID: "address-1", Name: "My Home", FullAddress: "123 Main Street, District 1, Ho Chi Minh City"},
	"address-2": {ID: "address-2", Name: "Mom's House", FullAddress: "456 Oak Avenue, District 3, Ho Chi Minh City"},
}

func priced(price float64) *float64 {
	return &price
}

func TestGroupByAddressSharedSavedAddress(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddressID: "address-1", FinalPrice: priced(38), Quantity: 1},
		{ID: "cart-item-2", ShippingAddressID: "address-2", FinalPrice: priced(44), Quantity: 1},
		{ID: "cart-item-3", ShippingAddressID: "address-1", FinalPrice: priced(50), Quantity: 2},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 2)
	assert.Equal(t, "My Home", shipments[0].Address.Name)
	assert.Len(t, shipments[0].Items, 2)
	assert.Equal(t, 3, shipments[0].ItemCount())
	assert.InDelta(t, 138.0, shipments[0].Total, 0.001)
	assert.Equal(t, "Mom's House", shipments[1].Address.Name)
	assert.InDelta(t, 44.0, shipments[1].Total, 0.001)
}

func TestGroupByAddressSavedIDWinsOverInline(t *testing.T) {
	lines := []cart.Line{
		{
			ID:                "cart-item-1",
			ShippingAddressID: "address-1",
			ShippingAddress:   cart.Address{Name: "Other", Street: "9 Side Road", City: "Hanoi"},
			FinalPrice:        priced(38),
			Quantity:          1,
		},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 1)
	assert.Equal(t, "address-1", shipments[0].Address.ID)
	assert.Equal(t, "My Home", shipments[0].Address.Name)
}

func TestGroupByAddressUnknownSavedID(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddressID: "address-9", FinalPrice: priced(38), Quantity: 1},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 1)
	assert.Equal(t, "address-9", shipments[0].Address.ID)
	assert.Equal(t, "Unknown", shipments[0].Address.Name)
	assert.Empty(t, shipments[0].Address.FullAddress)
}

func TestGroupByAddressInlineAddresses(t *testing.T) {
	inline := cart.Address{Street: "12 Rose Lane", City: "Da Nang", Phone: "0901234567"}
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddress: inline, FinalPrice: priced(38), Quantity: 1},
		{ID: "cart-item-2", ShippingAddress: inline, FinalPrice: priced(44), Quantity: 1},
		{ID: "cart-item-3", ShippingAddress: cart.Address{Name: "Anna", Street: "5 Hill Street", City: "Hue"}, FinalPrice: priced(20), Quantity: 1},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 2)
	assert.Equal(t, "custom-1", shipments[0].Address.ID)
	assert.Equal(t, "Custom Address", shipments[0].Address.Name)
	assert.Equal(t, "12 Rose Lane, Da Nang, 0901234567", shipments[0].Address.FullAddress)
	assert.Len(t, shipments[0].Items, 2)
	assert.Equal(t, "Anna", shipments[1].Address.Name)
}

func TestGroupByAddressDefaultCollapse(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", FinalPrice: priced(38), Quantity: 1},
		{ID: "cart-item-2", ShippingAddress: cart.Address{City: "Hanoi"}, FinalPrice: priced(44), Quantity: 1},
		{ID: "cart-item-3", ShippingAddress: cart.Address{Street: "no-city-phone-or-name"}, FinalPrice: priced(20), Quantity: 1},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 1)
	assert.Equal(t, DefaultAddressID, shipments[0].Address.ID)
	assert.Equal(t, "No address selected", shipments[0].Address.FullAddress)
	assert.Len(t, shipments[0].Items, 3)
}

func TestGroupByAddressTotalConservation(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddressID: "address-1", FinalPrice: priced(38), Quantity: 2},
		{ID: "cart-item-2", ShippingAddressID: "address-2", FinalPrice: priced(44), Quantity: 1},
		{ID: "cart-item-3", FinalPrice: priced(12.5), Quantity: 4},
	}

	want := 0.0
	for _, line := range lines {
		want += *line.FinalPrice * float64(line.Quantity)
	}

	got := 0.0
	for _, shipment := range GroupByAddress(lines, testBook) {
		got += shipment.Total
	}
	assert.InDelta(t, want, got, 0.001)
}

func TestGroupByAddressPreservesFirstSeenOrder(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddressID: "address-2", FinalPrice: priced(1), Quantity: 1},
		{ID: "cart-item-2", ShippingAddressID: "address-1", FinalPrice: priced(1), Quantity: 1},
		{ID: "cart-item-3", ShippingAddressID: "address-2", FinalPrice: priced(1), Quantity: 1},
	}

	shipments := GroupByAddress(lines, testBook)

	require.Len(t, shipments, 2)
	assert.Equal(t, "address-2", shipments[0].Address.ID)
	assert.Equal(t, "address-1", shipments[1].Address.ID)
}

func TestMissingAddressCount(t *testing.T) {
	lines := []cart.Line{
		{ID: "cart-item-1", ShippingAddressID: "address-1"},
		{ID: "cart-item-2", ShippingAddress: cart.Address{Street: "12 Rose Lane", City: "Da Nang"}},
		{ID: "cart-item-3"},
		{ID: "cart-item-4", ShippingAddress: cart.Address{Street: "only-street"}},
	}

	assert.Equal(t, 2, MissingAddressCount(lines))
}
