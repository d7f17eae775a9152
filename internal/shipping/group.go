// Package shipping partitions cart lines into checkout shipments keyed
// by shipping-address identity.
package shipping

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/matie/internal/cart"
)

// DefaultAddressID keys the shared shipment for lines with no usable
// address; every such line collapses into the same group.
const DefaultAddressID = "default"

// ResolvedAddress is the display identity of a shipment's destination.
type ResolvedAddress struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
}

// AddressBook resolves saved address ids to their display entries.
type AddressBook map[string]ResolvedAddress

// Shipment is a checkout-time grouping of cart lines sharing a resolved
// delivery address.
type Shipment struct {
	Address ResolvedAddress `json:"address"`
	Items   []cart.Line     `json:"items"`
	Total   float64         `json:"total"`
}

// ItemCount is the total quantity across the shipment's lines.
func (s Shipment) ItemCount() int {
	count := 0
	for _, line := range s.Items {
		count += line.Quantity
	}
	return count
}

// GroupByAddress partitions lines into shipments. The grouping key is,
// in precedence order: the saved address id, the serialized inline
// address when it has enough filled fields, or the shared default key.
// Shipments come out in first-seen key order.
//
// Totals accumulate finalPrice x quantity directly rather than re-running
// the pricing formula: grouping happens after configuration, when
// finalPrice is always populated.
func GroupByAddress(lines []cart.Line, book AddressBook) []Shipment {
	grouped := make(map[string]int)
	var shipments []Shipment

	for _, line := range lines {
		key, address := resolve(line, book, len(shipments))

		idx, ok := grouped[key]
		if !ok {
			idx = len(shipments)
			grouped[key] = idx
			shipments = append(shipments, Shipment{Address: address})
		}

		shipments[idx].Items = append(shipments[idx].Items, line)
		if line.FinalPrice != nil {
			shipments[idx].Total += *line.FinalPrice * float64(line.Quantity)
		}
	}

	return shipments
}

// MissingAddressCount counts lines that resolve to the default shipment;
// multi-recipient checkout is blocked while it is non-zero.
func MissingAddressCount(lines []cart.Line) int {
	count := 0
	for _, line := range lines {
		if line.ShippingAddressID == "" && !line.ShippingAddress.Filled() {
			count++
		}
	}
	return count
}

func resolve(line cart.Line, book AddressBook, groupCount int) (string, ResolvedAddress) {
	if id := line.ShippingAddressID; id != "" {
		if address, ok := book[id]; ok {
			return id, address
		}
		return id, ResolvedAddress{ID: id, Name: "Unknown", FullAddress: ""}
	}

	if line.ShippingAddress.Filled() {
		a := line.ShippingAddress
		name := a.Name
		if name == "" {
			name = "Custom Address"
		}
		address := ResolvedAddress{
			ID:          fmt.Sprintf("custom-%d", groupCount+1),
			Name:        name,
			FullAddress: joinNonEmpty(a.Street, a.City, a.State, a.Country, a.Phone),
		}
		key, err := json.Marshal(a)
		if err != nil {
			return address.ID, address
		}
		return string(key), address
	}

	return DefaultAddressID, ResolvedAddress{
		ID:          DefaultAddressID,
		Name:        "Default Address",
		FullAddress: "No address selected",
	}
}

func joinNonEmpty(parts ...string) string {
	var filled []string
	for _, part := range parts {
		if part != "" {
			filled = append(filled, part)
		}
	}
	return strings.Join(filled, ", ")
}
