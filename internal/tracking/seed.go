package tracking

import (
	"encoding/json"
	"fmt"

	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/shipping"
)

// SeedsFromShipments builds tracking seeds from freshly grouped checkout
// shipments, one per shipment. New shipments start at the first stage;
// the demo fast-forward default applies only when re-deriving lost state.
func SeedsFromShipments(shipments []shipping.Shipment) []Seed {
	start := 0
	seeds := make([]Seed, 0, len(shipments))
	for idx, shipment := range shipments {
		id := fmt.Sprintf("#SHIP-%d", idx+1)
		if shipment.Address.ID != "" {
			id = "#SHIP-" + shipment.Address.ID
		}
		recipient := shipment.Address.FullAddress
		if recipient == "" {
			recipient = shipment.Address.Name
		}
		seeds = append(seeds, Seed{ID: id, Recipient: recipient, ActiveIndex: &start})
	}
	return seeds
}

// SeedsFromOrder re-derives the shipment set from a persisted order by
// grouping its items on shipping-address identity.
func SeedsFromOrder(order models.Order) []Seed {
	grouped := make(map[string]bool)
	var seeds []Seed

	for _, item := range order.Items {
		key := item.ShippingAddressID
		if key == "" {
			raw, err := json.Marshal(map[string]string{
				"name":   item.ShipTo.Name,
				"street": item.ShipTo.Street,
				"city":   item.ShipTo.City,
				"phone":  item.ShipTo.Phone,
			})
			if err != nil {
				continue
			}
			key = string(raw)
		}
		if grouped[key] {
			continue
		}
		grouped[key] = true

		recipient := joinParts(item.ShipTo.Name, item.ShipTo.Street, item.ShipTo.City,
			item.ShipTo.State, item.ShipTo.Zip, item.ShipTo.Phone)
		if recipient == "" {
			recipient = fmt.Sprintf("Recipient %d", len(seeds)+1)
		}

		seeds = append(seeds, Seed{
			ID:        fmt.Sprintf("#SHIP-%d", len(seeds)+1),
			Recipient: recipient,
		})
	}

	return seeds
}

func joinParts(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
