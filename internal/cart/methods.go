package cart

import "time"

// ISODate is the layout used for deliveryDate / pickDateSelected fields.
const ISODate = "2006-01-02"

// ShippingMethod describes one delivery option with its flat fee.
type ShippingMethod struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// ShippingMethods lists the available delivery options.
var ShippingMethods = []ShippingMethod{
	{ID: MethodPickDate, Name: "Pick a Date - Schedule Delivery", Price: 15.95, Description: "Schedule your delivery for a specific date"},
	{ID: MethodStandard, Name: "Standard Shipping", Price: 15.95, Description: "5-7 business days"},
	{ID: MethodExpress, Name: "Express Shipping", Price: 29.95, Description: "2-3 business days"},
}

// EstimatedDeliveryDate computes the arrival date for a method relative
// to now: express adds 2 days, everything else 3.
func EstimatedDeliveryDate(methodID string, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if methodID == MethodExpress {
		return day.AddDate(0, 0, 2)
	}
	return day.AddDate(0, 0, 3)
}

// MinDeliveryDate is the earliest date selectable with pick-date;
// processing takes two days.
func MinDeliveryDate(now time.Time) time.Time {
	return now.AddDate(0, 0, 2)
}

// FormatDeliveryDate renders a date as "Thu, Dec 11" for display.
func FormatDeliveryDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}
