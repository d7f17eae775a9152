// Package tracking maintains the simulated delivery timeline shown on
// the order tracking page: a fixed five-stage lifecycle per shipment, a
// periodic advance tick, and sticky per-(order, shipment) dismissal.
package tracking

import (
	"strings"
	"time"
)

// Step codes in lifecycle order.
const (
	StepPrep           = "prep"
	StepPickupOnTheWay = "pickup_on_the_way"
	StepPickupWaiting  = "pickup_waiting"
	StepOnDelivery     = "on_delivery"
	StepDelivered      = "delivered"
)

// Step is one stage of the delivery lifecycle.
type Step struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Note  string `json:"note"`
	Time  string `json:"time"`
}

// Driver is a delivery driver from the demo roster.
type Driver struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DefaultSteps is the fixed five-stage delivery lifecycle.
var DefaultSteps = []Step{
	{Code: StepPrep, Title: "Bakery is preparing your order", Note: "Kitchen is carefully preparing your treats."},
	{Code: StepPickupOnTheWay, Title: "Driver on the way to store", Note: "Driver is heading to the bakery."},
	{Code: StepPickupWaiting, Title: "Driver arrived at store", Note: "Waiting for the order to be handed over."},
	{Code: StepOnDelivery, Title: "Out for delivery", Note: "Your order is on the way to the destination."},
	{Code: StepDelivered, Title: "Delivered successfully", Note: "Order has been delivered. Enjoy!"},
}

// Drivers is the fixed roster assigned round-robin by shipment position.
var Drivers = []Driver{
	{Name: "John A.", Phone: "+84 901 234 567"},
	{Name: "Michael B.", Phone: "+84 902 345 678"},
	{Name: "Emily C.", Phone: "+84 903 456 789"},
	{Name: "Daniel D.", Phone: "+84 904 567 890"},
	{Name: "Sophia E.", Phone: "+84 905 678 901"},
}

// Simulated carrier timeline: shipments start out for delivery, with
// step timestamps back-dated from now by fixed minute offsets.
const defaultActiveIndex = 3

var stepOffsetMinutes = []int{0, 10, 20, 35, 55}

func baseTime(now time.Time, shipmentIdx int) time.Time {
	return now.Add(-time.Duration(30+shipmentIdx*5) * time.Minute)
}

// NormalizeOrderID strips the leading marker character and case-folds an
// order id for comparison.
func NormalizeOrderID(id string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "#"))
}

// NormalizePhone strips separator characters from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '+':
			return -1
		}
		return r
	}, phone)
}
