package cart

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Shipping method identifiers for a cart line.
const (
	MethodStandard = "standard"
	MethodExpress  = "express"
	MethodPickDate = "pick-date"
)

// Gift message types. Empty means "not a message".
const (
	GiftMessageNone          = "none"
	GiftMessageComplimentary = "complimentary"
)

// MaxAssortmentQuantity caps the total box-filler quantity per line.
const MaxAssortmentQuantity = 4

// ErrAssortmentFull is returned when a line's assortment slots are used up.
var ErrAssortmentFull = errors.New("cart: assortment box is full")

// Address is the inline recipient address on a cart line.
type Address struct {
	Name         string `json:"name"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Apt          string `json:"apt"`
	LocationType string `json:"locationType"`
}

// Filled reports whether the address has enough fields to ship to:
// street plus at least one of city, phone or name.
func (a Address) Filled() bool {
	if a.Street == "" {
		return false
	}
	return a.City != "" || a.Phone != "" || a.Name != ""
}

// Option is a selected gift add-on with a per-unit price.
type Option struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AssortmentPick is a selected box-filler flavor.
type AssortmentPick struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ExtraPrice float64 `json:"extraPrice"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
}

// Line is one configured product instance in the cart.
type Line struct {
	ID                    string           `json:"id"`
	ProductID             string           `json:"productId"`
	ProductName           string           `json:"productName"`
	ProductImage          string           `json:"productImage"`
	BoxThumb              string           `json:"boxThumb"`
	ItemNumber            string           `json:"itemNumber"`
	BasePrice             float64          `json:"basePrice"`
	Quantity              int              `json:"quantity"`
	SelectedOptions       []Option         `json:"selectedOptions"`
	Assortment            []AssortmentPick `json:"assortment"`
	FinalPrice            *float64         `json:"finalPrice,omitempty"`
	ShippingAddressID     string           `json:"shippingAddressId,omitempty"`
	ShippingAddress       Address          `json:"shippingAddress"`
	RecipientRelationship string           `json:"recipientRelationship"`
	RecipientOccasion     string           `json:"recipientOccasion"`
	GiftMessage           string           `json:"giftMessage"`
	GiftMessageType       string           `json:"giftMessageType,omitempty"`
	ShippingMethod        string           `json:"shippingMethod"`
	DeliveryDate          string           `json:"deliveryDate,omitempty"`
	PickDateSelected      string           `json:"pickDateSelected,omitempty"`
}

// NewLineID generates an opaque cart line identifier.
func NewLineID() string {
	return fmt.Sprintf("cart-item-%d-%06d", time.Now().UnixMilli(), rand.Intn(1000000))
}

// NewItemNumber generates a display SKU for a line.
func NewItemNumber() string {
	return fmt.Sprintf("20269%d", rand.Intn(1000))
}

// UnitPrice computes the per-unit price of a line. A present, valid
// finalPrice is authoritative and returned unchanged; otherwise the price
// is basePrice plus add-on and assortment extras. Missing numeric fields
// count as zero, and the result is stable across repeated calls.
func (l Line) UnitPrice() float64 {
	if l.FinalPrice != nil && !math.IsNaN(*l.FinalPrice) {
		return *l.FinalPrice
	}

	total := l.BasePrice
	for _, opt := range l.SelectedOptions {
		total += opt.Price * float64(quantityOrOne(opt.Quantity))
	}
	for _, pick := range l.Assortment {
		total += pick.ExtraPrice * float64(quantityOrOne(pick.Quantity))
	}
	return total
}

// AssortmentQuantity is the total box-filler quantity across the line.
func (l Line) AssortmentQuantity() int {
	total := 0
	for _, pick := range l.Assortment {
		total += pick.Quantity
	}
	return total
}

// AddAssortment adds one unit of a box-filler flavor, merging with an
// existing pick of the same id. The per-line total is capped at
// MaxAssortmentQuantity.
func (l *Line) AddAssortment(pick AssortmentPick) error {
	if l.AssortmentQuantity() >= MaxAssortmentQuantity {
		return ErrAssortmentFull
	}

	for i := range l.Assortment {
		if l.Assortment[i].ID == pick.ID {
			l.Assortment[i].Quantity++
			return nil
		}
	}

	pick.Quantity = 1
	l.Assortment = append(l.Assortment, pick)
	return nil
}

// normalize backfills missing optional fields on lines persisted by
// earlier configuration flows.
func (l *Line) normalize() {
	if l.ID == "" {
		l.ID = NewLineID()
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.ProductName == "" {
		l.ProductName = "Cupcake Box"
	}
	if l.ItemNumber == "" {
		l.ItemNumber = NewItemNumber()
	}
	if l.ShippingMethod == "" {
		l.ShippingMethod = MethodStandard
	}
}

func quantityOrOne(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
