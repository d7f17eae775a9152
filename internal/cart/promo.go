package cart

import (
	"errors"
	"strings"
)

// ErrInvalidPromo is returned for a non-empty code that is not recognized.
var ErrInvalidPromo = errors.New("cart: promo code is not valid")

// Promo is an applied discount code.
type Promo struct {
	Code         string  `json:"code"`
	DiscountRate float64 `json:"discountRate"`
}

// Only one simple code for now: MATIE10 -> 10% off.
const (
	promoCode = "MATIE10"
	promoRate = 0.10
)

// ApplyPromoCode resolves a raw code entry. An empty code clears the
// active promo and returns (nil, nil); an unrecognized code clears it and
// returns ErrInvalidPromo.
func ApplyPromoCode(raw string) (*Promo, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return nil, nil
	}
	if code == promoCode {
		return &Promo{Code: code, DiscountRate: promoRate}, nil
	}
	return nil, ErrInvalidPromo
}

// Discount is the amount taken off a subtotal by a promo; zero without one.
func Discount(subtotal float64, promo *Promo) float64 {
	if promo == nil {
		return 0
	}
	discount := subtotal * promo.DiscountRate
	if discount < 0 {
		return 0
	}
	return discount
}

// FinalTotal combines subtotal, discount and shipping, floored at zero.
func FinalTotal(subtotal, discount, shipping float64) float64 {
	total := subtotal - discount + shipping
	if total < 0 {
		return 0
	}
	return total
}
