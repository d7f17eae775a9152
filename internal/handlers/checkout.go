package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/matie/internal/middleware"
	"github.com/example/matie/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckoutData is the validated payment form staged for order placement.
type CheckoutData struct {
	PaymentMethod  string          `json:"paymentMethod"`
	CardNumber     string          `json:"cardNumber,omitempty"`
	CardExpiry     string          `json:"cardExpiry,omitempty"`
	CardCVV        string          `json:"cardCvv,omitempty"`
	CardName       string          `json:"cardName,omitempty"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	BillingSame    bool            `json:"billingSameAsShipping"`
	BillingAddress *BillingAddress `json:"billingAddress,omitempty"`
	SavedAt        time.Time       `json:"savedAt"`
}

// BillingAddress is required when billing differs from shipping.
type BillingAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// CheckoutHandler validates and stages payment details per session.
type CheckoutHandler struct {
	backend storage.Store
	now     func() time.Time
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(backend storage.Store) *CheckoutHandler {
	return &CheckoutHandler{backend: backend, now: time.Now}
}

func checkoutKey(sessionID string) string {
	return "checkoutData:" + sessionID
}

// Save validates the payment form and stages it for the payment step.
func (h *CheckoutHandler) Save(c *fiber.Ctx) error {
	var data CheckoutData
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if fieldErrors := validateCheckout(&data); len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  fieldErrors,
		})
	}

	data.SavedAt = h.now()
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sessionID := middleware.GetSessionID(c)
	if err := h.backend.Put(checkoutKey(sessionID), payload); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Checkout details saved."})
}

// Get returns the staged payment details, if any.
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)

	raw, err := h.backend.Get(checkoutKey(sessionID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no checkout details saved")
		}
		return err
	}

	var data CheckoutData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[Checkout] discarding corrupt checkout data for session %s: %v", sessionID, err)
		return fiber.NewError(fiber.StatusNotFound, "no checkout details saved")
	}

	// Card number and CVV are never echoed back.
	data.CardNumber = maskCardNumber(data.CardNumber)
	data.CardCVV = ""

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Load reads the staged checkout data for internal use by the payment
// step. Returns nil when nothing valid is staged.
func (h *CheckoutHandler) Load(sessionID string) *CheckoutData {
	raw, err := h.backend.Get(checkoutKey(sessionID))
	if err != nil {
		return nil
	}

	var data CheckoutData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return &data
}

// Clear drops the staged checkout data after an order is placed.
func (h *CheckoutHandler) Clear(sessionID string) {
	if err := h.backend.Delete(checkoutKey(sessionID)); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[Checkout] failed to clear checkout data for session %s: %v", sessionID, err)
	}
}

func validateCheckout(data *CheckoutData) map[string]string {
	fieldErrors := make(map[string]string)

	if data.PaymentMethod == "" {
		data.PaymentMethod = "card"
	}

	if data.PaymentMethod == "card" {
		digits := digitsOnly(data.CardNumber)
		switch {
		case digits == "":
			fieldErrors["cardNumber"] = "Card number is required."
		case len(digits) < 13 || len(digits) > 19 || !luhnValid(digits):
			fieldErrors["cardNumber"] = "Please enter a valid card number."
		}

		if !expiryValid(data.CardExpiry) {
			fieldErrors["cardExpiry"] = "Please enter a valid expiry date (MM/YY)."
		}

		cvv := digitsOnly(data.CardCVV)
		if len(cvv) < 3 || len(cvv) > 4 {
			fieldErrors["cardCvv"] = "Please enter a valid security code."
		}

		if strings.TrimSpace(data.CardName) == "" {
			fieldErrors["cardName"] = "Name on card is required."
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(data.Email)) {
		fieldErrors["email"] = "Please enter a valid email address."
	}

	if len(digitsOnly(data.Phone)) < 7 {
		fieldErrors["phone"] = "Please enter a valid phone number."
	}

	if !data.BillingSame {
		billing := data.BillingAddress
		if billing == nil {
			fieldErrors["billingAddress"] = "Billing address is required."
		} else {
			if strings.TrimSpace(billing.Street) == "" {
				fieldErrors["billingStreet"] = "Billing street is required."
			}
			if strings.TrimSpace(billing.City) == "" {
				fieldErrors["billingCity"] = "Billing city is required."
			}
			if strings.TrimSpace(billing.Zip) == "" {
				fieldErrors["billingZip"] = "Billing ZIP code is required."
			}
		}
	}

	return fieldErrors
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// luhnValid runs the Luhn checksum over a digit string.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid accepts MM/YY dates from this month onward.
func expiryValid(expiry string) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return false
	}

	var month, year int
	if _, err := fmt.Sscanf(parts[0], "%d", &month); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &year); err != nil {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	year += 2000
	now := time.Now()
	if year < now.Year() {
		return false
	}
	if year == now.Year() && time.Month(month) < now.Month() {
		return false
	}
	return true
}

func maskCardNumber(number string) string {
	digits := digitsOnly(number)
	if len(digits) < 4 {
		return ""
	}
	return "**** **** **** " + digits[len(digits)-4:]
}
