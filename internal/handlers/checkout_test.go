package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4242424242424242"))
	assert.True(t, luhnValid("4111111111111111"))
	assert.False(t, luhnValid("4242424242424241"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "4242424242424242", digitsOnly("4242 4242 4242 4242"))
	assert.Equal(t, "0901234567", digitsOnly("(090) 123-4567"))
}

func TestExpiryValid(t *testing.T) {
	assert.True(t, expiryValid("12/99"))
	assert.False(t, expiryValid("01/20"))
	assert.False(t, expiryValid("13/99"))
	assert.False(t, expiryValid("0199"))
	assert.False(t, expiryValid("aa/bb"))
}

func TestValidateCheckoutCardErrors(t *testing.T) {
	data := &CheckoutData{
		PaymentMethod: "card",
		CardNumber:    "1234",
		CardExpiry:    "13/10",
		CardCVV:       "12",
		Email:         "not-an-email",
		Phone:         "123",
		BillingSame:   true,
	}

	fieldErrors := validateCheckout(data)

	assert.Contains(t, fieldErrors, "cardNumber")
	assert.Contains(t, fieldErrors, "cardExpiry")
	assert.Contains(t, fieldErrors, "cardCvv")
	assert.Contains(t, fieldErrors, "cardName")
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "phone")
}

func TestValidateCheckoutPasses(t *testing.T) {
	data := &CheckoutData{
		PaymentMethod: "card",
		CardNumber:    "4242 4242 4242 4242",
		CardExpiry:    "12/99",
		CardCVV:       "123",
		CardName:      "Anna Tran",
		Email:         "anna@example.com",
		Phone:         "090 123 4567",
		BillingSame:   true,
	}

	assert.Empty(t, validateCheckout(data))
}

func TestValidateCheckoutBillingRequired(t *testing.T) {
	data := &CheckoutData{
		PaymentMethod: "card",
		CardNumber:    "4242424242424242",
		CardExpiry:    "12/99",
		CardCVV:       "123",
		CardName:      "Anna Tran",
		Email:         "anna@example.com",
		Phone:         "0901234567",
		BillingSame:   false,
	}

	fieldErrors := validateCheckout(data)
	assert.Contains(t, fieldErrors, "billingAddress")

	data.BillingAddress = &BillingAddress{Street: "123 Main Street", City: "", Zip: ""}
	fieldErrors = validateCheckout(data)
	assert.NotContains(t, fieldErrors, "billingStreet")
	assert.Contains(t, fieldErrors, "billingCity")
	assert.Contains(t, fieldErrors, "billingZip")
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** **** **** 4242", maskCardNumber("4242 4242 4242 4242"))
	assert.Equal(t, "", maskCardNumber("12"))
}
