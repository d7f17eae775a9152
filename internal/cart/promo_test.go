package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPromoCode(t *testing.T) {
	promo, err := ApplyPromoCode("  matie10 ")
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.Equal(t, "MATIE10", promo.Code)
	assert.Equal(t, 0.10, promo.DiscountRate)
}

func TestApplyPromoCodeEmptyClears(t *testing.T) {
	promo, err := ApplyPromoCode("   ")
	assert.NoError(t, err)
	assert.Nil(t, promo)
}

func TestApplyPromoCodeUnknown(t *testing.T) {
	promo, err := ApplyPromoCode("SAVE50")
	assert.ErrorIs(t, err, ErrInvalidPromo)
	assert.Nil(t, promo)
}

func TestDiscountAndFinalTotal(t *testing.T) {
	promo := &Promo{Code: "MATIE10", DiscountRate: 0.10}

	discount := Discount(100.00, promo)
	assert.InDelta(t, 10.00, discount, 0.001)
	assert.InDelta(t, 90.00, FinalTotal(100.00, discount, 0), 0.001)
	assert.InDelta(t, 98.99, FinalTotal(100.00, discount, 8.99), 0.001)
}

func TestDiscountWithoutPromo(t *testing.T) {
	assert.Equal(t, 0.0, Discount(100.00, nil))
}

func TestFinalTotalNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, FinalTotal(5, 10, 0))
}

func TestStoreInvalidPromoClearsActive(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.ApplyPromo("MATIE10")
	require.NoError(t, err)
	require.NotNil(t, store.Promo())

	_, err = store.ApplyPromo("BOGUS")
	assert.ErrorIs(t, err, ErrInvalidPromo)
	assert.Nil(t, store.Promo())
}
