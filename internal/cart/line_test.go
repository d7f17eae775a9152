package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPriceFromComponents(t *testing.T) {
	line := Line{
		BasePrice: 38.00,
		SelectedOptions: []Option{
			{ID: "happy-birthday-card", Price: 6.00, Quantity: 1},
			{ID: "birthday-candles", Price: 6.00, Quantity: 2},
		},
		Assortment: []AssortmentPick{
			{ID: "tiramisu-italy", ExtraPrice: 1.50, Quantity: 2},
		},
	}

	// 38 + 6 + 12 + 3
	assert.InDelta(t, 59.00, line.UnitPrice(), 0.001)
}

func TestUnitPriceAssortmentExtras(t *testing.T) {
	line := Line{
		BasePrice: 38.00,
		Assortment: []AssortmentPick{
			{ID: "tiramisu-italy", ExtraPrice: 4.50, Quantity: 2},
			{ID: "macaron-france", ExtraPrice: 5.00, Quantity: 1},
		},
	}

	assert.InDelta(t, 52.00, line.UnitPrice(), 0.001)
}

func TestUnitPriceMissingQuantitiesCountAsOne(t *testing.T) {
	line := Line{
		BasePrice:       38.00,
		SelectedOptions: []Option{{ID: "card", Price: 6.00}},
		Assortment:      []AssortmentPick{{ID: "macaron-france", ExtraPrice: 2.00}},
	}

	assert.InDelta(t, 46.00, line.UnitPrice(), 0.001)
}

func TestUnitPriceIsStable(t *testing.T) {
	line := Line{
		BasePrice:       38.00,
		SelectedOptions: []Option{{ID: "card", Price: 6.00, Quantity: 1}},
	}

	first := line.UnitPrice()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, line.UnitPrice())
	}
}

func TestUnitPriceFinalPriceWins(t *testing.T) {
	final := 25.00
	line := Line{
		BasePrice:       38.00,
		FinalPrice:      &final,
		SelectedOptions: []Option{{ID: "card", Price: 6.00, Quantity: 3}},
	}

	assert.Equal(t, 25.00, line.UnitPrice())
}

func TestUnitPriceZeroFinalPriceIsValid(t *testing.T) {
	final := 0.0
	line := Line{BasePrice: 38.00, FinalPrice: &final}

	assert.Equal(t, 0.0, line.UnitPrice())
}

func TestUnitPriceNaNFinalPriceFallsBack(t *testing.T) {
	final := math.NaN()
	line := Line{BasePrice: 38.00, FinalPrice: &final}

	assert.Equal(t, 38.00, line.UnitPrice())
}

func TestAddAssortmentMergesSameFlavor(t *testing.T) {
	line := Line{}
	pick := AssortmentPick{ID: "tiramisu-italy", Name: "Tiramisu · Italy"}

	require.NoError(t, line.AddAssortment(pick))
	require.NoError(t, line.AddAssortment(pick))

	require.Len(t, line.Assortment, 1)
	assert.Equal(t, 2, line.Assortment[0].Quantity)
	assert.Equal(t, 2, line.AssortmentQuantity())
}

func TestAddAssortmentCap(t *testing.T) {
	line := Line{}
	flavors := []string{"tiramisu-italy", "macaron-france", "cheesecake-usa", "pavlova-australia"}
	for _, id := range flavors {
		require.NoError(t, line.AddAssortment(AssortmentPick{ID: id}))
	}

	err := line.AddAssortment(AssortmentPick{ID: "tres-leches-mexico"})
	assert.ErrorIs(t, err, ErrAssortmentFull)
	assert.Equal(t, MaxAssortmentQuantity, line.AssortmentQuantity())
}

func TestNormalizeBackfillsDefaults(t *testing.T) {
	line := Line{}
	line.normalize()

	assert.NotEmpty(t, line.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "Cupcake Box", line.ProductName)
	assert.NotEmpty(t, line.ItemNumber)
	assert.Equal(t, MethodStandard, line.ShippingMethod)
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	line := Line{ID: "cart-item-1", Quantity: 3, ProductName: "Mooncake Gift Box (6 pieces)", ItemNumber: "202691", ShippingMethod: MethodExpress}
	line.normalize()

	assert.Equal(t, "cart-item-1", line.ID)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, MethodExpress, line.ShippingMethod)
}
