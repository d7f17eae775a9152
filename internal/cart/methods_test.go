package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedDeliveryDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 45, 0, 0, time.UTC)

	standard := EstimatedDeliveryDate(MethodStandard, now)
	assert.Equal(t, "2026-03-13", standard.Format(ISODate))

	express := EstimatedDeliveryDate(MethodExpress, now)
	assert.Equal(t, "2026-03-12", express.Format(ISODate))
}

func TestMinDeliveryDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-12", MinDeliveryDate(now).Format(ISODate))
}

func TestFormatDeliveryDate(t *testing.T) {
	date := time.Date(2026, time.December, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Fri, Dec 11", FormatDeliveryDate(date))
}
