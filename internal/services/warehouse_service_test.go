package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnqueueCoalescesDeltas(t *testing.T) {
	warehouse := NewWarehouseService(nil)

	warehouse.Enqueue("Mooncake Gift Box (6 pieces)", 10)
	warehouse.Enqueue("Mooncake Gift Box (6 pieces)", -3)
	warehouse.Enqueue("Tiramisu · Italy", 5)

	assert.Equal(t, 2, warehouse.PendingCount())
	assert.Equal(t, 7, warehouse.pending["Mooncake Gift Box (6 pieces)"])
	assert.Equal(t, 5, warehouse.pending["Tiramisu · Italy"])
}

func TestEnqueueDropsZeroedProducts(t *testing.T) {
	warehouse := NewWarehouseService(nil)

	warehouse.Enqueue("Macaron · France", 4)
	warehouse.Enqueue("Macaron · France", -4)

	assert.Equal(t, 0, warehouse.PendingCount())
}
