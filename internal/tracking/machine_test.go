package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/matie/internal/storage"
)

func intPtr(v int) *int {
	return &v
}

func newTestService(backend storage.Store) *Service {
	service := NewService(backend)
	service.now = func() time.Time {
		return time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	}
	return service
}

func TestSeedDefaults(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())

	machine := service.Seed("order-1700000000000", []Seed{{}, {}})

	shipments := machine.Shipments()
	require.Len(t, shipments, 2)

	first := shipments[0]
	assert.Equal(t, "#SHIP-1", first.ID)
	assert.Equal(t, "Address 1", first.Recipient)
	assert.Equal(t, 3, first.ActiveIndex)
	require.Len(t, first.Steps, 5)
	assert.Equal(t, StepPrep, first.Steps[0].Code)
	assert.Equal(t, StepDelivered, first.Steps[4].Code)

	assert.Equal(t, "#SHIP-2", shipments[1].ID)
	assert.Equal(t, "Address 2", shipments[1].Recipient)
}

func TestSeedTimelineBackdating(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())

	machine := service.Seed("order-1", []Seed{{}, {}})
	shipments := machine.Shipments()

	// First shipment: base now-30m = 14:00, offsets 0/10/20/35/55.
	want := []string{"14:00", "14:10", "14:20", "14:35", "14:55"}
	for i, step := range shipments[0].Steps {
		assert.Equal(t, want[i], step.Time)
	}

	// Second shipment is staggered 5 minutes earlier.
	assert.Equal(t, "13:55", shipments[1].Steps[0].Time)
}

func TestSeedRoundRobinDrivers(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())

	seeds := make([]Seed, 7)
	machine := service.Seed("order-1", seeds)

	shipments := machine.Shipments()
	assert.Equal(t, "John A.", shipments[0].Shipper.Name)
	assert.Equal(t, "Sophia E.", shipments[4].Shipper.Name)
	assert.Equal(t, "John A.", shipments[5].Shipper.Name)
	assert.Equal(t, "Michael B.", shipments[6].Shipper.Name)
}

func TestSeedClampsActiveIndex(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())

	machine := service.Seed("order-1", []Seed{
		{ActiveIndex: intPtr(99)},
		{ActiveIndex: intPtr(-4)},
		{ActiveIndex: intPtr(0)},
	})

	shipments := machine.Shipments()
	assert.Equal(t, 4, shipments[0].ActiveIndex)
	assert.Equal(t, 0, shipments[1].ActiveIndex)
	assert.Equal(t, 0, shipments[2].ActiveIndex)
}

func TestAdvanceSaturates(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())
	machine := service.Seed("order-1", []Seed{{ActiveIndex: intPtr(0)}})

	for i := 1; i <= 4; i++ {
		machine.Advance()
		assert.Equal(t, i, machine.Shipments()[0].ActiveIndex)
	}

	machine.Advance()
	machine.Advance()
	assert.Equal(t, 4, machine.Shipments()[0].ActiveIndex)
}

func TestAdvanceSkipsDismissed(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())
	machine := service.Seed("order-1", []Seed{
		{ID: "#SHIP-A", ActiveIndex: intPtr(1)},
		{ID: "#SHIP-B", ActiveIndex: intPtr(1)},
	})

	require.True(t, service.Dismiss("order-1", "#SHIP-A"))
	machine.Advance()

	shipments := machine.Shipments()
	assert.Equal(t, 1, shipments[0].ActiveIndex)
	assert.Equal(t, 2, shipments[1].ActiveIndex)
}

func TestMachineReloadFromStorage(t *testing.T) {
	backend := storage.NewMemoryStore()

	service := newTestService(backend)
	service.Seed("Order-42", []Seed{{ID: "#SHIP-1"}})

	// A fresh service sees only what storage holds.
	restarted := newTestService(backend)
	machine, ok := restarted.Machine("#ORDER-42")
	require.True(t, ok)
	require.Len(t, machine.Shipments(), 1)
	assert.Equal(t, "#SHIP-1", machine.Shipments()[0].ID)

	_, ok = restarted.Machine("order-missing")
	assert.False(t, ok)
}

func TestDismissalSurvivesReseed(t *testing.T) {
	backend := storage.NewMemoryStore()
	service := newTestService(backend)

	service.Seed("order-1", []Seed{{ID: "#SHIP-1"}, {ID: "#SHIP-2"}})
	require.True(t, service.Dismiss("order-1", "#SHIP-1"))

	// Re-seeding the same order keeps the dismissal flag.
	machine := service.Seed("order-1", []Seed{{ID: "#SHIP-1"}, {ID: "#SHIP-2"}})
	shipments := machine.Shipments()
	assert.True(t, shipments[0].Dismissed)
	assert.False(t, shipments[1].Dismissed)

	// And so does a fresh service over the same storage.
	restarted := newTestService(backend)
	reloaded, ok := restarted.Machine("order-1")
	require.True(t, ok)
	assert.True(t, reloaded.Shipments()[0].Dismissed)
}

func TestDismissUnknownShipment(t *testing.T) {
	service := newTestService(storage.NewMemoryStore())
	service.Seed("order-1", []Seed{{ID: "#SHIP-1"}})

	assert.False(t, service.Dismiss("order-1", "#SHIP-9"))
	assert.False(t, service.Dismiss("order-unknown", "#SHIP-1"))
}

func TestShipperVisible(t *testing.T) {
	shipment := Shipment{Steps: DefaultSteps, ActiveIndex: 2}
	assert.False(t, shipment.ShipperVisible())

	shipment.ActiveIndex = 3
	assert.True(t, shipment.ShipperVisible())

	shipment.ActiveIndex = 4
	assert.True(t, shipment.ShipperVisible())

	shipment.Dismissed = true
	assert.False(t, shipment.ShipperVisible())
}

func TestNormalizeOrderID(t *testing.T) {
	assert.Equal(t, "order-123", NormalizeOrderID(" #Order-123 "))
	assert.Equal(t, "order-123", NormalizeOrderID("ORDER-123"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "84901234567", NormalizePhone("+84 (90) 123-45 67"))
	assert.Equal(t, "0901234567", NormalizePhone("090 123 4567"))
}
