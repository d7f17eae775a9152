package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/matie/internal/storage"
)

const dismissedMapKey = "trackingDismissedMap"

// Shipment is one tracked delivery with its timeline cursor.
type Shipment struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	Recipient   string `json:"recipient"`
	Steps       []Step `json:"steps"`
	ActiveIndex int    `json:"activeIndex"`
	Shipper     Driver `json:"shipper"`
	Dismissed   bool   `json:"dismissed"`
}

// ShipperVisible reports whether the driver card should be shown: only
// from on_delivery onward, and never for a dismissed shipment.
func (s Shipment) ShipperVisible() bool {
	if s.Dismissed || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Steps) {
		return false
	}
	code := s.Steps[s.ActiveIndex].Code
	return code == StepOnDelivery || code == StepDelivered
}

func (s Shipment) dismissKey() string {
	orderID := s.OrderID
	if orderID == "" {
		orderID = "unknown-order"
	}
	shipID := s.ID
	if shipID == "" {
		shipID = "unknown-shipment"
	}
	return orderID + "::" + shipID
}

// Seed describes a shipment before timeline enrichment. A nil
// ActiveIndex falls back to the demo default (out for delivery).
type Seed struct {
	ID          string
	Recipient   string
	Steps       []Step
	ActiveIndex *int
}

// Service owns the tracking machines for all orders and drives their
// periodic advancement.
type Service struct {
	mu       sync.Mutex
	backend  storage.Store
	machines map[string]*Machine
	now      func() time.Time
}

// NewService constructs a Service over the given storage backend.
func NewService(backend storage.Store) *Service {
	return &Service{
		backend:  backend,
		machines: make(map[string]*Machine),
		now:      time.Now,
	}
}

// Seed creates (or replaces) the machine for an order from shipment
// seeds, synthesizes its timeline, and persists the shipment list.
func (s *Service) Seed(orderID string, seeds []Seed) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dismissed := s.loadDismissedMap()

	machine := &Machine{backend: s.backend, orderID: orderID}
	for idx, seed := range seeds {
		shipment := enrich(seed, orderID, idx, now)
		shipment.Dismissed = dismissed[shipment.dismissKey()]
		machine.shipments = append(machine.shipments, shipment)
	}
	machine.save()

	s.machines[NormalizeOrderID(orderID)] = machine
	return machine
}

// Machine returns the machine for an order, reloading it from storage
// when the process has not seen the order yet.
func (s *Service) Machine(orderID string) (*Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := NormalizeOrderID(orderID)
	if machine, ok := s.machines[key]; ok {
		return machine, true
	}

	machine := &Machine{backend: s.backend, orderID: orderID}
	if !machine.load() {
		return nil, false
	}
	dismissed := s.loadDismissedMap()
	for i := range machine.shipments {
		machine.shipments[i].Dismissed = dismissed[machine.shipments[i].dismissKey()]
	}
	s.machines[key] = machine
	return machine, true
}

// Run advances every machine on the given interval until the context is
// cancelled. This models simulated real-time carrier progress.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			for _, machine := range s.machines {
				machine.Advance()
			}
			s.mu.Unlock()
		}
	}
}

// Dismiss marks one shipment of an order as dismissed, permanently.
func (s *Service) Dismiss(orderID, shipmentID string) bool {
	machine, ok := s.Machine(orderID)
	if !ok {
		return false
	}
	key, ok := machine.dismiss(shipmentID)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dismissed := s.loadDismissedMap()
	dismissed[key] = true
	data, err := json.Marshal(dismissed)
	if err != nil {
		log.Printf("[Tracking] marshal dismissed map failed: %v", err)
		return true
	}
	if err := s.backend.Put(dismissedMapKey, data); err != nil {
		log.Printf("[Tracking] persist dismissed map failed: %v", err)
	}
	return true
}

// loadDismissedMap reads the persisted dismissal flags; corrupt or
// missing data yields an empty map.
func (s *Service) loadDismissedMap() map[string]bool {
	dismissed := make(map[string]bool)
	data, err := s.backend.Get(dismissedMapKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Tracking] load dismissed map failed: %v", err)
		}
		return dismissed
	}
	if err := json.Unmarshal(data, &dismissed); err != nil {
		return make(map[string]bool)
	}
	return dismissed
}

// Machine tracks the shipments of a single order.
type Machine struct {
	mu        sync.Mutex
	backend   storage.Store
	orderID   string
	shipments []Shipment
}

// Shipments returns a copy of the tracked shipment list.
func (m *Machine) Shipments() []Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Shipment, len(m.shipments))
	copy(out, m.shipments)
	return out
}

// Advance bumps every non-dismissed shipment one step forward,
// saturating at the final stage. Indices never decrease.
func (m *Machine) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	changed := false
	for i := range m.shipments {
		s := &m.shipments[i]
		if s.Dismissed || s.ActiveIndex >= len(s.Steps)-1 {
			continue
		}
		s.ActiveIndex++
		changed = true
	}
	if changed {
		m.save()
	}
}

func (m *Machine) dismiss(shipmentID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.shipments {
		if m.shipments[i].ID == shipmentID {
			m.shipments[i].Dismissed = true
			m.save()
			return m.shipments[i].dismissKey(), true
		}
	}
	return "", false
}

func (m *Machine) storageKey() string {
	return "trackingShipments:" + NormalizeOrderID(m.orderID)
}

// save persists the shipment list. Must be called with the lock held.
func (m *Machine) save() {
	data, err := json.Marshal(m.shipments)
	if err != nil {
		log.Printf("[Tracking] marshal shipments failed: %v", err)
		return
	}
	if err := m.backend.Put(m.storageKey(), data); err != nil {
		log.Printf("[Tracking] persist shipments failed: %v", err)
	}
}

func (m *Machine) load() bool {
	data, err := m.backend.Get(m.storageKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Tracking] load shipments failed: %v", err)
		}
		return false
	}
	if err := json.Unmarshal(data, &m.shipments); err != nil {
		log.Printf("[Tracking] corrupt shipments for %s: %v", m.orderID, err)
		return false
	}
	return len(m.shipments) > 0
}

// enrich builds the display shipment from a seed: demo driver by
// position, back-dated timeline, clamped active index.
func enrich(seed Seed, orderID string, idx int, now time.Time) Shipment {
	steps := seed.Steps
	if len(steps) == 0 {
		steps = DefaultSteps
	}

	base := baseTime(now, idx)
	enriched := make([]Step, len(steps))
	for i, step := range steps {
		offset := stepOffsetMinutes[i%len(stepOffsetMinutes)]
		step.Time = base.Add(time.Duration(offset) * time.Minute).Format("15:04")
		enriched[i] = step
	}

	activeIndex := defaultActiveIndex
	if seed.ActiveIndex != nil {
		activeIndex = *seed.ActiveIndex
	}
	if activeIndex > len(enriched)-1 {
		activeIndex = len(enriched) - 1
	}
	if activeIndex < 0 {
		activeIndex = 0
	}

	id := seed.ID
	if id == "" {
		id = fmt.Sprintf("#SHIP-%d", idx+1)
	}
	recipient := seed.Recipient
	if recipient == "" {
		recipient = fmt.Sprintf("Address %d", idx+1)
	}

	return Shipment{
		ID:          id,
		OrderID:     orderID,
		Recipient:   recipient,
		Steps:       enriched,
		ActiveIndex: activeIndex,
		Shipper:     Drivers[idx%len(Drivers)],
	}
}
