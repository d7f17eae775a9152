package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/matie/internal/storage"
)

// Store is the single source of truth for one session's cart. Every
// mutation persists the full line sequence and refreshes the badge count;
// persistence failures are logged and swallowed so the in-memory state
// stays authoritative for the session.
type Store struct {
	mu      sync.Mutex
	backend storage.Store
	key     string
	shipKey string

	lines     []Line
	promo     *Promo
	multiShip bool
	badge     int

	now func() time.Time
}

// NewStore constructs a Store bound to one session's storage keys.
func NewStore(backend storage.Store, sessionID string) *Store {
	return &Store{
		backend: backend,
		key:     "cart:" + sessionID,
		shipKey: "cart_multi_ship_mode:" + sessionID,
		now:     time.Now,
	}
}

// Load reads the persisted cart, backfilling missing optional fields on
// lines written by earlier configuration flows. It never fails: a missing
// key or a parse error yields an empty cart.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	data, err := s.backend.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Cart] load failed for %s: %v", s.key, err)
		}
	} else if err := json.Unmarshal(data, &s.lines); err != nil {
		log.Printf("[Cart] corrupt cart data for %s: %v", s.key, err)
		s.lines = nil
	}

	for i := range s.lines {
		s.lines[i].normalize()
	}
	s.refreshBadge()

	s.multiShip = false
	if data, err := s.backend.Get(s.shipKey); err == nil {
		s.multiShip = string(data) == "true"
	}
}

// Lines returns a copy of the cart sequence in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the line with the given id.
func (s *Store) Line(lineID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.find(lineID); line != nil {
		return *line, true
	}
	return Line{}, false
}

// Badge is the visible item-count badge (sum of line quantities).
func (s *Store) Badge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badge
}

// Subtotal is the cart total computed from unit prices.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, line := range s.lines {
		total += line.UnitPrice() * float64(line.Quantity)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Add appends a configured line and persists.
func (s *Store) Add(line Line) Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	line.normalize()
	s.lines = append(s.lines, line)
	s.save()
	return line
}

// SetQuantity sets a line's quantity, clamped to at least 1. Unknown
// line ids are a no-op.
func (s *Store) SetQuantity(lineID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
	s.save()
	return true
}

// AdjustQuantity applies a delta to a line's quantity.
func (s *Store) AdjustQuantity(lineID string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	quantity := line.Quantity + delta
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
	s.save()
	return true
}

// Remove deletes a line. Callers are expected to have confirmed the
// removal with the user; it is never triggered automatically.
func (s *Store) Remove(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// SetShippingAddress replaces a line's inline address without touching
// its shippingAddressId.
func (s *Store) SetShippingAddress(lineID string, address Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	line.ShippingAddress = address
	s.save()
	return true
}

// SetShippingAddressID points a line at a saved address-book entry.
// An empty id clears the reference.
func (s *Store) SetShippingAddressID(lineID, addressID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	line.ShippingAddressID = addressID
	s.save()
	return true
}

// SetShippingMethod switches a line's delivery method. Leaving pick-date
// archives the chosen date into pickDateSelected before the estimated
// date is recomputed; returning to pick-date restores it, or leaves the
// date blank for the user to choose.
func (s *Store) SetShippingMethod(lineID, method string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	s.applyShippingMethod(line, method)
	s.save()
	return true
}

// SetPickDate records the user's chosen pick-date delivery date.
func (s *Store) SetPickDate(lineID, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	line.DeliveryDate = date
	line.PickDateSelected = date
	s.save()
	return true
}

// SetGiftMessage replaces a line's gift message.
func (s *Store) SetGiftMessage(lineID, message string) bool {
	return s.update(lineID, func(line *Line) { line.GiftMessage = message })
}

// SetGiftMessageType selects the gift message mode; choosing "none"
// clears any entered message.
func (s *Store) SetGiftMessageType(lineID, messageType string) bool {
	return s.update(lineID, func(line *Line) {
		if messageType == GiftMessageNone || messageType == "" {
			line.GiftMessageType = ""
			line.GiftMessage = ""
			return
		}
		line.GiftMessageType = messageType
	})
}

// SetRelationship replaces the recipient relationship label.
func (s *Store) SetRelationship(lineID, relationship string) bool {
	return s.update(lineID, func(line *Line) { line.RecipientRelationship = relationship })
}

// SetOccasion replaces the recipient occasion label.
func (s *Store) SetOccasion(lineID, occasion string) bool {
	return s.update(lineID, func(line *Line) { line.RecipientOccasion = occasion })
}

// ApplyCommonAddress writes one address to every line (single-ship mode).
// A non-empty deliveryDate is applied to every line as well.
func (s *Store) ApplyCommonAddress(address Address, deliveryDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		s.lines[i].ShippingAddress = address
		if deliveryDate != "" {
			s.lines[i].DeliveryDate = deliveryDate
		}
	}
	s.save()
}

// ApplyCommonShippingMethod switches every line's delivery method with
// the same pick-date archival rules as SetShippingMethod.
func (s *Store) ApplyCommonShippingMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		s.applyShippingMethod(&s.lines[i], method)
	}
	s.save()
}

// MultiShip reports whether multi-recipient mode is on.
func (s *Store) MultiShip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.multiShip
}

// SetMultiShip toggles multi-recipient mode and persists the flag.
func (s *Store) SetMultiShip(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiShip = enabled
	value := "false"
	if enabled {
		value = "true"
	}
	if err := s.backend.Put(s.shipKey, []byte(value)); err != nil {
		log.Printf("[Cart] persist multi-ship mode failed: %v", err)
	}
}

// Promo returns the active promo, if any.
func (s *Store) Promo() *Promo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promo
}

// ApplyPromo resolves and stores a promo code for the session. Both an
// empty and an invalid code clear the active promo; only the invalid one
// returns ErrInvalidPromo.
func (s *Store) ApplyPromo(raw string) (*Promo, error) {
	promo, err := ApplyPromoCode(raw)
	s.mu.Lock()
	s.promo = promo
	s.mu.Unlock()
	return promo, err
}

// Clear empties the cart and removes the persisted copy.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.promo = nil
	s.badge = 0
	if err := s.backend.Delete(s.key); err != nil {
		log.Printf("[Cart] clear failed for %s: %v", s.key, err)
	}
}

func (s *Store) applyShippingMethod(line *Line, method string) {
	previous := line.ShippingMethod
	line.ShippingMethod = method

	if method == MethodPickDate {
		if line.PickDateSelected != "" {
			line.DeliveryDate = line.PickDateSelected
		}
		return
	}

	if previous == MethodPickDate && line.DeliveryDate != "" {
		line.PickDateSelected = line.DeliveryDate
	}
	line.DeliveryDate = EstimatedDeliveryDate(method, s.now()).Format(ISODate)
}

func (s *Store) update(lineID string, apply func(*Line)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.find(lineID)
	if line == nil {
		return false
	}
	apply(line)
	s.save()
	return true
}

func (s *Store) find(lineID string) *Line {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			return &s.lines[i]
		}
	}
	return nil
}

// save persists the full sequence and refreshes the badge count. Must be
// called with the lock held.
func (s *Store) save() {
	s.refreshBadge()
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("[Cart] marshal failed for %s: %v", s.key, err)
		return
	}
	if err := s.backend.Put(s.key, data); err != nil {
		log.Printf("[Cart] persist failed for %s: %v", s.key, err)
	}
}

func (s *Store) refreshBadge() {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	s.badge = count
}
