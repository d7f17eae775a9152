package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/example/matie/internal/models"
)

// WarehouseService is a write-behind queue for stock adjustments:
// repeated deltas per product coalesce in memory and are flushed to the
// database on an interval. Confirmed values live in the warehouse table;
// pending values exist only here until the next flush.
type WarehouseService struct {
	mu      sync.Mutex
	db      *gorm.DB
	pending map[string]int
}

// StockLevel is a warehouse row with its unflushed delta.
type StockLevel struct {
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Pending     int       `json:"pending"`
	LastRestock time.Time `json:"last_restock"`
}

// NewWarehouseService constructs a WarehouseService.
func NewWarehouseService(db *gorm.DB) *WarehouseService {
	return &WarehouseService{db: db, pending: make(map[string]int)}
}

// Enqueue coalesces a stock delta for a product.
func (s *WarehouseService) Enqueue(productName string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[productName] += delta
	if s.pending[productName] == 0 {
		delete(s.pending, productName)
	}
}

// Flush applies all pending deltas to the database. Failed deltas are
// re-queued for the next flush.
func (s *WarehouseService) Flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string]int)
	s.mu.Unlock()

	for name, delta := range batch {
		if err := s.apply(name, delta); err != nil {
			log.Printf("[Warehouse] flush failed for %s: %v", name, err)
			s.Enqueue(name, delta)
		}
	}
}

// Run flushes on the given interval until the context is cancelled,
// with a final flush on shutdown.
func (s *WarehouseService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Flush()
			return
		case <-ticker.C:
			s.Flush()
		}
	}
}

// Snapshot lists every warehouse row overlaid with its pending delta.
func (s *WarehouseService) Snapshot() ([]StockLevel, error) {
	var items []models.WarehouseItem
	if err := s.db.Order("product_name asc").Find(&items).Error; err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	levels := make([]StockLevel, 0, len(items))
	for _, item := range items {
		levels = append(levels, StockLevel{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Pending:     s.pending[item.ProductName],
			LastRestock: item.LastRestock,
		})
	}
	return levels, nil
}

// CheckStock returns the effective stock (confirmed plus pending) for
// the requested product names; unknown products report zero.
func (s *WarehouseService) CheckStock(names []string) (map[string]int, error) {
	var items []models.WarehouseItem
	if err := s.db.Where("product_name IN ?", names).Find(&items).Error; err != nil {
		return nil, err
	}

	confirmed := make(map[string]int, len(items))
	for _, item := range items {
		confirmed[item.ProductName] = item.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stock := make(map[string]int, len(names))
	for _, name := range names {
		stock[name] = confirmed[name] + s.pending[name]
	}
	return stock, nil
}

// PendingCount reports how many products have unflushed deltas.
func (s *WarehouseService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *WarehouseService) apply(name string, delta int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.WarehouseItem
		err := tx.Where("product_name = ?", name).First(&item).Error
		if err == gorm.ErrRecordNotFound {
			item = models.WarehouseItem{ProductName: name, LastRestock: time.Now()}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		quantity := item.Quantity + delta
		if quantity < 0 {
			quantity = 0
		}

		updates := map[string]any{"quantity": quantity}
		if delta > 0 {
			updates["last_restock"] = time.Now()
		}
		return tx.Model(&models.WarehouseItem{}).
			Where("product_name = ?", name).
			Updates(updates).Error
	})
}
