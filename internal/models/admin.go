package models

import "time"

// ShippingRecord backs the admin shipping-status dashboard.
type ShippingRecord struct {
	BaseModel
	OrderRef          string     `gorm:"index" json:"order_id"`
	CustomerName      string     `json:"customer_name"`
	Address           string     `json:"address"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// CustomerProfile backs the admin customer dashboard.
// VIPLevel is one of New, Bronze, Silver, Gold.
type CustomerProfile struct {
	BaseModel
	UserID   int    `gorm:"uniqueIndex" json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	VIPLevel string `gorm:"default:New" json:"vip_level"`
	Status   string `gorm:"default:Active" json:"status"`
}

// WarehouseItem is the confirmed stock level for one product.
type WarehouseItem struct {
	BaseModel
	ProductName string    `gorm:"uniqueIndex" json:"product_name"`
	Quantity    int       `json:"quantity"`
	LastRestock time.Time `json:"last_restock"`
}
