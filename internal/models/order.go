package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a placed order with its recipient and payment summary.
type Order struct {
	BaseModel
	OrderNumber  string      `gorm:"uniqueIndex" json:"order_number"`
	Status       string      `json:"status"`
	PlacedAt     time.Time   `json:"placed_at"`
	Subtotal     float64     `json:"subtotal"`
	ShippingFee  float64     `json:"shipping_fee"`
	TotalAmount  float64     `json:"total_amount"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone"`
	PaymentID    *uuid.UUID  `gorm:"type:uuid" json:"payment_id"`
	Items        []OrderItem `json:"items,omitempty"`
}

// ShipTo is the recipient address snapshot carried on an order item.
type ShipTo struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

type OrderItem struct {
	BaseModel
	OrderID           uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	LineID            string    `json:"line_id"`
	ProductName       string    `json:"product_name"`
	ItemNumber        string    `json:"item_number"`
	Quantity          int       `json:"quantity"`
	UnitPrice         float64   `json:"unit_price"`
	LineTotal         float64   `json:"line_total"`
	GiftMessage       string    `json:"gift_message"`
	ShippingMethod    string    `json:"shipping_method"`
	DeliveryDate      string    `json:"delivery_date"`
	ShippingAddressID string    `json:"shipping_address_id"`
	ShipTo            ShipTo    `gorm:"type:jsonb;serializer:json" json:"ship_to"`
}

// Payment records a processed payment for an order.
type Payment struct {
	BaseModel
	UserID    int     `json:"user_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	OrderInfo string  `gorm:"type:text" json:"order_info"`
}
