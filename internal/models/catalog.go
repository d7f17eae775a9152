package models

// Product is a configurable bakery product.
type Product struct {
	BaseModel
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	BoxImage    string  `json:"box_image"`
	BasePrice   float64 `json:"base_price"`
	Description string  `json:"description"`
}

// GiftOption is an add-on (card, candles) with a per-unit price.
type GiftOption struct {
	BaseModel
	Slug  string  `gorm:"uniqueIndex" json:"slug"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// AssortmentOption is a box-filler flavor with an extra per-slot price.
type AssortmentOption struct {
	BaseModel
	Slug       string  `gorm:"uniqueIndex" json:"slug"`
	Name       string  `json:"name"`
	ExtraPrice float64 `json:"extra_price"`
	Image      string  `json:"image"`
}

// KnownAddress is a saved address-book entry selectable in the cart.
type KnownAddress struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
}
