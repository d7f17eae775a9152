package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/example/matie/internal/models"
)

// Seed inserts the default catalog and initial warehouse stock. Tables
// that already hold rows are left untouched.
func Seed(conn *gorm.DB) {
	seedProducts(conn)
	seedGiftOptions(conn)
	seedAssortments(conn)
	seedAddresses(conn)
	seedCustomers(conn)
	seedWarehouse(conn)
}

func seedProducts(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	products := []models.Product{
		{
			Slug:        "cupcake-box-001",
			Name:        "Mooncake Gift Box (6 pieces)",
			BasePrice:   38.00,
			Image:       "/images/mooncake-box.jpg",
			BoxImage:    "/images/mooncake-box-thumb.jpg",
			Description: "A beautiful box of premium handmade cupcakes, perfect for gifting on special occasions.",
		},
	}

	if err := conn.Create(&products).Error; err != nil {
		log.Printf("[Seed] products: %v", err)
	}
}

func seedGiftOptions(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.GiftOption{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	options := []models.GiftOption{
		{Slug: "happy-birthday-card", Name: "Happy Birthday Card", Price: 6.00},
		{Slug: "birthday-candles", Name: "Birthday Candles", Price: 6.00},
		{Slug: "merry-christmas-card", Name: "Merry Christmas Card", Price: 6.00},
		{Slug: "happy-holidays-card", Name: "Happy Holidays Card", Price: 6.00},
		{Slug: "mid-autumn-card", Name: "Happy Mid-Autumn Card", Price: 6.00},
	}

	if err := conn.Create(&options).Error; err != nil {
		log.Printf("[Seed] gift options: %v", err)
	}
}

func seedAssortments(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.AssortmentOption{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	options := []models.AssortmentOption{
		{Slug: "tiramisu-italy", Name: "Tiramisu · Italy", ExtraPrice: 0},
		{Slug: "macaron-france", Name: "Macaron · France", ExtraPrice: 0},
		{Slug: "cheesecake-usa", Name: "NY Cheesecake · USA", ExtraPrice: 0},
		{Slug: "black-forest-germany", Name: "Black Forest · Germany", ExtraPrice: 0},
		{Slug: "pavlova-australia", Name: "Pavlova · Australia/NZ", ExtraPrice: 0},
		{Slug: "pastel-nata-portugal", Name: "Pastel de Nata · Portugal", ExtraPrice: 0},
		{Slug: "mille-crepe-japan", Name: "Mille Crêpe · Japan", ExtraPrice: 0},
		{Slug: "tres-leches-mexico", Name: "Tres Leches · Mexico", ExtraPrice: 0},
	}

	if err := conn.Create(&options).Error; err != nil {
		log.Printf("[Seed] assortments: %v", err)
	}
}

func seedAddresses(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.KnownAddress{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	addresses := []models.KnownAddress{
		{Slug: "address-1", Name: "My Home", FullAddress: "123 Main Street, District 1, Ho Chi Minh City"},
		{Slug: "address-2", Name: "Mom's House", FullAddress: "456 Oak Avenue, District 3, Ho Chi Minh City"},
		{Slug: "address-3", Name: "Boss's Office", FullAddress: "789 Business Tower, District 7, Ho Chi Minh City"},
	}

	if err := conn.Create(&addresses).Error; err != nil {
		log.Printf("[Seed] addresses: %v", err)
	}
}

func seedCustomers(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.CustomerProfile{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	customers := []models.CustomerProfile{
		{UserID: 1, FullName: "Anna Tran", Email: "anna.tran@example.com", Phone: "0901234567", VIPLevel: "Gold", Status: "Active"},
		{UserID: 2, FullName: "Minh Nguyen", Email: "minh.nguyen@example.com", Phone: "0902345678", VIPLevel: "Silver", Status: "Active"},
		{UserID: 3, FullName: "Linh Pham", Email: "linh.pham@example.com", Phone: "0903456789", VIPLevel: "Bronze", Status: "Active"},
		{UserID: 4, FullName: "David Le", Email: "david.le@example.com", Phone: "0904567890", VIPLevel: "New", Status: "Active"},
	}

	if err := conn.Create(&customers).Error; err != nil {
		log.Printf("[Seed] customers: %v", err)
	}
}

func seedWarehouse(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.WarehouseItem{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	items := []models.WarehouseItem{
		{ProductName: "Mooncake Gift Box (6 pieces)", Quantity: 120},
		{ProductName: "Tiramisu · Italy", Quantity: 80},
		{ProductName: "Macaron · France", Quantity: 80},
		{ProductName: "NY Cheesecake · USA", Quantity: 80},
		{ProductName: "Black Forest · Germany", Quantity: 80},
		{ProductName: "Pavlova · Australia/NZ", Quantity: 80},
		{ProductName: "Pastel de Nata · Portugal", Quantity: 80},
		{ProductName: "Mille Crêpe · Japan", Quantity: 80},
		{ProductName: "Tres Leches · Mexico", Quantity: 80},
	}

	if err := conn.Create(&items).Error; err != nil {
		log.Printf("[Seed] warehouse: %v", err)
	}
}
