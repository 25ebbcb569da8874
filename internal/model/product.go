package model

import (
	"time"

	"github.com/google/uuid"
)

// Nutrition holds the optional per-tin nutrition facts.
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Product represents an item in the catalogue.
type Product struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	Price          float64    `json:"price" db:"price"`
	InventoryCount int        `json:"inventoryCount" db:"inventory_count"`
	Available      bool       `json:"available" db:"available"`
	Featured       bool       `json:"featured" db:"featured"`
	Category       *string    `json:"category,omitempty" db:"category"`
	Tagline        *string    `json:"tagline,omitempty" db:"tagline"`
	Weight         *string    `json:"weight,omitempty" db:"weight"`
	Image          *string    `json:"image,omitempty" db:"image"`
	Nutrition      *Nutrition `json:"nutrition,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductInput is the payload for creating or replacing a product.
type ProductInput struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	InventoryCount int        `json:"inventoryCount"`
	Available      bool       `json:"available"`
	Featured       bool       `json:"featured"`
	Category       *string    `json:"category,omitempty"`
	Tagline        *string    `json:"tagline,omitempty"`
	Weight         *string    `json:"weight,omitempty"`
	Nutrition      *Nutrition `json:"nutrition,omitempty"`
}

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Category      string
	AvailableOnly bool
	FeaturedOnly  bool
}

// LowStockThreshold is the inventory level below which a product is
// surfaced on the admin dashboard as running low.
const LowStockThreshold = 10
