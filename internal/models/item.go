package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category represents the fixed classification of an inventory item
type Category string

const (
	// Item categories
	CategoryFood        Category = "Food"
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryDocuments   Category = "Documents"
	CategoryMedicine    Category = "Medicine"
	CategoryMisc        Category = "Misc"
	CategoryTools       Category = "Tools"

	// CategoryAll is a filter sentinel that matches every item.
	// It is never stored on an item.
	CategoryAll Category = "All"
)

// Categories lists every storable category, in display order.
var Categories = []Category{
	CategoryFood,
	CategoryElectronics,
	CategoryClothing,
	CategoryDocuments,
	CategoryMedicine,
	CategoryMisc,
	CategoryTools,
}

// Valid reports whether c is a storable category member.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a raw string onto the enumeration,
// falling back to Misc for anything unknown.
func ParseCategory(s string) Category {
	if c := Category(s); c.Valid() {
		return c
	}
	return CategoryMisc
}

// DefaultLocation is assigned when an item is saved without a location.
const DefaultLocation = "Unassigned"

// Validation errors reported when constructing or saving an item.
var (
	ErrNameRequired    = errors.New("item name is required")
	ErrInvalidCategory = errors.New("unknown item category")
)

// InventoryItem represents one tracked household possession
type InventoryItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Location   string     `json:"location"`
	AddedDate  time.Time  `json:"addedDate"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// NewItem builds a saved item from form input, assigning the identifier
// and creation timestamp and substituting defaults for omitted fields.
func NewItem(name, location string, category Category) InventoryItem {
	if location == "" {
		location = DefaultLocation
	}
	if category == "" {
		category = CategoryMisc
	}
	return InventoryItem{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Location:  location,
		AddedDate: time.Now(),
	}
}

// Validate checks the invariants every saved item must hold.
func (i InventoryItem) Validate() error {
	if i.Name == "" {
		return ErrNameRequired
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// AIAnalysisResult represents a draft record proposed by the enrichment
// service for a photographed item. It is merged into the add-item form and
// discarded once the user saves or cancels; it is never persisted.
type AIAnalysisResult struct {
	Name              string
	Category          Category
	ExpiryDate        *time.Time
	SuggestedLocation string
	Notes             string
}
