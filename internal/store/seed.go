package store

import (
	"time"

	"stash/internal/models"
)

// SeedItems returns the fixed starter inventory shown when no valid persisted
// state exists: one item expiring within three days, one that never expires,
// and one that expired yesterday.
func SeedItems(now time.Time) []models.InventoryItem {
	inThreeDays := now.Add(3 * 24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	return []models.InventoryItem{
		{
			ID:         "seed-almond-milk",
			Name:       "Almond Milk",
			Category:   models.CategoryFood,
			Location:   "Fridge Top Shelf",
			AddedDate:  now,
			ExpiryDate: &inThreeDays,
		},
		{
			ID:        "seed-aa-batteries",
			Name:      "AA Batteries",
			Category:  models.CategoryElectronics,
			Location:  "Living Room Drawer",
			AddedDate: now,
			Notes:     "Pack of 12",
		},
		{
			ID:         "seed-cough-syrup",
			Name:       "Cough Syrup",
			Category:   models.CategoryMedicine,
			Location:   "Bathroom Cabinet",
			AddedDate:  now,
			ExpiryDate: &yesterday,
		},
	}
}
