// Package store persists the inventory as a single JSON-encoded slot in a
// local SQLite database. The whole list is rewritten on every change; there
// is no versioning and no migration — a value that fails to decode is treated
// the same as an empty slot.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"stash/internal/models"
)

// DefaultSlot is the slot key holding the inventory list.
const DefaultSlot = "stash_inventory"

type slotRow struct {
	Key       string `gorm:"primary_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "slots" }

// Open opens (creating if needed) the slot database at path.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening slot database: %w", err)
	}
	if err := db.AutoMigrate(&slotRow{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating slot table: %w", err)
	}
	return db, nil
}

// SlotStore reads and writes one named slot.
type SlotStore struct {
	db     *gorm.DB
	key    string
	logger *zap.Logger
}

// NewSlotStore wraps db with a store over the given slot key.
// An empty key selects DefaultSlot; a nil logger disables logging.
func NewSlotStore(db *gorm.DB, key string, logger *zap.Logger) *SlotStore {
	if key == "" {
		key = DefaultSlot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotStore{db: db, key: key, logger: logger}
}

// Load returns the persisted item list. A missing slot or a value that fails
// to decode silently yields the seed set; that is the only fallback path.
func (s *SlotStore) Load() []models.InventoryItem {
	var row slotRow
	err := s.db.Where("key = ?", s.key).First(&row).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			s.logger.Warn("reading slot", zap.String("slot", s.key), zap.Error(err))
		}
		return SeedItems(time.Now())
	}

	var items []models.InventoryItem
	if err := json.Unmarshal([]byte(row.Value), &items); err != nil {
		s.logger.Warn("decoding slot, falling back to seed data",
			zap.String("slot", s.key), zap.Error(err))
		return SeedItems(time.Now())
	}
	if items == nil {
		return SeedItems(time.Now())
	}
	return items
}

// Save serializes the full list and rewrites the slot.
func (s *SlotStore) Save(items []models.InventoryItem) error {
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}

	var row slotRow
	err = s.db.Where(slotRow{Key: s.key}).
		Assign(slotRow{Value: string(value)}).
		FirstOrCreate(&row).Error
	if err != nil {
		s.logger.Error("writing slot", zap.String("slot", s.key), zap.Error(err))
		return fmt.Errorf("writing slot %s: %w", s.key, err)
	}
	return nil
}
