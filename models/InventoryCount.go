package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryCount is a physical count snapshot: the on-hand quantity of one
// item at one moment, expressed in the item's own unit. Pairs of counts bound
// a reconciliation period.
type InventoryCount struct {
	gorm.Model
	InventoryItemID uint           `gorm:"not null;index" json:"inventory_item_id"`
	InventoryItem   *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	Quantity        float64        `gorm:"not null" json:"quantity"`
	CountedAt       time.Time      `gorm:"not null;index" json:"counted_at"`
	Location        string         `gorm:"size:64" json:"location"`
}
