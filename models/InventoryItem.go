package models

import (
	"gorm.io/gorm"
)

// InventoryItem is a purchasable raw good. PricePerUnit is the cost of one of
// the item's own unit, and YieldPercent is the usable fraction (0-100) left
// after trim, waste, and shrink.
type InventoryItem struct {
	gorm.Model
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	UnitID       uint    `gorm:"not null" json:"unit_id"`
	Unit         *Unit   `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	PricePerUnit float64 `gorm:"not null" json:"price_per_unit"`
	YieldPercent float64 `gorm:"not null;default:100" json:"yield_percent"`
	Category     string  `gorm:"size:64" json:"category"`
	Location     string  `gorm:"size:64" json:"location"`
}
