package models

import (
	"time"

	"gorm.io/gorm"
)

// SalesRecord is one recorded sale of a menu item, the input for theoretical
// usage computation.
type SalesRecord struct {
	gorm.Model
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	QtySold    float64   `gorm:"not null" json:"qty_sold"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	Store      string    `gorm:"size:64" json:"store"`
}
