package models

import (
	"time"

	"gorm.io/gorm"
)

// Receipt records one delivery from a supplier.
type Receipt struct {
	gorm.Model
	SupplierName string        `gorm:"size:128" json:"supplier_name"`
	Reference    string        `gorm:"size:64" json:"reference"`
	ReceivedAt   time.Time     `gorm:"not null;index" json:"received_at"`
	Lines        []ReceiptLine `gorm:"foreignKey:ReceiptID" json:"lines"`
}

// ReceiptLine is a single received quantity of an item, expressed in the
// item's own unit.
type ReceiptLine struct {
	gorm.Model
	ReceiptID       uint           `gorm:"not null;index" json:"receipt_id"`
	InventoryItemID uint           `gorm:"not null;index" json:"inventory_item_id"`
	InventoryItem   *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	Qty             float64        `gorm:"not null" json:"qty"`
	UnitCost        float64        `json:"unit_cost"`
}
