package models

import (
	"gorm.io/gorm"
)

// Recipe describes one batch of a prepared item. YieldQty and YieldUnitID give
// the total output of a single batch; WastePercent is an additional loss
// applied to the recipe as a whole. ComputedCost caches the last total batch
// cost and is refreshed whenever components change.
type Recipe struct {
	gorm.Model
	Name            string            `gorm:"not null" json:"name"`
	YieldQty        float64           `gorm:"not null" json:"yield_qty"`
	YieldUnitID     uint              `gorm:"not null" json:"yield_unit_id"`
	YieldUnit       *Unit             `gorm:"foreignKey:YieldUnitID" json:"yield_unit,omitempty"`
	WastePercent    float64           `gorm:"not null;default:0" json:"waste_percent"`
	ComputedCost    float64           `json:"computed_cost"`
	CanBeIngredient bool              `gorm:"not null;default:false" json:"can_be_ingredient"`
	Components      []RecipeComponent `gorm:"foreignKey:RecipeID" json:"components"`
}
