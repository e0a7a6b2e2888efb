package models

import (
	"gorm.io/gorm"
)

// RecipeComponent is a single line of a recipe. Deleting the recipe deletes
// its components.
type RecipeComponent struct {
	gorm.Model
	RecipeID uint    `gorm:"not null;index" json:"recipe_id"` // Parent Recipe
	Qty      float64 `gorm:"not null" json:"qty"`
	UnitID   uint    `gorm:"not null" json:"unit_id"`

	// --- Component link ---
	// One of these will be non-null, the other will be null.
	InventoryItemID *uint `json:"inventory_item_id,omitempty"`
	SubRecipeID     *uint `json:"sub_recipe_id,omitempty"`

	// YieldOverride supersedes the referenced item's default yield percent for
	// this line only. Meaningful only for inventory item components.
	YieldOverride *float64 `json:"yield_override,omitempty"`

	// --- Preloadable Data ---
	// These allow GORM to fetch the component's details.
	// We use pointers so they can be null.
	Unit          *Unit          `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	SubRecipe     *Recipe        `gorm:"foreignKey:SubRecipeID" json:"sub_recipe,omitempty"`
}
