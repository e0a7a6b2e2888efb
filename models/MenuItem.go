package models

import (
	"gorm.io/gorm"
)

// MenuItem links a sellable menu entry to the recipe consumed when it sells.
type MenuItem struct {
	gorm.Model
	Name     string  `gorm:"uniqueIndex;not null" json:"name"`
	RecipeID uint    `gorm:"not null" json:"recipe_id"`
	Recipe   *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Price    float64 `json:"price"`
}
