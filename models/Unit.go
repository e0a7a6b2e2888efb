package models

import (
	"gorm.io/gorm"
)

// UnitKind groups units that can be converted between one another. Units of
// different kinds are never directly convertible.
type UnitKind string

const (
	UnitKindWeight UnitKind = "weight"
	UnitKindVolume UnitKind = "volume"
	UnitKindCount  UnitKind = "count"
)

// ValidUnitKind reports whether the provided value is a known measurement kind.
func ValidUnitKind(kind UnitKind) bool {
	switch kind {
	case UnitKindWeight, UnitKindVolume, UnitKindCount:
		return true
	default:
		return false
	}
}

// Unit is a measurement unit. ToBaseRatio converts one of this unit into the
// canonical base unit of its kind (grams, milliliters, or each). Units are
// reference data: created once, read by every computation.
type Unit struct {
	gorm.Model
	Name        string   `gorm:"uniqueIndex;not null" json:"name"`
	Kind        UnitKind `gorm:"size:16;not null" json:"kind"`
	ToBaseRatio float64  `gorm:"not null" json:"to_base_ratio"`
}
