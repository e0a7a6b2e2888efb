package units

import (
	"errors"
	"fmt"

	"mise/models"
)

var (
	// ErrUnknownUnit indicates a lookup for a unit ID that is not in the registry.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrKindMismatch indicates a conversion between units of different kinds.
	ErrKindMismatch = errors.New("units: kind mismatch")
)

// BaseQuantity returns qty expressed in the base unit of u's kind.
func BaseQuantity(qty float64, u models.Unit) float64 {
	return qty * u.ToBaseRatio
}

// Convert re-expresses qty, given in from, as a quantity of to. Units of
// different kinds are never convertible.
func Convert(qty float64, from, to models.Unit) (float64, error) {
	if from.Kind != to.Kind {
		return 0, fmt.Errorf("%w: %s (%s) to %s (%s)", ErrKindMismatch, from.Name, from.Kind, to.Name, to.Kind)
	}
	return BaseQuantity(qty, from) / to.ToBaseRatio, nil
}

// Registry is an immutable in-memory unit table, built once per request from
// the unit reference data.
type Registry struct {
	byID map[uint]models.Unit
}

// NewRegistry indexes the provided units by ID.
func NewRegistry(units []models.Unit) *Registry {
	byID := make(map[uint]models.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return &Registry{byID: byID}
}

// Lookup returns the unit with the given ID.
func (r *Registry) Lookup(id uint) (models.Unit, error) {
	u, ok := r.byID[id]
	if !ok {
		return models.Unit{}, fmt.Errorf("%w: id %d", ErrUnknownUnit, id)
	}
	return u, nil
}

// BaseQuantity resolves the unit by ID and returns qty in base units of its kind.
func (r *Registry) BaseQuantity(qty float64, unitID uint) (float64, error) {
	u, err := r.Lookup(unitID)
	if err != nil {
		return 0, err
	}
	return BaseQuantity(qty, u), nil
}

// Convert resolves both units by ID and converts qty between them.
func (r *Registry) Convert(qty float64, fromID, toID uint) (float64, error) {
	from, err := r.Lookup(fromID)
	if err != nil {
		return 0, err
	}
	to, err := r.Lookup(toID)
	if err != nil {
		return 0, err
	}
	return Convert(qty, from, to)
}

// Len reports how many units the registry holds.
func (r *Registry) Len() int {
	return len(r.byID)
}
