package costing

import (
	"fmt"

	"mise/models"
)

// ComponentCost is one line of a recipe cost breakdown.
type ComponentCost struct {
	ComponentID  uint    `json:"component_id"`
	Name         string  `json:"name"`
	Qty          float64 `json:"qty"`
	UnitName     string  `json:"unit"`
	Contribution float64 `json:"contribution"`
}

// RecipeCost computes the total monetary cost of one batch of the recipe,
// including the recipe-level waste multiplier. The computation is pure: the
// caller persists the result into the cached cost field if desired.
func RecipeCost(s *Snapshot, recipeID uint) (float64, error) {
	return recipeCost(s, recipeID, make(map[uint]bool))
}

// RecipeCostBreakdown returns the total batch cost together with each direct
// component's contribution before the waste multiplier is applied.
func RecipeCostBreakdown(s *Snapshot, recipeID uint) (float64, []ComponentCost, error) {
	recipe, err := s.recipe(recipeID)
	if err != nil {
		return 0, nil, err
	}

	path := map[uint]bool{recipeID: true}
	lines := make([]ComponentCost, 0, len(s.Components[recipeID]))
	total := 0.0
	for _, component := range s.Components[recipeID] {
		resolved, err := s.resolveComponent(component)
		if err != nil {
			return 0, nil, err
		}
		contribution, err := componentContribution(s, component, resolved, path)
		if err != nil {
			return 0, nil, err
		}
		lines = append(lines, ComponentCost{
			ComponentID:  component.ID,
			Name:         componentName(resolved),
			Qty:          component.Qty,
			UnitName:     resolved.unit.Name,
			Contribution: contribution,
		})
		total += contribution
	}

	total *= 1 + recipe.WastePercent/100
	return total, lines, nil
}

func recipeCost(s *Snapshot, recipeID uint, path map[uint]bool) (float64, error) {
	if path[recipeID] {
		return 0, fmt.Errorf("%w: recipe %d revisited", ErrCyclicRecipe, recipeID)
	}
	recipe, err := s.recipe(recipeID)
	if err != nil {
		return 0, err
	}
	path[recipeID] = true

	total := 0.0
	for _, component := range s.Components[recipeID] {
		resolved, err := s.resolveComponent(component)
		if err != nil {
			return 0, err
		}
		contribution, err := componentContribution(s, component, resolved, path)
		if err != nil {
			return 0, err
		}
		total += contribution
	}

	path[recipeID] = false
	return total * (1 + recipe.WastePercent/100), nil
}

func componentContribution(s *Snapshot, component models.RecipeComponent, resolved resolvedComponent, path map[uint]bool) (float64, error) {
	if resolved.item != nil {
		pricePerBase := resolved.item.PricePerUnit / resolved.itemUnit.ToBaseRatio
		costPerBase := pricePerBase
		// A zero yield falls back to the raw price rather than dividing by zero.
		if yield := effectiveYield(component, resolved.item); yield > 0 {
			costPerBase = pricePerBase / (yield / 100)
		}
		return resolved.baseQty * costPerBase, nil
	}

	subTotal, err := recipeCost(s, resolved.subRecipe.ID, path)
	if err != nil {
		return 0, err
	}
	return resolved.baseQty * (subTotal / resolved.subYieldBase), nil
}

func componentName(resolved resolvedComponent) string {
	if resolved.item != nil {
		return resolved.item.Name
	}
	return resolved.subRecipe.Name
}
