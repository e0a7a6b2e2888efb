package costing

import (
	"fmt"
)

// ExplodeUsage computes the base-unit quantity of every raw inventory item
// consumed when multiplier batches of the recipe are produced. Items appearing
// under several branches of the tree are summed into a single entry.
func ExplodeUsage(s *Snapshot, recipeID uint, multiplier float64) (map[uint]float64, error) {
	usage := make(map[uint]float64)
	if err := explodeUsage(s, recipeID, multiplier, usage, make(map[uint]bool)); err != nil {
		return nil, err
	}
	return usage, nil
}

// AccumulateUsage explodes the recipe into an existing accumulator, so usage
// from many sales can be summed without intermediate maps.
func AccumulateUsage(s *Snapshot, recipeID uint, multiplier float64, usage map[uint]float64) error {
	return explodeUsage(s, recipeID, multiplier, usage, make(map[uint]bool))
}

func explodeUsage(s *Snapshot, recipeID uint, multiplier float64, usage map[uint]float64, path map[uint]bool) error {
	if path[recipeID] {
		return fmt.Errorf("%w: recipe %d revisited", ErrCyclicRecipe, recipeID)
	}
	if _, err := s.recipe(recipeID); err != nil {
		return err
	}
	path[recipeID] = true

	for _, component := range s.Components[recipeID] {
		resolved, err := s.resolveComponent(component)
		if err != nil {
			return err
		}

		if resolved.item != nil {
			usage[resolved.item.ID] += resolved.baseQty * multiplier
			continue
		}

		subMultiplier := multiplier * resolved.baseQty / resolved.subYieldBase
		if err := explodeUsage(s, resolved.subRecipe.ID, subMultiplier, usage, path); err != nil {
			return err
		}
	}

	path[recipeID] = false
	return nil
}
