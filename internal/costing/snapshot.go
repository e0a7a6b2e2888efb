package costing

import (
	"errors"
	"fmt"

	"mise/internal/units"
	"mise/models"
)

var (
	// ErrCyclicRecipe indicates the component graph loops back onto a recipe
	// already on the current recursion path.
	ErrCyclicRecipe = errors.New("costing: cyclic recipe reference")
	// ErrMissingReference indicates a component points at a unit, item, or
	// recipe that does not exist in the snapshot.
	ErrMissingReference = errors.New("costing: missing reference")
	// ErrInvalidYieldQty indicates a sub-recipe whose batch yield converts to
	// zero or negative base units, which makes per-unit cost undefined.
	ErrInvalidYieldQty = errors.New("costing: invalid recipe yield quantity")
)

// Snapshot holds the read-only reference data for one computation pass. All
// entities are fetched once up front so the recursive algorithms never touch
// the data store.
type Snapshot struct {
	Units      *units.Registry
	Items      map[uint]models.InventoryItem
	Recipes    map[uint]models.Recipe
	Components map[uint][]models.RecipeComponent
}

// NewSnapshot indexes the fetched reference rows for traversal.
func NewSnapshot(unitRows []models.Unit, items []models.InventoryItem, recipes []models.Recipe, components []models.RecipeComponent) *Snapshot {
	itemsByID := make(map[uint]models.InventoryItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	recipesByID := make(map[uint]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		recipesByID[recipe.ID] = recipe
	}

	byRecipe := make(map[uint][]models.RecipeComponent)
	for _, component := range components {
		byRecipe[component.RecipeID] = append(byRecipe[component.RecipeID], component)
	}

	return &Snapshot{
		Units:      units.NewRegistry(unitRows),
		Items:      itemsByID,
		Recipes:    recipesByID,
		Components: byRecipe,
	}
}

func (s *Snapshot) item(id uint) (models.InventoryItem, error) {
	item, ok := s.Items[id]
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("%w: inventory item %d", ErrMissingReference, id)
	}
	return item, nil
}

func (s *Snapshot) recipe(id uint) (models.Recipe, error) {
	recipe, ok := s.Recipes[id]
	if !ok {
		return models.Recipe{}, fmt.Errorf("%w: recipe %d", ErrMissingReference, id)
	}
	return recipe, nil
}

func (s *Snapshot) unit(id uint) (models.Unit, error) {
	u, err := s.Units.Lookup(id)
	if err != nil {
		return models.Unit{}, fmt.Errorf("%w: unit %d", ErrMissingReference, id)
	}
	return u, nil
}

// resolvedComponent carries the lookups shared by the cost and usage
// traversals. Exactly one of item or subRecipe is set.
type resolvedComponent struct {
	baseQty      float64
	unit         models.Unit
	item         *models.InventoryItem
	itemUnit     models.Unit
	subRecipe    *models.Recipe
	subYieldBase float64
}

// resolveComponent validates a component's references and converts its
// quantity into base units. A component whose unit kind differs from the
// referenced item's (or sub-recipe yield's) unit kind is rejected rather than
// treated as ratio 1.
func (s *Snapshot) resolveComponent(component models.RecipeComponent) (resolvedComponent, error) {
	unit, err := s.unit(component.UnitID)
	if err != nil {
		return resolvedComponent{}, err
	}

	resolved := resolvedComponent{
		baseQty: units.BaseQuantity(component.Qty, unit),
		unit:    unit,
	}

	switch {
	case component.InventoryItemID != nil:
		item, err := s.item(*component.InventoryItemID)
		if err != nil {
			return resolvedComponent{}, err
		}
		itemUnit, err := s.unit(item.UnitID)
		if err != nil {
			return resolvedComponent{}, err
		}
		if itemUnit.Kind != unit.Kind {
			return resolvedComponent{}, fmt.Errorf("%w: component %d uses %s (%s) for item %q measured in %s (%s)",
				units.ErrKindMismatch, component.ID, unit.Name, unit.Kind, item.Name, itemUnit.Name, itemUnit.Kind)
		}
		resolved.item = &item
		resolved.itemUnit = itemUnit
		return resolved, nil

	case component.SubRecipeID != nil:
		sub, err := s.recipe(*component.SubRecipeID)
		if err != nil {
			return resolvedComponent{}, err
		}
		yieldUnit, err := s.unit(sub.YieldUnitID)
		if err != nil {
			return resolvedComponent{}, err
		}
		if yieldUnit.Kind != unit.Kind {
			return resolvedComponent{}, fmt.Errorf("%w: component %d uses %s (%s) for recipe %q yielding %s (%s)",
				units.ErrKindMismatch, component.ID, unit.Name, unit.Kind, sub.Name, yieldUnit.Name, yieldUnit.Kind)
		}
		yieldBase := units.BaseQuantity(sub.YieldQty, yieldUnit)
		if yieldBase <= 0 {
			return resolvedComponent{}, fmt.Errorf("%w: recipe %q yields %v %s", ErrInvalidYieldQty, sub.Name, sub.YieldQty, yieldUnit.Name)
		}
		resolved.subRecipe = &sub
		resolved.subYieldBase = yieldBase
		return resolved, nil

	default:
		return resolvedComponent{}, fmt.Errorf("%w: component %d links neither item nor recipe", ErrMissingReference, component.ID)
	}
}

// effectiveYield returns the yield percent applied to an item component: the
// line's override when present, otherwise the item's default.
func effectiveYield(component models.RecipeComponent, item *models.InventoryItem) float64 {
	if component.YieldOverride != nil {
		return *component.YieldOverride
	}
	return item.YieldPercent
}
