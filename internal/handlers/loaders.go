package handlers

import (
	"context"

	"gorm.io/gorm"

	"mise/internal/costing"
	"mise/models"
)

// loadCostingSnapshot fetches the reference tables the engines traverse. One
// round of finds per request keeps the recursive computations free of queries.
func loadCostingSnapshot(ctx context.Context) (*costing.Snapshot, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	var unitRows []models.Unit
	if err := database.WithContext(ctx).Find(&unitRows).Error; err != nil {
		return nil, err
	}

	var items []models.InventoryItem
	if err := database.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := database.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}

	var components []models.RecipeComponent
	if err := database.WithContext(ctx).Find(&components).Error; err != nil {
		return nil, err
	}

	return costing.NewSnapshot(unitRows, items, recipes, components), nil
}

// varianceInputs bundles the ledger rows the reconciliation pass consumes.
type varianceInputs struct {
	MenuItems []models.MenuItem
	Sales     []models.SalesRecord
	Counts    []models.InventoryCount
	Receipts  []models.Receipt
}

func loadVarianceInputs(ctx context.Context) (varianceInputs, error) {
	if database == nil {
		return varianceInputs{}, gorm.ErrInvalidDB
	}

	var inputs varianceInputs
	if err := database.WithContext(ctx).Find(&inputs.MenuItems).Error; err != nil {
		return varianceInputs{}, err
	}
	if err := database.WithContext(ctx).Find(&inputs.Sales).Error; err != nil {
		return varianceInputs{}, err
	}
	if err := database.WithContext(ctx).Find(&inputs.Counts).Error; err != nil {
		return varianceInputs{}, err
	}
	if err := database.WithContext(ctx).Preload("Lines").Find(&inputs.Receipts).Error; err != nil {
		return varianceInputs{}, err
	}
	return inputs, nil
}
