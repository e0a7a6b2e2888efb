package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"gorm.io/gorm"

	"mise/internal/costing"
	applog "mise/internal/log"
	"mise/internal/units"
	"mise/internal/views/pages"
	"mise/models"
)

var errRecipeNotFound = errors.New("handlers: recipe not found")

// recipeCostLocks serializes cost write-backs per recipe so concurrent
// recomputes cannot interleave their updates. Reads never take the lock.
var recipeCostLocks sync.Map

func recipeCostLock(recipeID uint) *sync.Mutex {
	lock, _ := recipeCostLocks.LoadOrStore(recipeID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

type recipeCostResponse struct {
	RecipeID   uint                    `json:"recipe_id"`
	RecipeName string                  `json:"recipe_name"`
	TotalCost  float64                 `json:"total_cost"`
	Components []costing.ComponentCost `json:"components"`
}

// RecomputeRecipeCost recalculates a recipe's batch cost from the current
// reference data, persists it, and returns the per-component breakdown.
func RecomputeRecipeCost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	recipeID := pages.ParseUint(r.PathValue("id"))
	if recipeID == 0 {
		http.Error(w, "Provide a valid recipe id.", http.StatusBadRequest)
		return
	}

	result, err := recomputeRecipeCost(r.Context(), recipeID)
	if err != nil {
		writeCostingError(w, r, err, recipeID)
		return
	}

	// The dashboard recost button posts here as a plain form; send it back
	// to the recipe list instead of showing raw JSON.
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		redirectToApp(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		applog.Error(r.Context(), "failed to encode cost response", "error", err)
	}
}

func recomputeRecipeCost(ctx context.Context, recipeID uint) (recipeCostResponse, error) {
	snapshot, err := loadCostingSnapshot(ctx)
	if err != nil {
		return recipeCostResponse{}, err
	}

	recipe, ok := snapshot.Recipes[recipeID]
	if !ok {
		return recipeCostResponse{}, errRecipeNotFound
	}

	total, components, err := costing.RecipeCostBreakdown(snapshot, recipeID)
	if err != nil {
		return recipeCostResponse{}, err
	}

	lock := recipeCostLock(recipeID)
	lock.Lock()
	defer lock.Unlock()

	if err := database.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Update("computed_cost", total).Error; err != nil {
		return recipeCostResponse{}, err
	}

	applog.Info(ctx, "recipe cost recomputed", "recipeID", recipeID, "total", total)

	return recipeCostResponse{
		RecipeID:   recipeID,
		RecipeName: recipe.Name,
		TotalCost:  total,
		Components: components,
	}, nil
}

func writeCostingError(w http.ResponseWriter, r *http.Request, err error, recipeID uint) {
	switch {
	case errors.Is(err, gorm.ErrInvalidDB):
		http.Error(w, "Costing is unavailable because no database connection is configured.", http.StatusServiceUnavailable)
	case errors.Is(err, errRecipeNotFound):
		http.Error(w, "The requested recipe does not exist.", http.StatusNotFound)
	case errors.Is(err, costing.ErrCyclicRecipe):
		http.Error(w, "The recipe contains a circular sub-recipe reference.", http.StatusBadRequest)
	case errors.Is(err, costing.ErrInvalidYieldQty):
		http.Error(w, "A sub-recipe has a non-positive batch yield.", http.StatusBadRequest)
	case errors.Is(err, units.ErrKindMismatch):
		http.Error(w, "A component's unit kind does not match the ingredient it measures.", http.StatusBadRequest)
	case errors.Is(err, costing.ErrMissingReference):
		http.Error(w, "A component references a unit, item, or recipe that no longer exists.", http.StatusConflict)
	default:
		applog.Error(r.Context(), "failed to recompute recipe cost", "error", err, "recipeID", recipeID)
		http.Error(w, "We were unable to recompute the recipe cost. Please try again.", http.StatusInternalServerError)
	}
}
