package handlers

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	applog "mise/internal/log"
	"mise/internal/views/pages"
	"mise/models"
)

// Dashboard renders the recipe overview once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := buildDashboardData(r.Context())
	if err != nil {
		if err == gorm.ErrInvalidDB {
			http.Error(w, "The recipe list is unavailable because no database connection is configured.", http.StatusServiceUnavailable)
			return
		}
		applog.Error(r.Context(), "failed to load dashboard data", "error", err)
		http.Error(w, "We were unable to load your recipes. Please try again.", http.StatusInternalServerError)
		return
	}
	data.UserName = currentUserName(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Dashboard(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func buildDashboardData(ctx context.Context) (pages.DashboardData, error) {
	if database == nil {
		return pages.DashboardData{}, gorm.ErrInvalidDB
	}

	var recipes []models.Recipe
	if err := database.WithContext(ctx).
		Preload("YieldUnit").
		Order("name").
		Find(&recipes).Error; err != nil {
		return pages.DashboardData{}, err
	}

	data := pages.DashboardData{Recipes: make([]pages.DashboardRecipe, 0, len(recipes))}
	for _, recipe := range recipes {
		row := pages.DashboardRecipe{
			ID:              recipe.ID,
			Name:            recipe.Name,
			YieldQty:        recipe.YieldQty,
			ComputedCost:    recipe.ComputedCost,
			CanBeIngredient: recipe.CanBeIngredient,
		}
		if recipe.YieldUnit != nil {
			row.YieldUnit = recipe.YieldUnit.Name
		}
		data.Recipes = append(data.Recipes, row)
	}
	return data, nil
}
