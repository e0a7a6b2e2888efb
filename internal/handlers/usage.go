package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"mise/internal/costing"
	applog "mise/internal/log"
	"mise/internal/views/pages"
)

type usageLine struct {
	ItemID   uint    `json:"item_id"`
	ItemName string  `json:"item_name"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
	BaseQty  float64 `json:"base_qty"`
}

type usageResponse struct {
	RecipeID   uint        `json:"recipe_id"`
	RecipeName string      `json:"recipe_name"`
	Multiplier float64     `json:"multiplier"`
	Lines      []usageLine `json:"lines"`
}

// RecipeUsage explodes a recipe into raw ingredient demand for the requested
// number of batches and returns it as JSON, ordered by item name.
func RecipeUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	recipeID := pages.ParseUint(r.PathValue("id"))
	if recipeID == 0 {
		http.Error(w, "Provide a valid recipe id.", http.StatusBadRequest)
		return
	}

	multiplier := 1.0
	if raw := strings.TrimSpace(r.URL.Query().Get("multiplier")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Provide a positive batch multiplier.", http.StatusBadRequest)
			return
		}
		multiplier = parsed
	}

	result, err := buildRecipeUsage(r.Context(), recipeID, multiplier)
	if err != nil {
		writeCostingError(w, r, err, recipeID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		applog.Error(r.Context(), "failed to encode usage response", "error", err)
	}
}

func buildRecipeUsage(ctx context.Context, recipeID uint, multiplier float64) (usageResponse, error) {
	snapshot, err := loadCostingSnapshot(ctx)
	if err != nil {
		return usageResponse{}, err
	}

	recipe, ok := snapshot.Recipes[recipeID]
	if !ok {
		return usageResponse{}, errRecipeNotFound
	}

	usage, err := costing.ExplodeUsage(snapshot, recipeID, multiplier)
	if err != nil {
		return usageResponse{}, err
	}

	lines := make([]usageLine, 0, len(usage))
	for itemID, baseQty := range usage {
		item := snapshot.Items[itemID]
		itemUnit, err := snapshot.Units.Lookup(item.UnitID)
		if err != nil {
			return usageResponse{}, err
		}
		lines = append(lines, usageLine{
			ItemID:   itemID,
			ItemName: item.Name,
			Qty:      baseQty / itemUnit.ToBaseRatio,
			Unit:     itemUnit.Name,
			BaseQty:  baseQty,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return strings.ToLower(lines[i].ItemName) < strings.ToLower(lines[j].ItemName)
	})

	return usageResponse{
		RecipeID:   recipeID,
		RecipeName: recipe.Name,
		Multiplier: multiplier,
		Lines:      lines,
	}, nil
}
