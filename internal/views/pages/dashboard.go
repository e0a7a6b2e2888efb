package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mise/internal/views/layout"
)

// DashboardRecipe is a single row in the recipe overview table.
type DashboardRecipe struct {
	ID              uint
	Name            string
	YieldQty        float64
	YieldUnit       string
	ComputedCost    float64
	CanBeIngredient bool
}

// DashboardData aggregates everything the recipe overview needs.
type DashboardData struct {
	UserName string
	Recipes  []DashboardRecipe
}

// Dashboard renders the recipe overview: every recipe with its yield and the
// last persisted cost, plus a recost action per row.
func Dashboard(data DashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="dashboard"><h1>Recipes</h1><p class="greeting">Welcome back, %s.</p>`, templ.EscapeString(data.UserName)); err != nil {
			return err
		}
		if len(data.Recipes) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No recipes yet.</p></section>`)
			return err
		}
		if _, err := io.WriteString(w, `<table class="recipes"><thead><tr><th>Recipe</th><th>Yield</th><th>Cost per batch</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, recipe := range data.Recipes {
			cost := "—"
			if recipe.ComputedCost > 0 {
				cost = FormatMoney(recipe.ComputedCost)
			}
			tag := ""
			if recipe.CanBeIngredient {
				tag = ` <span class="tag">sub-recipe</span>`
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s%s</td><td>%s</td><td>%s</td><td><form method="post" action="/app/api/recipes/%d/cost"><button type="submit">Recost</button></form></td></tr>`,
				templ.EscapeString(recipe.Name), tag,
				FormatReportQuantity(recipe.YieldQty, recipe.YieldUnit),
				cost, recipe.ID,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
	return layout.Page("Recipes", true, body)
}
