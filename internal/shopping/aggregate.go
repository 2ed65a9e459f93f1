package shopping

import "mealweek/internal/model"

// ItemKey identifies one aggregated ingredient row. Two recipe lines for the
// same ingredient in different units stay separate; unit conversion is out
// of scope.
type ItemKey struct {
	IngredientID int64
	Unit         string
}

// IngredientTotal is the running sum for one (ingredient, unit) pair.
type IngredientTotal struct {
	IngredientID int64
	Name         string
	Category     string
	Unit         string
	TotalQty     float64
}

// Aggregate expands recipe items through the multiplier map and sums scaled
// quantities by (ingredient, unit). The first occurrence seeds name and
// category. Items whose recipe has no multiplier are skipped. Quantities are
// accumulated unrounded; formatting happens at render time.
func Aggregate(items []model.RecipeItem, multipliers map[int64]float64) map[ItemKey]IngredientTotal {
	totals := make(map[ItemKey]IngredientTotal)

	for _, it := range items {
		mult, ok := multipliers[it.RecipeID]
		if !ok {
			continue
		}

		key := ItemKey{IngredientID: it.IngredientID, Unit: it.Unit}
		scaled := it.Qty * mult

		if existing, ok := totals[key]; ok {
			existing.TotalQty += scaled
			totals[key] = existing
			continue
		}
		totals[key] = IngredientTotal{
			IngredientID: it.IngredientID,
			Name:         it.IngredientName,
			Category:     it.IngredientCategory,
			Unit:         it.Unit,
			TotalQty:     scaled,
		}
	}

	return totals
}
