package shopping

import (
	"log/slog"

	"mealweek/internal/model"
)

// Multipliers computes the total quantity multiplier per recipe for a week's
// dinner entries. Each entry contributes used/default servings, where the
// default is floored at 1 and an override is only honored when positive.
// Repeats of the same recipe sum their contributions. Entries with no recipe
// selected are ignored; entries referencing a recipe missing from the map
// are skipped (historical entries may point at deleted recipes).
func Multipliers(entries []model.PlanEntry, recipes map[int64]model.Recipe) map[int64]float64 {
	multipliers := make(map[int64]float64)

	for _, e := range entries {
		if e.RecipeID == nil {
			continue
		}
		recipe, ok := recipes[*e.RecipeID]
		if !ok {
			slog.Warn("plan entry references missing recipe",
				"plan_entry_id", e.ID, "recipe_id", *e.RecipeID)
			continue
		}

		def := recipe.ServingsDefault
		if def < 1 {
			def = 1
		}
		used := def
		if e.ServingsOverride != nil && *e.ServingsOverride > 0 {
			used = *e.ServingsOverride
		}

		multipliers[*e.RecipeID] += float64(used) / float64(def)
	}

	return multipliers
}
