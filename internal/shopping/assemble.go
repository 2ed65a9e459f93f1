package shopping

import "mealweek/internal/model"

// Overlay is the persisted checklist state for one plan week, read once and
// merged over the recomputed rows. Missing keys mean {false, false}.
type Overlay struct {
	Ingredient map[ItemKey]Ticks
	Manual     map[int64]Ticks
}

// BuildList assembles the full shopping list for a plan week: dinner-derived
// ingredient rows plus manual rows, each overlaid with its checklist state.
// The result order is unspecified; callers sort for display. A week with no
// dinners and no manual items yields an empty list.
func BuildList(
	entries []model.PlanEntry,
	recipes map[int64]model.Recipe,
	items []model.RecipeItem,
	manualItems []model.ManualItem,
	overlay Overlay,
) []Row {
	multipliers := Multipliers(entries, recipes)
	totals := Aggregate(items, multipliers)

	rows := make([]Row, 0, len(totals)+len(manualItems))

	for key, total := range totals {
		rows = append(rows, IngredientRow{
			Kind:         KindIngredient,
			IngredientID: total.IngredientID,
			Name:         total.Name,
			Category:     total.Category,
			Unit:         total.Unit,
			TotalQty:     total.TotalQty,
			Ticks:        overlay.Ingredient[key],
		})
	}

	for _, m := range manualItems {
		unit := ""
		if m.Unit != nil {
			unit = *m.Unit
		}
		rows = append(rows, ManualRow{
			Kind:         KindManual,
			ManualItemID: m.ID,
			Name:         m.Name,
			Category:     m.Category,
			Unit:         unit,
			Qty:          m.Qty,
			CarryForward: m.CarryForward,
			Ticks:        overlay.Manual[m.ID],
		})
	}

	return rows
}
