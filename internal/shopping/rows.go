package shopping

import (
	"fmt"

	"mealweek/internal/category"
)

// Ticks is the checklist state shared by both row kinds.
type Ticks struct {
	InCupboard bool `json:"in_cupboard"`
	InTrolley  bool `json:"in_trolley"`
}

// Row is one line of the assembled shopping list: either an aggregated
// ingredient row or a manual item row. The two kinds never merge, even when
// their names collide.
type Row interface {
	// RowKey uniquely identifies the row within one list.
	RowKey() string
	RowName() string
	RowCategory() string
	Checklist() Ticks
}

// IngredientRow is a quantity-scaled row derived from the week's dinners.
type IngredientRow struct {
	Kind         string  `json:"kind"`
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	TotalQty     float64 `json:"total_qty"`
	Ticks
}

func (r IngredientRow) RowKey() string {
	return fmt.Sprintf("i:%d|%s", r.IngredientID, r.Unit)
}

func (r IngredientRow) RowName() string     { return r.Name }
func (r IngredientRow) RowCategory() string { return category.Normalize(r.Category) }
func (r IngredientRow) Checklist() Ticks    { return r.Ticks }

// ManualRow is a user-entered row independent of any recipe. Qty is nil when
// the item has no meaningful quantity ("toothpaste", "bin bags").
type ManualRow struct {
	Kind         string   `json:"kind"`
	ManualItemID int64    `json:"manual_item_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Unit         string   `json:"unit"`
	Qty          *float64 `json:"qty"`
	CarryForward bool     `json:"carry_forward"`
	Ticks
}

func (r ManualRow) RowKey() string {
	return fmt.Sprintf("m:%d", r.ManualItemID)
}

func (r ManualRow) RowName() string     { return r.Name }
func (r ManualRow) RowCategory() string { return category.Normalize(r.Category) }
func (r ManualRow) Checklist() Ticks    { return r.Ticks }

const (
	KindIngredient = "ingredient"
	KindManual     = "manual"
)
