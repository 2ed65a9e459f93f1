package shopping

import (
	"math"
	"testing"

	"mealweek/internal/model"
)

func intPtr(i int) *int { return &i }

func i64Ptr(i int64) *int64 { return &i }

func f64Ptr(f float64) *float64 { return &f }

func TestMultiplierDefaultServings(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 4},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1)},
	}

	m := Multipliers(entries, recipes)
	if got := m[1]; got != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", got)
	}
}

func TestMultiplierOverride(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 2},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1), ServingsOverride: intPtr(6)},
	}

	m := Multipliers(entries, recipes)
	if got := m[1]; got != 3.0 {
		t.Errorf("multiplier = %v, want 3.0", got)
	}
}

func TestMultiplierRepeatRecipeSums(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 2},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1)},
		{ID: 2, EntryDate: "2026-02-19", RecipeID: i64Ptr(1), ServingsOverride: intPtr(4)},
	}

	m := Multipliers(entries, recipes)
	if got := m[1]; got != 3.0 {
		t.Errorf("multiplier = %v, want 3.0 (1.0 + 2.0)", got)
	}
}

func TestMultiplierNonPositiveDefaultFlooredAtOne(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 0},
		2: {ID: 2, ServingsDefault: -3},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1)},
		{ID: 2, EntryDate: "2026-02-17", RecipeID: i64Ptr(2), ServingsOverride: intPtr(2)},
	}

	m := Multipliers(entries, recipes)
	if got := m[1]; got != 1.0 {
		t.Errorf("multiplier for zero default = %v, want 1.0", got)
	}
	if got := m[2]; got != 2.0 {
		t.Errorf("multiplier for negative default with override 2 = %v, want 2.0", got)
	}
}

func TestMultiplierNonPositiveOverrideIgnored(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 4},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1), ServingsOverride: intPtr(0)},
	}

	m := Multipliers(entries, recipes)
	if got := m[1]; got != 1.0 {
		t.Errorf("multiplier = %v, want 1.0 (zero override falls back to default)", got)
	}
}

func TestMultiplierSkipsEmptySlots(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 4},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: nil},
		{ID: 2, EntryDate: "2026-02-17", RecipeID: i64Ptr(1)},
	}

	m := Multipliers(entries, recipes)
	if len(m) != 1 {
		t.Errorf("len = %d, want 1", len(m))
	}
}

func TestMultiplierSkipsDanglingRecipe(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 4},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(99)}, // deleted recipe
		{ID: 2, EntryDate: "2026-02-17", RecipeID: i64Ptr(1)},
	}

	m := Multipliers(entries, recipes)
	if _, ok := m[99]; ok {
		t.Error("dangling recipe should not appear in multiplier map")
	}
	if got := m[1]; got != 1.0 {
		t.Errorf("multiplier = %v, want 1.0 (rest of week still aggregates)", got)
	}
}

func TestMultiplierFractionalOverride(t *testing.T) {
	recipes := map[int64]model.Recipe{
		1: {ID: 1, ServingsDefault: 3},
	}
	entries := []model.PlanEntry{
		{ID: 1, EntryDate: "2026-02-16", RecipeID: i64Ptr(1), ServingsOverride: intPtr(2)},
	}

	m := Multipliers(entries, recipes)
	want := 2.0 / 3.0
	if got := m[1]; math.Abs(got-want) > 1e-12 {
		t.Errorf("multiplier = %v, want %v", got, want)
	}
}
