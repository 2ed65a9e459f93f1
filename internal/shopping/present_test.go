package shopping

import (
	"testing"

	"mealweek/internal/category"
)

func TestFormatQtyInteger(t *testing.T) {
	cases := map[float64]string{
		3:            "3",
		3.0000000001: "3",
		2.5:          "2.50",
		0.333:        "0.33",
		666.666:      "666.67",
		0:            "0",
	}
	for in, want := range cases {
		if got := FormatQty(in); got != want {
			t.Errorf("FormatQty(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestQtyText(t *testing.T) {
	ing := IngredientRow{TotalQty: 2.5, Unit: "kg"}
	if got := QtyText(ing); got != "2.50 kg" {
		t.Errorf("QtyText = %q, want %q", got, "2.50 kg")
	}

	unitless := IngredientRow{TotalQty: 4, Unit: ""}
	if got := QtyText(unitless); got != "4" {
		t.Errorf("QtyText = %q, want %q", got, "4")
	}

	qty := 2.0
	manual := ManualRow{Qty: &qty, Unit: "rolls"}
	if got := QtyText(manual); got != "2 rolls" {
		t.Errorf("QtyText = %q, want %q", got, "2 rolls")
	}

	noQty := ManualRow{Unit: "pack"}
	if got := QtyText(noQty); got != "pack" {
		t.Errorf("QtyText = %q, want %q", got, "pack")
	}

	bare := ManualRow{}
	if got := QtyText(bare); got != "" {
		t.Errorf("QtyText = %q, want empty", got)
	}
}

func TestFilterShopModeHidesCupboard(t *testing.T) {
	rows := []Row{
		IngredientRow{Name: "Rice", Ticks: Ticks{InCupboard: true}},
		IngredientRow{Name: "Milk"},
	}

	got := Filter(rows, ModeShop, false)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].RowName() != "Milk" {
		t.Errorf("remaining row = %q, want Milk", got[0].RowName())
	}

	if got := Filter(rows, ModeShop, true); len(got) != 2 {
		t.Errorf("showCupboard: len = %d, want 2", len(got))
	}
	if got := Filter(rows, ModePrelim, false); len(got) != 2 {
		t.Errorf("prelim: len = %d, want 2", len(got))
	}
}

func TestSortBySectionThenTrolleyThenName(t *testing.T) {
	rows := []Row{
		ManualRow{Name: "Bin bags", Category: "Other"},
		IngredientRow{Name: "Apples", Category: "Fruit", Ticks: Ticks{InTrolley: true}},
		IngredientRow{Name: "Bananas", Category: "Fruit"},
		IngredientRow{Name: "Cheddar", Category: "Dairy"},
	}

	Sort(rows, category.Rank)

	want := []string{"Bananas", "Apples", "Cheddar", "Bin bags"}
	for i, name := range want {
		if rows[i].RowName() != name {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].RowName(), name)
		}
	}
}

func TestGroupBucketsByCategory(t *testing.T) {
	rows := []Row{
		IngredientRow{Name: "Apples", Category: "Fruit"},
		IngredientRow{Name: "Cheddar", Category: "Dairy"},
		ManualRow{Name: "Pears", Category: "Fruit"},
	}

	sections := Group(rows, category.Rank)
	if len(sections) != 2 {
		t.Fatalf("len = %d, want 2", len(sections))
	}
	if sections[0].Name != "Fruit" || len(sections[0].Rows) != 2 {
		t.Errorf("sections[0] = %q (%d rows), want Fruit with 2 rows", sections[0].Name, len(sections[0].Rows))
	}
	if sections[1].Name != "Dairy" {
		t.Errorf("sections[1] = %q, want Dairy", sections[1].Name)
	}
}

func TestGroupUnknownCategoryLast(t *testing.T) {
	rows := []Row{
		ManualRow{Name: "Sponges", Category: "Cleaning"},
		IngredientRow{Name: "Apples", Category: "Fruit"},
	}

	sections := Group(rows, category.Rank)
	if sections[len(sections)-1].Name != "Cleaning" {
		t.Errorf("last section = %q, want Cleaning", sections[len(sections)-1].Name)
	}
}

func TestGroupEmptyCategoryBecomesOther(t *testing.T) {
	rows := []Row{IngredientRow{Name: "Mystery", Category: ""}}
	sections := Group(rows, category.Rank)
	if sections[0].Name != "Other" {
		t.Errorf("section = %q, want Other", sections[0].Name)
	}
}
