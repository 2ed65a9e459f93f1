package shopping

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Mode selects which checklist phase the list is rendered for.
type Mode string

const (
	// ModePrelim shows everything: the pre-shop "what do we already have"
	// pass where cupboard ticks are set.
	ModePrelim Mode = "prelim"
	// ModeShop hides cupboard items (unless asked for) for use in the shop.
	ModeShop Mode = "shop"
)

// Section is one category group of the rendered list.
type Section struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Rank orders category names. Injected so the engine carries no display
// configuration of its own.
type Rank func(categoryName string) int

// Filter applies the view-mode filtering: in shop mode, cupboard-ticked rows
// are hidden unless showCupboard is set.
func Filter(rows []Row, mode Mode, showCupboard bool) []Row {
	if mode != ModeShop || showCupboard {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !r.Checklist().InCupboard {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders rows by section rank, then category name, then trolley state
// (ticked rows last), then row name.
func Sort(rows []Row, rank Rank) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].RowCategory(), rows[j].RowCategory()

		ri, rj := rank(ci), rank(cj)
		if ri != rj {
			return ri < rj
		}
		if ci != cj {
			return ci < cj
		}

		ti, tj := rows[i].Checklist().InTrolley, rows[j].Checklist().InTrolley
		if ti != tj {
			return !ti
		}

		return rows[i].RowName() < rows[j].RowName()
	})
}

// Group sorts rows and buckets them into category sections, in section order.
func Group(rows []Row, rank Rank) []Section {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	Sort(sorted, rank)

	var sections []Section
	for _, r := range sorted {
		cat := r.RowCategory()
		if len(sections) == 0 || sections[len(sections)-1].Name != cat {
			sections = append(sections, Section{Name: cat})
		}
		sections[len(sections)-1].Rows = append(sections[len(sections)-1].Rows, r)
	}
	return sections
}

// FormatQty renders a quantity for display: rounded to two decimal places,
// shown as a bare integer when within 1e-9 of one.
func FormatQty(qty float64) string {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return ""
	}
	rounded := math.Round(qty*100) / 100
	if math.Abs(rounded-math.Round(rounded)) < 1e-9 {
		return strconv.FormatInt(int64(math.Round(rounded)), 10)
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}

// QtyText renders the quantity-and-unit line under a row. Manual rows with
// no quantity show just the unit, or nothing at all.
func QtyText(r Row) string {
	switch row := r.(type) {
	case IngredientRow:
		return strings.TrimSpace(FormatQty(row.TotalQty) + " " + row.Unit)
	case ManualRow:
		if row.Qty != nil {
			return strings.TrimSpace(FormatQty(*row.Qty) + " " + row.Unit)
		}
		return row.Unit
	default:
		return ""
	}
}
