package model

import "time"

// ManualItem is a shopping-list entry added directly by the user, scoped to
// a plan week and independent of any recipe.
type ManualItem struct {
	ID           int64     `json:"id"`
	PlanWeekID   int64     `json:"plan_week_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Qty          *float64  `json:"qty"`
	Unit         *string   `json:"unit"`
	CarryForward bool      `json:"carry_forward"`
	CreatedAt    time.Time `json:"created_at"`
}
