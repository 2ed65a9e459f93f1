package model

import "time"

// PlanWeek is a Monday-aligned 7-day planning period owned by a household.
// WeekStart is a date-only string (YYYY-MM-DD).
type PlanWeek struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	WeekStart   string    `json:"week_start"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlanEntry is one meal slot on one date of a plan week. RecipeID is nil
// when no dinner has been selected for that date.
type PlanEntry struct {
	ID               int64     `json:"id"`
	PlanWeekID       int64     `json:"plan_week_id"`
	EntryDate        string    `json:"entry_date"`
	Meal             string    `json:"meal"`
	RecipeID         *int64    `json:"recipe_id"`
	ServingsOverride *int      `json:"servings_override"`
	CreatedAt        time.Time `json:"created_at"`
}

const MealDinner = "dinner"
