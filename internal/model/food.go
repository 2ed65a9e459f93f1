package model

import "time"

type Ingredient struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Recipe struct {
	ID              int64     `json:"id"`
	HouseholdID     int64     `json:"household_id"`
	Name            string    `json:"name"`
	ServingsDefault int       `json:"servings_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecipeItem is one ingredient line of a recipe. IngredientName and
// IngredientCategory are joined from the ingredients table on read.
type RecipeItem struct {
	ID                 int64   `json:"id"`
	RecipeID           int64   `json:"recipe_id"`
	IngredientID       int64   `json:"ingredient_id"`
	Qty                float64 `json:"qty"`
	Unit               string  `json:"unit"`
	IngredientName     string  `json:"ingredient_name"`
	IngredientCategory string  `json:"ingredient_category"`
}
