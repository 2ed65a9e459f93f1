package store

import (
	"database/sql"
	"fmt"
	"strings"

	"mealweek/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	err := scanner.Scan(&r.ID, &r.HouseholdID, &r.Name, &r.ServingsDefault, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const recipeCols = `id, household_id, name, servings_default, created_at, updated_at`

func (s *RecipeStore) Create(householdID int64, name string, servingsDefault int) (*model.Recipe, error) {
	if servingsDefault < 1 {
		servingsDefault = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO recipes (household_id, name, servings_default) VALUES (?, ?, ?)`,
		householdID, name, servingsDefault,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// GetByName does a case-insensitive name lookup within a household.
func (s *RecipeStore) GetByName(householdID int64, name string) (*model.Recipe, error) {
	row := s.db.QueryRow(
		`SELECT `+recipeCols+` FROM recipes WHERE household_id = ? AND name = ? COLLATE NOCASE`,
		householdID, name,
	)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe by name: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) ListByHousehold(householdID int64) ([]model.Recipe, error) {
	rows, err := s.db.Query(
		`SELECT `+recipeCols+` FROM recipes WHERE household_id = ? ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	return collectRecipes(rows)
}

// ListByIDs returns the recipes for the given ids as a map keyed by id.
// Missing ids are simply absent from the map.
func (s *RecipeStore) ListByIDs(ids []int64) (map[int64]model.Recipe, error) {
	recipes := make(map[int64]model.Recipe)
	if len(ids) == 0 {
		return recipes, nil
	}

	query := `SELECT ` + recipeCols + ` FROM recipes WHERE id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes[r.ID] = *r
	}
	return recipes, rows.Err()
}

func (s *RecipeStore) Update(id int64, name string, servingsDefault int) (*model.Recipe, error) {
	if servingsDefault < 1 {
		servingsDefault = 1
	}
	_, err := s.db.Exec(
		`UPDATE recipes SET name = ?, servings_default = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, servingsDefault, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func collectRecipes(rows *sql.Rows) ([]model.Recipe, error) {
	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// --- Recipe item methods ---

func scanRecipeItem(scanner interface{ Scan(...any) error }) (*model.RecipeItem, error) {
	var it model.RecipeItem
	err := scanner.Scan(
		&it.ID, &it.RecipeID, &it.IngredientID, &it.Qty, &it.Unit,
		&it.IngredientName, &it.IngredientCategory,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

const recipeItemCols = `ri.id, ri.recipe_id, ri.ingredient_id, ri.qty, ri.unit, i.name, i.category`

// RecipeItemInput is one ingredient line supplied when replacing a recipe's
// item list.
type RecipeItemInput struct {
	IngredientID int64   `json:"ingredient_id"`
	Qty          float64 `json:"qty"`
	Unit         string  `json:"unit"`
}

// ReplaceItems swaps a recipe's full ingredient line list in one transaction.
func (s *RecipeStore) ReplaceItems(recipeID int64, items []RecipeItemInput) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recipe_items WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("clear recipe items: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(
			`INSERT INTO recipe_items (recipe_id, ingredient_id, qty, unit) VALUES (?, ?, ?, ?)`,
			recipeID, it.IngredientID, it.Qty, it.Unit,
		); err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListItemsByRecipe returns a single recipe's ingredient lines with the
// ingredient name and category joined in.
func (s *RecipeStore) ListItemsByRecipe(recipeID int64) ([]model.RecipeItem, error) {
	rows, err := s.db.Query(
		`SELECT `+recipeItemCols+`
		 FROM recipe_items ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ?
		 ORDER BY i.name ASC`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipe items: %w", err)
	}
	defer rows.Close()
	return collectRecipeItems(rows)
}

// ListItemsByRecipeIDs returns the ingredient lines for all given recipes,
// feeding the shopping-list aggregation.
func (s *RecipeStore) ListItemsByRecipeIDs(ids []int64) ([]model.RecipeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + recipeItemCols + `
		 FROM recipe_items ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items by recipe ids: %w", err)
	}
	defer rows.Close()
	return collectRecipeItems(rows)
}

func collectRecipeItems(rows *sql.Rows) ([]model.RecipeItem, error) {
	var items []model.RecipeItem
	for rows.Next() {
		it, err := scanRecipeItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
