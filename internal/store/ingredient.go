package store

import (
	"database/sql"
	"fmt"

	"mealweek/internal/model"
)

type IngredientStore struct {
	db *sql.DB
}

func NewIngredientStore(db *sql.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

func scanIngredient(scanner interface{ Scan(...any) error }) (*model.Ingredient, error) {
	var i model.Ingredient
	err := scanner.Scan(&i.ID, &i.HouseholdID, &i.Name, &i.Category, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const ingredientCols = `id, household_id, name, category, created_at, updated_at`

func (s *IngredientStore) Create(householdID int64, name, category string) (*model.Ingredient, error) {
	result, err := s.db.Exec(
		`INSERT INTO ingredients (household_id, name, category) VALUES (?, ?, ?)`,
		householdID, name, category,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *IngredientStore) GetByID(id int64) (*model.Ingredient, error) {
	row := s.db.QueryRow(`SELECT `+ingredientCols+` FROM ingredients WHERE id = ?`, id)
	i, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

func (s *IngredientStore) ListByHousehold(householdID int64) ([]model.Ingredient, error) {
	rows, err := s.db.Query(
		`SELECT `+ingredientCols+` FROM ingredients WHERE household_id = ? ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, *i)
	}
	return ingredients, rows.Err()
}

func (s *IngredientStore) Update(id int64, name, category string) (*model.Ingredient, error) {
	_, err := s.db.Exec(
		`UPDATE ingredients SET name = ?, category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, category, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return s.GetByID(id)
}

func (s *IngredientStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
