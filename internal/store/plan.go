package store

import (
	"database/sql"
	"fmt"

	"mealweek/internal/model"
)

type PlanStore struct {
	db *sql.DB
}

func NewPlanStore(db *sql.DB) *PlanStore {
	return &PlanStore{db: db}
}

func scanPlanWeek(scanner interface{ Scan(...any) error }) (*model.PlanWeek, error) {
	var w model.PlanWeek
	err := scanner.Scan(&w.ID, &w.HouseholdID, &w.WeekStart, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanPlanEntry(scanner interface{ Scan(...any) error }) (*model.PlanEntry, error) {
	var e model.PlanEntry
	var recipeID sql.NullInt64
	var override sql.NullInt64
	err := scanner.Scan(&e.ID, &e.PlanWeekID, &e.EntryDate, &e.Meal, &recipeID, &override, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if recipeID.Valid {
		e.RecipeID = &recipeID.Int64
	}
	if override.Valid {
		v := int(override.Int64)
		e.ServingsOverride = &v
	}
	return &e, nil
}

const planWeekCols = `id, household_id, week_start, created_at`
const planEntryCols = `id, plan_week_id, entry_date, meal, recipe_id, servings_override, created_at`

// EnsureWeek returns the household's plan week for the given Monday,
// creating it if it does not exist yet.
func (s *PlanStore) EnsureWeek(householdID int64, weekStart string) (*model.PlanWeek, error) {
	w, err := s.GetWeek(householdID, weekStart)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	result, err := s.db.Exec(
		`INSERT INTO plan_weeks (household_id, week_start) VALUES (?, ?)
		 ON CONFLICT(household_id, week_start) DO NOTHING`,
		householdID, weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan week: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil && id != 0 {
		return s.GetWeekByID(id)
	}
	// Lost a create race; the week exists now.
	return s.GetWeek(householdID, weekStart)
}

func (s *PlanStore) GetWeek(householdID int64, weekStart string) (*model.PlanWeek, error) {
	row := s.db.QueryRow(
		`SELECT `+planWeekCols+` FROM plan_weeks WHERE household_id = ? AND week_start = ?`,
		householdID, weekStart,
	)
	w, err := scanPlanWeek(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan week: %w", err)
	}
	return w, nil
}

func (s *PlanStore) GetWeekByID(id int64) (*model.PlanWeek, error) {
	row := s.db.QueryRow(`SELECT `+planWeekCols+` FROM plan_weeks WHERE id = ?`, id)
	w, err := scanPlanWeek(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan week by id: %w", err)
	}
	return w, nil
}

// SetDinner upserts the dinner entry for one date of a plan week. A nil
// override keeps the recipe's default servings.
func (s *PlanStore) SetDinner(planWeekID int64, entryDate string, recipeID int64, servingsOverride *int) (*model.PlanEntry, error) {
	var override sql.NullInt64
	if servingsOverride != nil && *servingsOverride > 0 {
		override = sql.NullInt64{Int64: int64(*servingsOverride), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO plan_entries (plan_week_id, entry_date, meal, recipe_id, servings_override)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(plan_week_id, entry_date, meal) DO UPDATE SET
		   recipe_id = excluded.recipe_id,
		   servings_override = excluded.servings_override`,
		planWeekID, entryDate, model.MealDinner, recipeID, override,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert dinner: %w", err)
	}
	return s.getDinner(planWeekID, entryDate)
}

func (s *PlanStore) getDinner(planWeekID int64, entryDate string) (*model.PlanEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+planEntryCols+` FROM plan_entries WHERE plan_week_id = ? AND entry_date = ? AND meal = ?`,
		planWeekID, entryDate, model.MealDinner,
	)
	e, err := scanPlanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dinner: %w", err)
	}
	return e, nil
}

// ClearDinner removes the dinner entry for one date. Clearing an empty slot
// is not an error.
func (s *PlanStore) ClearDinner(planWeekID int64, entryDate string) error {
	_, err := s.db.Exec(
		`DELETE FROM plan_entries WHERE plan_week_id = ? AND entry_date = ? AND meal = ?`,
		planWeekID, entryDate, model.MealDinner,
	)
	if err != nil {
		return fmt.Errorf("clear dinner: %w", err)
	}
	return nil
}

// ClearWeek deletes all entries of a plan week and reports how many went.
func (s *PlanStore) ClearWeek(planWeekID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM plan_entries WHERE plan_week_id = ?`, planWeekID)
	if err != nil {
		return 0, fmt.Errorf("clear week: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// ListDinnerEntries returns the week's dinner entries in date order.
func (s *PlanStore) ListDinnerEntries(planWeekID int64) ([]model.PlanEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+planEntryCols+` FROM plan_entries WHERE plan_week_id = ? AND meal = ? ORDER BY entry_date ASC`,
		planWeekID, model.MealDinner,
	)
	if err != nil {
		return nil, fmt.Errorf("list dinner entries: %w", err)
	}
	defer rows.Close()

	var entries []model.PlanEntry
	for rows.Next() {
		e, err := scanPlanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
