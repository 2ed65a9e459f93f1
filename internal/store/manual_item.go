package store

import (
	"database/sql"
	"fmt"

	"mealweek/internal/model"
)

type ManualItemStore struct {
	db *sql.DB
}

func NewManualItemStore(db *sql.DB) *ManualItemStore {
	return &ManualItemStore{db: db}
}

func scanManualItem(scanner interface{ Scan(...any) error }) (*model.ManualItem, error) {
	var m model.ManualItem
	var qty sql.NullFloat64
	var unit sql.NullString
	var carryForward int

	err := scanner.Scan(&m.ID, &m.PlanWeekID, &m.Name, &m.Category, &qty, &unit, &carryForward, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	if qty.Valid {
		m.Qty = &qty.Float64
	}
	if unit.Valid {
		m.Unit = &unit.String
	}
	m.CarryForward = carryForward != 0
	return &m, nil
}

const manualItemCols = `id, plan_week_id, name, category, qty, unit, carry_forward, created_at`

func (s *ManualItemStore) Create(planWeekID int64, name, category string, qty *float64, unit *string, carryForward bool) (*model.ManualItem, error) {
	var nQty sql.NullFloat64
	if qty != nil {
		nQty = sql.NullFloat64{Float64: *qty, Valid: true}
	}
	var nUnit sql.NullString
	if unit != nil {
		nUnit = sql.NullString{String: *unit, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO manual_items (plan_week_id, name, category, qty, unit, carry_forward) VALUES (?, ?, ?, ?, ?, ?)`,
		planWeekID, name, category, nQty, nUnit, boolToInt(carryForward),
	)
	if err != nil {
		return nil, fmt.Errorf("insert manual item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ManualItemStore) GetByID(id int64) (*model.ManualItem, error) {
	row := s.db.QueryRow(`SELECT `+manualItemCols+` FROM manual_items WHERE id = ?`, id)
	m, err := scanManualItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get manual item: %w", err)
	}
	return m, nil
}

func (s *ManualItemStore) ListByWeek(planWeekID int64) ([]model.ManualItem, error) {
	rows, err := s.db.Query(
		`SELECT `+manualItemCols+` FROM manual_items WHERE plan_week_id = ? ORDER BY created_at ASC, id ASC`,
		planWeekID,
	)
	if err != nil {
		return nil, fmt.Errorf("list manual items: %w", err)
	}
	defer rows.Close()

	var items []model.ManualItem
	for rows.Next() {
		m, err := scanManualItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manual item: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *ManualItemStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM manual_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete manual item: %w", err)
	}
	return nil
}

// CarryForward copies items flagged carry_forward from one week into
// another, without their checklist state. Returns the number copied.
func (s *ManualItemStore) CarryForward(fromWeekID, toWeekID int64) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO manual_items (plan_week_id, name, category, qty, unit, carry_forward)
		 SELECT ?, name, category, qty, unit, carry_forward
		 FROM manual_items WHERE plan_week_id = ? AND carry_forward = 1`,
		toWeekID, fromWeekID,
	)
	if err != nil {
		return 0, fmt.Errorf("carry forward: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
