package store

import (
	"database/sql"
	"fmt"
	"time"

	"mealweek/internal/shopping"
)

// ChecklistStore persists the cupboard/trolley tick state overlaid on the
// recomputed shopping list. Two keyspaces: (week, ingredient, unit) for
// aggregated rows and (week, manual item) for manual rows.
type ChecklistStore struct {
	db *sql.DB
}

func NewChecklistStore(db *sql.DB) *ChecklistStore {
	return &ChecklistStore{db: db}
}

// TickPatch is a partial checklist update. Nil fields are left untouched.
type TickPatch struct {
	InCupboard *bool `json:"in_cupboard"`
	InTrolley  *bool `json:"in_trolley"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TickPatch) IsEmpty() bool {
	return p.InCupboard == nil && p.InTrolley == nil
}

// GetOverlay reads the full checklist state for a plan week. Keys with no
// stored row are simply absent; callers treat that as {false, false}.
func (s *ChecklistStore) GetOverlay(planWeekID int64) (shopping.Overlay, error) {
	overlay := shopping.Overlay{
		Ingredient: make(map[shopping.ItemKey]shopping.Ticks),
		Manual:     make(map[int64]shopping.Ticks),
	}

	rows, err := s.db.Query(
		`SELECT ingredient_id, unit, in_cupboard, in_trolley FROM shopping_list_state WHERE plan_week_id = ?`,
		planWeekID,
	)
	if err != nil {
		return overlay, fmt.Errorf("read ingredient state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key shopping.ItemKey
		var cupboard, trolley int
		if err := rows.Scan(&key.IngredientID, &key.Unit, &cupboard, &trolley); err != nil {
			return overlay, fmt.Errorf("scan ingredient state: %w", err)
		}
		overlay.Ingredient[key] = shopping.Ticks{InCupboard: cupboard != 0, InTrolley: trolley != 0}
	}
	if err := rows.Err(); err != nil {
		return overlay, fmt.Errorf("read ingredient state: %w", err)
	}

	mrows, err := s.db.Query(
		`SELECT manual_item_id, in_cupboard, in_trolley FROM manual_item_state WHERE plan_week_id = ?`,
		planWeekID,
	)
	if err != nil {
		return overlay, fmt.Errorf("read manual state: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var itemID int64
		var cupboard, trolley int
		if err := mrows.Scan(&itemID, &cupboard, &trolley); err != nil {
			return overlay, fmt.Errorf("scan manual state: %w", err)
		}
		overlay.Manual[itemID] = shopping.Ticks{InCupboard: cupboard != 0, InTrolley: trolley != 0}
	}
	if err := mrows.Err(); err != nil {
		return overlay, fmt.Errorf("read manual state: %w", err)
	}

	return overlay, nil
}

// SetIngredientState upserts the tick state for one aggregated row. Fields
// absent from the patch keep their stored value; a fresh row starts any
// unpatched field at false. Last write wins on concurrent toggles.
func (s *ChecklistStore) SetIngredientState(planWeekID, ingredientID int64, unit string, patch TickPatch) error {
	cupboard := nullableBool(patch.InCupboard)
	trolley := nullableBool(patch.InTrolley)
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO shopping_list_state (plan_week_id, ingredient_id, unit, in_cupboard, in_trolley, updated_at)
		 VALUES (?, ?, ?, COALESCE(?, 0), COALESCE(?, 0), ?)
		 ON CONFLICT(plan_week_id, ingredient_id, unit) DO UPDATE SET
		   in_cupboard = COALESCE(?, in_cupboard),
		   in_trolley = COALESCE(?, in_trolley),
		   updated_at = ?`,
		planWeekID, ingredientID, unit, cupboard, trolley, now, cupboard, trolley, now,
	)
	if err != nil {
		return fmt.Errorf("upsert ingredient state: %w", err)
	}
	return nil
}

// SetManualState upserts the tick state for one manual item, same partial
// patch contract as SetIngredientState but in its own keyspace.
func (s *ChecklistStore) SetManualState(planWeekID, manualItemID int64, patch TickPatch) error {
	cupboard := nullableBool(patch.InCupboard)
	trolley := nullableBool(patch.InTrolley)
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO manual_item_state (plan_week_id, manual_item_id, in_cupboard, in_trolley, updated_at)
		 VALUES (?, ?, COALESCE(?, 0), COALESCE(?, 0), ?)
		 ON CONFLICT(plan_week_id, manual_item_id) DO UPDATE SET
		   in_cupboard = COALESCE(?, in_cupboard),
		   in_trolley = COALESCE(?, in_trolley),
		   updated_at = ?`,
		planWeekID, manualItemID, cupboard, trolley, now, cupboard, trolley, now,
	)
	if err != nil {
		return fmt.Errorf("upsert manual state: %w", err)
	}
	return nil
}

// Reset clears all tick state for a plan week in both keyspaces. The two
// deletes run in one transaction so a failure never leaves a half-reset
// week. Manual items themselves are untouched. Idempotent.
func (s *ChecklistStore) Reset(planWeekID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shopping_list_state WHERE plan_week_id = ?`, planWeekID); err != nil {
		return fmt.Errorf("reset ingredient state: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM manual_item_state WHERE plan_week_id = ?`, planWeekID); err != nil {
		return fmt.Errorf("reset manual state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// nullableBool maps a patch field to a SQL parameter: nil stays NULL so
// COALESCE keeps the stored value.
func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}
