package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"mealweek/internal/auth"
	"mealweek/internal/category"
	"mealweek/internal/shopping"
	"mealweek/internal/store"
	"mealweek/internal/week"
	ws "mealweek/internal/websocket"
)

type ShoppingHandler struct {
	planStore       *store.PlanStore
	recipeStore     *store.RecipeStore
	manualItemStore *store.ManualItemStore
	checklistStore  *store.ChecklistStore
	hub             *ws.Hub
	logger          *slog.Logger
}

func NewShoppingHandler(
	ps *store.PlanStore,
	rs *store.RecipeStore,
	ms *store.ManualItemStore,
	cs *store.ChecklistStore,
	hub *ws.Hub,
	logger *slog.Logger,
) *ShoppingHandler {
	return &ShoppingHandler{
		planStore:       ps,
		recipeStore:     rs,
		manualItemStore: ms,
		checklistStore:  cs,
		hub:             hub,
		logger:          logger,
	}
}

// shoppingRow is the rendered form of one list row. Ingredient rows carry
// ingredient_id and unit; manual rows carry manual_item_id.
type shoppingRow struct {
	Key          string `json:"key"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	QtyText      string `json:"qty_text"`
	InCupboard   bool   `json:"in_cupboard"`
	InTrolley    bool   `json:"in_trolley"`
	IngredientID int64  `json:"ingredient_id,omitempty"`
	Unit         string `json:"unit,omitempty"`
	ManualItemID int64  `json:"manual_item_id,omitempty"`
	CarryForward bool   `json:"carry_forward,omitempty"`
}

type shoppingSection struct {
	Name string        `json:"name"`
	Rows []shoppingRow `json:"rows"`
}

// GetList rebuilds the shopping list for a week and returns it grouped into
// category sections. The list itself is never stored; only ticks are.
func (h *ShoppingHandler) GetList(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	mode := shopping.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = shopping.ModePrelim
	}
	if mode != shopping.ModePrelim && mode != shopping.ModeShop {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be prelim or shop"})
		return
	}
	showCupboard := r.URL.Query().Get("cupboard") == "1"

	rows, err := h.buildRows(pw.ID)
	if err != nil {
		h.logger.Error("build shopping list", "error", err, "plan_week_id", pw.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build shopping list"})
		return
	}

	rows = shopping.Filter(rows, mode, showCupboard)
	sections := shopping.Group(rows, category.Rank)

	out := make([]shoppingSection, 0, len(sections))
	for _, sec := range sections {
		rendered := shoppingSection{Name: sec.Name, Rows: make([]shoppingRow, 0, len(sec.Rows))}
		for _, row := range sec.Rows {
			rendered.Rows = append(rendered.Rows, renderRow(row))
		}
		out = append(out, rendered)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week":     pw,
		"mode":     mode,
		"sections": out,
	})
}

func (h *ShoppingHandler) buildRows(planWeekID int64) ([]shopping.Row, error) {
	entries, err := h.planStore.ListDinnerEntries(planWeekID)
	if err != nil {
		return nil, err
	}

	var recipeIDs []int64
	for _, e := range entries {
		if e.RecipeID != nil {
			recipeIDs = append(recipeIDs, *e.RecipeID)
		}
	}

	recipes, err := h.recipeStore.ListByIDs(recipeIDs)
	if err != nil {
		return nil, err
	}
	items, err := h.recipeStore.ListItemsByRecipeIDs(recipeIDs)
	if err != nil {
		return nil, err
	}
	manualItems, err := h.manualItemStore.ListByWeek(planWeekID)
	if err != nil {
		return nil, err
	}
	overlay, err := h.checklistStore.GetOverlay(planWeekID)
	if err != nil {
		return nil, err
	}

	return shopping.BuildList(entries, recipes, items, manualItems, overlay), nil
}

func renderRow(row shopping.Row) shoppingRow {
	out := shoppingRow{
		Key:        row.RowKey(),
		Name:       row.RowName(),
		Category:   row.RowCategory(),
		QtyText:    shopping.QtyText(row),
		InCupboard: row.Checklist().InCupboard,
		InTrolley:  row.Checklist().InTrolley,
	}
	switch r := row.(type) {
	case shopping.IngredientRow:
		out.Kind = shopping.KindIngredient
		out.IngredientID = r.IngredientID
		out.Unit = r.Unit
	case shopping.ManualRow:
		out.Kind = shopping.KindManual
		out.ManualItemID = r.ManualItemID
		out.CarryForward = r.CarryForward
	}
	return out
}

type ingredientStateRequest struct {
	IngredientID int64  `json:"ingredient_id"`
	Unit         string `json:"unit"`
	store.TickPatch
}

// SetIngredientState applies a partial tick patch to one aggregated row.
// Fields absent from the body keep their stored value.
func (h *ShoppingHandler) SetIngredientState(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	var req ingredientStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	// An empty unit is a valid key component; only the ingredient is required.
	if req.IngredientID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ingredient_id is required"})
		return
	}

	if err := h.checklistStore.SetIngredientState(pw.ID, req.IngredientID, req.Unit, req.TickPatch); err != nil {
		h.logger.Error("set ingredient state", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save state"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping_state", "updated", req.IngredientID, pw.ID))
	w.WriteHeader(http.StatusNoContent)
}

type manualStateRequest struct {
	ManualItemID int64 `json:"manual_item_id"`
	store.TickPatch
}

// SetManualState applies a partial tick patch to one manual row.
func (h *ShoppingHandler) SetManualState(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	var req manualStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	item, err := h.manualItemStore.GetByID(req.ManualItemID)
	if err != nil {
		h.logger.Error("get manual item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if item == nil || item.PlanWeekID != pw.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if err := h.checklistStore.SetManualState(pw.ID, item.ID, req.TickPatch); err != nil {
		h.logger.Error("set manual state", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save state"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("manual_state", "updated", item.ID, pw.ID))
	w.WriteHeader(http.StatusNoContent)
}

// Reset clears all ticks for a week, leaving manual items in place. Resetting
// an already-clean week succeeds.
func (h *ShoppingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	if err := h.checklistStore.Reset(pw.ID); err != nil {
		h.logger.Error("reset checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("shopping_state", "reset", 0, pw.ID))
	w.WriteHeader(http.StatusNoContent)
}

type manualItemRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Qty          *float64 `json:"qty"`
	Unit         *string  `json:"unit"`
	CarryForward bool     `json:"carry_forward"`
}

func (h *ShoppingHandler) CreateManualItem(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	var req manualItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Category == "" {
		req.Category = category.Guess(req.Name)
	}

	item, err := h.manualItemStore.Create(pw.ID, req.Name, req.Category, req.Qty, req.Unit, req.CarryForward)
	if err != nil {
		h.logger.Error("create manual item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("manual_item", "created", item.ID, pw.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) DeleteManualItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item, err := h.manualItemStore.GetByID(id)
	if err != nil {
		h.logger.Error("get manual item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	pw, err := h.planStore.GetWeekByID(item.PlanWeekID)
	if err != nil {
		h.logger.Error("get plan week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return
	}
	if pw == nil || pw.HouseholdID != auth.HouseholdID(r.Context()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if err := h.manualItemStore.Delete(item.ID); err != nil {
		h.logger.Error("delete manual item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("manual_item", "deleted", item.ID, pw.ID))
	w.WriteHeader(http.StatusNoContent)
}

// CarryForward copies the previous week's carry-forward items into this
// week, without their ticks. No previous week means nothing to copy.
func (h *ShoppingHandler) CarryForward(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	start, err := week.ParseStart(pw.WeekStart)
	if err != nil {
		h.logger.Error("parse week start", "error", err, "week_start", pw.WeekStart)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to carry forward"})
		return
	}

	prev, err := h.planStore.GetWeek(pw.HouseholdID, week.Format(week.Previous(start)))
	if err != nil {
		h.logger.Error("get previous week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to carry forward"})
		return
	}
	if prev == nil {
		writeJSON(w, http.StatusOK, map[string]int64{"copied": 0})
		return
	}

	count, err := h.manualItemStore.CarryForward(prev.ID, pw.ID)
	if err != nil {
		h.logger.Error("carry forward", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to carry forward"})
		return
	}

	if count > 0 {
		h.hub.Broadcast(ws.NewMessage("manual_item", "created", 0, pw.ID))
	}
	writeJSON(w, http.StatusOK, map[string]int64{"copied": count})
}
