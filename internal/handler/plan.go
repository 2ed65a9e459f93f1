package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mealweek/internal/auth"
	"mealweek/internal/model"
	"mealweek/internal/store"
	"mealweek/internal/week"
	ws "mealweek/internal/websocket"
)

type PlanHandler struct {
	planStore   *store.PlanStore
	recipeStore *store.RecipeStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewPlanHandler(ps *store.PlanStore, rs *store.RecipeStore, hub *ws.Hub, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{planStore: ps, recipeStore: rs, hub: hub, logger: logger}
}

// GetWeek returns the plan week named by ?week= (defaulting to the current
// week), creating it on first access, together with its dinner entries.
func (h *PlanHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekStart := r.URL.Query().Get("week")
	var start time.Time
	if weekStart == "" {
		start = week.StartOfWeek(time.Now())
		weekStart = week.Format(start)
	} else {
		var err error
		start, err = week.ParseStart(weekStart)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week must be a Monday in YYYY-MM-DD form"})
			return
		}
	}

	pw, err := h.planStore.EnsureWeek(auth.HouseholdID(r.Context()), weekStart)
	if err != nil {
		h.logger.Error("ensure week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load week"})
		return
	}

	entries, err := h.planStore.ListDinnerEntries(pw.ID)
	if err != nil {
		h.logger.Error("list dinner entries", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load entries"})
		return
	}
	if entries == nil {
		entries = []model.PlanEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week":    pw,
		"days":    week.Days(start),
		"entries": entries,
	})
}

type setDinnerRequest struct {
	RecipeID         int64 `json:"recipe_id"`
	ServingsOverride *int  `json:"servings_override"`
}

// SetDinner assigns a recipe to one date of the week, replacing any recipe
// already planned for that date.
func (h *PlanHandler) SetDinner(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	date := r.PathValue("date")
	start, err := week.ParseStart(pw.WeekStart)
	if err != nil || !week.Contains(start, date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is outside this week"})
		return
	}

	var req setDinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	recipe, err := h.recipeStore.GetByID(req.RecipeID)
	if err != nil {
		h.logger.Error("get recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check recipe"})
		return
	}
	if recipe == nil || recipe.HouseholdID != pw.HouseholdID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	entry, err := h.planStore.SetDinner(pw.ID, date, recipe.ID, req.ServingsOverride)
	if err != nil {
		h.logger.Error("set dinner", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set dinner"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan_entry", "updated", entry.ID, pw.ID))
	writeJSON(w, http.StatusOK, entry)
}

// ClearDinner removes the dinner for one date. Clearing an empty slot
// succeeds.
func (h *PlanHandler) ClearDinner(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	if err := h.planStore.ClearDinner(pw.ID, r.PathValue("date")); err != nil {
		h.logger.Error("clear dinner", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear dinner"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan_entry", "cleared", 0, pw.ID))
	w.WriteHeader(http.StatusNoContent)
}

// ClearWeek wipes all dinner entries of a week at once.
func (h *PlanHandler) ClearWeek(w http.ResponseWriter, r *http.Request) {
	pw := resolveWeek(h.planStore, h.logger, w, r)
	if pw == nil {
		return
	}

	count, err := h.planStore.ClearWeek(pw.ID)
	if err != nil {
		h.logger.Error("clear week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear week"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("plan_week", "cleared", pw.ID, pw.ID))
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": count})
}

// resolveWeek loads the plan week from the {week_id} path segment and checks
// it belongs to the caller's household. A foreign week reads as not found.
func resolveWeek(ps *store.PlanStore, logger *slog.Logger, w http.ResponseWriter, r *http.Request) *model.PlanWeek {
	id, err := strconv.ParseInt(r.PathValue("week_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week_id"})
		return nil
	}

	pw, err := ps.GetWeekByID(id)
	if err != nil {
		logger.Error("get plan week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load week"})
		return nil
	}
	if pw == nil || pw.HouseholdID != auth.HouseholdID(r.Context()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "week not found"})
		return nil
	}
	return pw
}
