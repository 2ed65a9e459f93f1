package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"mealweek/internal/auth"
	"mealweek/internal/category"
	"mealweek/internal/model"
	"mealweek/internal/store"
	ws "mealweek/internal/websocket"
)

type IngredientHandler struct {
	ingredientStore *store.IngredientStore
	hub             *ws.Hub
	logger          *slog.Logger
}

func NewIngredientHandler(is *store.IngredientStore, hub *ws.Hub, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{ingredientStore: is, hub: hub, logger: logger}
}

type ingredientRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	ingredients, err := h.ingredientStore.ListByHousehold(householdID)
	if err != nil {
		h.logger.Error("list ingredients", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list ingredients"})
		return
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Auto-categorize if no category provided
	if req.Category == "" {
		req.Category = category.Guess(req.Name)
	}

	ingredient, err := h.ingredientStore.Create(auth.HouseholdID(r.Context()), req.Name, req.Category)
	if err != nil {
		h.logger.Error("create ingredient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "created", ingredient.ID, 0))
	writeJSON(w, http.StatusCreated, ingredient)
}

func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedIngredient(w, r)
	if existing == nil {
		return
	}

	var req ingredientRequest
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
		req.Category = existing.Category
	}

	ingredient, err := h.ingredientStore.Update(existing.ID, req.Name, req.Category)
	if err != nil {
		h.logger.Error("update ingredient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "updated", ingredient.ID, 0))
	writeJSON(w, http.StatusOK, ingredient)
}

func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedIngredient(w, r)
	if existing == nil {
		return
	}

	if err := h.ingredientStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete ingredient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete ingredient"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("ingredient", "deleted", existing.ID, 0))
	w.WriteHeader(http.StatusNoContent)
}

// ownedIngredient loads the {id} ingredient and checks it belongs to the
// caller's household. A foreign ingredient reads as not found.
func (h *IngredientHandler) ownedIngredient(w http.ResponseWriter, r *http.Request) *model.Ingredient {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return nil
	}

	ingredient, err := h.ingredientStore.GetByID(id)
	if err != nil {
		h.logger.Error("get ingredient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ingredient"})
		return nil
	}
	if ingredient == nil || ingredient.HouseholdID != auth.HouseholdID(r.Context()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ingredient not found"})
		return nil
	}
	return ingredient
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
