package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"mealweek/internal/auth"
	"mealweek/internal/model"
	"mealweek/internal/store"
	ws "mealweek/internal/websocket"
)

type RecipeHandler struct {
	recipeStore     *store.RecipeStore
	ingredientStore *store.IngredientStore
	hub             *ws.Hub
	logger          *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, is *store.IngredientStore, hub *ws.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipeStore: rs, ingredientStore: is, hub: hub, logger: logger}
}

type recipeRequest struct {
	Name            string `json:"name"`
	ServingsDefault int    `json:"servings_default"`
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.ListByHousehold(auth.HouseholdID(r.Context()))
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipes"})
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	recipe, err := h.recipeStore.Create(auth.HouseholdID(r.Context()), req.Name, req.ServingsDefault)
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "created", recipe.ID, 0))
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe := h.ownedRecipe(w, r)
	if recipe == nil {
		return
	}

	items, err := h.recipeStore.ListItemsByRecipe(recipe.ID)
	if err != nil {
		h.logger.Error("list recipe items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipe items"})
		return
	}
	if items == nil {
		items = []model.RecipeItem{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recipe": recipe,
		"items":  items,
	})
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedRecipe(w, r)
	if existing == nil {
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	recipe, err := h.recipeStore.Update(existing.ID, req.Name, req.ServingsDefault)
	if err != nil {
		h.logger.Error("update recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "updated", recipe.ID, 0))
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedRecipe(w, r)
	if existing == nil {
		return
	}

	if err := h.recipeStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete recipe"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "deleted", existing.ID, 0))
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceItems swaps a recipe's full ingredient line list. Every referenced
// ingredient must exist in the caller's household.
func (h *RecipeHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	recipe := h.ownedRecipe(w, r)
	if recipe == nil {
		return
	}

	var req struct {
		Items []store.RecipeItemInput `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	householdID := auth.HouseholdID(r.Context())
	for _, it := range req.Items {
		if it.Qty <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "qty must be positive"})
			return
		}
		ingredient, err := h.ingredientStore.GetByID(it.IngredientID)
		if err != nil {
			h.logger.Error("get ingredient", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check ingredient"})
			return
		}
		if ingredient == nil || ingredient.HouseholdID != householdID {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown ingredient"})
			return
		}
	}

	if err := h.recipeStore.ReplaceItems(recipe.ID, req.Items); err != nil {
		h.logger.Error("replace recipe items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to replace items"})
		return
	}

	items, err := h.recipeStore.ListItemsByRecipe(recipe.ID)
	if err != nil {
		h.logger.Error("list recipe items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipe items"})
		return
	}
	if items == nil {
		items = []model.RecipeItem{}
	}

	h.hub.Broadcast(ws.NewMessage("recipe", "updated", recipe.ID, 0))
	writeJSON(w, http.StatusOK, items)
}

func (h *RecipeHandler) ownedRecipe(w http.ResponseWriter, r *http.Request) *model.Recipe {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return nil
	}

	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
		return nil
	}
	if recipe == nil || recipe.HouseholdID != auth.HouseholdID(r.Context()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return nil
	}
	return recipe
}
