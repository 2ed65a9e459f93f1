package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"mealweek/internal/auth"
	"mealweek/internal/database"
	"mealweek/internal/shopping"
	"mealweek/internal/store"
	ws "mealweek/internal/websocket"
)

type shoppingTestEnv struct {
	handler         *ShoppingHandler
	planStore       *store.PlanStore
	recipeStore     *store.RecipeStore
	ingredientStore *store.IngredientStore
	manualItemStore *store.ManualItemStore
	checklistStore  *store.ChecklistStore
	householdID     int64
	weekID          int64
}

func setupShoppingTest(t *testing.T) *shoppingTestEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h, err := store.NewHouseholdStore(db).Create("Test Household")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	ps := store.NewPlanStore(db)
	w, err := ps.EnsureWeek(h.ID, "2026-02-16")
	if err != nil {
		t.Fatalf("ensure week: %v", err)
	}

	rs := store.NewRecipeStore(db)
	is := store.NewIngredientStore(db)
	ms := store.NewManualItemStore(db)
	cs := store.NewChecklistStore(db)
	hub := ws.NewHub(slog.Default())

	return &shoppingTestEnv{
		handler:         NewShoppingHandler(ps, rs, ms, cs, hub, slog.Default()),
		planStore:       ps,
		recipeStore:     rs,
		ingredientStore: is,
		manualItemStore: ms,
		checklistStore:  cs,
		householdID:     h.ID,
		weekID:          w.ID,
	}
}

func authedRequest(method, target string, body string, householdID int64) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{
		UserID:      1,
		HouseholdID: householdID,
		Role:        "owner",
	})
	return req.WithContext(ctx)
}

type listResponse struct {
	Mode     string `json:"mode"`
	Sections []struct {
		Name string `json:"name"`
		Rows []struct {
			Kind       string `json:"kind"`
			Name       string `json:"name"`
			QtyText    string `json:"qty_text"`
			InCupboard bool   `json:"in_cupboard"`
		} `json:"rows"`
	} `json:"sections"`
}

func (env *shoppingTestEnv) getList(t *testing.T, query string) listResponse {
	t.Helper()
	req := authedRequest("GET", "/api/plan/"+strconv.FormatInt(env.weekID, 10)+"/shopping-list"+query, "", env.householdID)
	req.SetPathValue("week_id", strconv.FormatInt(env.weekID, 10))
	rec := httptest.NewRecorder()
	env.handler.GetList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get list: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	return resp
}

func TestGetListScalesAndGroups(t *testing.T) {
	env := setupShoppingTest(t)

	mince, _ := env.ingredientStore.Create(env.householdID, "Beef mince", "Meat")
	onion, _ := env.ingredientStore.Create(env.householdID, "Onion", "Veg")
	recipe, _ := env.recipeStore.Create(env.householdID, "Chilli", 2)
	env.recipeStore.ReplaceItems(recipe.ID, []store.RecipeItemInput{
		{IngredientID: mince.ID, Qty: 250, Unit: "g"},
		{IngredientID: onion.ID, Qty: 1, Unit: ""},
	})
	// Override doubles the recipe's default servings.
	override := 4
	env.planStore.SetDinner(env.weekID, "2026-02-17", recipe.ID, &override)
	env.manualItemStore.Create(env.weekID, "Bin bags", "Other", nil, nil, false)

	resp := env.getList(t, "")

	// Veg before Meat before Other in section order.
	var names []string
	for _, s := range resp.Sections {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "Veg" || names[1] != "Meat" || names[2] != "Other" {
		t.Fatalf("section order = %v", names)
	}

	meat := resp.Sections[1]
	if len(meat.Rows) != 1 || meat.Rows[0].QtyText != "500 g" {
		t.Errorf("meat rows = %+v, want scaled 500 g", meat.Rows)
	}

	other := resp.Sections[2]
	if len(other.Rows) != 1 || other.Rows[0].Kind != shopping.KindManual || other.Rows[0].QtyText != "" {
		t.Errorf("other rows = %+v, want one manual row with no qty text", other.Rows)
	}
}

func TestGetListShopModeHidesCupboard(t *testing.T) {
	env := setupShoppingTest(t)

	mince, _ := env.ingredientStore.Create(env.householdID, "Beef mince", "Meat")
	recipe, _ := env.recipeStore.Create(env.householdID, "Chilli", 2)
	env.recipeStore.ReplaceItems(recipe.ID, []store.RecipeItemInput{
		{IngredientID: mince.ID, Qty: 250, Unit: "g"},
	})
	env.planStore.SetDinner(env.weekID, "2026-02-17", recipe.ID, nil)

	cupboard := true
	env.checklistStore.SetIngredientState(env.weekID, mince.ID, "g", store.TickPatch{InCupboard: &cupboard})

	resp := env.getList(t, "?mode=shop")
	if len(resp.Sections) != 0 {
		t.Errorf("shop mode sections = %+v, want cupboard row hidden", resp.Sections)
	}

	resp = env.getList(t, "?mode=shop&cupboard=1")
	if len(resp.Sections) != 1 || !resp.Sections[0].Rows[0].InCupboard {
		t.Errorf("cupboard=1 sections = %+v, want cupboard row shown", resp.Sections)
	}
}

func TestGetListRejectsUnknownMode(t *testing.T) {
	env := setupShoppingTest(t)

	req := authedRequest("GET", "/api/plan/1/shopping-list?mode=bogus", "", env.householdID)
	req.SetPathValue("week_id", strconv.FormatInt(env.weekID, 10))
	rec := httptest.NewRecorder()
	env.handler.GetList(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSetStateForeignWeekLeavesStateUntouched(t *testing.T) {
	env := setupShoppingTest(t)

	// A second household must not be able to tick rows in the first one's week.
	req := authedRequest("PUT", "/api/plan/1/shopping-state",
		`{"ingredient_id": 10, "unit": "g", "in_trolley": true}`, env.householdID+1)
	req.SetPathValue("week_id", strconv.FormatInt(env.weekID, 10))
	rec := httptest.NewRecorder()
	env.handler.SetIngredientState(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	overlay, err := env.checklistStore.GetOverlay(env.weekID)
	if err != nil {
		t.Fatalf("get overlay: %v", err)
	}
	if len(overlay.Ingredient) != 0 {
		t.Errorf("overlay = %+v, rejected write must not change state", overlay.Ingredient)
	}
}

func TestSetIngredientStateRoundTrip(t *testing.T) {
	env := setupShoppingTest(t)

	req := authedRequest("PUT", "/api/plan/1/shopping-state",
		`{"ingredient_id": 10, "unit": "g", "in_trolley": true}`, env.householdID)
	req.SetPathValue("week_id", strconv.FormatInt(env.weekID, 10))
	rec := httptest.NewRecorder()
	env.handler.SetIngredientState(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	overlay, _ := env.checklistStore.GetOverlay(env.weekID)
	if !overlay.Ingredient[shopping.ItemKey{IngredientID: 10, Unit: "g"}].InTrolley {
		t.Error("trolley tick not persisted")
	}
}

func TestCarryForwardEndpoint(t *testing.T) {
	env := setupShoppingTest(t)

	// This week holds the flagged item; carry it into next week.
	env.manualItemStore.Create(env.weekID, "Dishwasher tabs", "Other", nil, nil, true)
	env.manualItemStore.Create(env.weekID, "Party hats", "Other", nil, nil, false)
	next, err := env.planStore.EnsureWeek(env.householdID, "2026-02-23")
	if err != nil {
		t.Fatalf("ensure next week: %v", err)
	}

	req := authedRequest("POST", "/api/plan/1/carry-forward", "", env.householdID)
	req.SetPathValue("week_id", strconv.FormatInt(next.ID, 10))
	rec := httptest.NewRecorder()
	env.handler.CarryForward(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["copied"] != 1 {
		t.Errorf("copied = %d, want 1", resp["copied"])
	}

	items, _ := env.manualItemStore.ListByWeek(next.ID)
	if len(items) != 1 || items[0].Name != "Dishwasher tabs" {
		t.Errorf("items = %+v", items)
	}
}

func TestCarryForwardNoPreviousWeek(t *testing.T) {
	env := setupShoppingTest(t)

	req := authedRequest("POST", "/api/plan/1/carry-forward", "", env.householdID)
	req.SetPathValue("week_id", strconv.FormatInt(env.weekID, 10))
	rec := httptest.NewRecorder()
	env.handler.CarryForward(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["copied"] != 0 {
		t.Errorf("copied = %d, want 0", resp["copied"])
	}
}
