package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"mealweek/internal/handler"
	"mealweek/internal/middleware"
	"mealweek/internal/store"
	ws "mealweek/internal/websocket"
)

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	authH          *handler.AuthHandler
	ingredientH    *handler.IngredientHandler
	recipeH        *handler.RecipeHandler
	planH          *handler.PlanHandler
	shoppingH      *handler.ShoppingHandler
	sessionStore   *store.SessionStore
	householdStore *store.HouseholdStore
	rateLimiter    *middleware.RateLimiter
	logger         *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	householdStore := store.NewHouseholdStore(db)
	sessionStore := store.NewSessionStore(db)
	ingredientStore := store.NewIngredientStore(db)
	recipeStore := store.NewRecipeStore(db)
	planStore := store.NewPlanStore(db)
	manualItemStore := store.NewManualItemStore(db)
	checklistStore := store.NewChecklistStore(db)

	return &Server{
		db:             db,
		hub:            hub,
		authH:          handler.NewAuthHandler(userStore, householdStore, sessionStore, logger.With("component", "auth")),
		ingredientH:    handler.NewIngredientHandler(ingredientStore, hub, logger.With("component", "ingredient")),
		recipeH:        handler.NewRecipeHandler(recipeStore, ingredientStore, hub, logger.With("component", "recipe")),
		planH:          handler.NewPlanHandler(planStore, recipeStore, hub, logger.With("component", "plan")),
		shoppingH:      handler.NewShoppingHandler(planStore, recipeStore, manualItemStore, checklistStore, hub, logger.With("component", "shopping")),
		sessionStore:   sessionStore,
		householdStore: householdStore,
		rateLimiter:    middleware.NewRateLimiter(),
		logger:         logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.householdStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Ingredient API routes
	mux.HandleFunc("GET /api/ingredients", s.ingredientH.List)
	mux.HandleFunc("POST /api/ingredients", s.ingredientH.Create)
	mux.HandleFunc("PUT /api/ingredients/{id}", s.ingredientH.Update)
	mux.HandleFunc("DELETE /api/ingredients/{id}", s.ingredientH.Delete)

	// Recipe API routes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)
	mux.HandleFunc("PUT /api/recipes/{id}/items", s.recipeH.ReplaceItems)

	// Plan API routes
	mux.HandleFunc("GET /api/plan", s.planH.GetWeek)
	mux.HandleFunc("PUT /api/plan/{week_id}/dinners/{date}", s.planH.SetDinner)
	mux.HandleFunc("DELETE /api/plan/{week_id}/dinners/{date}", s.planH.ClearDinner)
	mux.HandleFunc("POST /api/plan/{week_id}/clear", s.planH.ClearWeek)

	// Shopping list API routes
	mux.HandleFunc("GET /api/plan/{week_id}/shopping-list", s.shoppingH.GetList)
	mux.HandleFunc("PUT /api/plan/{week_id}/shopping-state", s.shoppingH.SetIngredientState)
	mux.HandleFunc("PUT /api/plan/{week_id}/manual-state", s.shoppingH.SetManualState)
	mux.HandleFunc("POST /api/plan/{week_id}/shopping-reset", s.shoppingH.Reset)
	mux.HandleFunc("POST /api/plan/{week_id}/manual-items", s.shoppingH.CreateManualItem)
	mux.HandleFunc("DELETE /api/manual-items/{id}", s.shoppingH.DeleteManualItem)
	mux.HandleFunc("POST /api/plan/{week_id}/carry-forward", s.shoppingH.CarryForward)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
