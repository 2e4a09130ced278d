package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"mindd/internal/models"
	"mindd/internal/providers"
	"mindd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// ApiController exposes the synchronous user-facing operations: login,
// mood checkout, stats fetch, plan creation and plan listing, plus the
// seeding endpoints for users and content.
type ApiController struct {
	logger providers.Logger
	stats  services.StatsServiceInterface
	plans  services.PlanServiceInterface
	stores *models.Stores
	cache  providers.CacheProviderInterface
	clock  providers.Clock
}

func NewApiController(logger providers.Logger, stats services.StatsServiceInterface, plans services.PlanServiceInterface, stores *models.Stores, cache providers.CacheProviderInterface, clock providers.Clock) *ApiController {
	return &ApiController{
		logger: logger,
		stats:  stats,
		plans:  plans,
		stores: stores,
		cache:  cache,
		clock:  clock,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps the typed service failures onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidLevel), errors.Is(err, models.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInsufficientContent):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

type loginRequest struct {
	UserID string `json:"userId"`
}

func (ac *ApiController) ApplyLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	stat, err := ac.stats.ApplyLogin(payload.UserID, ac.clock.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (ac *ApiController) MoodCheckout(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	stat, err := ac.stats.RecordMoodCheckout(payload.UserID, ac.clock.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	ac.serveFromCacheOrCompute(w, "stats:"+userID, func() (any, error) {
		return ac.stats.GetStats(userID)
	})
}

type createPlanRequest struct {
	UserID string `json:"userId"`
	Level  string `json:"level"`
}

func (ac *ApiController) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var payload createPlanRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	level, err := models.ParsePlanLevel(payload.Level)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := ac.plans.Create(payload.UserID, level, ac.clock.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (ac *ApiController) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	ac.serveFromCacheOrCompute(w, "plans:"+userID, func() (any, error) {
		return ac.plans.ListForUser(userID), nil
	})
}

type createUserRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

func (ac *ApiController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.FirstName == "" || payload.Email == "" {
		http.Error(w, "firstName and email are required", http.StatusBadRequest)
		return
	}
	user := &models.User{
		ID:        uuid.NewString(),
		FirstName: payload.FirstName,
		Email:     payload.Email,
		CreatedAt: ac.clock.Now(),
	}
	ac.stores.Users.Put(user)
	writeJSON(w, http.StatusCreated, user)
}

type createContentRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	DurationMin int    `json:"durationMin"`
}

func (ac *ApiController) CreateContent(w http.ResponseWriter, r *http.Request) {
	var payload createContentRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if payload.Type != models.ContentTypeVideo && payload.Type != models.ContentTypeAudio {
		http.Error(w, "type must be video or audio", http.StatusBadRequest)
		return
	}
	item := &models.ContentItem{
		ID:          uuid.NewString(),
		Title:       payload.Title,
		Type:        payload.Type,
		DurationMin: payload.DurationMin,
		CreatedAt:   ac.clock.Now(),
	}
	ac.stores.Content.Put(item)
	writeJSON(w, http.StatusCreated, item)
}
