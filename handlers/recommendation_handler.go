package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"pin_share_backend/config"
	_ "pin_share_backend/docs" // swagger annotations
	"pin_share_backend/models"
	"pin_share_backend/services"
	"pin_share_backend/utils"
)

// Services bundles the service layer for route registration.
type Services struct {
	Pins   *services.PinService
	Rec    *services.Recommender
	Ledger *services.InterestLedger
}

// RecommendHandler godoc
// @Summary Recommend pins for a user
// @Description Returns public pins matching the user's top interests and saved searches, newest first; falls back to the newest public pins when the user has no signal. Never includes the user's own pins
// @Tags recommendation
// @Produce json
// @Param uid path string true "User ID"
// @Param limit query int false "Result cap"
// @Success 200 {object} models.RecommendationResponse "success"
// @Failure 400 {object} models.APIResponse "bad request"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/recommendation/{uid} [get]
func RecommendHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := chi.URLParam(r, "uid")
	if !utils.ValidateUserID(w, uid) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	pins, err := svc.Rec.Recommend(uid, limit)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeRecommendGenError, err.Error(), map[string]interface{}{})
		return
	}

	// An empty list is a valid answer, distinct from a store failure above.
	utils.WriteSuccessResponse(w, pins)
}

// TopInterestsHandler godoc
// @Summary Get a user's top interests
// @Description Returns the user's highest-scoring keywords from the interest ledger
// @Tags recommendation
// @Produce json
// @Param uid path string true "User ID"
// @Param k query int false "Number of keywords"
// @Success 200 {object} models.APIResponse "success"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/interest/{uid} [get]
func TopInterestsHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := chi.URLParam(r, "uid")
	if !utils.ValidateUserID(w, uid) {
		return
	}

	k := 10
	if v := r.URL.Query().Get("k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			k = n
		}
	}

	records, err := svc.Ledger.TopInterests(uid, k)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, records)
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, svc *Services) {
	// Swagger docs
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/api/pin", func(w http.ResponseWriter, r *http.Request) {
		CreatePinHandler(w, r, svc)
	})
	r.Get("/api/pin/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetPinHandler(w, r, svc)
	})
	r.Put("/api/pin/{id}", func(w http.ResponseWriter, r *http.Request) {
		UpdatePinHandler(w, r, svc)
	})
	r.Delete("/api/pin/{id}", func(w http.ResponseWriter, r *http.Request) {
		DeletePinHandler(w, r, svc)
	})
	r.Post("/api/pin/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		LikePinHandler(w, r, svc)
	})
	r.Post("/api/pin/{id}/comment", func(w http.ResponseWriter, r *http.Request) {
		CommentPinHandler(w, r, svc)
	})

	r.Get("/api/search", func(w http.ResponseWriter, r *http.Request) {
		SearchPinsHandler(w, r, svc)
	})

	r.Get("/api/recommendation/{uid}", func(w http.ResponseWriter, r *http.Request) {
		RecommendHandler(w, r, svc)
	})
	r.Get("/api/interest/{uid}", func(w http.ResponseWriter, r *http.Request) {
		TopInterestsHandler(w, r, svc)
	})
}
