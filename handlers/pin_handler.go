package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pin_share_backend/models"
	"pin_share_backend/services"
	"pin_share_backend/utils"
)

// CreatePinHandler godoc
// @Summary Create a pin
// @Description Creates a pin; keywords are extracted synchronously from title, description, tags, linked page and media before the pin is stored
// @Tags pins
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param pin body models.CreatePinRequest true "Pin payload"
// @Success 200 {object} models.PinResponse "success"
// @Failure 400 {object} models.APIResponse "bad request"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/pin [post]
func CreatePinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := utils.RequestUserID(r)
	if !utils.ValidateUserID(w, uid) {
		return
	}

	var req models.CreatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}
	if req.Title == "" || req.Description == "" {
		utils.WriteCustomErrorResponse(w, models.CodeMissingParams, "title and description are required", map[string]interface{}{})
		return
	}

	pin, err := svc.Pins.CreatePin(r.Context(), services.CreatePinInput{
		Publisher:     uid,
		Title:         req.Title,
		Description:   req.Description,
		Link:          req.Link,
		Privacy:       req.Privacy,
		Board:         req.Board,
		MediaFilename: req.MediaFilename,
		Tags:          req.Tags,
	})
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, pin)
}

// GetPinHandler godoc
// @Summary Get a pin
// @Tags pins
// @Produce json
// @Param id path string true "Pin ID"
// @Success 200 {object} models.PinResponse "success"
// @Failure 404 {object} models.APIResponse "not found"
// @Router /api/pin/{id} [get]
func GetPinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	id := chi.URLParam(r, "id")

	pin, err := svc.Pins.GetPin(id)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodePinNotFound)
		return
	}

	utils.WriteSuccessResponse(w, pin)
}

// UpdatePinHandler godoc
// @Summary Update a pin
// @Description Owner-only; a title or description change re-runs keyword extraction
// @Tags pins
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Pin ID"
// @Param pin body models.UpdatePinRequest true "Fields to change"
// @Success 200 {object} models.PinResponse "success"
// @Failure 403 {object} models.APIResponse "forbidden"
// @Failure 404 {object} models.APIResponse "not found"
// @Router /api/pin/{id} [put]
func UpdatePinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := utils.RequestUserID(r)
	if !utils.ValidateUserID(w, uid) {
		return
	}
	id := chi.URLParam(r, "id")

	var req models.UpdatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}

	pin, err := svc.Pins.UpdatePin(uid, id, services.UpdatePinInput{
		Title:       req.Title,
		Description: req.Description,
		Privacy:     req.Privacy,
	})
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			utils.WriteErrorResponse(w, models.CodeForbidden, map[string]interface{}{})
			return
		}
		utils.HandleServiceError(w, err, models.CodePinNotFound)
		return
	}

	utils.WriteSuccessResponse(w, pin)
}

// DeletePinHandler godoc
// @Summary Delete a pin
// @Description Owner-only; cascades keywords, likes, comments and interaction events
// @Tags pins
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Pin ID"
// @Success 200 {object} models.APIResponse "success"
// @Failure 403 {object} models.APIResponse "forbidden"
// @Failure 404 {object} models.APIResponse "not found"
// @Router /api/pin/{id} [delete]
func DeletePinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := utils.RequestUserID(r)
	if !utils.ValidateUserID(w, uid) {
		return
	}
	id := chi.URLParam(r, "id")

	if err := svc.Pins.DeletePin(uid, id); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			utils.WriteErrorResponse(w, models.CodeForbidden, map[string]interface{}{})
			return
		}
		utils.HandleServiceError(w, err, models.CodePinNotFound)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{"id": id})
}

// LikePinHandler godoc
// @Summary Like a pin
// @Description Stores the like and dispatches a LIKE interaction event; the event is best-effort and never fails the request
// @Tags pins
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Pin ID"
// @Success 200 {object} models.APIResponse "success"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/pin/{id}/like [post]
func LikePinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := utils.RequestUserID(r)
	if !utils.ValidateUserID(w, uid) {
		return
	}
	id := chi.URLParam(r, "id")

	if err := svc.Pins.LikePin(uid, id); err != nil {
		utils.HandleServiceError(w, err, models.CodePinNotFound)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{"pin_id": id})
}

// CommentPinHandler godoc
// @Summary Comment on a pin
// @Description Stores the comment and dispatches a COMMENT interaction event
// @Tags pins
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Pin ID"
// @Param comment body models.CommentRequest true "Comment payload"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "bad request"
// @Router /api/pin/{id}/comment [post]
func CommentPinHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	uid := utils.RequestUserID(r)
	if !utils.ValidateUserID(w, uid) {
		return
	}
	id := chi.URLParam(r, "id")

	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		utils.WriteCustomErrorResponse(w, models.CodeMissingParams, "comment text is required", map[string]interface{}{})
		return
	}

	comment, err := svc.Pins.CommentPin(uid, id, req.Text)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodePinNotFound)
		return
	}

	utils.WriteSuccessResponse(w, comment)
}

// SearchPinsHandler godoc
// @Summary Search public pins
// @Description Keyword search over public pins; records a SEARCH interaction and saves the query terms for the calling user
// @Tags search
// @Produce json
// @Param X-User-ID header string false "User ID"
// @Param q query string true "Search query"
// @Param limit query int false "Result cap"
// @Success 200 {object} models.RecommendationResponse "success"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/search [get]
func SearchPinsHandler(w http.ResponseWriter, r *http.Request, svc *Services) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "q",
		})
		return
	}

	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	pins, err := svc.Pins.Search(utils.RequestUserID(r), query, limit)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, pins)
}
