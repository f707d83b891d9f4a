package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles admin settings HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new settings handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /admin/settings
// @Summary List site settings
// @Tags Admin Settings
// @Produce json
// @Security AdminCookie
// @Success 200 {object} response.Response{data=[]SettingResponse}
// @Failure 401,500 {object} response.Response
// @Router /admin/settings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SETTINGS_LIST_FAILED", "Failed to fetch settings", err)
		return
	}

	out := make([]*SettingResponse, len(items))
	for i := range items {
		out[i] = items[i].ToResponse()
	}
	response.OK(w, out)
}

// Upsert handles PUT /admin/settings
// @Summary Create or update a setting
// @Tags Admin Settings
// @Accept json
// @Produce json
// @Security AdminCookie
// @Param request body UpsertRequest true "Setting"
// @Success 200 {object} response.Response{data=object{key=string,value=string}}
// @Failure 400,401,500 {object} response.Response
// @Router /admin/settings [put]
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.repo.Upsert(r.Context(), req.Key, req.Value, req.Description); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SETTINGS_UPSERT_FAILED", "Failed to save setting", err)
		return
	}

	response.OK(w, map[string]string{"key": req.Key, "value": req.Value})
}

// AdminRoutes returns admin settings routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Put("/", h.Upsert)
	return r
}
