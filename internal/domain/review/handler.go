package review

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/stay"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles review HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new review handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /reviews
// @Summary List published guest reviews
// @Tags Review
// @Produce json
// @Param featured query bool false "Only featured reviews"
// @Success 200 {object} response.Response{data=[]ReviewResponse}
// @Failure 500 {object} response.Response
// @Router /reviews [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	reviews, err := h.repo.ListActive(r.Context(), featuredOnly)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_LIST_FAILED", "Failed to fetch reviews", err)
		return
	}

	items := make([]*ReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = reviews[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminList handles GET /admin/reviews
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.ListAll(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_LIST_FAILED", "Failed to fetch reviews", err)
		return
	}

	items := make([]*ReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = reviews[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminCreate handles POST /admin/reviews
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	reviewDate, err := stay.ParseDate(req.ReviewDate)
	if err != nil {
		response.BadRequest(w, "Invalid review date")
		return
	}
	if req.Source == "" {
		req.Source = "direct"
	}

	now := time.Now()
	rv := &Review{
		ID:         uuid.New(),
		GuestName:  req.GuestName,
		Country:    nullString(req.Country),
		Source:     req.Source,
		Rating:     req.Rating,
		Score:      nullFloat(req.Score),
		ReviewText: req.ReviewText,
		ReviewDate: reviewDate,
		StayType:   nullString(req.StayType),
		RoomType:   nullString(req.RoomType),
		IsVerified: req.IsVerified,
		IsFeatured: req.IsFeatured,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.Create(r.Context(), rv); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_CREATE_FAILED", "Failed to create review", err)
		return
	}

	response.Created(w, rv.ToResponse())
}

// AdminUpdate handles PUT /admin/reviews/{id}
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_FETCH_FAILED", "Failed to fetch review", err)
		return
	}
	if rv == nil {
		response.NotFound(w, "Review not found")
		return
	}

	if req.GuestName != nil {
		rv.GuestName = *req.GuestName
	}
	if req.Country != nil {
		rv.Country = nullString(*req.Country)
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Score != nil {
		rv.Score = nullFloat(req.Score)
	}
	if req.ReviewText != nil {
		rv.ReviewText = *req.ReviewText
	}
	if req.StayType != nil {
		rv.StayType = nullString(*req.StayType)
	}
	if req.RoomType != nil {
		rv.RoomType = nullString(*req.RoomType)
	}
	if req.IsVerified != nil {
		rv.IsVerified = *req.IsVerified
	}
	if req.IsFeatured != nil {
		rv.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		rv.IsActive = *req.IsActive
	}

	if err := h.repo.Update(r.Context(), rv); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Review not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_UPDATE_FAILED", "Failed to update review", err)
		return
	}

	response.OK(w, rv.ToResponse())
}

// AdminDelete handles DELETE /admin/reviews/{id}
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Review not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_DELETE_FAILED", "Failed to delete review", err)
		return
	}
	response.NoContent(w)
}

// Routes returns public review routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// AdminRoutes returns admin review routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminList)
	r.Post("/", h.AdminCreate)
	r.Put("/{id}", h.AdminUpdate)
	r.Delete("/{id}", h.AdminDelete)
	return r
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
