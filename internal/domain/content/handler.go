package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles site content HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new content handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetPage handles GET /content/{page}
// @Summary Get the active content blocks of a page
// @Tags Content
// @Produce json
// @Param page path string true "Page name"
// @Success 200 {object} response.Response{data=[]SectionResponse}
// @Failure 500 {object} response.Response
// @Router /content/{page} [get]
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")

	sections, err := h.repo.PageSections(r.Context(), page)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTENT_FETCH_FAILED", "Failed to fetch page content", err)
		return
	}

	items := make([]*SectionResponse, len(sections))
	for i := range sections {
		items[i] = sections[i].ToResponse()
	}
	response.OK(w, items)
}

// ListFAQs handles GET /faqs
// @Summary List published FAQs
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response{data=[]FAQResponse}
// @Failure 500 {object} response.Response
// @Router /faqs [get]
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.repo.ListActiveFAQs(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_LIST_FAILED", "Failed to fetch FAQs", err)
		return
	}

	items := make([]*FAQResponse, len(faqs))
	for i := range faqs {
		items[i] = faqs[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminListSections handles GET /admin/content
func (h *Handler) AdminListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.repo.ListSections(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTENT_FETCH_FAILED", "Failed to fetch content", err)
		return
	}

	items := make([]*SectionResponse, len(sections))
	for i := range sections {
		items[i] = sections[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminUpsertSection handles PUT /admin/content
func (h *Handler) AdminUpsertSection(w http.ResponseWriter, r *http.Request) {
	var req UpsertSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if !json.Valid(req.Content) {
		response.BadRequest(w, "content must be valid JSON")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	s := &Section{
		ID:         uuid.New(),
		Page:       req.Page,
		Section:    req.Section,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
		IsActive:   active,
		UpdatedAt:  time.Now(),
	}
	if err := h.repo.UpsertSection(r.Context(), s); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTENT_UPSERT_FAILED", "Failed to save content", err)
		return
	}

	response.OK(w, s.ToResponse())
}

// AdminDeleteSection handles DELETE /admin/content/{id}
func (h *Handler) AdminDeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid content id")
		return
	}

	if err := h.repo.DeleteSection(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Content block not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTENT_DELETE_FAILED", "Failed to delete content", err)
		return
	}
	response.NoContent(w)
}

// AdminListFAQs handles GET /admin/faqs
func (h *Handler) AdminListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.repo.ListAllFAQs(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_LIST_FAILED", "Failed to fetch FAQs", err)
		return
	}

	items := make([]*FAQResponse, len(faqs))
	for i := range faqs {
		items[i] = faqs[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminCreateFAQ handles POST /admin/faqs
func (h *Handler) AdminCreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req CreateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	f := &FAQ{
		ID:         uuid.New(),
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		OrderIndex: req.OrderIndex,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.CreateFAQ(r.Context(), f); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_CREATE_FAILED", "Failed to create FAQ", err)
		return
	}

	response.Created(w, f.ToResponse())
}

// AdminUpdateFAQ handles PUT /admin/faqs/{id}
func (h *Handler) AdminUpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid FAQ id")
		return
	}

	var req UpdateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	f, err := h.repo.GetFAQ(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_FETCH_FAILED", "Failed to fetch FAQ", err)
		return
	}
	if f == nil {
		response.NotFound(w, "FAQ not found")
		return
	}

	if req.Question != nil {
		f.Question = *req.Question
	}
	if req.Answer != nil {
		f.Answer = *req.Answer
	}
	if req.Category != nil {
		f.Category = *req.Category
	}
	if req.OrderIndex != nil {
		f.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateFAQ(r.Context(), f); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "FAQ not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_UPDATE_FAILED", "Failed to update FAQ", err)
		return
	}

	response.OK(w, f.ToResponse())
}

// AdminDeleteFAQ handles DELETE /admin/faqs/{id}
func (h *Handler) AdminDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid FAQ id")
		return
	}

	if err := h.repo.DeleteFAQ(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "FAQ not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "FAQ_DELETE_FAILED", "Failed to delete FAQ", err)
		return
	}
	response.NoContent(w)
}

// AdminContentRoutes returns admin content routes
func (h *Handler) AdminContentRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminListSections)
	r.Put("/", h.AdminUpsertSection)
	r.Delete("/{id}", h.AdminDeleteSection)
	return r
}

// AdminFAQRoutes returns admin FAQ routes
func (h *Handler) AdminFAQRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminListFAQs)
	r.Post("/", h.AdminCreateFAQ)
	r.Put("/{id}", h.AdminUpdateFAQ)
	r.Delete("/{id}", h.AdminDeleteFAQ)
	return r
}
