package contact

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
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles contact HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new contact handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /contact
// @Summary Submit a contact form inquiry
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Inquiry"
// @Success 201 {object} response.Response{data=RequestResponse}
// @Failure 400,500 {object} response.Response
// @Router /contact [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	entity := &Request{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     nullString(req.Phone),
		Subject:   nullString(req.Subject),
		Message:   req.Message,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.Create(r.Context(), entity); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTACT_CREATE_FAILED", "Failed to submit inquiry", err)
		return
	}

	response.Created(w, entity.ToResponse())
}

// AdminList handles GET /admin/contacts
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusNew, StatusRead, StatusResponded:
	default:
		response.BadRequest(w, "Invalid status filter")
		return
	}

	requests, err := h.repo.List(r.Context(), status)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTACT_LIST_FAILED", "Failed to fetch inquiries", err)
		return
	}

	items := make([]*RequestResponse, len(requests))
	for i := range requests {
		items[i] = requests[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminUpdateStatus handles PATCH /admin/contacts/{id}
func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid contact id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.repo.SetStatus(r.Context(), id, Status(req.Status)); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Contact request not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTACT_UPDATE_FAILED", "Failed to update inquiry", err)
		return
	}

	entity, err := h.repo.GetByID(r.Context(), id)
	if err != nil || entity == nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CONTACT_FETCH_FAILED", "Failed to fetch inquiry", err)
		return
	}
	response.OK(w, entity.ToResponse())
}

// Routes returns public contact routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// AdminRoutes returns admin contact routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminList)
	r.Patch("/{id}", h.AdminUpdateStatus)
	return r
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
