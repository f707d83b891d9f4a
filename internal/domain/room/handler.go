package room

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/slug"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles room HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new room handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /rooms
// @Summary List active rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.Response{data=[]RoomResponse}
// @Failure 500 {object} response.Response
// @Router /rooms [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repo.ListActive(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_LIST_FAILED", "Failed to fetch rooms", err)
		return
	}

	items := make([]*RoomResponse, len(rooms))
	for i := range rooms {
		items[i] = rooms[i].ToResponse()
	}
	response.OK(w, items)
}

// Get handles GET /rooms/{idOrSlug}
// @Summary Get a room by id or slug
// @Tags Room
// @Produce json
// @Param idOrSlug path string true "Room id or slug"
// @Success 200 {object} response.Response{data=RoomResponse}
// @Failure 404,500 {object} response.Response
// @Router /rooms/{idOrSlug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "idOrSlug")

	var (
		rm  *Room
		err error
	)
	if id, parseErr := uuid.Parse(raw); parseErr == nil {
		rm, err = h.repo.GetActiveByID(r.Context(), id)
	} else {
		rm, err = h.repo.GetActiveBySlug(r.Context(), raw)
	}
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_FETCH_FAILED", "Failed to fetch room", err)
		return
	}
	if rm == nil {
		response.NotFound(w, "Room not found")
		return
	}
	response.OK(w, rm.ToResponse())
}

// AdminList handles GET /admin/rooms
// @Summary List all rooms including inactive
// @Tags Admin Rooms
// @Produce json
// @Security AdminCookie
// @Success 200 {object} response.Response{data=[]RoomResponse}
// @Failure 401,500 {object} response.Response
// @Router /admin/rooms [get]
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repo.ListAll(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_LIST_FAILED", "Failed to fetch rooms", err)
		return
	}

	items := make([]*RoomResponse, len(rooms))
	for i := range rooms {
		items[i] = rooms[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminCreate handles POST /admin/rooms
// @Summary Create a room
// @Tags Admin Rooms
// @Accept json
// @Produce json
// @Security AdminCookie
// @Param request body CreateRequest true "Room data"
// @Success 201 {object} response.Response{data=RoomResponse}
// @Failure 400,401,409,500 {object} response.Response
// @Router /admin/rooms [post]
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

	if req.MaxGuests == 0 {
		req.MaxGuests = 2
	}
	if req.MinNights == 0 {
		req.MinNights = 1
	}

	now := time.Now()
	rm := &Room{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
		MaxGuests:   req.MaxGuests,
		Features:    req.Features,
		Images:      req.Images,
		IsActive:    true,
		MinNights:   req.MinNights,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.Create(r.Context(), rm); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, ErrSlugTaken.Error())
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_CREATE_FAILED", "Failed to create room", err)
		return
	}

	response.Created(w, rm.ToResponse())
}

// AdminUpdate handles PUT /admin/rooms/{id}
// @Summary Update a room
// @Tags Admin Rooms
// @Accept json
// @Produce json
// @Security AdminCookie
// @Param id path string true "Room id"
// @Param request body UpdateRequest true "Fields to update"
// @Success 200 {object} response.Response{data=RoomResponse}
// @Failure 400,401,404,409,500 {object} response.Response
// @Router /admin/rooms/{id} [put]
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room id")
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

	rm, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_FETCH_FAILED", "Failed to fetch room", err)
		return
	}
	if rm == nil {
		response.NotFound(w, "Room not found")
		return
	}

	if req.Name != nil {
		rm.Name = *req.Name
		rm.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		rm.Description = *req.Description
	}
	if req.BasePrice != nil {
		rm.BasePrice = *req.BasePrice
	}
	if req.MaxGuests != nil {
		rm.MaxGuests = *req.MaxGuests
	}
	if req.Features != nil {
		rm.Features = *req.Features
	}
	if req.Images != nil {
		rm.Images = *req.Images
	}
	if req.IsActive != nil {
		rm.IsActive = *req.IsActive
	}
	if req.MinNights != nil {
		rm.MinNights = *req.MinNights
	}

	// Price and guest-limit edits apply to future bookings only; existing
	// bookings keep their snapshotted total_price.
	if err := h.repo.Update(r.Context(), rm); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, ErrSlugTaken.Error())
			return
		}
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_UPDATE_FAILED", "Failed to update room", err)
		return
	}

	response.OK(w, rm.ToResponse())
}

// AdminDelete handles DELETE /admin/rooms/{id}
// @Summary Delete a room
// @Tags Admin Rooms
// @Produce json
// @Security AdminCookie
// @Param id path string true "Room id"
// @Success 204 {string} string "No Content"
// @Failure 400,401,404,409,500 {object} response.Response
// @Router /admin/rooms/{id} [delete]
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		if errors.Is(err, ErrHasBookings) {
			response.Conflict(w, "Room has bookings; deactivate it instead")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_DELETE_FAILED", "Failed to delete room", err)
		return
	}
	response.NoContent(w)
}

// Routes returns public room routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{idOrSlug}", h.Get)
	return r
}

// AdminRoutes returns admin room routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminList)
	r.Post("/", h.AdminCreate)
	r.Put("/{id}", h.AdminUpdate)
	r.Delete("/{id}", h.AdminDelete)
	return r
}
