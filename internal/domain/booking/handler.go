package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/stay"
	"github.com/villamosta/villa-api/internal/pkg/stripe"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// maxWebhookBody caps the payload size accepted from the payment provider
const maxWebhookBody = 1 << 16

// Handler handles booking HTTP requests
type Handler struct {
	service       *Service
	repo          *Repository
	webhookSecret string
}

// NewHandler creates a new booking handler
func NewHandler(service *Service, repo *Repository, webhookSecret string) *Handler {
	return &Handler{service: service, repo: repo, webhookSecret: webhookSecret}
}

// CheckAvailability handles GET /availability
// @Summary Check room availability and price for a stay
// @Tags Booking
// @Produce json
// @Param roomId query string true "Room id"
// @Param startDate query string true "Check-in date (YYYY-MM-DD)"
// @Param endDate query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=Availability}
// @Failure 400,404,500 {object} response.Response
// @Router /availability [get]
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	roomID, err := uuid.Parse(q.Get("roomId"))
	if err != nil {
		response.BadRequest(w, "roomId is required and must be a valid id")
		return
	}
	start, err := stay.ParseDate(q.Get("startDate"))
	if err != nil {
		response.BadRequest(w, "startDate is required in YYYY-MM-DD form")
		return
	}
	end, err := stay.ParseDate(q.Get("endDate"))
	if err != nil {
		response.BadRequest(w, "endDate is required in YYYY-MM-DD form")
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), roomID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDateRange):
			response.BadRequest(w, ErrInvalidDateRange.Error())
		case errors.Is(err, ErrRoomNotFound):
			response.NotFound(w, "Room not found")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "AVAILABILITY_CHECK_FAILED", "Failed to check availability", err)
		}
		return
	}

	response.OK(w, result)
}

// Create handles POST /bookings
// @Summary Create a booking and open its payment authorization
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Booking data"
// @Success 201 {object} response.Response{data=CreateResponse}
// @Failure 400,404,409,500 {object} response.Response
// @Router /bookings [post]
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

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		response.BadRequest(w, "Invalid room id")
		return
	}
	checkIn, err := stay.ParseDate(req.CheckIn)
	if err != nil {
		response.BadRequest(w, "Invalid check-in date")
		return
	}
	checkOut, err := stay.ParseDate(req.CheckOut)
	if err != nil {
		response.BadRequest(w, "Invalid check-out date")
		return
	}

	b, clientSecret, err := h.service.CreateBooking(r.Context(), CreateInput{
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		NumGuests:       req.NumGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		var guestErr *GuestLimitError
		var stayErr *MinStayError
		switch {
		case errors.Is(err, ErrInvalidDateRange):
			response.BadRequest(w, ErrInvalidDateRange.Error())
		case errors.Is(err, ErrCheckInPast):
			response.BadRequest(w, ErrCheckInPast.Error())
		case errors.As(err, &guestErr):
			response.BadRequest(w, guestErr.Error())
		case errors.As(err, &stayErr):
			response.BadRequest(w, stayErr.Error())
		case errors.Is(err, ErrRoomNotFound):
			response.NotFound(w, "Room not found")
		case errors.Is(err, ErrDatesUnavailable):
			response.Conflict(w, "Selected dates are no longer available")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_CREATE_FAILED", "Failed to create booking", err)
		}
		return
	}

	response.Created(w, &CreateResponse{
		Booking:      b.ToResponse(),
		ClientSecret: clientSecret,
	})
}

// StripeWebhook handles POST /webhooks/stripe
// @Summary Receive payment provider events
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400,500 {object} response.Response
// @Router /webhooks/stripe [post]
func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body")
		return
	}

	event, err := stripe.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret, stripe.DefaultTolerance)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected webhook with bad signature")
		response.BadRequest(w, "Invalid webhook signature")
		return
	}

	if err := h.service.ApplyPaymentEvent(r.Context(), event.ID, event.Type, event.PaymentIntentID()); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "WEBHOOK_APPLY_FAILED", "Failed to apply payment event", err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

// AdminList handles GET /admin/bookings
// @Summary List bookings with optional filters
// @Tags Admin Bookings
// @Produce json
// @Security AdminCookie
// @Param status query string false "Booking status"
// @Param roomId query string false "Room id"
// @Param startDate query string false "Overlap window start (YYYY-MM-DD)"
// @Param endDate query string false "Overlap window end (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=[]BookingResponse}
// @Failure 400,401,500 {object} response.Response
// @Router /admin/bookings [get]
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := AdminListFilter{Status: q.Get("status")}

	if raw := q.Get("roomId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid room id")
			return
		}
		filter.RoomID = id
	}
	if raw := q.Get("startDate"); raw != "" {
		d, err := stay.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "Invalid start date")
			return
		}
		filter.StartDate = d
	}
	if raw := q.Get("endDate"); raw != "" {
		d, err := stay.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "Invalid end date")
			return
		}
		filter.EndDate = d
	}

	bookings, err := h.repo.AdminList(r.Context(), filter)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_LIST_FAILED", "Failed to fetch bookings", err)
		return
	}

	items := make([]*BookingResponse, len(bookings))
	stats := AdminStats{Total: len(bookings)}
	for i := range bookings {
		items[i] = bookings[i].ToResponse()
		switch bookings[i].Status {
		case StatusConfirmed:
			stats.Confirmed++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
		if bookings[i].PaymentStatus == PaymentPaid {
			stats.TotalRevenue += bookings[i].TotalPrice
		}
	}

	response.OK(w, &AdminListResponse{Bookings: items, Stats: stats})
}

// AdminGet handles GET /admin/bookings/{id}
// @Summary Get a booking
// @Tags Admin Bookings
// @Produce json
// @Security AdminCookie
// @Param id path string true "Booking id"
// @Success 200 {object} response.Response{data=BookingResponse}
// @Failure 400,401,404,500 {object} response.Response
// @Router /admin/bookings/{id} [get]
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking id")
		return
	}

	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_FETCH_FAILED", "Failed to fetch booking", err)
		return
	}
	if b == nil {
		response.NotFound(w, "Booking not found")
		return
	}
	response.OK(w, b.ToResponse())
}

// AdminUpdate handles PATCH /admin/bookings/{id}
// @Summary Edit a booking's statuses or notes
// @Tags Admin Bookings
// @Accept json
// @Produce json
// @Security AdminCookie
// @Param id path string true "Booking id"
// @Param request body AdminUpdateRequest true "Fields to update"
// @Success 200 {object} response.Response{data=BookingResponse}
// @Failure 400,401,404,409,500 {object} response.Response
// @Router /admin/bookings/{id} [patch]
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking id")
		return
	}

	var req AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.repo.AdminUpdate(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrDatesUnavailable):
			response.Conflict(w, "Selected dates are no longer available")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Failed to update booking", err)
		}
		return
	}

	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil || b == nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_FETCH_FAILED", "Failed to fetch booking", err)
		return
	}
	response.OK(w, b.ToResponse())
}

// AdminListBlocks handles GET /admin/blocked-dates
// @Summary List blocked date ranges
// @Tags Admin Blocked Dates
// @Produce json
// @Security AdminCookie
// @Param roomId query string false "Room id"
// @Success 200 {object} response.Response{data=[]BlockedDateResponse}
// @Failure 400,401,500 {object} response.Response
// @Router /admin/blocked-dates [get]
func (h *Handler) AdminListBlocks(w http.ResponseWriter, r *http.Request) {
	var roomID uuid.UUID
	if raw := r.URL.Query().Get("roomId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid room id")
			return
		}
		roomID = id
	}

	blocks, err := h.repo.ListBlocks(r.Context(), roomID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BLOCK_LIST_FAILED", "Failed to fetch blocked dates", err)
		return
	}

	items := make([]*BlockedDateResponse, len(blocks))
	for i := range blocks {
		items[i] = blocks[i].ToResponse()
	}
	response.OK(w, items)
}

// AdminCreateBlock handles POST /admin/blocked-dates
// @Summary Block a date range for a room
// @Tags Admin Blocked Dates
// @Accept json
// @Produce json
// @Security AdminCookie
// @Param request body CreateBlockRequest true "Range to block"
// @Success 201 {object} response.Response{data=BlockedDateResponse}
// @Failure 400,401,500 {object} response.Response
// @Router /admin/blocked-dates [post]
func (h *Handler) AdminCreateBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		response.BadRequest(w, "Invalid room id")
		return
	}
	start, err := stay.ParseDate(req.StartDate)
	if err != nil {
		response.BadRequest(w, "Invalid start date")
		return
	}
	end, err := stay.ParseDate(req.EndDate)
	if err != nil {
		response.BadRequest(w, "Invalid end date")
		return
	}
	if end.Before(start) {
		response.BadRequest(w, "end_date must not be before start_date")
		return
	}

	block := &BlockedDate{
		ID:        uuid.New(),
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Reason:    nullString(req.Reason),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.CreateBlock(r.Context(), block); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BLOCK_CREATE_FAILED", "Failed to block dates", err)
		return
	}

	response.Created(w, block.ToResponse())
}

// AdminDeleteBlock handles DELETE /admin/blocked-dates/{id}
// @Summary Remove a blocked date range
// @Tags Admin Blocked Dates
// @Produce json
// @Security AdminCookie
// @Param id path string true "Block id"
// @Success 204 {string} string "No Content"
// @Failure 400,401,404,500 {object} response.Response
// @Router /admin/blocked-dates/{id} [delete]
func (h *Handler) AdminDeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid block id")
		return
	}

	if err := h.repo.DeleteBlock(r.Context(), id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w, "Blocked date range not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BLOCK_DELETE_FAILED", "Failed to remove blocked dates", err)
		return
	}
	response.NoContent(w)
}

// Routes returns public booking routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// AdminRoutes returns admin booking routes
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminList)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.AdminUpdate)
	return r
}

// BlockRoutes returns admin blocked-date routes
func (h *Handler) BlockRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.AdminListBlocks)
	r.Post("/", h.AdminCreateBlock)
	r.Delete("/{id}", h.AdminDeleteBlock)
	return r
}
