package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/villamosta/villa-api/internal/pkg/errorhandler"
	"github.com/villamosta/villa-api/internal/pkg/jwt"
	"github.com/villamosta/villa-api/internal/pkg/password"
	"github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/validator"
)

// Handler handles admin auth HTTP requests
type Handler struct {
	repo         *Repository
	jwtSvc       *jwt.Service
	secureCookie bool
}

// NewHandler creates a new admin handler. secureCookie should be true outside
// local development so the session cookie is HTTPS-only.
func NewHandler(repo *Repository, jwtSvc *jwt.Service, secureCookie bool) *Handler {
	return &Handler{repo: repo, jwtSvc: jwtSvc, secureCookie: secureCookie}
}

// Login handles POST /admin/auth/login
// @Summary Authenticate an administrator
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=AdminResponse}
// @Failure 400,401,500 {object} response.Response
// @Router /admin/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	adm, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in", err)
		return
	}
	if adm == nil || !adm.IsActive || !password.Verify(req.Password, adm.PasswordHash) {
		// Same answer for unknown email and wrong password
		response.Unauthorized(w, ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwtSvc.GenerateSessionToken(adm.ID, adm.Email)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in", err)
		return
	}

	if err := h.repo.TouchLastLogin(r.Context(), adm.ID); err != nil {
		log.Warn().Err(err).Str("admin_id", adm.ID.String()).Msg("Failed to record last login")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtSvc.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("admin_id", adm.ID.String()).Msg("Admin logged in")
	response.OK(w, adm.ToResponse())
}

// Logout handles POST /admin/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	response.OK(w, map[string]bool{"loggedOut": true})
}

// Me handles GET /admin/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := AdminIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	adm, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ADMIN_FETCH_FAILED", "Failed to fetch profile", err)
		return
	}
	if adm == nil {
		response.Unauthorized(w, "Invalid or expired session")
		return
	}
	response.OK(w, adm.ToResponse())
}

// Routes returns admin auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(authMiddleware).Get("/me", h.Me)
	return r
}
