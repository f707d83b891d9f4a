package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/jwt"
	"github.com/villamosta/villa-api/internal/pkg/response"
)

// SessionCookie is the cookie carrying the admin session token
const SessionCookie = "admin_token"

// AuthMiddleware validates the admin session and re-checks the admin row, so
// a disabled account loses access before its token expires
func AuthMiddleware(jwtSvc *jwt.Service, repo *Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := jwtSvc.ValidateSessionToken(token)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			adm, err := repo.GetByID(r.Context(), claims.AdminID)
			if err != nil {
				response.InternalError(w)
				return
			}
			if adm == nil || !adm.IsActive {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), "admin_id", claims.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext extracts the authenticated admin id
func AdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value("admin_id").(uuid.UUID)
	return id, ok
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
