package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "authenticated_user"

// AuthMiddleware resolves the Bearer token of each request to a user account
// and stores it on the request context.
type AuthMiddleware struct {
	logger *logger.Logger
	auth   *service.AuthService
}

func NewAuthMiddleware(logger *logger.Logger, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		logger: logger.WithComponent("auth_middleware"),
		auth:   auth,
	}
}

// RequireUser rejects requests without a valid token for an active account.
func (m *AuthMiddleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuario, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, usuario)))
	}
}

// RequireAdmin rejects requests whose account is not an administrator.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuario, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		if !usuario.Admin {
			m.logger.Warn("Blocked non-admin request", "user_id", usuario.ID, "path", r.URL.Path)
			writeErrorResponse(m.logger, w, http.StatusForbidden, models.ErrPermissionDenied.Error())
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, usuario)))
	}
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*models.Usuario, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		writeErrorResponse(m.logger, w, http.StatusUnauthorized, "token de acesso nao fornecido")
		return nil, false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	usuario, err := m.auth.Authenticate(token)
	if err != nil {
		m.logger.Warn("Rejected request with invalid token", "error", err, "path", r.URL.Path)
		writeErrorResponse(m.logger, w, errorStatus(err), err.Error())
		return nil, false
	}

	return usuario, true
}

// userFromContext returns the authenticated user placed by the middleware.
func userFromContext(ctx context.Context) *models.Usuario {
	usuario, _ := ctx.Value(userContextKey).(*models.Usuario)
	return usuario
}
