package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.WithComponent("auth_handler"),
	}
}

func (h *AuthHandler) requestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

// Register handles POST /auth/criar_conta
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var req service.RegisterRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for register", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	usuario, err := h.authService.Register(&req)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusCreated, usuario)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var req service.LoginRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for login", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, tokens)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// Refresh handles POST /auth/refresh, reading the refresh token from the
// Authorization header.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		writeErrorResponse(h.logger, w, http.StatusUnauthorized, "token de acesso nao fornecido")
		reqCtx.StatusCode = http.StatusUnauthorized
		h.logger.LogResponse(reqCtx)
		return
	}

	tokens, err := h.authService.Refresh(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, tokens)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
