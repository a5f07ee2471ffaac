package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *logger.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.WithComponent("category_handler"),
	}
}

func (h *CategoryHandler) requestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

func (h *CategoryHandler) pathID(w http.ResponseWriter, r *http.Request, reqCtx *logger.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "id de categoria invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return 0, false
	}
	return id, true
}

// ListCategories handles GET /categorias
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	categorias, err := h.categoryService.ListCategories(userFromContext(r.Context()))
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, categorias)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// GetCategory handles GET /categorias/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	categoria, err := h.categoryService.GetCategory(id)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, categoria)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// CreateCategory handles POST /categorias
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var categoria models.Categoria
	if err := parseRequestBody(r, &categoria); err != nil {
		h.logger.Warn("Invalid request body for create category", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	if err := h.categoryService.CreateCategory(userFromContext(r.Context()), &categoria); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusCreated, categoria)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// UpdateCategory handles PUT /categorias/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	var categoria models.Categoria
	if err := parseRequestBody(r, &categoria); err != nil {
		h.logger.Warn("Invalid request body for update category", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	updated, err := h.categoryService.UpdateCategory(userFromContext(r.Context()), id, &categoria)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, updated)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// DeleteCategory handles DELETE /categorias/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(userFromContext(r.Context()), id); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, map[string]interface{}{
		"categoria_id": id,
		"message":      "categoria removida com sucesso",
	})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
