package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
	logger            *logger.Logger
}

func NewIngredientHandler(ingredientService *service.IngredientService, logger *logger.Logger) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		logger:            logger.WithComponent("ingredient_handler"),
	}
}

func (h *IngredientHandler) requestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

func (h *IngredientHandler) pathID(w http.ResponseWriter, r *http.Request, reqCtx *logger.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "id de ingrediente invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return 0, false
	}
	return id, true
}

// ListIngredients handles GET /ingredientes
func (h *IngredientHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	ingredientes, err := h.ingredientService.ListIngredients()
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, ingredientes)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// GetIngredient handles GET /ingredientes/{id}
func (h *IngredientHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	ingrediente, err := h.ingredientService.GetIngredient(id)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, ingrediente)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// CreateIngredient handles POST /ingredientes
func (h *IngredientHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var ingrediente models.Ingrediente
	if err := parseRequestBody(r, &ingrediente); err != nil {
		h.logger.Warn("Invalid request body for create ingredient", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	if err := h.ingredientService.CreateIngredient(userFromContext(r.Context()), &ingrediente); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusCreated, ingrediente)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// UpdateIngredient handles PUT /ingredientes/{id}
func (h *IngredientHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	var ingrediente models.Ingrediente
	if err := parseRequestBody(r, &ingrediente); err != nil {
		h.logger.Warn("Invalid request body for update ingredient", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	updated, err := h.ingredientService.UpdateIngredient(userFromContext(r.Context()), id, &ingrediente)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, updated)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// DeleteIngredient handles DELETE /ingredientes/{id}
func (h *IngredientHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(userFromContext(r.Context()), id); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, map[string]interface{}{
		"ingrediente_id": id,
		"message":        "ingrediente removido com sucesso",
	})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// SetAvailability handles PATCH /ingredientes/{id}/disponibilidade
func (h *IngredientHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	var req struct {
		Disponivel bool `json:"disponivel"`
	}
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for ingredient availability", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	ingrediente, err := h.ingredientService.SetAvailability(userFromContext(r.Context()), id, req.Disponivel)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, ingrediente)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
