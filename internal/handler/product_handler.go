package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *logger.Logger
}

func NewProductHandler(productService *service.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger.WithComponent("product_handler"),
	}
}

func (h *ProductHandler) requestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

func (h *ProductHandler) pathID(w http.ResponseWriter, r *http.Request, reqCtx *logger.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "id de produto invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return 0, false
	}
	return id, true
}

// ListProducts handles GET /produtos?categoria_id=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var categoriaID int64
	if raw := r.URL.Query().Get("categoria_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeErrorResponse(h.logger, w, http.StatusBadRequest, "categoria_id invalido")
			reqCtx.StatusCode = http.StatusBadRequest
			h.logger.LogResponse(reqCtx)
			return
		}
		categoriaID = parsed
	}

	produtos, err := h.productService.ListProducts(categoriaID)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, produtos)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// SearchProducts handles GET /produtos/buscar?q=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	produtos, err := h.productService.SearchProducts(r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, produtos)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// GetProduct handles GET /produtos/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	produto, err := h.productService.GetProduct(id)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, produto)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// CreateProduct handles POST /produtos
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var produto models.Produto
	if err := parseRequestBody(r, &produto); err != nil {
		h.logger.Warn("Invalid request body for create product", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	if err := h.productService.CreateProduct(userFromContext(r.Context()), &produto); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusCreated, produto)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// UpdateProduct handles PUT /produtos/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	var produto models.Produto
	if err := parseRequestBody(r, &produto); err != nil {
		h.logger.Warn("Invalid request body for update product", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	updated, err := h.productService.UpdateProduct(userFromContext(r.Context()), id, &produto)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, updated)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// DeleteProduct handles DELETE /produtos/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(userFromContext(r.Context()), id); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, map[string]interface{}{
		"produto_id": id,
		"message":    "produto removido com sucesso",
	})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// SetAvailability handles PATCH /produtos/{id}/disponibilidade
func (h *ProductHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Warn("Invalid request body for product availability", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	produto, err := h.productService.SetAvailability(userFromContext(r.Context()), id, req.Disponivel)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, produto)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
