package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *logger.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.WithComponent("order_handler"),
	}
}

func (h *OrderHandler) requestContext(r *http.Request) *logger.RequestContext {
	return &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
}

func (h *OrderHandler) pathID(w http.ResponseWriter, r *http.Request, reqCtx *logger.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("Invalid order ID in path", "raw", r.PathValue("id"))
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "id de pedido invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return 0, false
	}
	return id, true
}

// CreateOrder handles POST /pedidos/
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var req service.CreateOrderRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for create order", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	pedido, err := h.orderService.CreateOrder(userFromContext(r.Context()), &req)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusCreated, pedido)
	reqCtx.StatusCode = http.StatusCreated
	h.logger.LogResponse(reqCtx)
}

// CalculatePrice handles POST /pedidos/calcular-preco
func (h *OrderHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	var req service.CreateOrderRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for price preview", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	preview, err := h.orderService.CalculatePrice(&req)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, preview)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// ListAllOrders handles GET /pedidos/
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	pedidos, err := h.orderService.ListAllOrders(userFromContext(r.Context()))
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, pedidos)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// ListMyOrders handles GET /pedidos/meus?status=
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	status := r.URL.Query().Get("status")
	pedidos, err := h.orderService.ListUserOrders(userFromContext(r.Context()), status)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, pedidos)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// Statistics handles GET /pedidos/meus/estatisticas
func (h *OrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	stats, err := h.orderService.Statistics(userFromContext(r.Context()))
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, stats)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// GetOrder handles GET /pedidos/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	pedido, err := h.orderService.GetOrder(userFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, pedido)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// UpdateStatus handles PATCH /pedidos/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for status update", "error", err)
		writeErrorResponse(h.logger, w, http.StatusBadRequest, "corpo da requisicao invalido")
		reqCtx.StatusCode = http.StatusBadRequest
		h.logger.LogResponse(reqCtx)
		return
	}

	pedido, err := h.orderService.UpdateStatus(userFromContext(r.Context()), id, req.Status)
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, pedido)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}

// CancelOrder handles DELETE /pedidos/{id}
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	reqCtx := h.requestContext(r)
	h.logger.LogRequest(reqCtx)

	id, ok := h.pathID(w, r, reqCtx)
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(userFromContext(r.Context()), id); err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, map[string]interface{}{
		"pedido_id": id,
		"message":   "pedido cancelado com sucesso",
	})
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
