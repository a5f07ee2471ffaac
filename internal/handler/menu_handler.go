package handler

import (
	"net/http"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type MenuHandler struct {
	menuService *service.MenuService
	logger      *logger.Logger
}

func NewMenuHandler(menuService *service.MenuService, logger *logger.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		logger:      logger.WithComponent("menu_handler"),
	}
}

// GetMenu handles GET /cardapio. Public, no authentication.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	reqCtx := &logger.RequestContext{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		StartTime:  time.Now(),
	}
	h.logger.LogRequest(reqCtx)

	cardapio, err := h.menuService.GetMenu()
	if err != nil {
		writeServiceError(h.logger, w, reqCtx, err)
		return
	}

	writeJSONResponse(h.logger, w, http.StatusOK, cardapio)
	reqCtx.StatusCode = http.StatusOK
	h.logger.LogResponse(reqCtx)
}
