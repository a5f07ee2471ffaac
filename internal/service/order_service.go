package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
	"github.com/fabiofilipe/pizzaria-api/pkg/metrics"
)

// ItemPedidoRequest is one requested order line before pricing.
type ItemPedidoRequest struct {
	ProdutoVariacaoID       int64   `json:"produto_variacao_id"`
	Quantidade              int     `json:"quantidade"`
	IngredientesAdicionados []int64 `json:"ingredientes_adicionados,omitempty"`
	IngredientesRemovidos   []int64 `json:"ingredientes_removidos,omitempty"`
	Observacoes             string  `json:"observacoes,omitempty"`
}

// CreateOrderRequest is the payload for placing an order or previewing its
// price.
type CreateOrderRequest struct {
	Itens             []ItemPedidoRequest `json:"itens"`
	EnderecoEntregaID *int64              `json:"endereco_entrega_id,omitempty"`
}

// PricePreviewItem mirrors one priced line of a preview response.
type PricePreviewItem struct {
	ProdutoID               int64                          `json:"produto_id"`
	ProdutoNome             string                         `json:"produto_nome"`
	Tamanho                 models.Tamanho                 `json:"tamanho"`
	Quantidade              int                            `json:"quantidade"`
	PrecoBase               float64                        `json:"preco_base"`
	PrecoIngredientes       float64                        `json:"preco_ingredientes"`
	PrecoTotalItem          float64                        `json:"preco_total_item"`
	IngredientesAdicionados []models.IngredienteAdicionado `json:"ingredientes_adicionados"`
	IngredientesRemovidos   []models.IngredienteRemovido   `json:"ingredientes_removidos"`
}

// PricePreview is the result of pricing a cart without persisting anything.
type PricePreview struct {
	Itens           []PricePreviewItem `json:"itens"`
	PrecoTotal      float64            `json:"preco_total"`
	QuantidadeItens int                `json:"quantidade_itens"`
}

type OrderService struct {
	logger  *logger.Logger
	orders  repositories.OrderRepositoryInterface
	users   repositories.UserRepositoryInterface
	pricing *PricingEngine
	metrics *metrics.ServerMetrics
}

func NewOrderService(logger *logger.Logger, orders repositories.OrderRepositoryInterface,
	users repositories.UserRepositoryInterface, pricing *PricingEngine,
	metrics *metrics.ServerMetrics) *OrderService {
	return &OrderService{
		logger:  logger.WithComponent("order_service"),
		orders:  orders,
		users:   users,
		pricing: pricing,
		metrics: metrics,
	}
}

func validateOrderRequest(req *CreateOrderRequest) error {
	for i, item := range req.Itens {
		if item.ProdutoVariacaoID <= 0 {
			return fmt.Errorf("%w: item %d sem variacao de produto", models.ErrValidation, i+1)
		}
		if item.Quantidade < 1 {
			return fmt.Errorf("%w: item %d com quantidade invalida", models.ErrValidation, i+1)
		}
	}
	return nil
}

// priceItems runs the pricing engine over every requested line. Order
// creation and price preview share this loop so a preview always matches
// what an identical order would cost.
func (s *OrderService) priceItems(itens []ItemPedidoRequest) ([]LineBreakdown, float64, error) {
	breakdowns := make([]LineBreakdown, 0, len(itens))
	total := decimal.Zero

	for _, item := range itens {
		breakdown, err := s.pricing.PriceLine(item.ProdutoVariacaoID, item.Quantidade,
			item.IngredientesAdicionados, item.IngredientesRemovidos)
		if err != nil {
			return nil, 0, err
		}
		breakdowns = append(breakdowns, *breakdown)
		total = total.Add(decimal.NewFromFloat(breakdown.PrecoTotal))
	}

	totalFloat, _ := total.Round(2).Float64()
	return breakdowns, totalFloat, nil
}

// CreateOrder prices every requested line and persists the order in a single
// transaction. Any pricing failure aborts the whole order; nothing is
// written.
func (s *OrderService) CreateOrder(actor *models.Usuario, req *CreateOrderRequest) (*models.Pedido, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	if req.EnderecoEntregaID != nil {
		endereco, err := s.users.GetAddress(*req.EnderecoEntregaID)
		if err != nil {
			return nil, err
		}
		if endereco.UsuarioID != actor.ID {
			return nil, fmt.Errorf("%w: endereco pertence a outro usuario", models.ErrPermissionDenied)
		}
	}

	breakdowns, total, err := s.priceItems(req.Itens)
	if err != nil {
		s.logger.Warn("Order rejected during pricing", "error", err, "user_id", actor.ID)
		return nil, err
	}

	pedido := &models.Pedido{
		UsuarioID:         actor.ID,
		Status:            models.StatusPendente,
		PrecoTotal:        total,
		EnderecoEntregaID: req.EnderecoEntregaID,
		Itens:             make([]models.ItemPedido, 0, len(breakdowns)),
	}

	for i, b := range breakdowns {
		pedido.Itens = append(pedido.Itens, models.ItemPedido{
			ProdutoVariacaoID:       b.ProdutoVariacaoID,
			Quantidade:              b.Quantidade,
			ProdutoNome:             b.ProdutoNome,
			Tamanho:                 b.Tamanho,
			PrecoBase:               b.PrecoBase,
			IngredientesAdicionados: b.Adicionados,
			IngredientesRemovidos:   b.Removidos,
			PrecoIngredientes:       b.PrecoIngredientes,
			PrecoTotal:              b.PrecoTotal,
			Observacoes:             req.Itens[i].Observacoes,
		})
	}

	if err := s.orders.Create(pedido); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveOrder(pedido.PrecoTotal)
	}

	s.logger.Info("Created order", "order_id", pedido.ID, "user_id", actor.ID,
		"total", pedido.PrecoTotal, "items", len(pedido.Itens))
	return pedido, nil
}

// CalculatePrice prices a cart without creating an order. It runs the same
// pricing loop as CreateOrder, so the preview total is exactly what the
// order would cost against the current catalog.
func (s *OrderService) CalculatePrice(req *CreateOrderRequest) (*PricePreview, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	breakdowns, total, err := s.priceItems(req.Itens)
	if err != nil {
		return nil, err
	}

	preview := &PricePreview{
		Itens:           make([]PricePreviewItem, 0, len(breakdowns)),
		PrecoTotal:      total,
		QuantidadeItens: len(breakdowns),
	}
	for _, b := range breakdowns {
		preview.Itens = append(preview.Itens, PricePreviewItem{
			ProdutoID:               b.ProdutoID,
			ProdutoNome:             b.ProdutoNome,
			Tamanho:                 b.Tamanho,
			Quantidade:              b.Quantidade,
			PrecoBase:               b.PrecoBase,
			PrecoIngredientes:       b.PrecoIngredientes,
			PrecoTotalItem:          b.PrecoTotal,
			IngredientesAdicionados: b.Adicionados,
			IngredientesRemovidos:   b.Removidos,
		})
	}

	return preview, nil
}

// GetOrder returns a single order. Customers may only see their own orders;
// admins may see any.
func (s *OrderService) GetOrder(actor *models.Usuario, id int64) (*models.Pedido, error) {
	pedido, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !actor.Admin && pedido.UsuarioID != actor.ID {
		s.logger.Warn("Blocked access to another user's order", "order_id", id, "user_id", actor.ID)
		return nil, fmt.Errorf("%w: pedido pertence a outro usuario", models.ErrPermissionDenied)
	}

	if pedido.EnderecoEntregaID != nil {
		endereco, err := s.users.GetAddress(*pedido.EnderecoEntregaID)
		if err != nil {
			s.logger.Warn("Order references missing delivery address",
				"order_id", id, "address_id", *pedido.EnderecoEntregaID)
		} else {
			pedido.EnderecoEntrega = endereco
		}
	}

	return pedido, nil
}

// ListAllOrders returns every order on the platform. Admin only.
func (s *OrderService) ListAllOrders(actor *models.Usuario) ([]*models.Pedido, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem listar todos os pedidos", models.ErrPermissionDenied)
	}
	return s.orders.GetAll()
}

// ListUserOrders returns the actor's own orders, optionally filtered by
// status. The filter accepts any casing; an unknown label is an error, not
// an empty list.
func (s *OrderService) ListUserOrders(actor *models.Usuario, statusFilter string) ([]*models.Pedido, error) {
	var status models.OrderStatus
	if statusFilter != "" {
		parsed, err := models.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	return s.orders.GetByUser(actor.ID, status)
}

// UpdateStatus moves an order to a new lifecycle status. Admin only. Any
// transition between known statuses is accepted.
func (s *OrderService) UpdateStatus(actor *models.Usuario, id int64, statusLabel string) (*models.Pedido, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem alterar o status", models.ErrPermissionDenied)
	}

	status, err := models.ParseOrderStatus(statusLabel)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	s.logger.Info("Updated order status", "order_id", id, "status", status, "admin_id", actor.ID)
	return s.orders.GetByID(id)
}

// CancelOrder removes an order entirely. The owner or an admin may cancel;
// the order and its items are deleted rather than moved to CANCELADO.
func (s *OrderService) CancelOrder(actor *models.Usuario, id int64) error {
	pedido, err := s.orders.GetByID(id)
	if err != nil {
		return err
	}

	if !actor.Admin && pedido.UsuarioID != actor.ID {
		s.logger.Warn("Blocked cancellation of another user's order", "order_id", id, "user_id", actor.ID)
		return fmt.Errorf("%w: pedido pertence a outro usuario", models.ErrPermissionDenied)
	}

	if err := s.orders.Delete(id); err != nil {
		return err
	}

	s.logger.Info("Cancelled order", "order_id", id, "user_id", actor.ID)
	return nil
}

// Statistics summarizes the actor's order history. The per-status map always
// carries all known labels, so a user with no delivered orders still sees
// ENTREGUE at zero.
func (s *OrderService) Statistics(actor *models.Usuario) (*models.EstatisticasPedidos, error) {
	pedidos, err := s.orders.GetByUser(actor.ID, "")
	if err != nil {
		return nil, err
	}

	stats := &models.EstatisticasPedidos{
		TotalPedidos:     len(pedidos),
		PedidosPorStatus: make(map[string]int, 5),
	}
	for _, st := range models.OrderStatuses() {
		stats.PedidosPorStatus[string(st)] = 0
	}

	total := decimal.Zero
	for _, pedido := range pedidos {
		total = total.Add(decimal.NewFromFloat(pedido.PrecoTotal))
		stats.PedidosPorStatus[string(pedido.Status)]++
	}

	stats.TotalGasto, _ = total.Round(2).Float64()
	if len(pedidos) > 0 {
		media := total.Div(decimal.NewFromInt(int64(len(pedidos)))).Round(2)
		stats.ValorMedio, _ = media.Float64()
	}

	return stats, nil
}
