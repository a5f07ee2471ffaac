package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order. Labels are stored
// upper-case; filter input is matched case-insensitively.
type OrderStatus string

const (
	StatusPendente  OrderStatus = "PENDENTE"
	StatusEmPreparo OrderStatus = "EM_PREPARO"
	StatusPronto    OrderStatus = "PRONTO"
	StatusEntregue  OrderStatus = "ENTREGUE"
	StatusCancelado OrderStatus = "CANCELADO"
)

// OrderStatuses lists the five recognized status labels in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPendente, StatusEmPreparo, StatusPronto, StatusEntregue, StatusCancelado}
}

// ParseOrderStatus validates a status label, accepting any casing.
func ParseOrderStatus(s string) (OrderStatus, error) {
	upper := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range OrderStatuses() {
		if st == upper {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: status '%s' invalido, use um dos seguintes: %s",
		ErrInvalidStatus, s, joinStatuses())
}

func joinStatuses() string {
	labels := make([]string, 0, 5)
	for _, st := range OrderStatuses() {
		labels = append(labels, string(st))
	}
	return strings.Join(labels, ", ")
}

// Pedido is an order aggregate. PrecoTotal is derived from the item totals
// and never set by clients.
type Pedido struct {
	ID                int64        `json:"id" db:"id"`
	UsuarioID         int64        `json:"usuario_id" db:"usuario_id"`
	Status            OrderStatus  `json:"status" db:"status"`
	PrecoTotal        float64      `json:"preco_total" db:"preco_total"`
	EnderecoEntregaID *int64       `json:"endereco_entrega_id,omitempty" db:"endereco_entrega_id"`
	EnderecoEntrega   *Endereco    `json:"endereco_entrega,omitempty"`
	Itens             []ItemPedido `json:"itens"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// ItemPedido is one order line. Everything beyond the variation reference is
// an immutable snapshot taken at order creation: later catalog edits must not
// change what the customer sees on a historical order.
type ItemPedido struct {
	ID                      int64                   `json:"id" db:"id"`
	PedidoID                int64                   `json:"-" db:"pedido_id"`
	ProdutoVariacaoID       int64                   `json:"produto_variacao_id" db:"produto_variacao_id"`
	Quantidade              int                     `json:"quantidade" db:"quantidade"`
	ProdutoNome             string                  `json:"produto_nome" db:"produto_nome"`
	Tamanho                 Tamanho                 `json:"tamanho" db:"tamanho"`
	PrecoBase               float64                 `json:"preco_base" db:"preco_base"`
	IngredientesAdicionados []IngredienteAdicionado `json:"ingredientes_adicionados"`
	IngredientesRemovidos   []IngredienteRemovido   `json:"ingredientes_removidos"`
	PrecoIngredientes       float64                 `json:"preco_ingredientes" db:"preco_ingredientes"`
	PrecoTotal              float64                 `json:"preco_total" db:"preco_total"`
	Observacoes             string                  `json:"observacoes,omitempty" db:"observacoes"`
}

// IngredienteAdicionado is the snapshot of an extra topping on an order line,
// priced at the moment the order was placed.
type IngredienteAdicionado struct {
	ID    int64   `json:"id"`
	Nome  string  `json:"nome"`
	Preco float64 `json:"preco"`
}

// IngredienteRemovido is the snapshot of a standard topping left off an
// order line. Removals never change the price.
type IngredienteRemovido struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// EstatisticasPedidos summarizes a user's order history. PedidosPorStatus is
// always seeded with every known label, including the ones at zero.
type EstatisticasPedidos struct {
	TotalPedidos     int            `json:"total_pedidos"`
	TotalGasto       float64        `json:"total_gasto"`
	ValorMedio       float64        `json:"valor_medio"`
	PedidosPorStatus map[string]int `json:"pedidos_por_status"`
}
