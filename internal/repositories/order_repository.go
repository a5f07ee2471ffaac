package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type OrderRepositoryInterface interface {
	Create(pedido *models.Pedido) error
	GetByID(id int64) (*models.Pedido, error)
	GetAll() ([]*models.Pedido, error)
	GetByUser(usuarioID int64, status models.OrderStatus) ([]*models.Pedido, error)
	UpdateStatus(id int64, status models.OrderStatus) error
	Delete(id int64) error
}

type OrderRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewOrderRepository(logger *logger.Logger, db *database.DB) *OrderRepository {
	return &OrderRepository{
		logger: logger.WithComponent("order_repository"),
		db:     db,
	}
}

// orderSelect aggregates the immutable line snapshots of each order as a
// JSON array, including the ingredient snapshot columns stored as jsonb.
const orderSelect = `
    SELECT pd.id, pd.usuario_id, pd.status, pd.preco_total, pd.endereco_entrega_id,
           pd.created_at, pd.updated_at,
           COALESCE((
               SELECT json_agg(json_build_object(
                   'id', it.id,
                   'produto_variacao_id', it.produto_variacao_id,
                   'quantidade', it.quantidade,
                   'produto_nome', it.produto_nome,
                   'tamanho', it.tamanho,
                   'preco_base', it.preco_base,
                   'ingredientes_adicionados', it.ingredientes_adicionados,
                   'ingredientes_removidos', it.ingredientes_removidos,
                   'preco_ingredientes', it.preco_ingredientes,
                   'preco_total', it.preco_total,
                   'observacoes', COALESCE(it.observacoes, '')
               ) ORDER BY it.id)
               FROM itens_pedidos it WHERE it.pedido_id = pd.id
           ), '[]'::json) AS itens
    FROM pedidos pd
`

func (r *OrderRepository) scanOrder(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Pedido, error) {
	pedido := &models.Pedido{}
	var enderecoID sql.NullInt64
	var itensJSON string

	err := scanner.Scan(&pedido.ID, &pedido.UsuarioID, &pedido.Status, &pedido.PrecoTotal,
		&enderecoID, &pedido.CreatedAt, &pedido.UpdatedAt, &itensJSON)
	if err != nil {
		return nil, err
	}

	if enderecoID.Valid {
		pedido.EnderecoEntregaID = &enderecoID.Int64
	}

	if err := json.Unmarshal([]byte(itensJSON), &pedido.Itens); err != nil {
		return nil, fmt.Errorf("invalid JSON format for order items: %v", err)
	}
	for i := range pedido.Itens {
		pedido.Itens[i].PedidoID = pedido.ID
	}

	return pedido, nil
}

func (r *OrderRepository) queryOrders(query string, args ...interface{}) ([]*models.Pedido, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", "error", err)
		return nil, fmt.Errorf("failed to query orders: %v", err)
	}
	defer rows.Close()

	pedidos := []*models.Pedido{}
	for rows.Next() {
		pedido, err := r.scanOrder(rows)
		if err != nil {
			r.logger.Error("Failed to scan order", "error", err)
			return nil, fmt.Errorf("failed to scan order: %v", err)
		}
		pedidos = append(pedidos, pedido)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating order rows", "error", err)
		return nil, fmt.Errorf("error iterating order rows: %v", err)
	}

	return pedidos, nil
}

// Create persists an order and all of its line snapshots in one transaction.
// Either everything commits or nothing does; a partially written order never
// becomes visible.
func (r *OrderRepository) Create(pedido *models.Pedido) error {
	r.logger.Debug("Persisting new order", "user_id", pedido.UsuarioID, "items", len(pedido.Itens))

	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		orderQuery := `
            INSERT INTO pedidos (usuario_id, status, preco_total, endereco_entrega_id)
            VALUES ($1, $2, $3, $4)
            RETURNING id, created_at, updated_at
        `

		var enderecoID interface{}
		if pedido.EnderecoEntregaID != nil {
			enderecoID = *pedido.EnderecoEntregaID
		}

		err := tx.QueryRow(orderQuery, pedido.UsuarioID, pedido.Status, pedido.PrecoTotal, enderecoID).
			Scan(&pedido.ID, &pedido.CreatedAt, &pedido.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: id %d", models.ErrUserNotFound, pedido.UsuarioID)
			}
			return fmt.Errorf("failed to insert order: %v", err)
		}

		itemQuery := `
            INSERT INTO itens_pedidos (pedido_id, produto_variacao_id, quantidade, produto_nome,
                tamanho, preco_base, ingredientes_adicionados, ingredientes_removidos,
                preco_ingredientes, preco_total, observacoes)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
            RETURNING id
        `

		for i := range pedido.Itens {
			item := &pedido.Itens[i]

			adicionados, err := json.Marshal(item.IngredientesAdicionados)
			if err != nil {
				return fmt.Errorf("failed to marshal added ingredients: %v", err)
			}
			removidos, err := json.Marshal(item.IngredientesRemovidos)
			if err != nil {
				return fmt.Errorf("failed to marshal removed ingredients: %v", err)
			}

			err = tx.QueryRow(itemQuery, pedido.ID, item.ProdutoVariacaoID, item.Quantidade,
				item.ProdutoNome, item.Tamanho, item.PrecoBase, adicionados, removidos,
				item.PrecoIngredientes, item.PrecoTotal, item.Observacoes).
				Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %v", err)
			}
			item.PedidoID = pedido.ID
		}

		return nil
	})
	if err != nil {
		r.logger.Error("Failed to persist order", "error", err, "user_id", pedido.UsuarioID)
		return err
	}

	r.logger.Info("Persisted new order", "order_id", pedido.ID, "user_id", pedido.UsuarioID,
		"total", pedido.PrecoTotal, "items", len(pedido.Itens))
	return nil
}

// GetByID retrieves a single order with its line snapshots
func (r *OrderRepository) GetByID(id int64) (*models.Pedido, error) {
	row := r.db.QueryRow(orderSelect+` WHERE pd.id = $1`, id)

	pedido, err := r.scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
		}
		r.logger.Error("Failed to retrieve order", "error", err, "order_id", id)
		return nil, fmt.Errorf("failed to retrieve order: %v", err)
	}

	return pedido, nil
}

// GetAll retrieves every order, newest first
func (r *OrderRepository) GetAll() ([]*models.Pedido, error) {
	return r.queryOrders(orderSelect + ` ORDER BY pd.created_at DESC`)
}

// GetByUser retrieves a user's orders, optionally filtered by status.
// An empty status means no filter.
func (r *OrderRepository) GetByUser(usuarioID int64, status models.OrderStatus) ([]*models.Pedido, error) {
	if status == "" {
		return r.queryOrders(orderSelect+` WHERE pd.usuario_id = $1 ORDER BY pd.created_at DESC`, usuarioID)
	}
	return r.queryOrders(orderSelect+` WHERE pd.usuario_id = $1 AND pd.status = $2 ORDER BY pd.created_at DESC`,
		usuarioID, status)
}

// UpdateStatus sets the status of an order
func (r *OrderRepository) UpdateStatus(id int64, status models.OrderStatus) error {
	result, err := r.db.Exec(`UPDATE pedidos SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("Failed to update order status", "error", err, "order_id", id)
		return fmt.Errorf("failed to update order status: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update status of non-existent order", "order_id", id)
		return fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
	}

	r.logger.Info("Updated order status", "order_id", id, "status", status)
	return nil
}

// Delete removes an order and its line snapshots
func (r *OrderRepository) Delete(id int64) error {
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM itens_pedidos WHERE pedido_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete order items: %v", err)
		}

		result, err := tx.Exec(`DELETE FROM pedidos WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete order: %v", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %v", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("Failed to delete order", "error", err, "order_id", id)
		return err
	}

	r.logger.Info("Deleted order", "order_id", id)
	return nil
}
