package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type fakeOrderRepo struct {
	orders map[int64]*models.Pedido
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Pedido), nextID: 1}
}

func (r *fakeOrderRepo) Create(pedido *models.Pedido) error {
	pedido.ID = r.nextID
	r.nextID++
	pedido.CreatedAt = time.Now()
	pedido.UpdatedAt = pedido.CreatedAt
	for i := range pedido.Itens {
		pedido.Itens[i].ID = int64(i + 1)
		pedido.Itens[i].PedidoID = pedido.ID
	}
	stored := *pedido
	r.orders[pedido.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) GetByID(id int64) (*models.Pedido, error) {
	pedido, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
	}
	copied := *pedido
	return &copied, nil
}

func (r *fakeOrderRepo) GetAll() ([]*models.Pedido, error) {
	result := []*models.Pedido{}
	for _, pedido := range r.orders {
		result = append(result, pedido)
	}
	return result, nil
}

func (r *fakeOrderRepo) GetByUser(usuarioID int64, status models.OrderStatus) ([]*models.Pedido, error) {
	result := []*models.Pedido{}
	for _, pedido := range r.orders {
		if pedido.UsuarioID != usuarioID {
			continue
		}
		if status != "" && pedido.Status != status {
			continue
		}
		result = append(result, pedido)
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(id int64, status models.OrderStatus) error {
	pedido, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
	}
	pedido.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(id int64) error {
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrOrderNotFound, id)
	}
	delete(r.orders, id)
	return nil
}

type fakeUserRepo struct {
	users     map[int64]*models.Usuario
	addresses map[int64]*models.Endereco
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[int64]*models.Usuario),
		addresses: make(map[int64]*models.Endereco),
	}
}

func (r *fakeUserRepo) Create(usuario *models.Usuario) error {
	for _, existing := range r.users {
		if existing.Email == usuario.Email {
			return fmt.Errorf("%w: email %s ja esta cadastrado", models.ErrAlreadyExists, usuario.Email)
		}
	}
	usuario.ID = int64(len(r.users) + 1)
	r.users[usuario.ID] = usuario
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*models.Usuario, error) {
	usuario, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
	}
	return usuario, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.Usuario, error) {
	for _, usuario := range r.users {
		if usuario.Email == email {
			return usuario, nil
		}
	}
	return nil, fmt.Errorf("%w: email %s", models.ErrUserNotFound, email)
}

func (r *fakeUserRepo) GetAddress(id int64) (*models.Endereco, error) {
	endereco, ok := r.addresses[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrAddressNotFound, id)
	}
	return endereco, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeUserRepo) {
	orderRepo := newFakeOrderRepo()
	userRepo := newFakeUserRepo()
	engine := NewPricingEngine(pizzaCatalog())
	svc := NewOrderService(testLogger(), orderRepo, userRepo, engine, nil)
	return svc, orderRepo, userRepo
}

func customer(id int64) *models.Usuario {
	return &models.Usuario{ID: id, Nome: "Cliente", Email: fmt.Sprintf("c%d@teste.com", id), Ativo: true}
}

func admin() *models.Usuario {
	return &models.Usuario{ID: 99, Nome: "Admin", Email: "admin@teste.com", Ativo: true, Admin: true}
}

func TestCreateOrder_TotalIsSumOfLineTotals(t *testing.T) {
	svc, _, _ := newTestOrderService()

	pedido, err := svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens: []ItemPedidoRequest{
			{ProdutoVariacaoID: 1, Quantidade: 2, IngredientesAdicionados: []int64{100}},
			{ProdutoVariacaoID: 1, Quantidade: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendente, pedido.Status)
	require.Len(t, pedido.Itens, 2)
	assert.Equal(t, 78.00, pedido.Itens[0].PrecoTotal)
	assert.Equal(t, 35.00, pedido.Itens[1].PrecoTotal)
	assert.Equal(t, 113.00, pedido.PrecoTotal)
}

func TestCreateOrder_SnapshotCarriesCustomizations(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	pedido, err := svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens: []ItemPedidoRequest{
			{ProdutoVariacaoID: 1, Quantidade: 1,
				IngredientesAdicionados: []int64{101},
				IngredientesRemovidos:   []int64{201},
				Observacoes:             "sem cebola"},
		},
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(pedido.ID)
	require.NoError(t, err)
	require.Len(t, stored.Itens, 1)
	item := stored.Itens[0]
	assert.Equal(t, "Margherita", item.ProdutoNome)
	require.Len(t, item.IngredientesAdicionados, 1)
	assert.Equal(t, "Bacon", item.IngredientesAdicionados[0].Nome)
	require.Len(t, item.IngredientesRemovidos, 1)
	assert.Equal(t, "Manjericao", item.IngredientesRemovidos[0].Nome)
	assert.Equal(t, "sem cebola", item.Observacoes)
}

func TestCreateOrder_EmptyOrderHasZeroTotal(t *testing.T) {
	svc, _, _ := newTestOrderService()

	pedido, err := svc.CreateOrder(customer(1), &CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0.00, pedido.PrecoTotal)
	assert.Empty(t, pedido.Itens)
}

func TestCreateOrder_RejectsInvalidQuantity(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	_, err := svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 0}},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_FailingLineAbortsEverything(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	// First line is valid, second removes an obligatory ingredient.
	_, err := svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens: []ItemPedidoRequest{
			{ProdutoVariacaoID: 1, Quantidade: 1},
			{ProdutoVariacaoID: 1, Quantidade: 1, IngredientesRemovidos: []int64{200}},
		},
	})
	assert.ErrorIs(t, err, models.ErrObligatoryIngredient)
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_AddressMustBelongToActor(t *testing.T) {
	svc, _, userRepo := newTestOrderService()
	userRepo.addresses[7] = &models.Endereco{ID: 7, UsuarioID: 2}

	addr := int64(7)
	_, err := svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens:             []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
		EnderecoEntregaID: &addr,
	})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	missing := int64(999)
	_, err = svc.CreateOrder(customer(1), &CreateOrderRequest{
		Itens:             []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
		EnderecoEntregaID: &missing,
	})
	assert.ErrorIs(t, err, models.ErrAddressNotFound)
}

func TestCalculatePrice_MatchesCreateOrder(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	req := &CreateOrderRequest{
		Itens: []ItemPedidoRequest{
			{ProdutoVariacaoID: 1, Quantidade: 2, IngredientesAdicionados: []int64{100, 101}},
			{ProdutoVariacaoID: 1, Quantidade: 1, IngredientesRemovidos: []int64{201}},
		},
	}

	preview, err := svc.CalculatePrice(req)
	require.NoError(t, err)
	assert.Empty(t, repo.orders, "price preview must not persist anything")

	pedido, err := svc.CreateOrder(customer(1), req)
	require.NoError(t, err)

	assert.Equal(t, pedido.PrecoTotal, preview.PrecoTotal)
	assert.Equal(t, len(pedido.Itens), preview.QuantidadeItens)
	for i := range preview.Itens {
		assert.Equal(t, pedido.Itens[i].PrecoTotal, preview.Itens[i].PrecoTotalItem)
	}
}

func TestGetOrder_OwnerOrAdminOnly(t *testing.T) {
	svc, _, _ := newTestOrderService()

	owner := customer(1)
	pedido, err := svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetOrder(owner, pedido.ID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(admin(), pedido.ID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(customer(2), pedido.ID)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

func TestListAllOrders_AdminOnly(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.ListAllOrders(customer(1))
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = svc.ListAllOrders(admin())
	assert.NoError(t, err)
}

func TestListUserOrders_StatusFilterIsCaseInsensitive(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	owner := customer(1)
	pedido, err := svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(pedido.ID, models.StatusEmPreparo))

	pedidos, err := svc.ListUserOrders(owner, "em_preparo")
	require.NoError(t, err)
	assert.Len(t, pedidos, 1)

	pedidos, err = svc.ListUserOrders(owner, "ENTREGUE")
	require.NoError(t, err)
	assert.Empty(t, pedidos)

	_, err = svc.ListUserOrders(owner, "boguS")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestUpdateStatus_AdminOnlyAndValidated(t *testing.T) {
	svc, _, _ := newTestOrderService()

	owner := customer(1)
	pedido, err := svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(owner, pedido.ID, "PRONTO")
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = svc.UpdateStatus(admin(), pedido.ID, "SAIU_PARA_ENTREGA")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	updated, err := svc.UpdateStatus(admin(), pedido.ID, "pronto")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPronto, updated.Status)

	_, err = svc.UpdateStatus(admin(), 999, "PRONTO")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestCancelOrder_DeletesForOwnerOrAdmin(t *testing.T) {
	svc, repo, _ := newTestOrderService()

	owner := customer(1)
	pedido, err := svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)

	err = svc.CancelOrder(customer(2), pedido.ID)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	err = svc.CancelOrder(owner, pedido.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.orders)

	err = svc.CancelOrder(owner, pedido.ID)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestStatistics_SeedsEveryStatusLabel(t *testing.T) {
	svc, repo, _ := newTestOrderService()
	owner := customer(1)

	stats, err := svc.Statistics(owner)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPedidos)
	assert.Equal(t, 0.00, stats.TotalGasto)
	assert.Equal(t, 0.00, stats.ValorMedio)
	assert.Len(t, stats.PedidosPorStatus, 5)
	for _, st := range models.OrderStatuses() {
		count, ok := stats.PedidosPorStatus[string(st)]
		assert.True(t, ok, "missing status %s", st)
		assert.Equal(t, 0, count)
	}

	first, err := svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1}},
	})
	require.NoError(t, err)
	_, err = svc.CreateOrder(owner, &CreateOrderRequest{
		Itens: []ItemPedidoRequest{{ProdutoVariacaoID: 1, Quantidade: 1, IngredientesAdicionados: []int64{100}}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(first.ID, models.StatusEntregue))

	stats, err = svc.Statistics(owner)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPedidos)
	assert.Equal(t, 74.00, stats.TotalGasto)
	assert.Equal(t, 37.00, stats.ValorMedio)
	assert.Equal(t, 1, stats.PedidosPorStatus["ENTREGUE"])
	assert.Equal(t, 1, stats.PedidosPorStatus["PENDENTE"])
	assert.Equal(t, 0, stats.PedidosPorStatus["CANCELADO"])
}
