package router

import (
	"net/http"

	"github.com/fabiofilipe/pizzaria-api/internal/handler"
	"github.com/fabiofilipe/pizzaria-api/pkg/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Order      *handler.OrderHandler
	Category   *handler.CategoryHandler
	Product    *handler.ProductHandler
	Ingredient *handler.IngredientHandler
	Menu       *handler.MenuHandler
	Health     *handler.HealthHandler
}

// NewRouter builds the HTTP route table. Public routes (account creation,
// login, menu, catalog reads) take no token; everything under /pedidos
// requires one; catalog writes require an admin.
func NewRouter(h Handlers, auth *handler.AuthMiddleware) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/criar_conta", h.Auth.Register)
	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)

	// Public menu
	mux.HandleFunc("GET /cardapio", h.Menu.GetMenu)

	// Categories
	mux.HandleFunc("GET /categorias", h.Category.ListCategories)
	mux.HandleFunc("GET /categorias/{id}", h.Category.GetCategory)
	mux.HandleFunc("POST /categorias", auth.RequireAdmin(h.Category.CreateCategory))
	mux.HandleFunc("PUT /categorias/{id}", auth.RequireAdmin(h.Category.UpdateCategory))
	mux.HandleFunc("DELETE /categorias/{id}", auth.RequireAdmin(h.Category.DeleteCategory))

	// Products
	mux.HandleFunc("GET /produtos", h.Product.ListProducts)
	mux.HandleFunc("GET /produtos/buscar", h.Product.SearchProducts)
	mux.HandleFunc("GET /produtos/{id}", h.Product.GetProduct)
	mux.HandleFunc("POST /produtos", auth.RequireAdmin(h.Product.CreateProduct))
	mux.HandleFunc("PUT /produtos/{id}", auth.RequireAdmin(h.Product.UpdateProduct))
	mux.HandleFunc("DELETE /produtos/{id}", auth.RequireAdmin(h.Product.DeleteProduct))
	mux.HandleFunc("PATCH /produtos/{id}/disponibilidade", auth.RequireAdmin(h.Product.SetAvailability))

	// Ingredients
	mux.HandleFunc("GET /ingredientes", h.Ingredient.ListIngredients)
	mux.HandleFunc("GET /ingredientes/{id}", h.Ingredient.GetIngredient)
	mux.HandleFunc("POST /ingredientes", auth.RequireAdmin(h.Ingredient.CreateIngredient))
	mux.HandleFunc("PUT /ingredientes/{id}", auth.RequireAdmin(h.Ingredient.UpdateIngredient))
	mux.HandleFunc("DELETE /ingredientes/{id}", auth.RequireAdmin(h.Ingredient.DeleteIngredient))
	mux.HandleFunc("PATCH /ingredientes/{id}/disponibilidade", auth.RequireAdmin(h.Ingredient.SetAvailability))

	// Orders
	mux.HandleFunc("POST /pedidos/", auth.RequireUser(h.Order.CreateOrder))
	mux.HandleFunc("GET /pedidos/", auth.RequireAdmin(h.Order.ListAllOrders))
	mux.HandleFunc("POST /pedidos/calcular-preco", auth.RequireUser(h.Order.CalculatePrice))
	mux.HandleFunc("GET /pedidos/meus", auth.RequireUser(h.Order.ListMyOrders))
	mux.HandleFunc("GET /pedidos/meus/estatisticas", auth.RequireUser(h.Order.Statistics))
	mux.HandleFunc("GET /pedidos/{id}", auth.RequireUser(h.Order.GetOrder))
	mux.HandleFunc("PATCH /pedidos/{id}/status", auth.RequireAdmin(h.Order.UpdateStatus))
	mux.HandleFunc("DELETE /pedidos/{id}", auth.RequireUser(h.Order.CancelOrder))

	// Operational
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}
