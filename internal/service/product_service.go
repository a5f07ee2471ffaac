package service

import (
	"fmt"
	"strings"

	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type ProductService struct {
	logger   *logger.Logger
	products repositories.ProductRepositoryInterface
}

func NewProductService(logger *logger.Logger, products repositories.ProductRepositoryInterface) *ProductService {
	return &ProductService{
		logger:   logger.WithComponent("product_service"),
		products: products,
	}
}

func validateProduct(produto *models.Produto) error {
	if produto.Nome == "" {
		return fmt.Errorf("%w: nome do produto e obrigatorio", models.ErrValidation)
	}
	if produto.CategoriaID <= 0 {
		return fmt.Errorf("%w: categoria e obrigatoria", models.ErrValidation)
	}

	seen := make(map[models.Tamanho]bool, len(produto.Variacoes))
	for i := range produto.Variacoes {
		tamanho, err := models.ParseTamanho(string(produto.Variacoes[i].Tamanho))
		if err != nil {
			return err
		}
		produto.Variacoes[i].Tamanho = tamanho

		if seen[tamanho] {
			return fmt.Errorf("%w: tamanho %s repetido", models.ErrValidation, tamanho)
		}
		seen[tamanho] = true

		if produto.Variacoes[i].Preco <= 0 {
			return fmt.Errorf("%w: preco da variacao %s deve ser positivo", models.ErrValidation, tamanho)
		}
	}

	for _, assoc := range produto.Ingredientes {
		if assoc.IngredienteID <= 0 {
			return fmt.Errorf("%w: associacao de ingrediente sem id", models.ErrValidation)
		}
		if assoc.Quantidade < 1 {
			return fmt.Errorf("%w: quantidade do ingrediente %d deve ser positiva", models.ErrValidation, assoc.IngredienteID)
		}
	}

	return nil
}

// ListProducts returns products, optionally restricted to one category.
// categoriaID zero means no filter.
func (s *ProductService) ListProducts(categoriaID int64) ([]*models.Produto, error) {
	if categoriaID > 0 {
		return s.products.GetByCategory(categoriaID, false)
	}
	return s.products.GetAll()
}

func (s *ProductService) GetProduct(id int64) (*models.Produto, error) {
	return s.products.GetByID(id)
}

// SearchProducts finds available products matching a free-text query.
func (s *ProductService) SearchProducts(query string) ([]*models.Produto, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: termo de busca e obrigatorio", models.ErrValidation)
	}
	return s.products.Search(query)
}

func (s *ProductService) CreateProduct(actor *models.Usuario, produto *models.Produto) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar produtos", models.ErrPermissionDenied)
	}
	if err := validateProduct(produto); err != nil {
		return err
	}
	return s.products.Create(produto)
}

func (s *ProductService) UpdateProduct(actor *models.Usuario, id int64, produto *models.Produto) (*models.Produto, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem gerenciar produtos", models.ErrPermissionDenied)
	}
	if produto.Nome == "" {
		return nil, fmt.Errorf("%w: nome do produto e obrigatorio", models.ErrValidation)
	}
	if produto.CategoriaID <= 0 {
		return nil, fmt.Errorf("%w: categoria e obrigatoria", models.ErrValidation)
	}
	if err := s.products.Update(id, produto); err != nil {
		return nil, err
	}
	return s.products.GetByID(id)
}

func (s *ProductService) DeleteProduct(actor *models.Usuario, id int64) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar produtos", models.ErrPermissionDenied)
	}
	return s.products.Delete(id)
}

// SetAvailability toggles a product on or off the menu. Turning a product
// off also blocks ordering any of its variations.
func (s *ProductService) SetAvailability(actor *models.Usuario, id int64, disponivel bool) (*models.Produto, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem gerenciar produtos", models.ErrPermissionDenied)
	}
	if err := s.products.SetAvailability(id, disponivel); err != nil {
		return nil, err
	}
	return s.products.GetByID(id)
}
