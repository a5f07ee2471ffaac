package service

import (
	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type MenuService struct {
	logger     *logger.Logger
	categories repositories.CategoryRepositoryInterface
	products   repositories.ProductRepositoryInterface
}

func NewMenuService(logger *logger.Logger, categories repositories.CategoryRepositoryInterface,
	products repositories.ProductRepositoryInterface) *MenuService {
	return &MenuService{
		logger:     logger.WithComponent("menu_service"),
		categories: categories,
		products:   products,
	}
}

// GetMenu assembles the public menu: active categories in display order,
// each carrying only its available products. Categories without available
// products still appear, with an empty product list.
func (s *MenuService) GetMenu() (*models.Cardapio, error) {
	categorias, err := s.categories.GetAll(true)
	if err != nil {
		return nil, err
	}

	cardapio := &models.Cardapio{Categorias: make([]models.CardapioCategoria, 0, len(categorias))}
	for _, categoria := range categorias {
		produtos, err := s.products.GetByCategory(categoria.ID, true)
		if err != nil {
			return nil, err
		}

		entry := models.CardapioCategoria{
			ID:            categoria.ID,
			Nome:          categoria.Nome,
			Descricao:     categoria.Descricao,
			Icone:         categoria.Icone,
			OrdemExibicao: categoria.OrdemExibicao,
			Produtos:      make([]models.Produto, 0, len(produtos)),
		}
		for _, produto := range produtos {
			entry.Produtos = append(entry.Produtos, *produto)
		}

		cardapio.Categorias = append(cardapio.Categorias, entry)
	}

	return cardapio, nil
}
