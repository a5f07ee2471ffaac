package service

import (
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type CategoryService struct {
	logger     *logger.Logger
	categories repositories.CategoryRepositoryInterface
}

func NewCategoryService(logger *logger.Logger, categories repositories.CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{
		logger:     logger.WithComponent("category_service"),
		categories: categories,
	}
}

func validateCategory(categoria *models.Categoria) error {
	if categoria.Nome == "" {
		return fmt.Errorf("%w: nome da categoria e obrigatorio", models.ErrValidation)
	}
	if categoria.OrdemExibicao < 0 {
		return fmt.Errorf("%w: ordem de exibicao nao pode ser negativa", models.ErrValidation)
	}
	return nil
}

// ListCategories returns categories ordered for display. Non-admin callers
// only see the active ones.
func (s *CategoryService) ListCategories(actor *models.Usuario) ([]*models.Categoria, error) {
	onlyActive := actor == nil || !actor.Admin
	return s.categories.GetAll(onlyActive)
}

func (s *CategoryService) GetCategory(id int64) (*models.Categoria, error) {
	return s.categories.GetByID(id)
}

func (s *CategoryService) CreateCategory(actor *models.Usuario, categoria *models.Categoria) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar categorias", models.ErrPermissionDenied)
	}
	if err := validateCategory(categoria); err != nil {
		return err
	}
	return s.categories.Create(categoria)
}

func (s *CategoryService) UpdateCategory(actor *models.Usuario, id int64, categoria *models.Categoria) (*models.Categoria, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem gerenciar categorias", models.ErrPermissionDenied)
	}
	if err := validateCategory(categoria); err != nil {
		return nil, err
	}
	if err := s.categories.Update(id, categoria); err != nil {
		return nil, err
	}
	return s.categories.GetByID(id)
}

func (s *CategoryService) DeleteCategory(actor *models.Usuario, id int64) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar categorias", models.ErrPermissionDenied)
	}
	return s.categories.Delete(id)
}
