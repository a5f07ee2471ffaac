package service

import (
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type IngredientService struct {
	logger      *logger.Logger
	ingredients repositories.IngredientRepositoryInterface
}

func NewIngredientService(logger *logger.Logger, ingredients repositories.IngredientRepositoryInterface) *IngredientService {
	return &IngredientService{
		logger:      logger.WithComponent("ingredient_service"),
		ingredients: ingredients,
	}
}

func validateIngredient(ingrediente *models.Ingrediente) error {
	if ingrediente.Nome == "" {
		return fmt.Errorf("%w: nome do ingrediente e obrigatorio", models.ErrValidation)
	}
	if ingrediente.PrecoAdicional < 0 {
		return fmt.Errorf("%w: preco adicional nao pode ser negativo", models.ErrValidation)
	}
	return nil
}

func (s *IngredientService) ListIngredients() ([]*models.Ingrediente, error) {
	return s.ingredients.GetAll()
}

func (s *IngredientService) GetIngredient(id int64) (*models.Ingrediente, error) {
	return s.ingredients.GetByID(id)
}

func (s *IngredientService) CreateIngredient(actor *models.Usuario, ingrediente *models.Ingrediente) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar ingredientes", models.ErrPermissionDenied)
	}
	if err := validateIngredient(ingrediente); err != nil {
		return err
	}
	return s.ingredients.Create(ingrediente)
}

func (s *IngredientService) UpdateIngredient(actor *models.Usuario, id int64, ingrediente *models.Ingrediente) (*models.Ingrediente, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem gerenciar ingredientes", models.ErrPermissionDenied)
	}
	if err := validateIngredient(ingrediente); err != nil {
		return nil, err
	}
	if err := s.ingredients.Update(id, ingrediente); err != nil {
		return nil, err
	}
	return s.ingredients.GetByID(id)
}

func (s *IngredientService) DeleteIngredient(actor *models.Usuario, id int64) error {
	if !actor.Admin {
		return fmt.Errorf("%w: apenas administradores podem gerenciar ingredientes", models.ErrPermissionDenied)
	}
	return s.ingredients.Delete(id)
}

// SetAvailability flips whether an ingredient can be added to new orders.
// Existing order snapshots are unaffected.
func (s *IngredientService) SetAvailability(actor *models.Usuario, id int64, disponivel bool) (*models.Ingrediente, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w: apenas administradores podem gerenciar ingredientes", models.ErrPermissionDenied)
	}
	if err := s.ingredients.SetAvailability(id, disponivel); err != nil {
		return nil, err
	}
	return s.ingredients.GetByID(id)
}
