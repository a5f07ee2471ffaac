package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type IngredientRepositoryInterface interface {
	GetAll() ([]*models.Ingrediente, error)
	GetByID(id int64) (*models.Ingrediente, error)
	Create(ingrediente *models.Ingrediente) error
	Update(id int64, ingrediente *models.Ingrediente) error
	Delete(id int64) error
	SetAvailability(id int64, disponivel bool) error
}

type IngredientRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewIngredientRepository(logger *logger.Logger, db *database.DB) *IngredientRepository {
	return &IngredientRepository{
		logger: logger.WithComponent("ingredient_repository"),
		db:     db,
	}
}

// GetAll retrieves all ingredients
func (r *IngredientRepository) GetAll() ([]*models.Ingrediente, error) {
	query := `SELECT id, nome, preco_adicional, disponivel FROM ingredientes ORDER BY nome`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to query ingredients", "error", err)
		return nil, fmt.Errorf("failed to query ingredients: %v", err)
	}
	defer rows.Close()

	ingredientes := []*models.Ingrediente{}
	for rows.Next() {
		ingrediente := &models.Ingrediente{}
		err := rows.Scan(&ingrediente.ID, &ingrediente.Nome, &ingrediente.PrecoAdicional, &ingrediente.Disponivel)
		if err != nil {
			r.logger.Error("Failed to scan ingredient", "error", err)
			return nil, fmt.Errorf("failed to scan ingredient: %v", err)
		}
		ingredientes = append(ingredientes, ingrediente)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating ingredient rows", "error", err)
		return nil, fmt.Errorf("error iterating ingredient rows: %v", err)
	}

	return ingredientes, nil
}

// GetByID retrieves an ingredient by ID
func (r *IngredientRepository) GetByID(id int64) (*models.Ingrediente, error) {
	query := `SELECT id, nome, preco_adicional, disponivel FROM ingredientes WHERE id = $1`

	ingrediente := &models.Ingrediente{}
	err := r.db.QueryRow(query, id).
		Scan(&ingrediente.ID, &ingrediente.Nome, &ingrediente.PrecoAdicional, &ingrediente.Disponivel)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, id)
		}
		r.logger.Error("Failed to retrieve ingredient", "error", err, "ingredient_id", id)
		return nil, fmt.Errorf("failed to retrieve ingredient: %v", err)
	}

	return ingrediente, nil
}

// Create inserts a new ingredient
func (r *IngredientRepository) Create(ingrediente *models.Ingrediente) error {
	query := `
        INSERT INTO ingredientes (nome, preco_adicional, disponivel)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	err := r.db.QueryRow(query, ingrediente.Nome, ingrediente.PrecoAdicional, ingrediente.Disponivel).
		Scan(&ingrediente.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to add duplicate ingredient", "nome", ingrediente.Nome)
			return fmt.Errorf("%w: ingrediente '%s' ja existe", models.ErrAlreadyExists, ingrediente.Nome)
		}
		r.logger.Error("Failed to add ingredient", "error", err, "nome", ingrediente.Nome)
		return fmt.Errorf("failed to add ingredient: %v", err)
	}

	r.logger.Info("Added new ingredient", "ingredient_id", ingrediente.ID, "nome", ingrediente.Nome)
	return nil
}

// Update updates an existing ingredient
func (r *IngredientRepository) Update(id int64, ingrediente *models.Ingrediente) error {
	query := `
        UPDATE ingredientes
        SET nome = $1, preco_adicional = $2, disponivel = $3
        WHERE id = $4
    `

	result, err := r.db.Exec(query, ingrediente.Nome, ingrediente.PrecoAdicional, ingrediente.Disponivel, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ingrediente '%s' ja existe", models.ErrAlreadyExists, ingrediente.Nome)
		}
		r.logger.Error("Failed to update ingredient", "error", err, "ingredient_id", id)
		return fmt.Errorf("failed to update ingredient: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update non-existent ingredient", "ingredient_id", id)
		return fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, id)
	}

	r.logger.Info("Updated ingredient", "ingredient_id", id, "nome", ingrediente.Nome)
	return nil
}

// Delete removes an ingredient by ID
func (r *IngredientRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM ingredientes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ingrediente %d esta associado a produtos", models.ErrValidation, id)
		}
		r.logger.Error("Failed to delete ingredient", "error", err, "ingredient_id", id)
		return fmt.Errorf("failed to delete ingredient: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to delete non-existent ingredient", "ingredient_id", id)
		return fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, id)
	}

	r.logger.Info("Deleted ingredient", "ingredient_id", id)
	return nil
}

// SetAvailability toggles whether an ingredient may be added to new orders
func (r *IngredientRepository) SetAvailability(id int64, disponivel bool) error {
	result, err := r.db.Exec(`UPDATE ingredientes SET disponivel = $1 WHERE id = $2`, disponivel, id)
	if err != nil {
		r.logger.Error("Failed to update ingredient availability", "error", err, "ingredient_id", id)
		return fmt.Errorf("failed to update ingredient availability: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, id)
	}

	r.logger.Info("Updated ingredient availability", "ingredient_id", id, "disponivel", disponivel)
	return nil
}
