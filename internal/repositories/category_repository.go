package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type CategoryRepositoryInterface interface {
	GetAll(onlyActive bool) ([]*models.Categoria, error)
	GetByID(id int64) (*models.Categoria, error)
	Create(categoria *models.Categoria) error
	Update(id int64, categoria *models.Categoria) error
	Delete(id int64) error
}

type CategoryRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewCategoryRepository(logger *logger.Logger, db *database.DB) *CategoryRepository {
	return &CategoryRepository{
		logger: logger.WithComponent("category_repository"),
		db:     db,
	}
}

// GetAll retrieves categories ordered for menu display
func (r *CategoryRepository) GetAll(onlyActive bool) ([]*models.Categoria, error) {
	query := `
        SELECT id, nome, COALESCE(descricao, ''), COALESCE(icone, ''), ordem_exibicao, ativa, created_at, updated_at
        FROM categorias
    `
	if onlyActive {
		query += ` WHERE ativa = true`
	}
	query += ` ORDER BY ordem_exibicao, nome`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to query categories", "error", err)
		return nil, fmt.Errorf("failed to query categories: %v", err)
	}
	defer rows.Close()

	categorias := []*models.Categoria{}
	for rows.Next() {
		categoria := &models.Categoria{}
		err := rows.Scan(&categoria.ID, &categoria.Nome, &categoria.Descricao, &categoria.Icone,
			&categoria.OrdemExibicao, &categoria.Ativa, &categoria.CreatedAt, &categoria.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to scan category", "error", err)
			return nil, fmt.Errorf("failed to scan category: %v", err)
		}
		categorias = append(categorias, categoria)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating category rows", "error", err)
		return nil, fmt.Errorf("error iterating category rows: %v", err)
	}

	return categorias, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id int64) (*models.Categoria, error) {
	query := `
        SELECT id, nome, COALESCE(descricao, ''), COALESCE(icone, ''), ordem_exibicao, ativa, created_at, updated_at
        FROM categorias
        WHERE id = $1
    `

	categoria := &models.Categoria{}
	err := r.db.QueryRow(query, id).Scan(&categoria.ID, &categoria.Nome, &categoria.Descricao,
		&categoria.Icone, &categoria.OrdemExibicao, &categoria.Ativa, &categoria.CreatedAt, &categoria.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrCategoryNotFound, id)
		}
		r.logger.Error("Failed to retrieve category", "error", err, "category_id", id)
		return nil, fmt.Errorf("failed to retrieve category: %v", err)
	}

	return categoria, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(categoria *models.Categoria) error {
	query := `
        INSERT INTO categorias (nome, descricao, icone, ordem_exibicao, ativa)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `

	err := r.db.QueryRow(query, categoria.Nome, categoria.Descricao, categoria.Icone,
		categoria.OrdemExibicao, categoria.Ativa).
		Scan(&categoria.ID, &categoria.CreatedAt, &categoria.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to add duplicate category", "nome", categoria.Nome)
			return fmt.Errorf("%w: categoria '%s' ja existe", models.ErrAlreadyExists, categoria.Nome)
		}
		r.logger.Error("Failed to add category", "error", err, "nome", categoria.Nome)
		return fmt.Errorf("failed to add category: %v", err)
	}

	r.logger.Info("Added new category", "category_id", categoria.ID, "nome", categoria.Nome)
	return nil
}

// Update updates an existing category
func (r *CategoryRepository) Update(id int64, categoria *models.Categoria) error {
	query := `
        UPDATE categorias
        SET nome = $1, descricao = $2, icone = $3, ordem_exibicao = $4, ativa = $5, updated_at = NOW()
        WHERE id = $6
    `

	result, err := r.db.Exec(query, categoria.Nome, categoria.Descricao, categoria.Icone,
		categoria.OrdemExibicao, categoria.Ativa, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: categoria '%s' ja existe", models.ErrAlreadyExists, categoria.Nome)
		}
		r.logger.Error("Failed to update category", "error", err, "category_id", id)
		return fmt.Errorf("failed to update category: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update non-existent category", "category_id", id)
		return fmt.Errorf("%w: id %d", models.ErrCategoryNotFound, id)
	}

	r.logger.Info("Updated category", "category_id", id, "nome", categoria.Nome)
	return nil
}

// Delete removes a category by ID
func (r *CategoryRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoria %d possui produtos cadastrados", models.ErrValidation, id)
		}
		r.logger.Error("Failed to delete category", "error", err, "category_id", id)
		return fmt.Errorf("failed to delete category: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to delete non-existent category", "category_id", id)
		return fmt.Errorf("%w: id %d", models.ErrCategoryNotFound, id)
	}

	r.logger.Info("Deleted category", "category_id", id)
	return nil
}
