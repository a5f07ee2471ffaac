package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type ProductRepositoryInterface interface {
	GetAll() ([]*models.Produto, error)
	GetByCategory(categoriaID int64, onlyAvailable bool) ([]*models.Produto, error)
	GetByID(id int64) (*models.Produto, error)
	Search(query string) ([]*models.Produto, error)
	Create(produto *models.Produto) error
	Update(id int64, produto *models.Produto) error
	Delete(id int64) error
	SetAvailability(id int64, disponivel bool) error
}

type ProductRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewProductRepository(logger *logger.Logger, db *database.DB) *ProductRepository {
	return &ProductRepository{
		logger: logger.WithComponent("product_repository"),
		db:     db,
	}
}

// productSelect aggregates each product's variations and standard
// ingredients as JSON arrays so a product row can be scanned in one pass.
const productSelect = `
    SELECT p.id, p.categoria_id, p.nome, COALESCE(p.descricao, ''), COALESCE(p.imagem_url, ''),
           p.disponivel, p.created_at, p.updated_at,
           COALESCE((
               SELECT json_agg(json_build_object(
                   'id', v.id,
                   'produto_id', v.produto_id,
                   'tamanho', v.tamanho,
                   'preco', v.preco,
                   'disponivel', v.disponivel
               ) ORDER BY v.id)
               FROM produto_variacoes v WHERE v.produto_id = p.id
           ), '[]'::json) AS variacoes,
           COALESCE((
               SELECT json_agg(json_build_object(
                   'produto_id', pi.produto_id,
                   'ingrediente_id', pi.ingrediente_id,
                   'ingrediente_nome', i.nome,
                   'quantidade', pi.quantidade,
                   'obrigatorio', pi.obrigatorio
               ) ORDER BY pi.ingrediente_id)
               FROM produto_ingredientes pi
               JOIN ingredientes i ON i.id = pi.ingrediente_id
               WHERE pi.produto_id = p.id
           ), '[]'::json) AS ingredientes
    FROM produtos p
`

func (r *ProductRepository) scanProduct(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Produto, error) {
	produto := &models.Produto{}
	var variacoesJSON, ingredientesJSON string

	err := scanner.Scan(&produto.ID, &produto.CategoriaID, &produto.Nome, &produto.Descricao,
		&produto.ImagemURL, &produto.Disponivel, &produto.CreatedAt, &produto.UpdatedAt,
		&variacoesJSON, &ingredientesJSON)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(variacoesJSON), &produto.Variacoes); err != nil {
		return nil, fmt.Errorf("invalid JSON format for variations: %v", err)
	}
	if err := json.Unmarshal([]byte(ingredientesJSON), &produto.Ingredientes); err != nil {
		return nil, fmt.Errorf("invalid JSON format for ingredients: %v", err)
	}

	return produto, nil
}

func (r *ProductRepository) queryProducts(query string, args ...interface{}) ([]*models.Produto, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", "error", err)
		return nil, fmt.Errorf("failed to query products: %v", err)
	}
	defer rows.Close()

	produtos := []*models.Produto{}
	for rows.Next() {
		produto, err := r.scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan product", "error", err)
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		produtos = append(produtos, produto)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating product rows", "error", err)
		return nil, fmt.Errorf("error iterating product rows: %v", err)
	}

	return produtos, nil
}

// GetAll retrieves all products with their variations and ingredients
func (r *ProductRepository) GetAll() ([]*models.Produto, error) {
	return r.queryProducts(productSelect + ` ORDER BY p.nome`)
}

// GetByCategory retrieves products of one category, optionally only the
// available ones (public menu view)
func (r *ProductRepository) GetByCategory(categoriaID int64, onlyAvailable bool) ([]*models.Produto, error) {
	query := productSelect + ` WHERE p.categoria_id = $1`
	if onlyAvailable {
		query += ` AND p.disponivel = true`
	}
	query += ` ORDER BY p.nome`
	return r.queryProducts(query, categoriaID)
}

// Search finds available products whose name or description matches the query
func (r *ProductRepository) Search(query string) ([]*models.Produto, error) {
	sqlQuery := productSelect + `
        WHERE p.disponivel = true
          AND (p.nome ILIKE '%' || $1 || '%' OR p.descricao ILIKE '%' || $1 || '%')
        ORDER BY p.nome
    `
	return r.queryProducts(sqlQuery, query)
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id int64) (*models.Produto, error) {
	row := r.db.QueryRow(productSelect+` WHERE p.id = $1`, id)

	produto, err := r.scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrProductNotFound, id)
		}
		r.logger.Error("Failed to retrieve product", "error", err, "product_id", id)
		return nil, fmt.Errorf("failed to retrieve product: %v", err)
	}

	return produto, nil
}

// Create inserts a product with its variations and ingredient associations
// in a single transaction
func (r *ProductRepository) Create(produto *models.Produto) error {
	r.logger.Debug("Adding new product", "nome", produto.Nome)

	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		query := `
            INSERT INTO produtos (categoria_id, nome, descricao, imagem_url, disponivel)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, created_at, updated_at
        `

		err := tx.QueryRow(query, produto.CategoriaID, produto.Nome, produto.Descricao,
			produto.ImagemURL, produto.Disponivel).
			Scan(&produto.ID, &produto.CreatedAt, &produto.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: produto '%s' ja existe", models.ErrAlreadyExists, produto.Nome)
			}
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: id %d", models.ErrCategoryNotFound, produto.CategoriaID)
			}
			return fmt.Errorf("failed to add product: %v", err)
		}

		if err := insertVariations(tx, produto.ID, produto.Variacoes); err != nil {
			return err
		}
		for i := range produto.Variacoes {
			produto.Variacoes[i].ProdutoID = produto.ID
		}

		return insertIngredientAssociations(tx, produto.ID, produto.Ingredientes)
	})
	if err != nil {
		r.logger.Error("Failed to add product", "error", err, "nome", produto.Nome)
		return err
	}

	r.logger.Info("Added new product", "product_id", produto.ID, "nome", produto.Nome)
	return nil
}

// Update updates a product's scalar fields. Variations and associations are
// managed on creation only.
func (r *ProductRepository) Update(id int64, produto *models.Produto) error {
	query := `
        UPDATE produtos
        SET categoria_id = $1, nome = $2, descricao = $3, imagem_url = $4, disponivel = $5, updated_at = NOW()
        WHERE id = $6
    `

	result, err := r.db.Exec(query, produto.CategoriaID, produto.Nome, produto.Descricao,
		produto.ImagemURL, produto.Disponivel, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: produto '%s' ja existe", models.ErrAlreadyExists, produto.Nome)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: id %d", models.ErrCategoryNotFound, produto.CategoriaID)
		}
		r.logger.Error("Failed to update product", "error", err, "product_id", id)
		return fmt.Errorf("failed to update product: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update non-existent product", "product_id", id)
		return fmt.Errorf("%w: id %d", models.ErrProductNotFound, id)
	}

	r.logger.Info("Updated product", "product_id", id, "nome", produto.Nome)
	return nil
}

// Delete removes a product with its variations and associations
func (r *ProductRepository) Delete(id int64) error {
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM produto_ingredientes WHERE produto_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product ingredients: %v", err)
		}
		if _, err := tx.Exec(`DELETE FROM produto_variacoes WHERE produto_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete product variations: %v", err)
		}

		result, err := tx.Exec(`DELETE FROM produtos WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete product: %v", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %v", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: id %d", models.ErrProductNotFound, id)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("Failed to delete product", "error", err, "product_id", id)
		return err
	}

	r.logger.Info("Deleted product", "product_id", id)
	return nil
}

// SetAvailability toggles whether a product appears on the menu and can be
// ordered
func (r *ProductRepository) SetAvailability(id int64, disponivel bool) error {
	result, err := r.db.Exec(`UPDATE produtos SET disponivel = $1, updated_at = NOW() WHERE id = $2`, disponivel, id)
	if err != nil {
		r.logger.Error("Failed to update product availability", "error", err, "product_id", id)
		return fmt.Errorf("failed to update product availability: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id %d", models.ErrProductNotFound, id)
	}

	r.logger.Info("Updated product availability", "product_id", id, "disponivel", disponivel)
	return nil
}

func insertVariations(tx *sql.Tx, produtoID int64, variacoes []models.ProdutoVariacao) error {
	query := `
        INSERT INTO produto_variacoes (produto_id, tamanho, preco, disponivel)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	for i := range variacoes {
		err := tx.QueryRow(query, produtoID, variacoes[i].Tamanho, variacoes[i].Preco, variacoes[i].Disponivel).
			Scan(&variacoes[i].ID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: variacao '%s' duplicada para o produto", models.ErrAlreadyExists, variacoes[i].Tamanho)
			}
			return fmt.Errorf("failed to insert variation %s: %v", variacoes[i].Tamanho, err)
		}
	}

	return nil
}

func insertIngredientAssociations(tx *sql.Tx, produtoID int64, ingredientes []models.ProdutoIngrediente) error {
	query := `
        INSERT INTO produto_ingredientes (produto_id, ingrediente_id, quantidade, obrigatorio)
        VALUES ($1, $2, $3, $4)
    `

	for _, assoc := range ingredientes {
		_, err := tx.Exec(query, produtoID, assoc.IngredienteID, assoc.Quantidade, assoc.Obrigatorio)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: ingrediente %d ja associado ao produto", models.ErrAlreadyExists, assoc.IngredienteID)
			}
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, assoc.IngredienteID)
			}
			return fmt.Errorf("failed to insert ingredient association %d: %v", assoc.IngredienteID, err)
		}
	}

	return nil
}
