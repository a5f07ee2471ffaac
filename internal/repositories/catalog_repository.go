package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

// CatalogRepository is the read-only catalog view consumed by the pricing
// engine. It deliberately exposes only the three lookups pricing needs, so
// the engine can be unit tested against an in-memory implementation.
type CatalogRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewCatalogRepository(logger *logger.Logger, db *database.DB) *CatalogRepository {
	return &CatalogRepository{
		logger: logger.WithComponent("catalog_repository"),
		db:     db,
	}
}

// FindVariation resolves a product variation joined with its parent product
func (r *CatalogRepository) FindVariation(id int64) (*models.CatalogVariation, error) {
	query := `
        SELECT v.id, v.produto_id, p.nome, v.tamanho, v.preco, v.disponivel, p.disponivel
        FROM produto_variacoes v
        JOIN produtos p ON p.id = v.produto_id
        WHERE v.id = $1
    `

	variacao := &models.CatalogVariation{}
	err := r.db.QueryRow(query, id).Scan(
		&variacao.ID, &variacao.ProdutoID, &variacao.ProdutoNome,
		&variacao.Tamanho, &variacao.Preco, &variacao.Disponivel, &variacao.ProdutoDisponivel,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrVariationNotFound, id)
		}
		r.logger.Error("Failed to retrieve variation", "error", err, "variation_id", id)
		return nil, fmt.Errorf("failed to retrieve variation: %v", err)
	}

	return variacao, nil
}

// FindIngredient resolves an ingredient by ID
func (r *CatalogRepository) FindIngredient(id int64) (*models.Ingrediente, error) {
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

// FindAssociation resolves the standard-topping link between a product and
// an ingredient. Returns (nil, nil) when no association exists: removing a
// non-standard ingredient is a no-op for the pricing engine, not an error.
func (r *CatalogRepository) FindAssociation(produtoID, ingredienteID int64) (*models.ProdutoIngrediente, error) {
	query := `
        SELECT pi.produto_id, pi.ingrediente_id, i.nome, pi.quantidade, pi.obrigatorio
        FROM produto_ingredientes pi
        JOIN ingredientes i ON i.id = pi.ingrediente_id
        WHERE pi.produto_id = $1 AND pi.ingrediente_id = $2
    `

	assoc := &models.ProdutoIngrediente{}
	err := r.db.QueryRow(query, produtoID, ingredienteID).Scan(
		&assoc.ProdutoID, &assoc.IngredienteID, &assoc.IngredienteNome,
		&assoc.Quantidade, &assoc.Obrigatorio,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to retrieve product ingredient association", "error", err,
			"product_id", produtoID, "ingredient_id", ingredienteID)
		return nil, fmt.Errorf("failed to retrieve association: %v", err)
	}

	return assoc, nil
}
