package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fabiofilipe/pizzaria-api/models"
)

// CatalogReader is the read-only catalog view the pricing engine needs.
type CatalogReader interface {
	FindVariation(id int64) (*models.CatalogVariation, error)
	FindIngredient(id int64) (*models.Ingrediente, error)
	FindAssociation(produtoID, ingredienteID int64) (*models.ProdutoIngrediente, error)
}

// LineBreakdown is the priced result of a single order line.
type LineBreakdown struct {
	ProdutoVariacaoID int64
	ProdutoID         int64
	ProdutoNome       string
	Tamanho           models.Tamanho
	Quantidade        int
	PrecoBase         float64
	PrecoIngredientes float64
	PrecoTotal        float64
	Adicionados       []models.IngredienteAdicionado
	Removidos         []models.IngredienteRemovido
}

// PricingEngine computes line prices from catalog state. It performs no
// writes, so order creation can run it before opening a transaction.
type PricingEngine struct {
	catalog CatalogReader
}

func NewPricingEngine(catalog CatalogReader) *PricingEngine {
	return &PricingEngine{catalog: catalog}
}

// PriceLine prices one order line: loads the variation, applies added
// ingredients in request order, then validates removals.
//
// A removed ingredient that is not associated with the product is silently
// ignored and does not appear in the breakdown. Removing an obligatory
// ingredient is an error. Removals never change the price.
func (e *PricingEngine) PriceLine(variacaoID int64, quantidade int, adicionados, removidos []int64) (*LineBreakdown, error) {
	variation, err := e.catalog.FindVariation(variacaoID)
	if err != nil {
		return nil, err
	}
	if !variation.Disponivel || !variation.ProdutoDisponivel {
		return nil, fmt.Errorf("%w: %s (%s)", models.ErrUnavailable, variation.ProdutoNome, variation.Tamanho)
	}

	precoBase := decimal.NewFromFloat(variation.Preco)
	delta := decimal.Zero

	breakdown := &LineBreakdown{
		ProdutoVariacaoID: variacaoID,
		ProdutoID:         variation.ProdutoID,
		ProdutoNome:       variation.ProdutoNome,
		Tamanho:           variation.Tamanho,
		Quantidade:        quantidade,
		Adicionados:       []models.IngredienteAdicionado{},
		Removidos:         []models.IngredienteRemovido{},
	}

	for _, ingredienteID := range adicionados {
		ingrediente, err := e.catalog.FindIngredient(ingredienteID)
		if err != nil {
			return nil, err
		}
		if !ingrediente.Disponivel {
			return nil, fmt.Errorf("%w: %s", models.ErrIngredientUnavailable, ingrediente.Nome)
		}

		delta = delta.Add(decimal.NewFromFloat(ingrediente.PrecoAdicional))
		breakdown.Adicionados = append(breakdown.Adicionados, models.IngredienteAdicionado{
			ID:    ingrediente.ID,
			Nome:  ingrediente.Nome,
			Preco: ingrediente.PrecoAdicional,
		})
	}

	for _, ingredienteID := range removidos {
		associacao, err := e.catalog.FindAssociation(variation.ProdutoID, ingredienteID)
		if err != nil {
			return nil, err
		}
		if associacao == nil {
			continue
		}
		if associacao.Obrigatorio {
			return nil, fmt.Errorf("%w: %s", models.ErrObligatoryIngredient, associacao.IngredienteNome)
		}

		breakdown.Removidos = append(breakdown.Removidos, models.IngredienteRemovido{
			ID:   associacao.IngredienteID,
			Nome: associacao.IngredienteNome,
		})
	}

	qty := decimal.NewFromInt(int64(quantidade))
	total := precoBase.Add(delta).Mul(qty).Round(2)

	breakdown.PrecoBase, _ = precoBase.Round(2).Float64()
	breakdown.PrecoIngredientes, _ = delta.Round(2).Float64()
	breakdown.PrecoTotal, _ = total.Float64()

	return breakdown, nil
}
