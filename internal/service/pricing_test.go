package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiofilipe/pizzaria-api/models"
)

type fakeCatalog struct {
	variations   map[int64]*models.CatalogVariation
	ingredients  map[int64]*models.Ingrediente
	associations map[string]*models.ProdutoIngrediente
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		variations:   make(map[int64]*models.CatalogVariation),
		ingredients:  make(map[int64]*models.Ingrediente),
		associations: make(map[string]*models.ProdutoIngrediente),
	}
}

func (c *fakeCatalog) addVariation(v models.CatalogVariation) {
	c.variations[v.ID] = &v
}

func (c *fakeCatalog) addIngredient(i models.Ingrediente) {
	c.ingredients[i.ID] = &i
}

func (c *fakeCatalog) addAssociation(a models.ProdutoIngrediente) {
	c.associations[fmt.Sprintf("%d:%d", a.ProdutoID, a.IngredienteID)] = &a
}

func (c *fakeCatalog) FindVariation(id int64) (*models.CatalogVariation, error) {
	v, ok := c.variations[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrVariationNotFound, id)
	}
	return v, nil
}

func (c *fakeCatalog) FindIngredient(id int64) (*models.Ingrediente, error) {
	i, ok := c.ingredients[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", models.ErrIngredientNotFound, id)
	}
	return i, nil
}

func (c *fakeCatalog) FindAssociation(produtoID, ingredienteID int64) (*models.ProdutoIngrediente, error) {
	return c.associations[fmt.Sprintf("%d:%d", produtoID, ingredienteID)], nil
}

func pizzaCatalog() *fakeCatalog {
	catalog := newFakeCatalog()
	catalog.addVariation(models.CatalogVariation{
		ID: 1, ProdutoID: 10, ProdutoNome: "Margherita",
		Tamanho: models.TamanhoGrande, Preco: 35.00,
		Disponivel: true, ProdutoDisponivel: true,
	})
	catalog.addVariation(models.CatalogVariation{
		ID: 2, ProdutoID: 10, ProdutoNome: "Margherita",
		Tamanho: models.TamanhoPequena, Preco: 22.00,
		Disponivel: false, ProdutoDisponivel: true,
	})
	catalog.addVariation(models.CatalogVariation{
		ID: 3, ProdutoID: 20, ProdutoNome: "Calabresa",
		Tamanho: models.TamanhoMedia, Preco: 30.00,
		Disponivel: true, ProdutoDisponivel: false,
	})
	catalog.addIngredient(models.Ingrediente{ID: 100, Nome: "Catupiry", PrecoAdicional: 4.00, Disponivel: true})
	catalog.addIngredient(models.Ingrediente{ID: 101, Nome: "Bacon", PrecoAdicional: 5.50, Disponivel: true})
	catalog.addIngredient(models.Ingrediente{ID: 102, Nome: "Trufa", PrecoAdicional: 12.00, Disponivel: false})
	catalog.addAssociation(models.ProdutoIngrediente{
		ProdutoID: 10, IngredienteID: 200, IngredienteNome: "Mussarela", Quantidade: 1, Obrigatorio: true,
	})
	catalog.addAssociation(models.ProdutoIngrediente{
		ProdutoID: 10, IngredienteID: 201, IngredienteNome: "Manjericao", Quantidade: 1, Obrigatorio: false,
	})
	return catalog
}

func TestPriceLine_BaseOnly(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	line, err := engine.PriceLine(1, 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Margherita", line.ProdutoNome)
	assert.Equal(t, models.TamanhoGrande, line.Tamanho)
	assert.Equal(t, 35.00, line.PrecoBase)
	assert.Equal(t, 0.00, line.PrecoIngredientes)
	assert.Equal(t, 35.00, line.PrecoTotal)
	assert.Empty(t, line.Adicionados)
	assert.Empty(t, line.Removidos)
}

func TestPriceLine_AddedIngredientsMultiplyByQuantity(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	line, err := engine.PriceLine(1, 2, []int64{100}, nil)
	require.NoError(t, err)

	assert.Equal(t, 35.00, line.PrecoBase)
	assert.Equal(t, 4.00, line.PrecoIngredientes)
	assert.Equal(t, 78.00, line.PrecoTotal)
	require.Len(t, line.Adicionados, 1)
	assert.Equal(t, "Catupiry", line.Adicionados[0].Nome)
	assert.Equal(t, 4.00, line.Adicionados[0].Preco)
}

func TestPriceLine_AddedIngredientsAccumulate(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	line, err := engine.PriceLine(1, 1, []int64{100, 101}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9.50, line.PrecoIngredientes)
	assert.Equal(t, 44.50, line.PrecoTotal)
	require.Len(t, line.Adicionados, 2)
	assert.Equal(t, "Catupiry", line.Adicionados[0].Nome)
	assert.Equal(t, "Bacon", line.Adicionados[1].Nome)
}

func TestPriceLine_RemovalNeverChangesPrice(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	line, err := engine.PriceLine(1, 1, nil, []int64{201})
	require.NoError(t, err)

	assert.Equal(t, 35.00, line.PrecoTotal)
	require.Len(t, line.Removidos, 1)
	assert.Equal(t, "Manjericao", line.Removidos[0].Nome)
}

func TestPriceLine_RemovingNonAssociatedIngredientIsIgnored(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	// 100 is a valid ingredient but not a standard topping of product 10,
	// so the removal is a no-op and does not appear in the snapshot.
	line, err := engine.PriceLine(1, 1, nil, []int64{100, 999})
	require.NoError(t, err)

	assert.Equal(t, 35.00, line.PrecoTotal)
	assert.Empty(t, line.Removidos)
}

func TestPriceLine_RemovingObligatoryIngredientFails(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	_, err := engine.PriceLine(1, 1, nil, []int64{200})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrObligatoryIngredient)
	assert.Contains(t, err.Error(), "Mussarela")
}

func TestPriceLine_UnknownVariation(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	_, err := engine.PriceLine(999, 1, nil, nil)
	assert.ErrorIs(t, err, models.ErrVariationNotFound)
}

func TestPriceLine_UnavailableVariation(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	_, err := engine.PriceLine(2, 1, nil, nil)
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestPriceLine_UnavailableProductCascades(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	// The variation itself is available but the parent product is not.
	_, err := engine.PriceLine(3, 1, nil, nil)
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestPriceLine_UnknownAddedIngredient(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	_, err := engine.PriceLine(1, 1, []int64{999}, nil)
	assert.ErrorIs(t, err, models.ErrIngredientNotFound)
}

func TestPriceLine_UnavailableAddedIngredient(t *testing.T) {
	engine := NewPricingEngine(pizzaCatalog())

	_, err := engine.PriceLine(1, 1, []int64{102}, nil)
	assert.ErrorIs(t, err, models.ErrIngredientUnavailable)
}

func TestPriceLine_RoundingStaysAtTwoDecimals(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addVariation(models.CatalogVariation{
		ID: 1, ProdutoID: 1, ProdutoNome: "Promo",
		Tamanho: models.TamanhoUnico, Preco: 9.99,
		Disponivel: true, ProdutoDisponivel: true,
	})
	catalog.addIngredient(models.Ingrediente{ID: 2, Nome: "Extra", PrecoAdicional: 0.01, Disponivel: true})
	engine := NewPricingEngine(catalog)

	line, err := engine.PriceLine(1, 3, []int64{2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 30.00, line.PrecoTotal)
}
