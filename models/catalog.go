package models

import (
	"fmt"
	"strings"
	"time"
)

// Tamanho is a size label for a product variation.
type Tamanho string

const (
	TamanhoPequena Tamanho = "PEQUENA"
	TamanhoMedia   Tamanho = "MEDIA"
	TamanhoGrande  Tamanho = "GRANDE"
	TamanhoGigante Tamanho = "GIGANTE"
	TamanhoUnico   Tamanho = "UNICO"
)

// Tamanhos lists every valid size label.
func Tamanhos() []Tamanho {
	return []Tamanho{TamanhoPequena, TamanhoMedia, TamanhoGrande, TamanhoGigante, TamanhoUnico}
}

// ParseTamanho validates a size label, accepting any casing on input.
func ParseTamanho(s string) (Tamanho, error) {
	upper := Tamanho(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range Tamanhos() {
		if t == upper {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: tamanho '%s' invalido", ErrValidation, s)
}

// Categoria groups products on the public menu.
type Categoria struct {
	ID            int64     `json:"id" db:"id"`
	Nome          string    `json:"nome" db:"nome"`
	Descricao     string    `json:"descricao,omitempty" db:"descricao"`
	Icone         string    `json:"icone,omitempty" db:"icone"`
	OrdemExibicao int       `json:"ordem_exibicao" db:"ordem_exibicao"`
	Ativa         bool      `json:"ativa" db:"ativa"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Produto is a catalog product. Its sellable forms are the variations; the
// associated ingredients describe the standard toppings.
type Produto struct {
	ID           int64                `json:"id" db:"id"`
	CategoriaID  int64                `json:"categoria_id" db:"categoria_id"`
	Nome         string               `json:"nome" db:"nome"`
	Descricao    string               `json:"descricao,omitempty" db:"descricao"`
	ImagemURL    string               `json:"imagem_url,omitempty" db:"imagem_url"`
	Disponivel   bool                 `json:"disponivel" db:"disponivel"`
	Variacoes    []ProdutoVariacao    `json:"variacoes"`
	Ingredientes []ProdutoIngrediente `json:"ingredientes"`
	CreatedAt    time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" db:"updated_at"`
}

// ProdutoVariacao is a priced size option of a product. The (produto_id,
// tamanho) pair is unique.
type ProdutoVariacao struct {
	ID         int64   `json:"id" db:"id"`
	ProdutoID  int64   `json:"produto_id" db:"produto_id"`
	Tamanho    Tamanho `json:"tamanho" db:"tamanho"`
	Preco      float64 `json:"preco" db:"preco"`
	Disponivel bool    `json:"disponivel" db:"disponivel"`
}

// Ingrediente is a topping with an additional price charged when added to an
// order line.
type Ingrediente struct {
	ID             int64   `json:"id" db:"id"`
	Nome           string  `json:"nome" db:"nome"`
	PrecoAdicional float64 `json:"preco_adicional" db:"preco_adicional"`
	Disponivel     bool    `json:"disponivel" db:"disponivel"`
}

// ProdutoIngrediente links a product to one of its standard ingredients.
// Obligatory ingredients may never be removed from an order line of that
// product. IngredienteNome is resolved from the ingredientes table.
type ProdutoIngrediente struct {
	ProdutoID       int64  `json:"produto_id" db:"produto_id"`
	IngredienteID   int64  `json:"ingrediente_id" db:"ingrediente_id"`
	IngredienteNome string `json:"ingrediente_nome" db:"ingrediente_nome"`
	Quantidade      int    `json:"quantidade" db:"quantidade"`
	Obrigatorio     bool   `json:"obrigatorio" db:"obrigatorio"`
}

// CatalogVariation is the pricing engine's read view of a variation joined
// with its parent product.
type CatalogVariation struct {
	ID                int64
	ProdutoID         int64
	ProdutoNome       string
	Tamanho           Tamanho
	Preco             float64
	Disponivel        bool
	ProdutoDisponivel bool
}

// CardapioCategoria is a category on the public menu with its available
// products.
type CardapioCategoria struct {
	ID            int64     `json:"id"`
	Nome          string    `json:"nome"`
	Descricao     string    `json:"descricao,omitempty"`
	Icone         string    `json:"icone,omitempty"`
	OrdemExibicao int       `json:"ordem_exibicao"`
	Produtos      []Produto `json:"produtos"`
}

// Cardapio is the full public menu.
type Cardapio struct {
	Categorias []CardapioCategoria `json:"categorias"`
}
