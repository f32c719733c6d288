// ABOUTME: Shopping domain model for categories, products, lists and price history
// ABOUTME: Provides the per-user snapshot document and its validation rules

package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	coreerrors "shoplist-api/core/errors"
)

// Categoria groups products
type Categoria struct {
	ID   string `json:"id" validate:"required"`
	Nome string `json:"nome" validate:"required"`
	Cor  string `json:"cor" validate:"required,rgbhex"`
}

// PrecoHistorico is a single observed price for a product
type PrecoHistorico struct {
	ID    string    `json:"id" validate:"required"`
	Valor float64   `json:"valor" validate:"gte=0"`
	Data  time.Time `json:"data"`
	Local string    `json:"local,omitempty"`
}

// Produto is a product the user buys, with its price history in chronological order
type Produto struct {
	ID               string           `json:"id" validate:"required"`
	Nome             string           `json:"nome" validate:"required"`
	CategoriaID      string           `json:"categoriaId"`
	Unidade          string           `json:"unidade" validate:"required"`
	Precos           []PrecoHistorico `json:"precos" validate:"dive"`
	Foto             string           `json:"foto,omitempty"`
	Marca            string           `json:"marca,omitempty"`
	QuantidadePadrao *float64         `json:"quantidadePadrao,omitempty" validate:"omitempty,gt=0"`
}

// ItemLista is a product entry inside a shopping list
type ItemLista struct {
	ID          string   `json:"id" validate:"required"`
	ProdutoID   string   `json:"produtoId" validate:"required"`
	Quantidade  float64  `json:"quantidade" validate:"gt=0"`
	Comprado    bool     `json:"comprado"`
	PrecoCompra *float64 `json:"precoCompra,omitempty" validate:"omitempty,gte=0"`
}

// Lista is a shopping list
type Lista struct {
	ID            string      `json:"id" validate:"required"`
	Nome          string      `json:"nome" validate:"required"`
	DataCriacao   time.Time   `json:"dataCriacao"`
	Itens         []ItemLista `json:"itens" validate:"dive"`
	Concluida     bool        `json:"concluida"`
	DataConclusao *time.Time  `json:"dataConclusao,omitempty"`
	TotalGasto    *float64    `json:"totalGasto,omitempty"`
}

// Snapshot is the complete shopping data of one user
type Snapshot struct {
	Categorias []Categoria `json:"categorias" validate:"dive"`
	Produtos   []Produto   `json:"produtos" validate:"dive"`
	Listas     []Lista     `json:"listas" validate:"dive"`
}

var (
	validate      *validator.Validate
	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return hexColorRegex.MatchString(fl.Field().String())
	})
}

// Validate checks field rules and cross references inside the snapshot
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &coreerrors.ValidationError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Snapshot."),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			}
		}
		return &coreerrors.ValidationError{Field: "snapshot", Message: err.Error()}
	}

	produtos := make(map[string]bool, len(s.Produtos))
	for _, p := range s.Produtos {
		if produtos[p.ID] {
			return &coreerrors.ValidationError{Field: "produtos", Message: "duplicate product id " + p.ID}
		}
		produtos[p.ID] = true
	}

	for _, l := range s.Listas {
		for _, item := range l.Itens {
			if !produtos[item.ProdutoID] {
				return &coreerrors.ValidationError{
					Field:   "listas",
					Message: fmt.Sprintf("list %s references unknown product %s", l.ID, item.ProdutoID),
				}
			}
		}
	}

	return nil
}

// FindProduto returns the product with the given id
func (s *Snapshot) FindProduto(id string) (*Produto, bool) {
	for i := range s.Produtos {
		if s.Produtos[i].ID == id {
			return &s.Produtos[i], true
		}
	}
	return nil, false
}

// FindLista returns the list with the given id
func (s *Snapshot) FindLista(id string) (*Lista, bool) {
	for i := range s.Listas {
		if s.Listas[i].ID == id {
			return &s.Listas[i], true
		}
	}
	return nil, false
}

// HasProdutoNamed reports whether a product with the same name exists, ignoring case
func (s *Snapshot) HasProdutoNamed(nome string) bool {
	for _, p := range s.Produtos {
		if strings.EqualFold(p.Nome, nome) {
			return true
		}
	}
	return false
}

// LatestPrice returns the most recent recorded price
func (p *Produto) LatestPrice() (float64, bool) {
	if len(p.Precos) == 0 {
		return 0, false
	}
	return p.Precos[len(p.Precos)-1].Valor, true
}

// ImportResult reports the outcome of importing shared products
type ImportResult struct {
	// Imported holds the products added to the snapshot, with their new ids
	Imported []Produto

	// Skipped holds the names of products that already existed
	Skipped []string
}
