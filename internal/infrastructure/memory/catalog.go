package memory

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

// catalogFile formato del archivo YAML de carga inicial.
type catalogFile struct {
	Products []catalogProduct `yaml:"products"`
}

type catalogProduct struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Brand string `yaml:"brand"`
	Model string `yaml:"model"`
	Price string `yaml:"price"` // texto para no perder precisión decimal
	Stock int    `yaml:"stock"`
}

// DefaultCatalog productos de ejemplo cuando no se configura un archivo.
func DefaultCatalog() []entity.Product {
	return []entity.Product{
		{ID: "p1", Name: "Camiseta XYZ", Brand: "MarcaA", Model: "M", Price: decimal.NewFromFloat(50.0), Stock: 10},
		{ID: "p2", Name: "Caneca Legal", Brand: "MarcaB", Model: "C1", Price: decimal.NewFromFloat(25.0), Stock: 0},
	}
}

// LoadCatalog lee los productos desde un archivo YAML.
func LoadCatalog(path string) ([]entity.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodifica el contenido YAML del catálogo.
func ParseCatalog(data []byte) ([]entity.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsear catálogo: %w", err)
	}
	out := make([]entity.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("producto %d: id es requerido", i)
		}
		price := decimal.Zero
		if p.Price != "" {
			var err error
			price, err = decimal.NewFromString(p.Price)
			if err != nil {
				return nil, fmt.Errorf("producto %s: precio inválido: %w", p.ID, err)
			}
		}
		out = append(out, entity.Product{
			ID:    p.ID,
			Name:  p.Name,
			Brand: p.Brand,
			Model: p.Model,
			Price: price,
			Stock: p.Stock,
		})
	}
	return out, nil
}

// Seed carga los productos en el store; falla en el primer producto inválido o duplicado.
func Seed(store *InventoryStore, products []entity.Product) error {
	for _, p := range products {
		if err := store.Add(p); err != nil {
			return fmt.Errorf("cargar producto %s: %w", p.ID, err)
		}
	}
	return nil
}
