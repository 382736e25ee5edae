// Package importer loads a JSON catalog export into the database, creating
// categories on the fly and upserting products with their images and
// variants.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"azharstore/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

type catalogFile struct {
	Products []productEntry `json:"products"`
}

type productEntry struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         string         `json:"price"`
	StockQuantity *int           `json:"stock_quantity"`
	Category      string         `json:"category"`
	Images        []imageEntry   `json:"images"`
	Variants      []variantEntry `json:"variants"`
}

type imageEntry struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type variantEntry struct {
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	StockQuantity *int    `json:"stock_quantity"`
	ImageURL      *string `json:"image_url"`
}

// JSONImporter reads one catalog file and writes it through the repositories.
type JSONImporter struct {
	reader     io.Reader
	products   ProductWriter
	categories CategoryStore
}

func NewJSONImporter(r io.Reader, products ProductWriter, categories CategoryStore) *JSONImporter {
	return &JSONImporter{reader: r, products: products, categories: categories}
}

// Run imports every product in the file and returns how many were written.
// The first error stops the import; earlier writes are not rolled back.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var file catalogFile
	if err := json.NewDecoder(i.reader).Decode(&file); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	existing, err := i.categories.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	imported := 0
	for _, entry := range file.Products {
		p, err := i.toDomain(ctx, entry, byName)
		if err != nil {
			return imported, fmt.Errorf("product %q: %w", entry.Name, err)
		}
		if _, err := i.products.Create(ctx, p); err != nil {
			return imported, fmt.Errorf("create product %q: %w", entry.Name, err)
		}
		imported++
	}
	return imported, nil
}

func (i *JSONImporter) toDomain(ctx context.Context, entry productEntry, byName map[string]int64) (domain.Product, error) {
	if strings.TrimSpace(entry.Name) == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	price, err := decimal.NewFromString(entry.Price)
	if err != nil || price.IsNegative() {
		return domain.Product{}, fmt.Errorf("bad price %q", entry.Price)
	}

	p := domain.Product{
		Name:          entry.Name,
		Description:   entry.Description,
		Price:         price,
		StockQuantity: entry.StockQuantity,
	}

	if entry.Category != "" {
		key := strings.ToLower(entry.Category)
		id, ok := byName[key]
		if !ok {
			created, err := i.categories.Create(ctx, entry.Category)
			if err != nil {
				return domain.Product{}, fmt.Errorf("create category %q: %w", entry.Category, err)
			}
			id = created.ID
			byName[key] = id
		}
		p.CategoryID = &id
	}

	for _, img := range entry.Images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		p.Images = append(p.Images, domain.ProductImage{ImageURL: img.URL, IsPrimary: img.IsPrimary})
	}

	for _, v := range entry.Variants {
		vp := decimal.Zero
		if v.Price != "" {
			if vp, err = decimal.NewFromString(v.Price); err != nil || vp.IsNegative() {
				return domain.Product{}, fmt.Errorf("bad variant price %q", v.Price)
			}
		}
		p.Variants = append(p.Variants, domain.ProductVariant{
			Name:          v.Name,
			Price:         vp,
			StockQuantity: v.StockQuantity,
			ImageURL:      v.ImageURL,
		})
	}
	return p, nil
}
