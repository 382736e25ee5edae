package product

import (
	"context"
	"errors"
	"fmt"

	"azharstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("component", "product_repo").Logger()}
}

const productColumns = `p.id, p.name, p.description, p.price::text, p.stock_quantity, p.category_id, c.name`

func scanProduct(rows pgx.Rows) (*domain.Product, error) {
	var p domain.Product
	var price string
	var categoryName *string
	if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.StockQuantity, &p.CategoryID, &categoryName); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	p.Price = d
	if p.CategoryID != nil && categoryName != nil {
		p.Category = &domain.Category{ID: *p.CategoryID, Name: *categoryName}
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE 1=1`
	args := []any{}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		q += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}
	q += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("list products")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachChildren(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	single := []domain.Product{*p}
	if err := r.attachChildren(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (r *postgresRepo) GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	const q = `
SELECT id, product_id, name, price::text, stock_quantity, image_url
FROM product_variants
WHERE id = $1
`
	var v domain.ProductVariant
	var price string
	err := r.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.ProductID, &v.Name, &price, &v.StockQuantity, &v.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse variant price: %w", err)
	}
	v.Price = d
	return &v, nil
}

// attachChildren loads images and variants for every product in one query per
// child table.
func (r *postgresRepo) attachChildren(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	index := make(map[int64]*domain.Product, len(products))
	ids := make([]int64, 0, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
		ids = append(ids, products[i].ID)
	}

	imgRows, err := r.pool.Query(ctx, `
SELECT id, product_id, image_url, is_primary, created_at
FROM product_images
WHERE product_id = ANY($1)
ORDER BY is_primary DESC, id
`, ids)
	if err != nil {
		return err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img domain.ProductImage
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.IsPrimary, &img.CreatedAt); err != nil {
			return err
		}
		if p, ok := index[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return err
	}

	varRows, err := r.pool.Query(ctx, `
SELECT id, product_id, name, price::text, stock_quantity, image_url
FROM product_variants
WHERE product_id = ANY($1)
ORDER BY id
`, ids)
	if err != nil {
		return err
	}
	defer varRows.Close()
	for varRows.Next() {
		var v domain.ProductVariant
		var price string
		if err := varRows.Scan(&v.ID, &v.ProductID, &v.Name, &price, &v.StockQuantity, &v.ImageURL); err != nil {
			return err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("parse variant price: %w", err)
		}
		v.Price = d
		if p, ok := index[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return varRows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO products (name, description, price, stock_quantity, category_id)
VALUES ($1, $2, $3::numeric, $4, $5)
RETURNING id, created_at
`
	if err := tx.QueryRow(ctx, q, p.Name, p.Description, p.Price.String(), p.StockQuantity, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("create product")
		return nil, err
	}

	if err := r.writeChildren(ctx, tx, &p); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info().Int64("id", p.ID).Str("name", p.Name).Msg("product created")
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE products
SET name = $2,
    description = $3,
    price = $4::numeric,
    stock_quantity = $5,
    category_id = $6
WHERE id = $1
`
	tag, err := tx.Exec(ctx, q, p.ID, p.Name, p.Description, p.Price.String(), p.StockQuantity, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	// Children are replaced wholesale; order items reference variants by id,
	// so variants are only deleted when no longer listed.
	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, p.ID); err != nil {
		return nil, err
	}
	keep := make([]int64, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.ID != 0 {
			keep = append(keep, v.ID)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1 AND NOT (id = ANY($2))`, p.ID, keep); err != nil {
		return nil, err
	}
	if err := r.writeChildren(ctx, tx, &p); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) writeChildren(ctx context.Context, tx pgx.Tx, p *domain.Product) error {
	for i := range p.Images {
		img := &p.Images[i]
		if err := tx.QueryRow(ctx, `
INSERT INTO product_images (product_id, image_url, is_primary)
VALUES ($1, $2, $3)
RETURNING id
`, p.ID, img.ImageURL, img.IsPrimary).Scan(&img.ID); err != nil {
			return err
		}
		img.ProductID = p.ID
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID != 0 {
			if _, err := tx.Exec(ctx, `
UPDATE product_variants
SET name = $2, price = $3::numeric, stock_quantity = $4, image_url = $5
WHERE id = $1 AND product_id = $6
`, v.ID, v.Name, v.Price.String(), v.StockQuantity, v.ImageURL, p.ID); err != nil {
				return err
			}
			continue
		}
		if err := tx.QueryRow(ctx, `
INSERT INTO product_variants (product_id, name, price, stock_quantity, image_url)
VALUES ($1, $2, $3::numeric, $4, $5)
RETURNING id
`, p.ID, v.Name, v.Price.String(), v.StockQuantity, v.ImageURL).Scan(&v.ID); err != nil {
			return err
		}
		v.ProductID = p.ID
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Int64("id", id).Msg("product deleted")
	return nil
}
