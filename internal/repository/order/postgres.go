package order

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
	return &postgresRepo{pool: pool, logger: logger.With().Str("component", "order_repo").Logger()}
}

const orderColumns = `
o.id, o.customer_id, o.status, o.shipping_method, o.comments,
o.delivery_area_id, o.delivery_fee::text, o.total_price::text, o.created_at,
c.name, c.phone_number, c.town, c.address_road, c.address_home, c.address_block, c.created_at,
a.name, a.price::text`

func scanOrder(rows pgx.Rows) (*domain.Order, error) {
	var o domain.Order
	var cust domain.Customer
	var fee, total string
	var areaName, areaPrice *string

	if err := rows.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.ShippingMethod, &o.Comments,
		&o.DeliveryAreaID, &fee, &total, &o.CreatedAt,
		&cust.Name, &cust.PhoneNumber, &cust.Town, &cust.AddressRoad, &cust.AddressHome, &cust.AddressBlock, &cust.CreatedAt,
		&areaName, &areaPrice,
	); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(fee)
	if err != nil {
		return nil, fmt.Errorf("parse delivery fee: %w", err)
	}
	o.DeliveryFee = d
	if d, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	o.TotalPrice = d

	cust.ID = o.CustomerID
	o.Customer = &cust

	if o.DeliveryAreaID != nil && areaName != nil && areaPrice != nil {
		p, err := decimal.NewFromString(*areaPrice)
		if err != nil {
			return nil, fmt.Errorf("parse area price: %w", err)
		}
		o.DeliveryArea = &domain.DeliveryArea{ID: *o.DeliveryAreaID, Name: *areaName, Price: p}
	}
	return &o, nil
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
LEFT JOIN delivery_areas a ON a.id = o.delivery_area_id
WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		q += fmt.Sprintf(" AND o.customer_id = $%d", len(args))
	}
	q += " ORDER BY o.created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("list orders")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
LEFT JOIN delivery_areas a ON a.id = o.delivery_area_id
WHERE o.id = $1
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
	o, err := scanOrder(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	single := []domain.Order{*o}
	if err := r.attachItems(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// attachItems loads order items for every order in one query, including the
// product or variant each item points at.
func (r *postgresRepo) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = &orders[i]
		ids = append(ids, orders[i].ID)
	}

	rows, err := r.pool.Query(ctx, `
SELECT i.id, i.order_id, i.product_id, i.product_variant_id, i.quantity,
       p.name, p.price::text,
       v.product_id, v.name, v.price::text,
       vp.name, vp.price::text
FROM order_items i
LEFT JOIN products p ON p.id = i.product_id
LEFT JOIN product_variants v ON v.id = i.product_variant_id
LEFT JOIN products vp ON vp.id = v.product_id
WHERE i.order_id = ANY($1)
ORDER BY i.id
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var pName, pPrice *string
		var vProductID *int64
		var vName, vPrice *string
		var vpName, vpPrice *string
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductVariantID, &item.Quantity,
			&pName, &pPrice,
			&vProductID, &vName, &vPrice,
			&vpName, &vpPrice,
		); err != nil {
			return err
		}

		if item.ProductID != nil && pName != nil && pPrice != nil {
			price, err := decimal.NewFromString(*pPrice)
			if err != nil {
				return err
			}
			item.Product = &domain.Product{ID: *item.ProductID, Name: *pName, Price: price}
		}
		if item.ProductVariantID != nil && vName != nil && vPrice != nil {
			price, err := decimal.NewFromString(*vPrice)
			if err != nil {
				return err
			}
			variant := &domain.ProductVariant{ID: *item.ProductVariantID, Name: *vName, Price: price}
			if vProductID != nil {
				variant.ProductID = *vProductID
			}
			item.ProductVariant = variant
			if vProductID != nil && vpName != nil && vpPrice != nil {
				price, err := decimal.NewFromString(*vpPrice)
				if err != nil {
					return err
				}
				item.Product = &domain.Product{ID: *vProductID, Name: *vpName, Price: price}
			}
		}

		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (customer_id, status, shipping_method, comments, delivery_area_id, delivery_fee, total_price)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric)
RETURNING id, created_at
`
	if err := tx.QueryRow(ctx, q,
		o.CustomerID, o.Status, o.ShippingMethod, o.Comments, o.DeliveryAreaID,
		o.DeliveryFee.String(), o.TotalPrice.String(),
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		r.logger.Error().Err(err).Int64("customer_id", o.CustomerID).Msg("create order")
		return nil, err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, product_variant_id, quantity)
VALUES ($1, $2, $3, $4)
`, o.ID, item.ProductID, item.ProductVariantID, item.Quantity); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info().Int64("id", o.ID).Str("method", o.ShippingMethod).Str("total", o.TotalPrice.String()).Msg("order created")
	return r.GetByID(ctx, o.ID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status string, comments *string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2,
    comments = COALESCE($3, comments)
WHERE id = $1
RETURNING id
`
	var updated int64
	if err := r.pool.QueryRow(ctx, q, id, status, comments).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
