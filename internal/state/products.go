package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

const productColumns = `id, store_id, category_id, name, price_cents, is_featured, is_archived, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*core.Product, error) {
	p := &core.Product{}
	err := row.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.Name, &p.PriceCents,
		&p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct inserts a product. The category must belong to the same store.
func (s *SQLStore) CreateProduct(ctx context.Context, p *core.Product) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetCategory(ctx, p.StoreID, p.CategoryID); err != nil {
		return err
	}

	ts := now()
	p.ID = generateID()
	p.CreatedAt = ts
	p.UpdatedAt = ts

	_, err := s.exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.StoreID, p.CategoryID, p.Name, p.PriceCents, p.IsFeatured, p.IsArchived, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product of a store.
func (s *SQLStore) GetProduct(ctx context.Context, storeID, id string) (*core.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.queryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND store_id = ?`, id, storeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// ListProducts returns the products of a store, newest first. Archived products
// are excluded unless the filter asks for them.
func (s *SQLStore) ListProducts(ctx context.Context, storeID string, filter core.ProductFilter) ([]*core.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	where := []string{"store_id = ?"}
	args := []any{storeID}
	if filter.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.FeaturedOnly {
		where = append(where, "is_featured = ?")
		args = append(args, true)
	}
	if !filter.IncludeArchived {
		where = append(where, "is_archived = ?")
		args = append(args, false)
	}

	rows, err := s.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+strings.Join(where, " AND ")+` ORDER BY created_at DESC, id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []*core.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProduct saves every editable field of an existing product.
func (s *SQLStore) UpdateProduct(ctx context.Context, p *core.Product) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetCategory(ctx, p.StoreID, p.CategoryID); err != nil {
		return err
	}

	p.UpdatedAt = now()
	res, err := s.exec(ctx,
		`UPDATE products SET name = ?, category_id = ?, price_cents = ?, is_featured = ?, is_archived = ?, updated_at = ?
		 WHERE id = ? AND store_id = ?`,
		p.Name, p.CategoryID, p.PriceCents, p.IsFeatured, p.IsArchived, p.UpdatedAt, p.ID, p.StoreID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return affected(res, "product", p.ID)
}

// DeleteProduct removes a product.
func (s *SQLStore) DeleteProduct(ctx context.Context, storeID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.exec(ctx, `DELETE FROM products WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return affected(res, "product", id)
}
