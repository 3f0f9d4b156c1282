package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

const categoryColumns = `id, store_id, billboard_id, name, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*core.Category, error) {
	c := &core.Category{}
	if err := row.Scan(&c.ID, &c.StoreID, &c.BillboardID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCategory inserts a category. The billboard must belong to the same store.
func (s *SQLStore) CreateCategory(ctx context.Context, c *core.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetBillboard(ctx, c.StoreID, c.BillboardID); err != nil {
		return err
	}

	ts := now()
	c.ID = generateID()
	c.CreatedAt = ts
	c.UpdatedAt = ts

	_, err := s.exec(ctx,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.StoreID, c.BillboardID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category of a store.
func (s *SQLStore) GetCategory(ctx context.Context, storeID, id string) (*core.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	c, err := scanCategory(s.queryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND store_id = ?`, id, storeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategories returns the categories of a store, newest first.
func (s *SQLStore) ListCategories(ctx context.Context, storeID string) ([]*core.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE store_id = ? ORDER BY created_at DESC, id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []*core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCategory saves name and billboard of an existing category.
func (s *SQLStore) UpdateCategory(ctx context.Context, c *core.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.GetBillboard(ctx, c.StoreID, c.BillboardID); err != nil {
		return err
	}

	c.UpdatedAt = now()
	res, err := s.exec(ctx,
		`UPDATE categories SET name = ?, billboard_id = ?, updated_at = ? WHERE id = ? AND store_id = ?`,
		c.Name, c.BillboardID, c.UpdatedAt, c.ID, c.StoreID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return affected(res, "category", c.ID)
}

// DeleteCategory removes a category. It fails with core.ErrConflict while
// products still reference it.
func (s *SQLStore) DeleteCategory(ctx context.Context, storeID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	n, err := s.count(ctx, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("category %s is used by %d products: %w", id, n, core.ErrConflict)
	}

	res, err := s.exec(ctx, `DELETE FROM categories WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return affected(res, "category", id)
}
