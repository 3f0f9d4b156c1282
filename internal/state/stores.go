package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

const storeColumns = `id, name, user_id, created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }) (*core.Store, error) {
	st := &core.Store{}
	if err := row.Scan(&st.ID, &st.Name, &st.UserID, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return st, nil
}

// CreateStore creates a store owned by userID.
func (s *SQLStore) CreateStore(ctx context.Context, userID, name string) (*core.Store, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	ts := now()
	st := &core.Store{
		ID:        generateID(),
		Name:      name,
		UserID:    userID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := s.exec(ctx,
		`INSERT INTO stores (id, name, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.UserID, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.logger.Debug("store created", "store_id", st.ID, "user_id", userID)
	return st, nil
}

// GetStore retrieves a store by ID regardless of owner.
func (s *SQLStore) GetStore(ctx context.Context, id string) (*core.Store, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	st, err := scanStore(s.queryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return st, nil
}

// GetStoreForUser retrieves a store only if userID owns it.
func (s *SQLStore) GetStoreForUser(ctx context.Context, id, userID string) (*core.Store, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	st, err := scanStore(s.queryRow(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return st, nil
}

// ListStores returns the stores owned by userID, oldest first.
func (s *SQLStore) ListStores(ctx context.Context, userID string) ([]*core.Store, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []*core.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, st)
	}
	return stores, rows.Err()
}

// RenameStore updates the store name.
func (s *SQLStore) RenameStore(ctx context.Context, id, name string) (*core.Store, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	res, err := s.exec(ctx, `UPDATE stores SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to rename store: %w", err)
	}
	if err := affected(res, "store", id); err != nil {
		return nil, err
	}
	return s.GetStore(ctx, id)
}

// DeleteStore removes a store. It fails with core.ErrConflict while the store
// still has billboards, categories or products.
func (s *SQLStore) DeleteStore(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	counts, err := s.CountEntities(ctx, id)
	if err != nil {
		return err
	}
	if counts.Billboards+counts.Categories+counts.Products > 0 {
		return fmt.Errorf("store %s still has billboards, categories or products: %w", id, core.ErrConflict)
	}

	res, err := s.exec(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return affected(res, "store", id)
}

// CountEntities summarises a store for the overview page.
func (s *SQLStore) CountEntities(ctx context.Context, storeID string) (core.EntityCounts, error) {
	var c core.EntityCounts
	if err := s.ready(); err != nil {
		return c, err
	}

	var err error
	if c.Billboards, err = s.count(ctx, `SELECT COUNT(*) FROM billboards WHERE store_id = ?`, storeID); err != nil {
		return c, fmt.Errorf("failed to count billboards: %w", err)
	}
	if c.Categories, err = s.count(ctx, `SELECT COUNT(*) FROM categories WHERE store_id = ?`, storeID); err != nil {
		return c, fmt.Errorf("failed to count categories: %w", err)
	}
	if c.Products, err = s.count(ctx, `SELECT COUNT(*) FROM products WHERE store_id = ?`, storeID); err != nil {
		return c, fmt.Errorf("failed to count products: %w", err)
	}
	if c.Featured, err = s.count(ctx,
		`SELECT COUNT(*) FROM products WHERE store_id = ? AND is_featured = ? AND is_archived = ?`,
		storeID, true, false); err != nil {
		return c, fmt.Errorf("failed to count featured products: %w", err)
	}
	return c, nil
}
