package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leapstack-labs/shopdash/pkg/core"
)

const billboardColumns = `id, store_id, label, image_url, created_at, updated_at`

func scanBillboard(row interface{ Scan(...any) error }) (*core.Billboard, error) {
	b := &core.Billboard{}
	if err := row.Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBillboard inserts a billboard. ID and timestamps are assigned here.
func (s *SQLStore) CreateBillboard(ctx context.Context, b *core.Billboard) error {
	if err := s.ready(); err != nil {
		return err
	}

	ts := now()
	b.ID = generateID()
	b.CreatedAt = ts
	b.UpdatedAt = ts

	_, err := s.exec(ctx,
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.StoreID, b.Label, b.ImageURL, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create billboard: %w", err)
	}
	return nil
}

// GetBillboard retrieves a billboard of a store.
func (s *SQLStore) GetBillboard(ctx context.Context, storeID, id string) (*core.Billboard, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	b, err := scanBillboard(s.queryRow(ctx,
		`SELECT `+billboardColumns+` FROM billboards WHERE id = ? AND store_id = ?`, id, storeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("billboard %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billboard: %w", err)
	}
	return b, nil
}

// ListBillboards returns the billboards of a store, newest first.
func (s *SQLStore) ListBillboards(ctx context.Context, storeID string) ([]*core.Billboard, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT `+billboardColumns+` FROM billboards WHERE store_id = ? ORDER BY created_at DESC, id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billboards: %w", err)
	}
	defer rows.Close()

	var out []*core.Billboard
	for rows.Next() {
		b, err := scanBillboard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billboard: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBillboard saves label and image of an existing billboard.
func (s *SQLStore) UpdateBillboard(ctx context.Context, b *core.Billboard) error {
	if err := s.ready(); err != nil {
		return err
	}

	b.UpdatedAt = now()
	res, err := s.exec(ctx,
		`UPDATE billboards SET label = ?, image_url = ?, updated_at = ? WHERE id = ? AND store_id = ?`,
		b.Label, b.ImageURL, b.UpdatedAt, b.ID, b.StoreID,
	)
	if err != nil {
		return fmt.Errorf("failed to update billboard: %w", err)
	}
	return affected(res, "billboard", b.ID)
}

// DeleteBillboard removes a billboard. It fails with core.ErrConflict while
// categories still reference it.
func (s *SQLStore) DeleteBillboard(ctx context.Context, storeID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	n, err := s.count(ctx, `SELECT COUNT(*) FROM categories WHERE billboard_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("billboard %s is used by %d categories: %w", id, n, core.ErrConflict)
	}

	res, err := s.exec(ctx, `DELETE FROM billboards WHERE id = ? AND store_id = ?`, id, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete billboard: %w", err)
	}
	return affected(res, "billboard", id)
}
