package core

import "context"

// Repository defines persistence operations for the dashboard.
// Store-scoped getters return ErrNotFound when the entity does not belong to storeID.
type Repository interface {
	Close() error

	// Store operations
	CreateStore(ctx context.Context, userID, name string) (*Store, error)
	GetStore(ctx context.Context, id string) (*Store, error)
	GetStoreForUser(ctx context.Context, id, userID string) (*Store, error)
	ListStores(ctx context.Context, userID string) ([]*Store, error)
	RenameStore(ctx context.Context, id, name string) (*Store, error)
	DeleteStore(ctx context.Context, id string) error

	// Billboard operations
	CreateBillboard(ctx context.Context, b *Billboard) error
	GetBillboard(ctx context.Context, storeID, id string) (*Billboard, error)
	ListBillboards(ctx context.Context, storeID string) ([]*Billboard, error)
	UpdateBillboard(ctx context.Context, b *Billboard) error
	DeleteBillboard(ctx context.Context, storeID, id string) error

	// Category operations
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, storeID, id string) (*Category, error)
	ListCategories(ctx context.Context, storeID string) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, storeID, id string) error

	// Product operations
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, storeID, id string) (*Product, error)
	ListProducts(ctx context.Context, storeID string, filter ProductFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, storeID, id string) error

	// Counts for the overview page
	CountEntities(ctx context.Context, storeID string) (EntityCounts, error)
}

// EntityCounts summarises a store for the overview page.
type EntityCounts struct {
	Billboards int
	Categories int
	Products   int
	Featured   int
}
