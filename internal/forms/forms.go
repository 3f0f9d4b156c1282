package forms

import (
	"context"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// API is the subset of client.Client the forms call.
type API interface {
	CreateStore(ctx context.Context, name string) (*core.Store, error)
	UpdateStore(ctx context.Context, id, name string) (*core.Store, error)
	DeleteStore(ctx context.Context, id string) error

	CreateBillboard(ctx context.Context, storeID string, in api.BillboardRequest) (*core.Billboard, error)
	UpdateBillboard(ctx context.Context, storeID, id string, in api.BillboardRequest) (*core.Billboard, error)
	DeleteBillboard(ctx context.Context, storeID, id string) error

	CreateCategory(ctx context.Context, storeID string, in api.CategoryRequest) (*core.Category, error)
	UpdateCategory(ctx context.Context, storeID, id string, in api.CategoryRequest) (*core.Category, error)
	DeleteCategory(ctx context.Context, storeID, id string) error

	CreateProduct(ctx context.Context, storeID string, in api.ProductRequest) (*core.Product, error)
	UpdateProduct(ctx context.Context, storeID, id string, in api.ProductRequest) (*core.Product, error)
	DeleteProduct(ctx context.Context, storeID, id string) error
}

// Dashboard paths the forms navigate to.

// BillboardsPath is the billboard list of a store.
func BillboardsPath(storeID string) string { return "/" + storeID + "/billboards" }

// CategoriesPath is the category list of a store.
func CategoriesPath(storeID string) string { return "/" + storeID + "/categories" }

// ProductsPath is the product list of a store.
func ProductsPath(storeID string) string { return "/" + storeID + "/products" }

// StorePath is the overview page of a store.
func StorePath(storeID string) string { return "/" + storeID }
