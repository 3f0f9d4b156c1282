package core

import "time"

// Store is a shop owned by a single user. Every other entity is scoped to a store.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Billboard is a labelled hero image shown at the top of a storefront category.
type Billboard struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category groups products and references the billboard it is displayed with.
type Category struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	BillboardID string    `json:"billboardId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Product is a sellable item. Price is kept in minor currency units.
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"storeId"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	IsFeatured bool      `json:"isFeatured"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID      string
	FeaturedOnly    bool
	IncludeArchived bool
}
