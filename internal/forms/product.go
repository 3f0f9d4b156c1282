package forms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// ProductValues are the inputs of the product form. Price is the text the user
// typed, e.g. "19.99".
type ProductValues struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID string `json:"categoryId"`
	IsFeatured bool   `json:"isFeatured"`
	IsArchived bool   `json:"isArchived"`
}

// Price validation messages.
const (
	PriceNotANumber = "Expected number, received nan"
	PriceTooSmall   = "Number must be greater than 0"
	PriceTooLarge   = "Number is too large"
)

// ErrPriceOutOfRange is returned by ParsePrice when the amount does not fit
// in int64 minor units.
var ErrPriceOutOfRange = errors.New("price out of range")

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParsePrice converts a decimal price to minor units, rounding half away from zero.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, fmt.Errorf("invalid price %q: %w", s, ErrPriceOutOfRange)
	}
	return cents.IntPart(), nil
}

// priceRule accepts exactly the prices ParsePrice turns into at least one cent.
func priceRule(value string) (string, bool) {
	cents, err := ParsePrice(value)
	switch {
	case errors.Is(err, ErrPriceOutOfRange):
		return PriceTooLarge, false
	case err != nil:
		return PriceNotANumber, false
	case cents < 1:
		return PriceTooSmall, false
	}
	return "", true
}

// FormatPrice renders minor units as a decimal price with two places.
func FormatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ProductDefinition describes the product form. productID is empty in create mode.
func ProductDefinition(c API, storeID, productID string) formflow.Definition[ProductValues] {
	list := ProductsPath(storeID)

	def := formflow.Definition[ProductValues]{
		Entity: "product",
		Create: formflow.Labels{
			Title:       "Create product",
			Description: "Add a new product",
			Action:      "Create",
			SubmitToast: "Product created.",
		},
		Edit: formflow.Labels{
			Title:       "Edit product",
			Description: "Edit a product.",
			Action:      "Save changes",
			SubmitToast: "Product updated.",
		},
		Schema: formflow.Schema[ProductValues]{
			{Name: "name", Value: func(v ProductValues) string { return v.Name }, Rules: []formflow.Rule{formflow.MinLen(1)}},
			{Name: "price", Value: func(v ProductValues) string { return v.Price }, Rules: []formflow.Rule{
				formflow.MinLen(1),
				priceRule,
			}},
			{Name: "categoryId", Value: func(v ProductValues) string { return v.CategoryID }, Rules: []formflow.Rule{formflow.MinLen(1)}},
		},
		Submit: func(ctx context.Context, mode formflow.Mode, v ProductValues) (formflow.Result, error) {
			cents, err := ParsePrice(v.Price)
			if err != nil {
				return formflow.Result{}, err
			}
			req := api.ProductRequest{
				Name:       v.Name,
				PriceCents: cents,
				CategoryID: v.CategoryID,
				IsFeatured: v.IsFeatured,
				IsArchived: v.IsArchived,
			}

			var p *core.Product
			if mode == formflow.ModeEdit {
				p, err = c.UpdateProduct(ctx, storeID, productID, req)
			} else {
				p, err = c.CreateProduct(ctx, storeID, req)
			}
			if err != nil {
				return formflow.Result{}, err
			}
			return formflow.Result{ID: p.ID}, nil
		},
		AfterSubmit: func(formflow.Mode, formflow.Result) formflow.Navigation {
			return formflow.Navigation{Refresh: true, Push: list}
		},
		SubmitFailure: formflow.DefaultFailure,
		AfterDelete:   formflow.Navigation{Refresh: true, Push: list},
		DeleteSuccess: "Product deleted.",
		DeleteFailure: formflow.DefaultFailure,
	}
	if productID != "" {
		def.Delete = func(ctx context.Context) error {
			return c.DeleteProduct(ctx, storeID, productID)
		}
	}
	return def
}

// NewProductForm opens the product form. A nil product opens it in create mode.
func NewProductForm(c API, storeID string, p *core.Product, pr formflow.Presenter) *formflow.Form[ProductValues] {
	if p == nil {
		return formflow.New(ProductDefinition(c, storeID, ""), nil, pr)
	}
	initial := ProductValues{
		Name:       p.Name,
		Price:      FormatPrice(p.PriceCents),
		CategoryID: p.CategoryID,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
	}
	return formflow.New(ProductDefinition(c, storeID, p.ID), &initial, pr)
}
