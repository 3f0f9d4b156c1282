package forms

import (
	"context"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// CategoryValues are the inputs of the category form.
type CategoryValues struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

// CategoryDeleteFailure is shown when products still use the category.
const CategoryDeleteFailure = "Make sure you removed all products using this category first."

// CategoryDefinition describes the category form. categoryID is empty in create mode.
func CategoryDefinition(c API, storeID, categoryID string) formflow.Definition[CategoryValues] {
	list := CategoriesPath(storeID)

	def := formflow.Definition[CategoryValues]{
		Entity: "category",
		Create: formflow.Labels{
			Title:       "Create category",
			Description: "Add a new category",
			Action:      "Create",
			SubmitToast: "Category created.",
		},
		Edit: formflow.Labels{
			Title:       "Edit category",
			Description: "Edit a category.",
			Action:      "Save changes",
			SubmitToast: "Category updated.",
		},
		Schema: formflow.Schema[CategoryValues]{
			{Name: "name", Value: func(v CategoryValues) string { return v.Name }, Rules: []formflow.Rule{formflow.MinLen(1)}},
			{Name: "billboardId", Value: func(v CategoryValues) string { return v.BillboardID }, Rules: []formflow.Rule{formflow.MinLen(1)}},
		},
		Submit: func(ctx context.Context, mode formflow.Mode, v CategoryValues) (formflow.Result, error) {
			req := api.CategoryRequest{Name: v.Name, BillboardID: v.BillboardID}
			var (
				cat *core.Category
				err error
			)
			if mode == formflow.ModeEdit {
				cat, err = c.UpdateCategory(ctx, storeID, categoryID, req)
			} else {
				cat, err = c.CreateCategory(ctx, storeID, req)
			}
			if err != nil {
				return formflow.Result{}, err
			}
			return formflow.Result{ID: cat.ID}, nil
		},
		AfterSubmit: func(formflow.Mode, formflow.Result) formflow.Navigation {
			return formflow.Navigation{Refresh: true, Push: list}
		},
		SubmitFailure: formflow.DefaultFailure,
		AfterDelete:   formflow.Navigation{Refresh: true, Push: list},
		DeleteSuccess: "Category deleted.",
		DeleteFailure: CategoryDeleteFailure,
	}
	if categoryID != "" {
		def.Delete = func(ctx context.Context) error {
			return c.DeleteCategory(ctx, storeID, categoryID)
		}
	}
	return def
}

// NewCategoryForm opens the category form. A nil category opens it in create mode.
func NewCategoryForm(c API, storeID string, cat *core.Category, p formflow.Presenter) *formflow.Form[CategoryValues] {
	if cat == nil {
		return formflow.New(CategoryDefinition(c, storeID, ""), nil, p)
	}
	initial := CategoryValues{Name: cat.Name, BillboardID: cat.BillboardID}
	return formflow.New(CategoryDefinition(c, storeID, cat.ID), &initial, p)
}
