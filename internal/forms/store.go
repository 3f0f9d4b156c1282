package forms

import (
	"context"

	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// StoreValues are the inputs of the settings form and the store modal.
type StoreValues struct {
	Name string `json:"name"`
}

// StoreNamePlaceholder is the placeholder of the store name input.
const StoreNamePlaceholder = "Web-shop"

var storeSchema = formflow.Schema[StoreValues]{
	{Name: "name", Value: func(v StoreValues) string { return v.Name }, Rules: []formflow.Rule{formflow.MinLen(1)}},
}

// SettingsDefinition describes the settings form of an existing store.
func SettingsDefinition(c API, storeID string) formflow.Definition[StoreValues] {
	labels := formflow.Labels{
		Title:       "Settings",
		Description: "Manage your Store",
		Action:      "Save",
		SubmitToast: "Store updated Successfully",
	}
	return formflow.Definition[StoreValues]{
		Entity: "store",
		Create: labels,
		Edit:   labels,
		Schema: storeSchema,
		Submit: func(ctx context.Context, _ formflow.Mode, v StoreValues) (formflow.Result, error) {
			st, err := c.UpdateStore(ctx, storeID, v.Name)
			if err != nil {
				return formflow.Result{}, err
			}
			return formflow.Result{ID: st.ID}, nil
		},
		AfterSubmit: func(formflow.Mode, formflow.Result) formflow.Navigation {
			return formflow.Navigation{Refresh: true}
		},
		SubmitFailure: formflow.DefaultFailure,
		Delete: func(ctx context.Context) error {
			return c.DeleteStore(ctx, storeID)
		},
		AfterDelete:   formflow.Navigation{Refresh: true, Push: "/"},
		DeleteSuccess: "Store deleted Successfully",
		DeleteFailure: formflow.DefaultFailure,
	}
}

// NewSettingsForm opens the settings form. It is always in edit mode.
func NewSettingsForm(c API, st *core.Store, p formflow.Presenter) *formflow.Form[StoreValues] {
	initial := StoreValues{Name: st.Name}
	return formflow.New(SettingsDefinition(c, st.ID), &initial, p)
}

// StoreModalDefinition describes the store-creation modal. A created store changes
// the whole layout, so success is a full document navigation.
func StoreModalDefinition(c API) formflow.Definition[StoreValues] {
	return formflow.Definition[StoreValues]{
		Entity: "store",
		Create: formflow.Labels{
			Title:       "Create store",
			Description: "Manage Products and Categories",
			Action:      "Continue",
			SubmitToast: "Store created successfully",
		},
		Schema: storeSchema,
		Submit: func(ctx context.Context, _ formflow.Mode, v StoreValues) (formflow.Result, error) {
			st, err := c.CreateStore(ctx, v.Name)
			if err != nil {
				return formflow.Result{}, err
			}
			return formflow.Result{ID: st.ID}, nil
		},
		AfterSubmit: func(_ formflow.Mode, res formflow.Result) formflow.Navigation {
			return formflow.Navigation{Assign: StorePath(res.ID)}
		},
		SubmitFailure: "Error creating store",
	}
}

// NewStoreModal opens the store-creation modal.
func NewStoreModal(c API, p formflow.Presenter) *formflow.Form[StoreValues] {
	return formflow.New(StoreModalDefinition(c), nil, p)
}
