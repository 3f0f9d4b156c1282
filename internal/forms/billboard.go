package forms

import (
	"context"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/formflow"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// BillboardValues are the inputs of the billboard form.
type BillboardValues struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

// BillboardDeleteFailure is shown when a billboard cannot be deleted,
// usually because categories still use it.
const BillboardDeleteFailure = "Make sure you removed all categories using this billboard first."

// BillboardDefinition describes the billboard form. billboardID is empty in create mode.
func BillboardDefinition(c API, storeID, billboardID string) formflow.Definition[BillboardValues] {
	list := BillboardsPath(storeID)

	def := formflow.Definition[BillboardValues]{
		Entity: "billboard",
		Create: formflow.Labels{
			Title:       "Create billboard",
			Description: "Add a new billboard",
			Action:      "Create",
			SubmitToast: "Billboard created.",
		},
		Edit: formflow.Labels{
			Title:       "Edit billboard",
			Description: "Edit a billboard.",
			Action:      "Save changes",
			SubmitToast: "Billboard updated.",
		},
		Schema: formflow.Schema[BillboardValues]{
			{Name: "label", Value: func(v BillboardValues) string { return v.Label }, Rules: []formflow.Rule{formflow.MinLen(1)}},
			{Name: "imageUrl", Value: func(v BillboardValues) string { return v.ImageURL }, Rules: []formflow.Rule{formflow.MinLen(1)}},
		},
		Submit: func(ctx context.Context, mode formflow.Mode, v BillboardValues) (formflow.Result, error) {
			req := api.BillboardRequest{Label: v.Label, ImageURL: v.ImageURL}
			var (
				b   *core.Billboard
				err error
			)
			if mode == formflow.ModeEdit {
				b, err = c.UpdateBillboard(ctx, storeID, billboardID, req)
			} else {
				b, err = c.CreateBillboard(ctx, storeID, req)
			}
			if err != nil {
				return formflow.Result{}, err
			}
			return formflow.Result{ID: b.ID}, nil
		},
		AfterSubmit: func(formflow.Mode, formflow.Result) formflow.Navigation {
			return formflow.Navigation{Refresh: true, Push: list}
		},
		SubmitFailure: formflow.DefaultFailure,
		AfterDelete:   formflow.Navigation{Refresh: true, Push: list},
		DeleteSuccess: "Billboard deleted.",
		DeleteFailure: BillboardDeleteFailure,
	}
	if billboardID != "" {
		def.Delete = func(ctx context.Context) error {
			return c.DeleteBillboard(ctx, storeID, billboardID)
		}
	}
	return def
}

// NewBillboardForm opens the billboard form. A nil billboard opens it in create mode.
func NewBillboardForm(c API, storeID string, b *core.Billboard, p formflow.Presenter) *formflow.Form[BillboardValues] {
	if b == nil {
		return formflow.New(BillboardDefinition(c, storeID, ""), nil, p)
	}
	initial := BillboardValues{Label: b.Label, ImageURL: b.ImageURL}
	return formflow.New(BillboardDefinition(c, storeID, b.ID), &initial, p)
}
