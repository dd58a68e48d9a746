package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const suppliersPath = "/suppliers"

// Supplier is the supplier management screen.
type Supplier struct {
	Form *form.Controller
	List *form.ListController[model.Supplier]

	deps Deps
}

// NewSupplier builds the supplier screen.
func NewSupplier(d Deps) *Supplier {
	s := &Supplier{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: func(f validation.FormState) *validation.Result {
			return d.Engine.ValidateForm(f, d.Engine.SupplierRules())
		},
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Submit:        s.submit,
	})
	s.List = form.NewListController[model.Supplier](crudList(d, suppliersPath))
	return s
}

func (s *Supplier) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.Supplier{
		Name:    str(f, "name"),
		Group:   str(f, "group"),
		Email:   str(f, "email"),
		Phone:   str(f, "phone"),
		Address: str(f, "address"),
	}
	return upsert(ctx, s.deps, suppliersPath, f, payload)
}

// Close releases both controllers.
func (s *Supplier) Close() {
	s.Form.Close()
	s.List.Close()
}
