package screens

import (
	"context"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const customersPath = "/customers"

// Customer is the customer management screen.
type Customer struct {
	Form *form.Controller
	List *form.ListController[model.Customer]

	deps        Deps
	territories []model.Territory
}

// NewCustomer builds the customer screen.
func NewCustomer(d Deps) *Customer {
	s := &Customer{deps: d}
	s.Form = form.NewController(form.Config{
		Validate:      d.Engine.ValidateCustomerForm,
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			ts, errno := d.Refdata.Territories(ctx)
			if errno != nil {
				return errno
			}
			s.territories = ts
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.Customer](crudList(d, customersPath))
	return s
}

// Territories returns the list loaded on mount for the territory
// dropdown.
func (s *Customer) Territories() []model.Territory {
	return s.territories
}

func (s *Customer) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.Customer{
		Name:      str(f, "name"),
		Group:     str(f, "group"),
		Territory: str(f, "territory"),
		Email:     str(f, "email"),
		Phone:     str(f, "phone"),
		Address:   str(f, "address"),
	}
	return upsert(ctx, s.deps, customersPath, f, payload)
}

// Close releases both controllers.
func (s *Customer) Close() {
	s.Form.Close()
	s.List.Close()
}
