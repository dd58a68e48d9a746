package screens

import (
	"context"
	"sync"

	"github.com/tijarah-io/tijarah/internal/form"
	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/errors"
	"github.com/tijarah-io/tijarah/pkg/validation"
)

const paymentsPath = "/payments"

// Payment is the payment recording screen. The party dropdown switches
// between the customer and supplier lists with the party type.
type Payment struct {
	Form *form.Controller
	List *form.ListController[model.Payment]

	deps Deps

	mu        sync.Mutex
	customers []model.Customer
	suppliers []model.Supplier
}

// NewPayment builds the payment screen.
func NewPayment(d Deps) *Payment {
	s := &Payment{deps: d}
	s.Form = form.NewController(form.Config{
		Validate: func(f validation.FormState) *validation.Result {
			return d.Engine.ValidateForm(f, d.Engine.PaymentRules())
		},
		Authenticated: d.Auth.EnsureAuthenticated,
		Locale:        d.Locale,
		Load: func(ctx context.Context) *errors.Errno {
			customers, errno := d.Refdata.Customers(ctx)
			if errno != nil {
				return errno
			}
			suppliers, errno := d.Refdata.Suppliers(ctx)
			if errno != nil {
				return errno
			}
			s.mu.Lock()
			s.customers, s.suppliers = customers, suppliers
			s.mu.Unlock()
			return nil
		},
		Submit: s.submit,
	})
	s.List = form.NewListController[model.Payment](crudList(d, paymentsPath))
	return s
}

// Customers returns the customer party list.
func (s *Payment) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers
}

// Suppliers returns the supplier party list.
func (s *Payment) Suppliers() []model.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppliers
}

func (s *Payment) submit(ctx context.Context, f validation.FormState) apiclient.Result {
	payload := model.Payment{
		PartyType:   str(f, "party_type"),
		PartyID:     id64(f, "party"),
		InvoiceID:   id64(f, "invoice"),
		Amount:      num(f, "amount"),
		Date:        str(f, "date"),
		Method:      str(f, "method"),
		ReferenceNo: str(f, "reference_no"),
	}
	return upsert(ctx, s.deps, paymentsPath, f, payload)
}

// Close releases both controllers.
func (s *Payment) Close() {
	s.Form.Close()
	s.List.Close()
}
